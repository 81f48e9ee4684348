package seeder

import (
	"fmt"
	"time"

	"github.com/hilyafadhilah/tubes-basdat/internal/reference"
)

// scriptedProvider is a deterministic ValueProvider: integers and dates take
// their lower bound and Chance answers come from a queue (true once drained).
type scriptedProvider struct {
	chances []bool
}

func (p *scriptedProvider) IntBetween(min, max int) int { return min }

func (p *scriptedProvider) Chance(int) bool {
	if len(p.chances) == 0 {
		return true
	}
	c := p.chances[0]
	p.chances = p.chances[1:]
	return c
}

func (p *scriptedProvider) Bool() bool { return true }

func (p *scriptedProvider) DateBetween(start, end time.Time) time.Time { return day(start) }

func (p *scriptedProvider) FirstName(sex Sex) string {
	if sex == Female {
		return "Siti"
	}
	return "Budi"
}

func (p *scriptedProvider) LastName(Sex) string { return "Santoso" }

func (p *scriptedProvider) MobileNumber() string { return "081234567890" }

func (p *scriptedProvider) Phone() string { return "(021) 555 0101" }

func (p *scriptedProvider) Company() string { return "PT Sehat Selalu" }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testBundle() *reference.Bundle {
	b := &reference.Bundle{
		Provinces: []reference.Province{{ID: 31, Name: "DKI Jakarta"}, {ID: 32, Name: "Jawa Barat"}},
		Cities: []reference.City{
			{ID: 3171, ProvinceID: 31, Type: "Kota", Name: "Jakarta Selatan"},
			{ID: 3273, ProvinceID: 32, Type: "Kota", Name: "Bandung"},
			{ID: 3204, ProvinceID: 32, Type: "Kabupaten", Name: "Bandung"},
		},
		Jobs: []string{"Dokter", "Guru", "Petani/Pekebun"},
		Vaccines: []reference.Vaccine{
			{Producer: "Sinovac Biotech", Name: "CoronaVac"},
			{Producer: "AstraZeneca", Name: "Vaxzevria"},
			{Producer: "Bio Farma", Name: "IndoVac"},
		},
	}
	for i := 1; i <= 24; i++ {
		b.Conditions = append(b.Conditions, fmt.Sprintf("Penyakit %d", i))
	}
	return b
}

func smallParams() Params {
	p := DefaultParams()
	p.Citizens = 150
	p.FacilitiesPerCity = Range{2, 6}
	p.ShipChance = 80
	p.Now = func() time.Time { return date(2022, 1, 1) }
	return p
}
