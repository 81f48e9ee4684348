package seeder

import (
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// ValueProvider supplies every random primitive the stages draw from.
type ValueProvider interface {
	// IntBetween returns an integer in [min, max].
	IntBetween(min, max int) int
	// Chance reports true with the given probability in percent.
	Chance(percent int) bool
	Bool() bool
	// DateBetween returns a calendar day in [start, end]. When start is
	// after end the window has collapsed and start is returned.
	DateBetween(start, end time.Time) time.Time
	FirstName(sex Sex) string
	LastName(sex Sex) string
	MobileNumber() string
	Phone() string
	Company() string
}

// DataGenerator is the gofakeit backed provider. Runs are not reproducible:
// the faker is seeded from a random source.
type DataGenerator struct {
	faker *gofakeit.Faker
}

func NewDataGenerator() *DataGenerator {
	return &DataGenerator{faker: gofakeit.New(0)}
}

func (g *DataGenerator) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return g.faker.Number(min, max)
}

func (g *DataGenerator) Chance(percent int) bool {
	return g.faker.Number(1, 100) <= percent
}

func (g *DataGenerator) Bool() bool {
	return g.faker.Bool()
}

func (g *DataGenerator) DateBetween(start, end time.Time) time.Time {
	start, end = day(start), day(end)
	if !end.After(start) {
		return start
	}
	days := int(end.Sub(start).Hours() / 24)
	return start.AddDate(0, 0, g.faker.Number(0, days))
}

func (g *DataGenerator) FirstName(sex Sex) string {
	if sex == Female {
		return g.faker.RandomString(femaleFirstNames)
	}
	return g.faker.RandomString(maleFirstNames)
}

func (g *DataGenerator) LastName(sex Sex) string {
	if sex == Female {
		return g.faker.RandomString(femaleLastNames)
	}
	return g.faker.RandomString(maleLastNames)
}

func (g *DataGenerator) MobileNumber() string {
	return "08" + g.numerify(g.faker.RandomString([]string{"1", "2", "5", "7", "8", "9"})+"#########")
}

func (g *DataGenerator) Phone() string {
	return g.numerify(g.faker.RandomString(phoneFormats))
}

// numerify fills # placeholders. gofakeit rewrites a leading 0, so it is
// kept outside the numerified part.
func (g *DataGenerator) numerify(format string) string {
	if strings.HasPrefix(format, "0") {
		return "0" + g.faker.Numerify(format[1:])
	}
	return g.faker.Numerify(format)
}

func (g *DataGenerator) Company() string {
	name := g.faker.RandomString(companyPrefixes) + " " + g.faker.RandomString(maleLastNames)
	if suffix := g.faker.RandomString(companySuffixes); suffix != "" {
		name += " " + suffix
	}
	return name
}

// day truncates t to midnight in its own location.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

var maleFirstNames = []string{
	"Adi", "Agus", "Ahmad", "Andi", "Arief", "Bambang", "Budi", "Cahyo", "Dedi", "Dimas",
	"Eko", "Fajar", "Gilang", "Hendra", "Irfan", "Joko", "Kurniawan", "Lukman", "Muhammad", "Nugroho",
	"Putra", "Rizky", "Slamet", "Teguh", "Wahyu", "Yusuf",
}

var femaleFirstNames = []string{
	"Ani", "Ayu", "Citra", "Dewi", "Eka", "Fitri", "Gita", "Indah", "Intan", "Kartika",
	"Lestari", "Maya", "Nur", "Putri", "Rahmawati", "Ratna", "Sari", "Siti", "Tuti", "Wulan",
	"Yanti", "Zahra",
}

var maleLastNames = []string{
	"Gunawan", "Hidayat", "Kusuma", "Nainggolan", "Pratama", "Purnomo", "Saputra", "Setiawan", "Siregar", "Simanjuntak",
	"Situmorang", "Susanto", "Wibowo", "Wijaya", "Hakim", "Nasution", "Permana", "Prasetyo", "Hutapea", "Firmansyah",
}

var femaleLastNames = []string{
	"Handayani", "Hastuti", "Kusumawati", "Lestari", "Maryati", "Nurdiyanti", "Pertiwi", "Puspasari", "Rahayu", "Safitri",
	"Susanti", "Utami", "Wahyuni", "Widiastuti", "Yulianti", "Anggraini", "Melani", "Novitasari",
}

var phoneFormats = []string{
	"(021) ### ####",
	"(022) ### ####",
	"(031) ### ####",
	"(0###) ######",
	"+62 (0###) ### ####",
	"08##-####-####",
}

var companyPrefixes = []string{"PT", "CV", "UD", "Perum", "Yayasan"}

var companySuffixes = []string{"", "", "Tbk", "(Persero)", "(Persero) Tbk"}
