package seeder

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

const (
	StageRegions      = "regions"
	StageReferences   = "references"
	StageCitizens     = "citizens"
	StageFacilities   = "facilities"
	StageRestrictions = "restrictions"
	StageBatches      = "batches"
	StageVaccinations = "vaccinations"
)

var (
	hospitalOwnership = []string{"swasta", "negeri"}
	clinicClasses     = []string{"pratama", "utama"}
)

// maxNIK bounds the 16-digit national id range.
const maxNIK int64 = 9999999999999999

func (s *Synthesizer) stages() []*Stage {
	return []*Stage{
		{Name: StageRegions, Run: s.generateRegions},
		{Name: StageReferences, Run: s.generateReferences},
		{Name: StageCitizens, Dependencies: []string{StageReferences}, Run: s.generateCitizens},
		{Name: StageFacilities, Dependencies: []string{StageRegions}, Run: s.generateFacilities},
		{Name: StageRestrictions, Dependencies: []string{StageReferences}, Run: s.generateRestrictions},
		{Name: StageBatches, Dependencies: []string{StageFacilities, StageReferences}, Run: s.generateBatches},
		{Name: StageVaccinations, Dependencies: []string{StageCitizens, StageBatches}, Run: s.generateVaccinations},
	}
}

func (s *Synthesizer) generateRegions(_ context.Context, ds *Dataset) error {
	known := make(map[int64]bool, len(s.bundle.Provinces))
	for _, p := range s.bundle.Provinces {
		if known[p.ID] {
			return fmt.Errorf("duplicate province id %d", p.ID)
		}
		known[p.ID] = true
		ds.Provinces = append(ds.Provinces, Province{ID: p.ID, Name: p.Name})
	}

	seen := make(map[int64]bool, len(s.bundle.Cities))
	for _, c := range s.bundle.Cities {
		if !known[c.ProvinceID] {
			return fmt.Errorf("city %d references unknown province %d", c.ID, c.ProvinceID)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate city id %d", c.ID)
		}
		seen[c.ID] = true
		ds.Cities = append(ds.Cities, City{
			ID:         c.ID,
			ProvinceID: c.ProvinceID,
			Name:       c.Type + " " + c.Name,
		})
	}
	return nil
}

func (s *Synthesizer) generateReferences(_ context.Context, ds *Dataset) error {
	var conditions, jobs, vaccines Sequence

	for _, name := range s.bundle.Conditions {
		ds.Conditions = append(ds.Conditions, Named{ID: conditions.Next(), Name: name})
	}
	for _, name := range s.bundle.Jobs {
		ds.Jobs = append(ds.Jobs, Named{ID: jobs.Next(), Name: name})
	}
	for _, v := range s.bundle.Vaccines {
		ds.Vaccines = append(ds.Vaccines, Vaccine{ID: vaccines.Next(), Producer: v.Producer, Name: v.Name})
	}
	return nil
}

func (s *Synthesizer) drawNIK() int64 {
	// two 8-digit halves keep the draw within int range on every platform
	hi := int64(s.provider.IntBetween(0, 99999999))
	lo := int64(s.provider.IntBetween(0, 99999999))
	nik := hi*100000000 + lo
	if nik < 1 {
		return 1
	}
	return min(nik, maxNIK)
}

func (s *Synthesizer) generateCitizens(_ context.Context, ds *Dataset) error {
	if s.params.Citizens > 0 && len(ds.Jobs) == 0 {
		return fmt.Errorf("cannot assign jobs: %w", ErrInsufficientPopulation)
	}

	p := s.provider
	for i := 0; i < s.params.Citizens; i++ {
		sex := Pick(p, sexes)
		c := Citizen{
			NIK:       s.drawNIK(),
			Sex:       sex,
			FirstName: p.FirstName(sex),
			LastName:  p.LastName(sex),
			Phone:     p.MobileNumber(),
			JobID:     Pick(p, ds.Jobs).ID,
			Category:  Pick(p, categories),
			Status:    Pick(p, statuses),
			BirthDate: p.DateBetween(s.params.BirthFrom, s.params.BirthTo),
		}
		ds.Citizens = append(ds.Citizens, c)

		conds, err := SampleRange(p, ds.Conditions, s.params.ConditionsPerCitizen.Min, s.params.ConditionsPerCitizen.Max)
		if err != nil {
			return fmt.Errorf("conditions of citizen %d: %w", c.NIK, err)
		}
		for _, cond := range conds {
			ds.CitizenConditions = append(ds.CitizenConditions, CitizenCondition{NIK: c.NIK, ConditionID: cond.ID})
		}
	}
	return nil
}

func (s *Synthesizer) generateFacilities(_ context.Context, ds *Dataset) error {
	var seq Sequence
	p := s.provider

	for _, city := range ds.Cities {
		n := s.params.FacilitiesPerCity.draw(p)
		for j := 0; j < n; j++ {
			f := Facility{
				ID:     seq.Next(),
				Name:   p.Company(),
				CityID: city.ID,
				Type:   Pick(p, facilityTypes),
			}
			f.Capacity = s.params.CapacityRange(f.Type).draw(p)

			switch f.Type {
			case HealthPost:
				ds.HealthPosts = append(ds.HealthPosts, HealthPostInfo{FacilityID: f.ID, Inpatient: p.Bool()})
			case Hospital:
				ds.Hospitals = append(ds.Hospitals, HospitalInfo{
					FacilityID: f.ID,
					Ownership:  Pick(p, hospitalOwnership),
					Class:      s.params.HospitalClass.draw(p),
				})
			case Clinic:
				ds.Clinics = append(ds.Clinics, ClinicInfo{FacilityID: f.ID, Class: Pick(p, clinicClasses)})
			}
			ds.Facilities = append(ds.Facilities, f)

			phones := s.params.PhonesPerFacility.draw(p)
			for k := 0; k < phones; k++ {
				ds.FacilityPhones = append(ds.FacilityPhones, FacilityPhone{FacilityID: f.ID, Number: p.Phone()})
			}
		}
	}
	return nil
}

func (s *Synthesizer) generateRestrictions(_ context.Context, ds *Dataset) error {
	r := s.params.RestrictionsPerVaccine
	for _, v := range ds.Vaccines {
		conds, err := SampleRange(s.provider, ds.Conditions, r.Min, r.Max)
		if err != nil {
			return fmt.Errorf("restrictions of vaccine %d: %w", v.ID, err)
		}
		for _, c := range conds {
			ds.Restrictions = append(ds.Restrictions, Restriction{VaccineID: v.ID, ConditionID: c.ID})
		}
	}
	return nil
}

func (s *Synthesizer) generateBatches(_ context.Context, ds *Dataset) error {
	var seq Sequence
	p := s.provider
	expiryTo := s.params.ExpiryTo()

	for _, f := range ds.Facilities {
		vaccines, err := SampleRange(p, ds.Vaccines, s.params.VaccinesPerFacility.Min, s.params.VaccinesPerFacility.Max)
		if err != nil {
			return fmt.Errorf("vaccines of facility %d: %w", f.ID, err)
		}

		for _, v := range vaccines {
			n := s.params.BatchesPerVaccine.draw(p)
			for j := 0; j < n; j++ {
				b := Batch{
					ID:         seq.Next(),
					Quantity:   s.params.BatchQuantity.draw(p),
					Expiry:     p.DateBetween(s.params.ExpiryFrom, expiryTo),
					FacilityID: f.ID,
					VaccineID:  v.ID,
				}
				s.ship(ds, &b)
				ds.Batches = append(ds.Batches, b)
			}
		}
	}
	return nil
}

// ship walks the batch through SHIP, OUT FOR DELIVERY and DELIVERED. Each
// step may stop the walk; every emitted event tightens the lower bound of
// the window so timestamps never decrease.
func (s *Synthesizer) ship(ds *Dataset, b *Batch) {
	p := s.provider
	lower := b.Expiry.AddDate(0, -s.params.ShipLeadMonths, 0)
	upper := b.Expiry

	for _, status := range logStatuses {
		if !p.Chance(s.params.ShipChance) {
			return
		}

		lower = p.DateBetween(lower, upper)
		ds.BatchLogs = append(ds.BatchLogs, BatchLog{BatchID: b.ID, Time: lower, Status: status})

		if status == Delivered {
			b.QuantityUsed = p.IntBetween(0, b.Quantity)
			ds.DoseSources = append(ds.DoseSources, DoseSource{
				BatchID:     b.ID,
				DeliveredAt: lower,
				Expiry:      b.Expiry,
			})
		}
	}
}

func (s *Synthesizer) generateVaccinations(_ context.Context, ds *Dataset) error {
	for _, c := range ds.Citizens {
		if c.Status == NotVaccinated {
			continue
		}

		doses, err := s.assignDoses(ds.DoseSources, c)
		if err != nil {
			return err
		}
		ds.Vaccinations = append(ds.Vaccinations, doses...)
	}
	return nil
}

// assignDoses draws one distinct delivered batch per dose stage, orders them
// by delivery and walks the stages up to the citizen's status.
func (s *Synthesizer) assignDoses(sources []DoseSource, c Citizen) ([]Vaccination, error) {
	picked, err := SampleUnique(s.provider, sources, len(stages))
	if err != nil {
		return nil, fmt.Errorf("dose sources for citizen %d (%s): %w", c.NIK, c.Status, err)
	}
	sort.SliceStable(picked, func(i, j int) bool {
		return picked[i].DeliveredAt.Before(picked[j].DeliveredAt)
	})

	n := c.Status.Doses()
	used := picked[:n]

	// latest[i] is the earliest expiry among batches i..n-1; capping each
	// dose there keeps every later window reachable.
	latest := make([]time.Time, n)
	for i := n - 1; i >= 0; i-- {
		latest[i] = used[i].Expiry
		if i+1 < n && latest[i+1].Before(latest[i]) {
			latest[i] = latest[i+1]
		}
	}

	doses := make([]Vaccination, 0, n)
	var prev time.Time
	for i, stage := range stages[:n] {
		lower := used[i].DeliveredAt
		if prev.After(lower) {
			lower = prev
		}
		date := s.provider.DateBetween(lower, latest[i])
		doses = append(doses, Vaccination{
			BatchID: used[i].BatchID,
			NIK:     c.NIK,
			Stage:   stage,
			Date:    date,
		})
		prev = date
	}

	s.logger.Debug("assigned doses",
		zap.Int64("nik", c.NIK),
		zap.String("status", c.Status.String()),
		zap.Int("doses", len(doses)))
	return doses, nil
}
