package seeder

import (
	"fmt"
	"time"
)

// Range is an inclusive integer interval.
type Range struct {
	Min int
	Max int
}

func (r Range) Contains(v int) bool { return v >= r.Min && v <= r.Max }

func (r Range) overlaps(o Range) bool { return r.Min <= o.Max && o.Min <= r.Max }

func (r Range) draw(p ValueProvider) int { return p.IntBetween(r.Min, r.Max) }

type Params struct {
	Citizens               int
	ConditionsPerCitizen   Range
	FacilitiesPerCity      Range
	PhonesPerFacility      Range
	RestrictionsPerVaccine Range
	VaccinesPerFacility    Range
	BatchesPerVaccine      Range
	BatchQuantity          Range
	HealthPostCapacity     Range
	ClinicCapacity         Range
	HospitalCapacity       Range
	HospitalClass          Range

	// ShipChance is the percent chance that a batch advances to the next
	// shipment state.
	ShipChance int
	// ShipLeadMonths is how long before expiry the shipment window opens.
	ShipLeadMonths int

	BirthFrom     time.Time
	BirthTo       time.Time
	ExpiryFrom    time.Time
	ExpiryHorizon time.Duration

	Now func() time.Time
}

func DefaultParams() Params {
	return Params{
		Citizens:               9999,
		ConditionsPerCitizen:   Range{0, 3},
		FacilitiesPerCity:      Range{1, 50},
		PhonesPerFacility:      Range{1, 5},
		RestrictionsPerVaccine: Range{5, 20},
		VaccinesPerFacility:    Range{1, 3},
		BatchesPerVaccine:      Range{1, 5},
		BatchQuantity:          Range{100, 5000},
		HealthPostCapacity:     Range{100, 999},
		ClinicCapacity:         Range{1000, 4999},
		HospitalCapacity:       Range{5000, 10000},
		HospitalClass:          Range{1, 10},
		ShipChance:             50,
		ShipLeadMonths:         9,
		BirthFrom:              time.Date(1930, 1, 1, 0, 0, 0, 0, time.UTC),
		BirthTo:                time.Date(2015, 12, 31, 0, 0, 0, 0, time.UTC),
		ExpiryFrom:             time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC),
		ExpiryHorizon:          180 * 24 * time.Hour,
		Now:                    time.Now,
	}
}

// ExpiryTo is the upper end of the expiry window.
func (p Params) ExpiryTo() time.Time {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return now().UTC().Add(p.ExpiryHorizon)
}

func (p Params) CapacityRange(t FacilityType) Range {
	switch t {
	case HealthPost:
		return p.HealthPostCapacity
	case Hospital:
		return p.HospitalCapacity
	case Clinic:
		return p.ClinicCapacity
	}
	return Range{}
}

func (p Params) Validate() error {
	if p.Citizens < 0 {
		return fmt.Errorf("citizens cannot be negative")
	}

	ranges := map[string]Range{
		"conditions_per_citizen":   p.ConditionsPerCitizen,
		"facilities_per_city":      p.FacilitiesPerCity,
		"phones_per_facility":      p.PhonesPerFacility,
		"restrictions_per_vaccine": p.RestrictionsPerVaccine,
		"vaccines_per_facility":    p.VaccinesPerFacility,
		"batches_per_vaccine":      p.BatchesPerVaccine,
		"batch_quantity":           p.BatchQuantity,
		"health_post_capacity":     p.HealthPostCapacity,
		"clinic_capacity":          p.ClinicCapacity,
		"hospital_capacity":        p.HospitalCapacity,
		"hospital_class":           p.HospitalClass,
	}
	for name, r := range ranges {
		if r.Min < 0 || r.Min > r.Max {
			return fmt.Errorf("invalid %s range [%d, %d]", name, r.Min, r.Max)
		}
	}

	if p.PhonesPerFacility.Min < 1 {
		return fmt.Errorf("every facility needs at least one phone number")
	}

	caps := []FacilityType{HealthPost, Clinic, Hospital}
	for i := range caps {
		for j := i + 1; j < len(caps); j++ {
			if p.CapacityRange(caps[i]).overlaps(p.CapacityRange(caps[j])) {
				return fmt.Errorf("capacity ranges of %s and %s overlap", caps[i], caps[j])
			}
		}
	}

	if p.ShipChance < 0 || p.ShipChance > 100 {
		return fmt.Errorf("ship_chance must be within 0..100, got %d", p.ShipChance)
	}
	if p.ShipLeadMonths < 0 {
		return fmt.Errorf("ship_lead_months cannot be negative")
	}
	if p.BirthTo.Before(p.BirthFrom) {
		return fmt.Errorf("birth window ends before it starts")
	}
	if p.ExpiryTo().Before(p.ExpiryFrom) {
		return fmt.Errorf("expiry window ends before it starts")
	}
	return nil
}
