package seeder

import (
	"errors"
	"fmt"
)

var ErrInvariant = errors.New("dataset invariant violated")

func violation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}

// Check verifies the cross-entity invariants of a finished dataset.
// Vaccinations are matched to citizens positionally since national ids may
// collide.
func (ds *Dataset) Check(params Params) error {
	checks := []func(Params) error{
		ds.checkRegions,
		ds.checkCitizens,
		ds.checkFacilities,
		ds.checkRestrictions,
		ds.checkBatches,
		ds.checkVaccinations,
	}
	for _, check := range checks {
		if err := check(params); err != nil {
			return err
		}
	}
	return nil
}

func idSet[T any](items []T, id func(T) int64) map[int64]bool {
	set := make(map[int64]bool, len(items))
	for _, it := range items {
		set[id(it)] = true
	}
	return set
}

func (ds *Dataset) checkRegions(Params) error {
	provinces := idSet(ds.Provinces, func(p Province) int64 { return p.ID })
	for _, c := range ds.Cities {
		if !provinces[c.ProvinceID] {
			return violation("city %d references missing province %d", c.ID, c.ProvinceID)
		}
	}
	return nil
}

func (ds *Dataset) checkCitizens(params Params) error {
	jobs := idSet(ds.Jobs, func(n Named) int64 { return n.ID })
	conditions := idSet(ds.Conditions, func(n Named) int64 { return n.ID })
	niks := idSet(ds.Citizens, func(c Citizen) int64 { return c.NIK })

	for _, c := range ds.Citizens {
		if !jobs[c.JobID] {
			return violation("citizen %d references missing job %d", c.NIK, c.JobID)
		}
		if c.NIK < 1 || c.NIK > maxNIK {
			return violation("citizen national id %d out of range", c.NIK)
		}
		if c.BirthDate.Before(params.BirthFrom) || c.BirthDate.After(params.BirthTo) {
			return violation("citizen %d born %s outside birth window", c.NIK, c.BirthDate.Format("2006-01-02"))
		}
	}
	for _, cc := range ds.CitizenConditions {
		if !niks[cc.NIK] || !conditions[cc.ConditionID] {
			return violation("citizen condition (%d, %d) references a missing entity", cc.NIK, cc.ConditionID)
		}
	}
	return nil
}

func (ds *Dataset) checkFacilities(params Params) error {
	cities := idSet(ds.Cities, func(c City) int64 { return c.ID })

	satellites := make(map[int64]int, len(ds.Facilities))
	for _, h := range ds.HealthPosts {
		satellites[h.FacilityID]++
	}
	for _, h := range ds.Hospitals {
		satellites[h.FacilityID]++
	}
	for _, c := range ds.Clinics {
		satellites[c.FacilityID]++
	}

	facilities := make(map[int64]bool, len(ds.Facilities))
	for _, f := range ds.Facilities {
		facilities[f.ID] = true
		if !cities[f.CityID] {
			return violation("facility %d references missing city %d", f.ID, f.CityID)
		}
		if !params.CapacityRange(f.Type).Contains(f.Capacity) {
			return violation("facility %d (%s) capacity %d outside its range", f.ID, f.Type, f.Capacity)
		}
		if satellites[f.ID] != 1 {
			return violation("facility %d appears in %d satellite tables", f.ID, satellites[f.ID])
		}
	}
	for id := range satellites {
		if !facilities[id] {
			return violation("satellite row references missing facility %d", id)
		}
	}

	phones := make(map[int64]int, len(ds.Facilities))
	for _, ph := range ds.FacilityPhones {
		if !facilities[ph.FacilityID] {
			return violation("phone references missing facility %d", ph.FacilityID)
		}
		phones[ph.FacilityID]++
	}
	for _, f := range ds.Facilities {
		if !params.PhonesPerFacility.Contains(phones[f.ID]) {
			return violation("facility %d has %d phone numbers", f.ID, phones[f.ID])
		}
	}
	return nil
}

func (ds *Dataset) checkRestrictions(Params) error {
	vaccines := idSet(ds.Vaccines, func(v Vaccine) int64 { return v.ID })
	conditions := idSet(ds.Conditions, func(n Named) int64 { return n.ID })

	seen := make(map[Restriction]bool, len(ds.Restrictions))
	for _, r := range ds.Restrictions {
		if !vaccines[r.VaccineID] || !conditions[r.ConditionID] {
			return violation("restriction (%d, %d) references a missing entity", r.VaccineID, r.ConditionID)
		}
		if seen[r] {
			return violation("restriction (%d, %d) is duplicated", r.VaccineID, r.ConditionID)
		}
		seen[r] = true
	}
	return nil
}

func (ds *Dataset) checkBatches(params Params) error {
	facilities := idSet(ds.Facilities, func(f Facility) int64 { return f.ID })
	vaccines := idSet(ds.Vaccines, func(v Vaccine) int64 { return v.ID })

	logs := make(map[int64][]BatchLog, len(ds.Batches))
	for _, l := range ds.BatchLogs {
		logs[l.BatchID] = append(logs[l.BatchID], l)
	}
	sources := make(map[int64]DoseSource, len(ds.DoseSources))
	for _, src := range ds.DoseSources {
		sources[src.BatchID] = src
	}

	batches := make(map[int64]bool, len(ds.Batches))
	for _, b := range ds.Batches {
		batches[b.ID] = true
		if !facilities[b.FacilityID] || !vaccines[b.VaccineID] {
			return violation("batch %d references a missing facility or vaccine", b.ID)
		}

		windowStart := b.Expiry.AddDate(0, -params.ShipLeadMonths, 0)
		entries := logs[b.ID]
		if len(entries) > len(logStatuses) {
			return violation("batch %d has %d log entries", b.ID, len(entries))
		}
		for i, l := range entries {
			if l.Status != logStatuses[i] {
				return violation("batch %d log entry %d is %s, want %s", b.ID, i, l.Status, logStatuses[i])
			}
			if l.Time.Before(windowStart) || l.Time.After(b.Expiry) {
				return violation("batch %d %s at %s outside shipment window", b.ID, l.Status, l.Time.Format("2006-01-02"))
			}
			if i > 0 && l.Time.Before(entries[i-1].Time) {
				return violation("batch %d log goes back in time at %s", b.ID, l.Status)
			}
		}

		delivered := len(entries) == len(logStatuses)
		src, eligible := sources[b.ID]
		if delivered != eligible {
			return violation("batch %d delivered=%t but dose source=%t", b.ID, delivered, eligible)
		}
		if eligible && (!src.DeliveredAt.Equal(entries[len(entries)-1].Time) || !src.Expiry.Equal(b.Expiry)) {
			return violation("dose source of batch %d disagrees with its log", b.ID)
		}
		if !delivered && b.QuantityUsed != 0 {
			return violation("undelivered batch %d has used quantity %d", b.ID, b.QuantityUsed)
		}
		if b.QuantityUsed < 0 || b.QuantityUsed > b.Quantity {
			return violation("batch %d used %d of %d", b.ID, b.QuantityUsed, b.Quantity)
		}
	}
	for id := range logs {
		if !batches[id] {
			return violation("log references missing batch %d", id)
		}
	}
	return nil
}

func (ds *Dataset) checkVaccinations(Params) error {
	sources := make(map[int64]DoseSource, len(ds.DoseSources))
	for _, src := range ds.DoseSources {
		sources[src.BatchID] = src
	}

	next := 0
	for _, c := range ds.Citizens {
		n := c.Status.Doses()
		if next+n > len(ds.Vaccinations) {
			return violation("citizen %d is missing dose events", c.NIK)
		}
		doses := ds.Vaccinations[next : next+n]
		next += n

		used := make(map[int64]bool, n)
		for i, v := range doses {
			if v.NIK != c.NIK {
				return violation("dose event %d belongs to %d, want %d", next-n+i, v.NIK, c.NIK)
			}
			if v.Stage != stages[i] {
				return violation("citizen %d dose %d has stage %s", c.NIK, i, v.Stage)
			}
			src, ok := sources[v.BatchID]
			if !ok {
				return violation("citizen %d dose from undelivered batch %d", c.NIK, v.BatchID)
			}
			if used[v.BatchID] {
				return violation("citizen %d reuses batch %d", c.NIK, v.BatchID)
			}
			used[v.BatchID] = true
			if v.Date.Before(src.DeliveredAt) || v.Date.After(src.Expiry) {
				return violation("citizen %d %s dose outside batch %d window", c.NIK, v.Stage, v.BatchID)
			}
			if i > 0 && v.Date.Before(doses[i-1].Date) {
				return violation("citizen %d doses out of chronological order", c.NIK)
			}
		}
	}
	if next != len(ds.Vaccinations) {
		return violation("%d dose events do not belong to any citizen", len(ds.Vaccinations)-next)
	}
	return nil
}
