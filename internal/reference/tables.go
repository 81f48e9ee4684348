package reference

import (
	"fmt"
)

// Source file names inside the input directory.
const (
	ProvinceFile  = "provinsi.csv"
	CityFile      = "kota.csv"
	ConditionFile = "penyakit.csv"
	JobFile       = "pekerjaan.csv"
	VaccineFile   = "vaksin.csv"
)

type Province struct {
	ID   int64
	Name string
}

type City struct {
	ID         int64
	ProvinceID int64
	Type       string
	Name       string
}

type Vaccine struct {
	Producer string
	Name     string
}

// Bundle is every reference table the synthesizer starts from.
type Bundle struct {
	Provinces  []Province
	Cities     []City
	Conditions []string
	Jobs       []string
	Vaccines   []Vaccine
}

func LoadAll(dir string) (*Bundle, error) {
	var (
		b   Bundle
		err error
	)
	if b.Provinces, err = Provinces(dir); err != nil {
		return nil, err
	}
	if b.Cities, err = Cities(dir); err != nil {
		return nil, err
	}
	if b.Conditions, err = names(dir, ConditionFile, "name"); err != nil {
		return nil, err
	}
	if b.Jobs, err = names(dir, JobFile, "pekerjaan"); err != nil {
		return nil, err
	}
	if b.Vaccines, err = Vaccines(dir); err != nil {
		return nil, err
	}
	return &b, nil
}

func Provinces(dir string) ([]Province, error) {
	records, err := loadFrom(dir, ProvinceFile)
	if err != nil {
		return nil, err
	}

	provinces := make([]Province, 0, len(records))
	for i, rec := range records {
		id, err := rec.requireInt("id")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", ProvinceFile, i+1, err)
		}
		name, err := rec.require("provinsi")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", ProvinceFile, i+1, err)
		}
		provinces = append(provinces, Province{ID: id, Name: name})
	}
	return provinces, nil
}

func Cities(dir string) ([]City, error) {
	records, err := loadFrom(dir, CityFile)
	if err != nil {
		return nil, err
	}

	cities := make([]City, 0, len(records))
	for i, rec := range records {
		var c City
		if c.ID, err = rec.requireInt("city_id"); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", CityFile, i+1, err)
		}
		if c.ProvinceID, err = rec.requireInt("province_id"); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", CityFile, i+1, err)
		}
		if c.Type, err = rec.require("type"); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", CityFile, i+1, err)
		}
		if c.Name, err = rec.require("city_name"); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", CityFile, i+1, err)
		}
		cities = append(cities, c)
	}
	return cities, nil
}

func Vaccines(dir string) ([]Vaccine, error) {
	records, err := loadFrom(dir, VaccineFile)
	if err != nil {
		return nil, err
	}

	vaccines := make([]Vaccine, 0, len(records))
	for i, rec := range records {
		var v Vaccine
		if v.Producer, err = rec.require("developer"); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", VaccineFile, i+1, err)
		}
		if v.Name, err = rec.require("nama"); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", VaccineFile, i+1, err)
		}
		vaccines = append(vaccines, v)
	}
	return vaccines, nil
}

func names(dir, file, column string) ([]string, error) {
	records, err := loadFrom(dir, file)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(records))
	for i, rec := range records {
		v, err := rec.require(column)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", file, i+1, err)
		}
		out = append(out, v)
	}
	return out, nil
}
