package seeder

import (
	"time"
)

type Sex int

const (
	Male Sex = iota + 1
	Female
)

var sexes = []Sex{Male, Female}

func (s Sex) String() string {
	switch s {
	case Male:
		return "LAKI-LAKI"
	case Female:
		return "PEREMPUAN"
	}
	return "UNKNOWN"
}

type Category int

const (
	HealthWorker Category = iota + 1
	Elderly
	PublicOfficer
	Civilian
)

var categories = []Category{HealthWorker, Elderly, PublicOfficer, Civilian}

func (c Category) String() string {
	switch c {
	case HealthWorker:
		return "Tenaga Kesehatan"
	case Elderly:
		return "Usia Lanjut"
	case PublicOfficer:
		return "Petugas Publik"
	case Civilian:
		return "Masyarakat"
	}
	return "UNKNOWN"
}

// VaxStatus is the furthest dose stage a citizen has reached. Its ordinal is
// the number of dose events the citizen owns.
type VaxStatus int

const (
	NotVaccinated VaxStatus = iota
	FirstDose
	SecondDose
	ThirdDose
)

var statuses = []VaxStatus{NotVaccinated, FirstDose, SecondDose, ThirdDose}

func (s VaxStatus) Doses() int { return int(s) }

func (s VaxStatus) String() string {
	switch s {
	case NotVaccinated:
		return "Belum Vaksin"
	case FirstDose:
		return "Vaksin Pertama"
	case SecondDose:
		return "Vaksin Kedua"
	case ThirdDose:
		return "Vaksin Ketiga"
	}
	return "UNKNOWN"
}

type DoseStage int

const (
	StageFirst DoseStage = iota + 1
	StageSecond
	StageThird
)

var stages = []DoseStage{StageFirst, StageSecond, StageThird}

func (d DoseStage) String() string {
	switch d {
	case StageFirst:
		return "FIRST"
	case StageSecond:
		return "SECOND"
	case StageThird:
		return "THIRD"
	}
	return "UNKNOWN"
}

type FacilityType int

const (
	HealthPost FacilityType = iota + 1
	Hospital
	Clinic
)

var facilityTypes = []FacilityType{HealthPost, Hospital, Clinic}

func (f FacilityType) String() string {
	switch f {
	case HealthPost:
		return "Puskesmas"
	case Hospital:
		return "Rumah Sakit"
	case Clinic:
		return "Klinik"
	}
	return "UNKNOWN"
}

// LogStatus states are strictly ordered; a batch log is always a prefix of
// logStatuses.
type LogStatus int

const (
	Shipped LogStatus = iota + 1
	OutForDelivery
	Delivered
)

var logStatuses = []LogStatus{Shipped, OutForDelivery, Delivered}

func (l LogStatus) String() string {
	switch l {
	case Shipped:
		return "SHIP"
	case OutForDelivery:
		return "OUT FOR DELIVERY"
	case Delivered:
		return "DELIVERED"
	}
	return "UNKNOWN"
}

type Province struct {
	ID   int64
	Name string
}

type City struct {
	ID         int64
	ProvinceID int64
	Name       string
}

// Named covers the flat reference tables: conditions and jobs.
type Named struct {
	ID   int64
	Name string
}

type Vaccine struct {
	ID       int64
	Producer string
	Name     string
}

// Citizen.NIK is drawn at random; duplicates are allowed.
type Citizen struct {
	NIK       int64
	FirstName string
	LastName  string
	Phone     string
	Sex       Sex
	JobID     int64
	Category  Category
	Status    VaxStatus
	BirthDate time.Time
}

type CitizenCondition struct {
	NIK         int64
	ConditionID int64
}

type Facility struct {
	ID       int64
	Name     string
	Capacity int
	CityID   int64
	Type     FacilityType
}

type HealthPostInfo struct {
	FacilityID int64
	Inpatient  bool
}

type HospitalInfo struct {
	FacilityID int64
	Ownership  string
	Class      int
}

type ClinicInfo struct {
	FacilityID int64
	Class      string
}

type FacilityPhone struct {
	FacilityID int64
	Number     string
}

type Restriction struct {
	VaccineID   int64
	ConditionID int64
}

type Batch struct {
	ID           int64
	Quantity     int
	QuantityUsed int
	Expiry       time.Time
	FacilityID   int64
	VaccineID    int64
}

type BatchLog struct {
	BatchID int64
	Time    time.Time
	Status  LogStatus
}

// DoseSource is a batch whose log reached Delivered.
type DoseSource struct {
	BatchID     int64
	DeliveredAt time.Time
	Expiry      time.Time
}

type Vaccination struct {
	BatchID int64
	NIK     int64
	Stage   DoseStage
	Date    time.Time
}

// Dataset holds every generated sequence. Stages only append to it.
type Dataset struct {
	Provinces         []Province
	Cities            []City
	Conditions        []Named
	Jobs              []Named
	Vaccines          []Vaccine
	Citizens          []Citizen
	CitizenConditions []CitizenCondition
	Facilities        []Facility
	HealthPosts       []HealthPostInfo
	Hospitals         []HospitalInfo
	Clinics           []ClinicInfo
	FacilityPhones    []FacilityPhone
	Restrictions      []Restriction
	Batches           []Batch
	BatchLogs         []BatchLog
	DoseSources       []DoseSource
	Vaccinations      []Vaccination
}
