package seeder

import (
	"github.com/hilyafadhilah/tubes-basdat/internal/codec"
)

// Table is one output relation. Row is called for i in [0, Len).
type Table struct {
	Name    string
	Columns []string
	Len     int
	Row     func(i int) []codec.Field
}

// Tables lists every output relation, parents before children.
func (ds *Dataset) Tables() []Table {
	return []Table{
		{
			Name: "provinsi", Columns: []string{"id", "nama"}, Len: len(ds.Provinces),
			Row: func(i int) []codec.Field {
				p := ds.Provinces[i]
				return []codec.Field{codec.Int(p.ID), codec.Text(p.Name)}
			},
		},
		{
			Name: "kota", Columns: []string{"id", "id_provinsi", "nama"}, Len: len(ds.Cities),
			Row: func(i int) []codec.Field {
				c := ds.Cities[i]
				return []codec.Field{codec.Int(c.ID), codec.Int(c.ProvinceID), codec.Text(c.Name)}
			},
		},
		named("penyakit", ds.Conditions),
		named("pekerjaan", ds.Jobs),
		{
			Name: "vaksin", Columns: []string{"id", "produsen", "nama"}, Len: len(ds.Vaccines),
			Row: func(i int) []codec.Field {
				v := ds.Vaccines[i]
				return []codec.Field{codec.Int(v.ID), codec.Text(v.Producer), codec.Text(v.Name)}
			},
		},
		{
			Name: "penduduk",
			Columns: []string{"nik", "nama_depan", "nama_belakang", "no_telp", "jenis_kelamin",
				"id_pekerjaan", "kategori", "status_vaksinasi", "tanggal_lahir"},
			Len: len(ds.Citizens),
			Row: func(i int) []codec.Field {
				c := ds.Citizens[i]
				return []codec.Field{
					codec.Int(c.NIK),
					codec.Text(c.FirstName),
					codec.Text(c.LastName),
					codec.Text(c.Phone),
					codec.Text(c.Sex.String()),
					codec.Int(c.JobID),
					codec.Text(c.Category.String()),
					codec.Text(c.Status.String()),
					codec.Date(c.BirthDate),
				}
			},
		},
		{
			Name: "penyakit_penduduk", Columns: []string{"nik", "id_penyakit"}, Len: len(ds.CitizenConditions),
			Row: func(i int) []codec.Field {
				cc := ds.CitizenConditions[i]
				return []codec.Field{codec.Int(cc.NIK), codec.Int(cc.ConditionID)}
			},
		},
		{
			Name: "faskes", Columns: []string{"id", "nama", "kapasitas", "id_kota"}, Len: len(ds.Facilities),
			Row: func(i int) []codec.Field {
				f := ds.Facilities[i]
				return []codec.Field{codec.Int(f.ID), codec.Text(f.Name), codec.Int(int64(f.Capacity)), codec.Int(f.CityID)}
			},
		},
		{
			Name: "faskes_telp", Columns: []string{"id", "no_telp"}, Len: len(ds.FacilityPhones),
			Row: func(i int) []codec.Field {
				ph := ds.FacilityPhones[i]
				return []codec.Field{codec.Int(ph.FacilityID), codec.Text(ph.Number)}
			},
		},
		{
			Name: "puskesmas", Columns: []string{"id", "rawat_inap"}, Len: len(ds.HealthPosts),
			Row: func(i int) []codec.Field {
				h := ds.HealthPosts[i]
				return []codec.Field{codec.Int(h.FacilityID), codec.Bool(h.Inpatient)}
			},
		},
		{
			Name: "rumah_sakit", Columns: []string{"id", "kepemilikan", "kelas_rs"}, Len: len(ds.Hospitals),
			Row: func(i int) []codec.Field {
				h := ds.Hospitals[i]
				return []codec.Field{codec.Int(h.FacilityID), codec.Text(h.Ownership), codec.Int(int64(h.Class))}
			},
		},
		{
			Name: "klinik", Columns: []string{"id", "kelas_klinik"}, Len: len(ds.Clinics),
			Row: func(i int) []codec.Field {
				c := ds.Clinics[i]
				return []codec.Field{codec.Int(c.FacilityID), codec.Text(c.Class)}
			},
		},
		{
			Name: "restriksi_vaksin", Columns: []string{"id_vaksin", "id_penyakit"}, Len: len(ds.Restrictions),
			Row: func(i int) []codec.Field {
				r := ds.Restrictions[i]
				return []codec.Field{codec.Int(r.VaccineID), codec.Int(r.ConditionID)}
			},
		},
		{
			Name:    "batch",
			Columns: []string{"id", "jumlah", "jumlah_terpakai", "tanggal_kadaluarsa", "id_faskes", "id_vaksin"},
			Len:     len(ds.Batches),
			Row: func(i int) []codec.Field {
				b := ds.Batches[i]
				return []codec.Field{
					codec.Int(b.ID),
					codec.Int(int64(b.Quantity)),
					codec.Int(int64(b.QuantityUsed)),
					codec.Date(b.Expiry),
					codec.Int(b.FacilityID),
					codec.Int(b.VaccineID),
				}
			},
		},
		{
			Name: "batch_log", Columns: []string{"id_batch", "waktu", "status"}, Len: len(ds.BatchLogs),
			Row: func(i int) []codec.Field {
				l := ds.BatchLogs[i]
				return []codec.Field{codec.Int(l.BatchID), codec.Date(l.Time), codec.Text(l.Status.String())}
			},
		},
		{
			Name: "disuntik", Columns: []string{"id_batch", "nik", "tahap_vaksin", "tanggal_vaksinasi"}, Len: len(ds.Vaccinations),
			Row: func(i int) []codec.Field {
				v := ds.Vaccinations[i]
				return []codec.Field{codec.Int(v.BatchID), codec.Int(v.NIK), codec.Int(int64(v.Stage)), codec.Date(v.Date)}
			},
		},
	}
}

func named(table string, items []Named) Table {
	return Table{
		Name: table, Columns: []string{"id", "nama"}, Len: len(items),
		Row: func(i int) []codec.Field {
			return []codec.Field{codec.Int(items[i].ID), codec.Text(items[i].Name)}
		},
	}
}
