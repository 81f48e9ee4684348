package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hilyafadhilah/tubes-basdat/internal/codec"
	"github.com/hilyafadhilah/tubes-basdat/internal/loader"
	"github.com/hilyafadhilah/tubes-basdat/internal/seeder"
	"github.com/spf13/viper"
)

const FileName = "tubes.config.json"

type Config struct {
	InputDir   string        `json:"input_dir" mapstructure:"input_dir"`
	OutputDir  string        `json:"output_dir" mapstructure:"output_dir"`
	ExportPath string        `json:"export_path" mapstructure:"export_path"`
	Dialect    string        `json:"dialect" mapstructure:"dialect"`
	Encoding   codec.Encoder `json:"encoding" mapstructure:"encoding"`
	Synthesis  Synthesis     `json:"synthesis" mapstructure:"synthesis"`
	Database   Database      `json:"database" mapstructure:"database"`
	Log        Log           `json:"log" mapstructure:"log"`
}

// Synthesis overrides the generator defaults. Ranges are [min, max] pairs;
// zero values keep the default.
type Synthesis struct {
	Citizens               int    `json:"citizens,omitempty" mapstructure:"citizens"`
	ConditionsPerCitizen   []int  `json:"conditions_per_citizen,omitempty" mapstructure:"conditions_per_citizen"`
	FacilitiesPerCity      []int  `json:"facilities_per_city,omitempty" mapstructure:"facilities_per_city"`
	PhonesPerFacility      []int  `json:"phones_per_facility,omitempty" mapstructure:"phones_per_facility"`
	RestrictionsPerVaccine []int  `json:"restrictions_per_vaccine,omitempty" mapstructure:"restrictions_per_vaccine"`
	VaccinesPerFacility    []int  `json:"vaccines_per_facility,omitempty" mapstructure:"vaccines_per_facility"`
	BatchesPerVaccine      []int  `json:"batches_per_vaccine,omitempty" mapstructure:"batches_per_vaccine"`
	BatchQuantity          []int  `json:"batch_quantity,omitempty" mapstructure:"batch_quantity"`
	ShipChance             *int   `json:"ship_chance,omitempty" mapstructure:"ship_chance"`
	BirthFrom              string `json:"birth_from,omitempty" mapstructure:"birth_from"`
	BirthTo                string `json:"birth_to,omitempty" mapstructure:"birth_to"`
	ExpiryFrom             string `json:"expiry_from,omitempty" mapstructure:"expiry_from"`
	ExpiryHorizonDays      int    `json:"expiry_horizon_days,omitempty" mapstructure:"expiry_horizon_days"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
	Schema   string `json:"schema,omitempty" mapstructure:"schema"`
}

type Log struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
	File   string `json:"file,omitempty" mapstructure:"file"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.InputDir == "" {
		cfg.InputDir = "data"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "result"
	}
	if cfg.ExportPath == "" {
		cfg.ExportPath = filepath.Join(cfg.OutputDir, "export")
	}
	if cfg.Dialect == "" {
		cfg.Dialect = "mysql"
	}

	def := codec.Default()
	if cfg.Encoding.Delimiter == "" {
		cfg.Encoding.Delimiter = def.Delimiter
	}
	if cfg.Encoding.QuoteChar == "" {
		cfg.Encoding.QuoteChar = def.QuoteChar
	}
	if cfg.Encoding.EscapeChar == "" {
		cfg.Encoding.EscapeChar = def.EscapeChar
	}
	if cfg.Encoding.LineTerminator == "" {
		cfg.Encoding.LineTerminator = def.LineTerminator
	}

	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "mysql"
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}

	return &cfg, nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.OutputDir} {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	supportedProviders := []string{"mysql", "mariadb", "postgresql", "postgres", "sqlite", "sqlite3"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	if _, err := loader.ByName(c.Dialect); err != nil {
		return err
	}
	if err := c.Encoding.Validate(); err != nil {
		return fmt.Errorf("invalid encoding: %w", err)
	}
	if c.InputDir == "" {
		return fmt.Errorf("input_dir cannot be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}

	params, err := c.Params()
	if err != nil {
		return err
	}
	return params.Validate()
}

// GetDialect resolves the configured loader dialect.
func (c *Config) GetDialect() (loader.Dialect, error) {
	return loader.ByName(c.Dialect)
}

// Params applies the synthesis overrides on top of the generator defaults.
func (c *Config) Params() (seeder.Params, error) {
	p := seeder.DefaultParams()
	s := c.Synthesis

	if s.Citizens > 0 {
		p.Citizens = s.Citizens
	}

	ranges := []struct {
		name   string
		values []int
		target *seeder.Range
	}{
		{"conditions_per_citizen", s.ConditionsPerCitizen, &p.ConditionsPerCitizen},
		{"facilities_per_city", s.FacilitiesPerCity, &p.FacilitiesPerCity},
		{"phones_per_facility", s.PhonesPerFacility, &p.PhonesPerFacility},
		{"restrictions_per_vaccine", s.RestrictionsPerVaccine, &p.RestrictionsPerVaccine},
		{"vaccines_per_facility", s.VaccinesPerFacility, &p.VaccinesPerFacility},
		{"batches_per_vaccine", s.BatchesPerVaccine, &p.BatchesPerVaccine},
		{"batch_quantity", s.BatchQuantity, &p.BatchQuantity},
	}
	for _, r := range ranges {
		if len(r.values) == 0 {
			continue
		}
		if len(r.values) != 2 {
			return p, fmt.Errorf("synthesis.%s must be a [min, max] pair", r.name)
		}
		*r.target = seeder.Range{Min: r.values[0], Max: r.values[1]}
	}

	if s.ShipChance != nil {
		p.ShipChance = *s.ShipChance
	}

	dates := []struct {
		name   string
		value  string
		target *time.Time
	}{
		{"birth_from", s.BirthFrom, &p.BirthFrom},
		{"birth_to", s.BirthTo, &p.BirthTo},
		{"expiry_from", s.ExpiryFrom, &p.ExpiryFrom},
	}
	for _, d := range dates {
		if d.value == "" {
			continue
		}
		t, err := time.Parse(codec.DateLayout, d.value)
		if err != nil {
			return p, fmt.Errorf("synthesis.%s: %w", d.name, err)
		}
		*d.target = t
	}

	if s.ExpiryHorizonDays > 0 {
		p.ExpiryHorizon = time.Duration(s.ExpiryHorizonDays) * 24 * time.Hour
	}
	return p, nil
}
