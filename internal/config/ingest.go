package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"
)

// IngestConfig drives the offline population jobs.
type IngestConfig struct {
	// RequestsPerSecond paces calls to upstream APIs. Burst is always 1.
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	Legislators LegislatorsSource `yaml:"legislators"`
	Crime       CrimeSource       `yaml:"crime"`
	Census      CensusSource      `yaml:"census"`
	Health      HealthSource      `yaml:"health"`
	Spending    SpendingSource    `yaml:"spending"`
	Debt        DebtSource        `yaml:"debt"`
	Economic    EconomicSource    `yaml:"economic"`
	Legislation LegislationSource `yaml:"legislation"`
}

type LegislatorsSource struct {
	RosterCSV   string `yaml:"roster_csv"`
	NominateCSV string `yaml:"nominate_csv"`
}

type CrimeSource struct {
	BaseURL   string   `yaml:"base_url"`
	APIKeyEnv string   `yaml:"api_key_env"`
	Offenses  []string `yaml:"offenses"`
	FromYear  int      `yaml:"from_year"`
	ToYear    int      `yaml:"to_year"`
}

type CensusSource struct {
	BaseURL string `yaml:"base_url"`
	Years   []int  `yaml:"years"`
}

type HealthSource struct {
	Endpoint  string `yaml:"endpoint"`
	APIKeyEnv string `yaml:"api_key_env"`
	// Measures maps the stored measure name to the upstream search term.
	Measures []HealthMeasure `yaml:"measures"`
	Years    []string        `yaml:"years"`
}

type HealthMeasure struct {
	Name     string `yaml:"name"`
	Upstream string `yaml:"upstream"`
}

type SpendingSource struct {
	BaseURL    string `yaml:"base_url"`
	FiscalYear int    `yaml:"fiscal_year"`
	Quarter    int    `yaml:"quarter"`
}

type DebtSource struct {
	BaseURL string `yaml:"base_url"`
	// PageSize bounds each Fiscal Data request.
	PageSize int `yaml:"page_size"`
}

type EconomicSource struct {
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	StartYear int    `yaml:"start_year"`
}

type LegislationSource struct {
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	Limit     int    `yaml:"limit"`
}

// DefaultIngest returns the configuration used when no file is given.
func DefaultIngest() IngestConfig {
	return IngestConfig{
		RequestsPerSecond: 2,
		Legislators: LegislatorsSource{
			RosterCSV:   "legislator_data/legislators-current.csv",
			NominateCSV: "legislator_data/HS119_members.csv",
		},
		Crime: CrimeSource{
			BaseURL:   "https://api.usa.gov/crime/fbi/cde",
			APIKeyEnv: "FBI_API_KEY",
			Offenses:  []string{"Homicide", "Assault", "Burglary"},
			FromYear:  2019,
			ToYear:    2024,
		},
		Census: CensusSource{
			BaseURL: "https://api.census.gov/data",
			Years:   []int{2019, 2021, 2022, 2023},
		},
		Health: HealthSource{
			Endpoint:  "https://api.americashealthrankings.org/graphql",
			APIKeyEnv: "HEALTH_DATA_API_KEY",
			Measures: []HealthMeasure{
				{Name: "Heart Diseases", Upstream: "Cardiovascular Diseases"},
				{Name: "Diabetes", Upstream: "Diabetes"},
				{Name: "Cancer", Upstream: "Cancer"},
				{Name: "Suicide", Upstream: "Suicide"},
				{Name: "Depression", Upstream: "Depression"},
				{Name: "Drug Deaths", Upstream: "Drug Deaths"},
				{Name: "Smoking", Upstream: "Smoking"},
				{Name: "HIV/AIDS", Upstream: "HIV"},
			},
			Years: []string{"2020", "2021", "2022", "2023", "2024"},
		},
		Spending: SpendingSource{
			BaseURL:    "https://api.usaspending.gov/api/v2",
			FiscalYear: 2025,
			Quarter:    3,
		},
		Debt: DebtSource{
			BaseURL:  "https://api.fiscaldata.treasury.gov/services/api/fiscal_service",
			PageSize: 100,
		},
		Economic: EconomicSource{
			BaseURL:   "https://api.stlouisfed.org/fred",
			APIKeyEnv: "FRED_API_KEY",
			StartYear: 2000,
		},
		Legislation: LegislationSource{
			BaseURL:   "https://api.congress.gov/v3",
			APIKeyEnv: "CONGRESS_API_KEY",
			Limit:     50,
		},
	}
}

// LoadIngest reads path over the defaults. An empty path or a missing file
// yields the defaults unchanged.
func LoadIngest(path string) (IngestConfig, error) {
	cfg := DefaultIngest()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return IngestConfig{}, fmt.Errorf("read ingest config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return IngestConfig{}, fmt.Errorf("parse ingest config %s: %w", path, err)
	}
	if cfg.RequestsPerSecond <= 0 {
		return IngestConfig{}, fmt.Errorf("requests_per_second must be positive, got %v", cfg.RequestsPerSecond)
	}
	return cfg, nil
}

// APIKey resolves an api_key_env reference.
func APIKey(envName string) string {
	if envName == "" {
		return ""
	}
	return os.Getenv(envName)
}
