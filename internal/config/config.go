package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Criteria is the user's search preferences: target roles, salary floor, and
// the location ruleset the filter applies.
type Criteria struct {
	Roles     []string `yaml:"roles"`
	MinSalary int      `yaml:"min_salary"`

	Origin         string `yaml:"origin"`       // e.g. "Bayonne, NJ"
	OriginState    string `yaml:"origin_state"` // lowercase abbreviation, e.g. "nj"
	CloseRadiusMi  int    `yaml:"close_radius_mi"`
	MediumRadiusMi int    `yaml:"medium_radius_mi"`

	// Municipality lists implementing the radius buckets as a static lookup
	// table, keyed by lowercase city name.
	CloseCities  []string `yaml:"close_cities"`
	MediumCities []string `yaml:"medium_cities"`

	EligibleBoroughs []string `yaml:"eligible_boroughs"`
	ExcludedBoroughs []string `yaml:"excluded_boroughs"`
}

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
		LogJSON bool   `yaml:"log_json"`
		Debug   bool   `yaml:"debug"`
	} `yaml:"app"`

	Criteria Criteria `yaml:"criteria"`

	Scraper struct {
		Sources        []string `yaml:"sources"` // linkedin | indeed | glassdoor
		MaxPerSource   int      `yaml:"max_per_source"`
		RequestsPerSec float64  `yaml:"requests_per_sec"`
		Burst          int      `yaml:"burst"`
	} `yaml:"scraper"`

	Telegram struct {
		ChatID         int64  `yaml:"chat_id"`
		KeyringAccount string `yaml:"keyring_account"`
	} `yaml:"telegram"`

	Schedule struct {
		MorningSpec string `yaml:"morning"` // cron spec, e.g. "0 8 * * *"
		EveningSpec string `yaml:"evening"`
		BatchSize   int    `yaml:"batch_size"` // postings auto-delivered per cycle
	} `yaml:"schedule"`

	RetentionDays int `yaml:"retention_days"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Default returns the built-in configuration: an IT-support search around
// Bayonne, NJ. Written to the data dir on first run.
func Default() Config {
	var cfg Config
	cfg.App.DataDir = "."

	cfg.Criteria = Criteria{
		Roles: []string{
			"IT Support", "IT Support Specialist", "Help Desk Technician",
			"Desktop Support", "Service Desk Analyst", "Technical Support Engineer",
			"Customer Support Lead", "AI Support Specialist",
		},
		MinSalary:      70000,
		Origin:         "Bayonne, NJ",
		OriginState:    "nj",
		CloseRadiusMi:  15,
		MediumRadiusMi: 30,
		CloseCities: []string{
			"bayonne", "jersey city", "hoboken", "newark", "secaucus",
			"kearny", "harrison", "union city", "elizabeth",
		},
		MediumCities: []string{
			"fort lee", "hackensack", "montclair", "clifton", "passaic",
			"paterson", "paramus", "morristown", "parsippany", "edison",
			"new brunswick", "woodbridge", "perth amboy", "linden", "rahway",
			"cranford", "englewood", "bloomfield",
		},
		EligibleBoroughs: []string{"manhattan", "brooklyn", "new york", "nyc"},
		ExcludedBoroughs: []string{"queens", "bronx", "staten island"},
	}

	cfg.Scraper.Sources = []string{"linkedin", "indeed", "glassdoor"}
	cfg.Scraper.MaxPerSource = 25
	cfg.Scraper.RequestsPerSec = 0.5
	cfg.Scraper.Burst = 1

	cfg.Telegram.KeyringAccount = "jobscout:telegram"

	cfg.Schedule.MorningSpec = "0 8 * * *"
	cfg.Schedule.EveningSpec = "0 18 * * *"
	cfg.Schedule.BatchSize = 12

	cfg.RetentionDays = 30
	return cfg
}
