package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// RelayURL is the intermediary endpoint feed URLs are fetched
	// through; the feed URL is passed as its `url` query parameter.
	RelayURL string `envconfig:"RELAY_URL" default:"https://api.allorigins.win/raw"`

	OPMLPath string `envconfig:"OPML_PATH"`
	DBPath   string `envconfig:"DB_PATH" default:"feedreader.db"`

	BatchSize    int `envconfig:"BATCH_SIZE" default:"3"`
	BatchDelayMS int `envconfig:"BATCH_DELAY_MS" default:"300"`

	FetchTimeout    int `envconfig:"FETCH_TIMEOUT" default:"10"`
	RefreshInterval int `envconfig:"REFRESH_INTERVAL" default:"600"`
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) GetBatchDelay() time.Duration {
	return time.Duration(c.BatchDelayMS) * time.Millisecond
}

func (c *Config) GetFetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeout) * time.Second
}

func (c *Config) GetRefreshInterval() time.Duration {
	return time.Duration(c.RefreshInterval) * time.Second
}
