package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Annotation
	AnnotatorType string `envconfig:"ANNOTATOR_TYPE" default:"rekognition"`
	AWSRegion     string `envconfig:"AWS_REGION" default:"us-east-1"`

	// Scoring
	ScoringProfile string `envconfig:"SCORING_PROFILE" default:"person_color"`

	// Notifications
	NotifyEndpoint string        `envconfig:"NOTIFY_ENDPOINT"`
	NotifySecret   string        `envconfig:"NOTIFY_SECRET"`
	NotifyInterval time.Duration `envconfig:"NOTIFY_INTERVAL" default:"5s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
