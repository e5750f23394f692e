package main

import "github.com/kelseyhightower/envconfig"

type Config struct {
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" default:"./data/badger"`
	AdminSecret    string `envconfig:"ADMIN_SECRET"`
	AdminURL       string `envconfig:"ADMIN_URL" default:"http://localhost:5000"`
	// ANONCTL_COLOURS disables colorized output when false
	Colours bool `envconfig:"ANONCTL_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
