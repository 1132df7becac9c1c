package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Structs

// Config holds all information parsed from
// supplied config file.
type Config struct {
	Agent          string
	ListenSyncAddr string
	PrometheusAddr string
	SyncInterval   int
	Peers          map[string]string
	TLS            *TLS
}

// TLS points to the certificate and key used for the sync listener and for
// verifying outgoing peer connections. Leave it out to exchange snapshots
// in the clear, e.g. on an isolated field network.
type TLS struct {
	CertLoc string
	KeyLoc  string
}

// Functions

// LoadConfig takes in the path to the main config
// file of fieldsync in TOML syntax and places the
// values from the file in the corresponding struct.
func LoadConfig(configFile string) (*Config, error) {

	conf := new(Config)

	// Parse values from TOML file into struct.
	_, err := toml.DecodeFile(configFile, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read in TOML config file at '%s' with: %v", configFile, err)
	}

	if conf.Agent == "" {
		return nil, fmt.Errorf("agent name must not be empty")
	}

	if conf.ListenSyncAddr == "" {
		return nil, fmt.Errorf("agent '%s' is missing a sync listen address", conf.Agent)
	}

	// Make sure an agent is not configured to
	// broadcast snapshots to itself.
	for peer := range conf.Peers {

		if peer == conf.Agent {
			return nil, fmt.Errorf("agent '%s' must not be listed among its own peers", conf.Agent)
		}
	}

	if conf.TLS != nil {

		if (conf.TLS.CertLoc == "") || (conf.TLS.KeyLoc == "") {
			return nil, fmt.Errorf("TLS section of agent '%s' needs both a certificate and a key location", conf.Agent)
		}
	}

	// Fall back to one broadcast round per ten seconds.
	if conf.SyncInterval < 1 {
		conf.SyncInterval = 10
	}

	return conf, nil
}

// Interval returns the configured broadcast round interval.
func (conf *Config) Interval() time.Duration {

	return time.Duration(conf.SyncInterval) * time.Second
}
