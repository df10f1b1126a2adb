// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

// Package config loads the mcn configuration file.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/juju/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the mcn binary.
type Config struct {
	// Logging is a loggo configuration string, e.g. "<root>=WARNING".
	Logging string        `mapstructure:"logging"`
	Echo    EchoConfig    `mapstructure:"echo"`
	Sim     SimConfig     `mapstructure:"sim"`
	Topics  []TopicConfig `mapstructure:"topics"`
}

// EchoConfig holds the echo defaults used when -c and -p are not given.
type EchoConfig struct {
	Count    uint32 `mapstructure:"count"`
	PeriodMS uint32 `mapstructure:"period_ms"`
}

// Period returns the echo period as a duration.
func (c EchoConfig) Period() time.Duration {
	return time.Duration(c.PeriodMS) * time.Millisecond
}

// SimConfig holds the simulated runtime settings.
type SimConfig struct {
	// WarmupMS is how long the publishers run before a command executes,
	// so that the first listing shows measured frequencies.
	WarmupMS uint32 `mapstructure:"warmup_ms"`
}

// Warmup returns the warm-up delay as a duration.
func (c SimConfig) Warmup() time.Duration {
	return time.Duration(c.WarmupMS) * time.Millisecond
}

// TopicConfig describes one simulated topic.
type TopicConfig struct {
	Name     string                 `mapstructure:"name"`
	RateHz   float64                `mapstructure:"rate_hz"`
	Echo     string                 `mapstructure:"echo"`
	MaxNodes int                    `mapstructure:"max_nodes"`
	// Fields are published with every value. Names keep their case.
	Fields   map[string]interface{} `mapstructure:"fields"`
}

// Load loads configuration from the file at path, or from mcn.yaml in
// the default search paths when path is empty. Environment variables
// prefixed with MCN_ override file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("mcn")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.mcn")
		v.AddConfigPath("/etc/mcn")
	}

	v.SetEnvPrefix("MCN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// The config file is optional.
	fileRead := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Annotate(err, "reading config file")
		}
		fileRead = false
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Annotate(err, "decoding config")
	}
	if fileRead {
		if err := keepFieldCase(v.ConfigFileUsed(), cfg.Topics); err != nil {
			return nil, errors.Trace(err)
		}
	}
	if len(cfg.Topics) == 0 {
		cfg.Topics = DefaultTopics()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &cfg, nil
}

// keepFieldCase decodes the topic fields from the YAML file again,
// since viper lowercases every key it loads.
func keepFieldCase(path string, topics []TopicConfig) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
	default:
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Annotate(err, "reading config file")
	}
	var raw struct {
		Topics []struct {
			Fields map[string]interface{} `yaml:"fields"`
		} `yaml:"topics"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return errors.Annotate(err, "decoding topic fields")
	}
	if len(raw.Topics) != len(topics) {
		return nil
	}
	for i, topic := range raw.Topics {
		if topic.Fields != nil {
			topics[i].Fields = topic.Fields
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging", "<root>=WARNING")
	v.SetDefault("echo.count", uint32(0xFFFFFFFF))
	v.SetDefault("echo.period_ms", 500)
	v.SetDefault("sim.warmup_ms", 1000)
}

// Validate checks the topic list.
func (c *Config) Validate() error {
	seen := make(map[string]bool)
	for i, topic := range c.Topics {
		if topic.Name == "" {
			return errors.NotValidf("topic %d with empty name", i)
		}
		if seen[topic.Name] {
			return errors.NotValidf("duplicate topic %q", topic.Name)
		}
		seen[topic.Name] = true
		if topic.RateHz < 0 {
			return errors.NotValidf("topic %q rate %v", topic.Name, topic.RateHz)
		}
		if topic.MaxNodes < 0 {
			return errors.NotValidf("topic %q max_nodes %d", topic.Name, topic.MaxNodes)
		}
	}
	return nil
}

// DefaultTopics is the simulated topic set used when the configuration
// names none.
func DefaultTopics() []TopicConfig {
	return []TopicConfig{
		{Name: "sensor_imu", RateHz: 200, Echo: "text", Fields: map[string]interface{}{"gyr": []float64{0, 0, 0}, "acc": []float64{0, 0, -9.8}}},
		{Name: "sensor_mag", RateHz: 50, Echo: "text", Fields: map[string]interface{}{"mag": []float64{0.2, 0, 0.4}}},
		{Name: "sensor_baro", RateHz: 50, Echo: "text", Fields: map[string]interface{}{"pressure_pa": 101325.0, "temperature_c": 25.0}},
		{Name: "sensor_gps", RateHz: 10, Echo: "yaml", Fields: map[string]interface{}{"fix_type": 3, "num_sv": 12}},
		{Name: "ins_output", RateHz: 100, Echo: "json", Fields: map[string]interface{}{"quat": []float64{1, 0, 0, 0}}},
		{Name: "rc_channels", RateHz: 50, Echo: "none", MaxNodes: 4},
		{Name: "fms_output", RateHz: 0, Echo: "json"},
	}
}
