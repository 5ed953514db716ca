package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/diskfs/go-mbrscan/partition/mbr"
)

// Config is the global tool configuration
var Config = GlobalConfig{}

// GlobalConfig is the global tool configuration
type GlobalConfig struct {
	Scan ScanConfig `yaml:"scan"`
}

// ScanConfig controls how partition tables are walked
type ScanConfig struct {
	CheckSignature bool `yaml:"checkSignature"`
	MaxChainLength int  `yaml:"maxChainLength"`
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mbrscan", "config.yml")
}

// readConfig loads the configuration file. A missing file leaves the defaults in place.
func readConfig(cfgPath string) error {
	if cfgPath == "" {
		return nil
	}
	cfgBytes, err := os.ReadFile(cfgPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %q: %v", cfgPath, err)
	}
	if err := yaml.UnmarshalStrict(cfgBytes, &Config); err != nil {
		return fmt.Errorf("failed to parse %q: %v", cfgPath, err)
	}
	if Config.Scan.MaxChainLength < 0 {
		return fmt.Errorf("%q: maxChainLength must not be negative", cfgPath)
	}
	return nil
}

// walkOptions turns the configuration, with flag overrides, into walker options
func (c ScanConfig) walkOptions() []mbr.WalkOption {
	var opts []mbr.WalkOption
	if c.CheckSignature {
		opts = append(opts, mbr.WithSignatureCheck())
	}
	if c.MaxChainLength > 0 {
		opts = append(opts, mbr.WithMaxChainLength(c.MaxChainLength))
	}
	return opts
}
