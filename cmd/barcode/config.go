package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Budgets above this make whitelist expansion impractically large.
const maxMismatch = 2

// Config is a specification of inputs, layout and correction policy
type Config struct {
	Fq1       string `json:"fq1"`       // Barcode read
	Fq2       string `json:"fq2"`       // cDNA read, written out re-tagged
	Pattern   string `json:"pattern"`   // Layout of fq1, e.g. C8L16C8L16C8L1U12T18
	Whitelist string `json:"whitelist"` // One barcode per line, may be gzipped
	Mismatch  int    `json:"mismatch"`
	Threads   int    `json:"threads"`
	Outdir    string `json:"outdir"`
	Gzip      bool   `json:"gzip"`
}

func defaultConfig() *Config {
	return &Config{
		Mismatch: 1,
		Threads:  1,
		Outdir:   ".",
	}
}

func readConfigFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return configFromJSON(data)
}

func configFromJSON(data []byte) (*Config, error) {
	c := defaultConfig()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, err
	}
	if c.Threads < 1 {
		c.Threads = 1
	}
	if c.Outdir == "" {
		c.Outdir = "."
	}
	return c, nil
}

// merge copies the fields of o whose flag was set on the command line.
func (c *Config) merge(o *Config, set map[string]bool) {
	if set["fq1"] {
		c.Fq1 = o.Fq1
	}
	if set["fq2"] {
		c.Fq2 = o.Fq2
	}
	if set["pattern"] {
		c.Pattern = o.Pattern
	}
	if set["whitelist"] {
		c.Whitelist = o.Whitelist
	}
	if set["mismatch"] {
		c.Mismatch = o.Mismatch
	}
	if set["threads"] {
		c.Threads = max(o.Threads, 1)
	}
	if set["outdir"] && o.Outdir != "" {
		c.Outdir = o.Outdir
	}
	if set["gzip"] {
		c.Gzip = o.Gzip
	}
}

func (c *Config) validate() error {
	var errs []error
	for _, f := range []struct{ name, value string }{
		{"fq1", c.Fq1},
		{"fq2", c.Fq2},
		{"pattern", c.Pattern},
		{"whitelist", c.Whitelist},
	} {
		if f.value == "" {
			errs = append(errs, fmt.Errorf("missing %s", f.name))
		}
	}
	if c.Mismatch < 0 || c.Mismatch > maxMismatch {
		errs = append(errs, fmt.Errorf("mismatch must be between 0 and %d, got %d", maxMismatch, c.Mismatch))
	}
	if c.Threads < 1 {
		errs = append(errs, fmt.Errorf("threads must be at least 1, got %d", c.Threads))
	}
	if c.Outdir == "" {
		errs = append(errs, errors.New("missing outdir"))
	}
	return errors.Join(errs...)
}

func (c *Config) outputName() string {
	name := "out_2.fq"
	if c.Gzip {
		name += ".gz"
	}
	return filepath.Join(c.Outdir, name)
}
