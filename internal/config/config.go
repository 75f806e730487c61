/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config holds the configuration of the hhbench driver.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/streamsketch/heavyhitters-go/hashing"
)

const (
	FamilyAffine = "affine"
	FamilyKeyed  = "keyed"
)

// StreamConfig describes the generated key stream.
type StreamConfig struct {
	Items    uint64  `yaml:"items"`
	Universe uint64  `yaml:"universe"`
	Exponent float64 `yaml:"exponent"`
	Seed     uint64  `yaml:"seed"`
	// Input, when set, names a file of whitespace separated keys read instead
	// of generating a stream.
	Input string `yaml:"input"`
}

// SketchConfig holds the dimensions of a hashed sketch.
type SketchConfig struct {
	NumHashes  int    `yaml:"num_hashes"`
	NumBuckets uint64 `yaml:"num_buckets"`
}

type MisraGriesConfig struct {
	K uint64 `yaml:"k"`
}

// HashConfig selects the row hash family of the hashed sketches.
type HashConfig struct {
	Family   string `yaml:"family"`
	Digest   string `yaml:"digest"`
	Mersenne bool   `yaml:"mersenne"`
	Seed     uint64 `yaml:"seed"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Config is the top-level configuration of the driver.
type Config struct {
	Stream         StreamConfig     `yaml:"stream"`
	Phi            float64          `yaml:"phi"`
	Watermark      float64          `yaml:"watermark"`
	CountSketch    SketchConfig     `yaml:"count_sketch"`
	CountMinSketch SketchConfig     `yaml:"count_min_sketch"`
	MisraGries     MisraGriesConfig `yaml:"misra_gries"`
	Hash           HashConfig       `yaml:"hash"`
	Log            LogConfig        `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Stream: StreamConfig{
			Items:    1_000_000,
			Universe: 1 << 30,
			Exponent: 1.5,
			Seed:     9001,
		},
		Phi:            0.001,
		Watermark:      0.01,
		CountSketch:    SketchConfig{NumHashes: 5, NumBuckets: 1 << 14},
		CountMinSketch: SketchConfig{NumHashes: 5, NumBuckets: 1 << 10},
		MisraGries:     MisraGriesConfig{K: 10},
		Hash: HashConfig{
			Family: FamilyAffine,
			Digest: "murmur3",
			Seed:   9001,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML file over the defaults. Fields missing from the file keep
// their default value. The result is not validated, so callers can apply
// overrides before calling Validate.
func Load(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}
	return cfg, nil
}

// Validate checks the values the sketch constructors do not check themselves.
func (c *Config) Validate() error {
	var errs []error
	if c.Stream.Input == "" {
		if c.Stream.Items == 0 {
			errs = append(errs, errors.New("stream.items must be positive"))
		}
		if c.Stream.Universe < 2 {
			errs = append(errs, fmt.Errorf("stream.universe must be at least 2, got %d", c.Stream.Universe))
		}
		if !(c.Stream.Exponent > 1) {
			errs = append(errs, fmt.Errorf("stream.exponent must be greater than 1, got %v", c.Stream.Exponent))
		}
	}
	if !(c.Phi > 0 && c.Phi <= 1) {
		errs = append(errs, fmt.Errorf("phi must be in (0, 1], got %v", c.Phi))
	}
	switch c.Hash.Family {
	case FamilyAffine:
	case FamilyKeyed:
		if _, err := hashing.DigestByName(c.Hash.Digest); err != nil {
			errs = append(errs, fmt.Errorf("hash.digest: %w", err))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown hash.family %q, want %q or %q", c.Hash.Family, FamilyAffine, FamilyKeyed))
	}
	return errors.Join(errs...)
}
