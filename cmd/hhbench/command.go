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

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/streamsketch/heavyhitters-go/internal/config"
)

type flags struct {
	configPath string
	items      uint64
	phi        float64
	seed       uint64
	input      string
	family     string
	digest     string
	mersenne   bool
	logLevel   string
	jsonLogs   bool
}

func newRootCommand() *cobra.Command {
	cmd, _ := newCommand()
	return cmd
}

// newCommand returns the root command and the values its flags parse into.
func newCommand() (*cobra.Command, *flags) {
	f := &flags{}
	cmd := &cobra.Command{
		Use:          "hhbench",
		Short:        "Compare Count Sketch, Count-Min Sketch and Misra-Gries against an exact count",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			if err := setupLogger(cfg.Log); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "", "YAML configuration file")
	fs.Uint64VarP(&f.items, "items", "n", 0, "number of keys to generate")
	fs.Float64VarP(&f.phi, "phi", "p", 0, "heavy hitter fraction")
	fs.Uint64Var(&f.seed, "seed", 0, "seed of the generated stream and of the hash families")
	fs.StringVarP(&f.input, "input", "f", "", "read whitespace separated keys from this file, - for stdin")
	fs.StringVar(&f.family, "hash", "", "row hash family: affine or keyed")
	fs.StringVar(&f.digest, "digest", "", "digest of the keyed family")
	fs.BoolVar(&f.mersenne, "mersenne", false, "use the 2^61-1 modulus in the affine family")
	fs.StringVar(&f.logLevel, "log-level", "", "log level")
	fs.BoolVar(&f.jsonLogs, "json", false, "log JSON instead of console output")
	return cmd, f
}

// loadConfig reads the configuration file, if any, and applies the flags set
// on the command line over it.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return nil, err
		}
	}

	fs := cmd.Flags()
	if fs.Changed("items") {
		cfg.Stream.Items = f.items
	}
	if fs.Changed("phi") {
		cfg.Phi = f.phi
	}
	if fs.Changed("seed") {
		cfg.Stream.Seed = f.seed
		cfg.Hash.Seed = f.seed
	}
	if fs.Changed("input") {
		cfg.Stream.Input = f.input
	}
	if fs.Changed("hash") {
		cfg.Hash.Family = f.family
	}
	if fs.Changed("digest") {
		cfg.Hash.Digest = f.digest
	}
	if fs.Changed("mersenne") {
		cfg.Hash.Mersenne = f.mersenne
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if fs.Changed("json") {
		cfg.Log.JSON = f.jsonLogs
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setupLogger(cfg config.LogConfig) error {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	if cfg.JSON {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return nil
}
