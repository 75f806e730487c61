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
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"github.com/streamsketch/heavyhitters-go/common"
	"github.com/streamsketch/heavyhitters-go/count"
	"github.com/streamsketch/heavyhitters-go/frequencies"
	"github.com/streamsketch/heavyhitters-go/hashing"
	"github.com/streamsketch/heavyhitters-go/internal"
	"github.com/streamsketch/heavyhitters-go/internal/bench"
	"github.com/streamsketch/heavyhitters-go/internal/config"
)

// maxPrintedRows caps the heavy hitters listed per structure.
const maxPrintedRows = 20

func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	start := time.Now()
	keys, err := loadKeys(cfg.Stream)
	if err != nil {
		return err
	}
	log.Info().
		Int("items", len(keys)).
		Dur("elapsed", time.Since(start)).
		Msgf("loaded %s keys", humanize.Comma(int64(len(keys))))
	contenders, err := newContenders(cfg)
	if err != nil {
		return err
	}
	report, err := bench.Run(ctx, keys, cfg.Phi, contenders...)
	if err != nil {
		return err
	}
	logReport(report)
	return printReport(out, report)
}

func loadKeys(cfg config.StreamConfig) ([]uint64, error) {
	switch cfg.Input {
	case "":
		return bench.ZipfKeys(cfg.Seed, cfg.Items, cfg.Universe, cfg.Exponent)
	case "-":
		return bench.ReadKeys(os.Stdin)
	default:
		file, err := os.Open(cfg.Input)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return bench.ReadKeys(file)
	}
}

func sketchOptions(cfg *config.Config) ([]count.Option, error) {
	opts := []count.Option{
		count.WithSeed(cfg.Hash.Seed),
		count.WithWatermark(cfg.Watermark),
	}
	switch cfg.Hash.Family {
	case config.FamilyKeyed:
		digest, err := hashing.DigestByName(cfg.Hash.Digest)
		if err != nil {
			return nil, err
		}
		opts = append(opts, count.WithKeyedHash(digest))
	case config.FamilyAffine:
		if cfg.Hash.Mersenne {
			opts = append(opts, count.WithMersenneModulus())
		}
	}
	return opts, nil
}

func newContenders(cfg *config.Config) ([]bench.Contender, error) {
	opts, err := sketchOptions(cfg)
	if err != nil {
		return nil, err
	}
	cs, err := count.NewCountSketch(cfg.CountSketch.NumHashes, cfg.CountSketch.NumBuckets, opts...)
	if err != nil {
		return nil, fmt.Errorf("count sketch: %w", err)
	}
	cms, err := count.NewCountMinSketch(cfg.CountMinSketch.NumHashes, cfg.CountMinSketch.NumBuckets, opts...)
	if err != nil {
		return nil, fmt.Errorf("count-min sketch: %w", err)
	}
	mg, err := frequencies.NewMisraGries(cfg.MisraGries.K)
	if err != nil {
		return nil, fmt.Errorf("misra-gries: %w", err)
	}
	log.Debug().Msg(cs.String())
	log.Debug().Msg(cms.String())
	return []bench.Contender{
		{Name: internal.FamilyEnum.CountSketch.Name, Sketch: cs},
		{Name: internal.FamilyEnum.CountMin.Name, Sketch: cms},
		{Name: internal.FamilyEnum.MisraGries.Name, Sketch: mg},
	}, nil
}

func logReport(report bench.Report) {
	base := report.Baseline
	log.Info().
		Str("structure", base.Name).
		Int("distinct", report.Distinct).
		Dur("add", base.AddTime).
		Dur("query", base.QueryTime).
		Int("heavyHitters", len(base.HeavyHitters)).
		Str("size", humanize.IBytes(base.Size)).
		Msg("exact count")
	for _, res := range report.Results {
		log.Info().
			Str("structure", res.Name).
			Dur("add", res.AddTime).
			Dur("query", res.QueryTime).
			Int("heavyHitters", len(res.HeavyHitters)).
			Float64("precision", res.Precision).
			Float64("recall", res.Recall).
			Str("size", humanize.IBytes(res.Size)).
			Str("saved", signedBytes(res.SavedBytes(base))).
			Msg("sketch")
	}
}

func printReport(out io.Writer, report bench.Report) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s items, %s distinct, phi %v\n\n",
		humanize.Comma(int64(report.Items)), humanize.Comma(int64(report.Distinct)), report.Phi)
	fmt.Fprintln(w, "STRUCTURE\tADD\tQUERY\tHEAVY HITTERS\tPRECISION\tRECALL\tSIZE\tSAVED")
	rows := append([]bench.Result{report.Baseline}, report.Results...)
	for _, res := range rows {
		fmt.Fprintf(w, "%s\t%v\t%v\t%d\t%.3f\t%.3f\t%s\t%s\n",
			res.Name, res.AddTime, res.QueryTime, len(res.HeavyHitters),
			res.Precision, res.Recall, humanize.IBytes(res.Size), signedBytes(res.SavedBytes(report.Baseline)))
	}
	fmt.Fprintln(w)
	for _, res := range rows {
		printHeavyHitters(w, res.Name, res.HeavyHitters)
	}
	return w.Flush()
}

func printHeavyHitters(w io.Writer, name string, rows []common.HeavyHitter) {
	fmt.Fprintf(w, "%s heavy hitters:\n", name)
	for i, row := range rows {
		if i == maxPrintedRows {
			fmt.Fprintf(w, "  ... %d more\n", len(rows)-i)
			break
		}
		fmt.Fprintln(w, row.String())
	}
	fmt.Fprintln(w)
}

func signedBytes(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}
