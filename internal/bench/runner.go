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

package bench

import (
	"context"
	"time"

	"github.com/streamsketch/heavyhitters-go/common"
)

const BaselineName = "HashTable"

// cancelCheckInterval is how many keys are added between context checks.
const cancelCheckInterval = 1 << 12

// Contender is a named sketch fed the stream.
type Contender struct {
	Name   string
	Sketch common.FrequencySketch
}

// Result is the outcome of one structure over the stream.
type Result struct {
	Name         string
	AddTime      time.Duration
	QueryTime    time.Duration
	HeavyHitters []common.HeavyHitter
	Size         uint64
	Precision    float64
	Recall       float64
}

// SavedBytes returns how much smaller r is than base, negative when larger.
func (r Result) SavedBytes(base Result) int64 {
	return int64(base.Size) - int64(r.Size)
}

type Report struct {
	Items    int
	Phi      float64
	Distinct int
	Baseline Result
	Results  []Result
}

// Run feeds keys to an exact counter and to every contender in turn, then
// scores each contender's heavy hitters against the exact ones. It stops with
// ctx.Err() once ctx is done.
func Run(ctx context.Context, keys []uint64, phi float64, contenders ...Contender) (Report, error) {
	exact := NewExact(len(keys))
	baseline, err := measure(ctx, BaselineName, exact, keys, phi)
	if err != nil {
		return Report{}, err
	}
	baseline.Precision, baseline.Recall = 1, 1

	report := Report{
		Items:    len(keys),
		Phi:      phi,
		Distinct: exact.NumDistinct(),
		Baseline: baseline,
		Results:  make([]Result, 0, len(contenders)),
	}
	for _, c := range contenders {
		res, err := measure(ctx, c.Name, c.Sketch, keys, phi)
		if err != nil {
			return Report{}, err
		}
		res.Precision, res.Recall = PrecisionRecall(baseline.HeavyHitters, res.HeavyHitters)
		report.Results = append(report.Results, res)
	}
	return report, nil
}

func measure(ctx context.Context, name string, s common.FrequencySketch, keys []uint64, phi float64) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	start := time.Now()
	for i, key := range keys {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		s.Add(key)
	}
	addTime := time.Since(start)

	start = time.Now()
	hh := s.HeavyHitters(phi)
	queryTime := time.Since(start)

	return Result{
		Name:         name,
		AddTime:      addTime,
		QueryTime:    queryTime,
		HeavyHitters: hh,
		Size:         s.Size(),
	}, nil
}
