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

// Package bench compares the frequency sketches against an exact count on one
// stream: timing, heavy hitter precision and recall, memory.
package bench

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
)

// scramble spreads Zipf ranks over the key space; odd multipliers are
// bijective modulo 2^64.
const scramble = 0x9e3779b97f4a7c15

// ZipfKeys returns n keys whose ranks follow a Zipf law with the given
// exponent over [0, universe). Rank 0 is the most frequent.
func ZipfKeys(seed uint64, n uint64, universe uint64, exponent float64) ([]uint64, error) {
	if universe < 2 {
		return nil, fmt.Errorf("universe must be at least 2, got %d", universe)
	}
	r := rand.New(rand.NewPCG(seed, seed^0xda3e39cb94b95bdb))
	z := rand.NewZipf(r, exponent, 1, universe-1)
	if z == nil {
		return nil, fmt.Errorf("exponent must be greater than 1, got %v", exponent)
	}
	keys := make([]uint64, n)
	for i := range keys {
		keys[i] = z.Uint64() * scramble
	}
	return keys, nil
}

// ReadKeys parses whitespace separated unsigned integers.
func ReadKeys(r io.Reader) ([]uint64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	keys := make([]uint64, 0)
	for scanner.Scan() {
		key, err := strconv.ParseUint(scanner.Text(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", len(keys), err)
		}
		keys = append(keys, key)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, errors.New("no keys in input")
	}
	return keys, nil
}
