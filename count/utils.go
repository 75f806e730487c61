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

package count

import (
	"errors"
	"math"

	"github.com/streamsketch/heavyhitters-go/internal"
)

// SuggestNumBuckets returns the smallest power of 2 number of buckets giving a
// Count-Min relative error of at most relativeError.
func SuggestNumBuckets(relativeError float64) (uint64, error) {
	if !(relativeError > 0) {
		return 0, errors.New("relative error must be greater than 0.0")
	}
	buckets := math.Ceil(math.E / relativeError)
	if buckets >= 1<<40 {
		return 0, errors.New("relative error too small, more than 2^40 buckets required")
	}
	return internal.CeilPowerOf2(uint64(buckets)), nil
}

// SuggestNumHashes returns the number of rows needed for an estimate to stay
// within the error bound with the given confidence.
func SuggestNumHashes(confidence float64) (int, error) {
	if !(confidence >= 0 && confidence < 1.0) {
		return 0, errors.New("confidence must be in [0, 1.0)")
	}
	return max(1, int(math.Ceil(math.Log(1.0/(1.0-confidence))))), nil
}
