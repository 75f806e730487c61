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

package internal

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

const (
	// DefaultUpdateSeed seeds hash parameter generation when no seed is given.
	DefaultUpdateSeed = uint64(9001)
)

// IsPowerOf2 returns true if the given number is a positive power of 2.
func IsPowerOf2[T constraints.Integer](n T) bool {
	return n > 0 && (n&(n-1)) == 0
}

// CeilPowerOf2 returns the smallest power of 2 greater than or equal to n.
func CeilPowerOf2(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	if n > 1<<63 {
		return 1 << 63
	}
	return 1 << (64 - bits.LeadingZeros64(n-1))
}
