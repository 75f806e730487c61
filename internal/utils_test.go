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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPowerOf2(t *testing.T) {
	assert.False(t, IsPowerOf2(0))
	assert.False(t, IsPowerOf2(-4))
	assert.True(t, IsPowerOf2(1))
	assert.True(t, IsPowerOf2(uint64(1<<63)))
	assert.False(t, IsPowerOf2(uint64(100)))
	assert.True(t, IsPowerOf2(int32(1024)))
	assert.False(t, IsPowerOf2(int8(-128)))
}

func TestCeilPowerOf2(t *testing.T) {
	testCases := []struct {
		name     string
		input    uint64
		expected uint64
	}{
		{name: "n=0", input: 0, expected: 1},
		{name: "n=1", input: 1, expected: 1},
		{name: "n=2", input: 2, expected: 2},
		{name: "n=3", input: 3, expected: 4},
		{name: "n=100", input: 100, expected: 128},
		{name: "n=1024", input: 1024, expected: 1024},
		{name: "n=1025", input: 1025, expected: 2048},
		{name: "n=2^63", input: 1 << 63, expected: 1 << 63},
		{name: "n=2^63+1", input: 1<<63 + 1, expected: 1 << 63},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CeilPowerOf2(tc.input))
		})
	}
}
