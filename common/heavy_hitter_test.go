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

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortHeavyHitters(t *testing.T) {
	rows := []HeavyHitter{
		{Count: 3, Key: 9},
		{Count: 10, Key: 4},
		{Count: 3, Key: 2},
		{Count: 7, Key: 1},
		{Count: 10, Key: 1},
	}
	SortHeavyHitters(rows)
	assert.Equal(t, []HeavyHitter{
		{Count: 10, Key: 1},
		{Count: 10, Key: 4},
		{Count: 7, Key: 1},
		{Count: 3, Key: 2},
		{Count: 3, Key: 9},
	}, rows)

	var empty []HeavyHitter
	SortHeavyHitters(empty)
	assert.Empty(t, empty)
}

func TestThreshold(t *testing.T) {
	assert.Equal(t, 0.0, Threshold(0.5, 0))
	assert.Equal(t, 50000.0, Threshold(0.5, 100000))
	assert.Equal(t, -10.0, Threshold(-1, 10))
}

func TestHeavyHitterString(t *testing.T) {
	assert.Equal(t, "                    12 7", HeavyHitter{Count: 12, Key: 7}.String())
}
