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

package frequencies

import (
	"cmp"
	"fmt"
	"slices"
)

// Row is one frequent item with its estimate and bounds.
type Row struct {
	key uint64
	est uint64
	ub  uint64
	lb  uint64
}

func newRow(key uint64, estimate uint64, ub uint64, lb uint64) Row {
	return Row{
		key: key,
		est: estimate,
		ub:  ub,
		lb:  lb,
	}
}

func (r Row) String() string {
	return fmt.Sprintf("  %20d%20d%20d %d", r.est, r.ub, r.lb, r.key)
}

func (r Row) Key() uint64 {
	return r.key
}

func (r Row) Estimate() uint64 {
	return r.est
}

func (r Row) UpperBound() uint64 {
	return r.ub
}

func (r Row) LowerBound() uint64 {
	return r.lb
}

func sortRows(rows []Row) {
	slices.SortFunc(rows, func(a, b Row) int {
		if c := cmp.Compare(b.est, a.est); c != 0 {
			return c
		}
		return cmp.Compare(a.key, b.key)
	})
}
