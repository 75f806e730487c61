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
	"github.com/streamsketch/heavyhitters-go/common"
)

// PrecisionRecall scores the keys of got against the keys of truth. A key of
// got absent from truth is a false positive, a key of truth absent from got a
// false negative. Counts are ignored. Both are 0 when undefined.
func PrecisionRecall(truth, got []common.HeavyHitter) (precision, recall float64) {
	want := make(map[uint64]struct{}, len(truth))
	for _, row := range truth {
		want[row.Key] = struct{}{}
	}
	var tp, fp float64
	for _, row := range got {
		if _, ok := want[row.Key]; ok {
			tp++
		} else {
			fp++
		}
	}
	fn := float64(len(want)) - tp
	if tp+fp > 0 {
		precision = tp / (tp + fp)
	}
	if tp+fn > 0 {
		recall = tp / (tp + fn)
	}
	return precision, recall
}
