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

// Package common holds the query contract shared by all frequency sketches.
package common

// FrequencySketch summarises a stream of 64-bit keys in bounded memory and
// answers approximate frequency queries.
//
// Implementations are not safe for concurrent use.
type FrequencySketch interface {
	// Add records one occurrence of key.
	Add(key uint64)
	// Estimate returns the approximate number of occurrences of key.
	Estimate(key uint64) uint64
	// HeavyHitters returns the keys whose estimate is at least phi times the
	// stream length, by descending count.
	HeavyHitters(phi float64) []HeavyHitter
	// Size returns the approximate resident size of the sketch in bytes.
	Size() uint64
}
