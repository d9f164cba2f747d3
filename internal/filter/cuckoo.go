// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package filter

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	cuckoo "github.com/seiflotfy/cuckoofilter"
)

// CuckooFilter is a Filter backed by a cuckoo filter, sized at
// construction from the expected number of distinct objects the cache
// will ever see. A cuckoo filter stands in for a classic counting bloom
// filter; it additionally supports deletion, unused here.
type CuckooFilter struct {
	cf *cuckoo.Filter
}

// NewCuckooFilter returns a CuckooFilter sized for capacity distinct
// entries. capacity should track the cache's expected working-set
// cardinality, not its byte size.
func NewCuckooFilter(capacity uint) *CuckooFilter {
	return &CuckooFilter{cf: cuckoo.NewFilter(capacity)}
}

func (f *CuckooFilter) ExistOrInsert(id int64) bool {
	key := filterKey(id)
	if f.cf.Lookup(key) {
		return true
	}
	f.cf.InsertUnique(key)
	return false
}

// filterKey derives an 8-byte cuckoo filter key from an int64 id by
// hashing its big-endian encoding with xxhash, rather than inserting the
// raw id bytes directly: ids in trace files tend to cluster in narrow,
// low-entropy ranges, which a direct encoding would carry straight into
// the filter's bucket layout.
func filterKey(id int64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(id))
	h := xxhash.Sum64(buf[:])
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], h)
	return key[:]
}
