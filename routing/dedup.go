//----------------------------------------------------------------------
// This file is part of manetsim.
// Copyright (C) 2022 Bernd Fix >Y<
//
// manetsim is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License,
// or (at your option) any later version.
//
// manetsim is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL3.0-or-later
//----------------------------------------------------------------------

package routing

import (
	"encoding/binary"
	"math/rand"
	"sync"

	"github.com/bfix/gospel/data"

	"manetsim/core"
)

// dedupCapacity bounds the expected number of distinct (originator,
// request-id) pairs a generation of the cache is sized for.
const dedupCapacity = 256

// dedupFPR is the target false-positive rate of each bloom filter
// generation.
const dedupFPR = 1e-3

// dedupCache suppresses repeated processing of the same RREQ at a node
// (spec §4.5: "the (originator, rreq-id) cache ensures each node
// processes each RREQ at most once per propagation"). A flood that never
// converges would otherwise grow a plain seen-set without bound; instead
// this keeps exactly two bloom filter generations and rotates them,
// bounding memory at the cost of eventually forgetting very old RREQs
// (a forgotten RREQ is merely reprocessed once more). Being bloom
// filters, each generation can also report an unseen pair as seen, at
// roughly dedupFPR, and that RREQ is then suppressed at this node.
type dedupCache struct {
	mu       sync.Mutex
	cur      *data.SaltedBloomFilter
	prev     *data.SaltedBloomFilter
	inserted int
}

func newDedupCache() *dedupCache {
	return &dedupCache{cur: newGeneration()}
}

func newGeneration() *data.SaltedBloomFilter {
	salt := rand.Uint32() //nolint:gosec // simulation only, not a security boundary
	return data.NewSaltedBloomFilter(salt, dedupCapacity, dedupFPR)
}

// seen reports whether (originator, reqID) was already recorded, and
// records it if not.
func (c *dedupCache) seen(originator core.NodeID, reqID uint64) bool {
	key := dedupKey(originator, reqID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cur.Contains(key) || (c.prev != nil && c.prev.Contains(key)) {
		return true
	}
	c.cur.Add(key)
	c.inserted++
	if c.inserted >= dedupCapacity {
		c.prev = c.cur
		c.cur = newGeneration()
		c.inserted = 0
	}
	return false
}

func dedupKey(originator core.NodeID, reqID uint64) []byte {
	b := make([]byte, 12)
	binary.BigEndian.PutUint32(b[0:4], uint32(originator))
	binary.BigEndian.PutUint64(b[4:12], reqID)
	return b
}
