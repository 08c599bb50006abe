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
	"testing"

	"manetsim/core"
)

func TestDVTableSelfEntry(t *testing.T) {
	tbl := newDVTable(0)
	if m := tbl.metric(0); m != 0 {
		t.Fatalf("self metric = %d, want 0", m)
	}
	if m := tbl.metric(9); m != InfiniteMetric {
		t.Fatalf("unknown dest metric = %d, want InfiniteMetric", m)
	}
}

func TestDVTableOfferOnlyRelaxes(t *testing.T) {
	tbl := newDVTable(0)
	if !tbl.offer(1, 2, 3, 1) {
		t.Fatalf("first offer to an unknown destination should install")
	}
	if tbl.offer(1, 3, 5, 1) {
		t.Fatalf("a worse metric must not be installed")
	}
	if !tbl.offer(1, 4, 2, 2) {
		t.Fatalf("a strictly better metric must be installed")
	}
	if got := tbl.metric(1); got != 2 {
		t.Fatalf("metric(1) = %d, want 2", got)
	}
}

func TestDedupCacheSuppressesRepeats(t *testing.T) {
	c := newDedupCache()
	if c.seen(core.NodeID(1), 7) {
		t.Fatalf("first sighting reported as already seen")
	}
	if !c.seen(core.NodeID(1), 7) {
		t.Fatalf("second sighting of the same pair not suppressed")
	}
	if c.seen(core.NodeID(1), 8) {
		t.Fatalf("different request id incorrectly suppressed")
	}
}

func TestDedupCacheRotatesGenerations(t *testing.T) {
	c := newDedupCache()
	for i := 0; i < dedupCapacity+10; i++ {
		if c.seen(core.NodeID(1), uint64(i)) {
			t.Fatalf("unique pair %d incorrectly reported as seen", i)
		}
	}
	if !c.seen(core.NodeID(1), uint64(dedupCapacity+5)) {
		t.Fatalf("recently-seen pair should still be suppressed after a rotation")
	}
}
