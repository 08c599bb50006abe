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

import "manetsim/core"

// InfiniteMetric marks the absence of a DSDV/OLSR route (spec §3).
const InfiniteMetric = 1<<31 - 1

// DSDVEntry is a DSDV/OLSR distance-vector table entry.
type DSDVEntry struct {
	NextHop core.NodeID
	Metric  int
	Seq     uint64
}

// dvTable is the per-node distance-vector table shared by the DSDV and
// OLSR implementations (spec §4.8: OLSR's routing table "is otherwise
// updated by the same distance-vector mechanics as DSDV").
type dvTable struct {
	ownSeq  uint64
	entries map[core.NodeID]DSDVEntry
}

func newDVTable(self core.NodeID) *dvTable {
	t := &dvTable{entries: make(map[core.NodeID]DSDVEntry)}
	t.entries[self] = DSDVEntry{NextHop: self, Metric: 0, Seq: 0}
	return t
}

// metric returns the current metric to 'dst', or InfiniteMetric if unknown.
func (t *dvTable) metric(dst core.NodeID) int {
	e, ok := t.entries[dst]
	if !ok {
		return InfiniteMetric
	}
	return e.Metric
}

// offer relaxes the table with a neighbor-advertised entry (d, via
// neighbor, metric k+1). Returns true if the entry was installed.
func (t *dvTable) offer(dst, via core.NodeID, metric int, seq uint64) bool {
	if metric >= t.metric(dst) {
		return false
	}
	t.entries[dst] = DSDVEntry{NextHop: via, Metric: metric, Seq: seq}
	return true
}

// sync writes every installed next hop into the node's forwarding table
// (spec §3: "per-destination routing table (map destination-id ->
// next-hop-id)" is what the packet handler consults).
func (t *dvTable) sync(node *core.Node) {
	for dst, e := range t.entries {
		if dst == node.ID || e.Metric >= InfiniteMetric {
			continue
		}
		node.RouteTable[dst] = core.RouteEntry{NextHop: e.NextHop}
	}
}
