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
	"sync"
	"sync/atomic"

	"manetsim/core"
)

// dsdvRefreshIntv is the period at which a node's distance-vector table
// is copied into its forwarding table (spec §4.6). Neighbor sets
// themselves are recomputed by the mobility and emission processes.
const dsdvRefreshIntv = 2.0

// dsdvAdvertIntv is the full-table advertisement period (spec §4.6).
const dsdvAdvertIntv = 5.0

// DSDV implements proactive periodic distance-vector routing (spec §4.6).
type DSDV struct {
	mu       sync.Mutex
	tables   map[core.NodeID]*dvTable
	overhead atomic.Uint64
}

// NewDSDV constructs a DSDV routing core for 'n' nodes.
func NewDSDV(n int) *DSDV {
	d := &DSDV{tables: make(map[core.NodeID]*dvTable, n)}
	for i := 0; i < n; i++ {
		id := core.NodeID(i)
		d.tables[id] = newDVTable(id)
	}
	return d
}

func (d *DSDV) Name() core.Protocol { return core.DSDV }
func (d *DSDV) Overhead() uint64    { return d.overhead.Load() }

// TrySend is not supported by DSDV: the table is always fully populated
// proactively, so the traffic generator just enqueues at source (spec
// §4.9 - "submit via try_send if the routing supports it, else enqueue
// at source").
func (d *DSDV) TrySend(net Net, src, dst core.NodeID, pkt *core.Packet) bool {
	return false
}

// StartNode spawns this node's periodic refresh and advertisement
// processes.
func (d *DSDV) StartNode(net Net, node *core.Node) {
	net.Spawn(func(p *core.Proc) { d.refreshLoop(net, node, p) })
	net.Spawn(func(p *core.Proc) { d.advertiseLoop(net, node, p) })
}

func (d *DSDV) refreshLoop(net Net, node *core.Node, p *core.Proc) {
	for !p.Stopped() {
		p.Yield(dsdvRefreshIntv)
		d.mu.Lock()
		tbl := d.tables[node.ID]
		tbl.sync(node)
		d.mu.Unlock()
	}
}

func (d *DSDV) advertiseLoop(net Net, node *core.Node, p *core.Proc) {
	for !p.Stopped() {
		p.Yield(dsdvAdvertIntv)

		d.mu.Lock()
		self := d.tables[node.ID]
		self.ownSeq += 2
		self.entries[node.ID] = DSDVEntry{NextHop: node.ID, Metric: 0, Seq: self.ownSeq}
		type advert struct {
			dst core.NodeID
			e   DSDVEntry
		}
		adverts := make([]advert, 0, len(self.entries))
		for dst, e := range self.entries {
			adverts = append(adverts, advert{dst, e})
		}
		d.mu.Unlock()

		for _, nb := range node.Neighbors() {
			d.mu.Lock()
			nbTable := d.tables[nb]
			for _, a := range adverts {
				nbTable.offer(a.dst, node.ID, a.e.Metric+1, a.e.Seq)
			}
			d.mu.Unlock()
			d.overhead.Add(uint64(len(adverts)))
		}
	}
}
