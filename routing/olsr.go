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

// olsrRefreshIntv is the period at which a node's distance-vector table
// is copied into its forwarding table (spec §4.8).
const olsrRefreshIntv = 1.0

// olsrMPRIntv is the MPR-selection period (spec §4.8).
const olsrMPRIntv = 10.0

// OLSR is a simplified proactive link-state protocol (spec §4.8):
// MPR selection degenerates to "every current neighbor", and the
// routing table is maintained by the same distance-vector relaxation
// DSDV uses.
type OLSR struct {
	mu       sync.Mutex
	tables   map[core.NodeID]*dvTable
	mprs     map[core.NodeID][]core.NodeID
	overhead atomic.Uint64
}

// NewOLSR constructs an OLSR routing core for 'n' nodes.
func NewOLSR(n int) *OLSR {
	o := &OLSR{
		tables: make(map[core.NodeID]*dvTable, n),
		mprs:   make(map[core.NodeID][]core.NodeID, n),
	}
	for i := 0; i < n; i++ {
		id := core.NodeID(i)
		o.tables[id] = newDVTable(id)
	}
	return o
}

func (o *OLSR) Name() core.Protocol { return core.OLSR }
func (o *OLSR) Overhead() uint64    { return o.overhead.Load() }

// TrySend is not supported: OLSR is proactive like DSDV, see its comment.
func (o *OLSR) TrySend(net Net, src, dst core.NodeID, pkt *core.Packet) bool {
	return false
}

func (o *OLSR) StartNode(net Net, node *core.Node) {
	net.Spawn(func(p *core.Proc) { o.refreshLoop(net, node, p) })
	net.Spawn(func(p *core.Proc) { o.mprLoop(net, node, p) })
	net.Spawn(func(p *core.Proc) { o.relaxLoop(net, node, p) })
}

func (o *OLSR) refreshLoop(net Net, node *core.Node, p *core.Proc) {
	for !p.Stopped() {
		p.Yield(olsrRefreshIntv)
		o.mu.Lock()
		o.tables[node.ID].sync(node)
		o.mu.Unlock()
	}
}

// mprLoop selects every current neighbor as a multipoint relay (the
// degenerate MPR set sufficient for the topology sizes handled; a real
// MPR-filtered flood is a recognized refinement, not implemented here).
func (o *OLSR) mprLoop(net Net, node *core.Node, p *core.Proc) {
	for !p.Stopped() {
		p.Yield(olsrMPRIntv)
		nbs := node.Neighbors()
		o.mu.Lock()
		o.mprs[node.ID] = nbs
		o.mu.Unlock()
		o.overhead.Add(uint64(len(nbs)))
	}
}

// relaxLoop offers this node's table to its neighbors at the same
// cadence as DSDV's advertisement (spec §4.8: "otherwise updated by the
// same distance-vector mechanics as DSDV").
func (o *OLSR) relaxLoop(net Net, node *core.Node, p *core.Proc) {
	for !p.Stopped() {
		p.Yield(dsdvAdvertIntv)

		o.mu.Lock()
		self := o.tables[node.ID]
		type advert struct {
			dst core.NodeID
			e   DSDVEntry
		}
		adverts := make([]advert, 0, len(self.entries))
		for dst, e := range self.entries {
			adverts = append(adverts, advert{dst, e})
		}
		o.mu.Unlock()

		for _, nb := range node.Neighbors() {
			o.mu.Lock()
			nbTable := o.tables[nb]
			for _, a := range adverts {
				nbTable.offer(a.dst, node.ID, a.e.Metric+1, a.e.Seq)
			}
			o.mu.Unlock()
		}
	}
}
