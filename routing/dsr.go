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

// dsrPropagationDelay is the per-hop processing delay for a DSR RREQ.
const dsrPropagationDelay = 0.01

type dsrRREQ struct {
	ReqID uint64
	Dst   core.NodeID
	Path  []core.NodeID // path_taken, src first
}

// DSR implements reactive source routing with a route cache (spec §4.7).
type DSR struct {
	mu       sync.Mutex
	nextReq  map[core.NodeID]uint64
	cache    map[[2]core.NodeID][]core.NodeID // (src,dst) -> full id path
	pending  map[[2]core.NodeID][]*core.Packet
	dedup    map[core.NodeID]*dedupCache
	overhead atomic.Uint64
}

// NewDSR constructs a DSR routing core for 'n' nodes.
func NewDSR(n int) *DSR {
	d := &DSR{
		nextReq: make(map[core.NodeID]uint64),
		cache:   make(map[[2]core.NodeID][]core.NodeID),
		pending: make(map[[2]core.NodeID][]*core.Packet),
		dedup:   make(map[core.NodeID]*dedupCache),
	}
	for i := 0; i < n; i++ {
		d.dedup[core.NodeID(i)] = newDedupCache()
	}
	return d
}

func (d *DSR) Name() core.Protocol     { return core.DSR }
func (d *DSR) Overhead() uint64        { return d.overhead.Load() }
func (d *DSR) StartNode(Net, *core.Node) {}

// TrySend implements spec §4.7: use a cached path containing self if one
// exists, otherwise flood a route request. A cached path is realized as
// a next-hop entry at every node along it (see installRoute), so the
// generic packet handler (routing.Submit/drain) forwards a source-routed
// packet exactly like any other without needing to carry the path in
// the packet itself.
func (d *DSR) TrySend(net Net, src, dst core.NodeID, pkt *core.Packet) bool {
	key := [2]core.NodeID{src, dst}
	d.mu.Lock()
	path, ok := d.cache[key]
	d.mu.Unlock()
	if ok {
		d.installRoute(net, src, path)
		return false // caller enqueues normally; handler follows RouteTable
	}

	d.mu.Lock()
	d.pending[key] = append(d.pending[key], pkt)
	d.nextReq[src]++
	reqID := d.nextReq[src]
	d.mu.Unlock()

	d.overhead.Add(1)
	net.Emit(&core.Event{Type: core.EvRouteDiscovery, Node: src, Ref: dst, At: net.Now()})

	req := &dsrRREQ{ReqID: reqID, Dst: dst, Path: []core.NodeID{src}}
	for _, nb := range net.Node(src).Neighbors() {
		d.forwardRREQ(net, nb, req)
	}
	return true
}

func (d *DSR) forwardRREQ(net Net, at core.NodeID, req *dsrRREQ) {
	net.Spawn(func(p *core.Proc) {
		p.Yield(dsrPropagationDelay)
		d.handleRREQ(net, p, at, req)
	})
}

func (d *DSR) handleRREQ(net Net, p *core.Proc, at core.NodeID, req *dsrRREQ) {
	src := req.Path[0]
	if d.dedup[at].seen(src, req.ReqID) {
		return
	}
	path := append(append([]core.NodeID{}, req.Path...), at)

	if at == req.Dst {
		d.installRoute(net, src, path)
		d.installRoute(net, req.Dst, reverse(path))
		d.overhead.Add(uint64(len(path) - 1))
		net.Emit(&core.Event{Type: core.EvRouteLearned, Node: src, Ref: req.Dst, At: p.Now()})

		key := [2]core.NodeID{src, req.Dst}
		d.mu.Lock()
		buffered := d.pending[key]
		delete(d.pending, key)
		d.mu.Unlock()
		for _, pkt := range buffered {
			net.Submit(src, pkt)
		}
		return
	}
	next := &dsrRREQ{ReqID: req.ReqID, Dst: req.Dst, Path: path}
	for _, nb := range net.Node(at).Neighbors() {
		if contains(path, nb) {
			continue
		}
		d.forwardRREQ(net, nb, next)
	}
}

// installRoute caches 'path' under (path[0],dst-of-path) and primes the
// route table of every hop with its immediate successor, so the generic
// packet handler (routing.Submit/drain) can forward without needing to
// know about source routing.
func (d *DSR) installRoute(net Net, from core.NodeID, path []core.NodeID) {
	if len(path) == 0 {
		return
	}
	key := [2]core.NodeID{path[0], path[len(path)-1]}
	d.mu.Lock()
	d.cache[key] = append([]core.NodeID{}, path...)
	d.mu.Unlock()
	for i := 0; i < len(path)-1; i++ {
		net.Node(path[i]).RouteTable[path[len(path)-1]] = core.RouteEntry{NextHop: path[i+1]}
	}
}

func reverse(path []core.NodeID) []core.NodeID {
	r := make([]core.NodeID, len(path))
	for i, id := range path {
		r[len(path)-1-i] = id
	}
	return r
}

func contains(path []core.NodeID, id core.NodeID) bool {
	for _, p := range path {
		if p == id {
			return true
		}
	}
	return false
}
