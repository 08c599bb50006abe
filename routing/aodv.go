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

// aodvTTL is the initial hop budget of an RREQ (spec §4.5).
const aodvTTL = 10

// rreqPropagationDelay is the per-hop processing delay before an RREQ is
// handled and possibly rebroadcast.
const rreqPropagationDelay = 0.01

type aodvRREQ struct {
	Src, Dst core.NodeID
	ReqID    uint64
	SrcSeq   uint64
	HopCount int
	TTL      int
	LastHop  core.NodeID
}

// AODV implements reactive, flood-based route discovery (spec §4.5).
type AODV struct {
	mu        sync.Mutex
	ownSeq    map[core.NodeID]uint64
	nextReqID map[core.NodeID]uint64
	reverse   map[core.NodeID]map[core.NodeID]core.NodeID // node -> originator -> reverse next hop (towards the originator)
	pending   map[[2]core.NodeID][]*core.Packet           // (src,dst) -> buffered packets
	dedup     map[core.NodeID]*dedupCache                 // per-node (originator,reqID) suppression
	overhead  atomic.Uint64
}

// NewAODV constructs an AODV routing core for 'n' nodes.
func NewAODV(n int) *AODV {
	a := &AODV{
		ownSeq:    make(map[core.NodeID]uint64),
		nextReqID: make(map[core.NodeID]uint64),
		reverse:   make(map[core.NodeID]map[core.NodeID]core.NodeID),
		pending:   make(map[[2]core.NodeID][]*core.Packet),
		dedup:     make(map[core.NodeID]*dedupCache),
	}
	for i := 0; i < n; i++ {
		id := core.NodeID(i)
		a.dedup[id] = newDedupCache()
		a.reverse[id] = make(map[core.NodeID]core.NodeID)
	}
	return a
}

func (a *AODV) Name() core.Protocol { return core.AODV }

func (a *AODV) StartNode(net Net, node *core.Node) {}

func (a *AODV) Overhead() uint64 { return a.overhead.Load() }

// TrySend implements spec §4.5: enqueue directly if a route is known,
// otherwise buffer the packet and initiate discovery.
func (a *AODV) TrySend(net Net, src, dst core.NodeID, pkt *core.Packet) bool {
	node := net.Node(src)
	if _, ok := node.RouteTable[dst]; ok {
		return false // caller enqueues normally at source
	}

	key := [2]core.NodeID{src, dst}
	a.mu.Lock()
	a.pending[key] = append(a.pending[key], pkt)
	a.ownSeq[src]++
	srcSeq := a.ownSeq[src]
	a.nextReqID[src]++
	reqID := a.nextReqID[src]
	a.mu.Unlock()

	a.overhead.Add(1)
	net.Emit(&core.Event{Type: core.EvRouteDiscovery, Node: src, Ref: dst, At: net.Now()})

	req := &aodvRREQ{Src: src, Dst: dst, ReqID: reqID, SrcSeq: srcSeq, HopCount: 0, TTL: aodvTTL, LastHop: src}
	for _, nb := range node.Neighbors() {
		a.forwardRREQ(net, nb, req)
	}
	return true
}

func (a *AODV) forwardRREQ(net Net, at core.NodeID, req *aodvRREQ) {
	net.Spawn(func(p *core.Proc) {
		p.Yield(rreqPropagationDelay)
		a.handleRREQ(net, p, at, req)
	})
}

func (a *AODV) handleRREQ(net Net, p *core.Proc, at core.NodeID, req *aodvRREQ) {
	if a.dedup[at].seen(req.Src, req.ReqID) {
		return
	}
	hop := req.HopCount + 1
	ttl := req.TTL - 1

	if at != req.Src {
		a.mu.Lock()
		a.reverse[at][req.Src] = req.LastHop
		a.mu.Unlock()
	}

	if at == req.Dst {
		a.sendRREP(net, p, req.Src, req.Dst)
		return
	}
	if ttl <= 0 {
		return
	}
	next := &aodvRREQ{Src: req.Src, Dst: req.Dst, ReqID: req.ReqID, SrcSeq: req.SrcSeq, HopCount: hop, TTL: ttl, LastHop: at}
	node := net.Node(at)
	for _, nb := range node.Neighbors() {
		if nb == req.LastHop {
			continue
		}
		a.forwardRREQ(net, nb, next)
	}
}

// sendRREP walks the reverse-route chain from destination back to
// source, installing a forward route at every intermediate node along
// the way (spec §4.5).
func (a *AODV) sendRREP(net Net, p *core.Proc, src, dst core.NodeID) {
	path := []core.NodeID{dst}
	cur := dst
	for cur != src {
		a.mu.Lock()
		prev, ok := a.reverse[cur][src]
		a.mu.Unlock()
		if !ok {
			return // reverse path incomplete; discovery failed silently
		}
		path = append(path, prev)
		cur = prev
		if len(path) > net.NumNodes()+1 {
			return // guard against a malformed reverse chain
		}
	}
	// path is [dst, ..., src]; install dst-via-successor at every node
	// on the path except dst itself.
	for i := len(path) - 2; i >= 0; i-- {
		hop := path[i]
		via := path[i+1]
		net.Node(hop).RouteTable[dst] = core.RouteEntry{NextHop: via}
	}
	a.overhead.Add(uint64(len(path) - 1))
	net.Emit(&core.Event{Type: core.EvRouteLearned, Node: src, Ref: dst, At: p.Now()})

	key := [2]core.NodeID{src, dst}
	a.mu.Lock()
	buffered := a.pending[key]
	delete(a.pending, key)
	a.mu.Unlock()
	for _, pkt := range buffered {
		net.Submit(src, pkt)
	}
}
