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

// Package sim assembles the core engine and the four routing cores into
// a runnable network: node placement, mobility, the neighbor oracle,
// traffic generation and metrics emission (spec §4.2-§4.4, §4.9-§4.10).
package sim

import (
	"math/rand"

	"manetsim/core"
	"manetsim/routing"
)

// Arena is the bounded rectangle nodes move within (spec §4.2, invariant I5).
type Arena struct {
	W, H float64
}

// World wires the scheduler, the node set, the chosen routing core and
// the metrics aggregator together. It implements routing.Net so the
// routing package never needs to import sim.
type World struct {
	cfg   *core.Config
	sched *core.Scheduler
	arena Arena
	nodes []*core.Node
	proto routing.Protocol
	rng   *rand.Rand

	listener core.Listener
	metrics  *Metrics
}

// New builds a World from a validated configuration. seed drives node
// placement, mobility headings and traffic sampling. Runs with the same
// seed are not guaranteed to be identical: neighbor sets are iterated in
// Go map order, and the AODV/DSR duplicate-suppression filters take
// their salt from the global math/rand source.
func New(cfg *core.Config, seed int64, listener core.Listener) *World {
	w := &World{
		cfg:      cfg,
		sched:    core.NewScheduler(),
		arena:    Arena{W: float64(cfg.AreaSize), H: float64(cfg.AreaSize)},
		rng:      rand.New(rand.NewSource(seed)),
		listener: listener,
	}
	w.metrics = NewMetrics()
	w.proto = routing.New(cfg.Protocol, cfg.NumNodes)

	w.nodes = make([]*core.Node, cfg.NumNodes)
	for i := 0; i < cfg.NumNodes; i++ {
		pos := core.Point{X: w.rng.Float64() * w.arena.W, Y: w.rng.Float64() * w.arena.H}
		w.nodes[i] = core.NewNode(core.NodeID(i), pos, float64(cfg.NodeSpeed), float64(cfg.PauseTime), float64(cfg.TxRange))
	}
	w.refreshAllNeighbors()
	return w
}

//----------------------------------------------------------------------
// routing.Net implementation
//----------------------------------------------------------------------

func (w *World) Node(id core.NodeID) *core.Node {
	if id < 0 || int(id) >= len(w.nodes) {
		return nil
	}
	return w.nodes[id]
}

func (w *World) NumNodes() int { return len(w.nodes) }

func (w *World) Now() core.SimTime { return w.sched.Now() }

func (w *World) Submit(dst core.NodeID, pkt *core.Packet) {
	routing.Submit(w, w.Node(dst), pkt, w.onDeliver, w.onDrop)
}

func (w *World) Emit(ev *core.Event) {
	if w.listener != nil {
		w.listener(ev)
	}
}

func (w *World) Spawn(fn core.Process) { w.sched.Spawn(fn) }

// Stop requests cooperative shutdown of the run (spec §5, §7
// StopRequested): every spawned process observes it at its next Yield
// boundary and exits, and Run's main loop stops stepping once the queue
// drains, still emitting the terminal record before returning. Safe to
// call from any goroutine.
func (w *World) Stop() {
	w.sched.Stop()
}

//----------------------------------------------------------------------

func (w *World) onDeliver(pkt *core.Packet) {
	delay := float64(pkt.Delivery - pkt.Created)
	w.metrics.recordDelivery(delay)
}

func (w *World) onDrop(pkt *core.Packet, at core.NodeID) {
	w.metrics.recordDrop()
}

// refreshAllNeighbors recomputes every node's neighbor set from current
// positions, O(N^2) per call (spec §4.3).
func (w *World) refreshAllNeighbors() {
	for _, n := range w.nodes {
		w.refreshNeighbors(n)
	}
}

func (w *World) refreshNeighbors(n *core.Node) {
	pos := n.Position()
	ids := make([]core.NodeID, 0, 8)
	for _, m := range w.nodes {
		if m.ID == n.ID {
			continue
		}
		if pos.Distance(m.Position()) <= n.TxRange() {
			ids = append(ids, m.ID)
		}
	}
	n.SetNeighbors(ids)
}

// edges returns the undirected edge set {(n,m): m in neighbors(n), m.id
// > n.id} required by the metrics emission payload (spec §4.10).
func (w *World) edges() [][2]core.NodeID {
	var es [][2]core.NodeID
	for _, n := range w.nodes {
		for _, m := range n.Neighbors() {
			if m > n.ID {
				es = append(es, [2]core.NodeID{n.ID, m})
			}
		}
	}
	return es
}
