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

package sim

import (
	"sync"
	"time"

	"manetsim/core"
)

// emissionIntv is the periodic-record cadence (spec §4.10).
const emissionIntv = 1.0

// NodeSnapshot is one node's reported state in an emission record.
type NodeSnapshot struct {
	ID     core.NodeID `json:"id"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Energy float64     `json:"energy"`
	Stats  core.Stats  `json:"stats"`
}

// Edge is an undirected neighbor relation, always reported with the
// lower id first (spec §4.10).
type Edge struct {
	A core.NodeID `json:"a"`
	B core.NodeID `json:"b"`
}

// EmissionRecord is one line of the emission-record stream (spec §6):
// either a periodic record (Final=false) or the single terminal record.
type EmissionRecord struct {
	Final bool    `json:"final"`
	At    float64 `json:"at"` // simulated seconds

	PDR           float64 `json:"pdr"`
	AvgDelay      float64 `json:"avgDelaySeconds"`
	Throughput    float64 `json:"throughputKbps"`
	TotalEnergy   float64 `json:"totalEnergyJoules"`
	Overhead      uint64  `json:"overhead"`
	TotalSent     uint64  `json:"totalSent"`
	TotalReceived uint64  `json:"totalReceived"`

	Nodes []NodeSnapshot `json:"nodes,omitempty"`
	Edges []Edge         `json:"edges,omitempty"`

	ArenaW float64 `json:"arenaWidth,omitempty"`
	ArenaH float64 `json:"arenaHeight,omitempty"`

	// Terminal-only fields.
	Protocol  core.Protocol `json:"protocol,omitempty"`
	Horizon   float64       `json:"horizonSeconds,omitempty"`
	Wallclock time.Time     `json:"wallclock,omitempty"`

	Err string `json:"err,omitempty"`
}

// GetAt, GetTotalEnergy, GetOverhead, GetSent and GetReceived satisfy
// internal/metricsexport.EmissionLike.
func (r EmissionRecord) GetAt() float64          { return r.At }
func (r EmissionRecord) GetTotalEnergy() float64 { return r.TotalEnergy }
func (r EmissionRecord) GetOverhead() uint64     { return r.Overhead }
func (r EmissionRecord) GetSent() uint64         { return r.TotalSent }
func (r EmissionRecord) GetReceived() uint64     { return r.TotalReceived }

// Metrics accumulates the counters the run controller reports on (spec
// §4.10): global and interval packets_sent/packets_received/total_delay.
type Metrics struct {
	mu sync.Mutex

	sent, intervalSent         uint64
	received, intervalReceived uint64
	totalDelay                 float64 // seconds
	dropped                    uint64
}

func NewMetrics() *Metrics { return &Metrics{} }

func (m *Metrics) recordSent() {
	m.mu.Lock()
	m.sent++
	m.intervalSent++
	m.mu.Unlock()
}

func (m *Metrics) recordDelivery(delay float64) {
	m.mu.Lock()
	m.received++
	m.intervalReceived++
	m.totalDelay += delay
	m.mu.Unlock()
}

func (m *Metrics) recordDrop() {
	m.mu.Lock()
	m.dropped++
	m.mu.Unlock()
}

// snapshot builds an emission record from the world's current state and,
// for periodic records, resets the interval counters (spec §4.10).
func (w *World) snapshot(final bool) EmissionRecord {
	w.metrics.mu.Lock()
	sent := w.metrics.sent
	received := w.metrics.received
	totalDelay := w.metrics.totalDelay
	intervalReceived := w.metrics.intervalReceived
	if !final {
		w.metrics.intervalSent = 0
		w.metrics.intervalReceived = 0
	}
	w.metrics.mu.Unlock()

	pdr := float64(received) / float64(max64(1, sent))
	avgDelay := totalDelay / float64(max64(1, received))
	throughput := (float64(intervalReceived) * 512 * 8) / (emissionIntv * 1000)

	var totalEnergy float64
	nodes := make([]NodeSnapshot, 0, len(w.nodes))
	for _, n := range w.nodes {
		residual, used := n.Energy()
		totalEnergy += used
		pos := n.Position()
		nodes = append(nodes, NodeSnapshot{ID: n.ID, X: pos.X, Y: pos.Y, Energy: residual, Stats: n.Stats()})
	}

	es := w.edges()
	edges := make([]Edge, 0, len(es))
	for _, e := range es {
		edges = append(edges, Edge{A: e[0], B: e[1]})
	}

	rec := EmissionRecord{
		Final:         final,
		At:            float64(w.sched.Now()),
		PDR:           pdr,
		AvgDelay:      avgDelay,
		Throughput:    throughput,
		TotalEnergy:   totalEnergy,
		Overhead:      w.proto.Overhead(),
		TotalSent:     sent,
		TotalReceived: received,
		Nodes:         nodes,
		Edges:         edges,
		ArenaW:        w.arena.W,
		ArenaH:        w.arena.H,
	}
	if final {
		rec.Protocol = w.cfg.Protocol
		rec.Horizon = float64(w.cfg.SimTime)
		rec.Wallclock = time.Now()
	}
	return rec
}

func max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// emissionLoop emits a periodic record every emissionIntv simulated
// seconds, refreshing the global neighbor view first (spec §4.3, §4.10).
func (w *World) emissionLoop(p *core.Proc, emit func(EmissionRecord)) {
	for !p.Stopped() {
		p.Yield(emissionIntv)
		w.refreshAllNeighbors()
		emit(w.snapshot(false))
	}
}
