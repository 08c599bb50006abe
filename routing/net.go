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

// Net is the minimal view of the simulated network a routing protocol
// needs. sim.World implements it; routing never imports sim, avoiding an
// import cycle between the two packages.
type Net interface {
	// Node returns the node with the given id, or nil if out of range.
	Node(id core.NodeID) *core.Node

	// NumNodes returns the number of nodes in the run.
	NumNodes() int

	// Now returns the scheduler's current virtual time.
	Now() core.SimTime

	// Submit enqueues 'pkt' at node 'dst', spawning its packet handler
	// if it isn't already running (spec §4.4).
	Submit(dst core.NodeID, pkt *core.Packet)

	// Emit reports an Event to whatever listener the run controller
	// configured; a nil listener is handled by the Net implementation.
	Emit(ev *core.Event)

	// Spawn starts a process on the shared scheduler.
	Spawn(fn core.Process)
}

// Protocol is the behavior a routing core plugs in: how a node decides a
// next hop, and what periodic background processes (if any) the
// protocol runs.
type Protocol interface {
	// Name identifies the protocol for logging and metrics.
	Name() core.Protocol

	// TrySend is the traffic generator's entry point (spec §4.9). It
	// returns true when the protocol has taken the packet itself
	// (reactive protocols with no known route buffer it and start
	// discovery); the caller must then NOT also enqueue at source. It
	// returns false when a route is already known or the protocol never
	// buffers (DSDV, OLSR); the caller then enqueues 'pkt' at source.
	TrySend(net Net, src, dst core.NodeID, pkt *core.Packet) (handled bool)

	// StartNode spawns whatever per-node background processes the
	// protocol needs (DSDV/OLSR periodic refresh and advertisement;
	// AODV and DSR need none).
	StartNode(net Net, node *core.Node)

	// Overhead returns the protocol's cumulative routing-overhead
	// counter (spec §4.10).
	Overhead() uint64
}
