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

import "manetsim/core"

// trafficLoop offers traffic at rate lambda=traffic_load packets/s (spec
// §4.9): pick two distinct nodes, create a packet, hand it to the
// routing core's TrySend, falling back to a plain source enqueue for
// protocols that don't buffer (DSDV, OLSR).
func (w *World) trafficLoop(p *core.Proc) {
	lambda := float64(w.cfg.TrafficLoad)
	interval := core.SimTime(1.0 / lambda)

	for !p.Stopped() {
		p.Yield(interval)

		src, dst := w.pickPair()
		pkt := core.NewPacket(src, dst, p.Now())
		w.metrics.recordSent()
		w.Emit(&core.Event{Type: core.EvPacketSent, Node: src, Ref: dst, Val: pkt, At: p.Now()})

		if !w.proto.TrySend(w, src, dst, pkt) {
			w.Submit(src, pkt)
		}
	}
}

// pickPair samples two distinct node ids uniformly.
func (w *World) pickPair() (src, dst core.NodeID) {
	n := len(w.nodes)
	src = core.NodeID(w.rng.Intn(n))
	dst = src
	for dst == src {
		dst = core.NodeID(w.rng.Intn(n))
	}
	return
}
