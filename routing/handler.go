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

// linkRate is the simulated link bandwidth used for the per-hop
// transmission delay size/linkRate (spec §4.4).
const linkRate = 2 * 1024 // bytes/second

// txEnergy is the energy debited per packet forwarded, in joules.
const txEnergy = 0.1

// dropDelay is the delay yielded on the no-route path, in seconds.
const dropDelay = 0.001

// DeliveryFunc is invoked when a packet reaches its destination.
type DeliveryFunc func(pkt *core.Packet)

// DropFunc is invoked when a packet is dropped for lack of a route.
type DropFunc func(pkt *core.Packet, at core.NodeID)

// Submit enqueues 'pkt' at 'node' and, if no handler is currently
// draining that node's queue, spawns one (spec §4.4: "a per-node handler
// is at most one active process").
func Submit(net Net, node *core.Node, pkt *core.Packet, onDeliver DeliveryFunc, onDrop DropFunc) {
	if node.Enqueue(pkt) {
		net.Spawn(func(p *core.Proc) {
			drain(net, node, p, onDeliver, onDrop)
		})
	}
}

// drain runs the handler loop for a single node until its queue empties
// (spec §4.4).
func drain(net Net, node *core.Node, p *core.Proc, onDeliver DeliveryFunc, onDrop DropFunc) {
	for {
		pkt, ok := node.Dequeue()
		if !ok {
			return
		}
		if pkt.Dst == node.ID {
			pkt.Deliver(p.Now())
			node.RecordReceived()
			if onDeliver != nil {
				onDeliver(pkt)
			}
			net.Emit(&core.Event{Type: core.EvPacketDelivered, Node: node.ID, Ref: pkt.Src, Val: pkt, At: p.Now()})
			continue
		}

		entry, known := node.RouteTable[pkt.Dst]
		if known && node.HasNeighbor(entry.NextHop) {
			pkt.RecordHop(node.ID, p.Now())
			delay := core.SimTime(float64(pkt.Size) / float64(linkRate))
			p.Yield(delay)
			node.Debit(txEnergy)
			if node.ID == pkt.Src {
				node.RecordSent()
			} else {
				node.RecordRelayed()
			}
			next := net.Node(entry.NextHop)
			Submit(net, next, pkt, onDeliver, onDrop)
			continue
		}

		p.Yield(dropDelay)
		node.RecordDropped()
		if onDrop != nil {
			onDrop(pkt, node.ID)
		}
		net.Emit(&core.Event{Type: core.EvPacketDropped, Node: node.ID, Ref: pkt.Dst, Val: pkt, At: p.Now()})
	}
}
