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

package core

import "testing"

func TestPacketDeliveryNotBeforeCreation(t *testing.T) {
	pkt := NewPacket(0, 1, 10)
	pkt.Deliver(12)
	if pkt.Delivery < pkt.Created {
		t.Fatalf("delivery %v before creation %v", pkt.Delivery, pkt.Created)
	}
	if !pkt.Delivered {
		t.Fatalf("Delivered = false after Deliver")
	}
}

func TestPacketAcyclic(t *testing.T) {
	pkt := NewPacket(0, 3, 0)
	pkt.RecordHop(0, 0)
	pkt.RecordHop(1, 1)
	pkt.RecordHop(2, 2)
	if !pkt.Acyclic() {
		t.Fatalf("expected acyclic hop list")
	}

	pkt.RecordHop(1, 3)
	if pkt.Acyclic() {
		t.Fatalf("expected a cycle to be detected (node 1 repeats)")
	}
}

func TestNodeNeverItsOwnNeighbor(t *testing.T) {
	n := NewNode(5, Point{}, 1, 1, 10)
	n.SetNeighbors([]NodeID{3, 4, 5, 6})
	if n.HasNeighbor(5) {
		t.Fatalf("node reported itself as its own neighbor")
	}
	want := map[NodeID]bool{3: true, 4: true, 6: true}
	for _, id := range n.Neighbors() {
		if !want[id] {
			t.Fatalf("unexpected neighbor %v", id)
		}
	}
}

func TestNodeEnergyClampsAtZero(t *testing.T) {
	n := NewNode(0, Point{}, 1, 1, 10)
	n.Debit(InitialEnergy * 2)
	residual, used := n.Energy()
	if residual != 0 {
		t.Fatalf("residual energy = %v, want 0", residual)
	}
	if used != InitialEnergy*2 {
		t.Fatalf("cumulative used = %v, want %v", used, InitialEnergy*2)
	}
}

func TestNodeQueueHandlerSingleton(t *testing.T) {
	n := NewNode(0, Point{}, 1, 1, 10)
	p1 := NewPacket(0, 1, 0)
	p2 := NewPacket(0, 1, 0)

	if !n.Enqueue(p1) {
		t.Fatalf("first Enqueue should request a handler")
	}
	if n.Enqueue(p2) {
		t.Fatalf("second Enqueue should not request another handler")
	}

	got, ok := n.Dequeue()
	if !ok || got != p1 {
		t.Fatalf("Dequeue #1 = %v, %v; want p1, true", got, ok)
	}
	got, ok = n.Dequeue()
	if !ok || got != p2 {
		t.Fatalf("Dequeue #2 = %v, %v; want p2, true", got, ok)
	}
	if _, ok := n.Dequeue(); ok {
		t.Fatalf("Dequeue on drained queue returned ok=true")
	}
}
