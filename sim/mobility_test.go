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
	"errors"
	"testing"

	"manetsim/core"
)

// TestMobilityLoopStaysInArena drives a single node's mobilityLoop through
// the scheduler and checks invariant I5: position never leaves the arena,
// even when speed would carry it past a boundary in one sub-step.
func TestMobilityLoopStaysInArena(t *testing.T) {
	cfg := testConfig()
	cfg.AreaSize = 10
	cfg.NodeSpeed = 50 // deliberately large relative to the arena
	cfg.PauseTime = 1
	w := New(cfg, 42, nil)

	node := w.nodes[0]
	node.SetPosition(core.Point{X: 0, Y: 0})

	w.sched.Spawn(func(p *core.Proc) {
		w.mobilityLoop(node, p)
	})

	for i := 0; i < 50; i++ {
		if err := w.sched.Step(); err != nil {
			if errors.Is(err, core.ErrNoEvents) {
				break
			}
			t.Fatalf("Step: %v", err)
		}
		pos := node.Position()
		if pos.X < 0 || pos.X > w.arena.W || pos.Y < 0 || pos.Y > w.arena.H {
			t.Fatalf("node left arena at step %d: %v", i, pos)
		}
	}
}

// TestMobilityLoopDebitsEnergy confirms every sub-step drains energy
// proportional to speed (spec §4.2) as long as the node actually moves.
func TestMobilityLoopDebitsEnergy(t *testing.T) {
	cfg := testConfig()
	cfg.NodeSpeed = 5
	cfg.PauseTime = 1
	w := New(cfg, 7, nil)
	node := w.nodes[0]

	_, usedBefore := node.Energy()

	w.sched.Spawn(func(p *core.Proc) {
		w.mobilityLoop(node, p)
	})
	for i := 0; i < 5; i++ {
		if err := w.sched.Step(); err != nil {
			break
		}
	}

	_, usedAfter := node.Energy()
	if usedAfter <= usedBefore {
		t.Fatalf("energy used did not increase: before=%v after=%v", usedBefore, usedAfter)
	}
}
