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
	"math"
	"math/rand"

	"manetsim/core"
)

// mobilitySubStep is the position-update granularity (spec §4.2).
const mobilitySubStep = 0.1

// energyPerSubStep debits 0.01*speed joules at every sub-step.
const energyPerSubStep = 0.01

func sampleUnitDirection(rng *rand.Rand) core.Vector {
	theta := rng.Float64() * 2 * math.Pi
	return core.Vector{Dx: math.Cos(theta), Dy: math.Sin(theta)}
}

// mobilityLoop implements random-waypoint-with-bounce for one node
// (spec §4.2): move for pause_time seconds in sub-steps of 0.1s,
// reflecting off arena boundaries, then idle for pause_time seconds
// before picking a new heading. The process exits once the global stop
// flag is observed.
func (w *World) mobilityLoop(node *core.Node, p *core.Proc) {
	substeps := int(node.PauseTime()/mobilitySubStep + 0.5)
	if substeps < 1 {
		substeps = 1
	}
	for {
		if p.Stopped() {
			return
		}
		dir := sampleUnitDirection(w.rng)
		node.SetDirection(dir)

		for i := 0; i < substeps; i++ {
			if p.Stopped() {
				return
			}
			pos := node.Position()
			nx := pos.X + dir.Dx*node.Speed()*mobilitySubStep
			ny := pos.Y + dir.Dy*node.Speed()*mobilitySubStep

			if nx < 0 {
				nx = 0
				dir.Dx = -dir.Dx
			} else if nx > w.arena.W {
				nx = w.arena.W
				dir.Dx = -dir.Dx
			}
			if ny < 0 {
				ny = 0
				dir.Dy = -dir.Dy
			} else if ny > w.arena.H {
				ny = w.arena.H
				dir.Dy = -dir.Dy
			}

			node.SetPosition(core.Point{X: nx, Y: ny})
			node.SetDirection(dir)
			node.Debit(energyPerSubStep * node.Speed())
			w.refreshNeighbors(node)

			p.Yield(mobilitySubStep)
		}
		p.Yield(core.SimTime(node.PauseTime()))
	}
}
