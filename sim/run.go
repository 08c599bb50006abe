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

	"manetsim/core"
)

// Run drives the World to completion, calling 'emit' for every periodic
// and the one terminal emission record (spec §4.10, §6). Run blocks
// until the configured horizon is reached and every spawned process has
// drained.
func (w *World) Run(emit func(EmissionRecord)) {
	for _, n := range w.nodes {
		node := n
		w.sched.Spawn(func(p *core.Proc) { w.mobilityLoop(node, p) })
		w.proto.StartNode(w, node)
	}
	w.sched.Spawn(func(p *core.Proc) { w.trafficLoop(p) })
	w.sched.Spawn(func(p *core.Proc) { w.emissionLoop(p, emit) })

	horizon := core.SimTime(w.cfg.SimTime)
	for {
		now, err := w.sched.Peek()
		if errors.Is(err, core.ErrNoEvents) {
			break
		}
		if now >= horizon && !w.sched.Stopped() {
			w.sched.Stop()
		}
		if err := w.sched.Step(); errors.Is(err, core.ErrNoEvents) {
			break
		}
	}

	emit(w.snapshot(true))
}
