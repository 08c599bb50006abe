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
	"testing"
	"time"

	"manetsim/core"
)

// TestRunEmitsTerminalRecordLast drives a tiny AODV run to completion and
// checks the emission stream ends with exactly one terminal record (spec
// §4.10, §6).
func TestRunEmitsTerminalRecordLast(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.NumNodes = 6
	cfg.AreaSize = 100
	cfg.SimTime = 5
	cfg.TrafficLoad = 20
	cfg.TxRange = 60

	w := New(cfg, 11, nil)

	var records []EmissionRecord
	w.Run(func(rec EmissionRecord) {
		records = append(records, rec)
	})

	if len(records) == 0 {
		t.Fatalf("Run produced no emission records")
	}
	for _, rec := range records[:len(records)-1] {
		if rec.Final {
			t.Fatalf("a non-terminal record reported Final=true: %+v", rec)
		}
	}
	last := records[len(records)-1]
	if !last.Final {
		t.Fatalf("last emission record did not report Final=true")
	}
	if last.Protocol != cfg.Protocol {
		t.Fatalf("terminal record Protocol = %v, want %v", last.Protocol, cfg.Protocol)
	}
}

// TestStopEndsRunWellBeforeHorizon drives a run with a horizon far beyond
// what the test should ever reach, calls World.Stop from another goroutine
// shortly after Run starts, and checks the stream still ends with a
// terminal record reached long before the configured horizon (spec §5, §7
// StopRequested; scenario S5: the stream terminates within a few
// additional simulated seconds of the stop signal).
func TestStopEndsRunWellBeforeHorizon(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.NumNodes = 6
	cfg.AreaSize = 100
	cfg.SimTime = 10000
	cfg.TrafficLoad = 20
	cfg.TxRange = 60

	w := New(cfg, 31, nil)

	go func() {
		time.Sleep(5 * time.Millisecond)
		w.Stop()
	}()

	var final EmissionRecord
	w.Run(func(rec EmissionRecord) {
		if rec.Final {
			final = rec
		}
	})

	if !final.Final {
		t.Fatalf("Run did not produce a terminal record after Stop")
	}
	if final.At >= float64(cfg.SimTime) {
		t.Fatalf("terminal record At = %v reached the full horizon %v; Stop had no effect", final.At, cfg.SimTime)
	}
}

func TestRunAcrossAllProtocols(t *testing.T) {
	for _, proto := range []core.Protocol{core.AODV, core.DSDV, core.DSR, core.OLSR} {
		proto := proto
		t.Run(string(proto), func(t *testing.T) {
			cfg := core.DefaultConfig()
			cfg.NumNodes = 5
			cfg.AreaSize = 80
			cfg.SimTime = 3
			cfg.TrafficLoad = 10
			cfg.TxRange = 50
			cfg.Protocol = proto

			w := New(cfg, 21, nil)
			var final EmissionRecord
			w.Run(func(rec EmissionRecord) {
				if rec.Final {
					final = rec
				}
			})
			if !final.Final {
				t.Fatalf("%s: run did not produce a terminal record", proto)
			}
		})
	}
}
