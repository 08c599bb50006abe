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

import (
	"fmt"
	"time"
)

//----------------------------------------------------------------------
// SimTime is virtual simulated time, in seconds since the simulation
// started. It has no relation to wall-clock time: the scheduler never
// blocks on it, it is only ever advanced by Scheduler.Step.
//----------------------------------------------------------------------

// SimTime is a simulated timestamp/duration, in seconds.
type SimTime float64

// Duration converts a SimTime delta to a time.Duration, for logging.
func (t SimTime) Duration() time.Duration {
	return time.Duration(float64(t) * float64(time.Second))
}

// String returns a human-readable representation.
func (t SimTime) String() string {
	return fmt.Sprintf("%.3fs", float64(t))
}
