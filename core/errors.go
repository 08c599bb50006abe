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
	"errors"
	"fmt"
)

// Sentinel errors for the failure taxonomy. Callers distinguish them
// with errors.Is.
var (
	// ErrNoEvents signals a clean end of simulation: the scheduler was
	// stepped with an empty event queue.
	ErrNoEvents = errors.New("core: no pending events")

	// ErrNoRoute means a forwarder has no known next hop for a packet,
	// or the known next hop is no longer a neighbor. The packet is
	// dropped; this never propagates as a failure of the run itself.
	ErrNoRoute = errors.New("core: no route to destination")

	// ErrStopRequested marks graceful, cooperative cancellation.
	ErrStopRequested = errors.New("core: stop requested")
)

// ConfigError reports an invalid configuration field, caught
// synchronously before any process is spawned.
type ConfigError struct {
	Field string
	Value any
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("core: invalid config field %q=%v: %s", e.Field, e.Value, e.Msg)
}

// Is lets errors.Is(err, ErrInvalidConfig) match any *ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// ErrInvalidConfig is the sentinel matched by every *ConfigError.
var ErrInvalidConfig = errors.New("core: invalid configuration")
