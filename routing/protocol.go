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

// New builds the routing core named by 'proto' for a run of 'numNodes'
// nodes (spec §4.5-§4.8).
func New(proto core.Protocol, numNodes int) Protocol {
	switch proto {
	case core.AODV:
		return NewAODV(numNodes)
	case core.DSDV:
		return NewDSDV(numNodes)
	case core.DSR:
		return NewDSR(numNodes)
	case core.OLSR:
		return NewOLSR(numNodes)
	default:
		// unreachable: core.Config.Validate rejects unknown protocols
		// before a run is ever built.
		panic("routing: unknown protocol " + string(proto))
	}
}
