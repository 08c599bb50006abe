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
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestValidateRejectsBadFields(t *testing.T) {
	tests := []struct {
		name  string
		mutate func(*Config)
	}{
		{"numNodes", func(c *Config) { c.NumNodes = 1 }},
		{"areaSize", func(c *Config) { c.AreaSize = 0 }},
		{"simTime", func(c *Config) { c.SimTime = -1 }},
		{"trafficLoad", func(c *Config) { c.TrafficLoad = 0 }},
		{"nodeSpeed", func(c *Config) { c.NodeSpeed = -1 }},
		{"txRange", func(c *Config) { c.TxRange = 0 }},
		{"pauseTime", func(c *Config) { c.PauseTime = 0 }},
		{"protocol", func(c *Config) { c.Protocol = "BOGUS" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Validate() = nil, want error for field %s", tc.name)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("errors.Is(err, ErrInvalidConfig) = false for field %s", tc.name)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("errors.As(err, *ConfigError) failed for field %s", tc.name)
			}
			if ce.Field != tc.name {
				t.Fatalf("ConfigError.Field = %q, want %q", ce.Field, tc.name)
			}
		})
	}
}
