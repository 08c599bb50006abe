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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportSVGWritesWellFormedDocument(t *testing.T) {
	cfg := testConfig()
	w := New(cfg, 9, nil)

	path := filepath.Join(t.TempDir(), "topology.svg")
	if err := ExportSVG(w, path); err != nil {
		t.Fatalf("ExportSVG: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	body := string(data)
	if !strings.Contains(body, "<svg") {
		t.Fatalf("output does not look like an SVG document: %s", body)
	}
	if !strings.Contains(body, "</svg>") {
		t.Fatalf("output missing closing </svg> tag")
	}
}

func TestExportSVGRejectsUnwritablePath(t *testing.T) {
	cfg := testConfig()
	w := New(cfg, 10, nil)
	if err := ExportSVG(w, filepath.Join(t.TempDir(), "missing-dir", "out.svg")); err == nil {
		t.Fatalf("ExportSVG into a nonexistent directory: want error, got nil")
	}
}
