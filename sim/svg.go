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
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"
)

// svgMargin pads the arena rectangle so node circles near the boundary
// aren't clipped.
const svgMargin = 20

// ExportSVG renders the final node positions and neighbor edges to a
// single static image (the teacher's live SVGCanvas collapsed to a
// one-shot end-of-run snapshot, since this simulator has no interactive
// front end to drive incremental frames).
func ExportSVG(w *World, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sim: create svg output %q: %w", path, err)
	}
	defer f.Close()

	width := int(w.arena.W) + 2*svgMargin
	height := int(w.arena.H) + 2*svgMargin
	canvas := svg.New(f)
	canvas.Start(width, height)
	defer canvas.End()

	canvas.Rect(0, 0, width, height, "fill:white")

	for _, e := range w.edges() {
		a := w.Node(e[0]).Position()
		b := w.Node(e[1]).Position()
		canvas.Line(svgX(a.X), svgY(a.Y), svgX(b.X), svgY(b.Y), "stroke:#4477aa;stroke-width:1")
	}
	for _, n := range w.nodes {
		p := n.Position()
		canvas.Circle(svgX(p.X), svgY(p.Y), 6, "fill:#cc3333;stroke:black;stroke-width:1")
		canvas.Text(svgX(p.X)+8, svgY(p.Y)-8, n.ID.String(), "font-size:10px")
	}
	return nil
}

func svgX(x float64) int { return int(x) + svgMargin }
func svgY(y float64) int { return int(y) + svgMargin }
