package cmd

import (
	"fmt"
	"math"
	"sort"

	"github.com/OpenTraceLab/OpenTraceJTAG/pkg/kicad/common"
	"github.com/OpenTraceLab/OpenTraceJTAG/pkg/kicad/pcb"
	"github.com/OpenTraceLab/OpenTraceJTAG/pkg/kicad/renderer"
	"github.com/OpenTraceLab/OpenTraceJTAG/pkg/kicad/tessellate"
	"github.com/OpenTraceLab/OpenTraceJTAG/pkg/triangulate"
	"github.com/spf13/cobra"
)

var pcbCmd = &cobra.Command{
	Use:   "pcb",
	Short: "KiCad PCB file operations",
	Long:  `Commands for working with KiCad PCB files (.kicad_pcb)`,
}

var layerFilter string

var pcbShowCmd = &cobra.Command{
	Use:   "show <board_file>",
	Short: "Summarize a PCB file and tessellate its zones and curved graphics",
	Long: `Parses a board file and prints a summary of its contents, then exercises
the geometry pipeline a renderer would use: curved primitives (gr_circle,
gr_arc) are tessellated into polylines, and copper zone outlines are
triangulated into a fill mesh.

Use --layers to restrict the zone/graphics summary to a comma-separated
layer allowlist (e.g. --layers F.Cu,B.Cu).`,
	Args: cobra.ExactArgs(1),
	RunE: runPCBShow,
}

var pcbNetsCmd = &cobra.Command{
	Use:   "nets <board_file> [net_name]",
	Short: "Show PCB net information",
	Long: `Display information about nets in a PCB file.

Without net_name: Lists all nets with pad/track/via counts
With net_name: Shows detailed information for that specific net`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPCBNets,
}

func init() {
	rootCmd.AddCommand(pcbCmd)
	pcbCmd.AddCommand(pcbShowCmd)
	pcbCmd.AddCommand(pcbNetsCmd)

	pcbShowCmd.Flags().StringVar(&layerFilter, "layers", "", "comma-separated layer allowlist")
}

func runPCBShow(cmd *cobra.Command, args []string) error {
	filename := args[0]

	fmt.Printf("Loading board: %s\n", filename)
	board, err := pcb.ParseFile(filename)
	if err != nil {
		return fmt.Errorf("error parsing board: %w", err)
	}

	fmt.Printf("Loaded board successfully\n")
	fmt.Printf("  Version: %d\n", board.Version)
	fmt.Printf("  Generator: %s\n", board.Generator)
	fmt.Printf("  Layers: %d\n", len(board.Layers))
	fmt.Printf("  Nets: %d\n", len(board.Nets))
	fmt.Printf("  Footprints: %d\n", len(board.Footprints))
	fmt.Printf("  Tracks: %d\n", len(board.Tracks))
	fmt.Printf("  Vias: %d\n", len(board.Vias))
	fmt.Printf("  Zones: %d\n", len(board.Zones))
	fmt.Printf("  Copper layers: %v\n", board.CopperLayerNames())

	bbox := board.GetBoundingBox()
	if !bbox.IsEmpty() {
		fmt.Printf("  Board size: %.2f x %.2f mm\n", bbox.Width(), bbox.Height())
		fmt.Printf("  Board center: (%.2f, %.2f) mm\n", bbox.Center().X, bbox.Center().Y)
		printFitCamera(bbox)
	}

	layers := renderer.NewLayerConfig()
	if layerFilter != "" {
		layers.ShowOnly(splitLayerList(layerFilter)...)
	} else {
		layers.ShowAll()
	}

	fmt.Println()
	printLayerPalette(board, layers)

	fmt.Println()
	tessellateCurves(board, layers)

	fmt.Println()
	tessellateFootprintGraphics(board, layers)

	fmt.Println()
	triangulateZones(board, layers)

	return nil
}

// printFitCamera reports the camera position and zoom level a renderer
// would use to frame the whole board in a viewportWidth x viewportHeight
// (1920x1080) viewport, exercising the same Fit math a graphical front end would use.
func printFitCamera(bbox common.BoundingBox) {
	const viewportWidth, viewportHeight = 1920, 1080
	cam := renderer.NewCamera(viewportWidth, viewportHeight)
	cam.Fit(bbox)
	fmt.Printf("  Suggested view: center (%.2f, %.2f) mm, zoom %.2f px/mm\n",
		cam.CenterX, cam.CenterY, cam.Zoom)
}

// printLayerPalette prints the RGBA color assigned to each visible layer
// of the board under the active color theme, the same lookup a rasterizer would
// perform per primitive.
func printLayerPalette(board *pcb.Board, layers *renderer.LayerConfig) {
	fmt.Println("Layer palette:")
	for _, layer := range board.Layers {
		if !layers.IsVisible(layer.Name) {
			continue
		}
		c := renderer.GetLayerColor(layer.Name)
		fmt.Printf("  %-12s #%02X%02X%02X (alpha %d)\n", layer.Name, c.R, c.G, c.B, c.A)
	}
}

func splitLayerList(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}

// tessellateCurves discretizes every gr_circle and gr_arc on a visible
// layer, reporting the point count each produced. This is the same
// geometry a rasterizer would consume to draw the curve as a polyline.
func tessellateCurves(board *pcb.Board, layers *renderer.LayerConfig) {
	cfg := tessellate.Config{SegmentsPerCircle: tessellate.DefaultSegmentsPerCircle}

	var circlePoints, arcPoints int
	for _, c := range board.Graphics.Circles {
		if !layers.IsVisible(c.Layer) {
			continue
		}
		radius := math.Hypot(c.End.X-c.Center.X, c.End.Y-c.Center.Y)
		points := tessellate.DiscretizeCircle(c.Center, radius, cfg)
		circlePoints += len(points)
	}
	for _, a := range board.Graphics.Arcs {
		if !layers.IsVisible(a.Layer) {
			continue
		}
		center, radians, ok := arcCenterAndSweep(a.Start, a.Mid, a.End)
		if !ok {
			continue
		}
		points := tessellate.DiscretizeArc(center, a.Start, radians, cfg)
		arcPoints += len(points)
	}

	fmt.Printf("Tessellated curves: %d circles -> %d points, %d arcs -> %d points\n",
		len(board.Graphics.Circles), circlePoints, len(board.Graphics.Arcs), arcPoints)
}

// tessellateFootprintGraphics transforms every footprint's silkscreen/fab
// graphics from footprint-local coordinates into absolute board
// coordinates, tessellating any circles and arcs along the way, and
// resolves each element's render color, preferring a parsed per-element
// (color ...) override over the layer's theme color.
func tessellateFootprintGraphics(board *pcb.Board, layers *renderer.LayerConfig) {
	cfg := tessellate.Config{SegmentsPerCircle: tessellate.DefaultSegmentsPerCircle}

	var graphicCount, curvePoints, overrideCount int
	var firstOverride string
	for _, fp := range board.Footprints {
		t := renderer.FootprintTransform(fp)
		for _, g := range fp.Graphics {
			if !layers.IsVisible(g.Layer) {
				continue
			}
			abs := renderer.ApplyGraphic(t, g)
			graphicCount++

			switch abs.Type {
			case "circle":
				radius := math.Hypot(abs.End.X-abs.Center.X, abs.End.Y-abs.Center.Y)
				curvePoints += len(tessellate.DiscretizeCircle(abs.Center, radius, cfg))
			case "arc":
				center, radians, ok := arcCenterAndSweep(abs.Start, abs.Center, abs.End)
				if ok {
					curvePoints += len(tessellate.DiscretizeArc(center, abs.Start, radians, cfg))
				}
			}

			if abs.Stroke.Color.A > 0 {
				overrideCount++
				if firstOverride == "" {
					c := renderer.ColorForElement(abs.Layer, abs.Stroke.Color)
					firstOverride = fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
				}
			}
		}
	}

	fmt.Printf("Footprint graphics: %d elements across %d footprints -> %d curve points, %d with color overrides",
		graphicCount, len(board.Footprints), curvePoints, overrideCount)
	if firstOverride != "" {
		fmt.Printf(" (first override resolves to %s)", firstOverride)
	}
	fmt.Println()
}

// arcCenterAndSweep recovers the circle a KiCad arc was cut from (KiCad
// stores arcs as three points on the circumference rather than center and
// angles) by solving for the circumcenter of start/mid/end, then measures
// the signed sweep from start to end that passes through mid.
func arcCenterAndSweep(start, mid, end common.Position) (center common.Position, radians float64, ok bool) {
	ax, ay := start.X, start.Y
	bx, by := mid.X, mid.Y
	cx, cy := end.X, end.Y

	d := 2 * (ax*(by-cy) + bx*(cy-ay) + cx*(ay-by))
	if math.Abs(d) < 1e-12 {
		return common.Position{}, 0, false
	}

	aSq, bSq, cSq := ax*ax+ay*ay, bx*bx+by*by, cx*cx+cy*cy
	ux := (aSq*(by-cy) + bSq*(cy-ay) + cSq*(ay-by)) / d
	uy := (aSq*(cx-bx) + bSq*(ax-cx) + cSq*(bx-ax)) / d
	center = common.Position{X: ux, Y: uy}

	a0 := math.Atan2(start.Y-center.Y, start.X-center.X)
	a1 := math.Atan2(mid.Y-center.Y, mid.X-center.X)
	a2 := math.Atan2(end.Y-center.Y, end.X-center.X)

	norm := func(a float64) float64 {
		for a > math.Pi {
			a -= 2 * math.Pi
		}
		for a <= -math.Pi {
			a += 2 * math.Pi
		}
		return a
	}

	d1 := norm(a1 - a0)
	d2 := norm(a2 - a0)
	if d1 < 0 && d2 > 0 {
		d2 -= 2 * math.Pi
	} else if d1 > 0 && d2 < 0 {
		d2 += 2 * math.Pi
	}

	return center, d2, true
}

// triangulateZones runs every visible zone's outline through the
// plane-sweep triangulator, reporting the triangle count each produced
// along with any diagnostics the sweep noted.
func triangulateZones(board *pcb.Board, layers *renderer.LayerConfig) {
	total := 0
	for i, zone := range board.Zones {
		if !layers.IsVisible(zone.Layer) {
			continue
		}
		if len(zone.Outline) < 3 {
			continue
		}

		verts := make([]triangulate.Vertex, len(zone.Outline))
		for j, p := range zone.Outline {
			verts[j] = triangulate.Vertex{X: float32(p.X), Y: float32(p.Y)}
		}

		triangles, diag := triangulate.Triangulate(verts)
		total += len(triangles)

		netName := "(no net)"
		if zone.Net != nil {
			netName = zone.Net.Name
		}
		fmt.Printf("  Zone %d on %s (net %s): %d outline points -> %d triangles\n",
			i, zone.Layer, netName, len(zone.Outline), len(triangles))
		if diag != nil {
			for _, note := range diag.Notes {
				fmt.Printf("    note: %s\n", note)
			}
		}
	}
	fmt.Printf("Triangulated zones: %d triangles total\n", total)
}

func runPCBNets(cmd *cobra.Command, args []string) error {
	filename := args[0]

	board, err := pcb.ParseFile(filename)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}

	if len(args) >= 2 {
		netName := args[1]
		return showNetDetails(board, netName)
	}

	listAllNets(board)
	return nil
}

func listAllNets(board *pcb.Board) {
	fmt.Printf("Board: %d nets\n\n", len(board.Nets))
	fmt.Printf("%-30s %6s %6s %6s %6s\n", "Net Name", "Pads", "Tracks", "Vias", "Zones")
	fmt.Println("─────────────────────────────────────────────────────────────────")

	netNames := board.GetAllNetNames()
	sort.Strings(netNames)

	for _, netName := range netNames {
		info := board.GetNetInfo(netName)
		if info != nil {
			fmt.Printf("%-30s %6d %6d %6d %6d\n",
				netName,
				len(info.Pads),
				len(info.Tracks),
				len(info.Vias),
				len(info.Zones))
		}
	}
}

func showNetDetails(board *pcb.Board, netName string) error {
	info := board.GetNetInfo(netName)
	if info == nil {
		return fmt.Errorf("net '%s' not found", netName)
	}

	fmt.Printf("Net: %s (number %d)\n\n", info.Net.Name, info.Net.Number)

	fmt.Printf("Pads (%d):\n", len(info.Pads))
	for _, pad := range info.Pads {
		fmt.Printf("  Pad %-4s: %s %.2f×%.2f mm at (%.2f, %.2f)\n",
			pad.Number, pad.Shape,
			pad.Size.Width, pad.Size.Height,
			pad.Position.X, pad.Position.Y)
	}

	fmt.Printf("\nTracks (%d):\n", len(info.Tracks))
	for i, track := range info.Tracks {
		id := string(track.UUID)
		if id == "" {
			id = "-"
		}
		fmt.Printf("  Track %d: %.2f mm wide on %s from (%.2f, %.2f) to (%.2f, %.2f), uuid %s\n",
			i+1, track.Width, track.Layer,
			track.Start.X, track.Start.Y,
			track.End.X, track.End.Y, id)
	}

	fmt.Printf("\nVias (%d):\n", len(info.Vias))
	for i, via := range info.Vias {
		id := string(via.UUID)
		if id == "" {
			id = "-"
		}
		fmt.Printf("  Via %d: %.2f mm diameter, %.2f mm drill at (%.2f, %.2f), uuid %s\n",
			i+1, via.Size, via.Drill,
			via.Position.X, via.Position.Y, id)
	}

	fmt.Printf("\nZones (%d):\n", len(info.Zones))
	for i, zone := range info.Zones {
		fmt.Printf("  Zone %d: %s, %d outline points, %d fill islands\n",
			i+1, zone.Layer, len(zone.Outline), len(zone.Fills))
	}

	return nil
}
