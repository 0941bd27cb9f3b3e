package pcb

import (
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceJTAG/pkg/sexp"
)

// sexpParse parses a single top-level form for tests that exercise one
// parseXxx function directly rather than the whole Parse pipeline.
// sexp.Parse wraps the input in a synthetic root list of top-level
// forms, so this unwraps that one level to hand back the form itself.
func sexpParse(t *testing.T, input string) (sexp.Node, *sexp.Interner) {
	t.Helper()
	wrapper, in := sexp.Parse([]byte(input))
	if len(wrapper.Children) != 1 {
		t.Fatalf("expected exactly one top-level form, got %d", len(wrapper.Children))
	}
	return wrapper.Children[0], in
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantVersion int
		wantGen     string
		wantErr     bool
	}{
		{
			name:        "valid with generator",
			input:       "(kicad_pcb (version 20211014) (generator pcbnew))",
			wantVersion: 20211014,
			wantGen:     "pcbnew",
		},
		{
			name:        "valid with host",
			input:       `(kicad_pcb (version 20221018) (host pcbnew "(6.0.10)"))`,
			wantVersion: 20221018,
			wantGen:     "pcbnew",
		},
		{
			name:    "missing version",
			input:   "(kicad_pcb (generator pcbnew))",
			wantErr: true,
		},
		{
			name:    "version too old",
			input:   "(kicad_pcb (version 20171130))",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root, in := sexpParse(t, tc.input)
			version, gen, err := parseHeader(root, in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got version=%d gen=%q", version, gen)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if version != tc.wantVersion {
				t.Errorf("version = %d, want %d", version, tc.wantVersion)
			}
			if gen != tc.wantGen {
				t.Errorf("generator = %q, want %q", gen, tc.wantGen)
			}
		})
	}
}

func TestParseMinimalBoard(t *testing.T) {
	input := `(kicad_pcb (version 20211014) (generator pcbnew)
		(general (thickness 1.6))
		(layers (0 "F.Cu" signal) (31 "B.Cu" signal))
		(net 0 "")
		(net 1 "GND"))`

	board, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if board.Version != 20211014 {
		t.Errorf("version = %d, want 20211014", board.Version)
	}
	if board.General.Thickness != 1.6 {
		t.Errorf("thickness = %v, want 1.6", board.General.Thickness)
	}
	if len(board.Layers) != 2 {
		t.Errorf("layers count = %d, want 2", len(board.Layers))
	}
	if len(board.Nets) != 2 {
		t.Errorf("nets count = %d, want 2", len(board.Nets))
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong root", "(kicad_sch (version 20211014))"},
		{"no version", "(kicad_pcb (generator pcbnew))"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tc.input)); err == nil {
				t.Error("expected an error, got nil")
			}
		})
	}
}

func TestParseLayers(t *testing.T) {
	root, in := sexpParse(t, `(layers (0 "F.Cu" signal) (31 "B.Cu" signal) (36 "B.SilkS" user))`)
	layers, err := parseLayers(root, in)
	if err != nil {
		t.Fatalf("parseLayers failed: %v", err)
	}
	if len(layers) != 3 {
		t.Fatalf("layers count = %d, want 3", len(layers))
	}
	if layers[0].Name != "F.Cu" || layers[0].Type != "signal" {
		t.Errorf("layer 0 = %+v", layers[0])
	}
	if layers[2].Name != "B.SilkS" || layers[2].Type != "user" {
		t.Errorf("layer 2 = %+v", layers[2])
	}

	lm := NewLayerMap(layers)
	if !lm.IsCopperLayer("F.Cu") {
		t.Error("F.Cu should be a copper layer")
	}
	if lm.IsCopperLayer("B.SilkS") {
		t.Error("B.SilkS should not be a copper layer")
	}
}

func TestParseNets(t *testing.T) {
	root, in := sexpParse(t, `(kicad_pcb (net 0 "") (net 1 "GND") (net 2 "+5V"))`)
	nets, err := parseNets(root, in)
	if err != nil {
		t.Fatalf("parseNets failed: %v", err)
	}
	if len(nets) != 3 {
		t.Fatalf("nets count = %d, want 3", len(nets))
	}

	nm := NewNetMap(nets)
	if net, ok := nm.GetByName("GND"); !ok || net.Number != 1 {
		t.Errorf("GetByName(GND) = %+v, %v", net, ok)
	}
	if !nm.IsUnconnected(0) {
		t.Error("net 0 should be unconnected")
	}
}

func TestParseGraphics(t *testing.T) {
	input := `(kicad_pcb
		(gr_line (start 0 0) (end 10 0) (stroke (width 0.15) (type solid)) (layer "Edge.Cuts"))
		(gr_circle (center 5 5) (end 5 7) (stroke (width 0.1) (type solid)) (fill (type none)) (layer "F.SilkS"))
		(gr_poly (pts (xy 0 0) (xy 10 0) (xy 10 10) (xy 0 10)) (stroke (width 0.1) (type solid)) (fill (type solid)) (layer "F.Cu"))
		(gr_text "REV A" (at 1 2 90) (layer "F.SilkS") (effects (font (size 1 1) (thickness 0.15)))))`

	root, in := sexpParse(t, input)
	graphics, err := parseGraphics(root, in)
	if err != nil {
		t.Fatalf("parseGraphics failed: %v", err)
	}
	if len(graphics.Lines) != 1 {
		t.Errorf("lines = %d, want 1", len(graphics.Lines))
	}
	if len(graphics.Circles) != 1 {
		t.Errorf("circles = %d, want 1", len(graphics.Circles))
	}
	if len(graphics.Polys) != 1 || len(graphics.Polys[0].Points) != 4 {
		t.Errorf("polys = %+v", graphics.Polys)
	}
	if len(graphics.Texts) != 1 || graphics.Texts[0].Text != "REV A" {
		t.Errorf("texts = %+v", graphics.Texts)
	}
	if graphics.Texts[0].Angle != 90 {
		t.Errorf("text angle = %v, want 90 degrees", graphics.Texts[0].Angle)
	}
}

func TestParseTracksAndVias(t *testing.T) {
	input := `(kicad_pcb
		(net 0 "")
		(net 1 "GND")
		(segment (start 100 50) (end 120 50) (width 0.25) (layer "F.Cu") (net 1) (uuid "track-uuid-1"))
		(segment (start 120 50) (end 120 70) (width 0.5) (layer "F.Cu") (net 1) (locked))
		(via (at 120 70) (size 0.8) (drill 0.4) (layers "F.Cu" "B.Cu") (net 1) (uuid "via-uuid-1"))
		(via (at 130 70) (size 0.6) (drill 0.3) (layers "F.Cu" "B.Cu") (net 1) (locked)))`

	root, in := sexpParse(t, input)
	nets, err := parseNets(root, in)
	if err != nil {
		t.Fatalf("parseNets failed: %v", err)
	}
	netMap := NewNetMap(nets)

	tracks, err := parseTracks(root, in, netMap)
	if err != nil {
		t.Fatalf("parseTracks failed: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("tracks count = %d, want 2", len(tracks))
	}
	if tracks[0].Start.X != 100 || tracks[0].End.X != 120 || tracks[0].Width != 0.25 {
		t.Errorf("track 0 = %+v", tracks[0])
	}
	if tracks[0].Net == nil || tracks[0].Net.Number != 1 {
		t.Errorf("track 0 net = %+v", tracks[0].Net)
	}
	if tracks[0].UUID != "track-uuid-1" {
		t.Errorf("track 0 uuid = %q, want track-uuid-1", tracks[0].UUID)
	}
	if !tracks[1].Locked {
		t.Error("track 1 should be locked")
	}

	vias, err := parseVias(root, in, netMap)
	if err != nil {
		t.Fatalf("parseVias failed: %v", err)
	}
	if len(vias) != 2 {
		t.Fatalf("vias count = %d, want 2", len(vias))
	}
	if vias[0].Size != 0.8 || vias[0].Drill != 0.4 || len(vias[0].Layers) != 2 {
		t.Errorf("via 0 = %+v", vias[0])
	}
	if vias[0].UUID != "via-uuid-1" {
		t.Errorf("via 0 uuid = %q, want via-uuid-1", vias[0].UUID)
	}
	if !vias[1].Locked {
		t.Error("via 1 should be locked")
	}
}

func TestParseFootprintsAndPads(t *testing.T) {
	input := `(kicad_pcb
		(net 0 "")
		(net 1 "GND")
		(footprint "Resistor_SMD:R_0603_1608Metric" (layer "F.Cu") (at 50 40 0) (uuid "fp-uuid-1")
			(property "Reference" "R1" (at 0 -1 0))
			(property "Value" "10k" (at 0 1 0))
			(pad "1" smd roundrect (at -0.75 0 0) (size 0.9 0.95) (layers "F.Cu" "F.Paste" "F.Mask") (net 1))
			(pad "2" smd roundrect (at 0.75 0 0) (size 0.9 0.95) (layers "F.Cu" "F.Paste" "F.Mask"))
			(fp_line (start -1 -0.5) (end 1 -0.5) (layer "F.SilkS") (width 0.12))))`

	root, in := sexpParse(t, input)
	nets, _ := parseNets(root, in)
	netMap := NewNetMap(nets)

	footprints, err := parseFootprints(root, in, netMap)
	if err != nil {
		t.Fatalf("parseFootprints failed: %v", err)
	}
	if len(footprints) != 1 {
		t.Fatalf("footprints count = %d, want 1", len(footprints))
	}

	fp := footprints[0]
	if fp.Library != "Resistor_SMD" || fp.Name != "R_0603_1608Metric" {
		t.Errorf("footprint library/name = %q/%q", fp.Library, fp.Name)
	}
	if fp.UUID != "fp-uuid-1" {
		t.Errorf("footprint uuid = %q, want fp-uuid-1", fp.UUID)
	}
	if fp.Reference != "R1" || fp.Value != "10k" {
		t.Errorf("footprint reference/value = %q/%q", fp.Reference, fp.Value)
	}
	if len(fp.Pads) != 2 {
		t.Fatalf("pads count = %d, want 2", len(fp.Pads))
	}
	if fp.Pads[0].Net == nil || fp.Pads[0].Net.Number != 1 {
		t.Errorf("pad 0 net = %+v", fp.Pads[0].Net)
	}
	if fp.Pads[1].Net != nil {
		t.Errorf("pad 1 should have no net, got %+v", fp.Pads[1].Net)
	}
	if len(fp.Graphics) != 1 || fp.Graphics[0].Type != "line" {
		t.Fatalf("footprint graphics = %+v, want one line", fp.Graphics)
	}
}

func TestParseZones(t *testing.T) {
	input := `(kicad_pcb
		(net 0 "")
		(net 1 "GND")
		(zone (net 1) (net_name "GND") (layer "F.Cu") (hatch edge 0.5) (min_thickness 0.254)
			(polygon (pts (xy 0 0) (xy 20 0) (xy 20 20) (xy 0 20)))
			(filled_polygon (layer "F.Cu") (pts (xy 1 1) (xy 19 1) (xy 19 19) (xy 1 19)))))`

	root, in := sexpParse(t, input)
	nets, _ := parseNets(root, in)
	netMap := NewNetMap(nets)

	zones, err := parseZones(root, in, netMap)
	if err != nil {
		t.Fatalf("parseZones failed: %v", err)
	}
	if len(zones) != 1 {
		t.Fatalf("zones count = %d, want 1", len(zones))
	}
	zone := zones[0]
	if zone.Layer != "F.Cu" {
		t.Errorf("zone layer = %q, want F.Cu", zone.Layer)
	}
	if zone.Net == nil || zone.Net.Number != 1 {
		t.Errorf("zone net = %+v", zone.Net)
	}
	if len(zone.Outline) != 4 {
		t.Errorf("zone outline points = %d, want 4", len(zone.Outline))
	}
	if len(zone.Fills) != 1 || len(zone.Fills[0]) != 4 {
		t.Errorf("zone fills = %+v", zone.Fills)
	}
	if zone.MinThickness != 0.254 {
		t.Errorf("zone min thickness = %v, want 0.254", zone.MinThickness)
	}
}

func TestParseMultiLayerZone(t *testing.T) {
	input := `(kicad_pcb
		(net 0 "")
		(net 1 "GND")
		(zone (net 1) (net_name "GND") (layers "F.Cu" "B.Cu")
			(polygon (pts (xy 0 0) (xy 10 0) (xy 10 10) (xy 0 10)))
			(filled_polygon (layer "F.Cu") (pts (xy 1 1) (xy 9 1) (xy 9 9)))
			(filled_polygon (layer "B.Cu") (pts (xy 1 1) (xy 9 1) (xy 9 9)))))`

	root, in := sexpParse(t, input)
	zones, err := parseZones(root, in, nil)
	if err != nil {
		t.Fatalf("parseZones failed: %v", err)
	}
	if len(zones) != 2 {
		t.Fatalf("zones count = %d, want 2 (one per layer)", len(zones))
	}
	seen := map[string]bool{}
	for _, z := range zones {
		seen[z.Layer] = true
		if len(z.Fills) != 1 {
			t.Errorf("zone on %s has %d fills, want 1", z.Layer, len(z.Fills))
		}
	}
	if !seen["F.Cu"] || !seen["B.Cu"] {
		t.Errorf("expected zones on F.Cu and B.Cu, got %+v", seen)
	}
}
