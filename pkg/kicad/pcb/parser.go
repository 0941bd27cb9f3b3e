package pcb

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/OpenTraceLab/OpenTraceJTAG/pkg/sexp"
)

// MinSupportedVersion is the earliest KiCad board format this parser
// accepts (KiCad 6.0).
const MinSupportedVersion = 20211014

// Parser holds no state today; it exists as the extension point for
// future per-file parsing options (strict mode, a custom interner, ...).
type Parser struct{}

// NewParser creates a KiCad board parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads and parses a KiCad board file from disk.
func ParseFile(filename string) (*Board, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads a KiCad board from r and builds its in-memory model.
func Parse(r io.Reader) (*Board, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read board: %w", err)
	}

	wrapper, in := sexp.Parse(raw)

	root, found := wrapper.Find(in, "kicad_pcb")
	if !found {
		return nil, fmt.Errorf("not a KiCad PCB file: missing 'kicad_pcb' root form")
	}

	version, generator, err := parseHeader(root, in)
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	board := &Board{Version: version, Generator: generator}

	if generalNode, found := root.Find(in, "general"); found {
		general, err := parseGeneral(generalNode, in)
		if err != nil {
			return nil, fmt.Errorf("failed to parse general section: %w", err)
		}
		board.General = *general
	}

	if layersNode, found := root.Find(in, "layers"); found {
		layers, err := parseLayers(layersNode, in)
		if err != nil {
			return nil, fmt.Errorf("failed to parse layers section: %w", err)
		}
		board.Layers = layers
	}

	if setupNode, found := root.Find(in, "setup"); found {
		setup, err := parseSetup(setupNode, in)
		if err != nil {
			return nil, fmt.Errorf("failed to parse setup section: %w", err)
		}
		board.Setup = *setup
	}

	nets, err := parseNets(root, in)
	if err != nil {
		return nil, fmt.Errorf("failed to parse nets: %w", err)
	}
	board.Nets = nets

	graphics, err := parseGraphics(root, in)
	if err != nil {
		return nil, fmt.Errorf("failed to parse graphics: %w", err)
	}
	board.Graphics = *graphics

	netMap := NewNetMap(board.Nets)

	tracks, err := parseTracks(root, in, netMap)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tracks: %w", err)
	}
	board.Tracks = tracks

	vias, err := parseVias(root, in, netMap)
	if err != nil {
		return nil, fmt.Errorf("failed to parse vias: %w", err)
	}
	board.Vias = vias

	footprints, err := parseFootprints(root, in, netMap)
	if err != nil {
		return nil, fmt.Errorf("failed to parse footprints: %w", err)
	}
	board.Footprints = footprints

	zones, err := parseZones(root, in, netMap)
	if err != nil {
		return nil, fmt.Errorf("failed to parse zones: %w", err)
	}
	board.Zones = zones

	return board, nil
}

// parseHeader extracts version and generator: (kicad_pcb (version
// 20221018) (generator pcbnew) ...).
func parseHeader(root sexp.Node, in *sexp.Interner) (version int, generator string, err error) {
	versionNode, found := root.Find(in, "version")
	if !found {
		return 0, "", fmt.Errorf("missing required 'version' field")
	}
	ver, err := getInt(versionNode, 1)
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse version: %w", err)
	}
	if ver < MinSupportedVersion {
		return 0, "", fmt.Errorf("unsupported KiCad version: %d (minimum required: %d / KiCad 6.0)", ver, MinSupportedVersion)
	}

	gen := "unknown"
	if hostNode, found := root.Find(in, "host"); found {
		if toolName, err := getString(hostNode, in, 1); err == nil {
			gen = toolName
		}
	} else if genNode, found := root.Find(in, "generator"); found {
		if generatorName, err := getString(genNode, in, 1); err == nil {
			gen = generatorName
		}
	}

	return ver, gen, nil
}

// parseGeneral extracts board-wide properties: (general (thickness 1.6)
// (title "Board") ...).
func parseGeneral(node sexp.Node, in *sexp.Interner) (*General, error) {
	general := &General{}

	if thicknessNode, found := node.Find(in, "thickness"); found {
		thickness, err := getFloat(thicknessNode, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to parse thickness: %w", err)
		}
		general.Thickness = thickness
	}
	if titleNode, found := node.Find(in, "title"); found {
		if title, err := getQuotedString(titleNode, in, 1); err == nil {
			general.Title = title
		}
	}
	if dateNode, found := node.Find(in, "date"); found {
		if date, err := getQuotedString(dateNode, in, 1); err == nil {
			general.Date = date
		}
	}
	if revNode, found := node.Find(in, "rev"); found {
		if rev, err := getQuotedString(revNode, in, 1); err == nil {
			general.Revision = rev
		}
	}
	if companyNode, found := node.Find(in, "company"); found {
		if company, err := getQuotedString(companyNode, in, 1); err == nil {
			general.Company = company
		}
	}

	return general, nil
}

// parseLayers extracts the board's layer stackup: (layers (0 "F.Cu"
// signal) (31 "B.Cu" signal) ...).
func parseLayers(node sexp.Node, in *sexp.Interner) ([]Layer, error) {
	layerNodes := getListItems(node)
	if len(layerNodes) == 0 {
		return nil, fmt.Errorf("no layers defined")
	}

	var layers []Layer
	for _, layerNode := range layerNodes {
		if !layerNode.IsList() {
			continue
		}
		number, err := getInt(layerNode, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to parse layer number: %w", err)
		}
		name, err := getQuotedString(layerNode, in, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to parse layer name: %w", err)
		}
		layerType, err := getString(layerNode, in, 2)
		if err != nil {
			layerType = "user"
		}
		layers = append(layers, Layer{Number: number, Name: name, Type: layerType})
	}

	return layers, nil
}

// parseSetup extracts board setup configuration: (setup
// (pad_to_mask_clearance d) (aux_axis_origin x y) (grid_origin x y) ...).
// Every field is optional; an empty setup section is a valid board.
func parseSetup(node sexp.Node, in *sexp.Interner) (*Setup, error) {
	setup := &Setup{}

	if n, found := node.Find(in, "pad_to_mask_clearance"); found {
		if v, err := getFloat(n, 1); err == nil {
			setup.Pad2MaskClearance = v
		}
	}
	if n, found := node.Find(in, "aux_axis_origin"); found {
		if p, err := parsePosition(n); err == nil {
			setup.AuxAxisOrigin = p
		}
	}
	if n, found := node.Find(in, "grid_origin"); found {
		if p, err := parsePosition(n); err == nil {
			setup.GridOrigin = p
		}
	}

	return setup, nil
}

// parseNets extracts net declarations, one per top-level (net <number>
// "<name>") form.
func parseNets(root sexp.Node, in *sexp.Interner) ([]Net, error) {
	netNodes := root.FindAll(in, "net")
	if len(netNodes) == 0 {
		return []Net{}, nil
	}

	var nets []Net
	for _, netNode := range netNodes {
		number, err := getInt(netNode, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to parse net number: %w", err)
		}
		name := ""
		if nameStr, err := getQuotedString(netNode, in, 2); err == nil {
			name = nameStr
		}
		nets = append(nets, Net{Number: number, Name: name})
	}

	return nets, nil
}

// parseTracks extracts copper track segments: (segment (start x y) (end
// x y) (width w) (layer "F.Cu") (net n) [(locked)] (uuid ...)).
func parseTracks(root sexp.Node, in *sexp.Interner, netMap *NetMap) ([]Track, error) {
	var tracks []Track
	for _, node := range root.FindAll(in, "segment") {
		startNode, found := node.Find(in, "start")
		if !found {
			return nil, fmt.Errorf("segment missing 'start' position")
		}
		start, err := parsePosition(startNode)
		if err != nil {
			return nil, fmt.Errorf("failed to parse segment start: %w", err)
		}
		endNode, found := node.Find(in, "end")
		if !found {
			return nil, fmt.Errorf("segment missing 'end' position")
		}
		end, err := parsePosition(endNode)
		if err != nil {
			return nil, fmt.Errorf("failed to parse segment end: %w", err)
		}

		track := Track{Start: start, End: end}

		if widthNode, found := node.Find(in, "width"); found {
			if w, err := getFloat(widthNode, 1); err == nil {
				track.Width = w
			}
		}
		if layerNode, found := node.Find(in, "layer"); found {
			if layer, err := getQuotedString(layerNode, in, 1); err == nil {
				track.Layer = layer
			}
		}
		if netNode, found := node.Find(in, "net"); found {
			if netNum, err := getInt(netNode, 1); err == nil && netMap != nil {
				if net, ok := netMap.GetByNumber(netNum); ok {
					track.Net = net
				}
			}
		}
		track.Locked = hasSymbol(node, in, "locked")
		if uuidNode, found := node.Find(in, "uuid"); found {
			if id, err := getString(uuidNode, in, 1); err == nil {
				track.UUID = UUID(id)
			}
		}

		tracks = append(tracks, track)
	}

	return tracks, nil
}

// parseVias extracts vias: (via [blind|micro] (at x y) (size s) (drill
// d) (layers "F.Cu" "B.Cu") (net n) [(locked)] (uuid ...)).
func parseVias(root sexp.Node, in *sexp.Interner, netMap *NetMap) ([]Via, error) {
	var vias []Via
	for _, node := range root.FindAll(in, "via") {
		atNode, found := node.Find(in, "at")
		if !found {
			return nil, fmt.Errorf("via missing 'at' position")
		}
		pos, err := parsePosition(atNode)
		if err != nil {
			return nil, fmt.Errorf("failed to parse via position: %w", err)
		}

		via := Via{Position: pos}

		if sizeNode, found := node.Find(in, "size"); found {
			if s, err := getFloat(sizeNode, 1); err == nil {
				via.Size = s
			}
		}
		if drillNode, found := node.Find(in, "drill"); found {
			if d, err := getFloat(drillNode, 1); err == nil {
				via.Drill = d
			}
		}
		if layersNode, found := node.Find(in, "layers"); found {
			var layers LayerSet
			for _, item := range getListItems(layersNode) {
				if item.IsSymbol() {
					layers = append(layers, item.SymbolText(in))
				}
			}
			via.Layers = layers
		}
		if netNode, found := node.Find(in, "net"); found {
			if netNum, err := getInt(netNode, 1); err == nil && netMap != nil {
				if net, ok := netMap.GetByNumber(netNum); ok {
					via.Net = net
				}
			}
		}
		via.Locked = hasSymbol(node, in, "locked")
		if uuidNode, found := node.Find(in, "uuid"); found {
			if id, err := getString(uuidNode, in, 1); err == nil {
				via.UUID = UUID(id)
			}
		}

		vias = append(vias, via)
	}

	return vias, nil
}

// zoneLayers resolves a zone's (layer "X") or (layers "X" "Y" ...) form
// to the set of copper layers it fills.
func zoneLayers(node sexp.Node, in *sexp.Interner) ([]string, error) {
	if layerNode, found := node.Find(in, "layer"); found {
		name, err := getQuotedString(layerNode, in, 1)
		if err != nil {
			return nil, err
		}
		return []string{name}, nil
	}
	if layersNode, found := node.Find(in, "layers"); found {
		var names []string
		for _, item := range getListItems(layersNode) {
			if item.IsSymbol() {
				names = append(names, item.SymbolText(in))
			}
		}
		return names, nil
	}
	return nil, fmt.Errorf("zone missing 'layer' or 'layers' field")
}

// parseZone extracts a single (zone ...) form. A zone may name more than
// one copper layer, in which case it is split into one Zone value per
// layer, each keeping the shared outline and picking up that layer's own
// filled_polygon entries.
func parseZone(node sexp.Node, in *sexp.Interner, netMap *NetMap) ([]Zone, error) {
	var net *Net
	if netNode, found := node.Find(in, "net"); found {
		if netNum, err := getInt(netNode, 1); err == nil && netMap != nil {
			net, _ = netMap.GetByNumber(netNum)
		}
	}

	var outline []Position
	if polyNode, found := node.Find(in, "polygon"); found {
		if ptsNode, found := polyNode.Find(in, "pts"); found {
			for _, xy := range ptsNode.FindAll(in, "xy") {
				p, err := parsePosition(xy)
				if err != nil {
					return nil, fmt.Errorf("failed to parse zone outline point: %w", err)
				}
				outline = append(outline, p)
			}
		}
	}

	var minThickness float64
	if mtNode, found := node.Find(in, "min_thickness"); found {
		if v, err := getFloat(mtNode, 1); err == nil {
			minThickness = v
		}
	}

	var hatchGap float64
	if hatchNode, found := node.Find(in, "hatch"); found {
		if v, err := getFloat(hatchNode, 2); err == nil {
			hatchGap = v
		}
	}

	layers, err := zoneLayers(node, in)
	if err != nil {
		return nil, err
	}

	fillsByLayer := make(map[string][][]Position)
	for _, fp := range node.FindAll(in, "filled_polygon") {
		layerNode, found := fp.Find(in, "layer")
		if !found {
			continue
		}
		layerName, err := getQuotedString(layerNode, in, 1)
		if err != nil {
			continue
		}
		ptsNode, found := fp.Find(in, "pts")
		if !found {
			continue
		}
		var pts []Position
		for _, xy := range ptsNode.FindAll(in, "xy") {
			if p, err := parsePosition(xy); err == nil {
				pts = append(pts, p)
			}
		}
		fillsByLayer[layerName] = append(fillsByLayer[layerName], pts)
	}

	zones := make([]Zone, 0, len(layers))
	for _, layer := range layers {
		zones = append(zones, Zone{
			Net:          net,
			Layer:        layer,
			Outline:      outline,
			Fills:        fillsByLayer[layer],
			HatchGap:     hatchGap,
			MinThickness: minThickness,
		})
	}

	return zones, nil
}

// parseZones extracts every (zone ...) form on the board. A zone that
// fails to parse is logged and skipped rather than aborting the whole
// board load, matching this parser's general tolerance for the optional,
// frequently-revised sections of the format.
func parseZones(root sexp.Node, in *sexp.Interner, netMap *NetMap) ([]Zone, error) {
	zoneNodes := root.FindAll(in, "zone")
	zones := make([]Zone, 0, len(zoneNodes))

	for i, zoneNode := range zoneNodes {
		parsed, err := parseZone(zoneNode, in, netMap)
		if err != nil {
			log.Printf("pcb: skipping zone %d: %v", i, err)
			continue
		}
		for _, zone := range parsed {
			if len(zone.Fills) == 0 {
				log.Printf("pcb: zone %d on layer %s has no filled_polygon data", i, zone.Layer)
			}
			zones = append(zones, zone)
		}
	}

	return zones, nil
}
