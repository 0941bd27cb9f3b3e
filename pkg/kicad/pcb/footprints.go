package pcb

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceJTAG/pkg/sexp"
)

// parsePad extracts a pad definition from a footprint: (pad "number"
// type shape (at x y [angle]) (size w h) (layers ...) (net n) ...).
func parsePad(node sexp.Node, in *sexp.Interner, netMap *NetMap) (*Pad, error) {
	pad := &Pad{}

	number, err := getQuotedString(node, in, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad number: %w", err)
	}
	pad.Number = number

	padType, err := getString(node, in, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad type: %w", err)
	}
	pad.Type = padType

	shape, err := getString(node, in, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad shape: %w", err)
	}
	pad.Shape = shape

	atNode, found := node.Find(in, "at")
	if !found {
		return nil, fmt.Errorf("missing required 'at' position")
	}
	x, err := getFloat(atNode, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad X position: %w", err)
	}
	y, err := getFloat(atNode, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad Y position: %w", err)
	}
	pad.Position.X = x
	pad.Position.Y = y
	if angle, err := getFloat(atNode, 3); err == nil {
		pad.Position.Angle = Angle(angle)
	}

	sizeNode, found := node.Find(in, "size")
	if !found {
		return nil, fmt.Errorf("missing required 'size' field")
	}
	width, err := getFloat(sizeNode, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad width: %w", err)
	}
	height, err := getFloat(sizeNode, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad height: %w", err)
	}
	pad.Size = Size{Width: width, Height: height}

	if drillNode, found := node.Find(in, "drill"); found {
		if drill, err := getFloat(drillNode, 1); err == nil {
			pad.Drill = drill
		}
	}

	layersNode, found := node.Find(in, "layers")
	if !found {
		return nil, fmt.Errorf("missing required 'layers' field")
	}
	var layers []string
	for _, item := range getListItems(layersNode) {
		if item.IsSymbol() {
			layers = append(layers, item.SymbolText(in))
		}
	}
	pad.Layers = LayerSet(layers)

	if netNode, found := node.Find(in, "net"); found {
		if netNum, err := getInt(netNode, 1); err == nil && netMap != nil {
			if net, ok := netMap.GetByNumber(netNum); ok {
				pad.Net = net
			}
		}
	}

	return pad, nil
}

// parseFootprint extracts a footprint (component) definition: (footprint
// "library:name" (layer "layer") (at x y [angle]) ...).
func parseFootprint(node sexp.Node, in *sexp.Interner, netMap *NetMap) (*Footprint, error) {
	footprint := &Footprint{}

	fpName, err := getQuotedString(node, in, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse footprint name: %w", err)
	}
	if lib, name, ok := strings.Cut(fpName, ":"); ok {
		footprint.Library = lib
		footprint.Name = name
	} else {
		footprint.Name = fpName
	}

	layerNode, found := node.Find(in, "layer")
	if !found {
		return nil, fmt.Errorf("missing required 'layer' field")
	}
	layer, err := getQuotedString(layerNode, in, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layer: %w", err)
	}
	footprint.Layer = layer

	atNode, found := node.Find(in, "at")
	if !found {
		return nil, fmt.Errorf("missing required 'at' position")
	}
	x, err := getFloat(atNode, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse X position: %w", err)
	}
	y, err := getFloat(atNode, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Y position: %w", err)
	}
	footprint.Position.X = x
	footprint.Position.Y = y
	if angle, err := getFloat(atNode, 3); err == nil {
		footprint.Position.Angle = Angle(angle)
	}

	if uuidNode, found := node.Find(in, "uuid"); found {
		if id, err := getString(uuidNode, in, 1); err == nil {
			footprint.UUID = UUID(id)
		}
	}

	for _, propNode := range node.FindAll(in, "property") {
		propName, err := getQuotedString(propNode, in, 1)
		if err != nil {
			continue
		}
		propValue, err := getQuotedString(propNode, in, 2)
		if err != nil {
			continue
		}
		switch propName {
		case "Reference":
			footprint.Reference = propValue
		case "Value":
			footprint.Value = propValue
		}
	}

	for _, padNode := range node.FindAll(in, "pad") {
		pad, err := parsePad(padNode, in, netMap)
		if err != nil {
			continue
		}
		footprint.Pads = append(footprint.Pads, *pad)
	}

	for _, lineNode := range node.FindAll(in, "fp_line") {
		line, err := parseGrLine(lineNode, in)
		if err != nil {
			continue
		}
		footprint.Graphics = append(footprint.Graphics, Graphic{
			Type: "line", Layer: line.Layer, Start: line.Start, End: line.End, Stroke: line.Stroke,
		})
	}

	for _, circleNode := range node.FindAll(in, "fp_circle") {
		circle, err := parseGrCircle(circleNode, in)
		if err != nil {
			continue
		}
		footprint.Graphics = append(footprint.Graphics, Graphic{
			Type: "circle", Layer: circle.Layer, Center: circle.Center, End: circle.End,
			Stroke: circle.Stroke, Fill: circle.Fill,
		})
	}

	for _, arcNode := range node.FindAll(in, "fp_arc") {
		arc, err := parseGrArc(arcNode, in)
		if err != nil {
			continue
		}
		footprint.Graphics = append(footprint.Graphics, Graphic{
			Type: "arc", Layer: arc.Layer, Start: arc.Start, Center: arc.Mid, End: arc.End, Stroke: arc.Stroke,
		})
	}

	for _, rectNode := range node.FindAll(in, "fp_rect") {
		rect, err := parseGrRect(rectNode, in)
		if err != nil {
			continue
		}
		footprint.Graphics = append(footprint.Graphics, Graphic{
			Type: "rect", Layer: rect.Layer, Start: rect.Start, End: rect.End, Stroke: rect.Stroke, Fill: rect.Fill,
		})
	}

	for _, polyNode := range node.FindAll(in, "fp_poly") {
		poly, err := parseGrPoly(polyNode, in)
		if err != nil {
			continue
		}
		footprint.Graphics = append(footprint.Graphics, Graphic{
			Type: "polygon", Layer: poly.Layer, Points: poly.Points, Stroke: poly.Stroke, Fill: poly.Fill,
		})
	}

	return footprint, nil
}

// parseFootprints extracts every (footprint ...) node from the root.
func parseFootprints(root sexp.Node, in *sexp.Interner, netMap *NetMap) ([]Footprint, error) {
	footprintNodes := root.FindAll(in, "footprint")
	if len(footprintNodes) == 0 {
		return []Footprint{}, nil
	}

	var footprints []Footprint
	for _, fpNode := range footprintNodes {
		footprint, err := parseFootprint(fpNode, in, netMap)
		if err != nil {
			continue
		}
		footprints = append(footprints, *footprint)
	}

	return footprints, nil
}
