package pcb

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceJTAG/pkg/sexp"
)

// parsePosition extracts position coordinates from an (at x y ...),
// (start x y), (end x y) or similar node. The values are returned as the
// file stores them (millimeters); no unit conversion is applied.
func parsePosition(node sexp.Node) (Position, error) {
	x, err := getFloat(node, 1)
	if err != nil {
		return Position{}, fmt.Errorf("failed to parse X coordinate: %w", err)
	}
	y, err := getFloat(node, 2)
	if err != nil {
		return Position{}, fmt.Errorf("failed to parse Y coordinate: %w", err)
	}
	return Position{X: x, Y: y}, nil
}

// parseColor extracts RGBA color from a (color r g b a) node, normalizing
// 0-255 values to 0.0-1.0.
func parseColor(node sexp.Node) (Color, error) {
	r, err := getFloat(node, 1)
	if err != nil {
		return Color{}, fmt.Errorf("failed to parse R component: %w", err)
	}
	g, err := getFloat(node, 2)
	if err != nil {
		return Color{}, fmt.Errorf("failed to parse G component: %w", err)
	}
	b, err := getFloat(node, 3)
	if err != nil {
		return Color{}, fmt.Errorf("failed to parse B component: %w", err)
	}

	a := 1.0
	if aVal, err := getFloat(node, 4); err == nil {
		a = aVal
	}

	if r > 1.0 || g > 1.0 || b > 1.0 {
		r /= 255.0
		g /= 255.0
		b /= 255.0
	}

	return Color{R: r, G: g, B: b, A: a}, nil
}

// parseStroke extracts stroke information from a (stroke ...) node.
func parseStroke(node sexp.Node, in *sexp.Interner) (Stroke, error) {
	stroke := Stroke{
		Width: 0.15,
		Type:  "solid",
	}

	if widthNode, found := node.Find(in, "width"); found {
		width, err := getFloat(widthNode, 1)
		if err != nil {
			return stroke, fmt.Errorf("failed to parse stroke width: %w", err)
		}
		stroke.Width = width
	}
	if typeNode, found := node.Find(in, "type"); found {
		if strokeType, err := getString(typeNode, in, 1); err == nil {
			stroke.Type = strokeType
		}
	}
	if colorNode, found := node.Find(in, "color"); found {
		if color, err := parseColor(colorNode); err == nil {
			stroke.Color = color
		}
	}

	return stroke, nil
}

// parseFill extracts fill information from a (fill ...) node.
func parseFill(node sexp.Node, in *sexp.Interner) (Fill, error) {
	fill := Fill{Type: "none"}

	if typeNode, found := node.Find(in, "type"); found {
		if fillType, err := getString(typeNode, in, 1); err == nil {
			fill.Type = fillType
		}
	}
	if colorNode, found := node.Find(in, "color"); found {
		if color, err := parseColor(colorNode); err == nil {
			fill.Color = color
		}
	}

	return fill, nil
}

// parseGrLine extracts a line graphic: (gr_line (start x1 y1) (end x2
// y2) (stroke ...) (layer "F.Cu")).
func parseGrLine(node sexp.Node, in *sexp.Interner) (*GrLine, error) {
	line := &GrLine{Stroke: Stroke{Width: 0.15, Type: "solid"}}

	startNode, found := node.Find(in, "start")
	if !found {
		return nil, fmt.Errorf("missing required 'start' position")
	}
	start, err := parsePosition(startNode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start position: %w", err)
	}
	line.Start = start

	endNode, found := node.Find(in, "end")
	if !found {
		return nil, fmt.Errorf("missing required 'end' position")
	}
	end, err := parsePosition(endNode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse end position: %w", err)
	}
	line.End = end

	if strokeNode, found := node.Find(in, "stroke"); found {
		stroke, err := parseStroke(strokeNode, in)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stroke: %w", err)
		}
		line.Stroke = stroke
	}

	layerNode, found := node.Find(in, "layer")
	if !found {
		return nil, fmt.Errorf("missing required 'layer' field")
	}
	layer, err := getQuotedString(layerNode, in, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layer: %w", err)
	}
	line.Layer = layer

	return line, nil
}

// parseGrCircle extracts a circle graphic: (gr_circle (center x y) (end
// x y) (stroke ...) (fill ...) (layer "F.Cu")). KiCad defines circles by
// center and a point on the circumference (end).
func parseGrCircle(node sexp.Node, in *sexp.Interner) (*GrCircle, error) {
	circle := &GrCircle{
		Stroke: Stroke{Width: 0.15, Type: "solid"},
		Fill:   Fill{Type: "none"},
	}

	centerNode, found := node.Find(in, "center")
	if !found {
		return nil, fmt.Errorf("missing required 'center' position")
	}
	center, err := parsePosition(centerNode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse center position: %w", err)
	}
	circle.Center = center

	endNode, found := node.Find(in, "end")
	if !found {
		return nil, fmt.Errorf("missing required 'end' position")
	}
	end, err := parsePosition(endNode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse end position: %w", err)
	}
	circle.End = end

	if strokeNode, found := node.Find(in, "stroke"); found {
		stroke, err := parseStroke(strokeNode, in)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stroke: %w", err)
		}
		circle.Stroke = stroke
	}
	if fillNode, found := node.Find(in, "fill"); found {
		if fill, err := parseFill(fillNode, in); err == nil {
			circle.Fill = fill
		}
	}

	layerNode, found := node.Find(in, "layer")
	if !found {
		return nil, fmt.Errorf("missing required 'layer' field")
	}
	layer, err := getQuotedString(layerNode, in, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layer: %w", err)
	}
	circle.Layer = layer

	return circle, nil
}

// parseGrArc extracts an arc graphic: (gr_arc (start x y) (mid x y)
// (end x y) (stroke ...) (layer "F.Cu")).
func parseGrArc(node sexp.Node, in *sexp.Interner) (*GrArc, error) {
	arc := &GrArc{Stroke: Stroke{Width: 0.15, Type: "solid"}}

	startNode, found := node.Find(in, "start")
	if !found {
		return nil, fmt.Errorf("missing required 'start' position")
	}
	start, err := parsePosition(startNode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start position: %w", err)
	}
	arc.Start = start

	midNode, found := node.Find(in, "mid")
	if !found {
		return nil, fmt.Errorf("missing required 'mid' position")
	}
	mid, err := parsePosition(midNode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mid position: %w", err)
	}
	arc.Mid = mid

	endNode, found := node.Find(in, "end")
	if !found {
		return nil, fmt.Errorf("missing required 'end' position")
	}
	end, err := parsePosition(endNode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse end position: %w", err)
	}
	arc.End = end

	if strokeNode, found := node.Find(in, "stroke"); found {
		stroke, err := parseStroke(strokeNode, in)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stroke: %w", err)
		}
		arc.Stroke = stroke
	}

	layerNode, found := node.Find(in, "layer")
	if !found {
		return nil, fmt.Errorf("missing required 'layer' field")
	}
	layer, err := getQuotedString(layerNode, in, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layer: %w", err)
	}
	arc.Layer = layer

	return arc, nil
}

// parseGrRect extracts a rectangle graphic: (gr_rect (start x y) (end x
// y) (stroke ...) (fill ...) (layer "F.Cu")).
func parseGrRect(node sexp.Node, in *sexp.Interner) (*GrRect, error) {
	rect := &GrRect{
		Stroke: Stroke{Width: 0.15, Type: "solid"},
		Fill:   Fill{Type: "none"},
	}

	startNode, found := node.Find(in, "start")
	if !found {
		return nil, fmt.Errorf("missing required 'start' position")
	}
	start, err := parsePosition(startNode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start position: %w", err)
	}
	rect.Start = start

	endNode, found := node.Find(in, "end")
	if !found {
		return nil, fmt.Errorf("missing required 'end' position")
	}
	end, err := parsePosition(endNode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse end position: %w", err)
	}
	rect.End = end

	if strokeNode, found := node.Find(in, "stroke"); found {
		stroke, err := parseStroke(strokeNode, in)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stroke: %w", err)
		}
		rect.Stroke = stroke
	}
	if fillNode, found := node.Find(in, "fill"); found {
		if fill, err := parseFill(fillNode, in); err == nil {
			rect.Fill = fill
		}
	}

	layerNode, found := node.Find(in, "layer")
	if !found {
		return nil, fmt.Errorf("missing required 'layer' field")
	}
	layer, err := getQuotedString(layerNode, in, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layer: %w", err)
	}
	rect.Layer = layer

	return rect, nil
}

// parseGrPoly extracts a polygon graphic: (gr_poly (pts (xy x y) (xy x
// y) ...) (stroke ...) (fill ...) (layer "F.Cu")).
func parseGrPoly(node sexp.Node, in *sexp.Interner) (*GrPoly, error) {
	poly := &GrPoly{
		Stroke: Stroke{Width: 0.15, Type: "solid"},
		Fill:   Fill{Type: "none"},
	}

	ptsNode, found := node.Find(in, "pts")
	if !found {
		return nil, fmt.Errorf("missing required 'pts' field")
	}
	xyNodes := ptsNode.FindAll(in, "xy")
	if len(xyNodes) == 0 {
		return nil, fmt.Errorf("no points defined in polygon")
	}
	for _, xyNode := range xyNodes {
		x, err := getFloat(xyNode, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to parse X coordinate: %w", err)
		}
		y, err := getFloat(xyNode, 2)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Y coordinate: %w", err)
		}
		poly.Points = append(poly.Points, Position{X: x, Y: y})
	}

	if strokeNode, found := node.Find(in, "stroke"); found {
		stroke, err := parseStroke(strokeNode, in)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stroke: %w", err)
		}
		poly.Stroke = stroke
	}
	if fillNode, found := node.Find(in, "fill"); found {
		if fill, err := parseFill(fillNode, in); err == nil {
			poly.Fill = fill
		}
	}

	layerNode, found := node.Find(in, "layer")
	if !found {
		return nil, fmt.Errorf("missing required 'layer' field")
	}
	layer, err := getQuotedString(layerNode, in, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layer: %w", err)
	}
	poly.Layer = layer

	return poly, nil
}

// parseGrText extracts a text graphic: (gr_text "text" (at x y angle)
// (layer "F.Cu") (effects ...)).
func parseGrText(node sexp.Node, in *sexp.Interner) (*GrText, error) {
	text := &GrText{
		Size:      Size{Width: 1.0, Height: 1.0},
		Thickness: 0.15,
	}

	content, err := getQuotedString(node, in, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse text content: %w", err)
	}
	text.Text = content

	atNode, found := node.Find(in, "at")
	if !found {
		return nil, fmt.Errorf("missing required 'at' position")
	}
	pos, err := parsePosition(atNode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse position: %w", err)
	}
	text.Position = pos
	if angle, err := getFloat(atNode, 3); err == nil {
		text.Angle = Angle(angle)
	}

	layerNode, found := node.Find(in, "layer")
	if !found {
		return nil, fmt.Errorf("missing required 'layer' field")
	}
	layer, err := getQuotedString(layerNode, in, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layer: %w", err)
	}
	text.Layer = layer

	if effectsNode, found := node.Find(in, "effects"); found {
		if fontNode, found := effectsNode.Find(in, "font"); found {
			if sizeNode, found := fontNode.Find(in, "size"); found {
				if width, err := getFloat(sizeNode, 1); err == nil {
					text.Size.Width = width
				}
				if height, err := getFloat(sizeNode, 2); err == nil {
					text.Size.Height = height
				}
			}
			if thickNode, found := fontNode.Find(in, "thickness"); found {
				if thickness, err := getFloat(thickNode, 1); err == nil {
					text.Thickness = thickness
				}
			}
			if _, found := fontNode.Find(in, "bold"); found {
				text.Bold = true
			}
			if _, found := fontNode.Find(in, "italic"); found {
				text.Italic = true
			}
		}

		if justifyNode, found := effectsNode.Find(in, "justify"); found {
			var parts []string
			for _, item := range getListItems(justifyNode) {
				if item.IsSymbol() {
					parts = append(parts, item.SymbolText(in))
				}
			}
			if len(parts) > 0 {
				text.Justify = joinWords(parts)
			}
		}
	}

	return text, nil
}

func joinWords(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += " " + p
	}
	return out
}

// parseGraphics extracts every graphic primitive (gr_line, gr_circle,
// gr_arc, gr_rect, gr_poly, gr_text) from the board root node.
func parseGraphics(root sexp.Node, in *sexp.Interner) (*Graphics, error) {
	graphics := &Graphics{}

	for _, n := range root.FindAll(in, "gr_line") {
		line, err := parseGrLine(n, in)
		if err != nil {
			return nil, fmt.Errorf("failed to parse gr_line: %w", err)
		}
		graphics.Lines = append(graphics.Lines, *line)
	}

	for _, n := range root.FindAll(in, "gr_circle") {
		circle, err := parseGrCircle(n, in)
		if err != nil {
			return nil, fmt.Errorf("failed to parse gr_circle: %w", err)
		}
		graphics.Circles = append(graphics.Circles, *circle)
	}

	for _, n := range root.FindAll(in, "gr_arc") {
		arc, err := parseGrArc(n, in)
		if err != nil {
			return nil, fmt.Errorf("failed to parse gr_arc: %w", err)
		}
		graphics.Arcs = append(graphics.Arcs, *arc)
	}

	for _, n := range root.FindAll(in, "gr_rect") {
		rect, err := parseGrRect(n, in)
		if err != nil {
			return nil, fmt.Errorf("failed to parse gr_rect: %w", err)
		}
		graphics.Rects = append(graphics.Rects, *rect)
	}

	for _, n := range root.FindAll(in, "gr_poly") {
		poly, err := parseGrPoly(n, in)
		if err != nil {
			return nil, fmt.Errorf("failed to parse gr_poly: %w", err)
		}
		graphics.Polys = append(graphics.Polys, *poly)
	}

	for _, n := range root.FindAll(in, "gr_text") {
		text, err := parseGrText(n, in)
		if err != nil {
			return nil, fmt.Errorf("failed to parse gr_text: %w", err)
		}
		graphics.Texts = append(graphics.Texts, *text)
	}

	return graphics, nil
}
