package ui

import (
	"image/color"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"coursecanvas/internal/geom"
	"coursecanvas/internal/scene"
	"coursecanvas/internal/tools"
)

// CanvasWidget hosts the engine inside a fyne window. It is the coordinate
// provider (pan offset + zoom factor) and the raw input source: every fyne
// pointer/keyboard event is forwarded to the engine router, and every store
// change triggers a redraw.
type CanvasWidget struct {
	widget.BaseWidget
	engine *tools.Engine

	panX, panY float32
	scale      float32
}

var _ fyne.Widget = (*CanvasWidget)(nil)
var _ desktop.Mouseable = (*CanvasWidget)(nil)
var _ desktop.Hoverable = (*CanvasWidget)(nil)
var _ fyne.Draggable = (*CanvasWidget)(nil)
var _ fyne.Scrollable = (*CanvasWidget)(nil)
var _ fyne.Focusable = (*CanvasWidget)(nil)
var _ fyne.Shortcutable = (*CanvasWidget)(nil)

func NewCanvasWidget(engine *tools.Engine) *CanvasWidget {
	w := &CanvasWidget{engine: engine, scale: 1}
	w.ExtendBaseWidget(w)
	// Store changes can arrive from the blink timer's goroutine, so route
	// refreshes through fyne.Do.
	engine.Store().OnChange(func() { fyne.Do(w.Refresh) })
	return w
}

// ToCanvas implements tools.Viewport.
func (w *CanvasWidget) ToCanvas(p geom.Point) geom.Point {
	return geom.Pt((p.X-w.panX)/w.scale, (p.Y-w.panY)/w.scale)
}

// Zoom implements tools.Viewport.
func (w *CanvasWidget) Zoom() float32 { return w.scale }

func (w *CanvasWidget) toScreen(p geom.Point) fyne.Position {
	return fyne.NewPos(p.X*w.scale+w.panX, p.Y*w.scale+w.panY)
}

func (w *CanvasWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	if c := fyne.CurrentApp().Driver().CanvasForObject(w); c != nil {
		c.Focus(w)
	}
	w.engine.Router().PointerDown(geom.Pt(e.Position.X, e.Position.Y), mods(e.Modifier))
}

func (w *CanvasWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	w.engine.Router().PointerUp(geom.Pt(e.Position.X, e.Position.Y), mods(e.Modifier))
}

func (w *CanvasWidget) MouseIn(*desktop.MouseEvent) {}
func (w *CanvasWidget) MouseOut()                   {}

func (w *CanvasWidget) MouseMoved(e *desktop.MouseEvent) {
	w.engine.Router().PointerMove(geom.Pt(e.Position.X, e.Position.Y), mods(e.Modifier))
}

// Dragged keeps move events flowing while a button is held; fyne stops
// hover events during a drag.
func (w *CanvasWidget) Dragged(e *fyne.DragEvent) {
	w.engine.Router().PointerMove(geom.Pt(e.Position.X, e.Position.Y), tools.Modifiers{})
}

func (w *CanvasWidget) DragEnd() {}

// Scrolled pans the viewport; the engine sees the result only through
// ToCanvas.
func (w *CanvasWidget) Scrolled(e *fyne.ScrollEvent) {
	w.panX += e.Scrolled.DX
	w.panY += e.Scrolled.DY
	w.Refresh()
}

// ZoomIn and ZoomOut step the zoom factor within sane limits.
func (w *CanvasWidget) ZoomIn()  { w.setZoom(w.scale * 1.2) }
func (w *CanvasWidget) ZoomOut() { w.setZoom(w.scale / 1.2) }

func (w *CanvasWidget) setZoom(s float32) {
	if s < 0.3 {
		s = 0.3
	}
	if s > 3 {
		s = 3
	}
	w.scale = s
	w.Refresh()
}

func (w *CanvasWidget) FocusGained() {}
func (w *CanvasWidget) FocusLost()   {}

func (w *CanvasWidget) TypedRune(r rune) { w.engine.Router().TypedRune(r) }

func (w *CanvasWidget) TypedKey(e *fyne.KeyEvent) {
	key, ok := keyFor(e.Name)
	if !ok {
		return
	}
	w.engine.Router().Key(tools.KeyEvent{Key: key})
}

func (w *CanvasWidget) TypedShortcut(s fyne.Shortcut) {
	switch sc := s.(type) {
	case *fyne.ShortcutSelectAll:
		w.engine.Router().Key(tools.KeyEvent{Rune: 'a', Mods: tools.Modifiers{Ctrl: true}})
	case *desktop.CustomShortcut:
		if sc.Modifier&fyne.KeyModifierControl == 0 {
			return
		}
		if key, ok := keyFor(sc.KeyName); ok {
			w.engine.Router().Key(tools.KeyEvent{Key: key, Mods: tools.Modifiers{Ctrl: true}})
		}
	}
}

func keyFor(name fyne.KeyName) (tools.Key, bool) {
	switch name {
	case fyne.KeyLeft:
		return tools.KeyLeft, true
	case fyne.KeyRight:
		return tools.KeyRight, true
	case fyne.KeyUp:
		return tools.KeyUp, true
	case fyne.KeyDown:
		return tools.KeyDown, true
	case fyne.KeyHome:
		return tools.KeyHome, true
	case fyne.KeyEnd:
		return tools.KeyEnd, true
	case fyne.KeyReturn, fyne.KeyEnter:
		return tools.KeyEnter, true
	case fyne.KeyEscape:
		return tools.KeyEscape, true
	case fyne.KeyBackspace:
		return tools.KeyBackspace, true
	case fyne.KeyDelete:
		return tools.KeyDelete, true
	case fyne.KeyTab:
		return tools.KeyTab, true
	}
	return "", false
}

func mods(m fyne.KeyModifier) tools.Modifiers {
	return tools.Modifiers{
		Shift: m&fyne.KeyModifierShift != 0,
		Ctrl:  m&fyne.KeyModifierControl != 0,
		Alt:   m&fyne.KeyModifierAlt != 0,
	}
}

func (w *CanvasWidget) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.NRGBA{R: 245, G: 246, B: 248, A: 255})
	return &canvasRenderer{w: w, background: bg}
}

type canvasRenderer struct {
	w          *CanvasWidget
	background *canvas.Rectangle
}

func (r *canvasRenderer) Objects() []fyne.CanvasObject {
	w := r.w
	objs := []fyne.CanvasObject{r.background}

	for _, obj := range w.engine.AllObjects() {
		switch t := obj.(type) {
		case *scene.Path:
			objs = append(objs, r.pathLines(t)...)
		case *scene.Text:
			objs = append(objs, r.textLines(t)...)
		case *scene.Shape:
			objs = append(objs, r.shape(t))
		case *scene.Table:
			objs = append(objs, r.tableLines(t)...)
		}
	}

	objs = append(objs, r.previews()...)
	objs = append(objs, r.overlays()...)
	return objs
}

func (r *canvasRenderer) pathLines(p *scene.Path) []fyne.CanvasObject {
	col := colorFromHex(p.Stroke.Color)
	pts := flattenPath(p)
	return r.polyline(pts, col, p.Stroke.Width*r.w.scale)
}

func (r *canvasRenderer) polyline(pts []geom.Point, col color.Color, width float32) []fyne.CanvasObject {
	var out []fyne.CanvasObject
	for i := 1; i < len(pts); i++ {
		seg := canvas.NewLine(col)
		seg.StrokeWidth = width
		seg.Position1 = r.w.toScreen(pts[i-1])
		seg.Position2 = r.w.toScreen(pts[i])
		out = append(out, seg)
	}
	return out
}

func (r *canvasRenderer) textLines(t *scene.Text) []fyne.CanvasObject {
	col := colorFromHex(t.Style.Color)
	size := t.Style.FontSize * r.w.scale
	var out []fyne.CanvasObject

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 180, G: 180, B: 190, A: 120}
	border.StrokeWidth = 1
	border.Move(r.w.toScreen(t.Rect.Origin()))
	border.Resize(fyne.NewSize(t.Rect.Width*r.w.scale, t.Rect.Height*r.w.scale))
	out = append(out, border)

	lines := strings.Split(t.Buffer.Text, "\n")
	lineHeight := size * 1.3
	for i, line := range lines {
		txt := canvas.NewText(line, col)
		txt.TextSize = size
		txt.Move(r.w.toScreen(geom.Pt(t.Rect.X+2, t.Rect.Y+2)).AddXY(0, float32(i)*lineHeight))
		out = append(out, txt)
	}

	if t.Active && r.blinkVisible() {
		out = append(out, r.cursorLine(t, lines, size, lineHeight))
	}
	return out
}

func (r *canvasRenderer) blinkVisible() bool {
	tt, _ := r.w.engine.Manager().Tool(tools.ToolText).(*tools.TextAreaTool)
	return tt != nil && tt.Blinker().Visible()
}

func (r *canvasRenderer) cursorLine(t *scene.Text, lines []string, size, lineHeight float32) fyne.CanvasObject {
	// Find the cursor's line and measure the prefix for its x offset.
	row, lineStart := 0, 0
	for i, line := range lines {
		end := lineStart + len(line)
		if t.Buffer.Cursor <= end {
			row = i
			break
		}
		lineStart = end + 1
		row = i + 1
	}
	prefix := ""
	if row < len(lines) {
		prefix = lines[row][:t.Buffer.Cursor-lineStart]
	}
	width := fyne.MeasureText(prefix, size, fyne.TextStyle{}).Width

	cur := canvas.NewLine(colorFromHex(t.Style.Color))
	cur.StrokeWidth = 1.5
	base := r.w.toScreen(geom.Pt(t.Rect.X+2, t.Rect.Y+2))
	cur.Position1 = base.AddXY(width, float32(row)*lineHeight)
	cur.Position2 = base.AddXY(width, float32(row)*lineHeight+size*1.1)
	return cur
}

func (r *canvasRenderer) shape(s *scene.Shape) fyne.CanvasObject {
	stroke := colorFromHex(s.StrokeColor)
	pos := r.w.toScreen(s.Rect.Origin())
	size := fyne.NewSize(s.Rect.Width*r.w.scale, s.Rect.Height*r.w.scale)
	if s.Shape == scene.ShapeEllipse {
		c := canvas.NewCircle(color.Transparent)
		c.StrokeColor = stroke
		c.StrokeWidth = s.StrokeWidth * r.w.scale
		c.Move(pos)
		c.Resize(size)
		return c
	}
	rect := canvas.NewRectangle(color.Transparent)
	rect.StrokeColor = stroke
	rect.StrokeWidth = s.StrokeWidth * r.w.scale
	rect.CornerRadius = s.CornerRadius * r.w.scale
	rect.Move(pos)
	rect.Resize(size)
	return rect
}

func (r *canvasRenderer) tableLines(t *scene.Table) []fyne.CanvasObject {
	col := colorFromHex(t.StrokeColor)
	var out []fyne.CanvasObject

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = col
	border.StrokeWidth = 1
	border.Move(r.w.toScreen(t.Rect.Origin()))
	border.Resize(fyne.NewSize(t.Rect.Width*r.w.scale, t.Rect.Height*r.w.scale))
	out = append(out, border)

	for i := 1; i < t.Cols; i++ {
		x := t.Rect.X + t.Rect.Width*float32(i)/float32(t.Cols)
		seg := canvas.NewLine(col)
		seg.Position1 = r.w.toScreen(geom.Pt(x, t.Rect.Y))
		seg.Position2 = r.w.toScreen(geom.Pt(x, t.Rect.Y+t.Rect.Height))
		out = append(out, seg)
	}
	for i := 1; i < t.Rows; i++ {
		y := t.Rect.Y + t.Rect.Height*float32(i)/float32(t.Rows)
		seg := canvas.NewLine(col)
		seg.Position1 = r.w.toScreen(geom.Pt(t.Rect.X, y))
		seg.Position2 = r.w.toScreen(geom.Pt(t.Rect.X+t.Rect.Width, y))
		out = append(out, seg)
	}
	return out
}

// previews renders in-progress gestures: the pen's node polyline and the
// brush stroke.
func (r *canvasRenderer) previews() []fyne.CanvasObject {
	var out []fyne.CanvasObject
	m := r.w.engine.Manager()
	if pen, ok := m.Tool(tools.ToolPen).(*tools.Pen); ok && pen.Building() {
		nodes := pen.Nodes()
		pts := make([]geom.Point, len(nodes))
		for i, n := range nodes {
			pts[i] = n.Position
		}
		out = append(out, r.polyline(pts, color.NRGBA{R: 60, G: 60, B: 200, A: 160}, 1.5)...)
	}
	if brush, ok := m.Tool(tools.ToolBrush).(*tools.Brush); ok {
		if pts := brush.Points(); len(pts) > 1 {
			s, _ := m.Settings(tools.ToolBrush)
			out = append(out, r.polyline(pts, colorFromHex(s.Color), s.Size*r.w.scale)...)
		}
	}
	return out
}

// overlays renders the selection outlines and transform handles. They are
// plain render objects: the hit tester never sees them.
func (r *canvasRenderer) overlays() []fyne.CanvasObject {
	sel, ok := r.w.engine.Manager().Tool(tools.ToolSelection).(*tools.SelectionTool)
	if !ok {
		return nil
	}
	accent := color.NRGBA{R: 30, G: 120, B: 255, A: 255}
	var out []fyne.CanvasObject
	for _, ov := range sel.Overlays() {
		outline := canvas.NewRectangle(color.Transparent)
		outline.StrokeColor = accent
		outline.StrokeWidth = 1
		outline.Move(r.w.toScreen(ov.Outline.Origin()))
		outline.Resize(fyne.NewSize(ov.Outline.Width*r.w.scale, ov.Outline.Height*r.w.scale))
		out = append(out, outline)

		out = append(out, r.handle(ov.Resize, accent))
		if ov.Corner != nil {
			out = append(out, r.handle(*ov.Corner, accent))
		}
	}
	return out
}

func (r *canvasRenderer) handle(rect geom.Rect, col color.Color) fyne.CanvasObject {
	h := canvas.NewRectangle(col)
	h.Move(r.w.toScreen(rect.Origin()))
	h.Resize(fyne.NewSize(rect.Width*r.w.scale, rect.Height*r.w.scale))
	return h
}

// flattenPath samples each segment (straight or cubic) into a polyline.
func flattenPath(p *scene.Path) []geom.Point {
	if len(p.Nodes) == 0 {
		return nil
	}
	const steps = 12
	pts := []geom.Point{p.Nodes[0].Position}
	count := len(p.Nodes) - 1
	if p.Closed {
		count = len(p.Nodes)
	}
	for i := 0; i < count; i++ {
		from := p.Nodes[i]
		to := p.Nodes[(i+1)%len(p.Nodes)]
		if from.HandleOut == nil && to.HandleIn == nil {
			pts = append(pts, to.Position)
			continue
		}
		c0 := from.Position
		if from.HandleOut != nil {
			c0 = *from.HandleOut
		}
		c1 := to.Position
		if to.HandleIn != nil {
			c1 = *to.HandleIn
		}
		for s := 1; s <= steps; s++ {
			pts = append(pts, cubicAt(from.Position, c0, c1, to.Position, float32(s)/steps))
		}
	}
	return pts
}

func cubicAt(p0, c0, c1, p1 geom.Point, t float32) geom.Point {
	u := 1 - t
	return p0.Mul(u * u * u).
		Add(c0.Mul(3 * u * u * t)).
		Add(c1.Mul(3 * u * t * t)).
		Add(p1.Mul(t * t * t))
}

// colorFromHex parses "#rrggbb"; anything else renders near-black.
func colorFromHex(s string) color.Color {
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{R: 26, G: 26, B: 26, A: 255}
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.NRGBA{R: 26, G: 26, B: 26, A: 255}
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

func (r *canvasRenderer) Layout(size fyne.Size) { r.background.Resize(size) }
func (r *canvasRenderer) MinSize() fyne.Size    { return fyne.NewSize(640, 480) }
func (r *canvasRenderer) Refresh()              { canvas.Refresh(r.w) }
func (r *canvasRenderer) Destroy()              {}
