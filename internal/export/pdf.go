// Package export renders a scene snapshot to PDF. It is a one-way render
// for sharing, not a document format: nothing is read back.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"coursecanvas/internal/scene"
)

// ptPerUnit scales canvas units down to fit an A4 page.
const ptPerUnit = 1.0 / 3.0

// PDF writes objects (a store snapshot, in z-order) to an A4 PDF at path.
func PDF(path string, objects []scene.Object) error {
	doc := gofpdf.New("L", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)

	for _, obj := range objects {
		switch t := obj.(type) {
		case *scene.Path:
			drawPath(doc, t)
		case *scene.Text:
			drawText(doc, t)
		case *scene.Shape:
			drawShape(doc, t)
		case *scene.Table:
			drawTable(doc, t)
		}
	}

	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}

func drawPath(doc *gofpdf.Fpdf, p *scene.Path) {
	if len(p.Nodes) < 2 {
		return
	}
	setStroke(doc, p.Stroke.Color, p.Stroke.Width)
	first := p.Nodes[0]
	doc.MoveTo(mm(first.Position.X), mm(first.Position.Y))
	for i := 1; i <= len(p.Nodes); i++ {
		if i == len(p.Nodes) && !p.Closed {
			break
		}
		from := p.Nodes[i-1]
		to := p.Nodes[i%len(p.Nodes)]
		curveTo(doc, from, to)
	}
	if p.Closed {
		doc.ClosePath()
	}
	doc.DrawPath("D")
}

// curveTo emits a straight or cubic segment depending on the handles at
// either end, substituting the endpoint for a missing handle.
func curveTo(doc *gofpdf.Fpdf, from, to scene.Node) {
	if from.HandleOut == nil && to.HandleIn == nil {
		doc.LineTo(mm(to.Position.X), mm(to.Position.Y))
		return
	}
	c0 := from.Position
	if from.HandleOut != nil {
		c0 = *from.HandleOut
	}
	c1 := to.Position
	if to.HandleIn != nil {
		c1 = *to.HandleIn
	}
	doc.CurveBezierCubicTo(mm(c0.X), mm(c0.Y), mm(c1.X), mm(c1.Y), mm(to.Position.X), mm(to.Position.Y))
}

func drawText(doc *gofpdf.Fpdf, t *scene.Text) {
	size := float64(t.Style.FontSize)
	if size <= 0 {
		size = 12
	}
	doc.SetFont("Helvetica", "", size*ptPerUnit*2.83) // canvas px -> pt at page scale
	r, g, b := hexColor(t.Style.Color)
	doc.SetTextColor(r, g, b)
	lineHeight := size * ptPerUnit * 1.3
	for i, line := range strings.Split(t.Buffer.Text, "\n") {
		doc.Text(mm(t.Rect.X), mm(t.Rect.Y)+float64(i+1)*lineHeight, line)
	}
}

func drawShape(doc *gofpdf.Fpdf, s *scene.Shape) {
	setStroke(doc, s.StrokeColor, s.StrokeWidth)
	x, y := mm(s.Rect.X), mm(s.Rect.Y)
	w, h := mm(s.Rect.Width), mm(s.Rect.Height)
	switch s.Shape {
	case scene.ShapeEllipse:
		doc.Ellipse(x+w/2, y+h/2, w/2, h/2, 0, "D")
	default:
		if s.CornerRadius > 0 {
			doc.RoundedRect(x, y, w, h, mm(s.CornerRadius), "1234", "D")
		} else {
			doc.Rect(x, y, w, h, "D")
		}
	}
}

func drawTable(doc *gofpdf.Fpdf, t *scene.Table) {
	setStroke(doc, t.StrokeColor, 1)
	x, y := mm(t.Rect.X), mm(t.Rect.Y)
	w, h := mm(t.Rect.Width), mm(t.Rect.Height)
	doc.Rect(x, y, w, h, "D")
	for i := 1; i < t.Cols; i++ {
		cx := x + w*float64(i)/float64(t.Cols)
		doc.Line(cx, y, cx, y+h)
	}
	for i := 1; i < t.Rows; i++ {
		cy := y + h*float64(i)/float64(t.Rows)
		doc.Line(x, cy, x+w, cy)
	}
}

func setStroke(doc *gofpdf.Fpdf, color string, width float32) {
	r, g, b := hexColor(color)
	doc.SetDrawColor(r, g, b)
	lw := float64(width) * ptPerUnit
	if lw < 0.2 {
		lw = 0.2
	}
	doc.SetLineWidth(lw)
}

func mm(v float32) float64 { return float64(v) * ptPerUnit }

// hexColor parses "#rrggbb"; anything else is black.
func hexColor(s string) (int, int, int) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
