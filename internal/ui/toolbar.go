package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"coursecanvas/internal/scene"
	"coursecanvas/internal/tools"
)

var toolLabels = map[tools.Name]string{
	tools.ToolSelection: "Select",
	tools.ToolPen:       "Pen",
	tools.ToolBrush:     "Brush",
	tools.ToolText:      "Text",
	tools.ToolShapes:    "Shapes",
	tools.ToolTables:    "Tables",
	tools.ToolEraser:    "Eraser",
}

var palette = []string{"#1a1a1a", "#d32f2f", "#1976d2", "#388e3c", "#f9a825", "#7b1fa2"}

// colorSwatch is a tappable color square for the palette row.
type colorSwatch struct {
	widget.BaseWidget
	hex      string
	onTapped func(hex string)
}

func newColorSwatch(hex string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{hex: hex, onTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) Tapped(*fyne.PointEvent) {
	if s.onTapped != nil {
		s.onTapped(s.hex)
	}
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(colorFromHex(s.hex))
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

// NewToolbar builds the tool switcher, palette, size slider and session
// actions. Everything routes through the engine; the toolbar holds no
// drawing state of its own.
func NewToolbar(engine *tools.Engine, cw *CanvasWidget, onExport func()) fyne.CanvasObject {
	buttons := make(map[tools.Name]*widget.Button, len(tools.AllTools))
	for _, name := range tools.AllTools {
		n := name
		buttons[n] = widget.NewButton(toolLabels[n], func() { engine.SetTool(n) })
	}

	// Highlight follows the manager, so programmatic switches (double-click
	// into a text area) update the toolbar too.
	engine.Manager().Observe(func(active tools.Name) {
		for name, b := range buttons {
			if name == active {
				b.Importance = widget.HighImportance
			} else {
				b.Importance = widget.MediumImportance
			}
			b.Refresh()
		}
	})

	sizeSlider := widget.NewSlider(1, 24)
	if s, ok := engine.ToolSettings(engine.ActiveTool()); ok {
		sizeSlider.Value = float64(s.Size)
	}
	sizeSlider.OnChanged = func(v float64) {
		size := float32(v)
		engine.SetToolSettings(engine.ActiveTool(), tools.SettingsPatch{Size: &size})
	}
	engine.Manager().Observe(func(active tools.Name) {
		if s, ok := engine.ToolSettings(active); ok {
			sizeSlider.Value = float64(s.Size)
			sizeSlider.Refresh()
		}
	})

	shapePick := widget.NewSelect([]string{"rectangle", "ellipse"}, func(v string) {
		kind := scene.ShapeKind(v)
		engine.SetToolSettings(tools.ToolShapes, tools.SettingsPatch{Shape: &kind})
	})
	shapePick.SetSelected(string(scene.ShapeRectangle))

	swatches := make([]fyne.CanvasObject, 0, len(palette))
	for _, hex := range palette {
		swatches = append(swatches, newColorSwatch(hex, func(hex string) {
			engine.SetToolSettings(engine.ActiveTool(), tools.SettingsPatch{Color: &hex})
		}))
	}

	zoomIn := widget.NewButton("+", cw.ZoomIn)
	zoomOut := widget.NewButton("-", cw.ZoomOut)
	clear := widget.NewButton("Clear", engine.Clear)
	export := widget.NewButton("Export PDF", func() {
		if onExport != nil {
			onExport()
		}
	})

	items := make([]fyne.CanvasObject, 0, 16)
	for _, name := range tools.AllTools {
		items = append(items, buttons[name])
	}
	items = append(items, widget.NewSeparator())
	items = append(items, swatches...)
	items = append(items,
		widget.NewSeparator(),
		container.NewGridWrap(fyne.NewSize(120, 36), sizeSlider),
		shapePick,
		widget.NewSeparator(),
		zoomOut, zoomIn, clear, export,
	)
	return container.NewHBox(items...)
}
