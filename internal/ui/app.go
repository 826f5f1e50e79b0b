package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"coursecanvas/internal/export"
	"coursecanvas/internal/tools"
)

// App is the fyne shell around the engine: window, toolbar, canvas widget
// and status bar.
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	Canvas  *CanvasWidget
	status  *widget.Label
	engine  *tools.Engine
	log     *slog.Logger
}

func New(engine *tools.Engine, title string, log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	a := &App{
		fyneApp: app.New(),
		engine:  engine,
		status:  widget.NewLabel(""),
		log:     log,
	}
	a.window = a.fyneApp.NewWindow(title)
	a.window.Resize(fyne.NewSize(1280, 800))

	a.Canvas = NewCanvasWidget(engine)
	toolbar := NewToolbar(engine, a.Canvas, a.exportPDF)

	engine.Manager().Observe(func(active tools.Name) {
		a.status.SetText("Tool: " + toolLabels[active])
	})

	a.window.SetContent(container.NewBorder(toolbar, a.status, nil, nil, a.Canvas))
	a.window.Canvas().Focus(a.Canvas)
	return a
}

// SetStatus updates the status bar; safe from any goroutine.
func (a *App) SetStatus(msg string) {
	fyne.Do(func() { a.status.SetText(msg) })
}

func (a *App) exportPDF() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := export.PDF(path, a.engine.Store().Snapshot()); err != nil {
			a.log.Error("pdf export failed", "path", path, "err", err)
			a.SetStatus("Export failed: " + err.Error())
			return
		}
		a.log.Info("exported pdf", "path", path)
		a.SetStatus("Exported " + path)
	}, a.window)
}

// Run shows the window and blocks until the app exits.
func (a *App) Run() { a.window.ShowAndRun() }
