package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"

	"coursecanvas/internal/collab"
	"coursecanvas/internal/config"
	"coursecanvas/internal/tools"
	"coursecanvas/internal/ui"
)

func main() {
	var (
		join     = flag.String("join", "", "session to join as host:port, or \"auto\" to discover one on the LAN")
		port     = flag.Int("port", 8877, "port to host the session on")
		solo     = flag.Bool("solo", false, "disable networking entirely")
		cfgPath  = flag.String("config", defaultConfigPath(), "tool settings file (TOML)")
		logLevel = flag.String("log-level", "info", "debug, info, warn or error")
	)
	flag.Parse()

	log := newLogger(*logLevel)
	engine := tools.NewEngine(nil, nil, log)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Warn("config load failed, using defaults", "path", *cfgPath, "err", err)
		cfg = config.Default()
	}
	config.Apply(cfg, engine.Manager(), log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// The watcher fires on its own goroutine; the manager's settings are
	// only ever touched on the fyne event thread.
	applyCfg := config.ApplyFunc(engine.Manager(), log, fyne.Do)
	go func() {
		if err := config.Watch(ctx, *cfgPath, applyCfg, log); err != nil {
			log.Warn("config watch stopped", "err", err)
		}
	}()

	app := ui.New(engine, "Course Canvas", log)
	engine.Router().SetViewport(app.Canvas)

	if !*solo {
		if err := startSession(engine, app, *join, *port, log); err != nil {
			log.Error("session setup failed, continuing solo", "err", err)
			app.SetStatus("Offline: " + err.Error())
		}
	}

	app.Run()
}

// startSession wires the engine's commit stream to the network. Remote ops
// arrive on network goroutines and are marshalled onto the fyne event
// thread before touching the store.
func startSession(engine *tools.Engine, app *ui.App, join string, port int, log *slog.Logger) error {
	session := collab.NewSession()
	oplog := collab.NewLog()

	applyRemote := func(op collab.Op) {
		if !oplog.Admit(op) {
			return
		}
		session.Observe(op)
		change, err := op.ToChange()
		if err != nil {
			log.Warn("dropping malformed op", "site", op.Site, "err", err)
			return
		}
		fyne.Do(func() { engine.Apply(change) })
	}

	var send func(collab.Op)

	if join == "" {
		hub := collab.NewHub(applyRemote, log)
		go func() {
			if err := hub.ListenAndServe(fmt.Sprintf(":%d", port)); err != nil {
				log.Error("session server stopped", "err", err)
			}
		}()
		if _, err := collab.Advertise(port); err != nil {
			log.Warn("mdns advertise failed, joiners must type the address", "err", err)
		}
		if ip, err := collab.OutgoingIP(); err == nil {
			app.SetStatus(fmt.Sprintf("Hosting at %s:%d", ip, port))
		}
		send = hub.Broadcast
	} else {
		addr := join
		if addr == "auto" {
			var err error
			addr, err = discoverSession()
			if err != nil {
				return err
			}
		}
		client, err := collab.Dial(addr, applyRemote, log)
		if err != nil {
			return err
		}
		app.SetStatus("Joined " + addr)
		send = func(op collab.Op) {
			if err := client.Send(op); err != nil {
				log.Warn("send failed", "err", err)
			}
		}
	}

	// Commit sinks must not block the event thread; ops go out through a
	// buffered channel and overflow is dropped with a warning.
	outbox := make(chan collab.Op, 64)
	go func() {
		for op := range outbox {
			send(op)
		}
	}()
	engine.OnCommit(func(c tools.Change) {
		op, err := collab.FromChange(c)
		if err != nil {
			log.Warn("unsendable change", "err", err)
			return
		}
		op = session.Stamp(op)
		oplog.Admit(op)
		select {
		case outbox <- op:
		default:
			log.Warn("outbox full, dropping op", "lamport", op.Lamport)
		}
	})
	return nil
}

// discoverSession returns the first session advertised on the LAN.
func discoverSession() (string, error) {
	found := make(chan string, 1)
	if err := collab.Browse(func(addr string) {
		select {
		case found <- addr:
		default:
		}
	}); err != nil {
		return "", err
	}
	select {
	case addr := <-found:
		return addr, nil
	case <-time.After(3 * time.Second):
		return "", fmt.Errorf("no session found on the local network")
	}
}

func newLogger(level string) *slog.Logger {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		lv = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv}))
	slog.SetDefault(log)
	return log
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "coursecanvas.toml"
	}
	return filepath.Join(dir, "coursecanvas", "tools.toml")
}
