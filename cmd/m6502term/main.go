// Command m6502term is an interactive terminal for a 6502 board
// attached over a serial link. A scrollback console shows device output
// and status lines; a single input line accepts monitor commands
// (type "help" for the list).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jroimartin/gocui"

	"github.com/m6502-lab/monitor"
	"github.com/m6502-lab/monitor/internal/config"
	"github.com/m6502-lab/monitor/internal/logging"
)

func main() {
	cfgPath := flag.String("config", "m6502term.json", "path to config file")
	device := flag.String("port", "", "serial device path (overrides config)")
	baud := flag.Int("baud", 0, "baud rate (overrides config)")
	logLevel := flag.String("log-level", "", "log level (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *device != "" {
		cfg.PortName = *device
	}
	if *baud != 0 {
		cfg.BaudRate = *baud
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	logger := logging.New(cfg.Logging)

	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Fatalf("creating gui: %v", err)
	}
	defer g.Close()

	sink := newConsoleSink(g)

	svc, err := monitor.NewService(&cfg, sink, logger)
	if err != nil {
		g.Close()
		log.Fatalf("monitor: %v", err)
	}

	app := &app{gui: g, svc: svc, sink: sink, cfg: &cfg}

	g.Cursor = true
	g.SetManagerFunc(layout)

	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, app.quit); err != nil {
		log.Fatalf("keybinding: %v", err)
	}
	if err := g.SetKeybinding("input", gocui.KeyEnter, gocui.ModNone, app.submit); err != nil {
		log.Fatalf("keybinding: %v", err)
	}

	g.Update(func(g *gocui.Gui) error {
		sink.Append("6502 Terminal. Type 'help' for commands.")
		if _, err := g.SetCurrentView("input"); err != nil && err != gocui.ErrUnknownView {
			return err
		}
		return nil
	})

	err = g.MainLoop()
	if cerr := svc.Close(); cerr != nil {
		logger.Error("shutdown close failed", "error", cerr.Error())
	}
	if err != nil && err != gocui.ErrQuit {
		log.Fatalf("main loop: %v", err)
	}
}

// loadConfig reads the config file if present, otherwise starts from
// defaults and writes them out for the next run.
func loadConfig(path string) (config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := config.Default()
		if err := cfg.Save(path); err != nil {
			return config.Config{}, err
		}
		return cfg, nil
	}
	return config.Load(path)
}

// layout places the scrollback console above a one-line input view.
func layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView("console", 0, 0, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Console"
		v.Autoscroll = true
		v.Wrap = true
	}

	if v, err := g.SetView("input", 0, maxY-3, maxX-1, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Command"
		v.Editable = true
		if _, err := g.SetCurrentView("input"); err != nil {
			return err
		}
	}
	return nil
}

// consoleSink appends lines to the console view. Append is called from
// the poll goroutine, so updates are marshalled onto the UI loop.
type consoleSink struct {
	gui *gocui.Gui
}

func newConsoleSink(g *gocui.Gui) *consoleSink {
	return &consoleSink{gui: g}
}

func (cs *consoleSink) Append(line string) {
	cs.gui.Update(func(g *gocui.Gui) error {
		v, err := g.View("console")
		if err != nil {
			return nil
		}
		fmt.Fprintln(v, line)
		return nil
	})
}
