package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jroimartin/gocui"

	"github.com/m6502-lab/monitor"
	"github.com/m6502-lab/monitor/internal/config"
)

type app struct {
	gui  *gocui.Gui
	svc  *monitor.Service
	sink *consoleSink
	cfg  *config.Config
}

func (a *app) quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

// submit handles Enter on the input line.
func (a *app) submit(g *gocui.Gui, v *gocui.View) error {
	line := strings.TrimSpace(v.Buffer())
	v.Clear()
	if err := v.SetCursor(0, 0); err != nil {
		return err
	}
	if line == "" {
		return nil
	}
	return a.dispatch(line)
}

func (a *app) dispatch(line string) error {
	fields := strings.Fields(line)
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit":
		return gocui.ErrQuit

	case "help":
		a.printHelp()

	case "ports":
		a.listPorts()

	case "connect":
		a.connect(args)

	case "disconnect":
		if err := a.svc.Disconnect(); err != nil {
			a.sink.Append("Error: " + err.Error())
			return nil
		}
		a.sink.Append("Disconnected from serial port.")

	case "reset":
		a.send(monitor.Reset())
	case "halt":
		a.send(monitor.Halt())
	case "continue":
		a.send(monitor.Continue())
	case "step":
		a.send(monitor.Step())

	case "read":
		if len(args) != 1 {
			a.sink.Append("Usage: read <addr>")
			return nil
		}
		addr, err := monitor.ParseAddress(args[0])
		if err != nil {
			a.sink.Append("Error: " + err.Error())
			return nil
		}
		a.send(monitor.ReadMemory(addr))

	case "write":
		if len(args) != 2 {
			a.sink.Append("Usage: write <addr> <value>")
			return nil
		}
		addr, err := monitor.ParseAddress(args[0])
		if err != nil {
			a.sink.Append("Error: " + err.Error())
			return nil
		}
		val, err := monitor.ParseByte(args[1])
		if err != nil {
			a.sink.Append("Error: " + err.Error())
			return nil
		}
		a.send(monitor.WriteMemory(addr, val))

	case "break":
		if len(args) != 1 {
			a.sink.Append("Usage: break <addr>")
			return nil
		}
		addr, err := monitor.ParseAddress(args[0])
		if err != nil {
			a.sink.Append("Error: " + err.Error())
			return nil
		}
		a.send(monitor.SetBreakpoint(addr))

	case "load":
		if len(args) != 2 {
			a.sink.Append("Usage: load <addr> <file>")
			return nil
		}
		addr, err := monitor.ParseAddress(args[0])
		if err != nil {
			a.sink.Append("Error: " + err.Error())
			return nil
		}
		if err := a.svc.LoadImage(addr, args[1]); err != nil {
			a.sink.Append("Error: " + err.Error())
		}

	case "status":
		a.printStatus()

	default:
		a.sink.Append(fmt.Sprintf("Unknown command %q. Type 'help' for commands.", cmd))
	}
	return nil
}

func (a *app) connect(args []string) {
	port := ""
	baud := 0
	if len(args) >= 1 {
		port = args[0]
	}
	if len(args) >= 2 {
		b, err := strconv.Atoi(args[1])
		if err != nil {
			a.sink.Append("Error: invalid baud rate " + args[1])
			return
		}
		baud = b
	}

	if err := a.svc.Connect(port, baud); err != nil {
		a.sink.Append("Error: " + err.Error())
		return
	}
	if port == "" {
		port = a.cfg.PortName
	}
	if baud == 0 {
		baud = a.cfg.BaudRate
	}
	a.sink.Append(fmt.Sprintf("Connected to %s at %d baud.", port, baud))
}

func (a *app) send(cmd monitor.Command) {
	if err := a.svc.SendCommand(cmd); err != nil {
		a.sink.Append("Error: " + err.Error())
		return
	}
	a.sink.Append("Sent: " + cmd.String())
}

func (a *app) listPorts() {
	ports, err := monitor.AvailablePorts()
	if err != nil {
		a.sink.Append("Error: " + err.Error())
		return
	}
	if len(ports) == 0 {
		a.sink.Append("No serial ports detected.")
		return
	}
	a.sink.Append("Available ports: " + strings.Join(ports, ", "))
}

func (a *app) printStatus() {
	snap := a.svc.GetMetricsSnapshot()
	state := "disconnected"
	if snap.IsConnected {
		state = "connected"
	}
	a.sink.Append(fmt.Sprintf("Status: %s | sent %d cmds (%d B) | received %d lines (%d B) | read errors %d",
		state, snap.CommandsSent, snap.BytesWritten, snap.LinesReceived, snap.BytesRead, snap.ReadErrors))
}

func (a *app) printHelp() {
	for _, l := range []string{
		"Commands:",
		"  connect [port [baud]]   open the serial link",
		"  disconnect              close the serial link",
		"  ports                   list detected serial ports",
		"  reset | halt | continue | step",
		"  read <addr>             read one byte (hex address)",
		"  write <addr> <value>    write one byte (hex)",
		"  break <addr>            set a breakpoint",
		"  load <addr> <file>      upload a binary image",
		"  status                  show link statistics",
		"  quit                    exit",
	} {
		a.sink.Append(l)
	}
}
