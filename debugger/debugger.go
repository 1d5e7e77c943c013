// This file is part of DMGopher.
//
// DMGopher is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// DMGopher is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with DMGopher.  If not, see <https://www.gnu.org/licenses/>.

// Package debugger is a terminal driven debugger for the emulated machine.
// The emulated screen is shown in a window alongside, and the joypad keys
// work as they do in play mode.
package debugger

import (
	"fmt"
	"os"
	"os/signal"

	"dmgopher/cartridgeloader"
	"dmgopher/curated"
	"dmgopher/debugger/terminal"
	"dmgopher/gui"
	"dmgopher/gui/sdlplay"
	"dmgopher/hardware"
	"dmgopher/playmode"
)

// sentinel errors for the debugger package.
const (
	DebuggerError = "debugger: %v"
)

// Debugger is the top level container for the debugging emulation.
type Debugger struct {
	dmg *hardware.DMG
	scr gui.GUI

	term   terminal.Terminal
	events *terminal.ReadEvents

	breakpoints map[uint16]bool

	// cleared by QUIT and by a window close event
	running bool

	// set by the signal handler during a RUN or STEP; checked at
	// instruction boundaries
	halt bool
}

// NewDebugger creates a machine, a window for its screen and everything
// else the debugger needs except a terminal, which is attached on Start().
func NewDebugger(scale float32, skipBoot bool) (*Debugger, error) {
	dbg := &Debugger{
		breakpoints: make(map[uint16]bool),
	}

	var err error

	dbg.dmg, err = hardware.NewDMG()
	if err != nil {
		return nil, curated.Errorf(DebuggerError, err)
	}

	if skipBoot {
		dbg.dmg.Mem.DetachBootROM()
	}

	dbg.scr, err = sdlplay.NewSdlPlay(dbg.dmg, scale)
	if err != nil {
		return nil, curated.Errorf(DebuggerError, err)
	}

	// the screen never caps the frame rate in debug mode. the debugger
	// steps the machine, not the other way around
	if err := dbg.scr.SetFeature(gui.ReqSetFpsCap, false); err != nil {
		return nil, curated.Errorf(DebuggerError, err)
	}

	return dbg, nil
}

// Start the main debugger sequence.
func (dbg *Debugger) Start(term terminal.Terminal, cartload cartridgeloader.Loader) error {
	dbg.term = term

	if err := dbg.term.Initialise(); err != nil {
		return curated.Errorf(DebuggerError, err)
	}
	defer dbg.term.CleanUp()

	if err := dbg.dmg.AttachCartridge(cartload); err != nil {
		return curated.Errorf(DebuggerError, err)
	}
	defer dbg.dmg.End()

	guiEvents := make(chan gui.Event, 64)
	if err := dbg.scr.SetFeature(gui.ReqSetEventChan, guiEvents); err != nil {
		return curated.Errorf(DebuggerError, err)
	}
	if err := dbg.scr.SetFeature(gui.ReqSetVisibility, true); err != nil {
		return curated.Errorf(DebuggerError, err)
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	dbg.events = &terminal.ReadEvents{
		Signal: intChan,
		SignalHandler: func(_ os.Signal) error {
			return curated.Errorf(terminal.UserInterrupt)
		},
		GuiEvents:       guiEvents,
		GuiEventHandler: dbg.guiEventHandler,
	}

	dbg.running = true
	return dbg.inputLoop()
}

// guiEventHandler is called for gui events received while the emulation is
// running or while the terminal is waiting for input.
func (dbg *Debugger) guiEventHandler(ev gui.Event) error {
	switch ev.ID {
	case gui.EventWindowClose:
		dbg.running = false
		dbg.halt = true

	case gui.EventKeyboard:
		err := playmode.KeyboardEventHandler(ev.Data.(gui.EventDataKeyboard), dbg.dmg)
		if err != nil {
			if curated.Is(err, playmode.UserQuit) {
				dbg.halt = true
				return nil
			}
			return err
		}
	}

	return nil
}

// inputLoop is the heart of the debugger. one command at a time.
func (dbg *Debugger) inputLoop() error {
	for dbg.running {
		prompt := terminal.Prompt{
			Content: fmt.Sprintf("$%04x", dbg.dmg.CPU.Reg.PC),
		}

		input, err := dbg.term.TermRead(prompt, dbg.events)
		if err != nil {
			if curated.Is(err, terminal.UserInterrupt) {
				dbg.term.TermPrintLine(terminal.StyleFeedback, "use QUIT to leave the debugger")
				continue
			}
			return err
		}

		if err := dbg.parseCommand(input); err != nil {
			dbg.term.TermPrintLine(terminal.StyleError, err.Error())
		}
	}

	return nil
}

// step the machine by one instruction, printing the disassembly of the
// instruction just executed.
func (dbg *Debugger) step() error {
	frame := dbg.dmg.Video.Frame()

	if _, err := dbg.dmg.Step(); err != nil {
		return err
	}

	if dbg.dmg.Video.Frame() != frame {
		dbg.scr.Service()
		dbg.serviceGuiEvents()
	}

	dbg.term.TermPrintLine(terminal.StyleInstruction, dbg.dmg.CPU.LastResult.String())
	return nil
}

// run the machine until a breakpoint, a halting event or an error.
func (dbg *Debugger) run() error {
	dbg.halt = false

	frame := dbg.dmg.Video.Frame()

	for !dbg.halt {
		if _, err := dbg.dmg.Step(); err != nil {
			return err
		}

		if dbg.breakpoints[dbg.dmg.CPU.Reg.PC] {
			dbg.term.TermPrintLine(terminal.StyleFeedback,
				fmt.Sprintf("break at $%04x", dbg.dmg.CPU.Reg.PC))
			break
		}

		// service the gui and check for halting events once per frame
		if f := dbg.dmg.Video.Frame(); f != frame {
			frame = f
			dbg.scr.Service()
			if err := dbg.serviceGuiEvents(); err != nil {
				return err
			}

			select {
			case <-dbg.events.Signal:
				dbg.halt = true
			default:
			}

			// a keypress on the terminal also halts the running machine
			if dbg.term.TermReadCheck() {
				dbg.halt = true
			}
		}
	}

	return nil
}

func (dbg *Debugger) serviceGuiEvents() error {
	for {
		select {
		case ev := <-dbg.events.GuiEvents:
			if err := dbg.guiEventHandler(ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}
