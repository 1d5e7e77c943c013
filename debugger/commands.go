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

package debugger

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"dmgopher/curated"
	"dmgopher/debugger/terminal"
	"dmgopher/hardware/memory/addresses"

	"github.com/bradleyjkemp/memviz"
)

// the list of commands and their help text.
var commandHelp = map[string]string{
	"BREAK":     "BREAK [address] - toggle a breakpoint at address",
	"CLEAR":     "CLEAR - remove all breakpoints",
	"FRAME":     "FRAME [n] - run the emulation for n frames (default 1)",
	"HELP":      "HELP - this",
	"LIST":      "LIST - list current breakpoints",
	"MEMVIZ":    "MEMVIZ [file] - dump a graphviz visualisation of the machine state",
	"PEEK":      "PEEK <address> [address...] - show the contents of memory addresses",
	"POKE":      "POKE <address> <value> - write a value directly to memory",
	"QUIT":      "QUIT - leave the debugger",
	"REGISTERS": "REGISTERS - show the state of the CPU and chips",
	"RESET":     "RESET - reset the machine to its power-on state",
	"RUN":       "RUN - run the emulation until a breakpoint or an interrupt",
	"STEP":      "STEP [n] - execute n instructions (default 1)",
}

func (dbg *Debugger) parseCommand(input string) error {
	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		// an empty line steps the machine. the most common operation
		// deserves the shortest input
		return dbg.step()
	}

	command := strings.ToUpper(tokens[0])
	args := tokens[1:]

	switch command {
	case "HELP":
		keys := make([]string, 0, len(commandHelp))
		for k := range commandHelp {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			dbg.term.TermPrintLine(terminal.StyleHelp, commandHelp[k])
		}

	case "QUIT":
		dbg.running = false

	case "RESET":
		if err := dbg.dmg.Reset(); err != nil {
			return err
		}
		dbg.term.TermPrintLine(terminal.StyleFeedback, "machine reset")

	case "STEP":
		n := 1
		if len(args) > 0 {
			var err error
			n, err = strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return curated.Errorf(DebuggerError, fmt.Errorf("not a step count (%s)", args[0]))
			}
		}
		for i := 0; i < n; i++ {
			if err := dbg.step(); err != nil {
				return err
			}
		}

	case "FRAME":
		n := 1
		if len(args) > 0 {
			var err error
			n, err = strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return curated.Errorf(DebuggerError, fmt.Errorf("not a frame count (%s)", args[0]))
			}
		}
		err := dbg.dmg.RunForFrameCount(n, func(_ int) (bool, error) {
			dbg.scr.Service()
			return true, dbg.serviceGuiEvents()
		})
		if err != nil {
			return err
		}
		dbg.printMachineState()

	case "RUN":
		if err := dbg.run(); err != nil {
			return err
		}
		dbg.printMachineState()

	case "REGISTERS":
		dbg.printMachineState()

	case "PEEK":
		if len(args) == 0 {
			return curated.Errorf(DebuggerError, fmt.Errorf("PEEK requires at least one address"))
		}
		for _, a := range args {
			addr, err := dbg.parseAddress(a)
			if err != nil {
				return err
			}
			v, err := dbg.dmg.Mem.Peek(addr)
			if err != nil {
				return err
			}
			if sym, ok := addresses.CanonicalSymbols[addr]; ok {
				dbg.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("$%04x (%s) -> %#02x", addr, sym, v))
			} else {
				dbg.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("$%04x -> %#02x", addr, v))
			}
		}

	case "POKE":
		if len(args) != 2 {
			return curated.Errorf(DebuggerError, fmt.Errorf("POKE requires an address and a value"))
		}
		addr, err := dbg.parseAddress(args[0])
		if err != nil {
			return err
		}
		v, err := strconv.ParseUint(strings.TrimPrefix(args[1], "$"), 0, 8)
		if err != nil {
			return curated.Errorf(DebuggerError, fmt.Errorf("not a value (%s)", args[1]))
		}
		if err := dbg.dmg.Mem.Poke(addr, uint8(v)); err != nil {
			return err
		}

	case "BREAK":
		if len(args) != 1 {
			return curated.Errorf(DebuggerError, fmt.Errorf("BREAK requires an address"))
		}
		addr, err := dbg.parseAddress(args[0])
		if err != nil {
			return err
		}
		if dbg.breakpoints[addr] {
			delete(dbg.breakpoints, addr)
			dbg.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("breakpoint removed at $%04x", addr))
		} else {
			dbg.breakpoints[addr] = true
			dbg.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("breakpoint added at $%04x", addr))
		}

	case "LIST":
		if len(dbg.breakpoints) == 0 {
			dbg.term.TermPrintLine(terminal.StyleFeedback, "no breakpoints")
			break
		}
		bps := make([]int, 0, len(dbg.breakpoints))
		for addr := range dbg.breakpoints {
			bps = append(bps, int(addr))
		}
		sort.Ints(bps)
		for _, addr := range bps {
			dbg.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("breakpoint at $%04x", addr))
		}

	case "CLEAR":
		dbg.breakpoints = make(map[uint16]bool)
		dbg.term.TermPrintLine(terminal.StyleFeedback, "breakpoints cleared")

	case "MEMVIZ":
		fn := "memviz.dot"
		if len(args) > 0 {
			fn = args[0]
		}
		if err := dbg.memviz(fn); err != nil {
			return err
		}
		dbg.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("machine state written to %s", fn))

	default:
		return curated.Errorf(DebuggerError, fmt.Errorf("unrecognised command (%s)", command))
	}

	return nil
}

func (dbg *Debugger) printMachineState() {
	dbg.term.TermPrintLine(terminal.StyleRegisters, dbg.dmg.CPU.String())
	dbg.term.TermPrintLine(terminal.StyleRegisters, dbg.dmg.Video.String())
	dbg.term.TermPrintLine(terminal.StyleRegisters, dbg.dmg.Timer.String())
	dbg.term.TermPrintLine(terminal.StyleRegisters, dbg.dmg.Joypad.String())
}

// parseAddress converts a numeric string, or the canonical name of a
// hardware register, into an address. Numbers can be decimal or hex, the
// latter with either a $ or 0x prefix.
func (dbg *Debugger) parseAddress(s string) (uint16, error) {
	if strings.HasPrefix(s, "$") {
		s = "0x" + s[1:]
	}

	if v, err := strconv.ParseUint(s, 0, 16); err == nil {
		return uint16(v), nil
	}

	sym := strings.ToUpper(s)
	for addr, name := range addresses.CanonicalSymbols {
		if name == sym {
			return addr, nil
		}
	}

	return 0, curated.Errorf(DebuggerError, fmt.Errorf("not an address (%s)", s))
}

// memviz dumps a graphviz visualisation of the live machine to file.
func (dbg *Debugger) memviz(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(DebuggerError, err)
	}
	defer f.Close()

	memviz.Map(f, dbg.dmg)
	return nil
}
