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

// Package plainterm implements the Terminal interface for the debugger.
// It's as simple as simple can be and offers no special features.
package plainterm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"dmgopher/debugger/terminal"
)

// PlainTerminal is the default, most basic terminal interface. It keeps the
// terminal in whatever mode it started, probably cooked mode. As such, it
// offers only rudimentary editing facility and little control over output.
type PlainTerminal struct {
	input    *bufio.Reader
	output   io.Writer
	silenced bool
}

// Initialise performs any setting up required for the terminal.
func (pt *PlainTerminal) Initialise() error {
	pt.input = bufio.NewReader(os.Stdin)
	pt.output = os.Stdout
	return nil
}

// CleanUp performs any cleaning up required for the terminal.
func (pt *PlainTerminal) CleanUp() {
}

// Silence implements the terminal.Terminal interface.
func (pt *PlainTerminal) Silence(silenced bool) {
	pt.silenced = silenced
}

// TermPrintLine implements the terminal.Output interface.
func (pt *PlainTerminal) TermPrintLine(style terminal.Style, s string) {
	if pt.silenced && style != terminal.StyleError {
		return
	}

	// we don't need to echo user input for this type of terminal
	if style == terminal.StyleEcho {
		return
	}

	if style == terminal.StyleError {
		s = fmt.Sprintf("* %s", s)
	}

	fmt.Fprintln(pt.output, s)
}

// TermRead implements the terminal.Input interface.
func (pt *PlainTerminal) TermRead(prompt terminal.Prompt, events *terminal.ReadEvents) (string, error) {
	if pt.silenced {
		return "", nil
	}

	fmt.Fprint(pt.output, prompt.String())

	s, err := pt.input.ReadString('\n')
	if err != nil {
		return "", err
	}

	// while we were waiting for the call to Read() to return we may have
	// received an interrupt signal. if we have then hand it to the signal
	// handler rather than processing the input
	select {
	case sig := <-events.Signal:
		return "", events.SignalHandler(sig)
	default:
	}

	return strings.TrimRight(s, "\r\n"), nil
}

// TermReadCheck implements the terminal.Input interface.
func (pt *PlainTerminal) TermReadCheck() bool {
	return false
}

// IsInteractive implements the terminal.Input interface.
func (pt *PlainTerminal) IsInteractive() bool {
	return true
}
