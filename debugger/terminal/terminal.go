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

// Package terminal defines the operations required for command-line
// interaction with the debugger.
//
// For flexibility, terminal interaction happens through the Terminal
// interface. There are two reference implementations of this interface: the
// PlainTerminal and the ColorTerminal, found respectively in the plainterm
// and colorterm sub-packages.
package terminal

import (
	"os"

	"dmgopher/gui"
)

// sentinel errors. returned by TermRead() if caught whilst waiting for
// input.
const (
	UserInterrupt = "user interrupt"
	UserAbort     = "user abort"
)

// Prompt specifies the prompt text shown when the terminal asks for input.
type Prompt struct {
	Content string
}

// String returns the prompt with "standard" decoration. Good for terminals
// with no graphical capabilities at all.
func (p Prompt) String() string {
	return "[ " + p.Content + " ] >> "
}

// ReadEvents *must* be monitored during a TermRead().
type ReadEvents struct {
	// interrupt signals from the operating system
	Signal        chan os.Signal
	SignalHandler func(os.Signal) error

	// events from the gui, if one is attached
	GuiEvents       chan gui.Event
	GuiEventHandler func(gui.Event) error
}

// Input defines the operations required by an interface that allows input.
type Input interface {
	// TermRead returns the next line of input, without the line terminator.
	//
	// If possible the TermRead() implementation should regularly check the
	// ReadEvents channels for activity. Not all implementations will be
	// able to do so because of the context in which they operate.
	TermRead(prompt Prompt, events *ReadEvents) (string, error)

	// TermReadCheck returns true if there is input to be read. Not all
	// implementations will be able to return anything meaningful, in which
	// case a return value of false is fine.
	TermReadCheck() bool

	// IsInteractive should return true for implementations that expect user
	// interaction.
	IsInteractive() bool
}

// Output defines the operations required by an interface that allows
// output.
type Output interface {
	TermPrintLine(Style, string)
}

// Terminal defines the operations required by the debugger's command line
// interface.
type Terminal interface {
	Input
	Output

	// Initialise the terminal. not all terminal implementations will need
	// to do anything.
	Initialise() error

	// Restore the terminal to its original state, if possible.
	CleanUp()

	// Silence all input and output except error messages.
	Silence(silenced bool)
}
