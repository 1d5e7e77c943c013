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

package colorterm

import (
	"dmgopher/debugger/terminal"
)

// TermPrintLine implements the terminal.Output interface.
func (ct *ColorTerminal) TermPrintLine(style terminal.Style, s string) {
	if ct.silenced && style != terminal.StyleError {
		return
	}

	// the echo style is handled by the line editor in TermRead()
	if style == terminal.StyleEcho {
		return
	}

	ct.Print("\r")

	switch style {
	case terminal.StyleInstruction:
		ct.Print(pens["yellow"])
	case terminal.StyleRegisters:
		ct.Print(pens["cyan"])
	case terminal.StyleFeedback:
		ct.Print(dimPens["white"])
	case terminal.StyleHelp:
		ct.Print(dimPens["white"])
		ct.Print("  ")
	case terminal.StyleError:
		ct.Print(pens["red"])
		ct.Print("* ")
	}

	ct.Print(s)
	ct.Print(ansiOff)
	ct.Print("\n")
}
