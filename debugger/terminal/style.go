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

package terminal

// Style is used to identify the category of text being sent to the
// Terminal.TermPrintLine() function. The terminal implementation can use
// this to present the output in different ways.
type Style int

// list of valid styles.
const (
	// input from the user being echoed back. terminals that handle echo
	// themselves can ignore lines of this style
	StyleEcho Style = iota

	// information from the debugger about the emulation
	StyleFeedback

	// disassembly of the instruction just executed
	StyleInstruction

	// the state of the CPU registers
	StyleRegisters

	// help text
	StyleHelp

	// an error from the debugger or the emulation
	StyleError
)
