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
	"unicode"

	"dmgopher/curated"
	"dmgopher/debugger/terminal"
	"dmgopher/debugger/terminal/colorterm/easyterm"
)

// TermRead implements the terminal.Input interface.
func (ct *ColorTerminal) TermRead(prompt terminal.Prompt, events *terminal.ReadEvents) (string, error) {
	if ct.silenced {
		return "", nil
	}

	ct.RawMode()
	defer ct.CanonicalMode()

	input := make([]byte, 255)
	n := 0
	cursor := 0
	history := len(ct.commandHistory)

	// buffInput stores the latest input when we scroll through history. we
	// don't want to lose what's been typed if the user wants to resume
	// where they left off
	buffInput := make([]byte, cap(input))
	buffN := 0

	// the method for cursor placement is as follows: for each iteration of
	// the loop, store the current cursor position, clear the line, output
	// the prompt and the input buffer, then restore the cursor
	ct.Print("\r%s", cursorMove(len(prompt.String())))

	for {
		ct.Print(cursorStore)
		ct.Print("%s%s%s%s", ansiClearLine, ansiBold, "\r"+prompt.String(), ansiOff)
		ct.Print(string(input[:n]))
		ct.Print(cursorRestore)

		r, _, err := ct.reader.ReadRune()
		if err != nil {
			return "", err
		}

		// while blocked in ReadRune() we may have received events that need
		// servicing
		select {
		case sig := <-events.Signal:
			if err := events.SignalHandler(sig); err != nil {
				ct.Print("\n")
				return "", err
			}
		case ev := <-events.GuiEvents:
			if err := events.GuiEventHandler(ev); err != nil {
				ct.Print("\n")
				return "", err
			}
		default:
		}

		switch r {
		case easyterm.KeyInterrupt:
			ct.Print("\n")
			return "", curated.Errorf(terminal.UserInterrupt)

		case easyterm.KeyCarriageReturn:
			// check to see if input is the same as the last history entry.
			// don't clutter the history with repeats
			newEntry := n > 0
			if newEntry && len(ct.commandHistory) > 0 {
				last := ct.commandHistory[len(ct.commandHistory)-1].input
				if len(last) == n && string(last) == string(input[:n]) {
					newEntry = false
				}
			}

			if newEntry {
				nh := make([]byte, n)
				copy(nh, input[:n])
				ct.commandHistory = append(ct.commandHistory, command{input: nh})
			}

			ct.Print("\n")
			return string(input[:n]), nil

		case easyterm.KeyEsc:
			r, _, err := ct.reader.ReadRune()
			if err != nil {
				return "", err
			}
			if r != easyterm.EscCursor {
				continue
			}

			r, _, err = ct.reader.ReadRune()
			if err != nil {
				return "", err
			}

			switch r {
			case easyterm.CursorUp:
				// move up through command history
				if len(ct.commandHistory) > 0 {
					// store the current input for possible later editing
					if history == len(ct.commandHistory) {
						copy(buffInput, input[:n])
						buffN = n
					}

					if history > 0 {
						history--
						copy(input, ct.commandHistory[history].input)
						n = len(ct.commandHistory[history].input)
						ct.Print(cursorMove(n - cursor))
						cursor = n
					}
				}

			case easyterm.CursorDown:
				// move down through command history
				if len(ct.commandHistory) > 0 {
					if history < len(ct.commandHistory)-1 {
						history++
						copy(input, ct.commandHistory[history].input)
						n = len(ct.commandHistory[history].input)
						ct.Print(cursorMove(n - cursor))
						cursor = n
					} else if history == len(ct.commandHistory)-1 {
						history++
						copy(input, buffInput)
						n = buffN
						ct.Print(cursorMove(n - cursor))
						cursor = n
					}
				}

			case easyterm.CursorForward:
				if cursor < n {
					ct.Print(cursorForwardOne)
					cursor++
				}

			case easyterm.CursorBackward:
				if cursor > 0 {
					ct.Print(cursorBackwardOne)
					cursor--
				}

			case easyterm.EscDelete:
				if cursor < n {
					copy(input[cursor:], input[cursor+1:])
					n--
					history = len(ct.commandHistory)
				}
			}

		case easyterm.KeyBackspace:
			if cursor > 0 {
				copy(input[cursor-1:], input[cursor:])
				ct.Print(cursorBackwardOne)
				cursor--
				n--
				history = len(ct.commandHistory)
			}

		default:
			if unicode.IsPrint(r) && r < 128 && n < len(input) {
				ct.Print("%c", r)
				copy(input[cursor+1:], input[cursor:])
				input[cursor] = byte(r)
				cursor++
				n++
				history = len(ct.commandHistory)
			}
		}
	}
}
