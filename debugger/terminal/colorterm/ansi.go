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

import "fmt"

// the ANSI sequences used by the colour terminal. only the simplest, most
// widely supported sequences are used.
const (
	ansiOff       = "\033[0m"
	ansiBold      = "\033[1m"
	ansiClearLine = "\033[2K"

	cursorStore       = "\033[s"
	cursorRestore     = "\033[u"
	cursorForwardOne  = "\033[C"
	cursorBackwardOne = "\033[D"
)

// the pens used for the different output styles.
var pens = map[string]string{
	"red":     "\033[91m",
	"green":   "\033[92m",
	"yellow":  "\033[93m",
	"blue":    "\033[94m",
	"magenta": "\033[95m",
	"cyan":    "\033[96m",
	"white":   "\033[97m",
}

// the dim variations of the same pens.
var dimPens = map[string]string{
	"red":     "\033[31m",
	"green":   "\033[32m",
	"yellow":  "\033[33m",
	"blue":    "\033[34m",
	"magenta": "\033[35m",
	"cyan":    "\033[36m",
	"white":   "\033[37m",
}

// cursorMove returns the sequence moving the cursor n characters, forwards
// for positive n and backwards for negative n.
func cursorMove(n int) string {
	if n < 0 {
		return fmt.Sprintf("\033[%dD", -n)
	} else if n > 0 {
		return fmt.Sprintf("\033[%dC", n)
	}
	return ""
}
