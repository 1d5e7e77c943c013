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

package cpu

import (
	"fmt"
	"strings"

	"dmgopher/hardware/cpu/instructions"
)

// Result records the outcome of an instruction execution. Used by the
// debugger to display what just happened.
type Result struct {
	Address     uint16
	Defn        instructions.Definition
	Operand     uint16
	Cycles      int
	BranchTaken bool
}

// the operand placeholders that can appear in a mnemonic.
var operandTokens = []string{"d16", "a16", "d8", "a8", "r8"}

func (r Result) String() string {
	mnemonic := r.Defn.Mnemonic

	for _, tok := range operandTokens {
		if strings.Contains(mnemonic, tok) {
			var v string
			if r.Defn.Bytes == 3 {
				v = fmt.Sprintf("$%04x", r.Operand)
			} else {
				v = fmt.Sprintf("$%02x", uint8(r.Operand))
			}
			mnemonic = strings.Replace(mnemonic, tok, v, 1)
			break
		}
	}

	return fmt.Sprintf("$%04x %s", r.Address, mnemonic)
}
