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

package memory

import (
	"dmgopher/hardware/memory/addresses"
)

// postBootRegisters are the register values the boot ROM leaves behind.
// Used by Initialise() when no boot ROM image is attached. Registers not
// listed start at zero.
var postBootRegisters = map[uint16]uint8{
	addresses.TIMA: 0x00,
	addresses.TMA:  0x00,
	addresses.TAC:  0x00,
	addresses.NR10: 0x80,
	addresses.NR11: 0xbf,
	addresses.NR12: 0xf3,
	addresses.NR14: 0xbf,
	addresses.NR21: 0x3f,
	addresses.NR22: 0x00,
	addresses.NR24: 0xbf,
	addresses.NR30: 0x7f,
	addresses.NR31: 0xff,
	addresses.NR32: 0x9f,
	addresses.NR34: 0xbf,
	addresses.NR41: 0xff,
	addresses.NR42: 0x00,
	addresses.NR43: 0x00,
	addresses.NR44: 0xbf,
	addresses.NR50: 0x77,
	addresses.NR51: 0xf3,
	addresses.NR52: 0xf1,
	addresses.LCDC: 0x91,
	addresses.SCY:  0x00,
	addresses.SCX:  0x00,
	addresses.LYC:  0x00,
	addresses.BGP:  0xfc,
	addresses.OBP0: 0xff,
	addresses.OBP1: 0xff,
	addresses.WY:   0x00,
	addresses.WX:   0x00,
}
