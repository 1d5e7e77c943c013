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

// Package addresses records the memory map of the machine: the boundaries of
// each memory area and the canonical names of the hardware registers.
package addresses

// the boundaries of the memory map. each value is the first address of the
// named area.
const (
	OriginCart    = uint16(0x0000)
	MemtopCart    = uint16(0x7fff)
	OriginVRAM    = uint16(0x8000)
	MemtopVRAM    = uint16(0x9fff)
	OriginCartRAM = uint16(0xa000)
	MemtopCartRAM = uint16(0xbfff)
	OriginWRAM    = uint16(0xc000)
	MemtopWRAM    = uint16(0xdfff)
	OriginEcho    = uint16(0xe000)
	MemtopEcho    = uint16(0xfdff)
	OriginOAM     = uint16(0xfe00)
	MemtopOAM     = uint16(0xfe9f)
	OriginUnused  = uint16(0xfea0)
	MemtopUnused  = uint16(0xfeff)
	OriginIO      = uint16(0xff00)
	MemtopIO      = uint16(0xff7f)
	OriginHRAM    = uint16(0xff80)
	MemtopHRAM    = uint16(0xfffe)
)

// the hardware registers. those in the 0xff00 page are stored in the I/O
// block of the address space; IE sits on its own at the top of memory.
const (
	JOYP = uint16(0xff00)
	SB   = uint16(0xff01)
	SC   = uint16(0xff02)
	DIV  = uint16(0xff04)
	TIMA = uint16(0xff05)
	TMA  = uint16(0xff06)
	TAC  = uint16(0xff07)
	IF   = uint16(0xff0f)

	NR10 = uint16(0xff10)
	NR11 = uint16(0xff11)
	NR12 = uint16(0xff12)
	NR13 = uint16(0xff13)
	NR14 = uint16(0xff14)
	NR21 = uint16(0xff16)
	NR22 = uint16(0xff17)
	NR23 = uint16(0xff18)
	NR24 = uint16(0xff19)
	NR30 = uint16(0xff1a)
	NR31 = uint16(0xff1b)
	NR32 = uint16(0xff1c)
	NR33 = uint16(0xff1d)
	NR34 = uint16(0xff1e)
	NR41 = uint16(0xff20)
	NR42 = uint16(0xff21)
	NR43 = uint16(0xff22)
	NR44 = uint16(0xff23)
	NR50 = uint16(0xff24)
	NR51 = uint16(0xff25)
	NR52 = uint16(0xff26)

	// wave pattern RAM
	OriginWaveRAM = uint16(0xff30)
	MemtopWaveRAM = uint16(0xff3f)

	LCDC = uint16(0xff40)
	STAT = uint16(0xff41)
	SCY  = uint16(0xff42)
	SCX  = uint16(0xff43)
	LY   = uint16(0xff44)
	LYC  = uint16(0xff45)
	DMA  = uint16(0xff46)
	BGP  = uint16(0xff47)
	OBP0 = uint16(0xff48)
	OBP1 = uint16(0xff49)
	WY   = uint16(0xff4a)
	WX   = uint16(0xff4b)

	// writing any value to BOOT unmaps the boot ROM overlay
	BOOT = uint16(0xff50)

	IE = uint16(0xffff)
)

// CanonicalSymbols lists the hardware registers along with the canonical
// names for those addresses. We don't use this structure in the emulation
// because the map introduces an overhead that we'd like to avoid. It is
// useful for debugging output.
var CanonicalSymbols = map[uint16]string{
	JOYP: "JOYP",
	SB:   "SB",
	SC:   "SC",
	DIV:  "DIV",
	TIMA: "TIMA",
	TMA:  "TMA",
	TAC:  "TAC",
	IF:   "IF",
	NR10: "NR10",
	NR11: "NR11",
	NR12: "NR12",
	NR13: "NR13",
	NR14: "NR14",
	NR21: "NR21",
	NR22: "NR22",
	NR23: "NR23",
	NR24: "NR24",
	NR30: "NR30",
	NR31: "NR31",
	NR32: "NR32",
	NR33: "NR33",
	NR34: "NR34",
	NR41: "NR41",
	NR42: "NR42",
	NR43: "NR43",
	NR44: "NR44",
	NR50: "NR50",
	NR51: "NR51",
	NR52: "NR52",
	LCDC: "LCDC",
	STAT: "STAT",
	SCY:  "SCY",
	SCX:  "SCX",
	LY:   "LY",
	LYC:  "LYC",
	DMA:  "DMA",
	BGP:  "BGP",
	OBP0: "OBP0",
	OBP1: "OBP1",
	WY:   "WY",
	WX:   "WX",
	BOOT: "BOOT",
	IE:   "IE",
}

// the interrupt vectors, indexed by interrupt source (VBlank=0, STAT=1,
// Timer=2, Serial=3, Joypad=4).
var InterruptVectors = [5]uint16{0x0040, 0x0048, 0x0050, 0x0058, 0x0060}
