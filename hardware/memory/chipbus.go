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

// ChipRead is an implementation of the bus.ChipBus interface. Chip access is
// never gated and never sees the boot ROM overlay.
func (mem *Memory) ChipRead(address uint16) uint8 {
	switch {
	case address <= addresses.MemtopCart:
		return mem.Cart.Read(address)
	case address <= addresses.MemtopVRAM:
		return mem.vram[address-addresses.OriginVRAM]
	case address <= addresses.MemtopCartRAM:
		return mem.Cart.ReadRAM(address - addresses.OriginCartRAM)
	case address <= addresses.MemtopWRAM:
		return mem.wram[address-addresses.OriginWRAM]
	case address <= addresses.MemtopEcho:
		return mem.wram[address-addresses.OriginEcho]
	case address <= addresses.MemtopOAM:
		return mem.oam[address-addresses.OriginOAM]
	case address <= addresses.MemtopUnused:
		return 0xff
	case address <= addresses.MemtopIO:
		return mem.io[address-addresses.OriginIO]
	case address <= addresses.MemtopHRAM:
		return mem.hram[address-addresses.OriginHRAM]
	}
	return mem.ie
}

// ChipWrite is an implementation of the bus.ChipBus interface. No side
// effects and no write masks; the chips are trusted to know what they are
// doing.
func (mem *Memory) ChipWrite(address uint16, data uint8) {
	switch {
	case address <= addresses.MemtopCart:
		// chips never operate the mapper

	case address <= addresses.MemtopVRAM:
		mem.vram[address-addresses.OriginVRAM] = data
	case address <= addresses.MemtopCartRAM:
		mem.Cart.WriteRAM(address-addresses.OriginCartRAM, data)
	case address <= addresses.MemtopWRAM:
		mem.wram[address-addresses.OriginWRAM] = data
	case address <= addresses.MemtopEcho:
		mem.wram[address-addresses.OriginEcho] = data
	case address <= addresses.MemtopOAM:
		mem.oam[address-addresses.OriginOAM] = data
	case address <= addresses.MemtopUnused:
		// no memory here
	case address <= addresses.MemtopIO:
		mem.io[address-addresses.OriginIO] = data
	case address <= addresses.MemtopHRAM:
		mem.hram[address-addresses.OriginHRAM] = data
	default:
		mem.ie = data
	}
}

// Peek is an implementation of the bus.DebugBus interface. Unlike ChipRead,
// Peek honours the boot ROM overlay so the debugger sees what the CPU would
// see, but without the access gating.
func (mem *Memory) Peek(address uint16) (uint8, error) {
	if mem.bootEnabled && address < 0x0100 {
		return mem.boot[address], nil
	}
	return mem.ChipRead(address), nil
}

// Poke is an implementation of the bus.DebugBus interface.
func (mem *Memory) Poke(address uint16, data uint8) error {
	mem.ChipWrite(address, data)
	return nil
}
