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

// Package memory implements the address space of the machine. The hardware
// registers are stored in the I/O block and are addressable like any other
// memory; what distinguishes them is who is doing the addressing. Access
// from the CPU goes through the CPUBus, which applies the access
// restrictions of the machine and the write side effects of the individual
// registers. The chips access the same bytes through the ChipBus, which is
// never gated and never triggers side effects. Debuggers use the DebugBus,
// which bypasses gating without being mistaken for chip activity.
package memory

import (
	"dmgopher/curated"
	"dmgopher/hardware/memory/addresses"
	"dmgopher/hardware/memory/bus"
	"dmgopher/hardware/memory/cartridge"
	"dmgopher/logger"
)

// sentinel errors for the memory package.
const (
	BootROMError = "memory: %v"
)

// Memory is the monolithic address space of the machine.
type Memory struct {
	Cart *cartridge.Cartridge

	vram [0x2000]uint8
	wram [0x2000]uint8
	oam  [0xa0]uint8
	io   [0x80]uint8
	hram [0x7f]uint8
	ie   uint8

	// the boot ROM overlays the bottom of the cartridge window until the
	// BOOT register is written
	boot        []uint8
	bootEnabled bool

	// chips that want to see CPU writes to their registers as they happen.
	// attached by the hardware container
	Timer  bus.RegisterWriteHandler
	Audio  bus.RegisterWriteHandler
	Joypad bus.RegisterWriteHandler
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory(cart *cartridge.Cartridge) *Memory {
	mem := &Memory{Cart: cart}
	mem.Initialise()
	return mem
}

// AttachBootROM attaches a 256 byte boot ROM image. The image takes effect
// on the next call to Initialise().
func (mem *Memory) AttachBootROM(data []byte) error {
	if len(data) != 0x100 {
		return curated.Errorf(BootROMError, "boot ROM image must be exactly 256 bytes")
	}
	mem.boot = make([]uint8, 0x100)
	copy(mem.boot, data)
	return nil
}

// HasBootROM returns true if a boot ROM image has been attached.
func (mem *Memory) HasBootROM() bool {
	return mem.boot != nil
}

// DetachBootROM discards any attached boot ROM image. The next call to
// Initialise() will start the machine from the post-boot state.
func (mem *Memory) DetachBootROM() {
	mem.boot = nil
	mem.bootEnabled = false
}

// Initialise the memory to its state at power-on. If a boot ROM is attached
// it is mapped in and every register starts at zero; otherwise the registers
// take the values the boot ROM would have left behind.
func (mem *Memory) Initialise() {
	for i := range mem.vram {
		mem.vram[i] = 0x00
	}
	for i := range mem.wram {
		mem.wram[i] = 0x00
	}
	for i := range mem.oam {
		mem.oam[i] = 0x00
	}
	for i := range mem.io {
		mem.io[i] = 0x00
	}
	for i := range mem.hram {
		mem.hram[i] = 0x00
	}
	mem.ie = 0x00

	if mem.boot != nil {
		mem.bootEnabled = true
		return
	}

	mem.bootEnabled = false
	for addr, v := range postBootRegisters {
		mem.io[addr-addresses.OriginIO] = v
	}
}

// the current video mode, read from the STAT register. used to decide
// whether CPU access to VRAM and OAM is allowed.
func (mem *Memory) videoMode() uint8 {
	return mem.io[addresses.STAT-addresses.OriginIO] & 0x03
}

func (mem *Memory) lcdEnabled() bool {
	return mem.io[addresses.LCDC-addresses.OriginIO]&0x80 == 0x80
}

func (mem *Memory) vramLocked() bool {
	return mem.lcdEnabled() && mem.videoMode() == 0x03
}

func (mem *Memory) oamLocked() bool {
	return mem.lcdEnabled() && mem.videoMode() >= 0x02
}

// Read is an implementation of the bus.CPUBus interface.
func (mem *Memory) Read(address uint16) (uint8, error) {
	switch {
	case address <= addresses.MemtopCart:
		if mem.bootEnabled && address < 0x0100 {
			return mem.boot[address], nil
		}
		return mem.Cart.Read(address), nil

	case address <= addresses.MemtopVRAM:
		if mem.vramLocked() {
			return 0xff, nil
		}
		return mem.vram[address-addresses.OriginVRAM], nil

	case address <= addresses.MemtopCartRAM:
		return mem.Cart.ReadRAM(address - addresses.OriginCartRAM), nil

	case address <= addresses.MemtopWRAM:
		return mem.wram[address-addresses.OriginWRAM], nil

	case address <= addresses.MemtopEcho:
		return mem.wram[address-addresses.OriginEcho], nil

	case address <= addresses.MemtopOAM:
		if mem.oamLocked() {
			return 0xff, nil
		}
		return mem.oam[address-addresses.OriginOAM], nil

	case address <= addresses.MemtopUnused:
		return 0xff, nil

	case address <= addresses.MemtopIO:
		// the unused upper bits of IF are fixed high
		if address == addresses.IF {
			return 0xe0 | mem.io[address-addresses.OriginIO], nil
		}
		return mem.io[address-addresses.OriginIO], nil

	case address <= addresses.MemtopHRAM:
		return mem.hram[address-addresses.OriginHRAM], nil
	}

	return mem.ie, nil
}

// Write is an implementation of the bus.CPUBus interface.
func (mem *Memory) Write(address uint16, data uint8) error {
	switch {
	case address <= addresses.MemtopCart:
		// writes to the ROM window operate the mapper registers
		mem.Cart.Write(address, data)

	case address <= addresses.MemtopVRAM:
		if !mem.vramLocked() {
			mem.vram[address-addresses.OriginVRAM] = data
		}

	case address <= addresses.MemtopCartRAM:
		mem.Cart.WriteRAM(address-addresses.OriginCartRAM, data)

	case address <= addresses.MemtopWRAM:
		mem.wram[address-addresses.OriginWRAM] = data

	case address <= addresses.MemtopEcho:
		mem.wram[address-addresses.OriginEcho] = data

	case address <= addresses.MemtopOAM:
		if !mem.oamLocked() {
			mem.oam[address-addresses.OriginOAM] = data
		}

	case address <= addresses.MemtopUnused:
		// writes have no effect

	case address <= addresses.MemtopIO:
		mem.writeRegister(address, data)

	case address <= addresses.MemtopHRAM:
		mem.hram[address-addresses.OriginHRAM] = data

	default:
		mem.ie = data
	}

	return nil
}

// writeRegister applies the write side effects of the individual hardware
// registers. The register byte is stored (subject to the register's write
// mask) before any interested chip is notified.
func (mem *Memory) writeRegister(address uint16, data uint8) {
	idx := address - addresses.OriginIO

	switch {
	case address == addresses.JOYP:
		// only the row select bits are writable
		mem.io[idx] = (mem.io[idx] & 0xcf) | (data & 0x30)
		if mem.Joypad != nil {
			mem.Joypad.RegisterWrite(address, data)
		}

	case address == addresses.DIV:
		// any write resets the divider
		mem.io[idx] = 0x00
		if mem.Timer != nil {
			mem.Timer.RegisterWrite(address, data)
		}

	case address == addresses.TIMA || address == addresses.TMA:
		mem.io[idx] = data
		if mem.Timer != nil {
			mem.Timer.RegisterWrite(address, data)
		}

	case address == addresses.TAC:
		mem.io[idx] = data & 0x07
		if mem.Timer != nil {
			mem.Timer.RegisterWrite(address, data)
		}

	case address == addresses.STAT:
		// the mode bits and the coincidence flag are read-only
		mem.io[idx] = (mem.io[idx] & 0x07) | (data & 0x78)

	case address == addresses.LY:
		// read-only. writes are dropped

	case address == addresses.DMA:
		mem.io[idx] = data
		mem.dmaTransfer(data)

	case address == addresses.BOOT:
		mem.io[idx] = data
		if mem.bootEnabled {
			mem.bootEnabled = false
			logger.Log("memory", "boot ROM disabled")
		}

	case address >= addresses.NR10 && address <= addresses.MemtopWaveRAM:
		mem.io[idx] = data
		if mem.Audio != nil {
			mem.Audio.RegisterWrite(address, data)
		}

	default:
		mem.io[idx] = data
	}
}

// dmaTransfer copies 160 bytes from the source page to OAM. On real
// hardware the copy takes 160 machine cycles during which the CPU is
// restricted to HRAM; at instruction granularity the copy is immediate.
func (mem *Memory) dmaTransfer(page uint8) {
	src := uint16(page) << 8

	// sources in the echo area resolve to WRAM
	if src >= addresses.OriginEcho {
		src -= 0x2000
	}

	for i := uint16(0); i < uint16(len(mem.oam)); i++ {
		mem.oam[i] = mem.ChipRead(src + i)
	}
}
