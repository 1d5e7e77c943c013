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

package memory_test

import (
	"testing"

	"dmgopher/hardware/memory"
	"dmgopher/hardware/memory/addresses"
	"dmgopher/hardware/memory/cartridge"
	"dmgopher/test"
)

func newTestMemory() *memory.Memory {
	return memory.NewMemory(cartridge.NewCartridge())
}

func read(t *testing.T, mem *memory.Memory, address uint16) uint8 {
	t.Helper()
	d, err := mem.Read(address)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func write(t *testing.T, mem *memory.Memory, address uint16, data uint8) {
	t.Helper()
	err := mem.Write(address, data)
	if err != nil {
		t.Fatal(err)
	}
}

func TestWRAM(t *testing.T) {
	mem := newTestMemory()

	write(t, mem, 0xc000, 0x12)
	test.Equate(t, read(t, mem, 0xc000), 0x12)

	// the echo area mirrors WRAM in both directions
	test.Equate(t, read(t, mem, 0xe000), 0x12)
	write(t, mem, 0xe001, 0x34)
	test.Equate(t, read(t, mem, 0xc001), 0x34)
}

func TestHRAMAndIE(t *testing.T) {
	mem := newTestMemory()

	write(t, mem, 0xff80, 0x56)
	test.Equate(t, read(t, mem, 0xff80), 0x56)

	write(t, mem, 0xffff, 0x1f)
	test.Equate(t, read(t, mem, 0xffff), 0x1f)
}

func TestInterruptFlagUpperBits(t *testing.T) {
	mem := newTestMemory()

	// the unused bits of IF read high whatever has been written
	write(t, mem, 0xff0f, 0x00)
	test.Equate(t, read(t, mem, 0xff0f), 0xe0)

	write(t, mem, 0xff0f, 0x1f)
	test.Equate(t, read(t, mem, 0xff0f), 0xff)

	// the chip bus sees the register byte as stored
	test.Equate(t, mem.ChipRead(0xff0f), 0x1f)
}

func TestUnusedArea(t *testing.T) {
	mem := newTestMemory()

	write(t, mem, 0xfea0, 0x99)
	test.Equate(t, read(t, mem, 0xfea0), 0xff)
}

func TestVRAMGating(t *testing.T) {
	mem := newTestMemory()

	// LCD off. VRAM is freely accessible whatever the mode bits say
	mem.ChipWrite(addresses.LCDC, 0x00)
	mem.ChipWrite(addresses.STAT, 0x03)
	write(t, mem, 0x8000, 0x77)
	test.Equate(t, read(t, mem, 0x8000), 0x77)

	// LCD on and in pixel transfer. CPU reads float high and writes are
	// dropped
	mem.ChipWrite(addresses.LCDC, 0x80)
	test.Equate(t, read(t, mem, 0x8000), 0xff)
	write(t, mem, 0x8000, 0x11)

	mem.ChipWrite(addresses.STAT, 0x00)
	test.Equate(t, read(t, mem, 0x8000), 0x77)

	// the chip bus is never gated
	mem.ChipWrite(addresses.STAT, 0x03)
	test.Equate(t, mem.ChipRead(0x8000), 0x77)
}

func TestOAMGating(t *testing.T) {
	mem := newTestMemory()

	mem.ChipWrite(addresses.LCDC, 0x80)
	mem.ChipWrite(addresses.STAT, 0x00)
	write(t, mem, 0xfe00, 0x21)
	test.Equate(t, read(t, mem, 0xfe00), 0x21)

	// OAM is locked during OAM search as well as pixel transfer
	mem.ChipWrite(addresses.STAT, 0x02)
	test.Equate(t, read(t, mem, 0xfe00), 0xff)
	write(t, mem, 0xfe00, 0x43)

	mem.ChipWrite(addresses.STAT, 0x01)
	test.Equate(t, read(t, mem, 0xfe00), 0x21)
}

func TestDebugBusBypassesGating(t *testing.T) {
	mem := newTestMemory()

	mem.ChipWrite(addresses.LCDC, 0x80)
	mem.ChipWrite(addresses.STAT, 0x03)

	err := mem.Poke(0x8010, 0x66)
	if err != nil {
		t.Fatal(err)
	}

	d, err := mem.Peek(0x8010)
	if err != nil {
		t.Fatal(err)
	}
	test.Equate(t, d, 0x66)
}

func TestJOYPWriteMask(t *testing.T) {
	mem := newTestMemory()

	// only the row select bits take the written value
	write(t, mem, addresses.JOYP, 0xff)
	test.Equate(t, read(t, mem, addresses.JOYP)&0x30, 0x30)
	test.Equate(t, read(t, mem, addresses.JOYP)&0x0f, 0x00)
}

func TestSTATWriteMask(t *testing.T) {
	mem := newTestMemory()

	mem.ChipWrite(addresses.STAT, 0x02)

	// the mode bits and coincidence flag survive a CPU write
	write(t, mem, addresses.STAT, 0xff)
	test.Equate(t, read(t, mem, addresses.STAT), 0x7a)
}

func TestLYReadOnly(t *testing.T) {
	mem := newTestMemory()

	mem.ChipWrite(addresses.LY, 0x90)
	write(t, mem, addresses.LY, 0x00)
	test.Equate(t, read(t, mem, addresses.LY), 0x90)
}

func TestTACWriteMask(t *testing.T) {
	mem := newTestMemory()

	write(t, mem, addresses.TAC, 0xff)
	test.Equate(t, read(t, mem, addresses.TAC), 0x07)
}

func TestDMATransfer(t *testing.T) {
	mem := newTestMemory()

	for i := uint16(0); i < 0xa0; i++ {
		write(t, mem, 0xc000+i, uint8(i))
	}

	write(t, mem, addresses.DMA, 0xc0)

	test.Equate(t, read(t, mem, 0xfe00), 0x00)
	test.Equate(t, read(t, mem, 0xfe10), 0x10)
	test.Equate(t, read(t, mem, 0xfe9f), 0x9f)
}

func TestDMAFromEchoArea(t *testing.T) {
	mem := newTestMemory()

	write(t, mem, 0xc000, 0xab)

	// a source page in the echo area resolves to WRAM
	write(t, mem, addresses.DMA, 0xe0)
	test.Equate(t, read(t, mem, 0xfe00), 0xab)
}

func TestPostBootRegisters(t *testing.T) {
	mem := newTestMemory()

	// no boot ROM attached. registers start with the values the boot ROM
	// would have left behind
	test.Equate(t, read(t, mem, addresses.LCDC), 0x91)
	test.Equate(t, read(t, mem, addresses.BGP), 0xfc)
	test.Equate(t, read(t, mem, addresses.NR52), 0xf1)
}

func TestBootROMOverlay(t *testing.T) {
	mem := newTestMemory()

	boot := make([]byte, 0x100)
	boot[0x00] = 0xaa
	boot[0xff] = 0xbb
	err := mem.AttachBootROM(boot)
	if err != nil {
		t.Fatal(err)
	}
	mem.Initialise()

	// the overlay covers the bottom of the cartridge window
	test.Equate(t, read(t, mem, 0x0000), 0xaa)
	test.Equate(t, read(t, mem, 0x00ff), 0xbb)

	// the cartridge shows through above the overlay
	test.Equate(t, read(t, mem, 0x0100), 0xff)

	// registers start at zero with the boot ROM mapped
	test.Equate(t, read(t, mem, addresses.LCDC), 0x00)

	// writing the BOOT register unmaps the overlay for good
	write(t, mem, addresses.BOOT, 0x01)
	test.Equate(t, read(t, mem, 0x0000), 0xff)
}

func TestBootROMWrongSize(t *testing.T) {
	mem := newTestMemory()
	err := mem.AttachBootROM(make([]byte, 0x80))
	test.ExpectedFailure(t, err)
}
