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

package joypad_test

import (
	"testing"

	"dmgopher/hardware/interrupts"
	"dmgopher/hardware/joypad"
	"dmgopher/hardware/memory/addresses"
	"dmgopher/test"
)

type mockChipBus struct {
	internal [0x10000]uint8
}

func (mem *mockChipBus) ChipRead(address uint16) uint8 {
	return mem.internal[address]
}

func (mem *mockChipBus) ChipWrite(address uint16, data uint8) {
	mem.internal[address] = data
}

func newTestJoypad() (*joypad.Joypad, *mockChipBus) {
	mem := &mockChipBus{}
	ints := interrupts.NewController(mem)
	mem.internal[addresses.IE] = 0xff
	joy := joypad.NewJoypad(mem, ints)
	return joy, mem
}

// selectRow writes the row select bits the way the CPU write handler would.
func selectRow(joy *joypad.Joypad, mem *mockChipBus, data uint8) {
	joyp := mem.internal[addresses.JOYP]
	mem.internal[addresses.JOYP] = (joyp & 0xcf) | (data & 0x30)
	joy.RegisterWrite(addresses.JOYP, data)
}

func TestNothingPressed(t *testing.T) {
	joy, mem := newTestJoypad()

	// lines are active low. nothing pressed reads high
	selectRow(joy, mem, 0x20) // directions
	test.Equate(t, mem.internal[addresses.JOYP]&0x0f, 0x0f)

	selectRow(joy, mem, 0x10) // buttons
	test.Equate(t, mem.internal[addresses.JOYP]&0x0f, 0x0f)
}

func TestRowSelect(t *testing.T) {
	joy, mem := newTestJoypad()

	joy.Set(joypad.Right, true)
	joy.Set(joypad.Start, true)

	// direction row. only RIGHT shows
	selectRow(joy, mem, 0x20)
	test.Equate(t, mem.internal[addresses.JOYP]&0x0f, 0x0e)

	// button row. only START shows
	selectRow(joy, mem, 0x10)
	test.Equate(t, mem.internal[addresses.JOYP]&0x0f, 0x07)

	// both rows at once. the lines combine
	selectRow(joy, mem, 0x00)
	test.Equate(t, mem.internal[addresses.JOYP]&0x0f, 0x06)
}

func TestRelease(t *testing.T) {
	joy, mem := newTestJoypad()

	selectRow(joy, mem, 0x20)

	joy.Set(joypad.Up, true)
	test.Equate(t, mem.internal[addresses.JOYP]&0x0f, 0x0b)

	joy.Set(joypad.Up, false)
	test.Equate(t, mem.internal[addresses.JOYP]&0x0f, 0x0f)
}

func TestInterruptOnPress(t *testing.T) {
	joy, mem := newTestJoypad()

	selectRow(joy, mem, 0x20)

	// a press on a selected row pulls a line low and raises the interrupt
	joy.Set(joypad.A, true)
	test.Equate(t, mem.internal[addresses.IF]&0x10, 0x00)

	joy.Set(joypad.Down, true)
	test.Equate(t, mem.internal[addresses.IF]&0x10, 0x10)
}

func TestNoInterruptOnRelease(t *testing.T) {
	joy, mem := newTestJoypad()

	selectRow(joy, mem, 0x20)
	joy.Set(joypad.Left, true)

	mem.internal[addresses.IF] = 0x00
	joy.Set(joypad.Left, false)
	test.Equate(t, mem.internal[addresses.IF]&0x10, 0x00)
}
