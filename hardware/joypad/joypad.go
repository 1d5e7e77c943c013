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

// Package joypad implements the button matrix of the machine. The eight
// buttons are arranged in two rows of four, selected through bits 4 and 5
// of the JOYP register. All matrix lines are active low.
package joypad

import (
	"fmt"
	"strings"

	"dmgopher/hardware/interrupts"
	"dmgopher/hardware/memory/addresses"
	"dmgopher/hardware/memory/bus"
)

// Button identifies one of the eight buttons on the machine.
type Button int

// List of valid Button values.
const (
	Right Button = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
	NumButtons
)

func (b Button) String() string {
	switch b {
	case Right:
		return "RIGHT"
	case Left:
		return "LEFT"
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case A:
		return "A"
	case B:
		return "B"
	case Select:
		return "SELECT"
	case Start:
		return "START"
	}
	return "unknown"
}

// Joypad tracks the state of the buttons and keeps the JOYP register
// consistent with the selected matrix row.
type Joypad struct {
	mem  bus.ChipBus
	ints *interrupts.Controller

	// pressed state, one bit per button in row order. active high here,
	// inverted when published to the register.
	directions uint8
	buttons    uint8
}

// NewJoypad is the preferred method of initialisation for the Joypad type.
func NewJoypad(mem bus.ChipBus, ints *interrupts.Controller) *Joypad {
	joy := &Joypad{
		mem:  mem,
		ints: ints,
	}
	joy.update()
	return joy
}

func (joy *Joypad) String() string {
	s := strings.Builder{}
	s.WriteString("pressed:")
	for b := Button(0); b < NumButtons; b++ {
		if joy.isPressed(b) {
			s.WriteString(fmt.Sprintf(" %s", b))
		}
	}
	return s.String()
}

func (joy *Joypad) isPressed(b Button) bool {
	if b < A {
		return joy.directions&(0x01<<uint(b)) != 0x00
	}
	return joy.buttons&(0x01<<uint(b-A)) != 0x00
}

// Set changes the state of a button. A press can raise the joypad
// interrupt.
func (joy *Joypad) Set(b Button, pressed bool) {
	mask := uint8(0x01) << uint(b%4)
	if b < A {
		if pressed {
			joy.directions |= mask
		} else {
			joy.directions &^= mask
		}
	} else {
		if pressed {
			joy.buttons |= mask
		} else {
			joy.buttons &^= mask
		}
	}
	joy.update()
}

// RegisterWrite implements the bus.RegisterWriteHandler interface. The CPU
// has changed the row select bits and the input lines must be recomputed.
func (joy *Joypad) RegisterWrite(address uint16, data uint8) {
	if address == addresses.JOYP {
		joy.update()
	}
}

// update recomputes the low nibble of the JOYP register from the selected
// row. a line falling from high to low raises the joypad interrupt.
func (joy *Joypad) update() {
	joyp := joy.mem.ChipRead(addresses.JOYP)

	// a row is selected when its bit is clear. both rows can be selected
	// at once, in which case the lines combine.
	lines := uint8(0x0f)
	if joyp&0x10 == 0x00 {
		lines &= ^joy.directions & 0x0f
	}
	if joyp&0x20 == 0x00 {
		lines &= ^joy.buttons & 0x0f
	}

	old := joyp & 0x0f
	joy.mem.ChipWrite(addresses.JOYP, joyp&0xf0|lines)

	if old&^lines != 0x00 {
		joy.ints.Raise(interrupts.Joypad)
	}
}
