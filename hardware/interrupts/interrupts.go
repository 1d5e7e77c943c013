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

// Package interrupts coordinates the five interrupt sources of the machine.
// The IF and IE registers live in the address space like every other
// register; the controller is how the chips set IF bits and how the CPU
// decides which source to service next.
package interrupts

import (
	"dmgopher/hardware/memory/addresses"
	"dmgopher/hardware/memory/bus"
)

// Source identifies one of the five interrupt sources. The value is the bit
// position of the source in the IF and IE registers; it is also the order
// of priority, lowest value first.
type Source int

// the list of interrupt sources.
const (
	VBlank Source = iota
	STAT
	Timer
	Serial
	Joypad
	NumSources
)

func (s Source) String() string {
	switch s {
	case VBlank:
		return "VBLANK"
	case STAT:
		return "STAT"
	case Timer:
		return "TIMER"
	case Serial:
		return "SERIAL"
	case Joypad:
		return "JOYPAD"
	}
	return "unknown"
}

// Vector returns the address the CPU jumps to when servicing the source.
func (s Source) Vector() uint16 {
	return addresses.InterruptVectors[s]
}

// Controller is shared by every chip that can raise an interrupt and by the
// CPU when it decides what to service.
type Controller struct {
	mem bus.ChipBus
}

// NewController is the preferred method of initialisation for the
// Controller type.
func NewController(mem bus.ChipBus) *Controller {
	return &Controller{mem: mem}
}

// Raise requests an interrupt by setting the source's bit in the IF
// register. Whether the interrupt is ever serviced depends on IE and the
// CPU's master enable.
func (ct *Controller) Raise(s Source) {
	f := ct.mem.ChipRead(addresses.IF)
	ct.mem.ChipWrite(addresses.IF, f|(0x01<<uint(s)))
}

// Acknowledge clears the source's bit in the IF register. Called by the CPU
// at the point of dispatch.
func (ct *Controller) Acknowledge(s Source) {
	f := ct.mem.ChipRead(addresses.IF)
	ct.mem.ChipWrite(addresses.IF, f&^(0x01<<uint(s)))
}

// Next returns the highest priority source that is both requested and
// enabled. The second return value is false if there is nothing to service.
func (ct *Controller) Next() (Source, bool) {
	p := ct.mem.ChipRead(addresses.IE) & ct.mem.ChipRead(addresses.IF) & 0x1f
	if p == 0x00 {
		return 0, false
	}
	for s := VBlank; s < NumSources; s++ {
		if p&(0x01<<uint(s)) != 0x00 {
			return s, true
		}
	}
	return 0, false
}

// Pending returns true if any source is both requested and enabled. Used by
// the CPU to decide whether to leave the halted state, a decision that does
// not consult the master enable.
func (ct *Controller) Pending() bool {
	return ct.mem.ChipRead(addresses.IE)&ct.mem.ChipRead(addresses.IF)&0x1f != 0x00
}
