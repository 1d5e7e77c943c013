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

// Package timer represents the divider and timer registers (DIV, TIMA, TMA
// and TAC). The register bytes live in the address space; the timer chip
// reads and publishes them through the chip bus so the values the CPU sees
// are always current at instruction boundaries.
package timer

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"dmgopher/hardware/interrupts"
	"dmgopher/hardware/memory/addresses"
	"dmgopher/hardware/memory/bus"
)

// the number of cycles between TIMA increments, indexed by the clock select
// bits of the TAC register.
var timaPeriods = [4]int{1024, 16, 64, 256}

// Timer implements the divider and timer chip.
type Timer struct {
	mem  bus.ChipBus
	ints *interrupts.Controller

	// DIV is the top byte of a 16 bit counter that advances with every
	// cycle. a write to DIV resets the whole counter, not just the visible
	// byte
	divCounter uint16

	// cycles accumulated towards the next TIMA increment
	timaCounter int
}

// NewTimer is the preferred method of initialisation for the Timer type.
func NewTimer(mem bus.ChipBus, ints *interrupts.Controller) *Timer {
	return &Timer{
		mem:  mem,
		ints: ints,
	}
}

func (tmr *Timer) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("DIV=%#02x TIMA=%#02x TMA=%#02x TAC=%#02x",
		tmr.mem.ChipRead(addresses.DIV),
		tmr.mem.ChipRead(addresses.TIMA),
		tmr.mem.ChipRead(addresses.TMA),
		tmr.mem.ChipRead(addresses.TAC),
	))
	return s.String()
}

// Initialise the timer to its state at power-on.
func (tmr *Timer) Initialise() {
	tmr.divCounter = 0x0000
	tmr.timaCounter = 0
}

// RegisterWrite is an implementation of the bus.RegisterWriteHandler
// interface. The address space calls it when the CPU writes to one of the
// timer registers.
func (tmr *Timer) RegisterWrite(address uint16, _ uint8) {
	switch address {
	case addresses.DIV:
		tmr.divCounter = 0x0000
	case addresses.TAC:
		// a change of clock select restarts the accumulation towards the
		// next TIMA increment
		tmr.timaCounter = 0
	}
}

// Step the timer forward by the number of cycles consumed by the last CPU
// instruction.
func (tmr *Timer) Step(cycles int) {
	tmr.divCounter += uint16(cycles)
	tmr.mem.ChipWrite(addresses.DIV, uint8(tmr.divCounter>>8))

	tac := tmr.mem.ChipRead(addresses.TAC)
	if tac&0x04 == 0x00 {
		return
	}

	tmr.timaCounter += cycles
	period := timaPeriods[tac&0x03]

	for tmr.timaCounter >= period {
		tmr.timaCounter -= period

		tima := tmr.mem.ChipRead(addresses.TIMA)
		if tima == 0xff {
			// overflow. reload from TMA and request exactly one interrupt
			tmr.mem.ChipWrite(addresses.TIMA, tmr.mem.ChipRead(addresses.TMA))
			tmr.ints.Raise(interrupts.Timer)
		} else {
			tmr.mem.ChipWrite(addresses.TIMA, tima+1)
		}
	}
}

// Snapshot the state of the timer.
func (tmr *Timer) Snapshot() *Timer {
	n := *tmr
	return &n
}

// Plumb a previously snapshotted timer state back in.
func (tmr *Timer) Plumb(snapshot *Timer) {
	tmr.divCounter = snapshot.divCounter
	tmr.timaCounter = snapshot.timaCounter
}

// Serialise the timer's internal counters.
func (tmr *Timer) Serialise(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, tmr.divCounter); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, int64(tmr.timaCounter))
}

// Deserialise the timer's internal counters.
func (tmr *Timer) Deserialise(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &tmr.divCounter); err != nil {
		return err
	}
	var tc int64
	if err := binary.Read(r, binary.LittleEndian, &tc); err != nil {
		return err
	}
	tmr.timaCounter = int(tc)
	return nil
}
