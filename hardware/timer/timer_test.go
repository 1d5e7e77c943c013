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

package timer_test

import (
	"bytes"
	"testing"

	"dmgopher/hardware/interrupts"
	"dmgopher/hardware/memory/addresses"
	"dmgopher/hardware/timer"
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

func newTestTimer() (*timer.Timer, *mockChipBus) {
	mem := &mockChipBus{}
	ints := interrupts.NewController(mem)
	tmr := timer.NewTimer(mem, ints)
	tmr.Initialise()
	return tmr, mem
}

func TestDivider(t *testing.T) {
	tmr, mem := newTestTimer()

	// DIV is the top byte of a 16 bit counter
	tmr.Step(252)
	test.Equate(t, mem.internal[addresses.DIV], 0x00)

	tmr.Step(4)
	test.Equate(t, mem.internal[addresses.DIV], 0x01)

	tmr.Step(256)
	test.Equate(t, mem.internal[addresses.DIV], 0x02)
}

func TestDividerReset(t *testing.T) {
	tmr, mem := newTestTimer()

	tmr.Step(512)
	test.Equate(t, mem.internal[addresses.DIV], 0x02)

	// a write to DIV resets the whole counter regardless of the data
	tmr.RegisterWrite(addresses.DIV, 0xff)
	tmr.Step(4)
	test.Equate(t, mem.internal[addresses.DIV], 0x00)
}

func TestTimaDisabled(t *testing.T) {
	tmr, mem := newTestTimer()

	// TAC enable bit clear. TIMA never advances
	mem.internal[addresses.TAC] = 0x01
	tmr.Step(4096)
	test.Equate(t, mem.internal[addresses.TIMA], 0x00)
}

func TestTimaPeriods(t *testing.T) {
	tmr, mem := newTestTimer()

	// clock select 0x01 increments TIMA every 16 cycles
	mem.internal[addresses.TAC] = 0x05

	tmr.Step(12)
	test.Equate(t, mem.internal[addresses.TIMA], 0x00)

	tmr.Step(4)
	test.Equate(t, mem.internal[addresses.TIMA], 0x01)

	tmr.Step(160)
	test.Equate(t, mem.internal[addresses.TIMA], 0x0b)

	// clock select 0x03 increments TIMA every 256 cycles. changing TAC
	// restarts the accumulation
	mem.internal[addresses.TAC] = 0x07
	tmr.RegisterWrite(addresses.TAC, 0x07)

	tmr.Step(252)
	test.Equate(t, mem.internal[addresses.TIMA], 0x0b)

	tmr.Step(4)
	test.Equate(t, mem.internal[addresses.TIMA], 0x0c)
}

func TestTimaOverflow(t *testing.T) {
	tmr, mem := newTestTimer()

	mem.internal[addresses.TAC] = 0x05
	mem.internal[addresses.TMA] = 0xab
	mem.internal[addresses.TIMA] = 0xff
	mem.internal[addresses.IE] = 0xff

	tmr.Step(16)

	// TIMA reloads from TMA and the timer interrupt is requested
	test.Equate(t, mem.internal[addresses.TIMA], 0xab)
	test.Equate(t, mem.internal[addresses.IF]&0x04, 0x04)
}

func TestSerialise(t *testing.T) {
	tmr, mem := newTestTimer()

	mem.internal[addresses.TAC] = 0x05
	tmr.Step(1000)

	b := &bytes.Buffer{}
	err := tmr.Serialise(b)
	if err != nil {
		t.Fatal(err)
	}

	// register bytes are serialised with the address space, not with the
	// timer, so copy them over by hand
	restored, restoredMem := newTestTimer()
	restoredMem.internal[addresses.TAC] = 0x05
	restoredMem.internal[addresses.TIMA] = mem.internal[addresses.TIMA]
	err = restored.Deserialise(bytes.NewReader(b.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	// both timers now advance in step
	tmr.Step(24)
	restored.Step(24)
	test.Equate(t, restoredMem.internal[addresses.DIV], mem.internal[addresses.DIV])
	test.Equate(t, restoredMem.internal[addresses.TIMA], mem.internal[addresses.TIMA])
}
