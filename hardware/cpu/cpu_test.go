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

package cpu_test

import (
	"testing"

	"dmgopher/hardware/cpu"
	"dmgopher/hardware/interrupts"
	"dmgopher/hardware/memory/addresses"
	"dmgopher/test"
)

// mockMem is a flat 64k with no gating and no registers. the interrupt
// controller reads and writes IF and IE through the chip bus like it would
// on the real memory implementation.
type mockMem struct {
	internal []uint8
}

func newMockMem() *mockMem {
	mem := new(mockMem)
	mem.internal = make([]uint8, 0x10000)
	return mem
}

func (mem *mockMem) putInstructions(origin uint16, bytes ...uint8) uint16 {
	for i, b := range bytes {
		mem.internal[origin+uint16(i)] = b
	}
	return origin + uint16(len(bytes))
}

func (mem *mockMem) Read(address uint16) (uint8, error) {
	return mem.internal[address], nil
}

func (mem *mockMem) Write(address uint16, data uint8) error {
	mem.internal[address] = data
	return nil
}

func (mem *mockMem) ChipRead(address uint16) uint8 {
	return mem.internal[address]
}

func (mem *mockMem) ChipWrite(address uint16, data uint8) {
	mem.internal[address] = data
}

func newTestCPU() (*cpu.CPU, *mockMem) {
	mem := newMockMem()
	ints := interrupts.NewController(mem)
	mc := cpu.NewCPU(mem, ints)
	mc.Initialise(true)
	mc.Reg.PC = 0x0000
	return mc, mem
}

func step(t *testing.T, mc *cpu.CPU) int {
	t.Helper()
	cycles, err := mc.ExecuteInstruction()
	if err != nil {
		t.Fatal(err)
	}
	return cycles
}

func TestLoadsAndArithmetic(t *testing.T) {
	mc, mem := newTestCPU()

	// LD A,d8; ADD A,d8; SUB d8
	mem.putInstructions(0x0000, 0x3e, 0x0f, 0xc6, 0x01, 0xd6, 0x20)

	c := step(t, mc) // LD A,0x0f
	test.Equate(t, mc.Reg.A, 0x0f)
	test.Equate(t, c, 8)

	step(t, mc) // ADD A,0x01
	test.Equate(t, mc.Reg.A, 0x10)
	test.Equate(t, mc.Reg.Zero(), false)
	test.Equate(t, mc.Reg.HalfCarry(), true)
	test.Equate(t, mc.Reg.Carry(), false)

	step(t, mc) // SUB 0x20
	test.Equate(t, mc.Reg.A, 0xf0)
	test.Equate(t, mc.Reg.Subtract(), true)
	test.Equate(t, mc.Reg.Carry(), true)
}

func TestStop(t *testing.T) {
	mc, mem := newTestCPU()

	// STOP 0; NOP
	mem.putInstructions(0x0000, 0x10, 0x00, 0x00)

	// both bytes of the instruction are consumed
	cycles := step(t, mc)
	test.Equate(t, cycles, 4)
	test.Equate(t, mc.Reg.PC, 0x0002)
}

func TestZeroFlag(t *testing.T) {
	mc, mem := newTestCPU()

	// LD A,d8; XOR A
	mem.putInstructions(0x0000, 0x3e, 0x55, 0xaf)

	step(t, mc)
	step(t, mc) // XOR A
	test.Equate(t, mc.Reg.A, 0x00)
	test.Equate(t, mc.Reg.Zero(), true)
	test.Equate(t, mc.Reg.Carry(), false)
}

func TestRegisterDecoding(t *testing.T) {
	mc, mem := newTestCPU()

	// LD B,d8; LD A,B; LD HL,d16; LD (HL),A; LD C,(HL)
	mem.putInstructions(0x0000, 0x06, 0x42, 0x78, 0x21, 0x00, 0xc0, 0x77, 0x4e)

	step(t, mc) // LD B,0x42
	test.Equate(t, mc.Reg.B, 0x42)

	c := step(t, mc) // LD A,B
	test.Equate(t, mc.Reg.A, 0x42)
	test.Equate(t, c, 4)

	step(t, mc) // LD HL,0xc000
	test.Equate(t, mc.Reg.HL(), 0xc000)

	c = step(t, mc) // LD (HL),A
	test.Equate(t, mem.internal[0xc000], 0x42)
	test.Equate(t, c, 8)

	step(t, mc) // LD C,(HL)
	test.Equate(t, mc.Reg.C, 0x42)
}

func TestStack(t *testing.T) {
	mc, mem := newTestCPU()

	// LD SP,d16; LD BC,d16; PUSH BC; POP DE
	mem.putInstructions(0x0000, 0x31, 0xfe, 0xff, 0x01, 0x34, 0x12, 0xc5, 0xd1)

	step(t, mc) // LD SP,0xfffe
	test.Equate(t, mc.Reg.SP, 0xfffe)

	step(t, mc) // LD BC,0x1234

	c := step(t, mc) // PUSH BC
	test.Equate(t, mc.Reg.SP, 0xfffc)
	test.Equate(t, c, 16)

	step(t, mc) // POP DE
	test.Equate(t, mc.Reg.DE(), 0x1234)
	test.Equate(t, mc.Reg.SP, 0xfffe)
}

func TestCallAndReturn(t *testing.T) {
	mc, mem := newTestCPU()

	mem.putInstructions(0x0000, 0x31, 0xfe, 0xff) // LD SP,0xfffe
	mem.putInstructions(0x0003, 0xcd, 0x00, 0x10) // CALL 0x1000
	mem.putInstructions(0x1000, 0xc9)             // RET

	step(t, mc)

	c := step(t, mc) // CALL
	test.Equate(t, mc.Reg.PC, 0x1000)
	test.Equate(t, mc.Reg.SP, 0xfffc)
	test.Equate(t, c, 24)

	c = step(t, mc) // RET
	test.Equate(t, mc.Reg.PC, 0x0006)
	test.Equate(t, c, 16)
}

func TestBranchCycles(t *testing.T) {
	mc, mem := newTestCPU()

	// XOR A leaves the zero flag set, so the first JR NZ is not taken and
	// the second JR Z is
	mem.putInstructions(0x0000, 0xaf, 0x20, 0x10, 0x28, 0x10)

	step(t, mc) // XOR A

	c := step(t, mc) // JR NZ, not taken
	test.Equate(t, c, 8)
	test.Equate(t, mc.Reg.PC, 0x0003)
	test.Equate(t, mc.LastResult.BranchTaken, false)

	c = step(t, mc) // JR Z, taken
	test.Equate(t, c, 12)
	test.Equate(t, mc.Reg.PC, 0x0015)
	test.Equate(t, mc.LastResult.BranchTaken, true)
}

func TestRelativeJumpBackwards(t *testing.T) {
	mc, mem := newTestCPU()

	// JR -2 loops back to itself
	mem.putInstructions(0x0100, 0x18, 0xfe)
	mc.Reg.PC = 0x0100

	step(t, mc)
	test.Equate(t, mc.Reg.PC, 0x0100)
}

func TestPrefixedOpcodes(t *testing.T) {
	mc, mem := newTestCPU()

	// LD A,d8; BIT 7,A; SET 0,A; SWAP A
	mem.putInstructions(0x0000, 0x3e, 0x80, 0xcb, 0x7f, 0xcb, 0xc7, 0xcb, 0x37)

	step(t, mc)

	c := step(t, mc) // BIT 7,A
	test.Equate(t, mc.Reg.Zero(), false)
	test.Equate(t, mc.Reg.HalfCarry(), true)
	test.Equate(t, c, 8)

	step(t, mc) // SET 0,A
	test.Equate(t, mc.Reg.A, 0x81)

	step(t, mc) // SWAP A
	test.Equate(t, mc.Reg.A, 0x18)
}

func TestDAA(t *testing.T) {
	mc, mem := newTestCPU()

	// 0x15 + 0x27 = 0x42 in BCD
	mem.putInstructions(0x0000, 0x3e, 0x15, 0xc6, 0x27, 0x27)

	step(t, mc)
	step(t, mc) // ADD A,0x27 -> 0x3c
	step(t, mc) // DAA
	test.Equate(t, mc.Reg.A, 0x42)
	test.Equate(t, mc.Reg.Carry(), false)
}

func TestEIDelay(t *testing.T) {
	mc, mem := newTestCPU()

	// EI; NOP; NOP
	mem.putInstructions(0x0000, 0xfb, 0x00, 0x00)

	step(t, mc) // EI
	test.Equate(t, mc.IME(), false)

	step(t, mc) // NOP. enable takes effect after this instruction
	test.Equate(t, mc.IME(), true)
}

func TestDIImmediate(t *testing.T) {
	mc, mem := newTestCPU()

	// EI; NOP; DI
	mem.putInstructions(0x0000, 0xfb, 0x00, 0xf3)

	step(t, mc)
	step(t, mc)
	test.Equate(t, mc.IME(), true)

	step(t, mc) // DI
	test.Equate(t, mc.IME(), false)
}

func TestInterruptDispatch(t *testing.T) {
	mc, mem := newTestCPU()

	mem.putInstructions(0x0000, 0x31, 0xfe, 0xff, 0xfb, 0x00, 0x00)
	mem.internal[addresses.IE] = 0x01 // VBLANK enabled
	mem.internal[addresses.IF] = 0x01 // VBLANK pending

	step(t, mc) // LD SP,0xfffe
	step(t, mc) // EI
	step(t, mc) // NOP. IME is now set

	c := step(t, mc) // dispatch
	test.Equate(t, mc.Reg.PC, 0x0040)
	test.Equate(t, c, 20)
	test.Equate(t, mc.IME(), false)

	// IF bit has been acknowledged
	test.Equate(t, mem.internal[addresses.IF]&0x01, 0x00)

	// return address pushed to the stack
	test.Equate(t, mem.internal[0xfffc], 0x05)
	test.Equate(t, mem.internal[0xfffd], 0x00)
}

func TestInterruptPriority(t *testing.T) {
	mc, mem := newTestCPU()

	mem.putInstructions(0x0000, 0x31, 0xfe, 0xff, 0xfb, 0x00, 0x00)

	// TIMER and STAT both pending. STAT has the lower bit position and
	// wins
	mem.internal[addresses.IE] = 0x06
	mem.internal[addresses.IF] = 0x06

	step(t, mc)
	step(t, mc)
	step(t, mc)

	step(t, mc) // dispatch
	test.Equate(t, mc.Reg.PC, 0x0048)

	// TIMER is still pending
	test.Equate(t, mem.internal[addresses.IF]&0x04, 0x04)
}

func TestHaltResume(t *testing.T) {
	mc, mem := newTestCPU()

	// HALT with IME clear and nothing pending. the CPU idles until an
	// interrupt becomes pending and then resumes without dispatching
	mem.putInstructions(0x0000, 0x76, 0x3e, 0x99)
	mem.internal[addresses.IE] = 0x01

	step(t, mc) // HALT
	test.Equate(t, mc.Halted(), true)

	c := step(t, mc) // idle
	test.Equate(t, c, 4)
	test.Equate(t, mc.Halted(), true)

	mem.internal[addresses.IF] = 0x01

	step(t, mc) // resume. LD A,0x99 executes
	test.Equate(t, mc.Halted(), false)
	test.Equate(t, mc.Reg.A, 0x99)
	test.Equate(t, mc.IME(), false)
}

func TestHaltBug(t *testing.T) {
	mc, mem := newTestCPU()

	// HALT with IME clear and an interrupt already pending. PC fails to
	// advance after the next fetch so the byte after HALT is read twice:
	// here INC A executes twice
	mem.putInstructions(0x0000, 0x76, 0x3c, 0x00)
	mem.internal[addresses.IE] = 0x01
	mem.internal[addresses.IF] = 0x01

	step(t, mc) // HALT
	test.Equate(t, mc.Halted(), false)

	step(t, mc) // INC A (PC does not advance)
	test.Equate(t, mc.Reg.A, 0x01)
	test.Equate(t, mc.Reg.PC, 0x0001)

	step(t, mc) // INC A again
	test.Equate(t, mc.Reg.A, 0x02)
	test.Equate(t, mc.Reg.PC, 0x0002)
}

func TestInvalidOpcode(t *testing.T) {
	mc, mem := newTestCPU()

	mem.putInstructions(0x0000, 0xdd)

	_, err := mc.ExecuteInstruction()
	test.ExpectedFailure(t, err)
}
