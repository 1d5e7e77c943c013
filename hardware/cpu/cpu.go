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

// Package cpu implements the SM83 processor. Instructions execute in a
// single call to ExecuteInstruction(); the caller is told how many cycles
// the instruction consumed and runs the other chips forward by the same
// amount. This is the lock step that keeps the whole machine honest.
package cpu

import (
	"dmgopher/curated"
	"dmgopher/hardware/cpu/instructions"
	"dmgopher/hardware/interrupts"
	"dmgopher/hardware/memory/bus"
	"dmgopher/logger"
)

// sentinel errors for the cpu package.
const (
	UnimplementedInstruction = "cpu: invalid opcode (%#02x) at %#04x"
)

// the number of cycles consumed by an interrupt dispatch. leaving the
// halted state costs an extra machine cycle.
const (
	dispatchCycles     = 20
	dispatchHaltCycles = 24
)

// CPU implements the SM83 found in the DMG-01.
type CPU struct {
	Reg Registers

	mem  bus.CPUBus
	ints *interrupts.Controller

	// interrupt master enable. not addressable from the bus
	ime bool

	// countdown until a pending EI takes effect. the enable is delayed
	// until after the instruction following EI
	imeCountdown int

	// cpu is waiting for an interrupt
	halted bool

	// HALT executed with interrupts disabled while one was already pending:
	// the next fetch fails to advance PC and the opcode byte runs twice
	haltBug bool

	// LastResult records the outcome of the most recent call to
	// ExecuteInstruction()
	LastResult Result

	// the operand bytes gathered by the fetch functions during the current
	// instruction
	operand uint16
}

// NewCPU is the preferred method of initialisation for the CPU type.
func NewCPU(mem bus.CPUBus, ints *interrupts.Controller) *CPU {
	return &CPU{mem: mem, ints: ints}
}

func (mc *CPU) String() string {
	return mc.Reg.String()
}

// Initialise the CPU to its state at power-on. With postBoot set the
// registers take the values the boot ROM would have left behind; otherwise
// execution will begin at address zero, inside the boot ROM overlay.
func (mc *CPU) Initialise(postBoot bool) {
	mc.ime = false
	mc.imeCountdown = 0
	mc.halted = false
	mc.haltBug = false
	mc.LastResult = Result{}

	if !postBoot {
		mc.Reg = Registers{}
		return
	}

	mc.Reg = Registers{
		A: 0x01, F: 0xb0,
		B: 0x00, C: 0x13,
		D: 0x00, E: 0xd8,
		H: 0x01, L: 0x4d,
		PC: 0x0100,
		SP: 0xfffe,
	}
}

// IME returns the state of the interrupt master enable.
func (mc *CPU) IME() bool {
	return mc.ime
}

// Halted returns true if the CPU is waiting for an interrupt.
func (mc *CPU) Halted() bool {
	return mc.halted
}

func (mc *CPU) fetch8() (uint8, error) {
	v, err := mc.mem.Read(mc.Reg.PC)
	if err != nil {
		return 0, err
	}
	mc.Reg.PC++
	mc.operand = uint16(v)
	return v, nil
}

func (mc *CPU) fetch16() (uint16, error) {
	lo, err := mc.mem.Read(mc.Reg.PC)
	if err != nil {
		return 0, err
	}
	mc.Reg.PC++
	hi, err := mc.mem.Read(mc.Reg.PC)
	if err != nil {
		return 0, err
	}
	mc.Reg.PC++
	mc.operand = uint16(hi)<<8 | uint16(lo)
	return mc.operand, nil
}

func (mc *CPU) push16(v uint16) error {
	mc.Reg.SP--
	if err := mc.mem.Write(mc.Reg.SP, uint8(v>>8)); err != nil {
		return err
	}
	mc.Reg.SP--
	return mc.mem.Write(mc.Reg.SP, uint8(v))
}

func (mc *CPU) pop16() (uint16, error) {
	lo, err := mc.mem.Read(mc.Reg.SP)
	if err != nil {
		return 0, err
	}
	mc.Reg.SP++
	hi, err := mc.mem.Read(mc.Reg.SP)
	if err != nil {
		return 0, err
	}
	mc.Reg.SP++
	return uint16(hi)<<8 | uint16(lo), nil
}

// getReg returns the 8-bit operand selected by the low three bits of the
// register-regular opcodes. index six is the byte addressed by HL.
func (mc *CPU) getReg(idx uint8) (uint8, error) {
	switch idx {
	case 0:
		return mc.Reg.B, nil
	case 1:
		return mc.Reg.C, nil
	case 2:
		return mc.Reg.D, nil
	case 3:
		return mc.Reg.E, nil
	case 4:
		return mc.Reg.H, nil
	case 5:
		return mc.Reg.L, nil
	case 6:
		return mc.mem.Read(mc.Reg.HL())
	}
	return mc.Reg.A, nil
}

func (mc *CPU) setReg(idx uint8, v uint8) error {
	switch idx {
	case 0:
		mc.Reg.B = v
	case 1:
		mc.Reg.C = v
	case 2:
		mc.Reg.D = v
	case 3:
		mc.Reg.E = v
	case 4:
		mc.Reg.H = v
	case 5:
		mc.Reg.L = v
	case 6:
		return mc.mem.Write(mc.Reg.HL(), v)
	case 7:
		mc.Reg.A = v
	}
	return nil
}

// ExecuteInstruction dispatches any serviceable interrupt and then executes
// the instruction at PC, returning the number of cycles consumed. The
// returned count includes the extra cycles of a taken branch.
func (mc *CPU) ExecuteInstruction() (int, error) {
	// interrupt dispatch happens between instructions
	if mc.ime {
		if src, ok := mc.ints.Next(); ok {
			cycles := dispatchCycles
			if mc.halted {
				mc.halted = false
				cycles = dispatchHaltCycles
			}

			mc.ints.Acknowledge(src)
			mc.ime = false
			mc.imeCountdown = 0

			if err := mc.push16(mc.Reg.PC); err != nil {
				return 0, err
			}
			mc.Reg.PC = src.Vector()

			return cycles, nil
		}
	}

	// a halted CPU resumes when an interrupt becomes pending, whether or
	// not the master enable allows it to be serviced
	if mc.halted {
		if !mc.ints.Pending() {
			return 4, nil
		}
		mc.halted = false
	}

	addr := mc.Reg.PC
	opcode, err := mc.mem.Read(addr)
	if err != nil {
		return 0, err
	}

	if mc.haltBug {
		// PC fails to advance. the opcode byte will be seen again
		mc.haltBug = false
	} else {
		mc.Reg.PC++
	}

	mc.operand = 0x0000

	var defn instructions.Definition
	var cycles int
	var branchTaken bool

	if opcode == 0xcb {
		var cbop uint8
		cbop, err = mc.fetch8()
		if err != nil {
			return 0, err
		}
		defn = instructions.DefinitionsCB[cbop]
		cycles = defn.Cycles
		err = mc.executePrefixed(cbop)
	} else {
		defn = instructions.Definitions[opcode]
		if !defn.IsValid() {
			return 0, curated.Errorf(UnimplementedInstruction, opcode, addr)
		}
		cycles = defn.Cycles
		branchTaken, err = mc.execute(opcode)
		if branchTaken {
			cycles += defn.BranchCycles
		}
	}
	if err != nil {
		return 0, err
	}

	mc.LastResult = Result{
		Address:     addr,
		Defn:        defn,
		Operand:     mc.operand,
		Cycles:      cycles,
		BranchTaken: branchTaken,
	}

	// a pending EI takes effect after the instruction following EI
	if mc.imeCountdown > 0 {
		mc.imeCountdown--
		if mc.imeCountdown == 0 {
			mc.ime = true
		}
	}

	return cycles, nil
}

// execute the base opcode table. The register-regular middle of the table
// (the loads and the accumulator arithmetic) is decoded from the opcode
// bits; the rest is enumerated.
func (mc *CPU) execute(opcode uint8) (bool, error) {
	// LD r,r' block
	if opcode >= 0x40 && opcode <= 0x7f && opcode != 0x76 {
		v, err := mc.getReg(opcode & 0x07)
		if err != nil {
			return false, err
		}
		return false, mc.setReg((opcode>>3)&0x07, v)
	}

	// accumulator arithmetic block
	if opcode >= 0x80 && opcode <= 0xbf {
		v, err := mc.getReg(opcode & 0x07)
		if err != nil {
			return false, err
		}
		mc.accumulatorOp((opcode>>3)&0x07, v)
		return false, nil
	}

	switch opcode {
	case 0x00: // NOP

	case 0x01: // LD BC,d16
		v, err := mc.fetch16()
		if err != nil {
			return false, err
		}
		mc.Reg.SetBC(v)

	case 0x02: // LD (BC),A
		return false, mc.mem.Write(mc.Reg.BC(), mc.Reg.A)

	case 0x03: // INC BC
		mc.Reg.SetBC(mc.Reg.BC() + 1)

	case 0x04: // INC B
		mc.Reg.B = mc.inc8(mc.Reg.B)

	case 0x05: // DEC B
		mc.Reg.B = mc.dec8(mc.Reg.B)

	case 0x06: // LD B,d8
		v, err := mc.fetch8()
		if err != nil {
			return false, err
		}
		mc.Reg.B = v

	case 0x07: // RLCA
		mc.Reg.A = mc.rlc(mc.Reg.A)
		mc.Reg.setFlag(maskZ, false)

	case 0x08: // LD (a16),SP
		addr, err := mc.fetch16()
		if err != nil {
			return false, err
		}
		if err := mc.mem.Write(addr, uint8(mc.Reg.SP)); err != nil {
			return false, err
		}
		return false, mc.mem.Write(addr+1, uint8(mc.Reg.SP>>8))

	case 0x09: // ADD HL,BC
		mc.addHL(mc.Reg.BC())

	case 0x0a: // LD A,(BC)
		v, err := mc.mem.Read(mc.Reg.BC())
		if err != nil {
			return false, err
		}
		mc.Reg.A = v

	case 0x0b: // DEC BC
		mc.Reg.SetBC(mc.Reg.BC() - 1)

	case 0x0c: // INC C
		mc.Reg.C = mc.inc8(mc.Reg.C)

	case 0x0d: // DEC C
		mc.Reg.C = mc.dec8(mc.Reg.C)

	case 0x0e: // LD C,d8
		v, err := mc.fetch8()
		if err != nil {
			return false, err
		}
		mc.Reg.C = v

	case 0x0f: // RRCA
		mc.Reg.A = mc.rrc(mc.Reg.A)
		mc.Reg.setFlag(maskZ, false)

	case 0x10: // STOP
		// the second byte of the instruction is skipped. low power mode is
		// meaningless in emulation so treat as a long NOP
		if _, err := mc.fetch8(); err != nil {
			return false, err
		}
		logger.Logf("cpu", "STOP at %#04x", mc.Reg.PC-2)

	case 0x11: // LD DE,d16
		v, err := mc.fetch16()
		if err != nil {
			return false, err
		}
		mc.Reg.SetDE(v)

	case 0x12: // LD (DE),A
		return false, mc.mem.Write(mc.Reg.DE(), mc.Reg.A)

	case 0x13: // INC DE
		mc.Reg.SetDE(mc.Reg.DE() + 1)

	case 0x14: // INC D
		mc.Reg.D = mc.inc8(mc.Reg.D)

	case 0x15: // DEC D
		mc.Reg.D = mc.dec8(mc.Reg.D)

	case 0x16: // LD D,d8
		v, err := mc.fetch8()
		if err != nil {
			return false, err
		}
		mc.Reg.D = v

	case 0x17: // RLA
		mc.Reg.A = mc.rl(mc.Reg.A)
		mc.Reg.setFlag(maskZ, false)

	case 0x18: // JR r8
		v, err := mc.fetch8()
		if err != nil {
			return false, err
		}
		mc.Reg.PC += uint16(int8(v))

	case 0x19: // ADD HL,DE
		mc.addHL(mc.Reg.DE())

	case 0x1a: // LD A,(DE)
		v, err := mc.mem.Read(mc.Reg.DE())
		if err != nil {
			return false, err
		}
		mc.Reg.A = v

	case 0x1b: // DEC DE
		mc.Reg.SetDE(mc.Reg.DE() - 1)

	case 0x1c: // INC E
		mc.Reg.E = mc.inc8(mc.Reg.E)

	case 0x1d: // DEC E
		mc.Reg.E = mc.dec8(mc.Reg.E)

	case 0x1e: // LD E,d8
		v, err := mc.fetch8()
		if err != nil {
			return false, err
		}
		mc.Reg.E = v

	case 0x1f: // RRA
		mc.Reg.A = mc.rr(mc.Reg.A)
		mc.Reg.setFlag(maskZ, false)

	case 0x20: // JR NZ,r8
		return mc.jumpRelative(!mc.Reg.Zero())

	case 0x21: // LD HL,d16
		v, err := mc.fetch16()
		if err != nil {
			return false, err
		}
		mc.Reg.SetHL(v)

	case 0x22: // LD (HL+),A
		if err := mc.mem.Write(mc.Reg.HL(), mc.Reg.A); err != nil {
			return false, err
		}
		mc.Reg.SetHL(mc.Reg.HL() + 1)

	case 0x23: // INC HL
		mc.Reg.SetHL(mc.Reg.HL() + 1)

	case 0x24: // INC H
		mc.Reg.H = mc.inc8(mc.Reg.H)

	case 0x25: // DEC H
		mc.Reg.H = mc.dec8(mc.Reg.H)

	case 0x26: // LD H,d8
		v, err := mc.fetch8()
		if err != nil {
			return false, err
		}
		mc.Reg.H = v

	case 0x27: // DAA
		mc.daa()

	case 0x28: // JR Z,r8
		return mc.jumpRelative(mc.Reg.Zero())

	case 0x29: // ADD HL,HL
		mc.addHL(mc.Reg.HL())

	case 0x2a: // LD A,(HL+)
		v, err := mc.mem.Read(mc.Reg.HL())
		if err != nil {
			return false, err
		}
		mc.Reg.A = v
		mc.Reg.SetHL(mc.Reg.HL() + 1)

	case 0x2b: // DEC HL
		mc.Reg.SetHL(mc.Reg.HL() - 1)

	case 0x2c: // INC L
		mc.Reg.L = mc.inc8(mc.Reg.L)

	case 0x2d: // DEC L
		mc.Reg.L = mc.dec8(mc.Reg.L)

	case 0x2e: // LD L,d8
		v, err := mc.fetch8()
		if err != nil {
			return false, err
		}
		mc.Reg.L = v

	case 0x2f: // CPL
		mc.Reg.A = ^mc.Reg.A
		mc.Reg.setFlag(maskN, true)
		mc.Reg.setFlag(maskH, true)

	case 0x30: // JR NC,r8
		return mc.jumpRelative(!mc.Reg.Carry())

	case 0x31: // LD SP,d16
		v, err := mc.fetch16()
		if err != nil {
			return false, err
		}
		mc.Reg.SP = v

	case 0x32: // LD (HL-),A
		if err := mc.mem.Write(mc.Reg.HL(), mc.Reg.A); err != nil {
			return false, err
		}
		mc.Reg.SetHL(mc.Reg.HL() - 1)

	case 0x33: // INC SP
		mc.Reg.SP++

	case 0x34: // INC (HL)
		v, err := mc.mem.Read(mc.Reg.HL())
		if err != nil {
			return false, err
		}
		return false, mc.mem.Write(mc.Reg.HL(), mc.inc8(v))

	case 0x35: // DEC (HL)
		v, err := mc.mem.Read(mc.Reg.HL())
		if err != nil {
			return false, err
		}
		return false, mc.mem.Write(mc.Reg.HL(), mc.dec8(v))

	case 0x36: // LD (HL),d8
		v, err := mc.fetch8()
		if err != nil {
			return false, err
		}
		return false, mc.mem.Write(mc.Reg.HL(), v)

	case 0x37: // SCF
		mc.Reg.setFlag(maskN, false)
		mc.Reg.setFlag(maskH, false)
		mc.Reg.setFlag(maskC, true)

	case 0x38: // JR C,r8
		return mc.jumpRelative(mc.Reg.Carry())

	case 0x39: // ADD HL,SP
		mc.addHL(mc.Reg.SP)

	case 0x3a: // LD A,(HL-)
		v, err := mc.mem.Read(mc.Reg.HL())
		if err != nil {
			return false, err
		}
		mc.Reg.A = v
		mc.Reg.SetHL(mc.Reg.HL() - 1)

	case 0x3b: // DEC SP
		mc.Reg.SP--

	case 0x3c: // INC A
		mc.Reg.A = mc.inc8(mc.Reg.A)

	case 0x3d: // DEC A
		mc.Reg.A = mc.dec8(mc.Reg.A)

	case 0x3e: // LD A,d8
		v, err := mc.fetch8()
		if err != nil {
			return false, err
		}
		mc.Reg.A = v

	case 0x3f: // CCF
		mc.Reg.setFlag(maskN, false)
		mc.Reg.setFlag(maskH, false)
		mc.Reg.setFlag(maskC, !mc.Reg.Carry())

	case 0x76: // HALT
		if !mc.ime && mc.ints.Pending() {
			mc.haltBug = true
		} else {
			mc.halted = true
		}

	case 0xc0: // RET NZ
		return mc.ret(!mc.Reg.Zero())

	case 0xc1: // POP BC
		v, err := mc.pop16()
		if err != nil {
			return false, err
		}
		mc.Reg.SetBC(v)

	case 0xc2: // JP NZ,a16
		return mc.jumpAbsolute(!mc.Reg.Zero())

	case 0xc3: // JP a16
		addr, err := mc.fetch16()
		if err != nil {
			return false, err
		}
		mc.Reg.PC = addr

	case 0xc4: // CALL NZ,a16
		return mc.call(!mc.Reg.Zero())

	case 0xc5: // PUSH BC
		return false, mc.push16(mc.Reg.BC())

	case 0xc6: // ADD A,d8
		v, err := mc.fetch8()
		if err != nil {
			return false, err
		}
		mc.add(v, false)

	case 0xc7, 0xcf, 0xd7, 0xdf, 0xe7, 0xef, 0xf7, 0xff: // RST
		if err := mc.push16(mc.Reg.PC); err != nil {
			return false, err
		}
		mc.Reg.PC = uint16(opcode & 0x38)

	case 0xc8: // RET Z
		return mc.ret(mc.Reg.Zero())

	case 0xc9: // RET
		addr, err := mc.pop16()
		if err != nil {
			return false, err
		}
		mc.Reg.PC = addr

	case 0xca: // JP Z,a16
		return mc.jumpAbsolute(mc.Reg.Zero())

	case 0xcc: // CALL Z,a16
		return mc.call(mc.Reg.Zero())

	case 0xcd: // CALL a16
		addr, err := mc.fetch16()
		if err != nil {
			return false, err
		}
		if err := mc.push16(mc.Reg.PC); err != nil {
			return false, err
		}
		mc.Reg.PC = addr

	case 0xce: // ADC A,d8
		v, err := mc.fetch8()
		if err != nil {
			return false, err
		}
		mc.add(v, true)

	case 0xd0: // RET NC
		return mc.ret(!mc.Reg.Carry())

	case 0xd1: // POP DE
		v, err := mc.pop16()
		if err != nil {
			return false, err
		}
		mc.Reg.SetDE(v)

	case 0xd2: // JP NC,a16
		return mc.jumpAbsolute(!mc.Reg.Carry())

	case 0xd4: // CALL NC,a16
		return mc.call(!mc.Reg.Carry())

	case 0xd5: // PUSH DE
		return false, mc.push16(mc.Reg.DE())

	case 0xd6: // SUB d8
		v, err := mc.fetch8()
		if err != nil {
			return false, err
		}
		mc.sub(v, false)

	case 0xd8: // RET C
		return mc.ret(mc.Reg.Carry())

	case 0xd9: // RETI
		addr, err := mc.pop16()
		if err != nil {
			return false, err
		}
		mc.Reg.PC = addr
		mc.ime = true

	case 0xda: // JP C,a16
		return mc.jumpAbsolute(mc.Reg.Carry())

	case 0xdc: // CALL C,a16
		return mc.call(mc.Reg.Carry())

	case 0xde: // SBC A,d8
		v, err := mc.fetch8()
		if err != nil {
			return false, err
		}
		mc.sub(v, true)

	case 0xe0: // LDH (a8),A
		v, err := mc.fetch8()
		if err != nil {
			return false, err
		}
		return false, mc.mem.Write(0xff00+uint16(v), mc.Reg.A)

	case 0xe1: // POP HL
		v, err := mc.pop16()
		if err != nil {
			return false, err
		}
		mc.Reg.SetHL(v)

	case 0xe2: // LD (C),A
		return false, mc.mem.Write(0xff00+uint16(mc.Reg.C), mc.Reg.A)

	case 0xe5: // PUSH HL
		return false, mc.push16(mc.Reg.HL())

	case 0xe6: // AND d8
		v, err := mc.fetch8()
		if err != nil {
			return false, err
		}
		mc.and(v)

	case 0xe8: // ADD SP,r8
		v, err := mc.fetch8()
		if err != nil {
			return false, err
		}
		mc.Reg.SP = mc.addSP(v)

	case 0xe9: // JP (HL)
		mc.Reg.PC = mc.Reg.HL()

	case 0xea: // LD (a16),A
		addr, err := mc.fetch16()
		if err != nil {
			return false, err
		}
		return false, mc.mem.Write(addr, mc.Reg.A)

	case 0xee: // XOR d8
		v, err := mc.fetch8()
		if err != nil {
			return false, err
		}
		mc.xor(v)

	case 0xf0: // LDH A,(a8)
		v, err := mc.fetch8()
		if err != nil {
			return false, err
		}
		r, err := mc.mem.Read(0xff00 + uint16(v))
		if err != nil {
			return false, err
		}
		mc.Reg.A = r

	case 0xf1: // POP AF
		v, err := mc.pop16()
		if err != nil {
			return false, err
		}
		mc.Reg.SetAF(v)

	case 0xf2: // LD A,(C)
		v, err := mc.mem.Read(0xff00 + uint16(mc.Reg.C))
		if err != nil {
			return false, err
		}
		mc.Reg.A = v

	case 0xf3: // DI
		// takes effect immediately, cancelling any pending enable
		mc.ime = false
		mc.imeCountdown = 0

	case 0xf5: // PUSH AF
		return false, mc.push16(mc.Reg.AF())

	case 0xf6: // OR d8
		v, err := mc.fetch8()
		if err != nil {
			return false, err
		}
		mc.or(v)

	case 0xf8: // LD HL,SP+r8
		v, err := mc.fetch8()
		if err != nil {
			return false, err
		}
		mc.Reg.SetHL(mc.addSP(v))

	case 0xf9: // LD SP,HL
		mc.Reg.SP = mc.Reg.HL()

	case 0xfa: // LD A,(a16)
		addr, err := mc.fetch16()
		if err != nil {
			return false, err
		}
		r, err := mc.mem.Read(addr)
		if err != nil {
			return false, err
		}
		mc.Reg.A = r

	case 0xfb: // EI
		// delayed until after the next instruction
		if !mc.ime && mc.imeCountdown == 0 {
			mc.imeCountdown = 2
		}

	case 0xfe: // CP d8
		v, err := mc.fetch8()
		if err != nil {
			return false, err
		}
		mc.cp(v)
	}

	return false, nil
}

// accumulatorOp applies one of the eight arithmetic operations selected by
// bits three to five of the opcode.
func (mc *CPU) accumulatorOp(op uint8, v uint8) {
	switch op {
	case 0:
		mc.add(v, false)
	case 1:
		mc.add(v, true)
	case 2:
		mc.sub(v, false)
	case 3:
		mc.sub(v, true)
	case 4:
		mc.and(v)
	case 5:
		mc.xor(v)
	case 6:
		mc.or(v)
	case 7:
		mc.cp(v)
	}
}

func (mc *CPU) jumpRelative(condition bool) (bool, error) {
	v, err := mc.fetch8()
	if err != nil {
		return false, err
	}
	if !condition {
		return false, nil
	}
	mc.Reg.PC += uint16(int8(v))
	return true, nil
}

func (mc *CPU) jumpAbsolute(condition bool) (bool, error) {
	addr, err := mc.fetch16()
	if err != nil {
		return false, err
	}
	if !condition {
		return false, nil
	}
	mc.Reg.PC = addr
	return true, nil
}

func (mc *CPU) call(condition bool) (bool, error) {
	addr, err := mc.fetch16()
	if err != nil {
		return false, err
	}
	if !condition {
		return false, nil
	}
	if err := mc.push16(mc.Reg.PC); err != nil {
		return false, err
	}
	mc.Reg.PC = addr
	return true, nil
}

func (mc *CPU) ret(condition bool) (bool, error) {
	if !condition {
		return false, nil
	}
	addr, err := mc.pop16()
	if err != nil {
		return false, err
	}
	mc.Reg.PC = addr
	return true, nil
}

// executePrefixed executes the 0xcb table. The table is entirely regular:
// two bits of group, three bits of sub-operation, three bits of operand.
func (mc *CPU) executePrefixed(opcode uint8) error {
	reg := opcode & 0x07
	n := (opcode >> 3) & 0x07

	v, err := mc.getReg(reg)
	if err != nil {
		return err
	}

	switch opcode >> 6 {
	case 0:
		switch n {
		case 0:
			v = mc.rlc(v)
		case 1:
			v = mc.rrc(v)
		case 2:
			v = mc.rl(v)
		case 3:
			v = mc.rr(v)
		case 4:
			v = mc.sla(v)
		case 5:
			v = mc.sra(v)
		case 6:
			v = mc.swap(v)
		case 7:
			v = mc.srl(v)
		}
		return mc.setReg(reg, v)

	case 1:
		mc.bit(n, v)
		return nil

	case 2:
		return mc.setReg(reg, v&^(0x01<<n))
	}

	return mc.setReg(reg, v|0x01<<n)
}
