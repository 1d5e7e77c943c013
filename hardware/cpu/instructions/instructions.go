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

// Package instructions defines the instruction set of the CPU as data: one
// flat table for the base opcodes and one for the 0xcb prefixed opcodes,
// each indexed directly by the opcode byte. The CPU package uses the tables
// for cycle counting; the debugger uses them for disassembly.
package instructions

// Definition details a single opcode.
type Definition struct {
	OpCode   uint8
	Mnemonic string

	// the length of the instruction in bytes, including the opcode itself.
	// prefixed opcodes count the 0xcb byte
	Bytes int

	// the number of cycles consumed by the instruction. for conditional
	// instructions this is the count when the branch is not taken
	Cycles int

	// the additional cycles consumed by a conditional instruction when the
	// branch is taken. zero for everything else
	BranchCycles int

	// prefixed opcode tables are selected by the 0xcb byte
	Prefixed bool
}

// IsValid returns false for the eleven opcodes that do not exist in the
// instruction set.
func (def Definition) IsValid() bool {
	return def.Mnemonic != ""
}

// Definitions is the table of base opcodes, indexed by opcode byte. Entries
// for opcodes that do not exist have an empty mnemonic.
var Definitions [256]Definition

// DefinitionsCB is the table of 0xcb prefixed opcodes, indexed by the byte
// following the prefix.
var DefinitionsCB [256]Definition

// the operand selected by the low three bits of the register-regular
// opcodes (0x40 to 0xbf in the base table, the entire prefixed table).
var regNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// quarter of the base table covering opcodes 0x00 to 0x3f plus the
// quarter covering 0xc0 to 0xff. the register-regular middle of the table
// is filled in algorithmically by the init() function.
var sparseDefinitions = map[uint8]Definition{
	0x00: {Mnemonic: "NOP", Bytes: 1, Cycles: 4},
	0x01: {Mnemonic: "LD BC,d16", Bytes: 3, Cycles: 12},
	0x02: {Mnemonic: "LD (BC),A", Bytes: 1, Cycles: 8},
	0x03: {Mnemonic: "INC BC", Bytes: 1, Cycles: 8},
	0x04: {Mnemonic: "INC B", Bytes: 1, Cycles: 4},
	0x05: {Mnemonic: "DEC B", Bytes: 1, Cycles: 4},
	0x06: {Mnemonic: "LD B,d8", Bytes: 2, Cycles: 8},
	0x07: {Mnemonic: "RLCA", Bytes: 1, Cycles: 4},
	0x08: {Mnemonic: "LD (a16),SP", Bytes: 3, Cycles: 20},
	0x09: {Mnemonic: "ADD HL,BC", Bytes: 1, Cycles: 8},
	0x0a: {Mnemonic: "LD A,(BC)", Bytes: 1, Cycles: 8},
	0x0b: {Mnemonic: "DEC BC", Bytes: 1, Cycles: 8},
	0x0c: {Mnemonic: "INC C", Bytes: 1, Cycles: 4},
	0x0d: {Mnemonic: "DEC C", Bytes: 1, Cycles: 4},
	0x0e: {Mnemonic: "LD C,d8", Bytes: 2, Cycles: 8},
	0x0f: {Mnemonic: "RRCA", Bytes: 1, Cycles: 4},

	0x10: {Mnemonic: "STOP", Bytes: 2, Cycles: 4},
	0x11: {Mnemonic: "LD DE,d16", Bytes: 3, Cycles: 12},
	0x12: {Mnemonic: "LD (DE),A", Bytes: 1, Cycles: 8},
	0x13: {Mnemonic: "INC DE", Bytes: 1, Cycles: 8},
	0x14: {Mnemonic: "INC D", Bytes: 1, Cycles: 4},
	0x15: {Mnemonic: "DEC D", Bytes: 1, Cycles: 4},
	0x16: {Mnemonic: "LD D,d8", Bytes: 2, Cycles: 8},
	0x17: {Mnemonic: "RLA", Bytes: 1, Cycles: 4},
	0x18: {Mnemonic: "JR r8", Bytes: 2, Cycles: 12},
	0x19: {Mnemonic: "ADD HL,DE", Bytes: 1, Cycles: 8},
	0x1a: {Mnemonic: "LD A,(DE)", Bytes: 1, Cycles: 8},
	0x1b: {Mnemonic: "DEC DE", Bytes: 1, Cycles: 8},
	0x1c: {Mnemonic: "INC E", Bytes: 1, Cycles: 4},
	0x1d: {Mnemonic: "DEC E", Bytes: 1, Cycles: 4},
	0x1e: {Mnemonic: "LD E,d8", Bytes: 2, Cycles: 8},
	0x1f: {Mnemonic: "RRA", Bytes: 1, Cycles: 4},

	0x20: {Mnemonic: "JR NZ,r8", Bytes: 2, Cycles: 8, BranchCycles: 4},
	0x21: {Mnemonic: "LD HL,d16", Bytes: 3, Cycles: 12},
	0x22: {Mnemonic: "LD (HL+),A", Bytes: 1, Cycles: 8},
	0x23: {Mnemonic: "INC HL", Bytes: 1, Cycles: 8},
	0x24: {Mnemonic: "INC H", Bytes: 1, Cycles: 4},
	0x25: {Mnemonic: "DEC H", Bytes: 1, Cycles: 4},
	0x26: {Mnemonic: "LD H,d8", Bytes: 2, Cycles: 8},
	0x27: {Mnemonic: "DAA", Bytes: 1, Cycles: 4},
	0x28: {Mnemonic: "JR Z,r8", Bytes: 2, Cycles: 8, BranchCycles: 4},
	0x29: {Mnemonic: "ADD HL,HL", Bytes: 1, Cycles: 8},
	0x2a: {Mnemonic: "LD A,(HL+)", Bytes: 1, Cycles: 8},
	0x2b: {Mnemonic: "DEC HL", Bytes: 1, Cycles: 8},
	0x2c: {Mnemonic: "INC L", Bytes: 1, Cycles: 4},
	0x2d: {Mnemonic: "DEC L", Bytes: 1, Cycles: 4},
	0x2e: {Mnemonic: "LD L,d8", Bytes: 2, Cycles: 8},
	0x2f: {Mnemonic: "CPL", Bytes: 1, Cycles: 4},

	0x30: {Mnemonic: "JR NC,r8", Bytes: 2, Cycles: 8, BranchCycles: 4},
	0x31: {Mnemonic: "LD SP,d16", Bytes: 3, Cycles: 12},
	0x32: {Mnemonic: "LD (HL-),A", Bytes: 1, Cycles: 8},
	0x33: {Mnemonic: "INC SP", Bytes: 1, Cycles: 8},
	0x34: {Mnemonic: "INC (HL)", Bytes: 1, Cycles: 12},
	0x35: {Mnemonic: "DEC (HL)", Bytes: 1, Cycles: 12},
	0x36: {Mnemonic: "LD (HL),d8", Bytes: 2, Cycles: 12},
	0x37: {Mnemonic: "SCF", Bytes: 1, Cycles: 4},
	0x38: {Mnemonic: "JR C,r8", Bytes: 2, Cycles: 8, BranchCycles: 4},
	0x39: {Mnemonic: "ADD HL,SP", Bytes: 1, Cycles: 8},
	0x3a: {Mnemonic: "LD A,(HL-)", Bytes: 1, Cycles: 8},
	0x3b: {Mnemonic: "DEC SP", Bytes: 1, Cycles: 8},
	0x3c: {Mnemonic: "INC A", Bytes: 1, Cycles: 4},
	0x3d: {Mnemonic: "DEC A", Bytes: 1, Cycles: 4},
	0x3e: {Mnemonic: "LD A,d8", Bytes: 2, Cycles: 8},
	0x3f: {Mnemonic: "CCF", Bytes: 1, Cycles: 4},

	0xc0: {Mnemonic: "RET NZ", Bytes: 1, Cycles: 8, BranchCycles: 12},
	0xc1: {Mnemonic: "POP BC", Bytes: 1, Cycles: 12},
	0xc2: {Mnemonic: "JP NZ,a16", Bytes: 3, Cycles: 12, BranchCycles: 4},
	0xc3: {Mnemonic: "JP a16", Bytes: 3, Cycles: 16},
	0xc4: {Mnemonic: "CALL NZ,a16", Bytes: 3, Cycles: 12, BranchCycles: 12},
	0xc5: {Mnemonic: "PUSH BC", Bytes: 1, Cycles: 16},
	0xc6: {Mnemonic: "ADD A,d8", Bytes: 2, Cycles: 8},
	0xc7: {Mnemonic: "RST 00H", Bytes: 1, Cycles: 16},
	0xc8: {Mnemonic: "RET Z", Bytes: 1, Cycles: 8, BranchCycles: 12},
	0xc9: {Mnemonic: "RET", Bytes: 1, Cycles: 16},
	0xca: {Mnemonic: "JP Z,a16", Bytes: 3, Cycles: 12, BranchCycles: 4},
	0xcb: {Mnemonic: "PREFIX CB", Bytes: 1, Cycles: 0},
	0xcc: {Mnemonic: "CALL Z,a16", Bytes: 3, Cycles: 12, BranchCycles: 12},
	0xcd: {Mnemonic: "CALL a16", Bytes: 3, Cycles: 24},
	0xce: {Mnemonic: "ADC A,d8", Bytes: 2, Cycles: 8},
	0xcf: {Mnemonic: "RST 08H", Bytes: 1, Cycles: 16},

	0xd0: {Mnemonic: "RET NC", Bytes: 1, Cycles: 8, BranchCycles: 12},
	0xd1: {Mnemonic: "POP DE", Bytes: 1, Cycles: 12},
	0xd2: {Mnemonic: "JP NC,a16", Bytes: 3, Cycles: 12, BranchCycles: 4},
	0xd4: {Mnemonic: "CALL NC,a16", Bytes: 3, Cycles: 12, BranchCycles: 12},
	0xd5: {Mnemonic: "PUSH DE", Bytes: 1, Cycles: 16},
	0xd6: {Mnemonic: "SUB d8", Bytes: 2, Cycles: 8},
	0xd7: {Mnemonic: "RST 10H", Bytes: 1, Cycles: 16},
	0xd8: {Mnemonic: "RET C", Bytes: 1, Cycles: 8, BranchCycles: 12},
	0xd9: {Mnemonic: "RETI", Bytes: 1, Cycles: 16},
	0xda: {Mnemonic: "JP C,a16", Bytes: 3, Cycles: 12, BranchCycles: 4},
	0xdc: {Mnemonic: "CALL C,a16", Bytes: 3, Cycles: 12, BranchCycles: 12},
	0xde: {Mnemonic: "SBC A,d8", Bytes: 2, Cycles: 8},
	0xdf: {Mnemonic: "RST 18H", Bytes: 1, Cycles: 16},

	0xe0: {Mnemonic: "LDH (a8),A", Bytes: 2, Cycles: 12},
	0xe1: {Mnemonic: "POP HL", Bytes: 1, Cycles: 12},
	0xe2: {Mnemonic: "LD (C),A", Bytes: 1, Cycles: 8},
	0xe5: {Mnemonic: "PUSH HL", Bytes: 1, Cycles: 16},
	0xe6: {Mnemonic: "AND d8", Bytes: 2, Cycles: 8},
	0xe7: {Mnemonic: "RST 20H", Bytes: 1, Cycles: 16},
	0xe8: {Mnemonic: "ADD SP,r8", Bytes: 2, Cycles: 16},
	0xe9: {Mnemonic: "JP (HL)", Bytes: 1, Cycles: 4},
	0xea: {Mnemonic: "LD (a16),A", Bytes: 3, Cycles: 16},
	0xee: {Mnemonic: "XOR d8", Bytes: 2, Cycles: 8},
	0xef: {Mnemonic: "RST 28H", Bytes: 1, Cycles: 16},

	0xf0: {Mnemonic: "LDH A,(a8)", Bytes: 2, Cycles: 12},
	0xf1: {Mnemonic: "POP AF", Bytes: 1, Cycles: 12},
	0xf2: {Mnemonic: "LD A,(C)", Bytes: 1, Cycles: 8},
	0xf3: {Mnemonic: "DI", Bytes: 1, Cycles: 4},
	0xf5: {Mnemonic: "PUSH AF", Bytes: 1, Cycles: 16},
	0xf6: {Mnemonic: "OR d8", Bytes: 2, Cycles: 8},
	0xf7: {Mnemonic: "RST 30H", Bytes: 1, Cycles: 16},
	0xf8: {Mnemonic: "LD HL,SP+r8", Bytes: 2, Cycles: 12},
	0xf9: {Mnemonic: "LD SP,HL", Bytes: 1, Cycles: 8},
	0xfa: {Mnemonic: "LD A,(a16)", Bytes: 3, Cycles: 16},
	0xfb: {Mnemonic: "EI", Bytes: 1, Cycles: 4},
	0xfe: {Mnemonic: "CP d8", Bytes: 2, Cycles: 8},
	0xff: {Mnemonic: "RST 38H", Bytes: 1, Cycles: 16},
}

func init() {
	for op, def := range sparseDefinitions {
		def.OpCode = op
		Definitions[op] = def
	}

	// the register-regular middle of the base table. 0x40 to 0x7f are the
	// register to register loads (0x76 would be LD (HL),(HL) and is HALT
	// instead); 0x80 to 0xbf are the accumulator arithmetic group
	aluNames := [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}

	for op := 0x40; op <= 0xbf; op++ {
		src := regNames[op&0x07]
		cycles := 4
		if op&0x07 == 0x06 {
			cycles = 8
		}

		var mnemonic string
		if op <= 0x7f {
			if op == 0x76 {
				mnemonic = "HALT"
			} else {
				dst := regNames[(op>>3)&0x07]
				mnemonic = "LD " + dst + "," + src
				if dst == "(HL)" {
					cycles = 8
				}
			}
		} else {
			mnemonic = aluNames[(op>>3)&0x07] + src
		}

		Definitions[op] = Definition{
			OpCode:   uint8(op),
			Mnemonic: mnemonic,
			Bytes:    1,
			Cycles:   cycles,
		}
	}

	// the prefixed table is entirely regular
	rotNames := [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

	for op := 0x00; op <= 0xff; op++ {
		reg := regNames[op&0x07]
		n := (op >> 3) & 0x07

		var mnemonic string
		cycles := 8
		switch op >> 6 {
		case 0:
			mnemonic = rotNames[n] + " " + reg
			if op&0x07 == 0x06 {
				cycles = 16
			}
		case 1:
			mnemonic = "BIT " + string(rune('0'+n)) + "," + reg
			if op&0x07 == 0x06 {
				cycles = 12
			}
		case 2:
			mnemonic = "RES " + string(rune('0'+n)) + "," + reg
			if op&0x07 == 0x06 {
				cycles = 16
			}
		case 3:
			mnemonic = "SET " + string(rune('0'+n)) + "," + reg
			if op&0x07 == 0x06 {
				cycles = 16
			}
		}

		DefinitionsCB[op] = Definition{
			OpCode:   uint8(op),
			Mnemonic: mnemonic,
			Bytes:    2,
			Cycles:   cycles,
			Prefixed: true,
		}
	}
}
