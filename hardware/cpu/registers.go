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

package cpu

import (
	"fmt"
	"strings"
)

// the flag bits of the F register. the low nibble of F always reads as
// zero.
const (
	maskZ = uint8(0x80)
	maskN = uint8(0x40)
	maskH = uint8(0x20)
	maskC = uint8(0x10)
)

// Registers is the register file of the CPU. The eight 8-bit registers pair
// up into the four 16-bit registers AF, BC, DE and HL.
type Registers struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8
	PC   uint16
	SP   uint16
}

func (r Registers) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("A=%02x F=%02x B=%02x C=%02x D=%02x E=%02x H=%02x L=%02x\n",
		r.A, r.F, r.B, r.C, r.D, r.E, r.H, r.L))
	s.WriteString(fmt.Sprintf("PC=%04x SP=%04x ", r.PC, r.SP))
	s.WriteString(fmt.Sprintf("[%c%c%c%c]",
		flagRune(r.F&maskZ, 'z'),
		flagRune(r.F&maskN, 'n'),
		flagRune(r.F&maskH, 'h'),
		flagRune(r.F&maskC, 'c'),
	))
	return s.String()
}

func flagRune(set uint8, r rune) rune {
	if set != 0x00 {
		return r - 0x20
	}
	return r
}

// AF returns the combined value of the A and F registers.
func (r *Registers) AF() uint16 {
	return uint16(r.A)<<8 | uint16(r.F)
}

// SetAF sets the A and F registers. Bits in the low nibble of F do not
// exist and cannot be set.
func (r *Registers) SetAF(v uint16) {
	r.A = uint8(v >> 8)
	r.F = uint8(v) & 0xf0
}

// BC returns the combined value of the B and C registers.
func (r *Registers) BC() uint16 {
	return uint16(r.B)<<8 | uint16(r.C)
}

// SetBC sets the B and C registers.
func (r *Registers) SetBC(v uint16) {
	r.B = uint8(v >> 8)
	r.C = uint8(v)
}

// DE returns the combined value of the D and E registers.
func (r *Registers) DE() uint16 {
	return uint16(r.D)<<8 | uint16(r.E)
}

// SetDE sets the D and E registers.
func (r *Registers) SetDE(v uint16) {
	r.D = uint8(v >> 8)
	r.E = uint8(v)
}

// HL returns the combined value of the H and L registers.
func (r *Registers) HL() uint16 {
	return uint16(r.H)<<8 | uint16(r.L)
}

// SetHL sets the H and L registers.
func (r *Registers) SetHL(v uint16) {
	r.H = uint8(v >> 8)
	r.L = uint8(v)
}

// Zero returns the state of the zero flag.
func (r *Registers) Zero() bool {
	return r.F&maskZ == maskZ
}

// Subtract returns the state of the subtract flag.
func (r *Registers) Subtract() bool {
	return r.F&maskN == maskN
}

// HalfCarry returns the state of the half carry flag.
func (r *Registers) HalfCarry() bool {
	return r.F&maskH == maskH
}

// Carry returns the state of the carry flag.
func (r *Registers) Carry() bool {
	return r.F&maskC == maskC
}

// setFlag sets or clears a single flag, leaving the others alone.
func (r *Registers) setFlag(mask uint8, on bool) {
	if on {
		r.F |= mask
	} else {
		r.F &^= mask
	}
}

// setFlags sets all four flags in one go.
func (r *Registers) setFlags(z, n, h, c bool) {
	r.F = 0x00
	if z {
		r.F |= maskZ
	}
	if n {
		r.F |= maskN
	}
	if h {
		r.F |= maskH
	}
	if c {
		r.F |= maskC
	}
}
