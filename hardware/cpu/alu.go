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

// the arithmetic and logic helpers. each operates on the accumulator (or
// returns the result for the caller to place) and leaves the flags in the
// state the hardware would.

func (mc *CPU) add(v uint8, withCarry bool) {
	var c uint8
	if withCarry && mc.Reg.Carry() {
		c = 0x01
	}
	a := mc.Reg.A
	r := a + v + c
	mc.Reg.setFlags(
		r == 0x00,
		false,
		(a&0x0f)+(v&0x0f)+c > 0x0f,
		uint16(a)+uint16(v)+uint16(c) > 0xff,
	)
	mc.Reg.A = r
}

func (mc *CPU) sub(v uint8, withCarry bool) {
	var c uint8
	if withCarry && mc.Reg.Carry() {
		c = 0x01
	}
	a := mc.Reg.A
	r := a - v - c
	mc.Reg.setFlags(
		r == 0x00,
		true,
		a&0x0f < (v&0x0f)+c,
		uint16(a) < uint16(v)+uint16(c),
	)
	mc.Reg.A = r
}

func (mc *CPU) and(v uint8) {
	mc.Reg.A &= v
	mc.Reg.setFlags(mc.Reg.A == 0x00, false, true, false)
}

func (mc *CPU) xor(v uint8) {
	mc.Reg.A ^= v
	mc.Reg.setFlags(mc.Reg.A == 0x00, false, false, false)
}

func (mc *CPU) or(v uint8) {
	mc.Reg.A |= v
	mc.Reg.setFlags(mc.Reg.A == 0x00, false, false, false)
}

// cp is a subtract that throws away the result, keeping only the flags.
func (mc *CPU) cp(v uint8) {
	a := mc.Reg.A
	mc.sub(v, false)
	mc.Reg.A = a
}

// inc8 and dec8 preserve the carry flag.

func (mc *CPU) inc8(v uint8) uint8 {
	r := v + 1
	mc.Reg.setFlag(maskZ, r == 0x00)
	mc.Reg.setFlag(maskN, false)
	mc.Reg.setFlag(maskH, v&0x0f == 0x0f)
	return r
}

func (mc *CPU) dec8(v uint8) uint8 {
	r := v - 1
	mc.Reg.setFlag(maskZ, r == 0x00)
	mc.Reg.setFlag(maskN, true)
	mc.Reg.setFlag(maskH, v&0x0f == 0x00)
	return r
}

// addHL preserves the zero flag.
func (mc *CPU) addHL(v uint16) {
	hl := mc.Reg.HL()
	mc.Reg.setFlag(maskN, false)
	mc.Reg.setFlag(maskH, hl&0x0fff+v&0x0fff > 0x0fff)
	mc.Reg.setFlag(maskC, uint32(hl)+uint32(v) > 0xffff)
	mc.Reg.SetHL(hl + v)
}

// addSP implements the peculiar flag behaviour shared by ADD SP,r8 and
// LD HL,SP+r8: the relative value is signed but the half carry and carry
// flags reflect unsigned addition of the low byte.
func (mc *CPU) addSP(rel uint8) uint16 {
	sp := mc.Reg.SP
	mc.Reg.setFlags(
		false,
		false,
		sp&0x000f+uint16(rel)&0x000f > 0x000f,
		sp&0x00ff+uint16(rel) > 0x00ff,
	)
	return sp + uint16(int8(rel))
}

// daa adjusts the accumulator after a sequence of BCD arithmetic.
func (mc *CPU) daa() {
	a := mc.Reg.A
	carry := mc.Reg.Carry()

	var adjust uint8
	if mc.Reg.HalfCarry() || (!mc.Reg.Subtract() && a&0x0f > 0x09) {
		adjust |= 0x06
	}
	if carry || (!mc.Reg.Subtract() && a > 0x99) {
		adjust |= 0x60
		carry = true
	}

	if mc.Reg.Subtract() {
		a -= adjust
	} else {
		a += adjust
	}

	mc.Reg.setFlags(a == 0x00, mc.Reg.Subtract(), false, carry)
	mc.Reg.A = a
}

// the rotate and shift helpers set the zero flag from the result, which is
// what the prefixed forms require. the accumulator forms (RLCA et al) clear
// the zero flag after calling.

func (mc *CPU) rlc(v uint8) uint8 {
	r := v<<1 | v>>7
	mc.Reg.setFlags(r == 0x00, false, false, v&0x80 == 0x80)
	return r
}

func (mc *CPU) rrc(v uint8) uint8 {
	r := v>>1 | v<<7
	mc.Reg.setFlags(r == 0x00, false, false, v&0x01 == 0x01)
	return r
}

func (mc *CPU) rl(v uint8) uint8 {
	r := v << 1
	if mc.Reg.Carry() {
		r |= 0x01
	}
	mc.Reg.setFlags(r == 0x00, false, false, v&0x80 == 0x80)
	return r
}

func (mc *CPU) rr(v uint8) uint8 {
	r := v >> 1
	if mc.Reg.Carry() {
		r |= 0x80
	}
	mc.Reg.setFlags(r == 0x00, false, false, v&0x01 == 0x01)
	return r
}

func (mc *CPU) sla(v uint8) uint8 {
	r := v << 1
	mc.Reg.setFlags(r == 0x00, false, false, v&0x80 == 0x80)
	return r
}

// sra shifts right with the sign bit sticking.
func (mc *CPU) sra(v uint8) uint8 {
	r := v>>1 | v&0x80
	mc.Reg.setFlags(r == 0x00, false, false, v&0x01 == 0x01)
	return r
}

func (mc *CPU) srl(v uint8) uint8 {
	r := v >> 1
	mc.Reg.setFlags(r == 0x00, false, false, v&0x01 == 0x01)
	return r
}

func (mc *CPU) swap(v uint8) uint8 {
	r := v<<4 | v>>4
	mc.Reg.setFlags(r == 0x00, false, false, false)
	return r
}

// bit preserves the carry flag.
func (mc *CPU) bit(n uint8, v uint8) {
	mc.Reg.setFlag(maskZ, v&(0x01<<n) == 0x00)
	mc.Reg.setFlag(maskN, false)
	mc.Reg.setFlag(maskH, true)
}
