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
	"encoding/binary"
	"io"
)

// Snapshot the state of the CPU.
func (mc *CPU) Snapshot() *CPU {
	n := *mc
	return &n
}

// Plumb a previously snapshotted CPU state back in. The memory bus and the
// interrupt controller of the receiving CPU are kept.
func (mc *CPU) Plumb(snapshot *CPU) {
	mc.Reg = snapshot.Reg
	mc.ime = snapshot.ime
	mc.imeCountdown = snapshot.imeCountdown
	mc.halted = snapshot.halted
	mc.haltBug = snapshot.haltBug
	mc.LastResult = snapshot.LastResult
}

type serialisedCPU struct {
	A, F, B, C, D, E, H, L uint8
	PC, SP                 uint16
	IME                    uint8
	IMECountdown           uint8
	Halted                 uint8
	HaltBug                uint8
}

// Serialise the CPU state.
func (mc *CPU) Serialise(w io.Writer) error {
	s := serialisedCPU{
		A: mc.Reg.A, F: mc.Reg.F,
		B: mc.Reg.B, C: mc.Reg.C,
		D: mc.Reg.D, E: mc.Reg.E,
		H: mc.Reg.H, L: mc.Reg.L,
		PC: mc.Reg.PC, SP: mc.Reg.SP,
		IMECountdown: uint8(mc.imeCountdown),
	}
	if mc.ime {
		s.IME = 0x01
	}
	if mc.halted {
		s.Halted = 0x01
	}
	if mc.haltBug {
		s.HaltBug = 0x01
	}
	return binary.Write(w, binary.LittleEndian, s)
}

// Deserialise the CPU state.
func (mc *CPU) Deserialise(r io.Reader) error {
	var s serialisedCPU
	if err := binary.Read(r, binary.LittleEndian, &s); err != nil {
		return err
	}
	mc.Reg = Registers{
		A: s.A, F: s.F & 0xf0,
		B: s.B, C: s.C,
		D: s.D, E: s.E,
		H: s.H, L: s.L,
		PC: s.PC, SP: s.SP,
	}
	mc.ime = s.IME != 0x00
	mc.imeCountdown = int(s.IMECountdown)
	mc.halted = s.Halted != 0x00
	mc.haltBug = s.HaltBug != 0x00
	mc.LastResult = Result{}
	return nil
}
