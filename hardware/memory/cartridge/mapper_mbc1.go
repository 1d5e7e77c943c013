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

package cartridge

import (
	"encoding/binary"
	"io"

	"dmgopher/curated"
)

const mbc1BankSize = 0x4000

// mbc1 is the most common of the bank switched mappers. ROM up to 2MB in
// 16k banks; RAM up to 32k in 8k banks.
//
// The 5-bit bank register covers banks 1 to 31; the 2-bit second register
// extends the ROM bank number or selects the RAM bank, depending on the
// mode register. A value of zero in the 5-bit register always selects bank
// one, which means banks 0x20, 0x40 and 0x60 can never appear in the
// switchable window.
type mbc1 struct {
	rom []uint8
	ram []uint8

	// mapper registers
	ramEnable bool
	bankReg   uint8 // 5 bits
	bank2Reg  uint8 // 2 bits
	mode      bool  // false: simple banking, true: RAM banking
}

func newMBC1(data []byte, ramSize int) (cartMapper, error) {
	if len(data)%mbc1BankSize != 0 {
		return nil, curated.Errorf(InvalidROM, "wrong number of bytes in the cartridge data")
	}

	cart := &mbc1{
		rom: make([]uint8, len(data)),
		ram: make([]uint8, ramSize),
	}
	copy(cart.rom, data)
	cart.Initialise()

	return cart, nil
}

func (cart *mbc1) ID() string {
	return "MBC1"
}

func (cart *mbc1) Initialise() {
	cart.ramEnable = false
	cart.bankReg = 0x01
	cart.bank2Reg = 0x00
	cart.mode = false
}

// the ROM bank appearing in the switchable window (0x4000 to 0x7fff).
func (cart *mbc1) romBank() int {
	return (int(cart.bank2Reg)<<5 | int(cart.bankReg)) % cart.NumBanks()
}

// the ROM bank appearing in the fixed window (0x0000 to 0x3fff). only ever
// non-zero in RAM banking mode on large cartridges.
func (cart *mbc1) romBankFixed() int {
	if cart.mode {
		return (int(cart.bank2Reg) << 5) % cart.NumBanks()
	}
	return 0
}

func (cart *mbc1) ramBank() int {
	if cart.mode {
		return int(cart.bank2Reg)
	}
	return 0
}

func (cart *mbc1) Read(addr uint16) uint8 {
	if addr < 0x4000 {
		return cart.rom[cart.romBankFixed()*mbc1BankSize+int(addr)]
	}
	return cart.rom[cart.romBank()*mbc1BankSize+int(addr-0x4000)]
}

func (cart *mbc1) Write(addr uint16, data uint8) {
	switch addr & 0x6000 {
	case 0x0000:
		cart.ramEnable = data&0x0f == 0x0a
	case 0x2000:
		cart.bankReg = data & 0x1f
		if cart.bankReg == 0x00 {
			cart.bankReg = 0x01
		}
	case 0x4000:
		cart.bank2Reg = data & 0x03
	case 0x6000:
		cart.mode = data&0x01 == 0x01
	}
}

func (cart *mbc1) ReadRAM(addr uint16) uint8 {
	if !cart.ramEnable {
		return 0xff
	}
	idx := cart.ramBank()*0x2000 + int(addr)
	if idx >= len(cart.ram) {
		return 0xff
	}
	return cart.ram[idx]
}

func (cart *mbc1) WriteRAM(addr uint16, data uint8) {
	if !cart.ramEnable {
		return
	}
	idx := cart.ramBank()*0x2000 + int(addr)
	if idx < len(cart.ram) {
		cart.ram[idx] = data
	}
}

func (cart *mbc1) NumBanks() int {
	return len(cart.rom) / mbc1BankSize
}

func (cart *mbc1) GetBank() int {
	return cart.romBank()
}

func (cart *mbc1) RAM() []uint8 {
	return cart.ram
}

func (cart *mbc1) Snapshot() cartMapper {
	n := *cart
	n.ram = make([]uint8, len(cart.ram))
	copy(n.ram, cart.ram)
	return &n
}

func (cart *mbc1) Serialise(w io.Writer) error {
	regs := []uint8{cart.bankReg, cart.bank2Reg, boolByte(cart.ramEnable), boolByte(cart.mode)}
	if err := binary.Write(w, binary.LittleEndian, regs); err != nil {
		return err
	}
	_, err := w.Write(cart.ram)
	return err
}

func (cart *mbc1) Deserialise(r io.Reader) error {
	regs := make([]uint8, 4)
	if err := binary.Read(r, binary.LittleEndian, regs); err != nil {
		return err
	}
	cart.bankReg = regs[0] & 0x1f
	if cart.bankReg == 0x00 {
		cart.bankReg = 0x01
	}
	cart.bank2Reg = regs[1] & 0x03
	cart.ramEnable = regs[2] != 0x00
	cart.mode = regs[3] != 0x00
	_, err := io.ReadFull(r, cart.ram)
	return err
}

func boolByte(b bool) uint8 {
	if b {
		return 0x01
	}
	return 0x00
}
