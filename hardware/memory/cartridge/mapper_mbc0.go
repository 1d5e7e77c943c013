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
	"io"

	"dmgopher/curated"
)

// mbc0 is the mapper for cartridges with no bank switching at all: 32k of
// ROM and, for the ROM+RAM types, up to 8k of RAM. The only register is the
// RAM enable latch, which works as it does on the banked mappers.
type mbc0 struct {
	rom []uint8
	ram []uint8

	ramEnable bool
}

func newMBC0(data []byte, ramSize int) (cartMapper, error) {
	if len(data) > 0x8000 {
		return nil, curated.Errorf(InvalidROM, "too much data for a cartridge with no mapper")
	}

	cart := &mbc0{
		rom: make([]uint8, 0x8000),
		ram: make([]uint8, ramSize),
	}
	copy(cart.rom, data)

	return cart, nil
}

func (cart *mbc0) ID() string {
	return "MBC0"
}

func (cart *mbc0) Initialise() {
	cart.ramEnable = false
}

func (cart *mbc0) Read(addr uint16) uint8 {
	return cart.rom[addr&0x7fff]
}

func (cart *mbc0) Write(addr uint16, data uint8) {
	if addr&0x6000 == 0x0000 {
		cart.ramEnable = data&0x0f == 0x0a
	}
}

func (cart *mbc0) ReadRAM(addr uint16) uint8 {
	if !cart.ramEnable || int(addr) >= len(cart.ram) {
		return 0xff
	}
	return cart.ram[addr]
}

func (cart *mbc0) WriteRAM(addr uint16, data uint8) {
	if !cart.ramEnable {
		return
	}
	if int(addr) < len(cart.ram) {
		cart.ram[addr] = data
	}
}

func (cart *mbc0) NumBanks() int {
	return 2
}

func (cart *mbc0) GetBank() int {
	return 1
}

func (cart *mbc0) RAM() []uint8 {
	return cart.ram
}

func (cart *mbc0) Snapshot() cartMapper {
	n := *cart
	n.ram = make([]uint8, len(cart.ram))
	copy(n.ram, cart.ram)
	return &n
}

func (cart *mbc0) Serialise(w io.Writer) error {
	if _, err := w.Write([]uint8{boolByte(cart.ramEnable)}); err != nil {
		return err
	}
	_, err := w.Write(cart.ram)
	return err
}

func (cart *mbc0) Deserialise(r io.Reader) error {
	b := make([]uint8, 1)
	if _, err := io.ReadFull(r, b); err != nil {
		return err
	}
	cart.ramEnable = b[0] != 0x00
	_, err := io.ReadFull(r, cart.ram)
	return err
}
