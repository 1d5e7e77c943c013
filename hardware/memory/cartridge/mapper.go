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

import "io"

// cartMapper implementations hold the cartridge ROM and decide how addresses
// in the two cartridge windows resolve to it. All addresses passed to the
// mapper have already been mapped into the correct window: Read/Write
// receive addresses in the range 0x0000 to 0x7fff and ReadRAM/WriteRAM
// receive offsets into the 8k RAM window at 0xa000.
type cartMapper interface {
	ID() string

	// revert mapper to its state at power-on. note that this does not
	// include the contents of any cartridge RAM, which survives a reset on
	// battery-backed cartridges
	Initialise()

	Read(addr uint16) uint8
	Write(addr uint16, data uint8)
	ReadRAM(addr uint16) uint8
	WriteRAM(addr uint16, data uint8)

	NumBanks() int
	GetBank() int

	// RAM returns the underlying cartridge RAM, or nil if the cartridge has
	// none. used for battery save persistence
	RAM() []uint8

	// Snapshot returns a deep copy of the mapper, suitable for later
	// plumbing back in with Cartridge.Plumb()
	Snapshot() cartMapper

	// Serialise/Deserialise the mapper's mutable state (bank registers and
	// RAM contents, never the ROM)
	Serialise(w io.Writer) error
	Deserialise(r io.Reader) error
}
