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

package memory

import (
	"encoding/binary"
	"io"
)

// Snapshot creates a deep copy of the memory. The cartridge is snapshotted
// separately by the hardware container; the copy returned here shares the
// cartridge pointer with the original.
func (mem *Memory) Snapshot() *Memory {
	n := *mem
	return &n
}

// Plumb a previously snapshotted memory state back in. The chip write
// handlers and the cartridge of the receiving memory are kept.
func (mem *Memory) Plumb(snapshot *Memory) {
	mem.vram = snapshot.vram
	mem.wram = snapshot.wram
	mem.oam = snapshot.oam
	mem.io = snapshot.io
	mem.hram = snapshot.hram
	mem.ie = snapshot.ie
	mem.bootEnabled = snapshot.bootEnabled
}

// Serialise the memory contents.
func (mem *Memory) Serialise(w io.Writer) error {
	for _, b := range [][]uint8{mem.vram[:], mem.wram[:], mem.oam[:], mem.io[:], mem.hram[:]} {
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return binary.Write(w, binary.LittleEndian, []uint8{mem.ie, boolByte(mem.bootEnabled)})
}

// Deserialise the memory contents.
func (mem *Memory) Deserialise(r io.Reader) error {
	for _, b := range [][]uint8{mem.vram[:], mem.wram[:], mem.oam[:], mem.io[:], mem.hram[:]} {
		if _, err := io.ReadFull(r, b); err != nil {
			return err
		}
	}
	var tail [2]uint8
	if err := binary.Read(r, binary.LittleEndian, tail[:]); err != nil {
		return err
	}
	mem.ie = tail[0]
	mem.bootEnabled = tail[1] != 0x00 && mem.boot != nil
	return nil
}

func boolByte(b bool) uint8 {
	if b {
		return 0x01
	}
	return 0x00
}
