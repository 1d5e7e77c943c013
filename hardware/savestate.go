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

package hardware

import (
	"encoding/binary"
	"io"

	"dmgopher/curated"
	"dmgopher/logger"
)

// sentinel errors for the save state functions.
const (
	StateError = "savestate: %v"
)

// the save state file format. a version bump means old files are refused
// rather than misread.
var stateMagic = [4]byte{'D', 'M', 'G', 'S'}

const stateVersion = uint8(1)

// SaveState serialises the machine to the writer. The cartridge hash is
// included so a state can never be loaded into the wrong cartridge.
func (dmg *DMG) SaveState(w io.Writer) error {
	if _, err := w.Write(stateMagic[:]); err != nil {
		return curated.Errorf(StateError, err)
	}
	if err := binary.Write(w, binary.LittleEndian, stateVersion); err != nil {
		return curated.Errorf(StateError, err)
	}

	hash := []byte(dmg.Mem.Cart.Hash)
	if err := binary.Write(w, binary.LittleEndian, uint8(len(hash))); err != nil {
		return curated.Errorf(StateError, err)
	}
	if _, err := w.Write(hash); err != nil {
		return curated.Errorf(StateError, err)
	}

	for _, c := range []interface{ Serialise(io.Writer) error }{
		dmg.CPU, dmg.Mem, dmg.Mem.Cart, dmg.Timer, dmg.Video,
	} {
		if err := c.Serialise(w); err != nil {
			return curated.Errorf(StateError, err)
		}
	}

	return nil
}

// LoadState restores the machine from a previously saved state. On any
// error the machine is reset rather than left part-loaded.
func (dmg *DMG) LoadState(r io.Reader) error {
	err := dmg.loadState(r)
	if err != nil {
		logger.Logf("savestate", "%v", err)
		if rerr := dmg.Reset(); rerr != nil {
			return rerr
		}
	}
	return err
}

func (dmg *DMG) loadState(r io.Reader) error {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return curated.Errorf(StateError, err)
	}
	if magic != stateMagic {
		return curated.Errorf(StateError, "not a save state file")
	}

	var version uint8
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return curated.Errorf(StateError, err)
	}
	if version != stateVersion {
		return curated.Errorf(StateError, "unsupported save state version")
	}

	var hashLen uint8
	if err := binary.Read(r, binary.LittleEndian, &hashLen); err != nil {
		return curated.Errorf(StateError, err)
	}
	hash := make([]byte, hashLen)
	if _, err := io.ReadFull(r, hash); err != nil {
		return curated.Errorf(StateError, err)
	}
	if string(hash) != dmg.Mem.Cart.Hash {
		return curated.Errorf(StateError, "save state is for a different cartridge")
	}

	for _, c := range []interface{ Deserialise(io.Reader) error }{
		dmg.CPU, dmg.Mem, dmg.Mem.Cart, dmg.Timer, dmg.Video,
	} {
		if err := c.Deserialise(r); err != nil {
			return curated.Errorf(StateError, err)
		}
	}

	return nil
}
