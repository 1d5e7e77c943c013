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

// Package cartridgeloader is used to specify the cartridge to be attached to
// the emulation. When the cartridge is ready to be loaded into the emulator
// the Load() function should be used.
package cartridgeloader

import (
	"crypto/sha1"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dmgopher/curated"
)

// Loader abstracts all the ways data can be loaded into the emulation.
type Loader struct {
	// filename of cartridge to load
	Filename string

	// empty until Load() is called
	Data []byte

	// hash of data. empty until Load() is called. the hash is used to key
	// battery save files so the same cartridge always finds its saved RAM.
	Hash string
}

// sentinel errors for the cartridgeloader package.
const (
	FileError = "cartridgeloader: %v"
	DataError = "cartridgeloader: %v"
)

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{Filename: filename}
}

// ShortName returns a shortened version of the CartridgeLoader filename.
func (cl Loader) ShortName() string {
	shortCartName := filepath.Base(cl.Filename)
	shortCartName = strings.TrimSuffix(shortCartName, filepath.Ext(cl.Filename))
	return shortCartName
}

// HasLoaded returns true if Load() has been successfully called.
func (cl Loader) HasLoaded() bool {
	return len(cl.Data) > 0
}

// Load the cartridge data and prepare for attachment to the emulation.
func (cl *Loader) Load() error {
	if cl.HasLoaded() {
		return nil
	}

	data, err := os.ReadFile(cl.Filename)
	if err != nil {
		return curated.Errorf(FileError, err)
	}
	cl.Data = data

	if len(cl.Data) == 0 {
		return curated.Errorf(DataError, fmt.Errorf("no data in cartridge file %s", cl.Filename))
	}

	cl.Hash = fmt.Sprintf("%x", sha1.Sum(cl.Data))

	return nil
}
