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

// Package cartridge fully implements the cartridge end of the two cartridge
// windows in the address space. The bank switching scheme is decided by the
// mapper byte in the cartridge header; the Cartridge type hides which
// mapper is in play from the rest of the emulation.
package cartridge

import (
	"io"
	"strings"

	"dmgopher/cartridgeloader"
	"dmgopher/curated"
	"dmgopher/logger"
)

// cartridge header locations.
const (
	headerTitle      = 0x0134
	headerTitleEnd   = 0x0144
	headerMapperType = 0x0147
	headerROMSize    = 0x0148
	headerRAMSize    = 0x0149
)

// sentinel errors for the cartridge package.
const (
	UnsupportedMapper = "cartridge: unsupported mapper type (%#02x)"
	InvalidROM        = "cartridge: %v"
)

// Cartridge defines the information and operations for a Game Boy cartridge.
type Cartridge struct {
	Filename string
	Hash     string

	// the title string from the cartridge header
	Title string

	// whether cartridge RAM survives power-off. decided by the mapper byte
	battery bool

	mapper cartMapper
}

// NewCartridge is the preferred method of initialisation for the Cartridge
// type.
func NewCartridge() *Cartridge {
	cart := &Cartridge{}
	cart.Eject()
	return cart
}

func (cart *Cartridge) String() string {
	if _, ok := cart.mapper.(*ejected); ok {
		return "ejected"
	}
	return cart.Title + " (" + cart.mapper.ID() + ")"
}

// ID returns the mapper ID of the loaded cartridge.
func (cart *Cartridge) ID() string {
	return cart.mapper.ID()
}

// Eject removes memory from cartridge space and unlike the real hardware,
// attaches a bank of empty memory.
func (cart *Cartridge) Eject() {
	cart.Filename = "ejected"
	cart.Hash = ""
	cart.Title = ""
	cart.battery = false
	cart.mapper = newEjected()
}

// IsEjected returns true if no cartridge is attached.
func (cart *Cartridge) IsEjected() bool {
	_, ok := cart.mapper.(*ejected)
	return ok
}

// Attach the cartridge loader to the cartridge and make available the data
// to the rest of the emulation.
func (cart *Cartridge) Attach(cartload cartridgeloader.Loader) error {
	err := cartload.Load()
	if err != nil {
		return err
	}

	if len(cartload.Data) < 0x0150 {
		return curated.Errorf(InvalidROM, "file too small to contain a cartridge header")
	}

	cart.Filename = cartload.Filename
	cart.Hash = cartload.Hash
	cart.Title = readTitle(cartload.Data)

	mapperType := cartload.Data[headerMapperType]
	ramSize := ramSizeInBytes(cartload.Data[headerRAMSize])

	switch mapperType {
	case 0x00:
		cart.mapper, err = newMBC0(cartload.Data, 0)
	case 0x08, 0x09:
		cart.mapper, err = newMBC0(cartload.Data, ramSize)
	case 0x01:
		cart.mapper, err = newMBC1(cartload.Data, 0)
	case 0x02, 0x03:
		cart.mapper, err = newMBC1(cartload.Data, ramSize)
	default:
		return curated.Errorf(UnsupportedMapper, mapperType)
	}
	if err != nil {
		return err
	}

	// battery backed cartridge types
	cart.battery = mapperType == 0x03 || mapperType == 0x09

	logger.Logf("cartridge", "%s: mapper %s, %d banks", cart.Title, cart.mapper.ID(), cart.mapper.NumBanks())

	return nil
}

// Initialise the cartridge to its state at power-on. Cartridge RAM contents
// are not touched.
func (cart *Cartridge) Initialise() {
	cart.mapper.Initialise()
}

// Read from the ROM window (0x0000 to 0x7fff).
func (cart *Cartridge) Read(addr uint16) uint8 {
	return cart.mapper.Read(addr)
}

// Write to the ROM window. ROM is not writable of course; these writes
// operate the mapper's bank registers.
func (cart *Cartridge) Write(addr uint16, data uint8) {
	cart.mapper.Write(addr, data)
}

// ReadRAM reads from the cartridge RAM window. The address is the offset
// into the window, not the absolute address.
func (cart *Cartridge) ReadRAM(addr uint16) uint8 {
	return cart.mapper.ReadRAM(addr)
}

// WriteRAM writes to the cartridge RAM window. The address is the offset
// into the window, not the absolute address.
func (cart *Cartridge) WriteRAM(addr uint16, data uint8) {
	cart.mapper.WriteRAM(addr, data)
}

// NumBanks returns the number of ROM banks in the cartridge.
func (cart *Cartridge) NumBanks() int {
	return cart.mapper.NumBanks()
}

// GetBank returns the ROM bank currently selected for the switchable window.
func (cart *Cartridge) GetBank() int {
	return cart.mapper.GetBank()
}

// HasBattery returns true if cartridge RAM should be persisted to disk.
func (cart *Cartridge) HasBattery() bool {
	return cart.battery
}

// RAM returns the underlying cartridge RAM, or nil.
func (cart *Cartridge) RAM() []uint8 {
	return cart.mapper.RAM()
}

// Snapshot the state of the cartridge.
func (cart *Cartridge) Snapshot() *Cartridge {
	n := *cart
	n.mapper = cart.mapper.Snapshot()
	return &n
}

// Plumb a previously snapshotted state back into the cartridge.
func (cart *Cartridge) Plumb(snapshot *Cartridge) {
	cart.mapper = snapshot.mapper.Snapshot()
}

// Serialise the cartridge's mutable state.
func (cart *Cartridge) Serialise(w io.Writer) error {
	return cart.mapper.Serialise(w)
}

// Deserialise the cartridge's mutable state.
func (cart *Cartridge) Deserialise(r io.Reader) error {
	return cart.mapper.Deserialise(r)
}

func readTitle(data []byte) string {
	title := strings.Builder{}
	for _, b := range data[headerTitle:headerTitleEnd] {
		if b == 0x00 {
			break
		}
		title.WriteByte(b)
	}
	return strings.TrimSpace(title.String())
}

func ramSizeInBytes(sz uint8) int {
	switch sz {
	case 0x01:
		return 0x800
	case 0x02:
		return 0x2000
	case 0x03:
		return 0x8000
	}
	return 0
}
