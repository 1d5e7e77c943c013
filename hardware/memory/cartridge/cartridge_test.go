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

package cartridge_test

import (
	"bytes"
	"testing"

	"dmgopher/cartridgeloader"
	"dmgopher/hardware/memory/cartridge"
	"dmgopher/test"
)

// makeROM builds a cartridge image of the given number of 16k banks. the
// first byte of every bank is the bank number, so tests can see which bank
// a read was served from.
func makeROM(mapperType uint8, numBanks int, ramSize uint8, title string) []byte {
	rom := make([]byte, numBanks*0x4000)
	for b := 0; b < numBanks; b++ {
		rom[b*0x4000] = uint8(b)
	}
	copy(rom[0x0134:0x0144], title)
	rom[0x0147] = mapperType
	rom[0x0149] = ramSize
	return rom
}

func attach(t *testing.T, rom []byte) *cartridge.Cartridge {
	t.Helper()
	cart := cartridge.NewCartridge()
	err := cart.Attach(cartridgeloader.Loader{
		Filename: "test.gb",
		Data:     rom,
		Hash:     "0000",
	})
	if err != nil {
		t.Fatal(err)
	}
	return cart
}

func TestEjected(t *testing.T) {
	cart := cartridge.NewCartridge()
	test.Equate(t, cart.IsEjected(), true)

	// reads float high with nothing attached
	test.Equate(t, cart.Read(0x0000), 0xff)
}

func TestHeader(t *testing.T) {
	cart := attach(t, makeROM(0x00, 2, 0x00, "TESTROM"))
	test.Equate(t, cart.Title, "TESTROM")
	test.Equate(t, cart.NumBanks(), 2)
	test.Equate(t, cart.IsEjected(), false)
}

func TestMBC0(t *testing.T) {
	cart := attach(t, makeROM(0x00, 2, 0x00, "MBC0"))

	test.Equate(t, cart.Read(0x0000), 0x00)
	test.Equate(t, cart.Read(0x4000), 0x01)

	// bank registers have no effect
	cart.Write(0x2000, 0x05)
	test.Equate(t, cart.Read(0x4000), 0x01)
}

func TestMBC0RAM(t *testing.T) {
	cart := attach(t, makeROM(0x08, 2, 0x02, "MBC0RAM"))

	// RAM is behind the enable latch, the same as the banked mappers
	cart.WriteRAM(0x0000, 0x42)
	test.Equate(t, cart.ReadRAM(0x0000), 0xff)

	cart.Write(0x0000, 0x0a)
	cart.WriteRAM(0x0000, 0x42)
	test.Equate(t, cart.ReadRAM(0x0000), 0x42)

	cart.Write(0x0000, 0x00)
	test.Equate(t, cart.ReadRAM(0x0000), 0xff)
}

func TestMBC1Banking(t *testing.T) {
	cart := attach(t, makeROM(0x01, 8, 0x00, "MBC1"))

	// bank one is selected at power-on
	test.Equate(t, cart.Read(0x4000), 0x01)

	cart.Write(0x2000, 0x02)
	test.Equate(t, cart.Read(0x4000), 0x02)
	test.Equate(t, cart.GetBank(), 2)

	// the fixed window is unaffected
	test.Equate(t, cart.Read(0x0000), 0x00)

	// a zero in the bank register always selects bank one
	cart.Write(0x2000, 0x00)
	test.Equate(t, cart.Read(0x4000), 0x01)

	// bank numbers wrap to the size of the cartridge
	cart.Write(0x2000, 0x0a)
	test.Equate(t, cart.Read(0x4000), 0x02)
}

func TestMBC1RAM(t *testing.T) {
	cart := attach(t, makeROM(0x03, 2, 0x02, "MBC1RAM"))

	// RAM is disabled at power-on
	test.Equate(t, cart.ReadRAM(0x0000), 0xff)
	cart.WriteRAM(0x0000, 0x42)
	test.Equate(t, cart.ReadRAM(0x0000), 0xff)

	cart.Write(0x0000, 0x0a)
	cart.WriteRAM(0x0000, 0x42)
	test.Equate(t, cart.ReadRAM(0x0000), 0x42)

	// any non-0x0a value disables again
	cart.Write(0x0000, 0x00)
	test.Equate(t, cart.ReadRAM(0x0000), 0xff)
}

func TestMBC1Serialise(t *testing.T) {
	cart := attach(t, makeROM(0x03, 8, 0x02, "MBC1SAVE"))

	cart.Write(0x0000, 0x0a)
	cart.Write(0x2000, 0x03)
	cart.WriteRAM(0x0010, 0x99)

	b := &bytes.Buffer{}
	err := cart.Serialise(b)
	if err != nil {
		t.Fatal(err)
	}

	restored := attach(t, makeROM(0x03, 8, 0x02, "MBC1SAVE"))
	err = restored.Deserialise(bytes.NewReader(b.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	test.Equate(t, restored.GetBank(), 3)
	test.Equate(t, restored.ReadRAM(0x0010), 0x99)
}

func TestSnapshot(t *testing.T) {
	cart := attach(t, makeROM(0x03, 8, 0x02, "MBC1SNAP"))

	cart.Write(0x0000, 0x0a)
	cart.Write(0x2000, 0x04)
	cart.WriteRAM(0x0000, 0x11)

	snapshot := cart.Snapshot()

	// mutate the live cartridge
	cart.Write(0x2000, 0x01)
	cart.WriteRAM(0x0000, 0x22)

	cart.Plumb(snapshot)
	test.Equate(t, cart.GetBank(), 4)
	test.Equate(t, cart.ReadRAM(0x0000), 0x11)
}

func TestTooSmall(t *testing.T) {
	cart := cartridge.NewCartridge()
	err := cart.Attach(cartridgeloader.Loader{
		Filename: "small.gb",
		Data:     make([]byte, 0x100),
		Hash:     "0000",
	})
	test.ExpectedFailure(t, err)
}

func TestUnsupportedMapper(t *testing.T) {
	cart := cartridge.NewCartridge()
	err := cart.Attach(cartridgeloader.Loader{
		Filename: "huc1.gb",
		Data:     makeROM(0xff, 2, 0x00, "HUC1"),
		Hash:     "0000",
	})
	test.ExpectedFailure(t, err)
}
