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

package playmode_test

import (
	"testing"

	"dmgopher/cartridgeloader"
	"dmgopher/curated"
	"dmgopher/gui"
	"dmgopher/hardware"
	"dmgopher/hardware/memory/addresses"
	"dmgopher/playmode"
	"dmgopher/test"
)

func newTestDMG(t *testing.T) *hardware.DMG {
	t.Helper()

	dmg, err := hardware.NewDMG()
	if err != nil {
		t.Fatal(err)
	}

	rom := make([]byte, 0x8000)
	copy(rom[0x0134:0x0144], "KEYBOARD")
	err = dmg.AttachCartridge(cartridgeloader.Loader{
		Filename: "test.gb",
		Data:     rom,
		Hash:     "0001",
	})
	if err != nil {
		t.Fatal(err)
	}

	return dmg
}

func press(t *testing.T, dmg *hardware.DMG, key string, down bool) error {
	t.Helper()
	return playmode.KeyboardEventHandler(gui.EventDataKeyboard{Key: key, Down: down}, dmg)
}

func TestButtonMapping(t *testing.T) {
	dmg := newTestDMG(t)

	// select the button row
	err := dmg.Mem.Write(addresses.JOYP, 0x10)
	if err != nil {
		t.Fatal(err)
	}

	// X maps to the A button, which is the low line of the row
	if err := press(t, dmg, "X", true); err != nil {
		t.Fatal(err)
	}
	test.Equate(t, dmg.Mem.ChipRead(addresses.JOYP)&0x0f, 0x0e)

	if err := press(t, dmg, "X", false); err != nil {
		t.Fatal(err)
	}
	test.Equate(t, dmg.Mem.ChipRead(addresses.JOYP)&0x0f, 0x0f)
}

func TestDirectionMapping(t *testing.T) {
	dmg := newTestDMG(t)

	// select the direction row
	err := dmg.Mem.Write(addresses.JOYP, 0x20)
	if err != nil {
		t.Fatal(err)
	}

	if err := press(t, dmg, "Down", true); err != nil {
		t.Fatal(err)
	}
	test.Equate(t, dmg.Mem.ChipRead(addresses.JOYP)&0x0f, 0x07)
}

func TestUnmappedKey(t *testing.T) {
	dmg := newTestDMG(t)

	// unmapped keys are ignored without error
	if err := press(t, dmg, "Q", true); err != nil {
		t.Fatal(err)
	}
}

func TestQuitEvent(t *testing.T) {
	dmg := newTestDMG(t)

	err := press(t, dmg, "Escape", true)
	if !curated.Is(err, playmode.UserQuit) {
		t.Errorf("expected user quit event, got %v", err)
	}
}
