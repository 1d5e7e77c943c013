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

package hardware_test

import (
	"bytes"
	"testing"

	"dmgopher/cartridgeloader"
	"dmgopher/hardware"
	"dmgopher/hardware/memory/addresses"
	"dmgopher/test"
)

// makeROM builds a minimal cartridge image. the body is NOP instructions so
// the CPU can run through it safely.
func makeROM(title string) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x0134:0x0144], title)
	rom[0x0147] = 0x00
	return rom
}

func newTestDMG(t *testing.T, title string, hash string) *hardware.DMG {
	t.Helper()

	dmg, err := hardware.NewDMG()
	if err != nil {
		t.Fatal(err)
	}

	err = dmg.AttachCartridge(cartridgeloader.Loader{
		Filename: "test.gb",
		Data:     makeROM(title),
		Hash:     hash,
	})
	if err != nil {
		t.Fatal(err)
	}

	return dmg
}

func runFrames(t *testing.T, dmg *hardware.DMG, numFrames int) {
	t.Helper()
	err := dmg.RunForFrameCount(numFrames, nil)
	if err != nil {
		t.Fatal(err)
	}
}

func TestPowerOnState(t *testing.T) {
	dmg := newTestDMG(t, "POWERON", "0001")

	if dmg.Mem.HasBootROM() {
		t.Skip("boot ROM attached. post-boot values do not apply")
	}

	test.Equate(t, dmg.CPU.Reg.PC, 0x0100)
	test.Equate(t, dmg.CPU.Reg.A, 0x01)
	test.Equate(t, dmg.CPU.Reg.SP, 0xfffe)

	d, err := dmg.Mem.Peek(addresses.LCDC)
	if err != nil {
		t.Fatal(err)
	}
	test.Equate(t, d, 0x91)
}

func TestLockStep(t *testing.T) {
	dmg := newTestDMG(t, "LOCKSTEP", "0002")

	start := dmg.Video.Frame()
	runFrames(t, dmg, 3)
	test.Equate(t, dmg.Video.Frame(), start+3)
}

func TestSnapshotRoundTrip(t *testing.T) {
	dmg := newTestDMG(t, "SNAPSHOT", "0003")

	runFrames(t, dmg, 2)

	pc := dmg.CPU.Reg.PC
	s := dmg.Snapshot()

	runFrames(t, dmg, 5)
	if dmg.CPU.Reg.PC == pc {
		t.Fatal("the machine did not advance")
	}

	dmg.RestoreSnapshot(s)
	test.Equate(t, dmg.CPU.Reg.PC, pc)

	// the restored machine keeps running
	runFrames(t, dmg, 1)
}

func TestSaveStateRoundTrip(t *testing.T) {
	dmg := newTestDMG(t, "SAVESTATE", "0004")

	runFrames(t, dmg, 2)

	pc := dmg.CPU.Reg.PC
	b := &bytes.Buffer{}
	err := dmg.SaveState(b)
	if err != nil {
		t.Fatal(err)
	}

	runFrames(t, dmg, 5)

	err = dmg.LoadState(bytes.NewReader(b.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	test.Equate(t, dmg.CPU.Reg.PC, pc)
}

func TestSaveStateWrongCartridge(t *testing.T) {
	dmg := newTestDMG(t, "FIRST", "0005")

	b := &bytes.Buffer{}
	err := dmg.SaveState(b)
	if err != nil {
		t.Fatal(err)
	}

	other := newTestDMG(t, "SECOND", "0006")
	err = other.LoadState(bytes.NewReader(b.Bytes()))
	test.ExpectedFailure(t, err)
}

func TestSaveStateGarbage(t *testing.T) {
	dmg := newTestDMG(t, "GARBAGE", "0007")

	err := dmg.LoadState(bytes.NewReader([]byte("not a save state")))
	test.ExpectedFailure(t, err)

	// a failed load resets the machine rather than leaving it half
	// restored
	if !dmg.Mem.HasBootROM() {
		test.Equate(t, dmg.CPU.Reg.PC, 0x0100)
	}
}
