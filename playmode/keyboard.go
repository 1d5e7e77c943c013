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

package playmode

import (
	"os"
	"path/filepath"

	"dmgopher/curated"
	"dmgopher/gui"
	"dmgopher/hardware"
	"dmgopher/hardware/joypad"
	"dmgopher/logger"
	"dmgopher/paths"
)

// the mapping of host keys to the buttons of the machine.
var keyMapping = map[string]joypad.Button{
	"Up":        joypad.Up,
	"Down":      joypad.Down,
	"Left":      joypad.Left,
	"Right":     joypad.Right,
	"X":         joypad.A,
	"Z":         joypad.B,
	"Return":    joypad.Start,
	"Backspace": joypad.Select,
}

// KeyboardEventHandler handles keypresses for play mode. Joypad buttons are
// forwarded to the machine; the function keys drive the emulation itself.
func KeyboardEventHandler(ev gui.EventDataKeyboard, dmg *hardware.DMG) error {
	if b, ok := keyMapping[ev.Key]; ok {
		dmg.Joypad.Set(b, ev.Down)
		return nil
	}

	// remaining keys act on key down only
	if !ev.Down {
		return nil
	}

	switch ev.Key {
	case "Escape":
		return curated.Errorf(UserQuit)

	case "F5":
		if err := saveStateFile(dmg); err != nil {
			logger.Logf("playmode", "%v", err)
		}

	case "F9":
		if err := loadStateFile(dmg); err != nil {
			logger.Logf("playmode", "%v", err)
		}
	}

	return nil
}

func stateFilePath(dmg *hardware.DMG) string {
	return paths.ResourcePath("states", dmg.Mem.Cart.Hash+".st")
}

func saveStateFile(dmg *hardware.DMG) error {
	fn := stateFilePath(dmg)
	if err := os.MkdirAll(filepath.Dir(fn), 0700); err != nil {
		return err
	}

	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := dmg.SaveState(f); err != nil {
		return err
	}

	logger.Log("playmode", "machine state saved")
	return nil
}

func loadStateFile(dmg *hardware.DMG) error {
	f, err := os.Open(stateFilePath(dmg))
	if err != nil {
		return err
	}
	defer f.Close()

	if err := dmg.LoadState(f); err != nil {
		return err
	}

	logger.Log("playmode", "machine state loaded")
	return nil
}
