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
	"os"
	"path/filepath"

	"dmgopher/curated"
	"dmgopher/hardware/memory/cartridge"
	"dmgopher/logger"
	"dmgopher/paths"
)

// sentinel errors for the hardware package.
const (
	BatteryError = "battery: %v"
)

// save files are keyed by the hash of the cartridge data so the same
// cartridge always finds its RAM, wherever the file has moved to.
const saveDir = "saves"

func batteryPath(cart *cartridge.Cartridge) string {
	return paths.ResourcePath(saveDir, cart.Hash+".sav")
}

// loadBattery fills the cartridge RAM from the save file of a previous
// session. A missing save file is not an error.
func loadBattery(cart *cartridge.Cartridge) error {
	if !cart.HasBattery() {
		return nil
	}

	ram := cart.RAM()
	if len(ram) == 0 {
		return nil
	}

	data, err := os.ReadFile(batteryPath(cart))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return curated.Errorf(BatteryError, err)
	}

	if len(data) != len(ram) {
		return curated.Errorf(BatteryError, "save file is the wrong size for the cartridge")
	}

	copy(ram, data)
	logger.Logf("battery", "loaded %d bytes of cartridge RAM", len(ram))

	return nil
}

// saveBattery writes the cartridge RAM to the save file.
func saveBattery(cart *cartridge.Cartridge) error {
	if !cart.HasBattery() {
		return nil
	}

	ram := cart.RAM()
	if len(ram) == 0 {
		return nil
	}

	fn := batteryPath(cart)
	if err := os.MkdirAll(filepath.Dir(fn), 0700); err != nil {
		return curated.Errorf(BatteryError, err)
	}
	if err := os.WriteFile(fn, ram, 0600); err != nil {
		return curated.Errorf(BatteryError, err)
	}
	logger.Logf("battery", "saved %d bytes of cartridge RAM", len(ram))

	return nil
}
