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

// Package hardware is the glue between the sub-systems of the emulated
// machine. The DMG type connects the CPU, the address space and the chips,
// and steps them in lock-step.
package hardware

import (
	"os"

	"dmgopher/cartridgeloader"
	"dmgopher/hardware/audio"
	"dmgopher/hardware/cpu"
	"dmgopher/hardware/interrupts"
	"dmgopher/hardware/joypad"
	"dmgopher/hardware/memory"
	"dmgopher/hardware/memory/cartridge"
	"dmgopher/hardware/timer"
	"dmgopher/hardware/video"
	"dmgopher/logger"
	"dmgopher/paths"
)

// ClockFreq is the frequency of the machine clock in cycles per second.
// Every chip in the machine is derived from this clock.
const ClockFreq = 4194304

// the boot ROM image is looked for at this resource path. the emulation
// works without it, starting from the state the boot ROM leaves behind.
const bootROMFile = "dmg_boot.bin"

// DMG is the emulated machine. The fields are exported because the debugger
// wants access to the sub-systems but the fields should never be changed
// once the machine is created.
type DMG struct {
	CPU    *cpu.CPU
	Mem    *memory.Memory
	Ints   *interrupts.Controller
	Timer  *timer.Timer
	Video  *video.Video
	Audio  *audio.Audio
	Joypad *joypad.Joypad
}

// NewDMG creates a new instance of the machine with no cartridge attached.
func NewDMG() (*DMG, error) {
	dmg := &DMG{}

	dmg.Mem = memory.NewMemory(cartridge.NewCartridge())
	dmg.Ints = interrupts.NewController(dmg.Mem)
	dmg.CPU = cpu.NewCPU(dmg.Mem, dmg.Ints)
	dmg.Timer = timer.NewTimer(dmg.Mem, dmg.Ints)
	dmg.Video = video.NewVideo(dmg.Mem, dmg.Ints)
	dmg.Audio = audio.NewAudio(dmg.Mem)
	dmg.Joypad = joypad.NewJoypad(dmg.Mem, dmg.Ints)

	// the chips that want to see register writes as they happen
	dmg.Mem.Timer = dmg.Timer
	dmg.Mem.Audio = dmg.Audio
	dmg.Mem.Joypad = dmg.Joypad

	// a boot ROM is optional. without one the machine starts from the
	// state the boot ROM would have left behind
	b, err := os.ReadFile(paths.ResourcePath(bootROMFile))
	if err == nil {
		if err := dmg.Mem.AttachBootROM(b); err != nil {
			return nil, err
		}
		logger.Log("dmg", "boot ROM attached")
	} else {
		logger.Log("dmg", "no boot ROM found, starting from post-boot state")
	}

	return dmg, nil
}

// AttachCartridge to the machine and reset. Any battery backed RAM saved
// from a previous session is loaded before the reset.
func (dmg *DMG) AttachCartridge(cartload cartridgeloader.Loader) error {
	if err := dmg.Mem.Cart.Attach(cartload); err != nil {
		return err
	}

	if err := loadBattery(dmg.Mem.Cart); err != nil {
		return err
	}

	return dmg.Reset()
}

// Reset the machine to its power-on state. Cartridge RAM contents are not
// touched.
func (dmg *DMG) Reset() error {
	dmg.Mem.Initialise()
	dmg.Mem.Cart.Initialise()
	dmg.CPU.Initialise(!dmg.Mem.HasBootROM())
	dmg.Timer.Initialise()
	dmg.Video.Initialise()
	dmg.Audio.Initialise()
	return nil
}

// Step the machine forward by one CPU instruction. Returns the number of
// cycles consumed.
//
// The chips are stepped after the instruction completes rather than cycle
// by cycle during it. The coarser grain is not observable by the majority
// of programs.
func (dmg *DMG) Step() (int, error) {
	cycles, err := dmg.CPU.ExecuteInstruction()
	if err != nil {
		return cycles, err
	}

	dmg.Timer.Step(cycles)
	if err := dmg.Video.Step(cycles); err != nil {
		return cycles, err
	}
	if err := dmg.Audio.Step(cycles); err != nil {
		return cycles, err
	}

	return cycles, nil
}

// End the emulation, closing down the attached renderers and mixers and
// writing any battery backed cartridge RAM to disk.
func (dmg *DMG) End() error {
	if err := saveBattery(dmg.Mem.Cart); err != nil {
		logger.Logf("dmg", "%v", err)
	}
	if err := dmg.Video.End(); err != nil {
		return err
	}
	return dmg.Audio.End()
}
