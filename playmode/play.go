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

// Package playmode sets the emulation running without any debugging
// features. The GUI is a bare window showing the emulated screen.
package playmode

import (
	"os"
	"os/signal"

	"dmgopher/cartridgeloader"
	"dmgopher/curated"
	"dmgopher/gui"
	"dmgopher/gui/sdlplay"
	"dmgopher/hardware"
	"dmgopher/wavwriter"
)

// sentinel errors for the playmode package.
const (
	PlayError = "playmode: %v"

	// returned by the keyboard handler when the user has asked to quit the
	// emulation
	UserQuit = "user quit event"
)

// Play sets the emulation running. If wavFile is not empty then audio
// output is additionally recorded to that file. The skipBoot flag starts
// the machine from the post-boot state even when a boot ROM is available.
func Play(scaling float32, wavFile string, skipBoot bool, cartload cartridgeloader.Loader) error {
	dmg, err := hardware.NewDMG()
	if err != nil {
		return curated.Errorf(PlayError, err)
	}
	defer dmg.End()

	if skipBoot {
		dmg.Mem.DetachBootROM()
	}

	scr, err := sdlplay.NewSdlPlay(dmg, scaling)
	if err != nil {
		return curated.Errorf(PlayError, err)
	}

	if wavFile != "" {
		aw, err := wavwriter.NewWavWriter(wavFile)
		if err != nil {
			return curated.Errorf(PlayError, err)
		}
		dmg.Audio.AddMixer(aw)
	}

	if err := dmg.AttachCartridge(cartload); err != nil {
		return curated.Errorf(PlayError, err)
	}

	// connect gui
	events := make(chan gui.Event, 64)
	if err := scr.SetFeature(gui.ReqSetEventChan, events); err != nil {
		return curated.Errorf(PlayError, err)
	}
	if err := scr.SetFeature(gui.ReqSetWindowTitle, windowTitle(dmg, cartload)); err != nil {
		return curated.Errorf(PlayError, err)
	}
	if err := scr.SetFeature(gui.ReqSetVisibility, true); err != nil {
		return curated.Errorf(PlayError, err)
	}

	// make sure the deferred dmg.End() runs even when ctrl-c is pressed.
	// redirect the interrupt signal to an os.Signal channel
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// run and handle gui events
	err = dmg.Run(func() (bool, error) {
		scr.Service()

		select {
		case <-intChan:
			return false, nil
		case ev := <-events:
			switch ev.ID {
			case gui.EventWindowClose:
				return false, nil
			case gui.EventKeyboard:
				err := KeyboardEventHandler(ev.Data.(gui.EventDataKeyboard), dmg)
				if err != nil {
					if curated.Is(err, UserQuit) {
						return false, nil
					}
					return false, err
				}
			}
		default:
		}

		return true, nil
	})

	if err != nil {
		return curated.Errorf(PlayError, err)
	}

	return nil
}

func windowTitle(dmg *hardware.DMG, cartload cartridgeloader.Loader) string {
	if t := dmg.Mem.Cart.Title; t != "" {
		return "DMGopher: " + t
	}
	return "DMGopher: " + cartload.ShortName()
}
