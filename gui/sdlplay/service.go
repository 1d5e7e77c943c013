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

package sdlplay

import (
	"dmgopher/gui"

	"github.com/veandco/go-sdl2/sdl"
)

func setupService() {
	// MOUSEMOTION events fill up the event queue quickly and take time to
	// service for no good reason; this gui has no use for the mouse
	sdl.EventState(sdl.MOUSEMOTION, sdl.IGNORE)
}

// Service implements the gui.GUI interface.
//
// MUST ONLY be called from the #mainthread.
func (scr *SdlPlay) Service() {
	// do not check for events if no event channel has been set
	if scr.events != nil {
		// loop until there are no more events to retrieve. servicing just
		// one event per call is not enough; queued events would take one
		// frame or longer each to resolve
		empty := false
		for !empty {
			// check for SDL events, timing out straight away if there is
			// nothing
			ev := sdl.WaitEventTimeout(1)

			switch ev := ev.(type) {
			case *sdl.QuitEvent:
				scr.events <- gui.Event{ID: gui.EventWindowClose}

			case *sdl.KeyboardEvent:
				mod := gui.KeyModNone

				if sdl.GetModState()&sdl.KMOD_LALT == sdl.KMOD_LALT ||
					sdl.GetModState()&sdl.KMOD_RALT == sdl.KMOD_RALT {
					mod = gui.KeyModAlt
				} else if sdl.GetModState()&sdl.KMOD_LSHIFT == sdl.KMOD_LSHIFT ||
					sdl.GetModState()&sdl.KMOD_RSHIFT == sdl.KMOD_RSHIFT {
					mod = gui.KeyModShift
				} else if sdl.GetModState()&sdl.KMOD_LCTRL == sdl.KMOD_LCTRL ||
					sdl.GetModState()&sdl.KMOD_RCTRL == sdl.KMOD_RCTRL {
					mod = gui.KeyModCtrl
				}

				if ev.Repeat == 0 {
					scr.events <- gui.Event{
						ID: gui.EventKeyboard,
						Data: gui.EventDataKeyboard{
							Key:  sdl.GetKeyName(ev.Keysym.Sym),
							Mod:  mod,
							Down: ev.Type == sdl.KEYDOWN}}
				}

			case nil:
				// a nil value means WaitEventTimeout has timed out and the
				// event queue is empty
				empty = true
			}
		}
	}

	// hold the emulation to the frame rate of the machine
	if scr.fpsCap {
		scr.lmtr.Wait()
	}
}
