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
	"dmgopher/curated"
	"dmgopher/gui"
)

// SetFeature implements the gui.GUI interface.
//
// MUST ONLY be called from the #mainthread.
func (scr *SdlPlay) SetFeature(request gui.FeatureReq, args ...gui.FeatureReqData) (rerr error) {
	// lazy (but clear) handling of type assertion errors
	defer func() {
		if r := recover(); r != nil {
			rerr = curated.Errorf("sdlplay: %v", r)
		}
	}()

	switch request {
	case gui.ReqSetEventChan:
		scr.events = args[0].(chan gui.Event)

	case gui.ReqSetVisibility:
		scr.showWindow(args[0].(bool))

	case gui.ReqSetScale:
		return scr.setScaling(args[0].(float32))

	case gui.ReqSetFpsCap:
		scr.fpsCap = args[0].(bool)

	case gui.ReqSetWindowTitle:
		scr.window.SetTitle(args[0].(string))

	default:
		return curated.Errorf(gui.UnsupportedGuiFeature, request)
	}

	return nil
}
