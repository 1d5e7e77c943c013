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

// Run the machine until continueCheck returns false. continueCheck is
// called once per completed frame, which is often enough to service a GUI
// event queue without dragging on the emulation.
func (dmg *DMG) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	frame := dmg.Video.Frame()

	for {
		if _, err := dmg.Step(); err != nil {
			return err
		}

		if f := dmg.Video.Frame(); f != frame {
			frame = f

			cont, err := continueCheck()
			if err != nil {
				return err
			}
			if !cont {
				return nil
			}
		}
	}
}

// RunForFrameCount runs the machine for the specified number of frames.
// Used by the performance mode and by the FRAME debugger command.
func (dmg *DMG) RunForFrameCount(numFrames int, continueCheck func(frame int) (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func(_ int) (bool, error) { return true, nil }
	}

	frame := dmg.Video.Frame()
	target := frame + numFrames

	for frame < target {
		if _, err := dmg.Step(); err != nil {
			return err
		}

		if f := dmg.Video.Frame(); f != frame {
			frame = f

			cont, err := continueCheck(frame)
			if err != nil {
				return err
			}
			if !cont {
				return nil
			}
		}
	}

	return nil
}
