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

// Package performance contains helper functions for measuring and profiling
// the emulation. Check() runs a cartridge for a fixed duration of time and
// reports the achieved frame rate against the machine rate.
package performance

import (
	"fmt"
	"io"
	"time"

	"dmgopher/cartridgeloader"
	"dmgopher/curated"
	"dmgopher/gui"
	"dmgopher/gui/sdlplay"
	"dmgopher/hardware"
	"dmgopher/hardware/video"
)

// Sentinal errors returned by the performance package.
const (
	PerformanceError = "performance: %v"

	// returned by the Run() loop when the measurement duration has elapsed.
	timedOut = "performance timed out"
)

// machineFPS is the frame rate of real hardware. measured performance is
// reported as a percentage of this value.
const machineFPS = float64(hardware.ClockFreq) / float64(video.ClksFrame)

// CalcFPS takes a number of frames and a duration (in seconds) and returns
// the frames-per-second and that value as a percentage of the machine rate.
func CalcFPS(numFrames int, duration float64) (fps float64, accuracy float64) {
	fps = float64(numFrames) / duration
	accuracy = 100 * fps / machineFPS
	return fps, accuracy
}

// Check the performance of the emulation using the supplied cartridge.
// Emulation will run for the specified duration, after a short leadtime to
// allow the frame rate to settle. CPU and memory profiles are written when
// profile is true. An SDL window is opened when display is true, which is
// useful for measuring the cost of the rendering path.
func Check(output io.Writer, profile bool, display bool, scaling float32, duration string, cartload cartridgeloader.Loader) error {
	dmg, err := hardware.NewDMG()
	if err != nil {
		return curated.Errorf(PerformanceError, err)
	}
	defer dmg.End()

	// the performance window runs uncapped. we want to know how fast the
	// emulation can go, not how well the limiter sleeps.
	var scr gui.GUI
	if display {
		s, err := sdlplay.NewSdlPlay(dmg, scaling)
		if err != nil {
			return curated.Errorf(PerformanceError, err)
		}
		defer s.EndRendering()
		scr = s

		if err := scr.SetFeature(gui.ReqSetFpsCap, false); err != nil {
			return curated.Errorf(PerformanceError, err)
		}
		if err := scr.SetFeature(gui.ReqSetVisibility, true); err != nil {
			return curated.Errorf(PerformanceError, err)
		}
	}

	err = dmg.AttachCartridge(cartload)
	if err != nil {
		return curated.Errorf(PerformanceError, err)
	}

	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf(PerformanceError, err)
	}

	startFrame := dmg.Video.Frame()

	runner := func() error {
		// the timer channel receives false when the leadtime has elapsed
		// and the measurement proper has begun. it receives true when the
		// measurement duration has elapsed.
		timerChan := make(chan bool)

		// a two second leadtime allows the frame rate to settle down
		// before the measurement begins
		time.AfterFunc(2*time.Second, func() {
			timerChan <- false
			time.AfterFunc(dur, func() {
				timerChan <- true
			})
		})

		return dmg.Run(func() (bool, error) {
			if scr != nil {
				scr.Service()
			}

			select {
			case v := <-timerChan:
				if v {
					return false, curated.Errorf(timedOut)
				}
				startFrame = dmg.Video.Frame()
			default:
			}

			return true, nil
		})
	}

	err = profileRun(profile, "performance", runner)
	if err != nil && !curated.Is(err, timedOut) {
		return curated.Errorf(PerformanceError, err)
	}

	numFrames := dmg.Video.Frame() - startFrame
	fps, accuracy := CalcFPS(numFrames, dur.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, dur.Seconds(), accuracy)

	return nil
}
