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

// Package limiter provides a rough and ready way of limiting events to a
// fixed rate. Used to pin the emulation to the frame rate of the machine.
package limiter

import (
	"time"
)

// FpsLimiter ticks at the requested number of events per second.
type FpsLimiter struct {
	secondsPerFrame time.Duration
	tick            chan bool
}

// NewFpsLimiter is the preferred method of initialisation for the FpsLimiter
// type.
func NewFpsLimiter(framesPerSecond float64) *FpsLimiter {
	lim := &FpsLimiter{
		tick: make(chan bool),
	}
	lim.secondsPerFrame = time.Duration(float64(time.Second) / framesPerSecond)

	// the sleep duration is adjusted every tick by the amount the previous
	// tick overslept. without the adjustment the rate drifts noticeably low
	go func() {
		adjusted := lim.secondsPerFrame
		t := time.Now()
		for {
			lim.tick <- true
			time.Sleep(adjusted)
			nt := time.Now()
			adjusted -= nt.Sub(t) - lim.secondsPerFrame
			t = nt
		}
	}()

	return lim
}

// Wait blocks until the next tick.
func (lim *FpsLimiter) Wait() {
	<-lim.tick
}

// HasWaited returns true if a tick has already elapsed, without blocking.
func (lim *FpsLimiter) HasWaited() bool {
	select {
	case <-lim.tick:
		return true
	default:
		return false
	}
}
