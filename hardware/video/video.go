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

// Package video implements the timing state machine of the LCD controller
// and the composition of the frame. The chip cycles through OAM search,
// pixel transfer and horizontal blank on every visible scanline, publishing
// its progress through the LY and STAT registers; the frame itself is
// rendered a scanline at a time at the end of each pixel transfer and
// handed to the attached renderers at the start of the vertical blank.
package video

import (
	"fmt"

	"dmgopher/hardware/interrupts"
	"dmgopher/hardware/memory/addresses"
	"dmgopher/hardware/memory/bus"
)

// the phases of a scanline, as reported in the low two bits of the STAT
// register.
type Mode uint8

// the list of modes. HBlank and VBlank are the only phases in which the
// CPU can freely access all of video memory.
const (
	ModeHBlank Mode = iota
	ModeVBlank
	ModeOAMSearch
	ModePixelTransfer
)

func (m Mode) String() string {
	switch m {
	case ModeHBlank:
		return "hblank"
	case ModeVBlank:
		return "vblank"
	case ModeOAMSearch:
		return "oam search"
	case ModePixelTransfer:
		return "pixel transfer"
	}
	return "unknown"
}

// the cycle budget of each phase. a scanline is always 456 cycles; a frame
// is always 154 scanlines.
const (
	ClksOAMSearch     = 80
	ClksPixelTransfer = 172
	ClksHBlank        = 204
	ClksScanline      = ClksOAMSearch + ClksPixelTransfer + ClksHBlank
	ScanlinesVisible  = 144
	ScanlinesTotal    = 154
	ClksFrame         = ClksScanline * ScanlinesTotal
)

// the STAT interrupt enable bits.
const (
	statIntHBlank    = uint8(0x08)
	statIntVBlank    = uint8(0x10)
	statIntOAMSearch = uint8(0x20)
	statIntLYC       = uint8(0x40)
)

// Video implements the LCD controller chip.
type Video struct {
	mem  bus.ChipBus
	ints *interrupts.Controller

	renderers []PixelRenderer
	triggers  []FrameTrigger

	mode  Mode
	clock int // cycles spent in the current mode
	line  int // mirrors the LY register

	// the window keeps its own line counter, advancing only on scanlines
	// where the window is visible
	windowLine int

	frameNum int
	frame    FrameBuffer

	// tracks the LCD enable bit so the off transition can be seen
	lcdWasEnabled bool
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo(mem bus.ChipBus, ints *interrupts.Controller) *Video {
	vid := &Video{
		mem:  mem,
		ints: ints,
	}
	vid.Initialise()
	return vid
}

func (vid *Video) String() string {
	return fmt.Sprintf("FR=%d SL=%d CL=%d %s", vid.frameNum, vid.line, vid.clock, vid.mode)
}

// Initialise the video chip to its state at power-on.
func (vid *Video) Initialise() {
	vid.mode = ModeOAMSearch
	vid.clock = 0
	vid.line = 0
	vid.windowLine = 0
	vid.frameNum = 0
	vid.frame = FrameBuffer{}
	vid.lcdWasEnabled = true
}

// AddPixelRenderer adds an implementation of PixelRenderer.
func (vid *Video) AddPixelRenderer(r PixelRenderer) {
	vid.renderers = append(vid.renderers, r)
}

// AddFrameTrigger adds an implementation of FrameTrigger.
func (vid *Video) AddFrameTrigger(t FrameTrigger) {
	vid.triggers = append(vid.triggers, t)
}

// Frame returns the number of the last completed frame.
func (vid *Video) Frame() int {
	return vid.frameNum
}

// End cleans up the attached renderers. Called when the emulation is
// shutting down.
func (vid *Video) End() error {
	for _, r := range vid.renderers {
		if err := r.EndRendering(); err != nil {
			return err
		}
	}
	return nil
}

// Step the video chip forward by the number of cycles consumed by the last
// CPU instruction.
func (vid *Video) Step(cycles int) error {
	lcdc := vid.mem.ChipRead(addresses.LCDC)

	if lcdc&0x80 == 0x00 {
		if vid.lcdWasEnabled {
			// switching the LCD off resets the chip and blanks the screen
			vid.lcdWasEnabled = false
			vid.line = 0
			vid.clock = 0
			vid.windowLine = 0
			vid.frame = FrameBuffer{}
			vid.mem.ChipWrite(addresses.LY, 0x00)
			vid.setMode(ModeHBlank)
		}
		return nil
	}

	if !vid.lcdWasEnabled {
		vid.lcdWasEnabled = true
		vid.mode = ModeOAMSearch
		vid.clock = 0
	}

	vid.clock += cycles

	// an instruction can cross more than one phase boundary when the
	// remaining budget of the current phase is small
	for {
		switch vid.mode {
		case ModeOAMSearch:
			if vid.clock < ClksOAMSearch {
				return nil
			}
			vid.clock -= ClksOAMSearch
			vid.setMode(ModePixelTransfer)

		case ModePixelTransfer:
			if vid.clock < ClksPixelTransfer {
				return nil
			}
			vid.clock -= ClksPixelTransfer
			vid.renderScanline()
			vid.setMode(ModeHBlank)

		case ModeHBlank:
			if vid.clock < ClksHBlank {
				return nil
			}
			vid.clock -= ClksHBlank
			vid.advanceLine()

			if vid.line == ScanlinesVisible {
				vid.setMode(ModeVBlank)
				vid.ints.Raise(interrupts.VBlank)
				if err := vid.newFrame(); err != nil {
					return err
				}
			} else {
				vid.setMode(ModeOAMSearch)
			}

		case ModeVBlank:
			if vid.clock < ClksScanline {
				return nil
			}
			vid.clock -= ClksScanline
			vid.advanceLine()

			if vid.line == 0 {
				vid.windowLine = 0
				vid.setMode(ModeOAMSearch)
			}
		}
	}
}

// advanceLine moves to the next scanline, publishing LY and checking the
// LYC coincidence.
func (vid *Video) advanceLine() {
	vid.line++
	if vid.line == ScanlinesTotal {
		vid.line = 0
	}
	vid.mem.ChipWrite(addresses.LY, uint8(vid.line))

	stat := vid.mem.ChipRead(addresses.STAT)
	if uint8(vid.line) == vid.mem.ChipRead(addresses.LYC) {
		vid.mem.ChipWrite(addresses.STAT, stat|0x04)
		if stat&statIntLYC == statIntLYC {
			vid.ints.Raise(interrupts.STAT)
		}
	} else {
		vid.mem.ChipWrite(addresses.STAT, stat&^uint8(0x04))
	}
}

// setMode publishes the new mode through the STAT register and raises the
// STAT interrupt if the mode's enable bit is set.
func (vid *Video) setMode(mode Mode) {
	vid.mode = mode

	stat := vid.mem.ChipRead(addresses.STAT)
	vid.mem.ChipWrite(addresses.STAT, stat&0xfc|uint8(mode))

	var intBit uint8
	switch mode {
	case ModeHBlank:
		intBit = statIntHBlank
	case ModeVBlank:
		intBit = statIntVBlank
	case ModeOAMSearch:
		intBit = statIntOAMSearch
	case ModePixelTransfer:
		return
	}

	if stat&intBit == intBit {
		vid.ints.Raise(interrupts.STAT)
	}
}

// newFrame hands the completed frame to the renderers and the triggers.
func (vid *Video) newFrame() error {
	vid.frameNum++

	for _, r := range vid.renderers {
		if err := r.NewFrame(vid.frameNum, &vid.frame); err != nil {
			return err
		}
	}
	for _, t := range vid.triggers {
		if err := t.NewFrame(vid.frameNum); err != nil {
			return err
		}
	}

	return nil
}
