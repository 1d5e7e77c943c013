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

package video_test

import (
	"testing"

	"dmgopher/hardware/interrupts"
	"dmgopher/hardware/memory/addresses"
	"dmgopher/hardware/video"
	"dmgopher/test"
)

type mockChipBus struct {
	internal [0x10000]uint8
}

func (mem *mockChipBus) ChipRead(address uint16) uint8 {
	return mem.internal[address]
}

func (mem *mockChipBus) ChipWrite(address uint16, data uint8) {
	mem.internal[address] = data
}

// captureRenderer stores the most recent completed frame.
type captureRenderer struct {
	frameNum int
	frame    video.FrameBuffer
}

func (cap *captureRenderer) NewFrame(frameNum int, pixels *video.FrameBuffer) error {
	cap.frameNum = frameNum
	cap.frame = *pixels
	return nil
}

func (cap *captureRenderer) EndRendering() error {
	return nil
}

func newTestVideo() (*video.Video, *mockChipBus) {
	mem := &mockChipBus{}
	ints := interrupts.NewController(mem)
	vid := video.NewVideo(mem, ints)
	mem.internal[addresses.LCDC] = 0x91
	mem.internal[addresses.IE] = 0xff
	return vid, mem
}

func stepVideo(t *testing.T, vid *video.Video, cycles int) {
	t.Helper()
	if err := vid.Step(cycles); err != nil {
		t.Fatal(err)
	}
}

func TestModeSequence(t *testing.T) {
	vid, mem := newTestVideo()

	// a scanline is OAM search, pixel transfer, horizontal blank
	stepVideo(t, vid, video.ClksOAMSearch)
	test.Equate(t, mem.internal[addresses.STAT]&0x03, 0x03)

	stepVideo(t, vid, video.ClksPixelTransfer)
	test.Equate(t, mem.internal[addresses.STAT]&0x03, 0x00)

	stepVideo(t, vid, video.ClksHBlank)
	test.Equate(t, mem.internal[addresses.LY], 0x01)
	test.Equate(t, mem.internal[addresses.STAT]&0x03, 0x02)
}

func TestModeCrossing(t *testing.T) {
	vid, mem := newTestVideo()

	// a single step can cross several phase boundaries
	stepVideo(t, vid, video.ClksScanline+video.ClksOAMSearch)
	test.Equate(t, mem.internal[addresses.LY], 0x01)
	test.Equate(t, mem.internal[addresses.STAT]&0x03, 0x03)
}

func TestFrameBudget(t *testing.T) {
	vid, mem := newTestVideo()

	cap := &captureRenderer{}
	vid.AddPixelRenderer(cap)

	// a frame is exactly 154 scanlines of 456 cycles
	for i := 0; i < video.ClksFrame/4; i++ {
		stepVideo(t, vid, 4)
	}

	test.Equate(t, vid.Frame(), 1)
	test.Equate(t, cap.frameNum, 1)
	test.Equate(t, mem.internal[addresses.LY], 0x00)
	test.Equate(t, mem.internal[addresses.STAT]&0x03, 0x02)
}

func TestVBlankInterrupt(t *testing.T) {
	vid, mem := newTestVideo()

	// run to the end of the last visible scanline
	stepVideo(t, vid, video.ClksScanline*video.ScanlinesVisible)
	test.Equate(t, mem.internal[addresses.LY], uint8(video.ScanlinesVisible))
	test.Equate(t, mem.internal[addresses.STAT]&0x03, 0x01)
	test.Equate(t, mem.internal[addresses.IF]&0x01, 0x01)
}

func TestLYCCoincidence(t *testing.T) {
	vid, mem := newTestVideo()

	mem.internal[addresses.LYC] = 0x02
	mem.internal[addresses.STAT] = 0x40

	stepVideo(t, vid, video.ClksScanline)
	test.Equate(t, mem.internal[addresses.STAT]&0x04, 0x00)
	test.Equate(t, mem.internal[addresses.IF]&0x02, 0x00)

	stepVideo(t, vid, video.ClksScanline)
	test.Equate(t, mem.internal[addresses.LY], 0x02)
	test.Equate(t, mem.internal[addresses.STAT]&0x04, 0x04)
	test.Equate(t, mem.internal[addresses.IF]&0x02, 0x02)

	// the coincidence flag clears on the next line
	stepVideo(t, vid, video.ClksScanline)
	test.Equate(t, mem.internal[addresses.STAT]&0x04, 0x00)
}

func TestLCDOff(t *testing.T) {
	vid, mem := newTestVideo()

	stepVideo(t, vid, video.ClksScanline*3)
	test.Equate(t, mem.internal[addresses.LY], 0x03)

	// switching the LCD off resets the chip
	mem.internal[addresses.LCDC] = 0x00
	stepVideo(t, vid, 4)
	test.Equate(t, mem.internal[addresses.LY], 0x00)
	test.Equate(t, mem.internal[addresses.STAT]&0x03, 0x00)

	// time does not pass while the LCD is off
	stepVideo(t, vid, video.ClksFrame)
	test.Equate(t, mem.internal[addresses.LY], 0x00)
}

// fill one tile's worth of tile data with a solid colour number.
func fillTile(mem *mockChipBus, tile uint16, colour uint8) {
	var lo, hi uint8
	if colour&0x01 == 0x01 {
		lo = 0xff
	}
	if colour&0x02 == 0x02 {
		hi = 0xff
	}
	for row := uint16(0); row < 8; row++ {
		mem.internal[0x8000+tile*16+row*2] = lo
		mem.internal[0x8000+tile*16+row*2+1] = hi
	}
}

func TestBackgroundRendering(t *testing.T) {
	vid, mem := newTestVideo()

	cap := &captureRenderer{}
	vid.AddPixelRenderer(cap)

	// the background map is all zeroes, so every pixel comes from tile 0.
	// colour 1 maps to shade 1 through the identity palette
	fillTile(mem, 0, 0x01)
	mem.internal[addresses.BGP] = 0xe4

	stepVideo(t, vid, video.ClksFrame)

	test.Equate(t, cap.frame[0][0], 0x01)
	test.Equate(t, cap.frame[143][159], 0x01)
}

func TestBackgroundDisabled(t *testing.T) {
	vid, mem := newTestVideo()

	cap := &captureRenderer{}
	vid.AddPixelRenderer(cap)

	// BG enable clear. the screen shows shade zero through the palette
	mem.internal[addresses.LCDC] = 0x90
	fillTile(mem, 0, 0x01)
	mem.internal[addresses.BGP] = 0xe7 // shade 3 for colour 0

	stepVideo(t, vid, video.ClksFrame)
	test.Equate(t, cap.frame[0][0], 0x03)
}

func TestSpriteRendering(t *testing.T) {
	vid, mem := newTestVideo()

	cap := &captureRenderer{}
	vid.AddPixelRenderer(cap)

	// sprites enabled on top of a blank background
	mem.internal[addresses.LCDC] = 0x93
	mem.internal[addresses.BGP] = 0xe4
	mem.internal[addresses.OBP0] = 0xe4

	fillTile(mem, 1, 0x03)

	// sprite at the top left corner of the screen
	mem.internal[addresses.OriginOAM] = 16  // y
	mem.internal[addresses.OriginOAM+1] = 8 // x
	mem.internal[addresses.OriginOAM+2] = 1 // tile
	mem.internal[addresses.OriginOAM+3] = 0 // attributes

	stepVideo(t, vid, video.ClksFrame)

	test.Equate(t, cap.frame[0][0], 0x03)
	test.Equate(t, cap.frame[7][7], 0x03)

	// outside the sprite the background shows through
	test.Equate(t, cap.frame[8][8], 0x00)
}

func TestSpriteBehindBackground(t *testing.T) {
	vid, mem := newTestVideo()

	cap := &captureRenderer{}
	vid.AddPixelRenderer(cap)

	mem.internal[addresses.LCDC] = 0x93
	mem.internal[addresses.BGP] = 0xe4
	mem.internal[addresses.OBP0] = 0xe4

	// background colour 1 everywhere; sprite colour 3 flagged as behind
	// the background only shows where the background is colour 0
	fillTile(mem, 0, 0x01)
	fillTile(mem, 1, 0x03)

	mem.internal[addresses.OriginOAM] = 16
	mem.internal[addresses.OriginOAM+1] = 8
	mem.internal[addresses.OriginOAM+2] = 1
	mem.internal[addresses.OriginOAM+3] = 0x80

	stepVideo(t, vid, video.ClksFrame)

	test.Equate(t, cap.frame[0][0], 0x01)
}

func TestSnapshot(t *testing.T) {
	vid, mem := newTestVideo()

	stepVideo(t, vid, video.ClksScanline*5+40)

	snapshot := vid.Snapshot()

	stepVideo(t, vid, video.ClksFrame/2)
	vid.Plumb(snapshot)

	// LY and STAT live in the address space and are restored with it, not
	// with the chip
	mem.internal[addresses.LY] = 0x05

	// the restored chip advances exactly as the original would have
	stepVideo(t, vid, video.ClksOAMSearch-40)
	test.Equate(t, mem.internal[addresses.STAT]&0x03, 0x03)
	test.Equate(t, mem.internal[addresses.LY], 0x05)
}
