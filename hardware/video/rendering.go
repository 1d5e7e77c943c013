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

package video

import (
	"dmgopher/hardware/memory/addresses"
)

// the LCDC control bits.
const (
	lcdcBGEnable     = uint8(0x01)
	lcdcSpriteEnable = uint8(0x02)
	lcdcSpriteSize   = uint8(0x04)
	lcdcBGMap        = uint8(0x08)
	lcdcTileData     = uint8(0x10)
	lcdcWindowEnable = uint8(0x20)
	lcdcWindowMap    = uint8(0x40)
	lcdcEnable       = uint8(0x80)
)

// shade resolves a 2-bit colour number through one of the palette
// registers.
func shade(palette uint8, colour uint8) uint8 {
	return palette >> (colour * 2) & 0x03
}

// renderScanline composes the current scanline into the frame buffer. It
// runs at the end of the pixel transfer phase, when the registers hold the
// values the hardware would have used.
func (vid *Video) renderScanline() {
	y := vid.line
	lcdc := vid.mem.ChipRead(addresses.LCDC)

	// colour numbers before the palette is applied. sprite priority needs
	// to know whether the background pixel was colour zero
	var raw [ScreenWidth]uint8

	vid.renderBackground(y, lcdc, &raw)
	vid.renderSprites(y, lcdc, &raw)
}

func (vid *Video) renderBackground(y int, lcdc uint8, raw *[ScreenWidth]uint8) {
	bgp := vid.mem.ChipRead(addresses.BGP)

	if lcdc&lcdcBGEnable == 0x00 {
		// background and window are blanked together
		for x := 0; x < ScreenWidth; x++ {
			raw[x] = 0x00
			vid.frame[y][x] = shade(bgp, 0x00)
		}
		return
	}

	scy := int(vid.mem.ChipRead(addresses.SCY))
	scx := int(vid.mem.ChipRead(addresses.SCX))
	wy := int(vid.mem.ChipRead(addresses.WY))
	wx := int(vid.mem.ChipRead(addresses.WX)) - 7

	bgMap := mapBase(lcdc & lcdcBGMap)
	winMap := mapBase(lcdc & lcdcWindowMap)

	windowOnLine := lcdc&lcdcWindowEnable == lcdcWindowEnable && y >= wy && wx < ScreenWidth
	windowUsed := false

	for x := 0; x < ScreenWidth; x++ {
		var colour uint8

		if windowOnLine && x >= wx {
			colour = vid.tilePixel(winMap, x-wx, vid.windowLine, lcdc)
			windowUsed = true
		} else {
			colour = vid.tilePixel(bgMap, (x+scx)&0xff, (y+scy)&0xff, lcdc)
		}

		raw[x] = colour
		vid.frame[y][x] = shade(bgp, colour)
	}

	// the window line counter only advances on scanlines where the window
	// was actually drawn
	if windowUsed {
		vid.windowLine++
	}
}

func mapBase(bit uint8) uint16 {
	if bit != 0x00 {
		return 0x9c00
	}
	return 0x9800
}

// tilePixel resolves a pixel coordinate in one of the 256x256 tile planes
// to a colour number.
func (vid *Video) tilePixel(mapAddr uint16, x, y int, lcdc uint8) uint8 {
	tileIdx := vid.mem.ChipRead(mapAddr + uint16(y/8)*32 + uint16(x/8))

	// the two tile data addressing modes: unsigned from 0x8000 or signed
	// around 0x9000
	var tileAddr uint16
	if lcdc&lcdcTileData == lcdcTileData {
		tileAddr = 0x8000 + uint16(tileIdx)*16
	} else {
		tileAddr = uint16(0x9000 + int(int8(tileIdx))*16)
	}

	lo := vid.mem.ChipRead(tileAddr + uint16(y%8)*2)
	hi := vid.mem.ChipRead(tileAddr + uint16(y%8)*2 + 1)

	bit := uint(7 - x%8)
	return (hi>>bit&0x01)<<1 | lo>>bit&0x01
}

// the sprite attribute bits.
const (
	sprPalette  = uint8(0x10)
	sprFlipX    = uint8(0x20)
	sprFlipY    = uint8(0x40)
	sprBehindBG = uint8(0x80)
)

// the hardware can only show ten sprites on any one scanline.
const maxSpritesPerLine = 10

func (vid *Video) renderSprites(y int, lcdc uint8, raw *[ScreenWidth]uint8) {
	if lcdc&lcdcSpriteEnable == 0x00 {
		return
	}

	height := 8
	if lcdc&lcdcSpriteSize == lcdcSpriteSize {
		height = 16
	}

	// pixels already claimed by an earlier sprite. earlier OAM entries win
	var drawn [ScreenWidth]bool

	count := 0
	for s := uint16(0); s < 40 && count < maxSpritesPerLine; s++ {
		base := addresses.OriginOAM + s*4
		sy := int(vid.mem.ChipRead(base)) - 16
		sx := int(vid.mem.ChipRead(base+1)) - 8
		tile := vid.mem.ChipRead(base + 2)
		attr := vid.mem.ChipRead(base + 3)

		row := y - sy
		if row < 0 || row >= height {
			continue
		}
		count++

		if attr&sprFlipY == sprFlipY {
			row = height - 1 - row
		}

		// in 8x16 mode the low bit of the tile number is ignored
		if height == 16 {
			tile &= 0xfe
		}

		tileAddr := 0x8000 + uint16(tile)*16 + uint16(row)*2
		lo := vid.mem.ChipRead(tileAddr)
		hi := vid.mem.ChipRead(tileAddr + 1)

		palette := vid.mem.ChipRead(addresses.OBP0)
		if attr&sprPalette == sprPalette {
			palette = vid.mem.ChipRead(addresses.OBP1)
		}

		for px := 0; px < 8; px++ {
			x := sx + px
			if x < 0 || x >= ScreenWidth || drawn[x] {
				continue
			}

			bit := uint(7 - px)
			if attr&sprFlipX == sprFlipX {
				bit = uint(px)
			}

			colour := (hi>>bit&0x01)<<1 | lo>>bit&0x01
			if colour == 0x00 {
				// colour zero is transparent for sprites
				continue
			}

			if attr&sprBehindBG == sprBehindBG && raw[x] != 0x00 {
				continue
			}

			vid.frame[y][x] = shade(palette, colour)
			drawn[x] = true
		}
	}
}
