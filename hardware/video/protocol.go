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

// the dimensions of the visible screen.
const (
	ScreenWidth  = 160
	ScreenHeight = 144
)

// FrameBuffer is a completed frame. Each pixel is a shade identity from 0
// (lightest) to 3 (darkest); the display palettes have already been
// applied. Mapping shades to colours is the renderer's business.
type FrameBuffer [ScreenHeight][ScreenWidth]uint8

// Palette is the suggested colour for each shade, in RGB. Renderers are
// free to ignore it.
var Palette = [4][3]uint8{
	{0x9b, 0xbc, 0x0f},
	{0x8b, 0xac, 0x0f},
	{0x30, 0x62, 0x30},
	{0x0f, 0x38, 0x0f},
}

// PixelRenderer implementations displays, or otherwise works with, the
// completed frames produced by the video chip. A renderer is handed the
// frame once per vertical blank.
type PixelRenderer interface {
	NewFrame(frameNum int, pixels *FrameBuffer) error

	// EndRendering is called when the emulation is shutting down
	EndRendering() error
}

// FrameTrigger implementations are notified at the start of the vertical
// blank without being handed any pixels. Useful for frame pacing and for
// hosts that only care that a frame has passed.
type FrameTrigger interface {
	NewFrame(frameNum int) error
}
