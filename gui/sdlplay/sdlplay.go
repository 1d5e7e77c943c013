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

// Package sdlplay is the SDL implementation of the gui.GUI interface. It is
// a bare window showing the emulated screen, suitable for playing games in.
// Anything more ambitious should use the debugger.
package sdlplay

import (
	"dmgopher/gui"
	"dmgopher/gui/sdlaudio"
	"dmgopher/hardware"
	"dmgopher/hardware/video"
	"dmgopher/performance/limiter"

	"github.com/veandco/go-sdl2/sdl"
)

// bytes per pixel in the texture. RGB plus an alpha channel we never touch.
const pixelDepth = 4

// the frame rate of the machine. the clock frequency divided by the length
// of a frame in cycles.
const framesPerSecond = float64(hardware.ClockFreq) / float64(video.ClksFrame)

// SdlPlay is a simple SDL implementation of the gui.GUI interface.
type SdlPlay struct {
	// connects the SDL event queue with the parent process
	events chan gui.Event

	// limit screen updates to the frame rate of the machine
	lmtr   *limiter.FpsLimiter
	fpsCap bool

	// all sound is handled by the sdlaudio package
	aud *sdlaudio.Audio

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	// the byte array we copy to the texture every NewFrame()
	pixels []byte

	scale float32
}

// NewSdlPlay is the preferred method of initialisation for the SdlPlay
// type. The returned GUI is registered with the machine's video and audio
// chips as a side effect.
func NewSdlPlay(dmg *hardware.DMG, scale float32) (*SdlPlay, error) {
	scr := &SdlPlay{
		lmtr:   limiter.NewFpsLimiter(framesPerSecond),
		fpsCap: true,
		pixels: make([]byte, video.ScreenWidth*video.ScreenHeight*pixelDepth),
	}

	if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
		return nil, err
	}

	// the alpha channel is preset and never changed
	for i := pixelDepth - 1; i < len(scr.pixels); i += pixelDepth {
		scr.pixels[i] = 255
	}

	var err error

	// window size is set by the scale request below
	scr.window, err = sdl.CreateWindow("DMGopher",
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		0, 0,
		uint32(sdl.WINDOW_HIDDEN))
	if err != nil {
		return nil, err
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return nil, err
	}

	// the texture is the same size as the emulated screen. scaling is
	// applied when it is copied to the renderer
	scr.texture, err = scr.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING),
		video.ScreenWidth, video.ScreenHeight)
	if err != nil {
		return nil, err
	}

	if err := scr.setScaling(scale); err != nil {
		return nil, err
	}

	scr.aud, err = sdlaudio.NewAudio()
	if err != nil {
		return nil, err
	}

	dmg.Video.AddPixelRenderer(scr)
	dmg.Audio.AddMixer(scr.aud)

	setupService()

	// the window is not shown on startup. it is opened on a
	// ReqSetVisibility request

	return scr, nil
}

func (scr *SdlPlay) setScaling(scale float32) error {
	if scale <= 0 {
		scale = 1
	}
	scr.scale = scale

	w := int32(float32(video.ScreenWidth) * scale)
	h := int32(float32(video.ScreenHeight) * scale)
	scr.window.SetSize(w, h)

	return scr.renderer.SetScale(scale, scale)
}

func (scr *SdlPlay) showWindow(show bool) {
	if show {
		scr.window.Show()
	} else {
		scr.window.Hide()
	}
}

// NewFrame implements the video.PixelRenderer interface.
func (scr *SdlPlay) NewFrame(frameNum int, pixels *video.FrameBuffer) error {
	for y := 0; y < video.ScreenHeight; y++ {
		for x := 0; x < video.ScreenWidth; x++ {
			col := video.Palette[pixels[y][x]&0x03]
			i := (y*video.ScreenWidth + x) * pixelDepth
			scr.pixels[i] = col[0]
			scr.pixels[i+1] = col[1]
			scr.pixels[i+2] = col[2]
		}
	}

	if err := scr.texture.Update(nil, scr.pixels, video.ScreenWidth*pixelDepth); err != nil {
		return err
	}
	if err := scr.renderer.Copy(scr.texture, nil, nil); err != nil {
		return err
	}
	scr.renderer.Present()

	return nil
}

// EndRendering implements the video.PixelRenderer interface.
func (scr *SdlPlay) EndRendering() error {
	scr.window.Destroy()
	return nil
}
