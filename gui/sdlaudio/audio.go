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

// Package sdlaudio outputs the sound unit's sample stream through SDL.
package sdlaudio

import (
	"time"

	"dmgopher/hardware/audio"

	"github.com/veandco/go-sdl2/sdl"
)

// the buffer length is a compromise. too long and the sound lags behind the
// picture; too short and we call QueueAudio() more often than we need to.
// the value was found by trial and error and is not critical.
const bufferLength = 512

// Audio outputs sound using SDL. It implements the audio.Mixer interface.
type Audio struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	// two buffers, swapped after every flush. when the device underruns the
	// previous buffer is queued again, which sounds a lot better than the
	// click of a transition to true silence
	buffer   *[]uint8
	other    *[]uint8
	bufferA  []uint8
	bufferB  []uint8
	bufferCt int

	isBufferEmpty chan bool
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() (*Audio, error) {
	aud := &Audio{
		isBufferEmpty: make(chan bool),
	}

	aud.bufferA = make([]uint8, bufferLength)
	aud.bufferB = make([]uint8, bufferLength)
	aud.buffer = &aud.bufferA
	aud.other = &aud.bufferB

	spec := &sdl.AudioSpec{
		Freq:     audio.SampleFreq,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  uint16(bufferLength),
	}

	var err error
	var actualSpec sdl.AudioSpec

	aud.id, err = sdl.OpenAudioDevice("", false, spec, &actualSpec, 0)
	if err != nil {
		return nil, err
	}
	aud.spec = actualSpec

	for i := range aud.bufferA {
		aud.bufferA[i] = aud.spec.Silence
	}
	for i := range aud.bufferB {
		aud.bufferB[i] = aud.spec.Silence
	}

	// tick at the rate the device consumes a buffer's worth of samples.
	// used to spot underruns
	go func() {
		freq := float64(audio.SampleFreq)
		dur := time.Duration(float64(time.Second) * bufferLength / freq)
		tck := time.NewTicker(dur)
		for range tck.C {
			aud.isBufferEmpty <- true
		}
	}()

	sdl.PauseAudioDevice(aud.id, false)

	return aud, nil
}

// SetAudio implements the audio.Mixer interface.
func (aud *Audio) SetAudio(sample uint8) error {
	select {
	case <-aud.isBufferEmpty:
		_ = aud.repeatAudio()
	default:
	}

	if sample == 0x00 {
		(*aud.buffer)[aud.bufferCt] = aud.spec.Silence
	} else {
		(*aud.buffer)[aud.bufferCt] = sample + aud.spec.Silence
	}
	aud.bufferCt++

	if aud.bufferCt >= len(*aud.buffer) {
		return aud.flushAudio()
	}

	return nil
}

func (aud *Audio) flushAudio() error {
	sdl.ClearQueuedAudio(aud.id)
	if err := sdl.QueueAudio(aud.id, *aud.buffer); err != nil {
		return err
	}
	aud.bufferCt = 0
	aud.buffer, aud.other = aud.other, aud.buffer
	return nil
}

func (aud *Audio) repeatAudio() error {
	return sdl.QueueAudio(aud.id, *aud.other)
}

// EndMixing implements the audio.Mixer interface.
func (aud *Audio) EndMixing() error {
	defer sdl.CloseAudioDevice(aud.id)
	return aud.flushAudio()
}
