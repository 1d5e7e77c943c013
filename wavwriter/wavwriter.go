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

// Package wavwriter allows writing of audio data to disk as a WAV file. Note
// that audio data is buffered in memory in its entirety, and written to disk
// on program end. It is therefore probably only suitable for testing purposes.
package wavwriter

import (
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"dmgopher/curated"
	"dmgopher/hardware/audio"
	"dmgopher/logger"
)

// WavWriter implements the audio.Mixer interface.
type WavWriter struct {
	filename string
	buffer   []int
}

// NewWavWriter is the preferred method of initialisation for the WavWriter
// type.
func NewWavWriter(filename string) (*WavWriter, error) {
	aw := &WavWriter{
		filename: filename,
		buffer:   make([]int, 0, audio.SampleFreq),
	}

	return aw, nil
}

// SetAudio implements the audio.Mixer interface.
func (aw *WavWriter) SetAudio(sample uint8) error {
	aw.buffer = append(aw.buffer, int(sample))
	return nil
}

// EndMixing implements the audio.Mixer interface.
func (aw *WavWriter) EndMixing() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewEncoder(f, audio.SampleFreq, 8, 1, 1)

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  audio.SampleFreq,
		},
		Data:           aw.buffer,
		SourceBitDepth: 8,
	}

	err = enc.Write(buf)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	err = enc.Close()
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	logger.Logf("wavwriter", "%d samples written to %s", len(aw.buffer), aw.filename)

	return nil
}
