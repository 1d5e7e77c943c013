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

// Package audio implements the four channel sound unit. The CPU core does
// not interpret the sound registers itself; writes arrive here unchanged
// through the address space and the unit turns them into a stream of mono
// samples for the attached mixers.
package audio

import (
	"dmgopher/hardware/memory/addresses"
	"dmgopher/hardware/memory/bus"
)

// SampleFreq is the rate at which samples are pushed to the mixers.
const SampleFreq = 44100

// the CPU clock, from which every audio period is derived.
const clockFreq = 4194304

// cycles between samples and between frame sequencer steps.
const (
	sampleCycles    = clockFreq / SampleFreq
	sequencerCycles = 8192 // 512Hz
)

// Mixer implementations consume the sample stream. More than one mixer can
// be attached; the screen and a WAV recorder for example.
type Mixer interface {
	SetAudio(sample uint8) error

	// EndMixing is called when the emulation is shutting down
	EndMixing() error
}

// Audio implements the sound unit.
type Audio struct {
	mem    bus.ChipBus
	mixers []Mixer

	// NR52 bit 7. when clear the whole unit is silent and the channel
	// registers are unwritable on real hardware (a nicety we don't enforce)
	enabled bool

	// the frame sequencer drives the length, envelope and sweep units
	seqClock int
	seqStep  int

	sampleClock int

	square1 squareChannel
	square2 squareChannel
	wave    waveChannel
	noise   noiseChannel
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio(mem bus.ChipBus) *Audio {
	au := &Audio{mem: mem}
	au.Initialise()
	return au
}

// Initialise the sound unit to its state at power-on.
func (au *Audio) Initialise() {
	au.enabled = true
	au.seqClock = 0
	au.seqStep = 0
	au.sampleClock = 0
	au.square1 = squareChannel{hasSweep: true}
	au.square2 = squareChannel{}
	au.wave = waveChannel{mem: au.mem}
	au.noise = noiseChannel{}
}

// AddMixer adds an implementation of Mixer.
func (au *Audio) AddMixer(m Mixer) {
	au.mixers = append(au.mixers, m)
}

// End cleans up the attached mixers. Called when the emulation is shutting
// down.
func (au *Audio) End() error {
	for _, m := range au.mixers {
		if err := m.EndMixing(); err != nil {
			return err
		}
	}
	return nil
}

// RegisterWrite is an implementation of the bus.RegisterWriteHandler
// interface. The address space calls it when the CPU writes to one of the
// sound registers.
func (au *Audio) RegisterWrite(address uint16, data uint8) {
	switch address {
	case addresses.NR10:
		au.square1.writeSweep(data)
	case addresses.NR11:
		au.square1.writeDutyLength(data)
	case addresses.NR12:
		au.square1.writeEnvelope(data)
	case addresses.NR13:
		au.square1.writeFreqLow(data)
	case addresses.NR14:
		au.square1.writeFreqHigh(data)

	case addresses.NR21:
		au.square2.writeDutyLength(data)
	case addresses.NR22:
		au.square2.writeEnvelope(data)
	case addresses.NR23:
		au.square2.writeFreqLow(data)
	case addresses.NR24:
		au.square2.writeFreqHigh(data)

	case addresses.NR30:
		au.wave.writeDAC(data)
	case addresses.NR31:
		au.wave.writeLength(data)
	case addresses.NR32:
		au.wave.writeVolume(data)
	case addresses.NR33:
		au.wave.writeFreqLow(data)
	case addresses.NR34:
		au.wave.writeFreqHigh(data)

	case addresses.NR41:
		au.noise.writeLength(data)
	case addresses.NR42:
		au.noise.writeEnvelope(data)
	case addresses.NR43:
		au.noise.writeClock(data)
	case addresses.NR44:
		au.noise.writeTrigger(data)

	case addresses.NR52:
		au.enabled = data&0x80 == 0x80
		if !au.enabled {
			au.square1.enabled = false
			au.square2.enabled = false
			au.wave.enabled = false
			au.noise.enabled = false
		}
	}
}

// Step the sound unit forward by the number of cycles consumed by the last
// CPU instruction.
func (au *Audio) Step(cycles int) error {
	au.square1.step(cycles)
	au.square2.step(cycles)
	au.wave.step(cycles)
	au.noise.step(cycles)

	au.seqClock += cycles
	for au.seqClock >= sequencerCycles {
		au.seqClock -= sequencerCycles
		au.sequencerStep()
	}

	au.sampleClock += cycles
	for au.sampleClock >= sampleCycles {
		au.sampleClock -= sampleCycles
		sample := au.mix()
		for _, m := range au.mixers {
			if err := m.SetAudio(sample); err != nil {
				return err
			}
		}
	}

	return nil
}

// sequencerStep advances the 512Hz frame sequencer. Length counters clock
// on the even steps, the sweep unit on steps two and six, the envelopes on
// step seven.
func (au *Audio) sequencerStep() {
	au.seqStep = (au.seqStep + 1) & 0x07

	if au.seqStep&0x01 == 0x00 {
		au.square1.stepLength()
		au.square2.stepLength()
		au.wave.stepLength()
		au.noise.stepLength()
	}

	if au.seqStep == 2 || au.seqStep == 6 {
		au.square1.stepSweep()
	}

	if au.seqStep == 7 {
		au.square1.stepEnvelope()
		au.square2.stepEnvelope()
		au.noise.stepEnvelope()
	}
}

// mix the four channel outputs into a single unsigned 8-bit sample.
func (au *Audio) mix() uint8 {
	if !au.enabled {
		return 0x00
	}

	// each channel output is at most 15; the sum fits comfortably when
	// scaled by four
	sum := int(au.square1.output) + int(au.square2.output) + int(au.wave.output) + int(au.noise.output)
	return uint8(sum * 255 / 60)
}
