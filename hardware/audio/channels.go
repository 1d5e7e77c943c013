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

package audio

import (
	"dmgopher/hardware/memory/addresses"
	"dmgopher/hardware/memory/bus"
)

// the four duty cycle patterns of the square channels, one bit per eighth
// of the waveform.
var dutyPatterns = [4]uint8{0x01, 0x81, 0x87, 0x7e}

// squareChannel implements the two square wave channels. Only the first
// carries a sweep unit.
type squareChannel struct {
	enabled  bool
	hasSweep bool

	duty     uint8
	dutyStep int

	freq  uint16 // 11 bits
	timer int

	// volume envelope
	envVolume    uint8
	envInitial   uint8
	envIncrease  bool
	envPeriod    uint8
	envCounter   uint8

	// length counter
	length       int
	lengthEnable bool

	// frequency sweep
	sweepPeriod  uint8
	sweepNegate  bool
	sweepShift   uint8
	sweepCounter uint8
	sweepEnabled bool
	shadowFreq   uint16

	output uint8
}

func (ch *squareChannel) writeSweep(data uint8) {
	ch.sweepPeriod = (data >> 4) & 0x07
	ch.sweepNegate = data&0x08 == 0x08
	ch.sweepShift = data & 0x07
}

func (ch *squareChannel) writeDutyLength(data uint8) {
	ch.duty = data >> 6
	ch.length = 64 - int(data&0x3f)
}

func (ch *squareChannel) writeEnvelope(data uint8) {
	ch.envInitial = data >> 4
	ch.envIncrease = data&0x08 == 0x08
	ch.envPeriod = data & 0x07

	// writing all zeroes to the volume bits turns the DAC off
	if data&0xf8 == 0x00 {
		ch.enabled = false
	}
}

func (ch *squareChannel) writeFreqLow(data uint8) {
	ch.freq = ch.freq&0x0700 | uint16(data)
}

func (ch *squareChannel) writeFreqHigh(data uint8) {
	ch.freq = ch.freq&0x00ff | uint16(data&0x07)<<8
	ch.lengthEnable = data&0x40 == 0x40

	if data&0x80 == 0x80 {
		ch.trigger()
	}
}

func (ch *squareChannel) trigger() {
	ch.enabled = true
	if ch.length == 0 {
		ch.length = 64
	}
	ch.timer = int(2048-ch.freq) * 4
	ch.envVolume = ch.envInitial
	ch.envCounter = 0

	if ch.hasSweep {
		ch.shadowFreq = ch.freq
		ch.sweepCounter = 0
		ch.sweepEnabled = ch.sweepPeriod != 0 || ch.sweepShift != 0
	}
}

func (ch *squareChannel) step(cycles int) {
	if !ch.enabled {
		ch.output = 0x00
		return
	}

	ch.timer -= cycles
	for ch.timer <= 0 {
		ch.timer += int(2048-ch.freq) * 4
		ch.dutyStep = (ch.dutyStep + 1) & 0x07
	}

	if dutyPatterns[ch.duty]&(0x01<<uint(ch.dutyStep)) != 0x00 {
		ch.output = ch.envVolume
	} else {
		ch.output = 0x00
	}
}

func (ch *squareChannel) stepLength() {
	if ch.lengthEnable && ch.length > 0 {
		ch.length--
		if ch.length == 0 {
			ch.enabled = false
		}
	}
}

func (ch *squareChannel) stepEnvelope() {
	if ch.envPeriod == 0 {
		return
	}
	ch.envCounter++
	if ch.envCounter < ch.envPeriod {
		return
	}
	ch.envCounter = 0

	if ch.envIncrease && ch.envVolume < 0x0f {
		ch.envVolume++
	} else if !ch.envIncrease && ch.envVolume > 0x00 {
		ch.envVolume--
	}
}

func (ch *squareChannel) stepSweep() {
	if !ch.hasSweep || !ch.sweepEnabled || ch.sweepPeriod == 0 {
		return
	}
	ch.sweepCounter++
	if ch.sweepCounter < ch.sweepPeriod {
		return
	}
	ch.sweepCounter = 0

	f := ch.nextSweepFreq()
	if f > 2047 {
		ch.enabled = false
		return
	}
	if ch.sweepShift != 0 {
		ch.shadowFreq = f
		ch.freq = f

		// the overflow check runs again with the new value
		if ch.nextSweepFreq() > 2047 {
			ch.enabled = false
		}
	}
}

func (ch *squareChannel) nextSweepFreq() uint16 {
	d := ch.shadowFreq >> ch.sweepShift
	if ch.sweepNegate {
		return ch.shadowFreq - d
	}
	return ch.shadowFreq + d
}

// waveChannel plays samples straight out of the wave pattern RAM in the
// I/O block.
type waveChannel struct {
	mem bus.ChipBus

	enabled bool
	dacOn   bool

	freq  uint16
	timer int
	pos   int

	volumeShift  uint8
	length       int
	lengthEnable bool

	output uint8
}

func (ch *waveChannel) writeDAC(data uint8) {
	ch.dacOn = data&0x80 == 0x80
	if !ch.dacOn {
		ch.enabled = false
	}
}

func (ch *waveChannel) writeLength(data uint8) {
	ch.length = 256 - int(data)
}

func (ch *waveChannel) writeVolume(data uint8) {
	// 0: mute, 1: full, 2: half, 3: quarter
	switch (data >> 5) & 0x03 {
	case 0:
		ch.volumeShift = 4
	case 1:
		ch.volumeShift = 0
	case 2:
		ch.volumeShift = 1
	case 3:
		ch.volumeShift = 2
	}
}

func (ch *waveChannel) writeFreqLow(data uint8) {
	ch.freq = ch.freq&0x0700 | uint16(data)
}

func (ch *waveChannel) writeFreqHigh(data uint8) {
	ch.freq = ch.freq&0x00ff | uint16(data&0x07)<<8
	ch.lengthEnable = data&0x40 == 0x40

	if data&0x80 == 0x80 && ch.dacOn {
		ch.enabled = true
		if ch.length == 0 {
			ch.length = 256
		}
		ch.timer = int(2048-ch.freq) * 2
		ch.pos = 0
	}
}

func (ch *waveChannel) step(cycles int) {
	if !ch.enabled {
		ch.output = 0x00
		return
	}

	ch.timer -= cycles
	for ch.timer <= 0 {
		ch.timer += int(2048-ch.freq) * 2
		ch.pos = (ch.pos + 1) & 0x1f
	}

	b := ch.mem.ChipRead(addresses.OriginWaveRAM + uint16(ch.pos/2))
	if ch.pos&0x01 == 0x00 {
		b >>= 4
	}
	ch.output = (b & 0x0f) >> ch.volumeShift
}

func (ch *waveChannel) stepLength() {
	if ch.lengthEnable && ch.length > 0 {
		ch.length--
		if ch.length == 0 {
			ch.enabled = false
		}
	}
}

// the divisors of the noise channel clock, indexed by the low three bits
// of NR43.
var noiseDivisors = [8]int{8, 16, 32, 48, 64, 80, 96, 112}

// noiseChannel produces pseudo random noise from a 15 bit linear feedback
// shift register.
type noiseChannel struct {
	enabled bool

	lfsr      uint16
	shortMode bool

	divisor int
	shift   uint8
	timer   int

	envVolume   uint8
	envInitial  uint8
	envIncrease bool
	envPeriod   uint8
	envCounter  uint8

	length       int
	lengthEnable bool

	output uint8
}

func (ch *noiseChannel) writeLength(data uint8) {
	ch.length = 64 - int(data&0x3f)
}

func (ch *noiseChannel) writeEnvelope(data uint8) {
	ch.envInitial = data >> 4
	ch.envIncrease = data&0x08 == 0x08
	ch.envPeriod = data & 0x07

	if data&0xf8 == 0x00 {
		ch.enabled = false
	}
}

func (ch *noiseChannel) writeClock(data uint8) {
	ch.shift = data >> 4
	ch.shortMode = data&0x08 == 0x08
	ch.divisor = noiseDivisors[data&0x07]
}

func (ch *noiseChannel) writeTrigger(data uint8) {
	ch.lengthEnable = data&0x40 == 0x40

	if data&0x80 == 0x80 {
		ch.enabled = true
		if ch.length == 0 {
			ch.length = 64
		}
		ch.timer = ch.divisor << ch.shift
		ch.envVolume = ch.envInitial
		ch.envCounter = 0
		ch.lfsr = 0x7fff
	}
}

func (ch *noiseChannel) step(cycles int) {
	if !ch.enabled {
		ch.output = 0x00
		return
	}

	ch.timer -= cycles
	for ch.timer <= 0 {
		ch.timer += ch.divisor << ch.shift

		// the feedback bit is the xor of the bottom two bits
		fb := (ch.lfsr ^ ch.lfsr>>1) & 0x0001
		ch.lfsr = ch.lfsr>>1 | fb<<14
		if ch.shortMode {
			ch.lfsr = ch.lfsr&^uint16(0x0040) | fb<<6
		}
	}

	if ch.lfsr&0x0001 == 0x0000 {
		ch.output = ch.envVolume
	} else {
		ch.output = 0x00
	}
}

func (ch *noiseChannel) stepLength() {
	if ch.lengthEnable && ch.length > 0 {
		ch.length--
		if ch.length == 0 {
			ch.enabled = false
		}
	}
}

func (ch *noiseChannel) stepEnvelope() {
	if ch.envPeriod == 0 {
		return
	}
	ch.envCounter++
	if ch.envCounter < ch.envPeriod {
		return
	}
	ch.envCounter = 0

	if ch.envIncrease && ch.envVolume < 0x0f {
		ch.envVolume++
	} else if !ch.envIncrease && ch.envVolume > 0x00 {
		ch.envVolume--
	}
}
