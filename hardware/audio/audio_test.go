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

package audio_test

import (
	"testing"

	"dmgopher/hardware/audio"
	"dmgopher/hardware/memory/addresses"
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

// captureMixer accumulates every sample pushed by the sound unit.
type captureMixer struct {
	samples []uint8
	ended   bool
}

func (m *captureMixer) SetAudio(sample uint8) error {
	m.samples = append(m.samples, sample)
	return nil
}

func (m *captureMixer) EndMixing() error {
	m.ended = true
	return nil
}

func (m *captureMixer) clear() {
	m.samples = m.samples[:0]
}

func (m *captureMixer) anyNonZero() bool {
	for _, s := range m.samples {
		if s != 0x00 {
			return true
		}
	}
	return false
}

func newTestAudio() (*audio.Audio, *captureMixer) {
	mem := &mockChipBus{}
	au := audio.NewAudio(mem)
	mix := &captureMixer{}
	au.AddMixer(mix)
	return au, mix
}

func stepAudio(t *testing.T, au *audio.Audio, cycles int) {
	t.Helper()

	// step in instruction sized chunks
	for cycles > 0 {
		n := 4
		if cycles < n {
			n = cycles
		}
		if err := au.Step(n); err != nil {
			t.Fatal(err)
		}
		cycles -= n
	}
}

func TestSilenceAtPowerOn(t *testing.T) {
	au, mix := newTestAudio()

	stepAudio(t, au, 10000)
	if len(mix.samples) == 0 {
		t.Fatal("no samples delivered")
	}
	test.Equate(t, mix.anyNonZero(), false)
}

func TestSampleRate(t *testing.T) {
	au, mix := newTestAudio()

	// one second of emulated time produces one second of samples
	stepAudio(t, au, 4194304)
	if len(mix.samples) < 44000 || len(mix.samples) > 44200 {
		t.Errorf("expected around 44100 samples, got %d", len(mix.samples))
	}
}

func TestSquareChannelTone(t *testing.T) {
	au, mix := newTestAudio()

	// full volume, no envelope, mid frequency, trigger
	au.RegisterWrite(addresses.NR12, 0xf0)
	au.RegisterWrite(addresses.NR13, 0x00)
	au.RegisterWrite(addresses.NR14, 0x84)

	stepAudio(t, au, 20000)
	test.Equate(t, mix.anyNonZero(), true)
}

func TestDACOff(t *testing.T) {
	au, mix := newTestAudio()

	// envelope volume bits all zero turn the DAC off. the trigger cannot
	// revive the channel output
	au.RegisterWrite(addresses.NR12, 0xf0)
	au.RegisterWrite(addresses.NR14, 0x84)
	au.RegisterWrite(addresses.NR12, 0x00)

	stepAudio(t, au, 20000)
	test.Equate(t, mix.anyNonZero(), false)
}

func TestLengthCounter(t *testing.T) {
	au, mix := newTestAudio()

	// length 63 leaves a counter of one. the channel dies on the first
	// length clock
	au.RegisterWrite(addresses.NR11, 0x3f)
	au.RegisterWrite(addresses.NR12, 0xf0)
	au.RegisterWrite(addresses.NR14, 0xc4) // trigger with length enable

	// two full sequencer periods guarantee a length clock has happened
	stepAudio(t, au, 16384)

	mix.clear()
	stepAudio(t, au, 20000)
	test.Equate(t, mix.anyNonZero(), false)
}

func TestMasterDisable(t *testing.T) {
	au, mix := newTestAudio()

	au.RegisterWrite(addresses.NR12, 0xf0)
	au.RegisterWrite(addresses.NR14, 0x84)
	au.RegisterWrite(addresses.NR52, 0x00)

	stepAudio(t, au, 20000)
	test.Equate(t, mix.anyNonZero(), false)
}

func TestEndMixing(t *testing.T) {
	au, mix := newTestAudio()

	err := au.End()
	if err != nil {
		t.Fatal(err)
	}
	test.Equate(t, mix.ended, true)
}
