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

package hardware

import (
	"dmgopher/hardware/cpu"
	"dmgopher/hardware/memory"
	"dmgopher/hardware/memory/cartridge"
	"dmgopher/hardware/timer"
	"dmgopher/hardware/video"
)

// State is a copy of the machine at an instruction boundary. The joypad is
// not part of the state; the player's hands stay where they are when a
// snapshot is restored.
//
// The sound channels are also omitted. Their registers are restored with
// memory and the channels resynchronise within a frame sequencer period.
type State struct {
	CPU   *cpu.CPU
	Mem   *memory.Memory
	Cart  *cartridge.Cartridge
	Timer *timer.Timer
	Video *video.Video
}

// Snapshot the machine.
func (dmg *DMG) Snapshot() *State {
	return &State{
		CPU:   dmg.CPU.Snapshot(),
		Mem:   dmg.Mem.Snapshot(),
		Cart:  dmg.Mem.Cart.Snapshot(),
		Timer: dmg.Timer.Snapshot(),
		Video: dmg.Video.Snapshot(),
	}
}

// RestoreSnapshot returns the machine to a previously snapshotted state.
// The snapshot is not consumed; it can be restored any number of times.
func (dmg *DMG) RestoreSnapshot(s *State) {
	dmg.CPU.Plumb(s.CPU)
	dmg.Mem.Plumb(s.Mem)
	dmg.Mem.Cart.Plumb(s.Cart)
	dmg.Timer.Plumb(s.Timer)
	dmg.Video.Plumb(s.Video)
}
