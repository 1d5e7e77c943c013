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

// Package bus defines the memory bus concepts. For an explanation see the
// memory package documentation.
package bus

// CPUBus defines the operations for the memory system when accessed from the
// CPU. Access through the CPUBus is subject to the access restrictions of
// the machine: reads of video memory while the video chip holds it return
// 0xff and the corresponding writes are dropped.
type CPUBus interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, data uint8) error
}

// ChipBus defines the operations for the memory system when accessed from
// the chips (timer, video, audio, joypad). Chip access is never gated and
// never triggers the write side effects that CPU access does. Chips use it
// to read their registers and to publish register values back to the
// address space, keeping the register bytes in memory canonical.
type ChipBus interface {
	ChipRead(address uint16) uint8
	ChipWrite(address uint16, data uint8)
}

// DebugBus defines the memory operations available to debuggers. Peek and
// Poke bypass access gating but are never mistaken for chip activity.
type DebugBus interface {
	Peek(address uint16) (uint8, error)
	Poke(address uint16, data uint8) error
}

// RegisterWriteHandler is implemented by chips that need to see CPU writes
// to their registers as they happen, rather than polling the register value.
// The write has already been stored in the address space (subject to the
// register's write mask) by the time the handler is called.
type RegisterWriteHandler interface {
	RegisterWrite(address uint16, data uint8)
}
