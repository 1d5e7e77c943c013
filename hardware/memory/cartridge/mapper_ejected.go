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

package cartridge

import "io"

// ejected stands in for the cartridge slot when nothing is attached. Reads
// return the value an open bus would give.
type ejected struct{}

func newEjected() *ejected {
	return &ejected{}
}

func (cart *ejected) ID() string {
	return "-"
}

func (cart *ejected) Initialise() {
}

func (cart *ejected) Read(_ uint16) uint8 {
	return 0xff
}

func (cart *ejected) Write(_ uint16, _ uint8) {
}

func (cart *ejected) ReadRAM(_ uint16) uint8 {
	return 0xff
}

func (cart *ejected) WriteRAM(_ uint16, _ uint8) {
}

func (cart *ejected) NumBanks() int {
	return 0
}

func (cart *ejected) GetBank() int {
	return 0
}

func (cart *ejected) RAM() []uint8 {
	return nil
}

func (cart *ejected) Snapshot() cartMapper {
	n := *cart
	return &n
}

func (cart *ejected) Serialise(_ io.Writer) error {
	return nil
}

func (cart *ejected) Deserialise(_ io.Reader) error {
	return nil
}
