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

package debugger

import (
	"testing"

	"dmgopher/test"
)

func TestParseAddress(t *testing.T) {
	dbg := &Debugger{}

	a, err := dbg.parseAddress("0x8000")
	if err != nil {
		t.Fatal(err)
	}
	test.Equate(t, a, 0x8000)

	a, err = dbg.parseAddress("$ff40")
	if err != nil {
		t.Fatal(err)
	}
	test.Equate(t, a, 0xff40)

	a, err = dbg.parseAddress("49152")
	if err != nil {
		t.Fatal(err)
	}
	test.Equate(t, a, 0xc000)

	// register symbols resolve case insensitively
	a, err = dbg.parseAddress("lcdc")
	if err != nil {
		t.Fatal(err)
	}
	test.Equate(t, a, 0xff40)

	a, err = dbg.parseAddress("IE")
	if err != nil {
		t.Fatal(err)
	}
	test.Equate(t, a, 0xffff)

	_, err = dbg.parseAddress("not-an-address")
	test.ExpectedFailure(t, err)

	// out of range
	_, err = dbg.parseAddress("0x10000")
	test.ExpectedFailure(t, err)
}
