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

package logger_test

import (
	"strings"
	"testing"

	"dmgopher/logger"
	"dmgopher/test"
)

func TestCentralLogger(t *testing.T) {
	logger.Clear()
	w := &strings.Builder{}

	logger.Write(w)
	test.Equate(t, w.String(), "")

	logger.Log("test", "this is a test")
	logger.Write(w)
	test.Equate(t, w.String(), "test: this is a test\n")

	// clear the buffer before continuing, makes comparisons easier to manage
	w.Reset()

	logger.Log("test2", "this is another test")
	logger.Write(w)
	test.Equate(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for too many entries in a Tail() should be okay
	w.Reset()
	logger.Tail(w, 100)
	test.Equate(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for exactly the correct number of entries is okay
	w.Reset()
	logger.Tail(w, 2)
	test.Equate(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for fewer entries is okay too
	w.Reset()
	logger.Tail(w, 1)
	test.Equate(t, w.String(), "test2: this is another test\n")

	// and no entries
	w.Reset()
	logger.Tail(w, 0)
	test.Equate(t, w.String(), "")
}

func TestRepeatCollapse(t *testing.T) {
	logger.Clear()
	w := &strings.Builder{}

	logger.Log("tag", "detail")
	logger.Log("tag", "detail")
	logger.Log("tag", "detail")
	logger.Write(w)
	test.Equate(t, w.String(), "tag: detail (repeat x3)\n")
}

func TestWriteRecent(t *testing.T) {
	logger.Clear()
	w := &strings.Builder{}

	logger.Log("tag", "first")
	logger.WriteRecent(w)
	test.Equate(t, w.String(), "tag: first\n")

	// a second call with no new entries writes nothing
	w.Reset()
	logger.WriteRecent(w)
	test.Equate(t, w.String(), "")

	w.Reset()
	logger.Log("tag", "second")
	logger.WriteRecent(w)
	test.Equate(t, w.String(), "tag: second\n")
}
