// This file is part of GopherSID.
//
// GopherSID is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherSID is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherSID.  If not, see <https://www.gnu.org/licenses/>.

package logger_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gophersid/logger"
	"github.com/jetsetilly/gophersid/test"
)

func TestCentralLogger(t *testing.T) {
	logger.Clear()

	w := &strings.Builder{}
	logger.Write(w)
	test.Equate(t, w.String(), "")

	logger.Log("test", "this is a test")
	logger.Write(w)
	test.Equate(t, w.String(), "test: this is a test\n")

	w.Reset()
	logger.Logf("test2", "this is %s test", "another")
	logger.Write(w)
	test.Equate(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for too many entries in a Tail() should be okay
	w.Reset()
	logger.Tail(w, 100)
	test.Equate(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for fewer entries is okay too
	w.Reset()
	logger.Tail(w, 1)
	test.Equate(t, w.String(), "test2: this is another test\n")

	// and no entries
	w.Reset()
	logger.Tail(w, 0)
	test.Equate(t, w.String(), "")

	logger.Clear()
	w.Reset()
	logger.Write(w)
	test.Equate(t, w.String(), "")
}

func TestRepeatFolding(t *testing.T) {
	logger.Clear()

	logger.Log("test", "same entry")
	logger.Log("test", "same entry")
	logger.Log("test", "same entry")

	w := &strings.Builder{}
	logger.Write(w)
	test.Equate(t, w.String(), "test: same entry (repeat x3)\n")

	// a different entry breaks the fold
	logger.Log("test", "different entry")
	w.Reset()
	logger.Tail(w, 1)
	test.Equate(t, w.String(), "test: different entry\n")

	logger.Clear()
}
