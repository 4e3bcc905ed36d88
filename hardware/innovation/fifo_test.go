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

package innovation

import (
	"testing"

	"github.com/jetsetilly/gophersid/test"
)

func TestSampleFifo(t *testing.T) {
	var f sampleFifo

	test.Equate(t, f.len(), 0)

	for i := 0; i < 10; i++ {
		f.push(int16(i))
	}
	test.Equate(t, f.len(), 10)

	// partial drain preserves order
	dst := make([]int16, 4)
	test.Equate(t, f.drain(dst), 4)
	for i := range dst {
		test.Equate(t, dst[i], i)
	}
	test.Equate(t, f.len(), 6)

	// draining with a larger buffer than the queue returns what's left
	dst = make([]int16, 10)
	test.Equate(t, f.drain(dst), 6)
	for i := 0; i < 6; i++ {
		test.Equate(t, dst[i], i+4)
	}
	test.Equate(t, f.len(), 0)

	// drain on an empty fifo
	test.Equate(t, f.drain(dst), 0)

	// the fifo is usable after a reset
	f.push(100)
	f.reset()
	test.Equate(t, f.len(), 0)
	f.push(200)
	test.Equate(t, f.drain(dst), 1)
	test.Equate(t, dst[0], 200)
}
