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

// sampleFifo queues rendered samples between the catch-up renderer and the
// pull adapter. First rendered, first delivered; insertion order is the
// emission order.
//
// The queue is logically unbounded but in practice the pull side drains it
// promptly so it never holds more than a pull period's worth of samples.
type sampleFifo struct {
	data []int16
}

func (f *sampleFifo) push(sample int16) {
	f.data = append(f.data, sample)
}

// drain copies up to len(dst) samples into dst, removing them from the
// queue. Returns the number of samples copied.
func (f *sampleFifo) drain(dst []int16) int {
	n := min(len(f.data), len(dst))
	copy(dst, f.data[:n])
	f.data = f.data[n:]
	return n
}

func (f *sampleFifo) len() int {
	return len(f.data)
}

func (f *sampleFifo) reset() {
	f.data = f.data[:0]
}
