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
	"fmt"
	"math"
)

// renderOnce synthesises a single frame. The chip is cycled until it reports
// a ready sample; the chip's cycles-per-sample ratio is not exposed so
// polling is the only option.
func (inn *Innovation) renderOnce() int16 {
	var sample int16
	var ok bool

	for !ok {
		sample, ok = inn.chip.Clock()
	}

	if sample == 0 {
		inn.silentFrames++
		return 0
	}
	inn.silentFrames = 0

	// double the sample to normalise the chip's native amplitude into the
	// sink's range. the chip guarantees headroom for this; anything else is
	// a scaling bug and not a runtime condition to recover from
	if sample > math.MaxInt16/2 || sample < math.MinInt16/2 {
		panic(fmt.Sprintf("innovation: rendered sample overflows output range (%d)", sample))
	}

	return sample * 2
}

// renderForMs renders the number of frames the elapsed duration represents
// at the sink's sample rate, queueing each one in the FIFO. Fractional
// remainders are not banked; rounding error does not accumulate beyond
// double-precision drift.
func (inn *Innovation) renderForMs(durationMs float64) {
	renderCount := int(math.Round(durationMs * inn.frameRatePerMs))
	for ; renderCount > 0; renderCount-- {
		inn.fifo.push(inn.renderOnce())
	}
}

// framesToMs converts a frame count to the equivalent duration in
// milliseconds.
func (inn *Innovation) framesToMs(frames int) float64 {
	return float64(frames) / inn.frameRatePerMs
}
