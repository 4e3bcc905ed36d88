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

package sid

import "math"

// filter is the SID's programmable filter: a two-integrator state-variable
// loop offering lowpass, bandpass and highpass outputs in any combination.
//
// The cutoff curve is where real 6581 chips differed wildly from one
// another. Rather than reproduce a particular chip, the curve here is a
// simple mapping from the 11-bit cutoff register scaled by a strength
// percentage, which mirrors how the card's configuration exposes the
// filter: as a matter of taste rather than measurement.
type filter struct {
	enabled bool

	// strength is the configured filter character, 0.0 to 1.0
	strength float64

	fc        uint16 // 11-bit cutoff register
	res       uint8  // 4-bit resonance
	filt      uint8  // voice routing bits (bit 3 is the external input)
	hpBpLp    uint8
	voice3Off bool
	volume    uint8

	// state of the two integrators
	vhp float64
	vbp float64
	vlp float64

	// per-cycle coefficients, updated on cutoff/resonance writes
	w0      float64
	divQ    float64
	clockHz float64

	// cutoff ceiling, from the sampling passband
	maxCutoffHz float64
}

// cutoff frequency bounds for the simplified curve. the 6581's measured
// floor is around 220Hz; the 8580 reaches close to zero
const (
	minCutoffHz  = 30.0
	spanCutoffHz = 12000.0
)

func (f *filter) reset() {
	f.fc = 0
	f.res = 0
	f.filt = 0
	f.hpBpLp = 0
	f.voice3Off = false
	f.volume = 0
	f.vhp = 0
	f.vbp = 0
	f.vlp = 0
	f.updateCutoff()
	f.updateResonance()
}

func (f *filter) configure(clockHz float64, passbandHz float64) {
	f.clockHz = clockHz
	f.maxCutoffHz = passbandHz
	f.updateCutoff()
}

func (f *filter) updateCutoff() {
	if f.clockHz == 0 {
		return
	}

	cutoff := minCutoffHz + float64(f.fc)/2047.0*spanCutoffHz*f.strength
	cutoff = math.Min(cutoff, f.maxCutoffHz)

	f.w0 = 2 * math.Pi * cutoff / f.clockHz
}

func (f *filter) updateResonance() {
	// Q ranges approximately 0.707 to 1.7, linear in the resonance register
	f.divQ = 1.0 / (0.707 + float64(f.res)/15.0)
}

func (f *filter) writeFCLo(data uint8) {
	f.fc = f.fc&0x7f8 | uint16(data)&0x007
	f.updateCutoff()
}

func (f *filter) writeFCHi(data uint8) {
	f.fc = uint16(data)<<3&0x7f8 | f.fc&0x007
	f.updateCutoff()
}

func (f *filter) writeResFilt(data uint8) {
	f.res = data >> 4 & 0x0f
	f.filt = data & 0x0f
	f.updateResonance()
}

func (f *filter) writeModeVol(data uint8) {
	f.voice3Off = data&0x80 != 0
	f.hpBpLp = data >> 4 & 0x07
	f.volume = data & 0x0f
}

// clock runs one cycle of the state-variable loop with vi as the summed
// input of the routed sources, and returns the filtered output.
func (f *filter) clock(vi float64) float64 {
	f.vhp = f.vbp*f.divQ - f.vlp - vi
	f.vlp -= f.w0 * f.vbp
	f.vbp -= f.w0 * f.vhp

	var out float64
	if f.hpBpLp&0x01 != 0 {
		out += f.vlp
	}
	if f.hpBpLp&0x02 != 0 {
		out += f.vbp
	}
	if f.hpBpLp&0x04 != 0 {
		out += f.vhp
	}
	return out
}

// routed returns true if the numbered source (voices 0 to 2, external input
// is source 3) is routed through the filter.
func (f *filter) routed(src int) bool {
	return f.enabled && f.filt&(1<<src) != 0
}
