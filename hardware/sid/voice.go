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

// voice is one of the SID's three tone generators: a 24-bit phase
// accumulating oscillator feeding four waveform selectors, amplitude
// modulated by the envelope generator.
type voice struct {
	// accumulator and shift register are 24 bit and 23 bit respectively
	accumulator uint32
	shiftreg    uint32

	freq uint16 // 16-bit frequency
	pw   uint16 // 12-bit pulse width

	control uint8

	// wave output is sampled at the last noise shift; the accumulator MSB
	// rising edge is what the sync destination watches for
	msbRising bool

	// the voice that this voice syncs and ring-modulates from. the three
	// voices are chained in a ring: 3->1->2->3
	syncSource *voice

	envelope envelope
}

func (v *voice) reset() {
	v.accumulator = 0
	v.shiftreg = 0x7ffff8
	v.freq = 0
	v.pw = 0
	v.control = 0
	v.msbRising = false
	v.envelope.reset()
}

// clockOscillator advances the phase accumulator by one cycle. the noise
// shift register is shifted on the rising edge of accumulator bit 19.
func (v *voice) clockOscillator() {
	// no operation if the test bit is set. the accumulator and the shift
	// register are held (shift register reset is handled at the register
	// write)
	if v.control&ctrlTest != 0 {
		return
	}

	prev := v.accumulator
	v.accumulator = (v.accumulator + uint32(v.freq)) & 0xffffff

	// used for hard sync by the sync destination
	v.msbRising = prev&0x800000 == 0 && v.accumulator&0x800000 != 0

	// shift the noise register on the rising edge of bit 19
	if prev&0x080000 == 0 && v.accumulator&0x080000 != 0 {
		bit0 := ((v.shiftreg >> 22) ^ (v.shiftreg >> 17)) & 0x01
		v.shiftreg = ((v.shiftreg << 1) | bit0) & 0x7fffff
	}
}

// synchronize applies hard sync to the sync destination. called after all
// three oscillators have been clocked for the cycle.
//
// a special case occurs when a sync source is itself synced on the same
// cycle as its MSB is set high. in that case the destination is not synced.
func (v *voice) synchronize(dest *voice) {
	if v.msbRising && dest.control&ctrlSync != 0 && !(v.control&ctrlSync != 0 && v.syncSource.msbRising) {
		dest.accumulator = 0
	}
}

// waveOutput is the 12-bit output of the waveform selector. selecting more
// than one waveform ANDs the outputs together, which approximates the
// behaviour of the real chip's shared output lines.
func (v *voice) waveOutput() uint16 {
	sel := v.control & 0xf0
	if sel == 0 {
		return 0
	}

	out := uint16(0xfff)

	if sel&ctrlTri != 0 {
		// ring modulation substitutes the accumulator MSB with the MSB
		// EORed against the sync source's
		msb := v.accumulator
		if v.control&ctrlRingMod != 0 {
			msb = v.accumulator ^ v.syncSource.accumulator
		}
		if msb&0x800000 != 0 {
			out &= uint16((^v.accumulator >> 11) & 0xffe)
		} else {
			out &= uint16((v.accumulator >> 11) & 0xffe)
		}
	}

	if sel&ctrlSaw != 0 {
		out &= uint16(v.accumulator >> 12)
	}

	if sel&ctrlPulse != 0 {
		// the test bit holds the pulse output high regardless of the pulse
		// width setting
		if v.control&ctrlTest != 0 || (v.accumulator>>12) >= uint32(v.pw) {
			out &= 0xfff
		} else {
			out &= 0x000
		}
	}

	if sel&ctrlNoise != 0 {
		// noise output taps bits 22,20,16,13,11,7,4,2 of the shift
		// register, presented as the top 8 bits of the 12-bit output
		sr := v.shiftreg
		n := (sr&0x400000)>>11 | (sr&0x100000)>>10 | (sr&0x010000)>>7 |
			(sr&0x002000)>>5 | (sr&0x000800)>>4 | (sr&0x000080)>>1 |
			(sr&0x000010)<<1 | (sr&0x000004)<<2
		out &= uint16(n)
	}

	return out
}

// output is the waveform output offset to signed and scaled by the envelope.
// range is +/- 2048*255.
func (v *voice) output() int32 {
	return (int32(v.waveOutput()) - 0x800) * int32(v.envelope.output())
}

func (v *voice) writeControl(data uint8) {
	// resetting the test bit releases the shift register from its reset
	// value; setting it resets the register
	if data&ctrlTest != 0 {
		v.accumulator = 0
		v.shiftreg = 0
	} else if v.control&ctrlTest != 0 {
		v.shiftreg = 0x7ffff8
	}

	v.control = data
	v.envelope.writeControl(data)
}
