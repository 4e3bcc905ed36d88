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

// Model selects which SID chip to emulate.
type Model int

const (
	Model6581 Model = iota
	Model8580
)

func (m Model) String() string {
	if m == Model8580 {
		return "8580"
	}
	return "6581"
}

// values written to write-only registers linger on the data bus and are
// readable for a short while before the charge decays
const busValueTTLCycles = 0x2000

// the mixed output is divided down so that the maximum possible output of
// three voices plus the external input fits comfortably inside maxOutput
const outputDivisor = 160.0

// maxOutput bounds the absolute sample value. it leaves one bit of headroom
// below the int16 range for the card's amplitude normalisation.
const maxOutput = 14000

// SID is the MOS 6581/8580 sound chip.
type SID struct {
	model Model

	voices [3]voice
	filter filter

	busValue    uint8
	busValueTTL int

	// external audio input, pre-scaled to voice range
	extIn float64

	clockHz         float64
	cyclesPerSample float64
	sampleOffset    float64
}

// NewSID is the preferred method of initialisation for the SID type. The
// chip must be Configure()d before it produces samples; until then Clock()
// advances state but never reports a sample.
func NewSID(model Model) *SID {
	s := &SID{model: model}

	// the sync/ringmod sources chain the voices in a ring
	s.voices[0].syncSource = &s.voices[2]
	s.voices[1].syncSource = &s.voices[0]
	s.voices[2].syncSource = &s.voices[1]

	s.Reset()

	return s
}

// Model returns the chip model selected at creation.
func (s *SID) Model() Model {
	return s.model
}

// SetFilterStrength adjusts the filter character as a percentage from 0 to
// 100. Zero disables the filter entirely. Each physical 6581 filtered
// differently; the percentage stands in for that chip-to-chip character.
func (s *SID) SetFilterStrength(strength int) {
	strength = max(0, min(100, strength))
	s.filter.enabled = strength > 0
	s.filter.strength = float64(strength) / 100.0
	s.filter.updateCutoff()
}

// Reset returns the chip to its power-on state. Configuration and filter
// strength survive a reset.
func (s *SID) Reset() {
	for i := range s.voices {
		s.voices[i].reset()
	}
	s.filter.reset()
	s.busValue = 0
	s.busValueTTL = 0
	s.extIn = 0
	s.sampleOffset = 0
}

// Configure assigns the sampling parameters. Implements the
// innovation.Synth interface.
func (s *SID) Configure(clockHz float64, sampleRateHz float64, passbandHz float64) {
	s.clockHz = clockHz
	if sampleRateHz > 0 {
		s.cyclesPerSample = clockHz / sampleRateHz
	}
	s.filter.configure(clockHz, passbandHz)
	s.sampleOffset = 0
}

// Input feeds a 16-bit sample to the chip's external audio input pin. The
// value persists until the next call.
func (s *SID) Input(sample int16) {
	// voice outputs are sign-and-envelope scaled 20 bit values; shift the
	// input up to match
	s.extIn = float64(int32(sample) << 4)
}

// Write a value to one of the chip's registers. Implements the
// innovation.Synth interface.
func (s *SID) Write(reg uint8, data uint8) {
	reg &= 0x1f

	s.busValue = data
	s.busValueTTL = busValueTTLCycles

	if reg < regFCLo {
		v := &s.voices[reg/voiceRegStride]
		switch reg % voiceRegStride {
		case regFreqLo:
			v.freq = v.freq&0xff00 | uint16(data)
		case regFreqHi:
			v.freq = uint16(data)<<8 | v.freq&0x00ff
		case regPWLo:
			v.pw = v.pw&0xf00 | uint16(data)
		case regPWHi:
			v.pw = uint16(data)<<8&0xf00 | v.pw&0x0ff
		case regControl:
			v.writeControl(data)
		case regAttDec:
			v.envelope.writeAttackDecay(data)
		case regSusRel:
			v.envelope.writeSustainRelease(data)
		}
		return
	}

	switch reg {
	case regFCLo:
		s.filter.writeFCLo(data)
	case regFCHi:
		s.filter.writeFCHi(data)
	case regResFilt:
		s.filter.writeResFilt(data)
	case regModeVol:
		s.filter.writeModeVol(data)
	}
}

// Read a value from one of the chip's registers. Only the potentiometer,
// oscillator 3 and envelope 3 registers are readable; anything else returns
// whatever charge is left on the data bus. Implements the innovation.Synth
// interface.
func (s *SID) Read(reg uint8) uint8 {
	switch reg & 0x1f {
	case regPotX, regPotY:
		// no paddles attached
		return 0xff
	case regOsc3:
		return uint8(s.voices[2].waveOutput() >> 4)
	case regEnv3:
		return s.voices[2].envelope.output()
	}
	return s.busValue
}

// Clock advances the chip by one cycle. The boolean result indicates that a
// sample is ready this cycle. Implements the innovation.Synth interface.
func (s *SID) Clock() (int16, bool) {
	for i := range s.voices {
		s.voices[i].clockOscillator()
	}

	// hard sync is applied after all three oscillators have moved
	s.voices[0].synchronize(&s.voices[1])
	s.voices[1].synchronize(&s.voices[2])
	s.voices[2].synchronize(&s.voices[0])

	for i := range s.voices {
		s.voices[i].envelope.clock()
	}

	if s.busValueTTL > 0 {
		s.busValueTTL--
		if s.busValueTTL == 0 {
			s.busValue = 0
		}
	}

	// route each source either through the filter or straight to the mixer
	var direct, filtered float64
	for i := range s.voices {
		if i == 2 && s.filter.voice3Off && !s.filter.routed(2) {
			continue
		}

		out := float64(s.voices[i].output())
		if s.filter.routed(i) {
			filtered += out
		} else {
			direct += out
		}
	}
	if s.filter.routed(3) {
		filtered += s.extIn
	} else {
		direct += s.extIn
	}

	mix := direct + s.filter.clock(filtered)
	mix *= float64(s.filter.volume) / 15.0

	// decimate to the configured sample rate
	if s.cyclesPerSample == 0 {
		return 0, false
	}
	s.sampleOffset++
	if s.sampleOffset < s.cyclesPerSample {
		return 0, false
	}
	s.sampleOffset -= s.cyclesPerSample

	sample := mix / outputDivisor
	sample = max(-maxOutput, min(maxOutput, sample))

	return int16(sample), true
}
