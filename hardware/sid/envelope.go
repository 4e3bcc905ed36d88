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

type envelopeState int

const (
	stateAttack envelopeState = iota
	stateDecaySustain
	stateRelease
)

// envelope is the SID's ADSR envelope generator: an 8-bit counter stepped by
// a 15-bit rate counter. decay and release are shaped into a piece-wise
// linear approximation of an exponential by a further divider whose period
// depends on the envelope level.
type envelope struct {
	state envelopeState

	rateCounter uint16
	ratePeriod  uint16

	exponentialCounter       int
	exponentialCounterPeriod int

	counter  int
	holdZero bool

	attack  uint8
	decay   uint8
	sustain uint8
	release uint8
	gate    bool
}

// rate counter periods, calculated from the envelope rates table in the
// Programmer's Reference Guide and verified against ENV3 sampling by the
// reSID project.
var rateCounterPeriod = [16]uint16{
	9, 32, 63, 95, 149, 220, 267, 313,
	392, 977, 1954, 3126, 3907, 11720, 19532, 31251,
}

// both nybbles of the envelope counter are compared against the 4-bit
// sustain value.
var sustainLevel = [16]int{
	0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77,
	0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff,
}

func (e *envelope) reset() {
	e.counter = 0
	e.attack = 0
	e.decay = 0
	e.sustain = 0
	e.release = 0
	e.gate = false
	e.rateCounter = 0
	e.exponentialCounter = 0
	e.exponentialCounterPeriod = 1
	e.state = stateRelease
	e.ratePeriod = rateCounterPeriod[e.release]
	e.holdZero = true
}

// clock the envelope generator one cycle.
func (e *envelope) clock() {
	// the rate counter is 15 bits and never reset by register writes. if
	// the comparison value has been set below the current count the counter
	// wraps before the envelope can step again (the ADSR delay bug)
	e.rateCounter++
	if e.rateCounter&0x8000 != 0 {
		e.rateCounter = (e.rateCounter + 1) & 0x7fff
	}

	if e.rateCounter != e.ratePeriod {
		return
	}
	e.rateCounter = 0

	// the first envelope step in the attack state also resets the
	// exponential counter
	e.exponentialCounter++
	if e.state != stateAttack && e.exponentialCounter != e.exponentialCounterPeriod {
		return
	}
	e.exponentialCounter = 0

	if e.holdZero {
		return
	}

	switch e.state {
	case stateAttack:
		e.counter = (e.counter + 1) & 0xff
		if e.counter == 0xff {
			e.state = stateDecaySustain
			e.ratePeriod = rateCounterPeriod[e.decay]
		}

	case stateDecaySustain:
		if e.counter != sustainLevel[e.sustain] {
			e.counter--
		}

	case stateRelease:
		// the counter can wrap from 0x00 to 0xff by switching to attack
		// then back to release; it then continues counting down
		e.counter = (e.counter - 1) & 0xff
	}

	// the exponential counter period is loaded at fixed envelope levels
	switch e.counter {
	case 0xff:
		e.exponentialCounterPeriod = 1
	case 0x5d:
		e.exponentialCounterPeriod = 2
	case 0x36:
		e.exponentialCounterPeriod = 4
	case 0x1a:
		e.exponentialCounterPeriod = 8
	case 0x0e:
		e.exponentialCounterPeriod = 16
	case 0x06:
		e.exponentialCounterPeriod = 30
	case 0x00:
		e.exponentialCounterPeriod = 1

		// once the counter has reached zero it is frozen there until the
		// gate unlocks it
		e.holdZero = true
	}
}

func (e *envelope) output() uint8 {
	return uint8(e.counter)
}

func (e *envelope) writeControl(control uint8) {
	gateNext := control&ctrlGate != 0

	switch {
	case !e.gate && gateNext:
		// gate on: start attack. switching to the attack state unlocks the
		// zero freeze
		e.state = stateAttack
		e.ratePeriod = rateCounterPeriod[e.attack]
		e.holdZero = false

	case e.gate && !gateNext:
		// gate off: start release
		e.state = stateRelease
		e.ratePeriod = rateCounterPeriod[e.release]
	}

	e.gate = gateNext
}

func (e *envelope) writeAttackDecay(data uint8) {
	e.attack = (data >> 4) & 0x0f
	e.decay = data & 0x0f

	switch e.state {
	case stateAttack:
		e.ratePeriod = rateCounterPeriod[e.attack]
	case stateDecaySustain:
		e.ratePeriod = rateCounterPeriod[e.decay]
	}
}

func (e *envelope) writeSustainRelease(data uint8) {
	e.sustain = (data >> 4) & 0x0f
	e.release = data & 0x0f

	if e.state == stateRelease {
		e.ratePeriod = rateCounterPeriod[e.release]
	}
}
