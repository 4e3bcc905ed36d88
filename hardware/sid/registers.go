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

// the SID's register map. each voice has seven registers at a stride of
// seven; the filter and the read-only registers follow.
const (
	// per voice, add voiceRegStride for voices 2 and 3
	regFreqLo  = 0x00
	regFreqHi  = 0x01
	regPWLo    = 0x02
	regPWHi    = 0x03
	regControl = 0x04
	regAttDec  = 0x05
	regSusRel  = 0x06

	voiceRegStride = 7

	// filter
	regFCLo    = 0x15
	regFCHi    = 0x16
	regResFilt = 0x17
	regModeVol = 0x18

	// read-only
	regPotX = 0x19
	regPotY = 0x1a
	regOsc3 = 0x1b
	regEnv3 = 0x1c

	// number of decoded registers
	numRegisters = 0x1d
)

// control register bits
const (
	ctrlGate    = 0x01
	ctrlSync    = 0x02
	ctrlRingMod = 0x04
	ctrlTest    = 0x08
	ctrlTri     = 0x10
	ctrlSaw     = 0x20
	ctrlPulse   = 0x40
	ctrlNoise   = 0x80
)
