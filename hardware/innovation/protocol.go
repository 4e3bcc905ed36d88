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

// Synth is the capability the card requires from the SID chip. The sid
// package provides the canonical implementation but anything satisfying the
// interface will do, which is particularly useful for testing.
type Synth interface {
	// Configure assigns the sampling parameters. clockHz is the chip's input
	// clock; sampleRateHz is the rate the sink will consume samples at; and
	// passbandHz caps the synthesiser's output bandwidth.
	Configure(clockHz float64, sampleRateHz float64, passbandHz float64)

	// Write a value to one of the chip's registers.
	Write(reg uint8, data uint8)

	// Read a value from one of the chip's registers.
	Read(reg uint8) uint8

	// Clock advances the synthesiser by one chip cycle. The boolean result
	// indicates that a sample is ready this cycle.
	//
	// A precondition on any implementation is that the cycles-per-sample
	// ratio is finite. Repeated calls to Clock() must always produce a
	// sample eventually.
	Clock() (int16, bool)
}
