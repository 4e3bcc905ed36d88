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

// Package sid emulates the MOS 6581/8580 SID chip. The register model, the
// envelope rate periods and the oscillator behaviour follow the reSID
// documentation and source, which in turn is derived from measurement of
// real chips. The combined waveforms are approximated by ANDing the
// individual waveform outputs rather than by sampled tables, and the filter
// uses a two-integrator state-variable loop with a simplified cutoff curve.
// Close enough for a sound card emulation; not claiming cycle-exact fidelity
// against a real 6581.
//
// The chip is clocked one cycle at a time with Clock(), which also reports
// when a sample is ready at the output rate given to Configure(). The
// cycles-per-sample ratio is always finite so Clock() always produces a
// sample eventually.
//
// Output samples leave at least one bit of headroom below the int16 range so
// that the card can double them without overflow.
package sid
