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

// Package ports implements the port-mapped I/O dispatch for the emulated
// machine. Devices bind byte-width read and write handlers to a window of
// port addresses and the host forwards IN/OUT (or memory mapped equivalents)
// through the Bus type.
//
// Ports with no installed handler behave like the real ISA bus: reads float
// high (0xff) and writes disappear. An emulated program probing for a card
// that isn't there simply sees an unresponsive I/O range.
package ports
