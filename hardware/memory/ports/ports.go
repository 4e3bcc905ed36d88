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

package ports

import "github.com/jetsetilly/gophersid/curated"

// error pattern for all errors originating in the ports package
const ErrPorts = "ports: %v"

// ReadHandler is called when the emulated program reads from an installed
// port.
type ReadHandler func(port uint16) uint8

// WriteHandler is called when the emulated program writes to an installed
// port.
type WriteHandler func(port uint16, data uint8)

// Bus dispatches port-mapped reads and writes to the devices that have
// installed handlers for the addressed port. One Bus per emulated machine.
type Bus struct {
	read  map[uint16]ReadHandler
	write map[uint16]WriteHandler
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus() *Bus {
	return &Bus{
		read:  make(map[uint16]ReadHandler),
		write: make(map[uint16]WriteHandler),
	}
}

// InstallRead installs a read handler over the window of ports beginning at
// origin. An error is returned if any port in the window already has a read
// handler.
func (b *Bus) InstallRead(origin uint16, window uint16, handler ReadHandler) error {
	for p := origin; p < origin+window; p++ {
		if _, ok := b.read[p]; ok {
			return curated.Errorf(ErrPorts, curated.Errorf("read handler already installed for port %#04x", p))
		}
	}
	for p := origin; p < origin+window; p++ {
		b.read[p] = handler
	}
	return nil
}

// InstallWrite installs a write handler over the window of ports beginning at
// origin. An error is returned if any port in the window already has a write
// handler.
func (b *Bus) InstallWrite(origin uint16, window uint16, handler WriteHandler) error {
	for p := origin; p < origin+window; p++ {
		if _, ok := b.write[p]; ok {
			return curated.Errorf(ErrPorts, curated.Errorf("write handler already installed for port %#04x", p))
		}
	}
	for p := origin; p < origin+window; p++ {
		b.write[p] = handler
	}
	return nil
}

// Uninstall removes the read and write handlers over the window of ports
// beginning at origin. Uninstalling ports that have no handlers is not an
// error.
func (b *Bus) Uninstall(origin uint16, window uint16) {
	for p := origin; p < origin+window; p++ {
		delete(b.read, p)
		delete(b.write, p)
	}
}

// Read returns the value of the addressed port. An unhandled port reads as a
// floating bus.
func (b *Bus) Read(port uint16) uint8 {
	if h, ok := b.read[port]; ok {
		return h(port)
	}
	return 0xff
}

// Write sends the data value to the addressed port. Writes to unhandled ports
// are dropped.
func (b *Bus) Write(port uint16, data uint8) {
	if h, ok := b.write[port]; ok {
		h(port, data)
	}
}
