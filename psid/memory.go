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

package psid

// memory is a flat 64K address space for the 6502, with a notification
// closure called on every byte store. it implements the go6502 cpu.Memory
// interface.
type memory struct {
	b [64 * 1024]byte

	// called after the byte has been committed to the backing array
	onWrite func(addr uint16, data byte)
}

func newMemory(onWrite func(addr uint16, data byte)) *memory {
	return &memory{onWrite: onWrite}
}

// LoadByte loads a single byte from the address and returns it.
func (m *memory) LoadByte(addr uint16) byte {
	return m.b[addr]
}

// LoadBytes loads multiple bytes from the address and stores them into the
// buffer.
func (m *memory) LoadBytes(addr uint16, b []byte) {
	if int(addr)+len(b) <= len(m.b) {
		copy(b, m.b[addr:])
		return
	}
	r := len(m.b) - int(addr)
	copy(b, m.b[addr:])
	copy(b[r:], make([]byte, len(b)-r))
}

// LoadAddress loads a 16-bit address value from the requested address. when
// the address ends in 0xff the high byte comes from a page-wrapped address,
// mimicking the NMOS 6502.
func (m *memory) LoadAddress(addr uint16) uint16 {
	if (addr & 0xff) == 0xff {
		return uint16(m.b[addr]) | uint16(m.b[addr-0xff])<<8
	}
	return uint16(m.b[addr]) | uint16(m.b[addr+1])<<8
}

// StoreByte stores a byte at the requested address.
func (m *memory) StoreByte(addr uint16, data byte) {
	m.b[addr] = data
	if m.onWrite != nil {
		m.onWrite(addr, data)
	}
}

// StoreBytes stores multiple bytes to the requested address. used only for
// bulk loading so no write notification.
func (m *memory) StoreBytes(addr uint16, b []byte) {
	copy(m.b[addr:], b)
}

// StoreAddress stores a 16-bit address value to the requested address.
func (m *memory) StoreAddress(addr uint16, v uint16) {
	m.b[addr] = byte(v & 0xff)
	if (addr & 0xff) == 0xff {
		m.b[addr-0xff] = byte(v >> 8)
	} else {
		m.b[addr+1] = byte(v >> 8)
	}
}
