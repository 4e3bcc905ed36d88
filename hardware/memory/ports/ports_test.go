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

package ports_test

import (
	"testing"

	"github.com/jetsetilly/gophersid/curated"
	"github.com/jetsetilly/gophersid/hardware/memory/ports"
	"github.com/jetsetilly/gophersid/test"
)

func TestInstallAndDispatch(t *testing.T) {
	bus := ports.NewBus()

	var lastWrite uint16
	var lastData uint8

	err := bus.InstallRead(0x280, 0x20, func(port uint16) uint8 {
		return uint8(port - 0x280)
	})
	test.ExpectedSuccess(t, err)

	err = bus.InstallWrite(0x280, 0x20, func(port uint16, data uint8) {
		lastWrite = port
		lastData = data
	})
	test.ExpectedSuccess(t, err)

	// reads inside the window dispatch to the handler
	test.Equate(t, bus.Read(0x280), 0x00)
	test.Equate(t, bus.Read(0x29f), 0x1f)

	// reads outside the window float high
	test.Equate(t, bus.Read(0x27f), 0xff)
	test.Equate(t, bus.Read(0x2a0), 0xff)

	// writes inside the window dispatch to the handler
	bus.Write(0x285, 0x41)
	test.Equate(t, lastWrite, 0x285)
	test.Equate(t, lastData, 0x41)

	// writes outside the window are dropped
	bus.Write(0x2a0, 0xff)
	test.Equate(t, lastWrite, 0x285)
}

func TestOverlappingInstall(t *testing.T) {
	bus := ports.NewBus()

	err := bus.InstallRead(0x240, 0x20, func(port uint16) uint8 { return 0 })
	test.ExpectedSuccess(t, err)

	// second install overlaps the first by a single port
	err = bus.InstallRead(0x25f, 0x20, func(port uint16) uint8 { return 0 })
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Has(err, ports.ErrPorts))

	// a failed install leaves no partial handlers behind
	test.Equate(t, bus.Read(0x260), 0xff)

	// adjacent windows are fine
	err = bus.InstallRead(0x260, 0x20, func(port uint16) uint8 { return 1 })
	test.ExpectedSuccess(t, err)
}

func TestUninstall(t *testing.T) {
	bus := ports.NewBus()

	err := bus.InstallRead(0x2c0, 0x20, func(port uint16) uint8 { return 0xaa })
	test.ExpectedSuccess(t, err)
	test.Equate(t, bus.Read(0x2c0), 0xaa)

	bus.Uninstall(0x2c0, 0x20)
	test.Equate(t, bus.Read(0x2c0), 0xff)

	// uninstalling again is a no-op
	bus.Uninstall(0x2c0, 0x20)

	// the window can be reused after uninstall
	err = bus.InstallRead(0x2c0, 0x20, func(port uint16) uint8 { return 0x55 })
	test.ExpectedSuccess(t, err)
	test.Equate(t, bus.Read(0x2c0), 0x55)
}
