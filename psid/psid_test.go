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

package psid_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gophersid/hardware/memory/ports"
	"github.com/jetsetilly/gophersid/psid"
	"github.com/jetsetilly/gophersid/test"
)

const testClock = 985248.0

// writeTune assembles a minimal PSID v1 file. the init/play routine loads
// two SID registers and returns:
//
//	LDA #$42
//	STA $D400
//	LDA #$17
//	STA $D401
//	RTS
func writeTune(t *testing.T) string {
	t.Helper()

	program := []byte{
		0xa9, 0x42,
		0x8d, 0x00, 0xd4,
		0xa9, 0x17,
		0x8d, 0x01, 0xd4,
		0x60,
	}

	hdr := make([]byte, 0x76)
	copy(hdr[0:], "PSID")
	binary.BigEndian.PutUint16(hdr[0x04:], 1)      // version
	binary.BigEndian.PutUint16(hdr[0x06:], 0x76)   // data offset
	binary.BigEndian.PutUint16(hdr[0x08:], 0x1000) // load
	binary.BigEndian.PutUint16(hdr[0x0a:], 0x1000) // init
	binary.BigEndian.PutUint16(hdr[0x0c:], 0x1000) // play
	binary.BigEndian.PutUint16(hdr[0x0e:], 1)      // songs
	binary.BigEndian.PutUint16(hdr[0x10:], 1)      // start song
	copy(hdr[0x16:], "Test Tune")
	copy(hdr[0x36:], "Nobody")

	fn := filepath.Join(t.TempDir(), "test.sid")
	err := os.WriteFile(fn, append(hdr, program...), 0o644)
	test.ExpectedSuccess(t, err)

	return fn
}

func TestLoadTune(t *testing.T) {
	tn, err := psid.LoadTune(writeTune(t))
	test.ExpectedSuccess(t, err)

	test.Equate(t, tn.Name, "Test Tune")
	test.Equate(t, tn.Author, "Nobody")
	test.Equate(t, tn.LoadAddress, 0x1000)
	test.Equate(t, tn.PlayAddress, 0x1000)
	test.Equate(t, tn.Songs, 1)
	test.Equate(t, tn.StartSong, 1)
	test.Equate(t, tn.CIATimed(1), false)
	test.Equate(t, tn.String(), "Test Tune by Nobody")
}

func TestLoadTuneRejectsJunk(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "junk.sid")
	err := os.WriteFile(fn, make([]byte, 0x80), 0o644)
	test.ExpectedSuccess(t, err)

	_, err = psid.LoadTune(fn)
	test.ExpectedFailure(t, err)
}

func TestPlayerRoutesWritesToBus(t *testing.T) {
	tn, err := psid.LoadTune(writeTune(t))
	test.ExpectedSuccess(t, err)

	type regWrite struct {
		port uint16
		data uint8
	}

	var writes []regWrite
	bus := ports.NewBus()
	err = bus.InstallWrite(0x280, 0x20, func(port uint16, data uint8) {
		writes = append(writes, regWrite{port: port, data: data})
	})
	test.ExpectedSuccess(t, err)

	p, err := psid.NewPlayer(tn, bus, 0x280, testClock)
	test.ExpectedSuccess(t, err)

	// the init routine has already run once
	test.Equate(t, len(writes), 2)
	test.Equate(t, writes[0].port, 0x280)
	test.Equate(t, writes[0].data, 0x42)
	test.Equate(t, writes[1].port, 0x281)
	test.Equate(t, writes[1].data, 0x17)

	// each frame runs the play routine once
	p.RunFrame()
	test.Equate(t, len(writes), 4)

	// PAL frame cadence
	test.ApproxEquate(t, p.Now(), 20.0, 0.01)
	for _i := 0; _i < 4; _i++ {
		p.RunFrame()
	}
	test.ApproxEquate(t, p.Now(), 100.0, 0.01)
	test.ApproxEquate(t, p.FrameRate(), 50.0, 0.01)
}

func TestSelectSongBounds(t *testing.T) {
	tn, err := psid.LoadTune(writeTune(t))
	test.ExpectedSuccess(t, err)

	p, err := psid.NewPlayer(tn, ports.NewBus(), 0x280, testClock)
	test.ExpectedSuccess(t, err)

	err = p.SelectSong(2)
	test.ExpectedFailure(t, err)
	test.Equate(t, p.Song(), 1)
}
