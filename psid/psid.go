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

// Package psid loads PSID tune files and plays them on an emulated 6502,
// routing writes to the SID register window through a port bus.
package psid

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"strings"

	"github.com/jetsetilly/gophersid/curated"
)

// sentinel error pattern for all errors originating in this package.
const ErrPSID = "psid: %v"

// the on-disk PSID v1 header. all multi-byte fields are big-endian.
type header struct {
	MagicID     [4]byte
	Version     uint16
	DataOffset  uint16
	LoadAddress uint16
	InitAddress uint16
	PlayAddress uint16
	Songs       uint16
	StartSong   uint16
	Speed       uint32
	Name        [32]byte
	Author      [32]byte
	Released    [32]byte
}

// Tune is a loaded PSID file.
type Tune struct {
	Name     string
	Author   string
	Released string

	LoadAddress uint16
	InitAddress uint16
	PlayAddress uint16

	// song numbers are one-based, as they appear in the file
	Songs     uint16
	StartSong uint16

	// one bit per song. a set bit means the song is clocked by the CIA
	// timer rather than the vertical blank
	Speed uint32

	data []byte
}

// LoadTune reads and verifies the named PSID file.
func LoadTune(filename string) (*Tune, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(ErrPSID, err)
	}
	defer f.Close()

	var hdr header
	err = binary.Read(f, binary.BigEndian, &hdr)
	if err != nil {
		return nil, curated.Errorf(ErrPSID, err)
	}

	if !bytes.Equal(hdr.MagicID[:], []byte("PSID")) {
		if bytes.Equal(hdr.MagicID[:], []byte("RSID")) {
			return nil, curated.Errorf(ErrPSID, "RSID files require a full C64 environment")
		}
		return nil, curated.Errorf(ErrPSID, "not a valid psid file")
	}

	_, err = f.Seek(int64(hdr.DataOffset), io.SeekStart)
	if err != nil {
		return nil, curated.Errorf(ErrPSID, err)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, curated.Errorf(ErrPSID, err)
	}

	// a zero load address means the real address prefixes the data,
	// little-endian
	if hdr.LoadAddress == 0 {
		if len(data) < 2 {
			return nil, curated.Errorf(ErrPSID, "file truncated")
		}
		hdr.LoadAddress = uint16(data[0]) | uint16(data[1])<<8
		data = data[2:]
	}

	if int(hdr.LoadAddress)+len(data) > 0x10000 {
		return nil, curated.Errorf(ErrPSID, "data continues past end of C64 memory")
	}

	if hdr.Songs == 0 {
		return nil, curated.Errorf(ErrPSID, "no songs in file")
	}

	tn := &Tune{
		Name:        fixedString(hdr.Name[:]),
		Author:      fixedString(hdr.Author[:]),
		Released:    fixedString(hdr.Released[:]),
		LoadAddress: hdr.LoadAddress,
		InitAddress: hdr.InitAddress,
		PlayAddress: hdr.PlayAddress,
		Songs:       hdr.Songs,
		StartSong:   hdr.StartSong,
		Speed:       hdr.Speed,
		data:        data,
	}

	if tn.InitAddress == 0 {
		tn.InitAddress = tn.LoadAddress
	}
	if tn.StartSong == 0 || tn.StartSong > tn.Songs {
		tn.StartSong = 1
	}

	return tn, nil
}

// String implements the Stringer interface.
func (tn *Tune) String() string {
	s := strings.Builder{}
	s.WriteString(tn.Name)
	if tn.Author != "" {
		s.WriteString(" by ")
		s.WriteString(tn.Author)
	}
	if tn.Released != "" {
		s.WriteString(" (")
		s.WriteString(tn.Released)
		s.WriteString(")")
	}
	return s.String()
}

// CIATimed returns true if the (one-based) song number is clocked by the CIA
// timer rather than the vertical blank.
func (tn *Tune) CIATimed(song uint16) bool {
	if song < 1 || song > tn.Songs {
		return false
	}
	return tn.Speed&(1<<(song-1)) != 0
}

func fixedString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return strings.TrimSpace(string(b))
}
