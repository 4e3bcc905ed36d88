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

// Package pcm loads WAV and MP3 files as mono 16-bit PCM, suitable for
// feeding to the external audio input pin of the SID chip.
package pcm

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"

	"github.com/jetsetilly/gophersid/curated"
	"github.com/jetsetilly/gophersid/logger"
)

// sentinel error pattern for all errors originating in this package.
const ErrPCM = "pcm: %v"

const logTag = "pcm"

// Data is a decoded audio stream. Frames is mono data, taken from the left
// channel in the case of stereo source files.
type Data struct {
	SampleRate float64
	TotalTime  float64 // in seconds
	Frames     []int16
}

// Load decodes the named file according to its extension. Only WAV and MP3
// files are supported.
func Load(filename string) (Data, error) {
	p := Data{
		Frames: make([]int16, 0),
	}

	f, err := os.Open(filename)
	if err != nil {
		return p, curated.Errorf(ErrPCM, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return loadWav(f)
	case ".mp3":
		return loadMp3(f)
	}

	return p, curated.Errorf(ErrPCM, "unsupported file type")
}

func loadWav(f *os.File) (Data, error) {
	p := Data{}

	dec := wav.NewDecoder(f)
	if dec == nil {
		return p, curated.Errorf(ErrPCM, "wav: error decoding")
	}

	if !dec.IsValidFile() {
		return p, curated.Errorf(ErrPCM, "wav: not a valid wav file")
	}

	logger.Log(logTag, "loading from wav file")

	// load all data at once
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return p, curated.Errorf(ErrPCM, err)
	}

	// copy first channel only of data stream, rescaled to 16 bits
	shift := int(buf.SourceBitDepth) - 16
	p.Frames = make([]int16, 0, len(buf.Data)/int(dec.NumChans))
	for i := 0; i < len(buf.Data); i += int(dec.NumChans) {
		v := buf.Data[i]
		switch {
		case shift > 0:
			v >>= shift
		case shift < 0:
			v <<= -shift
		}
		p.Frames = append(p.Frames, int16(v))
	}

	p.SampleRate = float64(dec.SampleRate)

	dur, err := dec.Duration()
	if err != nil {
		return p, curated.Errorf(ErrPCM, err)
	}
	p.TotalTime = dur.Seconds()

	return p, nil
}

func loadMp3(f *os.File) (Data, error) {
	p := Data{
		Frames: make([]int16, 0),
	}

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return p, curated.Errorf(ErrPCM, err)
	}

	logger.Log(logTag, "loading from mp3 file")

	// the decoded stream is always 16bit little-endian stereo. an index
	// increment of 4 skips the right channel
	err = nil
	chunk := make([]byte, 4096)
	for err != io.EOF {
		var chunkLen int
		chunkLen, err = dec.Read(chunk)
		if err != nil && err != io.EOF {
			return p, curated.Errorf(ErrPCM, err)
		}

		for i := 0; i+1 < chunkLen; i += 4 {
			v := int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8)
			p.Frames = append(p.Frames, v)
		}
	}

	p.SampleRate = float64(dec.SampleRate())
	p.TotalTime = float64(len(p.Frames)) / p.SampleRate

	return p, nil
}
