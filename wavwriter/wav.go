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

// Package wavwriter allows writing of audio data to disk as a WAV file. Note
// that audio data is buffered in memory in its entirity, and written to disk
// on program end. It is therefore probably only suitable for testing purposes.
package wavwriter

import (
	"os"

	"github.com/youpy/go-wav"

	"github.com/jetsetilly/gophersid/curated"
	"github.com/jetsetilly/gophersid/logger"
)

// WavWriter implements the mixer.Channel interface.
type WavWriter struct {
	filename   string
	sampleRate int
	buffer     []wav.Sample
}

// NewWavWriter is the preferred method of initialisation for the WavWriter
// type. sampleRate is the rate the source will be asked to synthesise at.
func NewWavWriter(filename string, sampleRate int) (*WavWriter, error) {
	aw := &WavWriter{
		filename:   filename,
		sampleRate: sampleRate,
		buffer:     make([]wav.Sample, 0),
	}

	return aw, nil
}

// SampleRate implements the mixer.Channel interface.
func (aw *WavWriter) SampleRate() int {
	return aw.sampleRate
}

// Enable implements the mixer.Channel interface. A file sink has no hardware
// to pause so enable state is ignored.
func (aw *WavWriter) Enable(_ bool) {
}

// AddFrames implements the mixer.Channel interface.
func (aw *WavWriter) AddFrames(frames []int16) {
	for _, f := range frames {
		w := wav.Sample{}
		w.Values[0] = int(f)
		aw.buffer = append(aw.buffer, w)
	}
}

// EndMixing implements the mixer.Channel interface.
func (aw *WavWriter) EndMixing() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(aw.buffer)), 1, uint32(aw.sampleRate), 16)
	if enc == nil {
		return curated.Errorf("wavwriter: %v", "bad parameters for wav encoding")
	}

	logger.Logf("wavwriter", "writing audio to %s", aw.filename)
	err = enc.WriteSamples(aw.buffer)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}
