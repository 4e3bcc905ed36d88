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

// Package otomixer outputs sound using the oto library. oto pulls audio
// through an io.Reader, which maps directly onto the pull-driven mixer
// protocol: every Read asks the attached source to synthesise exactly the
// number of frames the device wants.
package otomixer

import (
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"

	"github.com/jetsetilly/gophersid/curated"
	"github.com/jetsetilly/gophersid/mixer"
)

// sentinel error pattern for all errors originating in this package.
const ErrOtoMixer = "otomixer: %v"

// Mixer outputs sound using oto. it implements the mixer.Channel and
// mixer.Attacher interfaces.
type Mixer struct {
	ctx        *oto.Context
	player     *oto.Player
	sampleRate int

	crit sync.Mutex
	src  mixer.Source

	// enable can arrive from inside a Mix call, while Read holds the
	// mutex, so it lives outside the mutex's protection
	enabled atomic.Bool

	// frames delivered by AddFrames during the Mix call in Read. drained
	// into the device buffer before Read returns
	pending []int16
}

// NewMixer is the preferred method of initialisation for the Mixer type.
// The returned mixer is enabled but produces silence until a source is
// attached.
func NewMixer(sampleRate int) (*Mixer, error) {
	mx := &Mixer{
		sampleRate: sampleRate,
	}
	mx.enabled.Store(true)

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, curated.Errorf(ErrOtoMixer, err)
	}
	<-ready

	mx.ctx = ctx

	return mx, nil
}

// SampleRate implements the mixer.Channel interface.
func (mx *Mixer) SampleRate() int {
	return mx.sampleRate
}

// Attach implements the mixer.Attacher interface. playback starts on the
// first call.
func (mx *Mixer) Attach(src mixer.Source) {
	mx.crit.Lock()
	defer mx.crit.Unlock()

	mx.src = src
	if mx.player == nil {
		mx.player = mx.ctx.NewPlayer(mx)
		mx.player.Play()
	}
}

// Read implements the io.Reader interface. called from oto's playback
// goroutine. a disabled mixer fills the device buffer with silence without
// troubling the source.
func (mx *Mixer) Read(p []byte) (int, error) {
	mx.crit.Lock()
	defer mx.crit.Unlock()

	requested := len(p) / 2

	if mx.src == nil || !mx.enabled.Load() {
		clear(p)
		return len(p), nil
	}

	mx.pending = mx.pending[:0]
	mx.src.Mix(requested)

	n := 0
	for _, f := range mx.pending {
		p[n] = byte(f)
		p[n+1] = byte(uint16(f) >> 8)
		n += 2
	}

	// a source that delivers short is padded with silence
	clear(p[n:])

	return len(p), nil
}

// Enable implements the mixer.Channel interface.
func (mx *Mixer) Enable(enable bool) {
	mx.enabled.Store(enable)
}

// AddFrames implements the mixer.Channel interface. frames are copied
// before returning.
func (mx *Mixer) AddFrames(frames []int16) {
	mx.pending = append(mx.pending, frames...)
}

// EndMixing implements the mixer.Channel interface.
func (mx *Mixer) EndMixing() error {
	mx.crit.Lock()
	player := mx.player
	mx.player = nil
	mx.src = nil
	mx.crit.Unlock()

	// closing the player joins the playback goroutine, which takes the
	// mutex in Read. close outside the lock
	if player != nil {
		err := player.Close()
		if err != nil {
			return curated.Errorf(ErrOtoMixer, err)
		}
	}

	return nil
}
