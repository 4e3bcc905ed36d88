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

// Package sdlmixer outputs sound using SDL. it polls the size of the SDL
// audio queue and asks the attached source to synthesise more frames
// whenever the queue runs low, keeping everything on one goroutine and away
// from SDL's callback machinery.
package sdlmixer

import (
	"sync"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/gophersid/curated"
	"github.com/jetsetilly/gophersid/mixer"
)

// sentinel error pattern for all errors originating in this package.
const ErrSDLMixer = "sdlmixer: %v"

// the buffer length is important to get right. unfortunately, there's no
// special way (that I know of) that can tells us what the ideal value is. we
// don't want it to be long because we introduce unnecessary lag; by the same
// token we don't want it too short because the pump goroutine will spin.
//
// the following value has been discovered through trial and error. the
// precise value is not critical.
const bufferLength = 512

// keep this many frames queued with the device. two buffers of slack covers
// a late pump tick without an audible gap.
const targetQueueLength = bufferLength * 2

// Mixer outputs sound using SDL. it implements the mixer.Channel and
// mixer.Attacher interfaces.
type Mixer struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	crit    sync.Mutex
	src     mixer.Source
	enabled bool

	quit chan bool
	done chan bool

	// scratch buffer for int16 to byte conversion in AddFrames
	conv []byte
}

// NewMixer is the preferred method of initialisation for the Mixer type. The
// returned mixer is enabled but produces nothing until a source is attached.
func NewMixer(sampleRate int) (*Mixer, error) {
	mx := &Mixer{
		enabled: true,
		quit:    make(chan bool),
		done:    make(chan bool),
	}

	err := sdl.InitSubSystem(sdl.INIT_AUDIO)
	if err != nil {
		return nil, curated.Errorf(ErrSDLMixer, err)
	}

	spec := &sdl.AudioSpec{
		Freq:     int32(sampleRate),
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  uint16(bufferLength),
	}

	var actualSpec sdl.AudioSpec
	mx.id, err = sdl.OpenAudioDevice("", false, spec, &actualSpec, 0)
	if err != nil {
		return nil, curated.Errorf(ErrSDLMixer, err)
	}
	mx.spec = actualSpec

	sdl.PauseAudioDevice(mx.id, false)

	return mx, nil
}

// SampleRate implements the mixer.Channel interface.
func (mx *Mixer) SampleRate() int {
	return int(mx.spec.Freq)
}

// Attach implements the mixer.Attacher interface. the pump goroutine starts
// on the first call.
func (mx *Mixer) Attach(src mixer.Source) {
	mx.crit.Lock()
	starting := mx.src == nil
	mx.src = src
	mx.crit.Unlock()

	if !starting {
		return
	}

	go func() {
		// wake often enough that the queue cannot drain between ticks
		period := time.Duration(float64(bufferLength) / float64(mx.spec.Freq) / 2 * float64(time.Second))
		tck := time.NewTicker(period)
		defer tck.Stop()

		for {
			select {
			case <-mx.quit:
				mx.done <- true
				return
			case <-tck.C:
			}

			mx.pump()
		}
	}()
}

// ask the source for more frames if the device queue is running low. a
// disabled mixer lets the queue drain; an empty SDL queue plays silence.
func (mx *Mixer) pump() {
	mx.crit.Lock()
	src := mx.src
	enabled := mx.enabled
	mx.crit.Unlock()

	if src == nil || !enabled {
		return
	}

	queued := int(sdl.GetQueuedAudioSize(mx.id)) / 2
	for queued < targetQueueLength {
		src.Mix(bufferLength)
		queued += bufferLength
	}
}

// Enable implements the mixer.Channel interface.
func (mx *Mixer) Enable(enable bool) {
	mx.crit.Lock()
	defer mx.crit.Unlock()
	mx.enabled = enable
}

// AddFrames implements the mixer.Channel interface. frames are copied to the
// device queue before returning.
func (mx *Mixer) AddFrames(frames []int16) {
	if len(frames) == 0 {
		return
	}

	if cap(mx.conv) < len(frames)*2 {
		mx.conv = make([]byte, len(frames)*2)
	}
	conv := mx.conv[:len(frames)*2]
	for i, f := range frames {
		conv[i*2] = byte(f)
		conv[i*2+1] = byte(uint16(f) >> 8)
	}

	_ = sdl.QueueAudio(mx.id, conv)
}

// EndMixing implements the mixer.Channel interface.
func (mx *Mixer) EndMixing() error {
	mx.crit.Lock()
	pumping := mx.src != nil
	mx.src = nil
	mx.crit.Unlock()

	if pumping {
		mx.quit <- true
		<-mx.done
	}

	sdl.ClearQueuedAudio(mx.id)
	sdl.CloseAudioDevice(mx.id)

	return nil
}
