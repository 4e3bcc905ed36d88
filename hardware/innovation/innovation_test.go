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

package innovation_test

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/jetsetilly/gophersid/hardware/innovation"
	"github.com/jetsetilly/gophersid/hardware/memory/ports"
	"github.com/jetsetilly/gophersid/mixer"
	"github.com/jetsetilly/gophersid/test"
)

// mockSynth satisfies the innovation.Synth interface. it emits a sample
// every cyclesPerSample calls to Clock(). the value of the sample is either
// a fixed level or, if sequence is true, an incrementing counter (useful for
// checking ordering through the FIFO).
type mockSynth struct {
	cyclesPerSample int
	level           int16
	sequence        bool

	clockHz      float64
	sampleRateHz float64
	passbandHz   float64

	cycleCt  int
	seq      int16
	rendered int

	regs [innovation.RegisterWindow]uint8

	// number of samples rendered at the moment of each register write.
	// answers the question: how much catch-up happened before this write
	// reached the chip?
	renderedAtWrite []int
}

func (s *mockSynth) Configure(clockHz float64, sampleRateHz float64, passbandHz float64) {
	s.clockHz = clockHz
	s.sampleRateHz = sampleRateHz
	s.passbandHz = passbandHz
}

func (s *mockSynth) Write(reg uint8, data uint8) {
	s.regs[reg] = data
	s.renderedAtWrite = append(s.renderedAtWrite, s.rendered)
}

func (s *mockSynth) Read(reg uint8) uint8 {
	return s.regs[reg]
}

func (s *mockSynth) Clock() (int16, bool) {
	s.cycleCt++
	if s.cycleCt < s.cyclesPerSample {
		return 0, false
	}
	s.cycleCt = 0
	s.rendered++
	if s.sequence {
		s.seq++
		return s.seq, true
	}
	return s.level, true
}

// mockChannel satisfies the mixer.Channel interface. it deliberately does
// not implement mixer.Attacher; the tests drive Mix() directly.
type mockChannel struct {
	sampleRate  int
	enableCalls []bool
	frames      []int16
	endMixingCt int
}

func (ch *mockChannel) SampleRate() int {
	return ch.sampleRate
}

func (ch *mockChannel) Enable(enable bool) {
	ch.enableCalls = append(ch.enableCalls, enable)
}

func (ch *mockChannel) AddFrames(frames []int16) {
	ch.frames = append(ch.frames, frames...)
}

func (ch *mockChannel) EndMixing() error {
	ch.endMixingCt++
	return nil
}

// openTestCard opens a card with a 48kHz sink and the default chip clock.
// frameRatePerMs is exactly 48.0 with these values.
func openTestCard(t *testing.T, chip *mockSynth) (*innovation.Innovation, *mockChannel, *ports.Bus, *float64) {
	t.Helper()

	ch := &mockChannel{sampleRate: 48000}
	bus := ports.NewBus()
	now := new(float64)

	inn, err := innovation.Open(chip, ch, bus, 0x280, innovation.ClockPresets["default"],
		func() float64 { return *now })
	test.ExpectedSuccess(t, err)
	t.Cleanup(inn.Close)

	return inn, ch, bus, now
}

func TestCatchUpRendering(t *testing.T) {
	chip := &mockSynth{cyclesPerSample: 19, level: 100}
	_, ch, bus, now := openTestCard(t, chip)

	// chip is configured against the sink's rate with the passband capped at
	// 90% of Nyquist
	test.Equate(t, chip.sampleRateHz, 48000.0)
	test.Equate(t, chip.passbandHz, 0.9*48000/2)

	// first write enables the card. the enable transition is time zero so no
	// catch-up happens for the preceding gap
	bus.Write(0x280, 0x0f)
	test.Equate(t, chip.renderedAtWrite[0], 0)
	test.Equate(t, len(ch.enableCalls), 1)
	test.Equate(t, ch.enableCalls[0], true)

	// a write 10ms later must render exactly round(10*48.0) frames before
	// the write reaches the chip
	*now = 10.0
	bus.Write(0x281, 0x22)
	test.Equate(t, chip.renderedAtWrite[1], 480)

	// rendered frames went to the FIFO, not the channel
	test.Equate(t, len(ch.frames), 0)

	// and the write itself arrived at the right register
	test.Equate(t, chip.regs[1], 0x22)
}

func TestFifoOrdering(t *testing.T) {
	chip := &mockSynth{cyclesPerSample: 10, sequence: true}
	inn, ch, bus, now := openTestCard(t, chip)

	bus.Write(0x280, 0x01)
	*now = 1.0
	bus.Write(0x280, 0x02)

	// 48 frames queued. ask for 100: the 48 buffered frames are delivered
	// first, in render order, followed by 52 live frames continuing the
	// sequence. every sample is doubled on the way out of the chip
	inn.Mix(100)
	test.Equate(t, len(ch.frames), 100)
	for i := range ch.frames {
		test.Equate(t, ch.frames[i], 2*(i+1))
	}
}

func TestLiveSynthesisAdvancesClock(t *testing.T) {
	chip := &mockSynth{cyclesPerSample: 10, level: 100}
	inn, _, bus, now := openTestCard(t, chip)

	bus.Write(0x280, 0x01)

	// an underrun of 480 frames advances the write-timeline clock by
	// 480/48.0 = 10ms
	inn.Mix(480)
	test.Equate(t, chip.rendered, 480)

	// a write at now=10ms finds no time to catch up
	*now = 10.0
	bus.Write(0x280, 0x02)
	test.Equate(t, chip.renderedAtWrite[1], 480)

	// whereas a further write at 20ms catches up the full 10ms
	*now = 20.0
	bus.Write(0x280, 0x03)
	test.Equate(t, chip.renderedAtWrite[2], 960)
}

func TestMixZeroFrames(t *testing.T) {
	chip := &mockSynth{cyclesPerSample: 10, level: 100}
	inn, ch, bus, _ := openTestCard(t, chip)

	bus.Write(0x280, 0x01)
	inn.Mix(0)
	test.Equate(t, len(ch.frames), 0)
	test.Equate(t, chip.rendered, 0)
}

func TestFifoExactDrain(t *testing.T) {
	chip := &mockSynth{cyclesPerSample: 10, level: 100}
	inn, ch, bus, now := openTestCard(t, chip)

	bus.Write(0x280, 0x01)
	*now = 1.0
	bus.Write(0x280, 0x02)

	// the FIFO holds exactly 48 frames; draining exactly that many performs
	// no live synthesis
	inn.Mix(48)
	test.Equate(t, len(ch.frames), 48)
	test.Equate(t, chip.rendered, 48)
}

func TestIdleTransition(t *testing.T) {
	// a chip that only ever outputs silence
	chip := &mockSynth{cyclesPerSample: 10, level: 0}
	inn, ch, bus, _ := openTestCard(t, chip)

	bus.Write(0x280, 0x01)
	test.Equate(t, len(ch.enableCalls), 1)

	// pull steadily with no further writes. both thresholds (200 pull
	// invocations and 200ms worth of silent frames) must be exceeded before
	// the card powers down
	for _i := 0; _i < 201; _i++ {
		inn.Mix(48)
		test.Equate(t, len(ch.enableCalls), 1)
	}
	inn.Mix(48)
	test.Equate(t, len(ch.enableCalls), 2)
	test.Equate(t, ch.enableCalls[1], false)

	// once disabled, further idle pulls do not disable the sink again
	for _i := 0; _i < 10; _i++ {
		inn.Mix(48)
	}
	test.Equate(t, len(ch.enableCalls), 2)
}

func TestSilenceAloneDoesNotIdle(t *testing.T) {
	chip := &mockSynth{cyclesPerSample: 10, level: 0}
	inn, ch, bus, now := openTestCard(t, chip)

	bus.Write(0x280, 0x01)

	// a genuine musical silence: rendered frames are all zero but the
	// program keeps writing. the card must not power down
	for i := 0; i < 500; i++ {
		inn.Mix(48)
		*now = float64(i + 1)
		bus.Write(0x280, 0x01)
	}
	test.Equate(t, len(ch.enableCalls), 1)
}

func TestReactivation(t *testing.T) {
	chip := &mockSynth{cyclesPerSample: 10, level: 0}
	inn, ch, bus, now := openTestCard(t, chip)

	bus.Write(0x280, 0x01)
	for _i := 0; _i < 210; _i++ {
		inn.Mix(48)
	}
	test.Equate(t, len(ch.enableCalls), 2)
	test.Equate(t, ch.enableCalls[1], false)

	// a write while disabled re-enables the card before the write reaches
	// the chip and does not catch up the idle gap
	renderedBefore := chip.rendered
	*now = 1000.0
	bus.Write(0x282, 0x40)
	test.Equate(t, len(ch.enableCalls), 3)
	test.Equate(t, ch.enableCalls[2], true)
	test.Equate(t, chip.renderedAtWrite[1], renderedBefore)
	test.Equate(t, chip.regs[2], 0x40)
}

func TestReadPassthrough(t *testing.T) {
	chip := &mockSynth{cyclesPerSample: 10, level: 100}
	_, _, bus, _ := openTestCard(t, chip)

	chip.regs[0x1b] = 0x77

	// reads pass straight through with no timeline side effects
	test.Equate(t, bus.Read(0x29b), 0x77)
	test.Equate(t, chip.rendered, 0)
	test.Equate(t, len(chip.renderedAtWrite), 0)
}

func TestCloseIsIdempotent(t *testing.T) {
	chip := &mockSynth{cyclesPerSample: 10, level: 100}
	ch := &mockChannel{sampleRate: 48000}
	bus := ports.NewBus()

	inn, err := innovation.Open(chip, ch, bus, 0x280, innovation.ClockPresets["default"],
		func() float64 { return 0 })
	test.ExpectedSuccess(t, err)
	test.Equate(t, inn.IsOpen(), true)

	inn.Close()
	test.Equate(t, inn.IsOpen(), false)
	test.Equate(t, ch.endMixingCt, 1)

	// the sink was disabled on close
	test.Equate(t, ch.enableCalls[len(ch.enableCalls)-1], false)

	// the port window was released
	test.Equate(t, bus.Read(0x280), 0xff)

	// closing again has no observable effect
	inn.Close()
	test.Equate(t, ch.endMixingCt, 1)

	// mixing after close is a no-op
	inn.Mix(100)
	test.Equate(t, len(ch.frames), 0)
}

func TestOpenPortConflict(t *testing.T) {
	chip := &mockSynth{cyclesPerSample: 10, level: 100}
	ch := &mockChannel{sampleRate: 48000}
	bus := ports.NewBus()

	// a write handler already occupies part of the card's window
	err := bus.InstallWrite(0x29f, 1, func(port uint16, data uint8) {})
	test.ExpectedSuccess(t, err)

	_, err = innovation.Open(chip, ch, bus, 0x280, innovation.ClockPresets["default"],
		func() float64 { return 0 })
	test.ExpectedFailure(t, err)

	// the partially installed read handler was rolled back
	test.Equate(t, bus.Read(0x280), 0xff)
}

// lockedChannel reproduces the locking shape of the live audio backends: a
// playback goroutine holds the channel's own mutex while asking the source
// to mix, and EndMixing takes the same mutex. it satisfies the mixer.Channel
// and mixer.Attacher interfaces.
type lockedChannel struct {
	crit        sync.Mutex
	src         mixer.Source
	stop        chan bool
	done        chan bool
	endMixingCt int
}

func newLockedChannel() *lockedChannel {
	return &lockedChannel{
		stop: make(chan bool),
		done: make(chan bool),
	}
}

func (ch *lockedChannel) SampleRate() int {
	return 48000
}

func (ch *lockedChannel) Enable(_ bool) {
}

func (ch *lockedChannel) AddFrames(_ []int16) {
}

func (ch *lockedChannel) EndMixing() error {
	ch.crit.Lock()
	defer ch.crit.Unlock()
	ch.endMixingCt++
	return nil
}

func (ch *lockedChannel) Attach(src mixer.Source) {
	ch.src = src

	go func() {
		for {
			select {
			case <-ch.stop:
				ch.done <- true
				return
			default:
			}

			ch.crit.Lock()
			ch.src.Mix(48)
			ch.crit.Unlock()
		}
	}()
}

func TestCloseWhilePulling(t *testing.T) {
	chip := &mockSynth{cyclesPerSample: 10, level: 100}
	ch := newLockedChannel()
	bus := ports.NewBus()

	inn, err := innovation.Open(chip, ch, bus, 0x280, innovation.ClockPresets["default"],
		func() float64 { return 0 })
	test.ExpectedSuccess(t, err)

	bus.Write(0x280, 0x01)

	// Close must complete while the playback goroutine is busy pulling.
	// the goroutine holds the channel mutex across Mix(), which needs the
	// card's lock, and EndMixing takes the channel mutex again; Close can
	// only get through by not holding the card's lock over the channel
	// shutdown
	closed := make(chan bool)
	go func() {
		inn.Close()
		closed <- true
	}()

	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return while the playback goroutine was mixing")
	}

	ch.stop <- true
	<-ch.done

	test.Equate(t, inn.IsOpen(), false)
	test.Equate(t, ch.endMixingCt, 1)
}

func TestAmplitudeOverflowPanics(t *testing.T) {
	// a synthesiser that breaks the headroom guarantee
	chip := &mockSynth{cyclesPerSample: 10, level: math.MaxInt16/2 + 1}
	inn, _, bus, _ := openTestCard(t, chip)

	bus.Write(0x280, 0x01)

	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic for a sample that cannot be doubled")
		}
	}()
	inn.Mix(1)
}

func TestAmplitudeCeiling(t *testing.T) {
	// the largest sample the headroom guarantee permits doubles cleanly
	chip := &mockSynth{cyclesPerSample: 10, level: math.MaxInt16 / 2}
	inn, ch, bus, _ := openTestCard(t, chip)

	bus.Write(0x280, 0x01)
	inn.Mix(1)

	test.Equate(t, len(ch.frames), 1)
	test.Equate(t, ch.frames[0], math.MaxInt16-1)
}
