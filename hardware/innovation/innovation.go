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

package innovation

import (
	"math"
	"sync"

	"github.com/jetsetilly/gophersid/curated"
	"github.com/jetsetilly/gophersid/hardware/memory/ports"
	"github.com/jetsetilly/gophersid/logger"
	"github.com/jetsetilly/gophersid/mixer"
)

// error pattern for all errors originating in the innovation package
const ErrInnovation = "innovation: %v"

// tag for logging entries from this package
const logTag = "innovation"

// the card stops asking the sink to mix it after this much time without a
// register write, provided the rendered output has been silent for an
// equivalent run of frames
const idleAfterMs = 200

// RegisterWindow is the size of the card's register window on the ISA bus.
// The SID only decodes 29 registers but the card responds across the full
// window.
const RegisterWindow = 0x20

// ClockPresets enumerates the chip clock frequencies selectable by jumper on
// the original card and its reproductions.
var ClockPresets = map[string]float64{
	"default": 894886.25,  // the original SSI-2001
	"c64ntsc": 1022727.14, // NTSC Commodore PCs and the DuoSID
	"c64pal":  985250,     // PAL Commodore PCs and the DuoSID
	"hardsid": 1000000,    // available on the DuoSID
}

// BasePorts enumerates the I/O addresses the card can be jumpered to.
var BasePorts = []uint16{0x240, 0x260, 0x280, 0x2a0, 0x2c0}

// Innovation is the emulation of the Innovation SSI-2001 sound card.
//
// The zero value is not usable; create instances with Open() and dispose of
// them with Close(). The card installs itself on the supplied ports.Bus and
// attaches itself to the supplied mixer.Channel as that channel's Source.
type Innovation struct {
	// both the port handlers (driven by the emulated instruction stream) and
	// Mix() (driven by the audio sink, possibly from another OS thread)
	// mutate the state below. crit covers all of it.
	crit sync.Mutex

	isOpen    bool
	isEnabled bool

	basePort  uint16
	chipClock float64

	chip    Synth
	channel mixer.Channel
	bus     *ports.Bus

	// simulated time in milliseconds. owned by the host, not the card
	now func() float64

	// sample frames per simulated millisecond, derived from the channel's
	// sample rate at open time
	frameRatePerMs float64

	// timestamp of the last catch-up point. advanced by the write path when
	// it renders the gap since the previous write and by the pull path when
	// it synthesises live frames. non-decreasing while the card is open
	lastRenderTime float64

	// pull invocations since the last register write
	unwrittenForMs int

	// consecutive zero-valued rendered frames. reset by any non-zero frame
	silentFrames int

	// frame-count equivalent of idleAfterMs, fixed at open time
	idleAfterSilentFrames int

	fifo sampleFifo

	// scratch buffer for Mix(), to avoid an allocation per pull
	mixBuf []int16
}

// Open creates the emulated card and makes it live: the chip is configured
// against the channel's sample rate, the card's register window is installed
// on the bus at basePort, and the card attaches itself to the channel as its
// frame source.
//
// chipClockHz would normally be one of the ClockPresets values and basePort
// one of BasePorts; the values are assumed to be validated by the
// configuration layer. now is the host's monotonic simulated-time clock in
// milliseconds.
func Open(chip Synth, channel mixer.Channel, bus *ports.Bus,
	basePort uint16, chipClockHz float64, now func() float64) (*Innovation, error) {

	inn := &Innovation{
		chip:      chip,
		channel:   channel,
		bus:       bus,
		basePort:  basePort,
		chipClock: chipClockHz,
		now:       now,
	}

	frameRateHz := channel.SampleRate()
	inn.frameRatePerMs = float64(frameRateHz) / 1000.0

	// how many silent frames before idling the chip
	inn.idleAfterSilentFrames = int(math.Round(inn.frameRatePerMs * idleAfterMs))

	// the passband frequency is capped at 90% of Nyquist
	passband := 0.9 * float64(frameRateHz) / 2
	inn.chip.Configure(chipClockHz, float64(frameRateHz), passband)

	err := bus.InstallRead(basePort, RegisterWindow, inn.readFromPort)
	if err != nil {
		return nil, curated.Errorf(ErrInnovation, err)
	}
	err = bus.InstallWrite(basePort, RegisterWindow, inn.writeToPort)
	if err != nil {
		bus.Uninstall(basePort, RegisterWindow)
		return nil, curated.Errorf(ErrInnovation, err)
	}

	if a, ok := channel.(mixer.Attacher); ok {
		a.Attach(inn)
	}

	// ready state-values for rendering
	inn.lastRenderTime = 0
	inn.unwrittenForMs = 0
	inn.silentFrames = 0
	inn.isEnabled = false
	inn.isOpen = true

	logger.Logf(logTag, "running on port %#04x with a SID at %.3f MHz",
		basePort, chipClockHz/1e6)

	return inn, nil
}

// Close disables the sink and releases the chip and the port bindings. It is
// safe to call Close more than once; calling it on a card that is not open
// is a no-op.
func (inn *Innovation) Close() {
	inn.crit.Lock()

	if !inn.isOpen {
		inn.crit.Unlock()
		return
	}

	logger.Logf(logTag, "shutting down the SSI-2001 on port %#04x", inn.basePort)

	// mark the card closed and release the chip while the lock is held. any
	// Mix() or port access arriving after this falls through on !isOpen and
	// can never address the released synthesiser
	channel := inn.channel
	inn.isEnabled = false
	inn.bus.Uninstall(inn.basePort, RegisterWindow)
	inn.chip = nil
	inn.fifo.reset()
	inn.isOpen = false

	inn.crit.Unlock()

	// the channel is shut down without the card lock. the sink's playback
	// goroutine may be holding the sink's own lock while waiting for the
	// card inside Mix(); holding crit here would deadlock against it
	channel.Enable(false)
	channel.EndMixing()
}

// IsOpen returns true if the card is live.
func (inn *Innovation) IsOpen() bool {
	inn.crit.Lock()
	defer inn.crit.Unlock()
	return inn.isOpen
}

// readFromPort is installed on the ports bus over the card's register
// window. Reads pass straight through to the chip and have no timeline side
// effects.
func (inn *Innovation) readFromPort(port uint16) uint8 {
	inn.crit.Lock()
	defer inn.crit.Unlock()

	if !inn.isOpen {
		return 0xff
	}

	return inn.chip.Read(uint8(port - inn.basePort))
}

// writeToPort is installed on the ports bus over the card's register window.
// This is the write-timeline entry point: before the write is applied, all
// simulated time since the previous event is rendered with the chip's old
// register state.
func (inn *Innovation) writeToPort(port uint16, data uint8) {
	inn.crit.Lock()
	defer inn.crit.Unlock()

	if !inn.isOpen {
		return
	}

	now := inn.now()

	// the enable transition is time zero: the preceding idle gap is not
	// rendered
	if !inn.isEnabled {
		inn.channel.Enable(true)
		inn.isEnabled = true
	} else {
		inn.renderForMs(now - inn.lastRenderTime)
	}
	inn.lastRenderTime = now

	inn.chip.Write(uint8(port-inn.basePort), data)
	inn.unwrittenForMs = 0
}
