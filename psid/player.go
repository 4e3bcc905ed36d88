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

import (
	"github.com/beevik/go6502/cpu"

	"github.com/jetsetilly/gophersid/curated"
	"github.com/jetsetilly/gophersid/hardware/innovation"
	"github.com/jetsetilly/gophersid/hardware/memory/ports"
	"github.com/jetsetilly/gophersid/logger"
)

const logTag = "psid"

const (
	palFrameRate  = 50.0
	ntscFrameRate = 60.0

	// the SID register window in the C64 memory map
	sidOrigin = 0xd400

	// runaway init/play routines are abandoned after this many instructions
	maxInstructions = 0x100000
)

// Player runs a PSID tune on an emulated 6502 and routes SID register
// writes through a port bus. the Player never talks to the card directly;
// the card sees only bus traffic, timestamped with the Player's emulated
// clock.
type Player struct {
	tune *Tune

	mem *memory
	mc  *cpu.CPU

	bus      *ports.Bus
	basePort uint16

	clockHz float64

	// emulated cycles at the most recent frame boundary
	clock uint64

	// value of mc.Cycles when the running routine was entered
	frameStart uint64

	// cycles between calls to the play routine. reloaded from the CIA
	// timer for CIA-timed songs
	framePeriod uint64

	currentSong uint16
}

// NewPlayer is the preferred method of initialisation for the Player type.
// basePort is the port the SID card is listening on; writes to the C64's SID
// register window are redirected there.
func NewPlayer(tune *Tune, bus *ports.Bus, basePort uint16, clockHz float64) (*Player, error) {
	p := &Player{
		tune:        tune,
		bus:         bus,
		basePort:    basePort,
		clockHz:     clockHz,
		framePeriod: uint64(clockHz / palFrameRate),
	}

	p.mem = newMemory(func(addr uint16, data byte) {
		if addr >= sidOrigin && addr < sidOrigin+innovation.RegisterWindow {
			p.bus.Write(p.basePort+(addr-sidOrigin), uint8(data))
		}
	})
	p.mc = cpu.NewCPU(cpu.NMOS, p.mem)

	p.mem.StoreBytes(tune.LoadAddress, tune.data)

	// processor port: RAM visible, I/O mapped in
	p.mem.StoreByte(0x01, 0x37)

	err := p.SelectSong(tune.StartSong)
	if err != nil {
		return nil, err
	}

	logger.Logf(logTag, "%s", tune.String())

	return p, nil
}

// Now returns the emulated time in milliseconds. Suitable as the time source
// for an Innovation card.
func (p *Player) Now() float64 {
	elapsed := p.mc.Cycles - p.frameStart
	if elapsed > p.framePeriod {
		elapsed = p.framePeriod
	}
	return float64(p.clock+elapsed) / p.clockHz * 1000.0
}

// FrameRate returns the rate the play routine is being called at.
func (p *Player) FrameRate() float64 {
	return p.clockHz / float64(p.framePeriod)
}

// Song returns the one-based number of the song being played.
func (p *Player) Song() uint16 {
	return p.currentSong
}

// SelectSong runs the tune's init routine for the given one-based song
// number.
func (p *Player) SelectSong(song uint16) error {
	if song < 1 || song > p.tune.Songs {
		return curated.Errorf(ErrPSID, "no such song")
	}
	p.currentSong = song

	p.framePeriod = uint64(p.clockHz / palFrameRate)

	// the accumulator selects the song, zero-based
	p.startRoutine(p.tune.InitAddress, uint8(song-1))

	instructions := 0
	for !p.routineDone() {
		// some init routines busy-wait on the raster. nudge it along
		raster := p.mem.LoadByte(0xd012) + 1
		p.mem.StoreByte(0xd012, raster)
		if raster == 0 || (p.mem.LoadByte(0xd011)&0x80 != 0 && raster >= 0x38) {
			p.mem.StoreByte(0xd011, p.mem.LoadByte(0xd011)^0x80)
			p.mem.StoreByte(0xd012, 0x00)
		}

		instructions++
		if instructions > maxInstructions {
			logger.Log(logTag, "init routine executed a high number of instructions, breaking")
			break
		}
	}

	// a zero play address means the init routine installed an interrupt
	// handler. take the play address from the active vector
	if p.tune.PlayAddress == 0 {
		if p.mem.LoadByte(0x01)&0x07 == 0x05 {
			p.tune.PlayAddress = uint16(p.mem.LoadByte(0xfffe)) | uint16(p.mem.LoadByte(0xffff))<<8
		} else {
			p.tune.PlayAddress = uint16(p.mem.LoadByte(0x0314)) | uint16(p.mem.LoadByte(0x0315))<<8
		}
		logger.Logf(logTag, "play address taken from interrupt vector: %#04x", p.tune.PlayAddress)
	}

	p.updateFramePeriod()

	return nil
}

// RunFrame runs the play routine once and advances the emulated clock by one
// frame period.
func (p *Player) RunFrame() {
	p.startRoutine(p.tune.PlayAddress, 0)

	instructions := 0
	for !p.routineDone() {
		instructions++
		if instructions > maxInstructions {
			logger.Log(logTag, "play routine executed a high number of instructions, breaking")
			break
		}

		// a jump into the kernal interrupt exit means the routine is done
		if p.mem.LoadByte(0x01)&0x07 != 0x05 && (p.mc.Reg.PC == 0xea31 || p.mc.Reg.PC == 0xea81) {
			break
		}
	}

	p.updateFramePeriod()

	p.clock += p.framePeriod
	p.frameStart = p.mc.Cycles
}

// for CIA-timed songs the frame period tracks the CIA timer A latch.
func (p *Player) updateFramePeriod() {
	if !p.tune.CIATimed(p.currentSong) {
		return
	}
	if p.mem.LoadByte(0x01)&0x03 == 0 {
		return
	}

	period := uint64(p.mem.LoadByte(0xdc04)) | uint64(p.mem.LoadByte(0xdc05))<<8
	if period != 0 {
		p.framePeriod = period
	}
}

func (p *Player) startRoutine(pc uint16, a uint8) {
	p.mc.SetPC(pc)
	p.mc.Reg.A = a
	p.mc.Reg.X = 0
	p.mc.Reg.Y = 0
	p.frameStart = p.mc.Cycles
}

// step the CPU once and report whether the routine has returned. a BRK, or
// an RTS/RTI with an empty stack, ends the routine.
func (p *Player) routineDone() bool {
	p.mc.Step()

	opcode := p.mem.LoadByte(p.mc.Reg.PC)
	inst := p.mc.InstSet.Lookup(opcode)

	switch {
	case inst.Opcode == 0x00:
		return true
	case inst.Opcode == 0x40 && p.mc.Reg.SP == 0xff:
		return true
	case inst.Opcode == 0x60 && p.mc.Reg.SP == 0xff:
		return true
	}
	return false
}
