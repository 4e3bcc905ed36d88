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

// Mix implements the mixer.Source interface. It is invoked by the audio sink
// whenever it needs frames, at the sink's own cadence.
//
// Frames queued by catch-up rendering are delivered first; they represent
// audio that is now due. If the FIFO underruns, the shortfall is synthesised
// live and the write-timeline clock is advanced by the equivalent duration,
// keeping future catch-up calculations consistent with the passage of time
// even though no register write triggered them.
func (inn *Innovation) Mix(requestedFrames int) {
	inn.crit.Lock()
	defer inn.crit.Unlock()

	if !inn.isOpen {
		return
	}

	if cap(inn.mixBuf) < requestedFrames {
		inn.mixBuf = make([]int16, requestedFrames)
	}

	n := inn.fifo.drain(inn.mixBuf[:requestedFrames])
	if n > 0 {
		inn.channel.AddFrames(inn.mixBuf[:n])
	}

	if remaining := requestedFrames - n; remaining > 0 {
		inn.lastRenderTime += inn.framesToMs(remaining)

		live := inn.mixBuf[n:requestedFrames]
		for i := range live {
			live[i] = inn.renderOnce()
		}
		inn.channel.AddFrames(live)
	}

	// the idle check runs once per invocation, no matter where the frames
	// came from. both conditions must hold before powering down: time since
	// the last register write alone would kill a genuine musical pause
	// between note writes
	idle := inn.unwrittenForMs > idleAfterMs
	inn.unwrittenForMs++

	if idle && inn.silentFrames > inn.idleAfterSilentFrames && inn.isEnabled {
		inn.channel.Enable(false)
		inn.isEnabled = false
	}
}
