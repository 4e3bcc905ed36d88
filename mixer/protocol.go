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

// Package mixer defines the protocol between a sound producing device and
// the audio sink that plays (or stores) the sound.
//
// The relationship is pull-driven. The sink decides when it needs audio and
// for how many frames, and asks the attached Source through the Mix()
// function. The source answers by delivering exactly that many frames back
// through AddFrames(). The two timelines involved (the device's write-driven
// timeline and the sink's fixed-rate pull timeline) are reconciled inside
// the source, not here.
package mixer

// Channel is the capability a sound producing device requires from an audio
// sink. Implementations are expected to call the attached Source from their
// own playback context, which may be a different OS thread to the one the
// device is running on.
type Channel interface {
	// SampleRate returns the sink's target sample rate in frames per second.
	// The value is fixed for the lifetime of the channel.
	SampleRate() int

	// Enable starts or stops the sink asking the source for frames. A
	// disabled channel produces silence without consulting the source.
	Enable(enable bool)

	// AddFrames delivers rendered frames to the sink. Only meaningful during
	// a Mix() invocation; the sink plays the frames in the order delivered.
	// The slice is owned by the source and may be reused; the sink must copy
	// the frames before returning.
	AddFrames(frames []int16)

	// EndMixing is called exactly once when the device is finished with the
	// channel. For simplicity, the channel should be considered unusable
	// after EndMixing has been called.
	EndMixing() error
}

// Source is the pull callback a device exposes to the sink it is attached
// to. Mix is invoked by the sink whenever it needs audio.
type Source interface {
	Mix(requestedFrames int)
}

// Attacher is implemented by sinks that accept a Source. Separated from
// Channel so that sinks can be handed to a device as a Channel only.
type Attacher interface {
	Attach(src Source)
}
