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

// Package innovation emulates the Innovation SSI-2001 sound card. The card is
// a SID chip on the ISA bus and the interesting part of the emulation is not
// the chip, which lives in its own package, but the reconciliation of two
// independent timelines.
//
// The first timeline is the write timeline. The emulated program touches the
// card's registers at arbitrary moments of simulated time. The second is the
// pull timeline. The audio sink asks for a fixed number of frames at its own
// cadence, unrelated to anything the emulated program is doing.
//
// The card bridges the two with catch-up rendering. Nothing is synthesised
// when time merely passes; instead, when a register write arrives, the card
// renders all the frames that the elapsed time since the previous write
// represents, using the old register values, and queues them in a FIFO. Only
// then is the write applied to the chip. The pull side drains the FIFO and,
// when the FIFO runs dry, synthesises the shortfall live, moving the write
// timeline's clock forward to match so that the next catch-up calculation
// remains consistent.
//
// The emulation only does work proportional to actual register activity and
// catch-up amounts are exact, because they are computed from elapsed
// simulated time rather than from a polling interval.
//
// A card that is written to and then left alone while the chip decays to
// silence is eventually powered down: after 200ms without a register write
// and an equivalent run of silent frames, the card stops asking the sink to
// mix it at all. Any register write powers it back up.
package innovation
