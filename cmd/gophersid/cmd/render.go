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

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jetsetilly/gophersid/hardware/innovation"
	"github.com/jetsetilly/gophersid/hardware/memory/ports"
	"github.com/jetsetilly/gophersid/pcm"
	"github.com/jetsetilly/gophersid/psid"
	"github.com/jetsetilly/gophersid/wavwriter"
)

var (
	renderOutput   string
	renderSong     int
	renderDuration time.Duration
	renderDigi     string
)

// EXT IN is a held sample so the digi stream only needs refreshing every few
// frames. 32 frames is two thirds of a millisecond at 48kHz
const digiChunk = 32

var renderCmd = &cobra.Command{
	Use:   "render <psid-file>",
	Short: "Render a PSID tune to a WAV file",
	Long: `Render a PSID tune to a WAV file, faster than real time. The tune runs
on the emulated 6502 exactly as it does during playback; only the audio sink
differs.

A WAV or MP3 file given with --digi is fed to the SID's external audio input
pin, the way sample playback hardware drove the chip.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	registerCardFlags(renderCmd)

	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "out.wav", "WAV file to write")
	renderCmd.Flags().IntVar(&renderSong, "song", 0, "song number to render, 0 for the tune's default")
	renderCmd.Flags().DurationVar(&renderDuration, "duration", time.Minute, "length of audio to render")
	renderCmd.Flags().StringVar(&renderDigi, "digi", "", "WAV/MP3 file to feed to the external audio input")
}

func runRender(_ *cobra.Command, args []string) error {
	chip, err := newChip()
	if err != nil {
		return err
	}
	if chip == nil {
		return fmt.Errorf("sidmodel is 'none': there is nothing to render with")
	}

	clock, err := parseClock()
	if err != nil {
		return err
	}
	port, err := parsePort()
	if err != nil {
		return err
	}

	tune, err := psid.LoadTune(args[0])
	if err != nil {
		return err
	}

	var digi pcm.Data
	if renderDigi != "" {
		digi, err = pcm.Load(renderDigi)
		if err != nil {
			return err
		}
	}

	sink, err := wavwriter.NewWavWriter(renderOutput, playbackSampleRate)
	if err != nil {
		return err
	}

	var player *psid.Player

	bus := ports.NewBus()
	card, err := innovation.Open(chip, sink, bus, port, clock, func() float64 {
		if player == nil {
			return 0
		}
		return player.Now()
	})
	if err != nil {
		return err
	}
	defer card.Close()

	player, err = psid.NewPlayer(tune, bus, port, clock)
	if err != nil {
		return err
	}

	if renderSong != 0 {
		err = player.SelectSong(uint16(renderSong))
		if err != nil {
			return err
		}
	}

	fmt.Printf("rendering %s (song %d of %d)\n", tune.String(), player.Song(), tune.Songs)

	// a file sink does not pull so the loop drives the card directly: one
	// call to the play routine, then the frames that elapse before the next
	// call. the fractional remainder carries over so the output does not
	// drift against the emulated clock
	totalFrames := int(renderDuration.Seconds() * playbackSampleRate)
	written := 0
	carry := 0.0
	digiPos := 0.0

	for written < totalFrames {
		player.RunFrame()

		framesF := playbackSampleRate/player.FrameRate() + carry
		frames := int(framesF)
		carry = framesF - float64(frames)
		if written+frames > totalFrames {
			frames = totalFrames - written
		}

		if len(digi.Frames) == 0 {
			card.Mix(frames)
			written += frames
			continue
		}

		for off := 0; off < frames; off += digiChunk {
			n := min(digiChunk, frames-off)
			if idx := int(digiPos); idx < len(digi.Frames) {
				chip.Input(digi.Frames[idx])
			} else {
				chip.Input(0)
			}
			digiPos += float64(n) * digi.SampleRate / playbackSampleRate
			card.Mix(n)
		}
		written += frames
	}

	// closing the card ends the mix and writes the file
	card.Close()

	fmt.Printf("wrote %s of audio to %s\n", renderDuration, renderOutput)

	return nil
}
