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
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/jetsetilly/gophersid/hardware/innovation"
	"github.com/jetsetilly/gophersid/hardware/memory/ports"
	"github.com/jetsetilly/gophersid/mixer"
	"github.com/jetsetilly/gophersid/mixer/otomixer"
	"github.com/jetsetilly/gophersid/mixer/sdlmixer"
	"github.com/jetsetilly/gophersid/psid"
	"github.com/jetsetilly/gophersid/statsview"
)

const playbackSampleRate = 48000

var (
	playAudio    string
	playSong     int
	playDuration time.Duration
	playStats    bool
)

var playCmd = &cobra.Command{
	Use:   "play <psid-file>",
	Short: "Play a PSID tune through an audio backend",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	registerCardFlags(playCmd)

	playCmd.Flags().StringVar(&playAudio, "audio", "sdl", "audio backend: sdl or oto")
	playCmd.Flags().IntVar(&playSong, "song", 0, "song number to play, 0 for the tune's default")
	playCmd.Flags().DurationVar(&playDuration, "duration", 0, "stop after this long, 0 to play until interrupted")
	playCmd.Flags().BoolVar(&playStats, "stats", false, "launch the runtime statistics server")
}

func runPlay(_ *cobra.Command, args []string) error {
	chip, err := newChip()
	if err != nil {
		return err
	}
	if chip == nil {
		return fmt.Errorf("sidmodel is 'none': there is nothing to play with")
	}

	clock, err := parseClock()
	if err != nil {
		return err
	}
	port, err := parsePort()
	if err != nil {
		return err
	}

	var channel mixer.Channel
	switch playAudio {
	case "sdl":
		channel, err = sdlmixer.NewMixer(playbackSampleRate)
	case "oto":
		channel, err = otomixer.NewMixer(playbackSampleRate)
	default:
		return fmt.Errorf("unknown audio backend: %s", playAudio)
	}
	if err != nil {
		return err
	}

	tune, err := psid.LoadTune(args[0])
	if err != nil {
		return err
	}

	// the card must be live before the player runs the tune's init routine
	// or the routine's register writes will be lost. the player does not
	// exist yet so the card's clock reaches it through the closure
	var player *psid.Player

	bus := ports.NewBus()
	card, err := innovation.Open(chip, channel, bus, port, clock, func() float64 {
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

	if playSong != 0 {
		err = player.SelectSong(uint16(playSong))
		if err != nil {
			return err
		}
	}

	if playStats {
		if !statsview.Available() {
			return fmt.Errorf("statsview is not available in this build")
		}
		statsview.Launch(os.Stdout)
	}

	fmt.Printf("playing %s (song %d of %d)\n", tune.String(), player.Song(), tune.Songs)

	intr := make(chan os.Signal, 1)
	signal.Notify(intr, os.Interrupt)

	var timeout <-chan time.Time
	if playDuration > 0 {
		timeout = time.After(playDuration)
	}

	// the audio backend pulls frames as it needs them. all the loop has to
	// do is run the play routine at the tune's frame rate
	for {
		select {
		case <-intr:
			fmt.Println("")
			return nil
		case <-timeout:
			return nil
		default:
		}

		player.RunFrame()
		time.Sleep(time.Duration(float64(time.Second) / player.FrameRate()))
	}
}
