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

// Package cmd implements the gophersid command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jetsetilly/gophersid/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "gophersid",
	Short: "An emulated Innovation SSI-2001 sound card",
	Long: `gophersid emulates the Innovation SSI-2001 sound card: a MOS 6581/8580
SID chip on an ISA card. PSID tunes are run on an emulated 6502 and the
resulting register writes are rendered with cycle accuracy.

Examples:
  gophersid play tune.sid                     # play through the default audio backend
  gophersid play --sidmodel 8580 tune.sid     # play with an 8580 fitted
  gophersid render -o tune.wav tune.sid       # render one minute to a WAV file
  gophersid info tune.sid                     # show tune information`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetEcho(os.Stderr)
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "echo the log to stderr")
}
