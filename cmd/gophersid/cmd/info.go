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

	"github.com/spf13/cobra"

	"github.com/jetsetilly/gophersid/psid"
)

var infoCmd = &cobra.Command{
	Use:   "info <psid-file>",
	Short: "Show information about a PSID tune",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(_ *cobra.Command, args []string) error {
	tune, err := psid.LoadTune(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("name:     %s\n", tune.Name)
	fmt.Printf("author:   %s\n", tune.Author)
	fmt.Printf("released: %s\n", tune.Released)
	fmt.Printf("load:     %#04x\n", tune.LoadAddress)
	fmt.Printf("init:     %#04x\n", tune.InitAddress)
	fmt.Printf("play:     %#04x\n", tune.PlayAddress)
	fmt.Printf("songs:    %d (starting at %d)\n", tune.Songs, tune.StartSong)

	for i := uint16(1); i <= tune.Songs; i++ {
		if tune.CIATimed(i) {
			fmt.Printf("song %d is clocked by the CIA timer\n", i)
		}
	}

	return nil
}
