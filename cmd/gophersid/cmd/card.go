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
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jetsetilly/gophersid/hardware/innovation"
	"github.com/jetsetilly/gophersid/hardware/sid"
)

// the card configuration surface, shared by the play and render commands.
// defaults match the original SSI-2001's jumpers and the most common SID
// fitting.
var (
	sidModel   string
	sidClock   string
	sidPort    string
	filter6581 int
	filter8580 int
)

func registerCardFlags(c *cobra.Command) {
	c.Flags().StringVar(&sidModel, "sidmodel", "auto", "SID model: auto, 6581, 8580 or none")
	c.Flags().StringVar(&sidClock, "sidclock", "default", "SID clock: default, c64ntsc, c64pal or hardsid")
	c.Flags().StringVar(&sidPort, "sidport", "0x280", "base I/O port the card is jumpered to")
	c.Flags().IntVar(&filter6581, "6581filter", 50, "6581 filtering strength as a percent, 0 disables")
	c.Flags().IntVar(&filter8580, "8580filter", 50, "8580 filtering strength as a percent, 0 disables")
}

// newChip builds a SID chip from the command line flags. a nil chip with no
// error means the model is "none" and no card should be opened.
func newChip() (*sid.SID, error) {
	var model sid.Model

	switch strings.ToLower(sidModel) {
	case "none":
		return nil, nil
	case "auto", "6581":
		model = sid.Model6581
	case "8580":
		model = sid.Model8580
	default:
		return nil, fmt.Errorf("unknown SID model: %s", sidModel)
	}

	chip := sid.NewSID(model)

	strength := filter6581
	if model == sid.Model8580 {
		strength = filter8580
	}
	if strength < 0 || strength > 100 {
		return nil, fmt.Errorf("filter strength must be between 0 and 100")
	}
	chip.SetFilterStrength(strength)

	return chip, nil
}

func parseClock() (float64, error) {
	clock, ok := innovation.ClockPresets[strings.ToLower(sidClock)]
	if !ok {
		return 0, fmt.Errorf("unknown SID clock: %s", sidClock)
	}
	return clock, nil
}

func parsePort() (uint16, error) {
	port, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(sidPort), "0x"), 16, 16)
	if err != nil {
		return 0, fmt.Errorf("bad port address: %s", sidPort)
	}
	for _, p := range innovation.BasePorts {
		if uint16(port) == p {
			return uint16(port), nil
		}
	}
	return 0, fmt.Errorf("the card cannot be jumpered to port %#04x", port)
}
