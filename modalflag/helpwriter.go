// This file is part of Chiptracker.
//
// Chiptracker is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Chiptracker is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Chiptracker.  If not, see <https://www.gnu.org/licenses/>.

package modalflag

import (
	"fmt"
	"io"
	"strings"
)

// help writes the help message for the current mode
func (md *Modes) help(output io.Writer) {
	flags := md.flags.FlagUsages()

	if flags == "" && len(md.subModes) == 0 {
		io.WriteString(output, "No help available")
		if md.Path() != "" {
			fmt.Fprintf(output, " for %s mode", md.Path())
		}
		io.WriteString(output, "\n")
		return
	}

	if md.Path() != "" {
		fmt.Fprintf(output, "Usage for %s mode:\n", md.Path())
	} else {
		io.WriteString(output, "Usage:\n")
	}

	io.WriteString(output, flags)

	if len(md.subModes) > 0 {
		if flags != "" {
			io.WriteString(output, "\n")
		}
		fmt.Fprintf(output, "  available sub-modes: %s\n", strings.Join(md.subModes, ", "))
		fmt.Fprintf(output, "    default: %s\n", md.subModes[0])
	}

	if md.additionalHelp != "" {
		fmt.Fprintf(output, "\n%s\n", md.additionalHelp)
	}
}
