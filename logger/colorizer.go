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

package logger

import (
	"bytes"
	"io"
)

const (
	penTag    = "\033[33m"
	penNormal = "\033[0m"
)

// Colorizer applies basic coloring to the log output. The tag of each entry
// is coloured differently to the detail.
//
// Should only be used with an io.Writer that is connected to a terminal.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method of initialisation for the Colorizer
// type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (int, error) {
	var n int

	for _, l := range bytes.SplitAfter(p, []byte("\n")) {
		if len(l) == 0 {
			continue
		}

		i := bytes.Index(l, []byte(": "))
		if i < 0 {
			m, err := c.out.Write(l)
			n += m
			if err != nil {
				return n, err
			}
			continue
		}

		if _, err := io.WriteString(c.out, penTag); err != nil {
			return n, err
		}
		m, err := c.out.Write(l[:i])
		n += m
		if err != nil {
			return n, err
		}
		if _, err := io.WriteString(c.out, penNormal); err != nil {
			return n, err
		}
		m, err = c.out.Write(l[i:])
		n += m
		if err != nil {
			return n, err
		}
	}

	return n, nil
}
