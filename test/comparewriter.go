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

package test

import "strings"

// CompareWriter collects everything written to it. It is used as the output
// of the command line parser and of the program modes so that help text and
// exported listings can be checked.
type CompareWriter struct {
	b strings.Builder
}

func (w *CompareWriter) Write(p []byte) (int, error) {
	return w.b.Write(p)
}

// Reset discards the collected output.
func (w *CompareWriter) Reset() {
	w.b.Reset()
}

// Compare returns true if the collected output is exactly s.
func (w *CompareWriter) Compare(s string) bool {
	return w.b.String() == s
}

func (w *CompareWriter) String() string {
	return w.b.String()
}
