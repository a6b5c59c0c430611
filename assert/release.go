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

//go:build !assertions

package assert

// Enabled is true if the program was built with the assertions build tag.
const Enabled = false

// That panics with the formatted message if the condition is false.
func That(_ bool, _ string, _ ...any) {
}

// SameGoroutine panics if the current goroutine is not the one identified by
// id. An id of zero is ignored.
func SameGoroutine(_ uint64) {
}
