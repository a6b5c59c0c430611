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

// Package assert contains checks that are only compiled into the program
// when the "assertions" build tag is specified. Without the build tag the
// functions do nothing and should be optimised away by the compiler.
//
// Assertions are for programmer errors. For example, a caller asking for a
// slide on a note that is not musical. They should not be used for checking
// data that has come from outside the program.
package assert
