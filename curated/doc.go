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

// Package curated wraps error values with the pattern that created them. The
// chiptracker packages declare their errors as sentinal patterns, stored as
// const strings next to the function that returns them:
//
//	// Sentinal error returned by ParseMode.
//	const UnknownMode = "sfx: unknown mode (%s)"
//
// An error is created from the pattern with Errorf(). The values are kept
// with the pattern and are only formatted when Error() is called:
//
//	return ModeNTSC, curated.Errorf(UnknownMode, s)
//
// Callers test for the sentinal with Is(). Has() does the same but searches
// every error in the chain, which is useful when an error has been wrapped by
// another package:
//
//	_, err := sfx.ParseMode("secam")
//	if curated.Is(err, sfx.UnknownMode) {
//		...
//	}
//
//	err = curated.Errorf(prefs.DiskError, err)
//	curated.Is(err, sfx.UnknownMode)  // false
//	curated.Has(err, sfx.UnknownMode) // true
//
// IsAny() returns true for any error created by Errorf(). Errors from the
// standard library or the Lua interpreter are not curated.
//
// Message parts are separated by ": ". The package prefix of a pattern means
// that a wrapped error can repeat the prefix of the error that wraps it. Error()
// removes the repetition when the first two parts are the same:
//
//	curated.Errorf("song: %v", curated.Errorf("song: invalid length (%d)", 0))
//
// is printed as "song: invalid length (0)".
package curated
