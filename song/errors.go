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

package song

// Sentinal error patterns.
const (
	PatternNameNotUnique   = "song: pattern name is not unique (%s)"
	PatternNotInChannel    = "song: pattern does not belong to channel (%s)"
	InvalidPatternPosition = "song: invalid pattern position (%d)"
	InvalidSongLength      = "song: invalid song length (%d)"
	SongNameNotUnique      = "song: song name is not unique (%s)"
	InstrumentNotUnique    = "song: instrument name is not unique (%s)"
	UnsupportedExpansion   = "song: unsupported expansion mask (%s)"
	CacheIntegrity         = "song: cache integrity: %s: pattern %d: %s"
	InstanceIntegrity      = "song: instance integrity: %s: pattern %d"
)
