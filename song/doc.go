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

// Package song is the sequencing data model. A Project contains Songs, a Song
// contains one Channel for every active channel type, and a Channel is a list
// of Pattern instances, one for each position in the song. A Pattern is a
// sparse list of Notes keyed by the note index within the pattern.
//
// Several positions in a song can refer to the same Pattern. A Pattern is
// owned by exactly one Channel.
//
// # Cumulative cache
//
// Each channel keeps a cache of the effect values and note locations that
// are in effect at the end of every pattern position. The cache is updated
// lazily and is valid for a prefix of the song only. Any function that
// changes the notes of a pattern must be followed by a call to one of the
// InvalidateCache() functions.
//
// The data in a Song can be read by more than one goroutine at once but it
// must not be changed while it is being read. Calling Song.UpdateCaches()
// before starting concurrent readers avoids the readers contending for the
// cache update.
//
// # Compound and simple notes
//
// Notes are normally stored in compound form, where a musical note carries
// its own duration and release point. Some consumers of the data only
// understand the simple form, where the end of a note is marked by a stop
// note and the release by a release note. Channel.ConvertToSimpleNotes() and
// Channel.ConvertToCompoundNotes() convert between the two forms.
package song
