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

package player

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jetsetilly/chiptracker/hardware/apu"
	"github.com/jetsetilly/chiptracker/song"
	"github.com/jetsetilly/chiptracker/tracker"
)

// Export plays the song from start to end and returns the register writes.
// The next argument can be nil. If it is not nil then every recorded write is
// also sent to it.
func Export(ctx context.Context, s *song.Song, opts Options, next apu.Sink) (apu.Writes, error) {
	tr := tracker.NewTracker(opts.ChangesOnly, 0, next)
	sess := NewSession(s, tr, opts)
	if err := sess.Run(ctx); err != nil {
		return tr.Writes(), err
	}
	return tr.Writes(), nil
}

// ExportSongs exports each song in its own session. The sessions run
// concurrently. The returned writes are in the same order as the songs.
//
// The songs can belong to the same project but must not be edited until
// ExportSongs() has returned. If any export fails then the context given to
// the other exports is cancelled and the first error is returned.
func ExportSongs(ctx context.Context, songs []*song.Song, opts Options) ([]apu.Writes, error) {
	// bring the caches up to date before the songs are shared between
	// goroutines
	for _, s := range songs {
		s.UpdateCaches()
	}

	results := make([]apu.Writes, len(songs))

	g, ctx := errgroup.WithContext(ctx)
	for i, s := range songs {
		g.Go(func() error {
			w, err := Export(ctx, s, opts, nil)
			results[i] = w
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	return results, nil
}
