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

// Package notifications allow the core to tell the caller about data that has
// been repaired while being processed. For example, a pattern that has been
// duplicated during note conversion or an envelope value that has been
// clamped to its valid range.
//
// Notices never stop processing. The caller decides whether to present them
// to the user, log them or ignore them. The Collector type is a simple
// implementation of the Notify interface that keeps every notice.
package notifications
