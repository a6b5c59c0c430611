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

// Package logger is the central log repository for Chiptracker. Log entries
// are made with the Log() and Logf() functions. An entry is made up of a tag
// and a detail string. The tag identifies the part of the program making the
// entry and should be short.
//
//	logger.Log(logger.Allow, "song", "duplicating pattern")
//
// The detail argument of Log() can be a string, an error, a fmt.Stringer or
// any other type. Types other than the first three are formatted with the %v
// verb.
//
// Consecutive entries with the same tag and detail are folded into a single
// entry with a repeat count.
//
// The first argument to Log() and Logf() is a Permission implementation. The
// Allow value can be used when logging should always happen. Other
// implementations can be used to prevent logging in certain circumstances. For
// example, a playback session used for a short preview might not want to
// flood the log with warnings that the main export session will also make.
//
// In addition to the central logger, independent loggers can be created with
// NewLogger(). These are useful for collecting the entries produced by a
// single operation, for example an export of one song.
package logger
