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

package curated_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/chiptracker/curated"
	"github.com/jetsetilly/chiptracker/test"
)

const testError = "test error: %s"
const wrapError = "wrap error: %v"

func TestDuplicateErrors(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	test.ExpectEquality(t, e.Error(), "test error: foo")

	// packing errors of the same type next to each other causes
	// one of them to be dropped
	f := curated.Errorf(testError, e)
	test.ExpectEquality(t, f.Error(), "test error: foo")
}

func TestIs(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	test.ExpectSuccess(t, curated.IsAny(e))
	test.ExpectSuccess(t, curated.Is(e, testError))
	test.ExpectFailure(t, curated.Is(e, wrapError))

	f := curated.Errorf(wrapError, e)
	test.ExpectFailure(t, curated.Is(f, testError))
	test.ExpectSuccess(t, curated.Has(f, testError))
	test.ExpectSuccess(t, curated.Has(f, wrapError))

	// plain errors are not curated
	p := errors.New("plain")
	test.ExpectFailure(t, curated.IsAny(p))
	test.ExpectFailure(t, curated.Has(p, testError))
}

func TestUnwrap(t *testing.T) {
	p := errors.New("plain")
	e := curated.Errorf(wrapError, p)
	test.ExpectSuccess(t, errors.Is(e, p))
}

func TestPackagePrefix(t *testing.T) {
	const unknownMode = "sfx: unknown mode (%s)"
	const diskError = "prefs: %v"
	const wrapSong = "song: %v"

	e := curated.Errorf(diskError, curated.Errorf(unknownMode, "secam"))
	test.ExpectEquality(t, e.Error(), "prefs: sfx: unknown mode (secam)")
	test.ExpectFailure(t, curated.Is(e, unknownMode))
	test.ExpectSuccess(t, curated.Has(e, unknownMode))

	// a repeated package prefix is printed once
	f := curated.Errorf(wrapSong, curated.Errorf("song: invalid length (%d)", 0))
	test.ExpectEquality(t, f.Error(), "song: invalid length (0)")
}
