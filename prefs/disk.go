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

package prefs

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/jetsetilly/chiptracker/curated"
	"github.com/jetsetilly/chiptracker/logger"
)

// DefaultPrefsFile is the name of the prefs file used by the packages that
// store preferences.
const DefaultPrefsFile = "preferences"

// WarningBoilerPlate is the first line of every prefs file.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// separates the key and value of each entry in the prefs file
const fieldSep = " :: "

// Sentinal errors returned by the Disk type.
const (
	NoPrefsFile      = "prefs: no prefs file (%s)"
	InvalidPrefsFile = "prefs: not a valid prefs file (%s)"
	DuplicateKey     = "prefs: duplicate key (%s)"
	DiskError        = "prefs: %v"
)

// Disk represents preference values as stored on disk. Entries in the file
// that have not been added to the Disk instance are preserved when the file
// is saved.
type Disk struct {
	crit sync.Mutex

	path    string
	entries map[string]pref

	// values that were set from the command line stack. they take priority
	// over the values in the prefs file and are never saved
	commandLine map[string]Value
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, curated.Errorf(NoPrefsFile, path)
	}

	return &Disk{
		path:        path,
		entries:     make(map[string]pref),
		commandLine: make(map[string]Value),
	}, nil
}

func (dsk *Disk) String() string {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	var s strings.Builder
	for _, k := range slices.Sorted(maps.Keys(dsk.entries)) {
		s.WriteString(k)
		s.WriteString(fieldSep)
		s.WriteString(dsk.entries[k].String())
		s.WriteString("\n")
	}
	return s.String()
}

// Path returns the location of the prefs file.
func (dsk *Disk) Path() string {
	return dsk.path
}

// Add a preference value to the Disk. If the top of the command line stack
// contains the key then the value is set immediately.
func (dsk *Disk) Add(key string, p pref) error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf(DuplicateKey, key)
	}
	dsk.entries[key] = p

	if ok, v := GetCommandLinePref(key); ok {
		if err := p.Set(v); err != nil {
			return curated.Errorf(DiskError, err)
		}
		dsk.commandLine[key] = v
		logger.Logf(logger.Allow, "prefs", "%s set from command line (%v)", key, v)
	}

	return nil
}

// Reset all values added to the Disk to their default.
func (dsk *Disk) Reset() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	for _, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return curated.Errorf(DiskError, err)
		}
	}
	return nil
}

// read the prefs file into a map of key and value strings
func (dsk *Disk) read() (map[string]string, error) {
	b, err := os.ReadFile(dsk.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, curated.Errorf(NoPrefsFile, dsk.path)
		}
		return nil, curated.Errorf(DiskError, err)
	}

	lines := strings.Split(string(b), "\n")
	if lines[0] != WarningBoilerPlate {
		return nil, curated.Errorf(InvalidPrefsFile, dsk.path)
	}

	data := make(map[string]string)
	for _, l := range lines[1:] {
		if l == "" {
			continue
		}
		k, v, ok := strings.Cut(l, fieldSep)
		if !ok {
			logger.Logf(logger.Allow, "prefs", "ignoring malformed line in %s: %s", dsk.path, l)
			continue
		}
		data[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}

	return data, nil
}

// Save the current state of the entries to disk.
func (dsk *Disk) Save() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()
	return dsk.save()
}

func (dsk *Disk) save() error {
	data, err := dsk.read()
	if err != nil {
		if !curated.Is(err, NoPrefsFile) {
			return err
		}
		data = make(map[string]string)
	}

	for k, p := range dsk.entries {
		if _, ok := dsk.commandLine[k]; ok {
			continue
		}
		data[k] = p.String()
	}

	var s strings.Builder
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range slices.Sorted(maps.Keys(data)) {
		s.WriteString(k)
		s.WriteString(fieldSep)
		s.WriteString(data[k])
		s.WriteString("\n")
	}

	if err := os.MkdirAll(filepath.Dir(dsk.path), 0o700); err != nil {
		return curated.Errorf(DiskError, err)
	}

	if err := os.WriteFile(dsk.path, []byte(s.String()), 0o600); err != nil {
		return curated.Errorf(DiskError, err)
	}

	return nil
}

// Load the prefs file and set the values of the entries that have been added
// to the Disk. If the file does not exist and saveIfMissing is true then the
// file is created with the current values.
func (dsk *Disk) Load(saveIfMissing bool) error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	data, err := dsk.read()
	if err != nil {
		if curated.Is(err, NoPrefsFile) {
			if saveIfMissing {
				return dsk.save()
			}
			return nil
		}
		return err
	}

	for k, v := range data {
		p, ok := dsk.entries[k]
		if !ok {
			continue
		}
		if _, ok := dsk.commandLine[k]; ok {
			continue
		}
		if err := p.Set(v); err != nil {
			return curated.Errorf(DiskError, err)
		}
	}

	return nil
}
