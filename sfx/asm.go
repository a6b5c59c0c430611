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

package sfx

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/jetsetilly/chiptracker/curated"
)

// Format of the assembly source written by WriteAsm.
type Format int

// List of valid Format values.
const (
	FormatCA65 Format = iota
	FormatNESASM
	FormatASM6
)

func (f Format) String() string {
	switch f {
	case FormatCA65:
		return "CA65"
	case FormatNESASM:
		return "NESASM"
	case FormatASM6:
		return "ASM6"
	}
	return "unknown"
}

// Sentinal error returned by ParseFormat.
const UnknownFormat = "sfx: unknown assembly format (%s)"

// ParseFormat converts a format name to a Format value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToUpper(s) {
	case "CA65":
		return FormatCA65, nil
	case "NESASM":
		return FormatNESASM, nil
	case "ASM6":
		return FormatASM6, nil
	}
	return FormatCA65, curated.Errorf(UnknownFormat, s)
}

// directives for each format
func (f Format) directives() (db string, dw string, local string) {
	switch f {
	case FormatNESASM:
		return ".db", ".dw", "."
	case FormatASM6:
		return "db", "dw", "@"
	}
	return ".byte", ".word", "@"
}

// Mode selects the machine the effects are exported for.
type Mode int

// List of valid Mode values.
const (
	ModeNTSC Mode = iota
	ModePAL
	ModeDual
)

func (m Mode) String() string {
	switch m {
	case ModeNTSC:
		return "NTSC"
	case ModePAL:
		return "PAL"
	case ModeDual:
		return "Dual"
	}
	return "unknown"
}

// Sentinal error returned by ParseMode.
const UnknownMode = "sfx: unknown mode (%s)"

// ParseMode converts a mode name to a Mode value.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(s) {
	case "NTSC":
		return ModeNTSC, nil
	case "PAL":
		return ModePAL, nil
	case "DUAL":
		return ModeDual, nil
	}
	return ModeNTSC, curated.Errorf(UnknownMode, s)
}

// Effect is a single encoded sound effect. The NTSC and PAL fields hold the
// encoded streams for each machine. A field is nil if the effect was not
// exported for that machine.
type Effect struct {
	Name string
	NTSC []byte
	PAL  []byte
}

// AsmName converts an effect name to a label that is accepted by all the
// supported assemblers.
func AsmName(name string) string {
	var s strings.Builder
	for _, r := range strings.ToLower(name) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			s.WriteRune(r)
		} else {
			s.WriteRune('_')
		}
	}
	return s.String()
}

const bytesPerLine = 16

// WriteAsm writes the effects as assembly source in the specified format.
// Only the machines selected by the mode are written.
func WriteAsm(w io.Writer, format Format, mode Mode, effects []Effect) error {
	db, dw, ll := format.directives()

	var s strings.Builder

	s.WriteString(";this file for FamiTone2 libary generated by FamiStudio\n\n")
	s.WriteString("sounds:\n")

	var modes []string
	if mode != ModePAL {
		modes = append(modes, "ntsc")
	}
	if mode != ModeNTSC {
		modes = append(modes, "pal")
	}

	// the sound engine expects both pointers even if only one machine is
	// exported
	for _, m := range []string{"ntsc", "pal"} {
		label := m
		if len(modes) == 1 {
			label = modes[0]
		}
		fmt.Fprintf(&s, "\t%s %s%s\n", dw, ll, label)
	}
	s.WriteString("\n")

	for _, m := range modes {
		fmt.Fprintf(&s, "%s%s:\n", ll, m)
		for _, e := range effects {
			fmt.Fprintf(&s, "\t%s %ssfx_%s_%s\n", dw, ll, m, AsmName(e.Name))
		}
		s.WriteString("\n")
	}

	for _, m := range modes {
		for _, e := range effects {
			data := e.NTSC
			if m == "pal" {
				data = e.PAL
			}

			fmt.Fprintf(&s, "%ssfx_%s_%s:\n", ll, m, AsmName(e.Name))
			for i := 0; i < len(data); i += bytesPerLine {
				line := data[i:min(i+bytesPerLine, len(data))]
				vals := make([]string, len(line))
				for j, b := range line {
					vals[j] = fmt.Sprintf("$%02x", b)
				}
				fmt.Fprintf(&s, "\t%s %s\n", db, strings.Join(vals, ","))
			}
		}
	}

	_, err := io.WriteString(w, s.String())
	if err != nil {
		return curated.Errorf("sfx: %v", err)
	}
	return nil
}
