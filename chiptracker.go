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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/bradleyjkemp/memviz"
	"github.com/davecgh/go-spew/spew"
	"golang.org/x/term"

	"github.com/jetsetilly/chiptracker/digest"
	"github.com/jetsetilly/chiptracker/hardware/apu"
	"github.com/jetsetilly/chiptracker/logger"
	"github.com/jetsetilly/chiptracker/modalflag"
	"github.com/jetsetilly/chiptracker/notifications"
	"github.com/jetsetilly/chiptracker/paths"
	"github.com/jetsetilly/chiptracker/player"
	"github.com/jetsetilly/chiptracker/prefs"
	"github.com/jetsetilly/chiptracker/script"
	"github.com/jetsetilly/chiptracker/sfx"
	"github.com/jetsetilly/chiptracker/song"
	"github.com/jetsetilly/chiptracker/statsview"
	"github.com/jetsetilly/chiptracker/tracker"
	"github.com/jetsetilly/chiptracker/version"
)

// exit values returned by launch()
const (
	exitOK        = 0
	exitArguments = 10
	exitMode      = 20
)

func main() {
	// #ctrlc cancels any export that is in progress
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	exitVal := launch(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(exitVal)
}

// launch parses the arguments and runs the selected mode. the returned value
// is suitable for os.Exit()
func launch(ctx context.Context, args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("EXPORT", "SFX", "DUMP", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitArguments
	}

	switch md.Mode() {
	case "EXPORT":
		err = export(ctx, md)

	case "SFX":
		err = soundEffects(ctx, md)

	case "DUMP":
		err = dump(ctx, md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return exitMode
	}

	return exitOK
}

// the flags that are common to every mode that loads a script
type common struct {
	log       *bool
	statsview *bool
	prefs     *string
	output    *string
	song      *string
}

func addCommonFlags(md *modalflag.Modes) common {
	c := common{
		log:    md.AddBool("log", false, "echo log to stderr"),
		prefs:  md.AddString("prefs", "", "override preferences (eg. \"player.pal::true; player.loopCount::2\")"),
		output: md.AddStringP("output", "o", "", "output file. a unique filename is generated if none is given. - for stdout"),
		song:   md.AddString("song", "", "use a single song from the script"),
	}
	if statsview.Available() {
		c.statsview = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}
	return c
}

// apply the common flags. must be called after the mode has been parsed
func (c common) apply(md *modalflag.Modes) {
	if *c.log {
		if term.IsTerminal(int(os.Stderr.Fd())) {
			logger.SetEcho(logger.NewColorizer(os.Stderr))
		} else {
			logger.SetEcho(os.Stderr)
		}
	}

	if c.statsview != nil && *c.statsview {
		statsview.Launch(md.Output)
	}
}

// open the output file for the mode. the returned function closes the file
func (c common) create(md *modalflag.Modes, prepend string, name string, ext string) (io.Writer, func() error, error) {
	fn := *c.output
	switch fn {
	case "-":
		return md.Output, func() error { return nil }, nil
	case "":
		fn = paths.UniqueFilename(prepend, name, ext)
	}

	f, err := os.Create(fn)
	if err != nil {
		return nil, nil, err
	}

	logger.Logf(logger.Allow, "chiptracker", "writing to %s", fn)

	return f, f.Close, nil
}

// load the script named by the remaining arguments of the mode. notices are
// written to the output of the mode
func (c common) load(ctx context.Context, md *modalflag.Modes) (*song.Project, []*song.Song, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return nil, nil, fmt.Errorf("script required for %s mode", md)
	case 1:
	default:
		return nil, nil, fmt.Errorf("too many arguments for %s mode", md)
	}

	var notify notifications.Collector
	p, err := script.Load(ctx, md.GetArg(0), &notify)
	if err != nil {
		return nil, nil, err
	}

	for _, e := range notify.Entries() {
		fmt.Fprintf(md.Output, "* %s\n", e)
	}

	songs := p.Songs()
	if *c.song != "" {
		s := p.Song(*c.song)
		if s == nil {
			return nil, nil, fmt.Errorf("no song named %s", *c.song)
		}
		songs = []*song.Song{s}
	}

	return p, songs, nil
}

// load the player preferences, applying any overrides given on the command
// line. overrides are never saved to disk. the more functions load the
// preferences of other packages with the same overrides
func (c common) preferences(more ...func() error) (player.Options, error) {
	prefs.PushCommandLineStack(*c.prefs)
	defer func() {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(logger.Allow, "chiptracker", "unused preferences: %s", unused)
		}
	}()

	pr, err := player.NewPreferences()
	if err != nil {
		return player.Options{}, err
	}
	for _, f := range more {
		if err := f(); err != nil {
			return player.Options{}, err
		}
	}
	return pr.Options(), nil
}

func export(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	c := addCommonFlags(md)
	hash := md.AddBool("digest", false, "write a digest of each song instead of the register writes")
	notes := md.AddBool("notes", false, "name the registers and the notes played by period writes")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	c.apply(md)

	prj, songs, err := c.load(ctx, md)
	if err != nil {
		return err
	}

	opts, err := c.preferences()
	if err != nil {
		return err
	}

	writes, err := player.ExportSongs(ctx, songs, opts)
	if err != nil {
		return err
	}

	w, done, err := c.create(md, "export", prj.Name, "txt")
	if err != nil {
		return err
	}

	for i, s := range songs {
		if *hash {
			dig := digest.NewWrites(nil)
			for _, wr := range writes[i] {
				dig.RegisterWrite(wr)
			}
			fmt.Fprintf(w, "%s %s\n", dig.Hash(), s.Name)
			continue // for loop
		}
		if *notes {
			annotate(w, s.Name, writes[i], opts.PAL)
			continue // for loop
		}
		fmt.Fprintf(w, "; %s (%d writes)\n", s.Name, len(writes[i]))
		fmt.Fprintln(w, writes[i].String())
	}

	return done()
}

// annotate writes the register writes of a song with the register names. a
// write that completes the period of a channel is followed by the note that
// the period plays
func annotate(w io.Writer, name string, writes apu.Writes, pal bool) {
	tr := tracker.NewTracker(false, 0, nil)
	notes := make([]string, 0, len(writes))
	for _, wr := range writes {
		tr.RegisterWrite(wr)
		n, _ := tr.MusicalNote(wr.Register, pal)
		notes = append(notes, n)
	}

	fmt.Fprintf(w, "; %s (%d writes, %d frames)\n", name, tr.Len(), tr.LastFrame()+1)
	for i, e := range tr.Copy() {
		if i < len(notes) && notes[i] != "" {
			fmt.Fprintf(w, "%s ; %s\n", e, notes[i])
		} else {
			fmt.Fprintln(w, e)
		}
	}
}

func soundEffects(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	c := addCommonFlags(md)
	format := md.AddString("format", "", "assembler format: CA65, NESASM or ASM6. defaults to the sfx.format preference")
	machine := md.AddString("mode", "", "machine: NTSC, PAL or DUAL. defaults to the sfx.mode preference")

	md.AdditionalHelp("Each song in the script is exported as a sound effect. Only\nthe 2A03 square, triangle and noise channels are encoded.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	c.apply(md)

	var sp *sfx.Preferences
	opts, err := c.preferences(func() (err error) {
		sp, err = sfx.NewPreferences()
		return err
	})
	if err != nil {
		return err
	}

	f, mode := sp.Settings()
	if *format != "" {
		if f, err = sfx.ParseFormat(*format); err != nil {
			return err
		}
	}
	if *machine != "" {
		if mode, err = sfx.ParseMode(*machine); err != nil {
			return err
		}
	}

	prj, songs, err := c.load(ctx, md)
	if err != nil {
		return err
	}

	var notify notifications.Collector

	encode := func(s *song.Song, pal bool) ([]byte, error) {
		o := opts
		o.PAL = pal
		enc := sfx.NewEncoder(s.Name)
		if err := player.NewSession(s, enc, o).Run(ctx); err != nil {
			return nil, err
		}
		return enc.Finish(&notify), nil
	}

	var effects []sfx.Effect
	for _, s := range songs {
		e := sfx.Effect{Name: s.Name}
		if mode != sfx.ModePAL {
			if e.NTSC, err = encode(s, false); err != nil {
				return err
			}
		}
		if mode != sfx.ModeNTSC {
			if e.PAL, err = encode(s, true); err != nil {
				return err
			}
		}
		effects = append(effects, e)
	}

	for _, e := range notify.Entries() {
		fmt.Fprintf(md.Output, "* %s\n", e)
	}

	w, done, err := c.create(md, "sfx", prj.Name, "s")
	if err != nil {
		return err
	}

	if err := sfx.WriteAsm(w, f, mode, effects); err != nil {
		_ = done()
		return err
	}

	return done()
}

func dump(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	c := addCommonFlags(md)
	graph := md.AddBool("graph", false, "write a graphviz graph instead of a text dump")
	depth := md.AddInt("depth", 6, "maximum depth of the text dump")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	c.apply(md)

	prj, songs, err := c.load(ctx, md)
	if err != nil {
		return err
	}

	ext := "txt"
	if *graph {
		ext = "dot"
	}

	w, done, err := c.create(md, "dump", prj.Name, ext)
	if err != nil {
		return err
	}

	if *graph {
		memviz.Map(w, songs)
	} else {
		cfg := spew.ConfigState{
			Indent:                  "  ",
			MaxDepth:                *depth,
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		}
		for _, s := range songs {
			cfg.Fdump(w, s)
		}
	}

	return done()
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information from version control")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	v, r, _ := version.Version()
	fmt.Fprintf(md.Output, "%s %s\n", version.ApplicationName, v)
	if *revision {
		fmt.Fprintln(md.Output, r)
	}

	return nil
}
