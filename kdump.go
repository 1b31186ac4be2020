// This file is part of kdump.
//
// kdump is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// kdump is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with kdump.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/kdump/ansi"
	"github.com/jetsetilly/kdump/disassembly"
	"github.com/jetsetilly/kdump/dump"
	"github.com/jetsetilly/kdump/export"
	"github.com/jetsetilly/kdump/fileloader"
	"github.com/jetsetilly/kdump/ko"
	"github.com/jetsetilly/kdump/ksm"
	"github.com/jetsetilly/kdump/logger"
	"github.com/jetsetilly/kdump/modalflag"
	"github.com/jetsetilly/kdump/paths"
	"github.com/jetsetilly/kdump/prefs"
	"github.com/jetsetilly/kdump/version"
	"github.com/jetsetilly/kdump/watch"
)

// exit codes
const (
	exitOK         = 0
	exitFlagError  = 10
	exitProcessing = 20
)

func main() {
	// ctrl-c ends a watch
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(launch(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// launch parses the command line and runs the selected mode. returns the exit
// code for the process.
func launch(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer) int {
	md := &modalflag.Modes{Output: stdout}
	md.NewArgs(args)
	md.AddModes("DUMP", "WATCH", "EXPORT", "PREFS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK
	case modalflag.ParseError:
		fmt.Fprintf(stderr, "* error: %v\n", err)
		return exitFlagError
	}

	pr := prefs.NewPrefs()

	switch md.Mode() {
	case "DUMP":
		err = dumpMode(md, pr, stdout, stderr)
	case "WATCH":
		err = watchMode(ctx, md, pr, stdout, stderr)
	case "EXPORT":
		err = exportMode(md, stdout)
	case "PREFS":
		err = prefsMode(md, pr, stdout)
	case "VERSION":
		v, r, _ := version.Version()
		fmt.Fprintf(stdout, "%s %s (%s)\n", version.ApplicationName, v, r)
	}

	if err != nil {
		if fe, ok := err.(flagError); ok {
			fmt.Fprintf(stderr, "* error: %v\n", fe.err)
			return exitFlagError
		}
		fmt.Fprintf(stderr, "* error in %s mode: %v\n", md, err)
		return exitProcessing
	}

	return exitOK
}

// flagError distinguishes errors in the command line from errors processing
// the file
type flagError struct {
	err error
}

func (fe flagError) Error() string {
	return fe.err.Error()
}

// the flags of the DUMP and WATCH modes
type dumpFlags struct {
	info        *bool
	arguments   *bool
	disassemble *bool
	function    *string
	fileHeader  *bool
	sectHeaders *bool
	allHeaders  *bool
	lineNumbers *bool
	full        *bool
	symbols     *bool
	relocations *bool
	data        *bool
	stabs       *bool
	debug       *bool
	noRaw       *bool
	noLabels    *bool
	hex         *bool
	substring   *bool
	colour      *bool

	prefs   *string
	log     *bool
	verbose *int
	memviz  *string
}

func addDumpFlags(md *modalflag.Modes) *dumpFlags {
	return &dumpFlags{
		arguments:   md.AddBool("a", false, "show the argument section (KSM)"),
		disassemble: md.AddBool("d", false, "disassemble every code section"),
		function:    md.AddString("D", "", "disassemble the section with the name"),
		fileHeader:  md.AddBool("f", false, "show the file header (KO)"),
		sectHeaders: md.AddBool("h", false, "show the section headers (KO)"),
		allHeaders:  md.AddBool("x", false, "show all headers"),
		info:        md.AddBool("i", false, "show file info"),
		lineNumbers: md.AddBool("l", false, "show line numbers and addresses (KSM)"),
		full:        md.AddBool("s", false, "show the full contents of the file"),
		symbols:     md.AddBool("t", false, "show the symbol tables (KO)"),
		relocations: md.AddBool("r", false, "show the relocation sections (KO)"),
		data:        md.AddBool("data", false, "show the data sections (KO)"),
		stabs:       md.AddBool("stabs", false, "show the string tables (KO)"),
		debug:       md.AddBool("debug", false, "show the debug section"),
		noRaw:       md.AddBool("noraw", false, "do not show raw instruction bytes"),
		noLabels:    md.AddBool("nolabels", false, "do not show instruction labels"),
		hex:         md.AddBool("hex", false, "show integers as hexadecimal"),
		substring:   md.AddBool("substring", false, "-D matches part of a section name"),
		colour:      md.AddBool("colour", false, "use colour even when output is not a terminal"),
		prefs:       md.AddString("prefs", "", "override preferences. key::value pairs separated by semicolons"),
		log:         md.AddBool("log", false, "echo log to stderr"),
		verbose:     md.AddInt("verbose", 0, "mirror log to the levelled backend with the verbosity"),
		memviz:      md.AddString("memviz", "", "write a graphviz graph of the parsed file"),
	}
}

// options combines the preferences with the flags. flags that were set on the
// command line take priority over the preferences
func (fl *dumpFlags) options(md *modalflag.Modes, pr *prefs.Prefs, stdout io.Writer) (dump.Options, error) {
	if *fl.prefs != "" {
		prefs.PushCommandLineStack(*fl.prefs)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				logger.Logf(logger.Allow, "kdump", "unused preferences: %s", unused)
			}
		}()
	}

	pth, err := prefs.DefaultPath()
	if err != nil {
		return dump.Options{}, err
	}
	if err := pr.Load(pth); err != nil {
		return dump.Options{}, flagError{err: err}
	}

	opts := dump.Options{
		Info:           *fl.info,
		Arguments:      *fl.arguments,
		Disassemble:    *fl.disassemble,
		Function:       *fl.function,
		FileHeader:     *fl.fileHeader || *fl.allHeaders,
		SectionHeaders: *fl.sectHeaders || *fl.allHeaders,
		StringTables:   *fl.stabs,
		Data:           *fl.data,
		Symbols:        *fl.symbols,
		Relocations:    *fl.relocations,
		Debug:          *fl.debug,
		Full:           *fl.full,
		LineNumbers:    pr.LineNumbers.Bool(),
		NoRaw:          !pr.Raw.Bool(),
		NoLabels:       !pr.Labels.Bool(),
		Hex:            pr.Hex.Bool(),
	}

	if pr.Lookup.String() == prefs.LookupSubstring {
		opts.Policy = disassembly.SubstringMatch
	}

	switch pr.Colour.String() {
	case prefs.ColourAlways:
		opts.Colour = true
	case prefs.ColourAuto:
		if f, ok := stdout.(*os.File); ok {
			opts.Colour = ansi.IsTerminal(f)
		}
	}

	md.Visit(func(flag string) {
		switch flag {
		case "l":
			opts.LineNumbers = *fl.lineNumbers
		case "noraw":
			opts.NoRaw = *fl.noRaw
		case "nolabels":
			opts.NoLabels = *fl.noLabels
		case "hex":
			opts.Hex = *fl.hex
		case "substring":
			if *fl.substring {
				opts.Policy = disassembly.SubstringMatch
			} else {
				opts.Policy = disassembly.ExactMatch
			}
		case "colour":
			opts.Colour = *fl.colour
		}
	})

	// with nothing selected show the file info
	if !(opts.Info || opts.Arguments || opts.Disassemble || opts.Function != "" ||
		opts.FileHeader || opts.SectionHeaders || opts.StringTables || opts.Data ||
		opts.Symbols || opts.Relocations || opts.Debug || opts.Full) {
		opts.Info = true
	}

	return opts, nil
}

func (fl *dumpFlags) setLogging(stderr io.Writer) {
	if *fl.log {
		logger.SetEcho(stderr)
	} else {
		logger.SetEcho(nil)
	}
	logger.Configure(*fl.verbose)
}

func filename(md *modalflag.Modes) (string, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return "", flagError{err: fmt.Errorf("a KSM or KO file is required for %s mode", md)}
	case 1:
		return md.GetArg(0), nil
	}
	return "", flagError{err: fmt.Errorf("too many arguments for %s mode", md)}
}

func dumpMode(md *modalflag.Modes, pr *prefs.Prefs, stdout io.Writer, stderr io.Writer) error {
	md.NewMode()
	md.AdditionalHelp(fmt.Sprintf("Recognised file extensions: %s", strings.Join(fileloader.FileExtensions[:], ", ")))
	fl := addDumpFlags(md)

	p, err := md.Parse()
	if err != nil {
		return flagError{err: err}
	}
	if p != modalflag.ParseContinue {
		return nil
	}

	fn, err := filename(md)
	if err != nil {
		return err
	}

	fl.setLogging(stderr)

	opts, err := fl.options(md, pr, stdout)
	if err != nil {
		return err
	}

	return process(stdout, fn, opts, *fl.memviz)
}

func watchMode(ctx context.Context, md *modalflag.Modes, pr *prefs.Prefs, stdout io.Writer, stderr io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("The file is dumped every time it changes. Press ctrl-c to end.")
	fl := addDumpFlags(md)

	p, err := md.Parse()
	if err != nil {
		return flagError{err: err}
	}
	if p != modalflag.ParseContinue {
		return nil
	}

	fn, err := filename(md)
	if err != nil {
		return err
	}

	fl.setLogging(stderr)

	opts, err := fl.options(md, pr, stdout)
	if err != nil {
		return err
	}

	w := watch.NewWatcher(fn)
	w.Report = func(err error) {
		fmt.Fprintf(stderr, "* error: %v\n", err)
	}

	return w.Run(ctx, func() error {
		if opts.Colour {
			fmt.Fprint(stdout, ansi.ClearScreen)
		}
		return process(stdout, fn, opts, "")
	})
}

// process loads, parses and dumps the file
func process(w io.Writer, fn string, opts dump.Options, memvizFile string) error {
	ld := fileloader.NewLoader(fn)
	if err := ld.Load(); err != nil {
		return err
	}

	var doc any
	var err error

	switch ld.Type {
	case fileloader.KSM:
		var f *ksm.File
		f, err = ksm.Parse(ld.Data)
		if err == nil {
			doc = f
			err = dump.KSM(w, f, opts)
		}
	case fileloader.KO:
		var f *ko.File
		f, err = ko.Parse(ld.Data)
		if err == nil {
			doc = f
			err = dump.KO(w, f, opts)
		}
	}

	if err != nil {
		return err
	}

	if memvizFile != "" && doc != nil {
		return writeMemviz(memvizFile, doc)
	}

	return nil
}

func writeMemviz(fn string, doc any) error {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()
	memviz.Map(f, doc)
	return nil
}

func exportMode(md *modalflag.Modes, stdout io.Writer) error {
	md.NewMode()
	output := md.AddString("o", "", "output file. - for standard output. default is a unique file in the kdump directory")

	p, err := md.Parse()
	if err != nil {
		return flagError{err: err}
	}
	if p != modalflag.ParseContinue {
		return nil
	}

	fn, err := filename(md)
	if err != nil {
		return err
	}

	ld := fileloader.NewLoader(fn)
	if err := ld.Load(); err != nil {
		return err
	}

	var doc *export.Document
	switch ld.Type {
	case fileloader.KSM:
		f, err := ksm.Parse(ld.Data)
		if err != nil {
			return err
		}
		doc, err = export.FromKSM(f)
		if err != nil {
			return err
		}
	case fileloader.KO:
		f, err := ko.Parse(ld.Data)
		if err != nil {
			return err
		}
		doc, err = export.FromKO(f)
		if err != nil {
			return err
		}
	}

	if *output == "-" {
		return export.Write(stdout, doc)
	}

	out := *output
	if out == "" {
		out, err = paths.ResourcePath("export", paths.UniqueFilename("export", ld.ShortName(), "cbor"))
		if err != nil {
			return err
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.Write(f, doc); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "! exported to %s\n", out)

	return nil
}

// prefsMode lists the preferences. key::value arguments change the
// preferences and the result is saved
func prefsMode(md *modalflag.Modes, pr *prefs.Prefs, stdout io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("Arguments of the form key::value change a preference and save the result.")
	reset := md.AddBool("reset", false, "reset preferences to the defaults")

	p, err := md.Parse()
	if err != nil {
		return flagError{err: err}
	}
	if p != modalflag.ParseContinue {
		return nil
	}

	pth, err := prefs.DefaultPath()
	if err != nil {
		return err
	}
	if err := pr.Load(pth); err != nil {
		return err
	}

	save := *reset
	if *reset {
		if err := pr.Reset(); err != nil {
			return err
		}
	}

	for _, arg := range md.RemainingArgs() {
		key, value, ok := strings.Cut(arg, "::")
		if !ok {
			return flagError{err: fmt.Errorf("preference should be in the form key::value: %s", arg)}
		}
		if err := pr.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return flagError{err: err}
		}
		save = true
	}

	if save {
		if err := pr.Save(pth); err != nil {
			return err
		}
	}

	fmt.Fprint(stdout, pr)

	return nil
}
