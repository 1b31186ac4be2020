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

// Package modalflag parses command lines made up of modes and flags. A mode
// is a keyword that selects a set of flags. For example:
//
//	kdump WATCH -d prog.ksm
//
// A program adds the modes available at the top level with AddModes() and
// calls Parse(). If the first argument names a mode that mode is selected,
// otherwise the first mode in the list is selected. The program then calls
// NewMode(), adds the flags of the selected mode and calls Parse() again.
//
// Mode names are not case sensitive.
package modalflag

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// ParseResult is returned from the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// continue with command line processing
	ParseContinue ParseResult = iota

	// help was requested and has been printed to the Output writer
	ParseHelp

	// the command line is invalid. the error is returned alongside the result
	ParseError
)

// Modes parses layers of a command line.
type Modes struct {
	// help messages are written to Output. if Output is nil help is not
	// printed but Parse() still returns ParseHelp
	Output io.Writer

	flags *flag.FlagSet
	modes []string
	help  string

	args []string
	idx  int

	// the modes selected so far
	path []string
}

// NewArgs resets the Modes with the arguments to be parsed. The arguments
// should not include the program name.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.idx = 0
	md.path = md.path[:0]
	md.NewMode()
}

// NewMode starts a new layer. Flags and modes added after this call apply to
// the next call to Parse().
func (md *Modes) NewMode() {
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.flags.SetOutput(io.Discard)
	md.modes = nil
	md.help = ""
}

// AddModes to the current layer. The first mode is the default.
func (md *Modes) AddModes(modes ...string) {
	for _, m := range modes {
		md.modes = append(md.modes, strings.ToUpper(m))
	}
}

// AdditionalHelp is printed after the flag and mode information when help is
// requested.
func (md *Modes) AdditionalHelp(help string) {
	md.help = help
}

// AddBool flag for next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddString flag for next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// AddInt flag for next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// Parse the current layer.
//
// When the layer has modes, flags that are not recognised are not an error.
// They are left for the selected mode to parse.
func (md *Modes) Parse() (ParseResult, error) {
	err := md.flags.Parse(md.args[md.idx:])

	// a layer with modes only shows help for an explicit -help. a short flag
	// like -h may belong to the mode that is about to be selected
	if errors.Is(err, flag.ErrHelp) && (len(md.modes) == 0 || isHelp(md.args[md.idx:])) {
		md.printHelp()
		return ParseHelp, nil
	}

	if len(md.modes) == 0 {
		if err != nil {
			return ParseError, err
		}
		return ParseContinue, nil
	}

	mode := md.modes[0]
	if err == nil && md.flags.NArg() > 0 {
		arg := strings.ToUpper(md.flags.Arg(0))
		for _, m := range md.modes {
			if m == arg {
				mode = m
				md.idx = len(md.args) - md.flags.NArg() + 1
				break
			}
		}
	}
	md.path = append(md.path, mode)

	return ParseContinue, nil
}

func isHelp(args []string) bool {
	if len(args) == 0 {
		return false
	}
	return args[0] == "-help" || args[0] == "--help"
}

func (md *Modes) printHelp() {
	if md.Output == nil {
		return
	}

	var n int
	md.flags.VisitAll(func(_ *flag.Flag) {
		n++
	})

	if n == 0 && len(md.modes) == 0 {
		fmt.Fprint(md.Output, "No help available")
		if p := md.Path(); p != "" {
			fmt.Fprintf(md.Output, " for %s", p)
		}
		fmt.Fprintln(md.Output)
		return
	}

	if p := md.Path(); p != "" {
		fmt.Fprintf(md.Output, "Usage for %s mode:\n", p)
	} else {
		fmt.Fprintln(md.Output, "Usage:")
	}

	if n > 0 {
		md.flags.SetOutput(md.Output)
		md.flags.PrintDefaults()
		md.flags.SetOutput(io.Discard)
	}

	if len(md.modes) > 0 {
		if n > 0 {
			fmt.Fprintln(md.Output)
		}
		fmt.Fprintf(md.Output, "  available modes: %s\n", strings.Join(md.modes, ", "))
		fmt.Fprintf(md.Output, "    default: %s\n", md.modes[0])
	}

	if md.help != "" {
		fmt.Fprintf(md.Output, "\n%s\n", md.help)
	}
}

// Mode returns the most recently selected mode.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns every mode selected so far, separated by a slash.
func (md *Modes) Path() string {
	return strings.Join(md.path, "/")
}

// RemainingArgs returns the arguments that are not flags or a mode.
func (md *Modes) RemainingArgs() []string {
	return md.flags.Args()
}

// GetArg returns the numbered argument that isn't a flag or a mode.
func (md *Modes) GetArg(i int) string {
	return md.flags.Arg(i)
}

// Visit calls fn with the name of every flag that was set on the command
// line, in lexicographical order.
func (md *Modes) Visit(fn func(flag string)) {
	md.flags.Visit(func(f *flag.Flag) {
		fn(f.Name)
	})
}

func (md *Modes) String() string {
	return md.Path()
}
