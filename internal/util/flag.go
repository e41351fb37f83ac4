/*
 Copyright (C) 2025 Douglas Wayne Potter

 This program is free software: you can redistribute it and/or modify
 it under the terms of the GNU Affero General Public License as
 published by the Free Software Foundation, either version 3 of the
 License, or (at your option) any later version.

 This program is distributed in the hope that it will be useful,
 but WITHOUT ANY WARRANTY; without even the implied warranty of
 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 GNU Affero General Public License for more details.

 You should have received a copy of the GNU Affero General Public License
 along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package util holds small helpers shared by the command-line entry
// points.
package util

import (
	"flag"
	"fmt"
	"os"
)

// FlagSet embeds flag.FlagSet so commands get a Parse receiver that
// needs no arguments and a usage function driven by a template.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet creates a *FlagSet whose usage output is the supplied
// template followed by the flag defaults.
//
// The template should contain exactly two "%s" verbs, both substituted
// with the command name. Example:
// `Usage: %s -mps model.mps
//
// %s reads a linear program from an MPS file, solves it and prints the
// solution to standard out.
//
// Arguments:
// `
func NewFlagSet(usage string) *FlagSet {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			flag.CommandLine.Output(),
			usage,
			os.Args[0],
			os.Args[0])
		fs.PrintDefaults()
	}

	return &FlagSet{fs}
}

// Parse parses the command-line flags from os.Args[1:]. Must be called
// after all flags are defined and before flags are accessed by the
// program.
func (fs *FlagSet) Parse() {
	fs.FlagSet.Parse(os.Args[1:])
}
