/*
 Copyright (C) 2024 Douglas Wayne Potter

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

// jsolve reads an MPS file, solves it with the revised simplex method
// and prints the optimal solution to standard out.
package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"

	"github.com/jsolve-go/jsolve"
	"github.com/jsolve-go/jsolve/internal/preprocess"
	"github.com/jsolve-go/jsolve/internal/simplex"
	"github.com/jsolve-go/jsolve/internal/util"
)

const usage = `Usage: %s -m instance.mps

%s reads a linear program from an MPS file, solves it with the revised
simplex method and prints the optimal solution to standard out.

Arguments:
`

func main() {
	fs := util.NewFlagSet(usage)

	var mpsPath string
	fs.StringVar(&mpsPath, "mps", "", "path to an MPS file (required)")
	fs.StringVar(&mpsPath, "m", "", "shorthand for -mps")

	var logLevel string
	fs.StringVar(&logLevel, "log", "info", "log level (off, info, debug)")
	fs.StringVar(&logLevel, "l", "info", "shorthand for -log")

	fs.Parse()

	level, err := parseLogLevel(logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(-1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: level != offLevel,
		Level:     level,
	})))

	if err := run(mpsPath); err != nil {
		slog.Error("jsolve failed", "error", err)
		os.Exit(-1)
	}
}

// offLevel is reported to slog.HandlerOptions.Level as a value above
// Error so every record is filtered out, approximating "off" on top of
// log/slog's four built-in levels.
const offLevel = slog.Level(math.MaxInt)

func parseLogLevel(level string) (slog.Level, error) {
	switch level {
	case "off":
		return offLevel, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	default:
		return 0, fmt.Errorf("unknown log level %q: want off, info or debug", level)
	}
}

func run(mpsPath string) error {
	if mpsPath == "" {
		return fmt.Errorf("please supply an MPS file with -mps")
	}

	model, err := jsolve.ReadMPS(mpsPath)
	if err != nil {
		return fmt.Errorf("reading MPS file: %w", err)
	}

	if err := preprocess.Run(model); err != nil {
		return fmt.Errorf("preprocessing model: %w", err)
	}

	sol, outcome, err := simplex.Solve(model)
	if err != nil {
		return fmt.Errorf("solving model: %w", err)
	}
	if outcome != simplex.Optimal {
		return fmt.Errorf("solve did not reach an optimal solution: %s", outcome)
	}

	printSolution(sol)
	return nil
}

func printSolution(sol *jsolve.Solution) {
	fmt.Printf("Objective = %v\n", sol.Objective)

	names := make([]string, 0, len(sol.Variables))
	for name := range sol.Variables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("%s = %v\n", name, sol.Variables[name])
	}
}
