// Command calceval evaluates calculator expressions strictly left to right.
//
// Each argument (or, with no arguments, each non-empty stdin line) is one
// display-format expression such as "12 + 3 × 4". The result, or "Error",
// is printed one per line; the exit status is 1 if any expression failed.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"sparkcalc/sparkos/tasks/calc"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("calceval", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		precision = fs.Int("precision", calc.DefaultPrecision, "Decimal places kept in results.")
		verbose   = fs.Bool("v", false, "Print the failure reason to stderr.")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	status := 0
	eval := func(expr string) {
		out, err := calc.Evaluate(expr, *precision)
		if err != nil {
			status = 1
			out = calc.ErrorMarker
			if *verbose {
				_, _ = fmt.Fprintf(stderr, "%q: %v\n", expr, err)
			}
		}
		_, _ = fmt.Fprintln(stdout, out)
	}

	if fs.NArg() > 0 {
		for _, expr := range fs.Args() {
			eval(expr)
		}
		return status
	}

	sc := bufio.NewScanner(stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		eval(line)
	}
	if err := sc.Err(); err != nil {
		_, _ = fmt.Fprintf(stderr, "read: %v\n", err)
		return 2
	}
	return status
}
