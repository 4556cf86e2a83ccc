package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/testlog-resolver/internal/fixture"
	"github.com/danielpatrickdp/testlog-resolver/internal/textio"
)

// #region main

func main() {
	inPath := flag.String("in", "", "path to a measurement log with pending markers")
	outPath := flag.String("out", "", "output fixture JSON path")
	desc := flag.String("desc", "", "fixture description (default: input file name)")
	strict := flag.Bool("strict", false, "strict numeric parsing and undecorated markers")
	flag.Parse()

	if *inPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --in path/to/log --out path/to/fixture.json [--desc text] [--strict]")
		os.Exit(2)
	}

	if err := run(*inPath, *outPath, *desc, *strict); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region capture

func run(inPath, outPath, desc string, strict bool) error {
	lines, err := textio.ReadLines(inPath)
	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}

	cfg := fixture.DefaultFixtureConfig()
	if strict {
		cfg.AllowDecoration = false
		cfg.UnitAwareNumbers = false
	}

	if desc == "" {
		desc = fmt.Sprintf("Captured from %s", inPath)
	}

	f := fixture.Capture(desc, lines, cfg)
	resolved := f.Expected.Passed + f.Expected.Failed
	if resolved == 0 && f.Expected.Unchanged == 0 {
		return fmt.Errorf("no pending markers found in %s", inPath)
	}

	fmt.Printf("Resolved %d markers (%d passed, %d failed, %d left unchanged)\n",
		resolved, f.Expected.Passed, f.Expected.Failed, f.Expected.Unchanged)

	if err := fixture.SaveFixture(f, outPath); err != nil {
		return err
	}
	fmt.Printf("Wrote fixture to %s (%d document lines)\n", outPath, len(f.Document))
	return nil
}

// #endregion capture
