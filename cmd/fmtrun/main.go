package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/for90-runtime/config"
	"github.com/wippyai/for90-runtime/fmtio"
	"github.com/wippyai/for90-runtime/format"
	"github.com/wippyai/for90-runtime/unit"
)

func main() {
	var (
		formatSrc   = flag.String("format", "", "Format specification, e.g. '(I3,/)' (list-directed when empty)")
		itemsSrc    = flag.String("items", "", "Comma-separated output items: 1, 2.5, T, 'text', (1.0,2.0)")
		read        = flag.Bool("read", false, "Read stdin with the format instead of writing")
		types       = flag.String("types", "", "Item types for -read (i,f,c,l,a)")
		show        = flag.Bool("show", false, "Print the compiled program before running")
		configPath  = flag.String("config", "", "Path to a YAML config file")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: -i needs a terminal on stdout")
			os.Exit(1)
		}
		src := *formatSrc
		if src == "" {
			src = cfg.Format.Default
		}
		if err := runInteractive(src, *itemsSrc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *read && *types == "" {
		fmt.Fprintln(os.Stderr, "Usage: fmtrun [-format '(I3,/)'] -items '1,2,3'")
		fmt.Fprintln(os.Stderr, "       fmtrun [-format '(I3,/)'] -read -types i,f,a < input")
		fmt.Fprintln(os.Stderr, "       fmtrun -format '(I3,/)' -show")
		fmt.Fprintln(os.Stderr, "       fmtrun -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(cfg, *formatSrc, *itemsSrc, *types, *read, *show); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, formatSrc, itemsSrc, typesSrc string, read, show bool) error {
	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()
	format.SetLogger(logger.Named("format"))
	fmtio.SetLogger(logger.Named("fmtio"))
	unit.SetLogger(logger.Named("unit"))

	table := unit.Default()
	defer table.Close()
	if err := cfg.Connect(table); err != nil {
		return fmt.Errorf("connect units: %w", err)
	}

	var prog *format.Program
	if formatSrc != "" {
		prog, err = format.Compile(formatSrc)
	} else {
		prog, err = cfg.DefaultFormat()
	}
	if err != nil {
		return err
	}

	if show {
		if prog == nil {
			fmt.Println("Program: list-directed")
		} else {
			fmt.Print(describe(prog))
		}
	}

	if read {
		targets, err := parseTypes(typesSrc)
		if err != nil {
			return err
		}
		if err := fmtio.ReadUnit(table, unit.Stdin, prog, targets...); err != nil {
			return fmt.Errorf("read: %w", err)
		}
		logger.Debug("read complete", zap.Int("items", len(targets)))
		return fmtio.WriteUnit(table, unit.Stdout, nil, targets...)
	}

	items, err := parseItems(itemsSrc)
	if err != nil {
		return err
	}
	if show && len(items) == 0 {
		return nil
	}
	return fmtio.WriteUnit(table, unit.Stdout, prog, items...)
}

// describe renders a program's tokens, printf form and reversion window.
func describe(p *format.Program) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Source:     %s\n", p.Source)
	fmt.Fprintf(&b, "Tokens:     %s\n", p)
	fmt.Fprintf(&b, "Conversion: %q\n", p.Conversion())
	fmt.Fprintf(&b, "Reversion:  [%d,%d)", p.ReversionStart, p.ReversionEnd)
	if p.ReversionEnd > p.ReversionStart {
		parts := make([]string, 0, p.ReversionEnd-p.ReversionStart)
		for _, t := range p.Tokens[p.ReversionStart:p.ReversionEnd] {
			parts = append(parts, t.String())
		}
		fmt.Fprintf(&b, " %s", strings.Join(parts, ","))
	}
	b.WriteByte('\n')
	return b.String()
}
