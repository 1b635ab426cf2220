package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/clrmeta"
	"github.com/wippyai/clrmeta/metadata/signature"
)

func main() {
	var (
		hexInput    = flag.String("hex", "", "Signature blob as hex bytes (\"15 12 05 00\")")
		method      = flag.Bool("method", false, "Decode a method signature instead of a type signature")
		verbose     = flag.Bool("v", false, "Log decoder diagnostics to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		version     = flag.Bool("version", false, "Print the version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Println("sigdump", clrmeta.Version)
		return
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		signature.SetLogger(logger.Named("signature"))
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*hexInput, *method); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	data, err := readInput(*hexInput, flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Usage: sigdump -hex \"15 12 05 01 08\" [-method] [-v]")
		fmt.Fprintln(os.Stderr, "       sigdump [-method] <blob file | ->")
		fmt.Fprintln(os.Stderr, "       sigdump -i  (interactive mode)")
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		os.Exit(1)
	}

	p := plainPalette()
	if term.IsTerminal(int(os.Stdout.Fd())) {
		p = colorPalette()
	}
	if err := dump(os.Stdout, data, *method, p); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func readInput(hexInput, path string) ([]byte, error) {
	switch {
	case hexInput != "":
		return parseHex(hexInput)
	case path == "-":
		return io.ReadAll(os.Stdin)
	case path != "":
		return os.ReadFile(path)
	default:
		return nil, fmt.Errorf("no input")
	}
}
