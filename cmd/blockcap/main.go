package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is the common case, not an error.
	_ = godotenv.Load()
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "check":
		return checkCommand(args[2:])
	case "inspect":
		return inspectCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <check|inspect> [flags] <packages...>\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  check    run the capture check and print findings")
	fmt.Fprintln(os.Stderr, "  inspect  browse findings interactively")
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  -strict")
	fmt.Fprintln(os.Stderr, "    fail on syntax shapes the capture walker does not model")
	fmt.Fprintln(os.Stderr, "  -frames (check)")
	fmt.Fprintln(os.Stderr, "    print caret frames under each finding")
	fmt.Fprintln(os.Stderr, "  -json <path> (check)")
	fmt.Fprintln(os.Stderr, "    write a JSON report to the given path")
	fmt.Fprintln(os.Stderr, "The BLOCKCAP_STRICT environment variable (or a .env entry) sets the strict default.")
}

// strictDefault reads the environment-provided default for -strict.
func strictDefault() bool {
	switch strings.ToLower(os.Getenv("BLOCKCAP_STRICT")) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
