package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/glasspane/glasspane/internal/ipc"
)

func printBackgroundUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  glasspane background list")
	fmt.Fprintln(w, "  glasspane background set <name>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'glasspane background <command> --help' for command-specific options.")
}

func runBackground(args []string) int {
	if len(args) == 0 {
		printBackgroundUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printBackgroundUsage(os.Stdout)
		return 0
	}

	client := ipc.NewClient()

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: glasspane background list")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "List available backgrounds; '*' marks the current one.")
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "background list takes no arguments")
			fs.Usage()
			return 2
		}

		data, err := client.ListBackgrounds()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		for _, name := range data.Backgrounds {
			marker := " "
			if name == data.Current {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, name)
		}
		return 0

	case "set":
		fs := flag.NewFlagSet("set", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: glasspane background set <name>")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Switch the session's background renderer.")
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "background set takes exactly one name")
			fs.Usage()
			return 2
		}

		if err := client.SetBackground(fs.Arg(0)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown background command: %s\n\n", args[0])
		printBackgroundUsage(os.Stderr)
		return 2
	}
}
