package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/glasspane/glasspane/internal/ipc"
)

func printWorkspaceUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  glasspane workspace list")
	fmt.Fprintln(w, "  glasspane workspace switch <index>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'glasspane workspace <command> --help' for command-specific options.")
}

func runWorkspace(args []string) int {
	if len(args) == 0 {
		printWorkspaceUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printWorkspaceUsage(os.Stdout)
		return 0
	}

	client := ipc.NewClient()

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: glasspane workspace list")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "List workspaces in the current frame; '*' marks the active one.")
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "workspace list takes no arguments")
			fs.Usage()
			return 2
		}

		data, err := client.ListWorkspaces()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		for i, ws := range data.Workspaces {
			marker := " "
			if i == data.Active {
				marker = "*"
			}
			fmt.Printf("%s %d  %s\n", marker, i, ws.Label)
		}
		return 0

	case "switch":
		fs := flag.NewFlagSet("switch", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: glasspane workspace switch <index>")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Request a switch to the given workspace. The switch is applied by")
			fmt.Fprintln(os.Stderr, "the supervisor and shows up in a later frame.")
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "workspace switch takes exactly one index")
			fs.Usage()
			return 2
		}

		index, err := strconv.Atoi(fs.Arg(0))
		if err != nil || index < 0 {
			fmt.Fprintf(os.Stderr, "Invalid workspace index: %s\n", fs.Arg(0))
			return 2
		}
		if err := client.SwitchWorkspace(index); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown workspace command: %s\n\n", args[0])
		printWorkspaceUsage(os.Stderr)
		return 2
	}
}
