package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/glasspane/glasspane/internal/config"
	"github.com/glasspane/glasspane/internal/ipc"
	"github.com/glasspane/glasspane/internal/tui"
	"gopkg.in/yaml.v3"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "session":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: glasspane session")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "session takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: glasspane session")
			os.Exit(2)
		}
		runSession()
	case "preview":
		os.Exit(runPreview(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "windows":
		os.Exit(runWindows(os.Args[2:]))
	case "focus":
		os.Exit(runFocus(os.Args[2:]))
	case "launch":
		os.Exit(runLaunch(os.Args[2:]))
	case "send":
		os.Exit(runSend(os.Args[2:]))
	case "workspace":
		os.Exit(runWorkspace(os.Args[2:]))
	case "background":
		os.Exit(runBackground(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: glasspane <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  session             Start the compositor session (foreground)")
	fmt.Fprintln(w, "  preview             Run the compositor on synthetic frames (no supervisor)")
	fmt.Fprintln(w, "  status              Show session status")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  windows             List windows in the current frame")
	fmt.Fprintln(w, "  focus               Focus a window by id")
	fmt.Fprintln(w, "  launch              Launch an application")
	fmt.Fprintln(w, "  send                Send text input to the focused window")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  workspace list      List workspaces")
	fmt.Fprintln(w, "  workspace switch    Switch to a workspace")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  background list     List available backgrounds")
	fmt.Fprintln(w, "  background set      Set the active background")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open interactive TUI")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'glasspane <command> --help' for command-specific options.")
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: glasspane status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show session status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("running:          %v\n", status.Running)
	fmt.Printf("uptime_seconds:   %d\n", status.UptimeSeconds)
	fmt.Printf("frame_seq:        %d\n", status.FrameSeq)
	fmt.Printf("window_count:     %d\n", status.WindowCount)
	fmt.Printf("active_workspace: %d\n", status.ActiveWorkspace)
	fmt.Printf("zoom:             %.2f\n", status.Zoom)
	fmt.Printf("background:       %s\n", status.Background)
	return 0
}

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  glasspane config validate [--file PATH]")
	fmt.Fprintln(w, "  glasspane config print [--file PATH]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'glasspane config <command> --help' for command-specific options.")
}

func runConfig(args []string) int {
	if len(args) == 0 {
		printConfigUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printConfigUsage(os.Stdout)
		return 0
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: glasspane config validate [--file PATH]")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Load the configuration and report validation errors.")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
		file := fs.String("file", "", "Config file path (default: user config)")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "config validate takes no arguments")
			fs.Usage()
			return 2
		}

		if _, err := loadConfigFrom(*file); err != nil {
			fmt.Fprintf(os.Stderr, "Configuration invalid: %v\n", err)
			return 1
		}
		fmt.Println("Configuration is valid")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: glasspane config print [--file PATH]")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Print the effective configuration (defaults applied) as YAML.")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
		file := fs.String("file", "", "Config file path (default: user config)")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "config print takes no arguments")
			fs.Usage()
			return 2
		}

		cfg, err := loadConfigFrom(*file)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		os.Stdout.Write(data)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n\n", args[0])
		printConfigUsage(os.Stderr)
		return 2
	}
}

func loadConfigFrom(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: glasspane tui [--file PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open the interactive terminal UI. A running session is optional;")
		fmt.Fprintln(os.Stderr, "without one the TUI still edits configuration.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	file := fs.String("file", "", "Config file path (default: user config)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "tui takes no arguments")
		fs.Usage()
		return 2
	}

	if err := tui.Run(*file); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
