package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/glasspane/glasspane/internal/ipc"
)

func runWindows(args []string) int {
	fs := flag.NewFlagSet("windows", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: glasspane windows [--json] [--workspace N]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List the windows in the session's current frame.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	jsonOut := fs.Bool("json", false, "Output full window details as JSON")
	workspace := fs.Int("workspace", -1, "Only show windows on this workspace")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "windows takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	data, err := client.ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	windows := data.Windows
	if *workspace >= 0 {
		filtered := windows[:0]
		for _, w := range windows {
			if w.Workspace == *workspace {
				filtered = append(filtered, w)
			}
		}
		windows = filtered
	}

	if *jsonOut {
		out, err := json.MarshalIndent(windows, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(string(out))
		return 0
	}

	if len(windows) == 0 {
		fmt.Println("No windows")
		return 0
	}
	for _, w := range windows {
		fmt.Printf("%-8d %-12s %-10s ws:%d z:%d %.0fx%.0f at (%.0f,%.0f)\n",
			w.ID, w.AppID, w.State, w.Workspace, w.ZOrder,
			w.Frame.Width, w.Frame.Height, w.Frame.X, w.Frame.Y)
	}
	return 0
}

func runFocus(args []string) int {
	fs := flag.NewFlagSet("focus", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: glasspane focus <window-id>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Ask the supervisor to focus a window. The change shows up in a")
		fmt.Fprintln(os.Stderr, "later frame; 'glasspane windows' reflects it once applied.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "focus takes exactly one window id")
		fs.Usage()
		return 2
	}

	id, err := strconv.ParseUint(fs.Arg(0), 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid window id: %s\n", fs.Arg(0))
		return 2
	}

	client := ipc.NewClient()
	if err := client.FocusWindow(id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runLaunch(args []string) int {
	fs := flag.NewFlagSet("launch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: glasspane launch [--focus] <app-id>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Launch an application by id. Singleton apps focus their existing")
		fmt.Fprintln(os.Stderr, "window instead of starting a second instance.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	focus := fs.Bool("focus", false, "Focus an existing window instead of launching a new one")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "launch takes exactly one app id")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := client.LaunchApp(fs.Arg(0), *focus); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runSend(args []string) int {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: glasspane send <text>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Send text input to the focused window via the supervisor.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "send takes exactly one text argument")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := client.SendInput(fs.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
