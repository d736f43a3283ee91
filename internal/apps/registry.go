// Package apps routes application identifiers to the shell-side variant
// that hosts them. The registry is a closed table mapping id to descriptor
// and constructor; asking for an unknown id yields the unavailable fallback
// variant so launch surfaces degrade instead of erroring. New apps are added
// as table entries, never as branching logic elsewhere.
package apps

import (
	"sort"

	"github.com/glasspane/glasspane/internal/overlay"
)

// Instance is one constructed app variant bound to the overlay node that
// hosts it. Content rendering lives in the app backend; the shell side only
// tracks identity and mount.
type Instance interface {
	AppID() string
	Mount() overlay.Node
	Implemented() bool
}

// Constructor builds an app instance on its overlay mount.
type Constructor func(mount overlay.Node) Instance

// App describes one launchable application.
type App struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	// DefaultWidth and DefaultHeight are hints for the initial window
	// size in world pixels. The supervisor may override them.
	DefaultWidth  float64 `json:"default_width"`
	DefaultHeight float64 `json:"default_height"`

	// Singleton apps are raised instead of launched a second time.
	Singleton bool `json:"singleton"`

	// Implemented is false for the placeholder returned on unknown ids.
	Implemented bool `json:"implemented"`

	// New constructs the shell-side instance. Never nil: registered apps
	// carry their own constructor, Lookup fills the unavailable fallback.
	New Constructor `json:"-"`
}

type shellApp struct {
	id    string
	mount overlay.Node
}

func (a *shellApp) AppID() string       { return a.id }
func (a *shellApp) Mount() overlay.Node { return a.mount }
func (a *shellApp) Implemented() bool   { return true }

func implemented(id string) Constructor {
	return func(mount overlay.Node) Instance {
		return &shellApp{id: id, mount: mount}
	}
}

// unavailableApp is the fallback variant for ids without a table entry. It
// mounts like any other app so the shell can show a stand-in surface.
type unavailableApp struct {
	id    string
	mount overlay.Node
}

func (a *unavailableApp) AppID() string       { return a.id }
func (a *unavailableApp) Mount() overlay.Node { return a.mount }
func (a *unavailableApp) Implemented() bool   { return false }

func unavailable(id string) Constructor {
	return func(mount overlay.Node) Instance {
		return &unavailableApp{id: id, mount: mount}
	}
}

var registry = map[string]App{
	"terminal": {
		ID: "terminal", Title: "Terminal",
		DefaultWidth: 720, DefaultHeight: 480,
		Implemented: true, New: implemented("terminal"),
	},
	"calculator": {
		ID: "calculator", Title: "Calculator",
		DefaultWidth: 320, DefaultHeight: 440,
		Singleton: true, Implemented: true, New: implemented("calculator"),
	},
	"clock": {
		ID: "clock", Title: "Clock",
		DefaultWidth: 360, DefaultHeight: 360,
		Singleton: true, Implemented: true, New: implemented("clock"),
	},
	"files": {
		ID: "files", Title: "Files",
		DefaultWidth: 800, DefaultHeight: 560,
		Implemented: true, New: implemented("files"),
	},
	"settings": {
		ID: "settings", Title: "Settings",
		DefaultWidth: 640, DefaultHeight: 520,
		Singleton: true, Implemented: true, New: implemented("settings"),
	},
}

// Lookup returns the descriptor for id. Unknown ids return a placeholder
// with Implemented set to false and the unavailable constructor.
func Lookup(id string) App {
	if app, ok := registry[id]; ok {
		return app
	}
	return App{
		ID: id, Title: "Unavailable",
		DefaultWidth: 480, DefaultHeight: 320,
		New: unavailable(id),
	}
}

// Instantiate routes id to its constructor and binds the instance to mount.
func Instantiate(id string, mount overlay.Node) Instance {
	return Lookup(id).New(mount)
}

// Known reports whether id names a registered application.
func Known(id string) bool {
	_, ok := registry[id]
	return ok
}

// IDs returns all registered application ids in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns descriptors for every registered application, sorted by id.
func All() []App {
	all := make([]App, 0, len(registry))
	for _, id := range IDs() {
		all = append(all, registry[id])
	}
	return all
}
