package apps

import (
	"testing"

	"github.com/glasspane/glasspane/internal/geom"
	"github.com/glasspane/glasspane/internal/overlay"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		id              string
		wantImplemented bool
		wantSingleton   bool
	}{
		{"terminal", true, false},
		{"calculator", true, true},
		{"settings", true, true},
		{"files", true, false},
		{"no-such-app", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			app := Lookup(tt.id)
			if app.ID != tt.id {
				t.Errorf("ID = %q, want %q", app.ID, tt.id)
			}
			if app.Implemented != tt.wantImplemented {
				t.Errorf("Implemented = %v, want %v", app.Implemented, tt.wantImplemented)
			}
			if app.Singleton != tt.wantSingleton {
				t.Errorf("Singleton = %v, want %v", app.Singleton, tt.wantSingleton)
			}
			if app.DefaultWidth <= 0 || app.DefaultHeight <= 0 {
				t.Errorf("default size %gx%g is not positive", app.DefaultWidth, app.DefaultHeight)
			}
		})
	}
}

func TestIDsSortedAndKnown(t *testing.T) {
	ids := IDs()
	if len(ids) == 0 {
		t.Fatal("registry is empty")
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("ids not sorted: %q before %q", ids[i-1], ids[i])
		}
	}
	for _, id := range ids {
		if !Known(id) {
			t.Errorf("Known(%q) = false for registered id", id)
		}
	}
	if Known("no-such-app") {
		t.Error("Known reported an unregistered id")
	}
}

func TestAllMatchesIDs(t *testing.T) {
	all := All()
	ids := IDs()
	if len(all) != len(ids) {
		t.Fatalf("All returned %d apps, want %d", len(all), len(ids))
	}
	for i, app := range all {
		if app.ID != ids[i] {
			t.Errorf("All()[%d].ID = %q, want %q", i, app.ID, ids[i])
		}
	}
}

type stubMount struct {
	released bool
}

func (m *stubMount) SetFrame(_ geom.Rect, _ int) {}
func (m *stubMount) Attached() bool              { return !m.released }
func (m *stubMount) Release()                    { m.released = true }

func TestInstantiate_RoutesThroughConstructorTable(t *testing.T) {
	for _, id := range IDs() {
		mount := &stubMount{}
		inst := Instantiate(id, mount)
		if inst.AppID() != id {
			t.Errorf("AppID = %q, want %q", inst.AppID(), id)
		}
		if inst.Mount() != overlay.Node(mount) {
			t.Errorf("%s instance did not capture its mount", id)
		}
		if !inst.Implemented() {
			t.Errorf("%s instance reports unimplemented", id)
		}
	}
}

func TestInstantiate_UnknownIDYieldsUnavailableVariant(t *testing.T) {
	mount := &stubMount{}
	inst := Instantiate("no-such-app", mount)
	if inst.AppID() != "no-such-app" {
		t.Errorf("AppID = %q, want no-such-app", inst.AppID())
	}
	if inst.Implemented() {
		t.Error("unknown id produced an implemented instance")
	}
	if inst.Mount() != overlay.Node(mount) {
		t.Error("fallback instance did not capture its mount")
	}
}

func TestLookup_ConstructorNeverNil(t *testing.T) {
	for _, id := range append(IDs(), "no-such-app") {
		if Lookup(id).New == nil {
			t.Errorf("Lookup(%q).New is nil", id)
		}
	}
}
