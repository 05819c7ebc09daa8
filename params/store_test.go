package params

import (
	"math"
	"testing"
)

func TestStoreDefaultsMatchDefs(t *testing.T) {
	store := NewStore()

	for _, def := range Defs {
		got, ok := store.Get(def.ID)
		if !ok {
			t.Fatalf("Get(%d) missing", def.ID)
		}
		if got != def.Default {
			t.Fatalf("%s default = %g, want %g", def.Name, got, def.Default)
		}
	}
}

func TestStoreSetClampsToRange(t *testing.T) {
	store := NewStore()

	store.Set(IDFeedback, 2.5)
	if got, _ := store.Get(IDFeedback); got != 0.7 {
		t.Fatalf("feedback clamped to %g, want 0.7", got)
	}

	store.Set(IDTensionBias, -3)
	if got, _ := store.Get(IDTensionBias); got != -0.5 {
		t.Fatalf("tension bias clamped to %g, want -0.5", got)
	}

	store.Set(IDPullShape, 2.4)
	if got, _ := store.Get(IDPullShape); got != 2 {
		t.Fatalf("stepped parameter stored %g, want 2", got)
	}

	store.Set(IDTension, math.NaN())
	if got, _ := store.Get(IDTension); got != 0.55 {
		t.Fatalf("NaN write stored %g, want default 0.55", got)
	}
}

func TestSnapshotDecodesDirectionBipolar(t *testing.T) {
	store := NewStore()

	store.Set(IDPullDirection, 0)
	if got := store.Snapshot().PullDirection; got != -1 {
		t.Fatalf("direction 0 decoded to %g, want -1", got)
	}

	store.Set(IDPullDirection, 1)
	if got := store.Snapshot().PullDirection; got != 1 {
		t.Fatalf("direction 1 decoded to %g, want 1", got)
	}
}

func TestSnapshotCarriesRouteDepths(t *testing.T) {
	store := NewStore()
	store.Set(RouteID(0, DestWidth), 0.4)
	store.Set(RouteID(1, DestFeedback), -0.3)

	settings := store.Snapshot()
	if got := settings.Mod.RouteDepths[0][DestWidth]; got != 0.4 {
		t.Fatalf("route A width depth = %g, want 0.4", got)
	}
	if got := settings.Mod.RouteDepths[1][DestFeedback]; got != -0.3 {
		t.Fatalf("route B feedback depth = %g, want -0.3", got)
	}
}

func TestStateValuesRoundTrip(t *testing.T) {
	store := NewStore()
	store.Set(IDTension, 0.9)
	store.Set(IDModRun, 1)
	store.Set(RouteID(1, DestGrain), 0.25)

	values := store.StateValues()
	if len(values) != StateValueCount {
		t.Fatalf("state snapshot has %d values, want %d", len(values), StateValueCount)
	}

	restored := NewStore()
	restored.ApplyStateValues(values)

	for _, def := range Defs {
		want, _ := store.Get(def.ID)
		got, _ := restored.Get(def.ID)
		if got != want {
			t.Fatalf("%s restored to %g, want %g", def.Name, got, want)
		}
	}
}

func TestDefsHaveUniqueIDs(t *testing.T) {
	seen := make(map[ID]string, len(Defs))
	for _, def := range Defs {
		if other, dup := seen[def.ID]; dup {
			t.Fatalf("id %d used by both %q and %q", def.ID, other, def.Name)
		}
		seen[def.ID] = def.Name
	}
}
