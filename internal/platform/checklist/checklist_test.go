package checklist

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNewStartsUnchecked(t *testing.T) {
	t.Parallel()
	c := New("sop", "cv")

	if got := c.Names(); !reflect.DeepEqual(got, []string{"sop", "cv"}) {
		t.Fatalf("names = %v", got)
	}
	for _, name := range c.Names() {
		done, ok := c.Get(name)
		if !ok || done {
			t.Fatalf("item %q: done=%t ok=%t", name, done, ok)
		}
	}
}

func TestAddIgnoresBlankNames(t *testing.T) {
	t.Parallel()
	c := New("sop")
	c.Add("")
	c.Add("   ")

	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
}

func TestAddExistingResetsToUnchecked(t *testing.T) {
	t.Parallel()
	c := New("sop")
	c.Toggle("sop")
	c.Add("sop")

	if done, _ := c.Get("sop"); done {
		t.Fatal("re-added item should be unchecked")
	}
	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
}

func TestRenameKeepsPositionAndFlag(t *testing.T) {
	t.Parallel()
	c := New("sop", "lor1", "cv")
	c.Toggle("lor1")
	c.Rename("lor1", "recommendation")

	if got := c.Names(); !reflect.DeepEqual(got, []string{"sop", "recommendation", "cv"}) {
		t.Fatalf("names = %v", got)
	}
	done, ok := c.Get("recommendation")
	if !ok || !done {
		t.Fatalf("renamed item: done=%t ok=%t", done, ok)
	}
}

func TestRenameCollisionDropsOtherItem(t *testing.T) {
	t.Parallel()
	c := New("sop", "cv")
	c.Toggle("sop")
	c.Rename("sop", "cv")

	if got := c.Names(); !reflect.DeepEqual(got, []string{"cv"}) {
		t.Fatalf("names = %v", got)
	}
	// The renamed item keeps its own flag, the displaced one is gone.
	if done, _ := c.Get("cv"); !done {
		t.Fatal("surviving item should keep the renamed item's flag")
	}
}

func TestRenameNoops(t *testing.T) {
	t.Parallel()
	c := New("sop", "cv")

	c.Rename("sop", "")
	c.Rename("sop", "  ")
	c.Rename("sop", "sop")
	c.Rename("missing", "other")

	if got := c.Names(); !reflect.DeepEqual(got, []string{"sop", "cv"}) {
		t.Fatalf("names = %v", got)
	}
}

func TestRemoveAndToggleMissingAreNoops(t *testing.T) {
	t.Parallel()
	c := New("sop")
	c.Remove("missing")
	c.Toggle("missing")

	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
	if done, _ := c.Get("sop"); done {
		t.Fatal("toggle of a missing item must not touch others")
	}
}

func TestCloneIsDetached(t *testing.T) {
	t.Parallel()
	c := New("sop", "cv")
	clone := c.Clone()
	clone.Toggle("sop")
	clone.Remove("cv")

	if done, _ := c.Get("sop"); done {
		t.Fatal("mutating the clone changed the original")
	}
	if c.Len() != 2 {
		t.Fatalf("original len = %d, want 2", c.Len())
	}
}

func TestJSONRoundTripPreservesOrder(t *testing.T) {
	t.Parallel()
	c := New("sop", "lor1", "cv")
	c.Toggle("lor1")

	raw, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `{"sop":false,"lor1":true,"cv":false}`; string(raw) != want {
		t.Fatalf("marshal = %s, want %s", raw, want)
	}

	var back Checklist
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(c) {
		t.Fatalf("round trip changed checklist: %v vs %v", back.Names(), c.Names())
	}
}

func TestUnmarshalRejectsNonBooleanValues(t *testing.T) {
	t.Parallel()
	var c Checklist
	if err := json.Unmarshal([]byte(`{"sop":"yes"}`), &c); err == nil {
		t.Fatal("expected error for non-boolean value")
	}
	if err := json.Unmarshal([]byte(`["sop"]`), &c); err == nil {
		t.Fatal("expected error for non-object payload")
	}
}
