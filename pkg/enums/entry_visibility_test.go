package enums

import "testing"

func TestEntryVisibilityParse(t *testing.T) {
	for _, raw := range []string{"active", "hidden", "purged"} {
		got, err := ParseEntryVisibility(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if !got.IsValid() || got.String() != raw {
			t.Fatalf("unexpected visibility %q", got)
		}
	}
	if _, err := ParseEntryVisibility("deleted"); err == nil {
		t.Fatal("expected error for unknown visibility")
	}
}

func TestEntryVisibilityShown(t *testing.T) {
	if !EntryVisibilityActive.Shown() {
		t.Fatal("active entries should be shown")
	}
	if EntryVisibilityHidden.Shown() || EntryVisibilityPurged.Shown() {
		t.Fatal("hidden and purged entries should not be shown")
	}
	if EntryVisibilityFromShow(false) != EntryVisibilityHidden {
		t.Fatal("show=false should map to hidden")
	}
}
