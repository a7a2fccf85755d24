package content

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCategoryForAction(t *testing.T) {
	cases := []struct {
		action string
		want   Category
		ok     bool
	}{
		{"story", CategoryStory, true},
		{"Stories", CategoryStory, true},
		{" quote ", CategoryQuote, true},
		{"JOKES", CategoryJoke, true},
		{"shower", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := CategoryForAction(tc.action)
		if ok != tc.ok || got != tc.want {
			t.Errorf("CategoryForAction(%q) = (%q, %v), want (%q, %v)", tc.action, got, ok, tc.want, tc.ok)
		}
	}
}

func TestLibrary_LoadAndDraw(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "jokes.txt"), []byte("one\ntwo\nthree\n"), 0644); err != nil {
		t.Fatalf("write jokes: %v", err)
	}

	lib := NewLibrary(dir)
	if err := lib.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if lib.Count(CategoryJoke) != 3 {
		t.Fatalf("Count(joke) = %d, want 3", lib.Count(CategoryJoke))
	}

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		item, err := lib.Draw(CategoryJoke)
		if err != nil {
			t.Fatalf("Draw failed: %v", err)
		}
		if seen[item] {
			t.Errorf("item %q repeated before pool exhausted", item)
		}
		seen[item] = true
	}
}

func TestLibrary_MissingCategoryIsEmpty(t *testing.T) {
	lib := NewLibrary(t.TempDir())
	if err := lib.Load(); err != nil {
		t.Fatalf("Load with no files should succeed: %v", err)
	}
	if _, err := lib.Draw(CategoryStory); err == nil {
		t.Error("expected drawing from an empty category to fail")
	}
}

func TestLibrary_WriteSamples(t *testing.T) {
	dir := t.TempDir()
	lib := NewLibrary(dir)
	if err := lib.WriteSamples(); err != nil {
		t.Fatalf("WriteSamples failed: %v", err)
	}
	if err := lib.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	for _, cat := range Categories {
		if lib.Count(cat) == 0 {
			t.Errorf("expected sample items for %s", cat)
		}
	}

	// Existing files are left alone
	custom := filepath.Join(dir, "jokes.txt")
	if err := os.WriteFile(custom, []byte("only joke\n"), 0644); err != nil {
		t.Fatalf("write custom jokes: %v", err)
	}
	if err := lib.WriteSamples(); err != nil {
		t.Fatalf("second WriteSamples failed: %v", err)
	}
	data, _ := os.ReadFile(custom)
	if string(data) != "only joke\n" {
		t.Error("WriteSamples overwrote an existing content file")
	}
}
