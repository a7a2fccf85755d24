// Package content manages the reusable announcement pools (stories, quotes,
// jokes) and their drawn-without-replacement trackers.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/frankb2024/Bad-kids-sub000/internal/deck"
	"github.com/frankb2024/Bad-kids-sub000/internal/logger"
	"github.com/frankb2024/Bad-kids-sub000/internal/storage"
)

// Category is one pool of reusable content.
type Category string

const (
	CategoryStory Category = "story"
	CategoryQuote Category = "quote"
	CategoryJoke  Category = "joke"
)

// Categories lists all known content categories.
var Categories = []Category{CategoryStory, CategoryQuote, CategoryJoke}

// CategoryForAction reports whether a schedule action names a content
// category rather than a chore ("story", "quote", "joke", singular or
// plural, any case).
func CategoryForAction(action string) (Category, bool) {
	normalized := strings.ToLower(strings.TrimSpace(action))
	normalized = strings.TrimSuffix(normalized, "s")
	for _, cat := range Categories {
		if normalized == string(cat) {
			return cat, true
		}
	}
	return "", false
}

// Library loads per-category item files (newline-delimited, one item per
// line) and serves non-repeating draws backed by persisted trackers.
type Library struct {
	dir      string
	items    map[Category][]string
	trackers map[Category]*deck.Tracker
}

func NewLibrary(dir string) *Library {
	return &Library{
		dir:      dir,
		items:    make(map[Category][]string),
		trackers: make(map[Category]*deck.Tracker),
	}
}

// Load reads every category's item file and tracker. Missing files mean an
// empty category, not an error.
func (l *Library) Load() error {
	for _, cat := range Categories {
		items, err := readItems(l.itemPath(cat))
		if err != nil {
			return err
		}
		l.items[cat] = items

		tracker := deck.NewTracker(l.trackerPath(cat))
		if err := tracker.Load(); err != nil {
			logger.Warn("content tracker unreadable, starting fresh", "category", cat, "error", err)
			tracker = deck.NewTracker(l.trackerPath(cat))
		}
		l.trackers[cat] = tracker
		logger.Debug("content category loaded", "category", cat, "items", len(items))
	}
	return nil
}

// Draw returns one item from the category, never repeating until the whole
// pool has been used.
func (l *Library) Draw(cat Category) (string, error) {
	items := l.items[cat]
	if len(items) == 0 {
		return "", fmt.Errorf("no %s items loaded", cat)
	}
	idx, err := l.trackers[cat].Draw(len(items))
	if err != nil {
		return "", fmt.Errorf("draw %s: %w", cat, err)
	}
	return items[idx], nil
}

// Count returns the number of items loaded for a category.
func (l *Library) Count(cat Category) int {
	return len(l.items[cat])
}

// WriteSamples writes small starter pools for any category file that does
// not exist yet.
func (l *Library) WriteSamples() error {
	samples := map[Category][]string{
		CategoryStory: {
			"Once upon a time a very small dragon learned to share the last pancake.",
			"The lighthouse keeper's cat kept the whole harbor's secrets.",
		},
		CategoryQuote: {
			"Whether you think you can or you think you can't, you're right.",
			"It always seems impossible until it's done.",
		},
		CategoryJoke: {
			"Why don't scientists trust atoms? They make up everything.",
			"What do you call a fish with no eyes? A fsh.",
		},
	}
	for cat, items := range samples {
		path := l.itemPath(cat)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := storage.AtomicWriteFile(path, []byte(strings.Join(items, "\n")+"\n")); err != nil {
			return fmt.Errorf("write sample %s file: %w", cat, err)
		}
	}
	return nil
}

func plural(cat Category) string {
	if cat == CategoryStory {
		return "stories"
	}
	return string(cat) + "s"
}

func (l *Library) itemPath(cat Category) string {
	return filepath.Join(l.dir, plural(cat)+".txt")
}

func (l *Library) trackerPath(cat Category) string {
	return filepath.Join(l.dir, plural(cat)+".used")
}

func readItems(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var items []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			items = append(items, line)
		}
	}
	return items, nil
}
