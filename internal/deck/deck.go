// Package deck implements drawn-without-replacement selection over a finite
// pool of items. Consumed indices persist to a flat file so every item is
// presented once before any repeats, across process restarts; an exhausted
// deck resets itself.
package deck

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/frankb2024/Bad-kids-sub000/internal/logger"
	"github.com/frankb2024/Bad-kids-sub000/internal/storage"
)

// Tracker records which item indices of one deck have been consumed.
type Tracker struct {
	path string
	used map[int]bool
}

func NewTracker(path string) *Tracker {
	return &Tracker{path: path, used: make(map[int]bool)}
}

// Load reads the consumed-index file. A missing file is an empty tracker;
// malformed lines are skipped with a warning.
func (t *Tracker) Load() error {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("load tracker %s: %w", t.path, err)
	}

	t.used = make(map[int]bool)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		idx, err := strconv.Atoi(line)
		if err != nil || idx < 0 {
			logger.Warn("skipping malformed tracker line", "path", t.path, "raw", line)
			continue
		}
		t.used[idx] = true
	}
	return nil
}

// Draw picks one unused index uniformly at random from a deck of n items and
// records it as consumed. When every index has been consumed the tracker
// resets and the whole deck becomes eligible again, so the draw after
// exhaustion succeeds rather than failing.
func (t *Tracker) Draw(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("cannot draw from an empty deck")
	}

	unused := t.unusedIndices(n)
	if len(unused) == 0 {
		logger.Info("deck exhausted, resetting", "path", t.path, "size", n)
		t.used = make(map[int]bool)
		unused = t.unusedIndices(n)
	}

	idx := unused[rand.Intn(len(unused))]
	t.used[idx] = true
	if err := t.save(); err != nil {
		// The draw stands; only durability suffered
		logger.Error("failed to persist tracker", "path", t.path, "error", err)
	}
	return idx, nil
}

// Remaining returns how many of n indices are still unconsumed.
func (t *Tracker) Remaining(n int) int {
	return len(t.unusedIndices(n))
}

func (t *Tracker) unusedIndices(n int) []int {
	var unused []int
	for i := 0; i < n; i++ {
		if !t.used[i] {
			unused = append(unused, i)
		}
	}
	return unused
}

func (t *Tracker) save() error {
	var sb strings.Builder
	for i := range t.used {
		sb.WriteString(strconv.Itoa(i))
		sb.WriteByte('\n')
	}
	return storage.AtomicWriteFile(t.path, []byte(sb.String()))
}
