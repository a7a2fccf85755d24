package tasks

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/frankb2024/Bad-kids-sub000/internal/models"
	"github.com/frankb2024/Bad-kids-sub000/internal/rotation"
)

// 2023-01-04 is a Wednesday
var wednesday = time.Date(2023, 1, 4, 8, 0, 0, 0, time.UTC)

func testBuilder(t *testing.T, entries []models.ScheduleEntry, anchor string) *Builder {
	t.Helper()
	store := rotation.NewStore(filepath.Join(t.TempDir(), "rotation_state.csv"), time.UTC)
	if err := store.Rebuild(entries, anchor); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	return NewBuilder(rotation.NewResolver(store))
}

func testEntries() []models.ScheduleEntry {
	return []models.ScheduleEntry{
		{Time: "20:00", Participants: []string{"Frank", "Alice", "Tom"}, Days: "Monday-Friday", Action: "shower", Label: "Shower"},
		{Time: "07:15", Participants: []string{"Alice"}, Days: "*", Action: "feed the dog", Label: "Dog"},
		{Time: "19:00", Participants: []string{"Tom"}, Days: "Saturday,Sunday", Action: "take out the trash", Label: "Trash"},
	}
}

func TestBuildToday_MatchingEntriesOnly(t *testing.T) {
	b := testBuilder(t, testEntries(), "2023-01-01")
	instances := b.BuildToday(testEntries(), wednesday, nil)

	if len(instances) != 2 {
		t.Fatalf("expected 2 instances on a Wednesday, got %d", len(instances))
	}
	for _, inst := range instances {
		if inst.Entry.Action == "take out the trash" {
			t.Error("weekend-only entry materialized on a Wednesday")
		}
		if inst.At.Day() != 4 || inst.At.Month() != time.January {
			t.Errorf("instance not dated today: %v", inst.At)
		}
	}
}

func TestBuildToday_ResolvesRotatingAssignee(t *testing.T) {
	b := testBuilder(t, testEntries(), "2023-01-01")
	instances := b.BuildToday(testEntries(), wednesday, nil)

	key := models.InstanceKey{Time: "20:00", Participants: "Frank:Alice:Tom", Action: "shower"}
	inst, ok := instances[key]
	if !ok {
		t.Fatal("shower instance missing")
	}
	// Anchor Sunday 2023-01-01, Monday-Friday: three matching days through
	// Wednesday, so the rotation has come back around to the first person
	if inst.Assigned != "Frank" {
		t.Errorf("assigned = %q, want Frank", inst.Assigned)
	}

	dogKey := models.InstanceKey{Time: "07:15", Participants: "Alice", Action: "feed the dog"}
	if instances[dogKey].Assigned != "Alice" {
		t.Errorf("single-person entry assigned = %q, want Alice", instances[dogKey].Assigned)
	}
}

func TestBuildToday_FallsBackToFirstParticipant(t *testing.T) {
	// Empty rotation store: resolution misses and the first listed
	// participant is assigned
	store := rotation.NewStore(filepath.Join(t.TempDir(), "rotation_state.csv"), time.UTC)
	b := NewBuilder(rotation.NewResolver(store))

	instances := b.BuildToday(testEntries(), wednesday, nil)
	key := models.InstanceKey{Time: "20:00", Participants: "Frank:Alice:Tom", Action: "shower"}
	if instances[key].Assigned != "Frank" {
		t.Errorf("fallback assigned = %q, want Frank", instances[key].Assigned)
	}
}

func TestBuildToday_MergesForwardInstanceState(t *testing.T) {
	b := testBuilder(t, testEntries(), "2023-01-01")
	first := b.BuildToday(testEntries(), wednesday, nil)

	key := models.InstanceKey{Time: "20:00", Participants: "Frank:Alice:Tom", Action: "shower"}
	first[key].Called = true
	first[key].Done = true

	// Same-day rebuild keeps the fired state instead of resurrecting the task
	second := b.BuildToday(testEntries(), wednesday.Add(2*time.Hour), first)
	if !second[key].Called || !second[key].Done {
		t.Error("called/completed state lost across same-day rebuild")
	}
	if second[key].ID != first[key].ID {
		t.Error("instance identity changed across same-day rebuild")
	}
}

func TestBuildToday_CarriesInjectedAndFinished(t *testing.T) {
	b := testBuilder(t, testEntries(), "2023-01-01")
	first := b.BuildToday(testEntries(), wednesday, nil)

	injected := b.Inject(first, "Grandma", "surprise visit", 30*time.Second, wednesday)

	// Reload with a schedule that no longer produces any of these keys
	second := b.BuildToday(nil, wednesday.Add(time.Minute), first)
	if _, ok := second[injected.Key()]; !ok {
		t.Error("injected instance dropped across schedule reload")
	}

	// Pending instances from removed entries are allowed to drop
	key := models.InstanceKey{Time: "07:15", Participants: "Alice", Action: "feed the dog"}
	if _, ok := second[key]; ok {
		t.Error("pending instance of a removed entry should not survive")
	}
}

func TestInject(t *testing.T) {
	b := testBuilder(t, nil, "2023-01-01")
	instances := make(map[models.InstanceKey]*models.TaskInstance)

	inst := b.Inject(instances, "Tom", "practice piano", 45*time.Second, wednesday)
	if !inst.Injected {
		t.Error("injected instance not flagged")
	}
	if inst.Assigned != "Tom" {
		t.Errorf("assigned = %q, want Tom", inst.Assigned)
	}
	want := wednesday.Add(45 * time.Second)
	if !inst.At.Equal(want) {
		t.Errorf("At = %v, want %v", inst.At, want)
	}
	if len(instances) != 1 {
		t.Errorf("instance not added to the set")
	}
}
