package timetable

import "github.com/samber/lo"

// Command is a synchronous mutation of the activity list. Commands never
// fail: an unknown activity id leaves the list untouched.
type Command interface {
	apply(activities []Activity) []Activity
}

// PlaceCommand puts an activity on the grid, replacing any previous
// placement unconditionally; conflicts are a derived property, never a gate.
// An empty RoomId keeps the activity's prior room.
type PlaceCommand struct {
	ActivityId string
	Day        string
	Hour       string
	RoomId     string
}

func (command PlaceCommand) apply(activities []Activity) []Activity {
	return lo.Map(activities, func(activity Activity, _ int) Activity {
		if activity.Id != command.ActivityId {
			return activity
		}
		activity.Day = command.Day
		activity.Hour = command.Hour
		if command.RoomId != "" {
			activity.RoomId = command.RoomId
		}
		return activity
	})
}

// UnplaceCommand clears an activity's placement. The room assignment is
// independent of placement and is preserved.
type UnplaceCommand struct {
	ActivityId string
}

func (command UnplaceCommand) apply(activities []Activity) []Activity {
	return lo.Map(activities, func(activity Activity, _ int) Activity {
		if activity.Id != command.ActivityId {
			return activity
		}
		activity.Day = ""
		activity.Hour = ""
		return activity
	})
}

// Store exclusively owns the canonical activity list. Every mutation
// produces a fresh snapshot; derived state (occupancy, conflicts, column
// layout) is recomputed from snapshots by the callers and never cached here.
type Store struct {
	activities []Activity
}

func NewStore(activities []Activity) *Store {
	owned := make([]Activity, len(activities))
	copy(owned, activities)
	return &Store{activities: owned}
}

// Snapshot returns a copy of the current activity list.
func (store *Store) Snapshot() []Activity {
	snapshot := make([]Activity, len(store.activities))
	copy(snapshot, store.activities)
	return snapshot
}

// Apply runs a command against the current list and installs the resulting
// snapshot. Commands are applied one at a time; there is no concurrent
// writer.
func (store *Store) Apply(command Command) []Activity {
	store.activities = command.apply(store.activities)
	return store.Snapshot()
}

// Move is the single mutating operation of the engine: with both day and
// hour it places, with both empty it unplaces. It always succeeds.
func (store *Store) Move(activityId, day, hour, roomId string) []Activity {
	if day == "" && hour == "" {
		return store.Apply(UnplaceCommand{ActivityId: activityId})
	}
	return store.Apply(PlaceCommand{ActivityId: activityId, Day: day, Hour: hour, RoomId: roomId})
}

// Unplaced returns the activities currently off the grid.
func (store *Store) Unplaced() []Activity {
	return lo.Filter(store.activities, func(activity Activity, _ int) bool {
		return !activity.Placed()
	})
}
