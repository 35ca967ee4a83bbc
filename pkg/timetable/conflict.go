package timetable

import (
	"slices"

	"github.com/samber/lo"
)

// ConflictParty identifies one of the other activities involved in a teacher
// conflict, with the group ids used to build a human-readable explanation.
type ConflictParty struct {
	ActivityId string
	GroupIds   []string
}

// TeacherConflict describes why an activity collides at one slot: the
// overbooked teacher, the slot, and the co-occupying activities. An activity
// spanning several conflicted slots carries one descriptor per occurrence.
type TeacherConflict struct {
	TeacherId string
	Slot      SlotKey
	Others    []ConflictParty
}

// ConflictDetector derives conflict state from an activity snapshot. Both
// detections are pure functions of the snapshot and are recomputed in full;
// they never block or alter a placement.
type ConflictDetector struct {
	grid *TimeGrid
}

func NewConflictDetector(grid *TimeGrid) *ConflictDetector {
	return &ConflictDetector{grid: grid}
}

// SlotOccupancy expands every placed activity into the slots it covers and
// groups activities by slot. Activities whose placement does not resolve
// against the grid are left out entirely.
func (detector *ConflictDetector) SlotOccupancy(activities []Activity) map[SlotKey][]Activity {
	occupancy := make(map[SlotKey][]Activity)
	for _, activity := range activities {
		for _, slot := range detector.grid.Expand(activity) {
			occupancy[slot] = append(occupancy[slot], activity)
		}
	}
	return occupancy
}

// GroupConflicts returns the slots where two or more occupying activities
// share at least one group id. A single shared group marks the whole slot;
// parallel activities with disjoint groups are not a conflict.
func (detector *ConflictDetector) GroupConflicts(activities []Activity) map[SlotKey]bool {
	conflicts := make(map[SlotKey]bool)
	for slot, occupants := range detector.SlotOccupancy(activities) {
		if len(occupants) <= 1 {
			continue
		}
		if hasGroupCollision(occupants) {
			conflicts[slot] = true
		}
	}
	return conflicts
}

func hasGroupCollision(occupants []Activity) bool {
	for i := range len(occupants) - 1 {
		for j := i + 1; j < len(occupants); j++ {
			if sharesGroup(occupants[i], occupants[j]) {
				return true
			}
		}
	}
	return false
}

func sharesGroup(first, second Activity) bool {
	return lo.SomeBy(first.GroupIds, func(group string) bool {
		return slices.Contains(second.GroupIds, group)
	})
}

func sharesTeacher(first, second Activity) bool {
	return lo.SomeBy(first.TeacherIds, func(teacher string) bool {
		return slices.Contains(second.TeacherIds, teacher)
	})
}

// TeacherConflicts explodes each slot's occupants by teacher id and flags
// every activity in a teacher bucket of size two or more. The result maps
// activity id to the descriptors of all its conflict occurrences; any one of
// them suffices to mark the activity, all of them stay computable.
func (detector *ConflictDetector) TeacherConflicts(activities []Activity) map[string][]TeacherConflict {
	placed := lo.Filter(activities, func(activity Activity, _ int) bool {
		return len(activity.TeacherIds) > 0
	})

	conflicts := make(map[string][]TeacherConflict)
	for slot, occupants := range detector.SlotOccupancy(placed) {
		//** Explode occupants by teacher
		buckets := make(map[string][]Activity)
		for _, activity := range occupants {
			for _, teacher := range activity.TeacherIds {
				buckets[teacher] = append(buckets[teacher], activity)
			}
		}

		//** Every bucket with more than one activity is a conflict for all of them
		for teacher, bucket := range buckets {
			if len(bucket) <= 1 {
				continue
			}
			for _, activity := range bucket {
				others := lo.FilterMap(bucket, func(other Activity, _ int) (ConflictParty, bool) {
					if other.Id == activity.Id {
						return ConflictParty{}, false
					}
					return ConflictParty{ActivityId: other.Id, GroupIds: other.GroupIds}, true
				})
				conflicts[activity.Id] = append(conflicts[activity.Id], TeacherConflict{
					TeacherId: teacher,
					Slot:      slot,
					Others:    others,
				})
			}
		}
	}
	return conflicts
}

// TeacherBusySlots computes the advisory drag preview for a candidate
// activity: every slot occupied by some other activity sharing a teacher
// with it, regardless of groups. The candidate's own occupancy is excluded
// and nothing is written back to the store.
func (detector *ConflictDetector) TeacherBusySlots(candidate Activity, activities []Activity) map[SlotKey]bool {
	busy := make(map[SlotKey]bool)
	if len(candidate.TeacherIds) == 0 {
		return busy
	}

	for _, activity := range activities {
		if activity.Id == candidate.Id || !sharesTeacher(activity, candidate) {
			continue
		}
		for _, slot := range detector.grid.Expand(activity) {
			busy[slot] = true
		}
	}
	return busy
}
