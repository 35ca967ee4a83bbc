package timetable

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestGroupConflicts(t *testing.T) {
	detector := NewConflictDetector(testGrid())

	t.Run("Two activities sharing a group in one slot conflict", func(t *testing.T) {
		//** Arrange
		activities := []Activity{
			{Id: "1", GroupIds: []string{"G1"}, Duration: 1, Day: "Monday", Hour: "H1"},
			{Id: "2", GroupIds: []string{"G1"}, Duration: 1, Day: "Monday", Hour: "H1"},
		}

		// Act
		conflicts := detector.GroupConflicts(activities)

		// Assert
		assert.True(t, conflicts[SlotKey{Day: "Monday", Position: 0}])
		assert.Len(t, conflicts, 1)
	})

	t.Run("Disjoint groups in one slot are parallel, not conflicting", func(t *testing.T) {
		activities := []Activity{
			{Id: "1", GroupIds: []string{"G1"}, Duration: 1, Day: "Monday", Hour: "H1"},
			{Id: "2", GroupIds: []string{"G2"}, Duration: 1, Day: "Monday", Hour: "H1"},
		}

		conflicts := detector.GroupConflicts(activities)

		assert.Empty(t, conflicts)
	})

	t.Run("Only the overlapping portion of a long activity conflicts", func(t *testing.T) {
		//** Arrange: A covers H1+H2, B covers H2 only
		activities := []Activity{
			{Id: "1", GroupIds: []string{"G1"}, Duration: 2, Day: "Monday", Hour: "H1"},
			{Id: "2", GroupIds: []string{"G1"}, Duration: 1, Day: "Monday", Hour: "H2"},
		}

		// Act
		conflicts := detector.GroupConflicts(activities)

		// Assert
		assert.False(t, conflicts[SlotKey{Day: "Monday", Position: 0}])
		assert.True(t, conflicts[SlotKey{Day: "Monday", Position: 1}])
	})

	t.Run("A shared group on a different day does not conflict", func(t *testing.T) {
		activities := []Activity{
			{Id: "1", GroupIds: []string{"G1"}, Duration: 1, Day: "Monday", Hour: "H1"},
			{Id: "2", GroupIds: []string{"G1"}, Duration: 1, Day: "Tuesday", Hour: "H1"},
		}

		conflicts := detector.GroupConflicts(activities)

		assert.Empty(t, conflicts)
	})
}

func TestTeacherConflicts(t *testing.T) {
	detector := NewConflictDetector(testGrid())

	t.Run("Both overlapping activities of a teacher receive a descriptor", func(t *testing.T) {
		//** Arrange
		activities := []Activity{
			{Id: "1", TeacherIds: []string{"T1"}, GroupIds: []string{"G1"}, Duration: 1, Day: "Monday", Hour: "H1"},
			{Id: "2", TeacherIds: []string{"T1"}, GroupIds: []string{"G2"}, Duration: 1, Day: "Monday", Hour: "H1"},
		}

		// Act
		conflicts := detector.TeacherConflicts(activities)

		// Assert: symmetric, each names T1 and references the other's groups
		assert.Len(t, conflicts, 2)
		first, second := conflicts["1"][0], conflicts["2"][0]
		assert.Equal(t, "T1", first.TeacherId)
		assert.Equal(t, "T1", second.TeacherId)
		assert.Equal(t, SlotKey{Day: "Monday", Position: 0}, first.Slot)
		assert.Equal(t, []ConflictParty{{ActivityId: "2", GroupIds: []string{"G2"}}}, first.Others)
		assert.Equal(t, []ConflictParty{{ActivityId: "1", GroupIds: []string{"G1"}}}, second.Others)
	})

	t.Run("Disjoint teachers never conflict", func(t *testing.T) {
		activities := []Activity{
			{Id: "1", TeacherIds: []string{"T1"}, Duration: 1, Day: "Monday", Hour: "H1"},
			{Id: "2", TeacherIds: []string{"T2"}, Duration: 1, Day: "Monday", Hour: "H1"},
		}

		conflicts := detector.TeacherConflicts(activities)

		assert.Empty(t, conflicts)
	})

	t.Run("A long activity collects one descriptor per conflicted slot", func(t *testing.T) {
		//** Arrange: activity 1 spans H1..H3 and meets T1 twice
		activities := []Activity{
			{Id: "1", TeacherIds: []string{"T1"}, Duration: 3, Day: "Monday", Hour: "H1"},
			{Id: "2", TeacherIds: []string{"T1"}, Duration: 1, Day: "Monday", Hour: "H1"},
			{Id: "3", TeacherIds: []string{"T1"}, Duration: 1, Day: "Monday", Hour: "H3"},
		}

		// Act
		conflicts := detector.TeacherConflicts(activities)

		// Assert
		slots := lo.Map(conflicts["1"], func(conflict TeacherConflict, _ int) SlotKey {
			return conflict.Slot
		})
		assert.ElementsMatch(t, []SlotKey{
			{Day: "Monday", Position: 0},
			{Day: "Monday", Position: 2},
		}, slots)
	})

	t.Run("An activity with several teachers can conflict through each", func(t *testing.T) {
		activities := []Activity{
			{Id: "1", TeacherIds: []string{"T1", "T2"}, Duration: 1, Day: "Monday", Hour: "H1"},
			{Id: "2", TeacherIds: []string{"T1"}, Duration: 1, Day: "Monday", Hour: "H1"},
			{Id: "3", TeacherIds: []string{"T2"}, Duration: 1, Day: "Monday", Hour: "H1"},
		}

		conflicts := detector.TeacherConflicts(activities)

		teachers := lo.Map(conflicts["1"], func(conflict TeacherConflict, _ int) string {
			return conflict.TeacherId
		})
		assert.ElementsMatch(t, []string{"T1", "T2"}, teachers)
	})

	t.Run("Teacherless activities are skipped", func(t *testing.T) {
		activities := []Activity{
			{Id: "1", Duration: 1, Day: "Monday", Hour: "H1"},
			{Id: "2", Duration: 1, Day: "Monday", Hour: "H1"},
		}

		conflicts := detector.TeacherConflicts(activities)

		assert.Empty(t, conflicts)
	})
}

func TestTeacherBusySlots(t *testing.T) {
	detector := NewConflictDetector(testGrid())

	t.Run("Slots of other activities sharing a teacher are busy", func(t *testing.T) {
		//** Arrange
		candidate := Activity{Id: "1", TeacherIds: []string{"T1"}, Duration: 1, Day: "Monday", Hour: "H1"}
		activities := []Activity{
			candidate,
			{Id: "2", TeacherIds: []string{"T1"}, Duration: 2, Day: "Tuesday", Hour: "H2"},
			{Id: "3", TeacherIds: []string{"T2"}, Duration: 1, Day: "Monday", Hour: "H2"},
		}

		// Act
		busy := detector.TeacherBusySlots(candidate, activities)

		// Assert: activity 2's two slots only; the candidate's own slot and
		// the foreign teacher's slot are not busy
		assert.Equal(t, map[SlotKey]bool{
			{Day: "Tuesday", Position: 1}: true,
			{Day: "Tuesday", Position: 2}: true,
		}, busy)
	})

	t.Run("A teacherless candidate is never busy", func(t *testing.T) {
		candidate := Activity{Id: "1", Duration: 1}
		activities := []Activity{
			{Id: "2", TeacherIds: []string{"T1"}, Duration: 1, Day: "Monday", Hour: "H1"},
		}

		busy := detector.TeacherBusySlots(candidate, activities)

		assert.Empty(t, busy)
	})

	t.Run("Group membership is irrelevant to the preview", func(t *testing.T) {
		candidate := Activity{Id: "1", TeacherIds: []string{"T1"}, GroupIds: []string{"G1"}}
		activities := []Activity{
			{Id: "2", TeacherIds: []string{"T1"}, GroupIds: []string{"G2"}, Duration: 1, Day: "Monday", Hour: "H1"},
		}

		busy := detector.TeacherBusySlots(candidate, activities)

		assert.True(t, busy[SlotKey{Day: "Monday", Position: 0}])
	})
}
