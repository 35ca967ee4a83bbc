package timetable

import (
	"slices"

	"github.com/samber/lo"
)

// View selects which activities are visible and, with it, the column layout
// regime: all groups and single group use the stable group-keyed columns,
// the no-group view uses greedy interval coloring.
type View struct {
	GroupId string
	NoGroup bool
}

func AllGroupsView() View {
	return View{}
}

func SingleGroupView(groupId string) View {
	return View{GroupId: groupId}
}

func NoGroupView() View {
	return View{NoGroup: true}
}

func (view View) admits(activity Activity) bool {
	switch {
	case view.NoGroup:
		return len(activity.GroupIds) == 0
	case view.GroupId != "":
		return slices.Contains(activity.GroupIds, view.GroupId)
	default:
		return len(activity.GroupIds) > 0
	}
}

// ColumnAssignment positions an activity horizontally among the activities
// sharing its slots: column index and the day's total column count. Width
// and offset percentages are derived externally as 100/TotalColumns and
// Column*100/TotalColumns.
type ColumnAssignment struct {
	Column       int
	TotalColumns int
}

// LayoutEngine derives per-day column assignments from an activity snapshot.
type LayoutEngine struct {
	grid *TimeGrid
}

func NewLayoutEngine(grid *TimeGrid) *LayoutEngine {
	return &LayoutEngine{grid: grid}
}

// CellActivities returns the activities starting at the exact (day, hour)
// cell and admitted by the view. Multi-slot activities belong to their start
// cell only; they span the following cells visually.
func (engine *LayoutEngine) CellActivities(activities []Activity, day, hour string, view View) []Activity {
	return lo.Filter(activities, func(activity Activity, _ int) bool {
		return activity.Day == day && activity.Hour == hour && view.admits(activity)
	})
}

// DayGroupSequence collects the distinct primary groups among activities
// placed on the day, sorted lexicographically. The position of a group in
// this sequence is its fixed column for the whole day.
func (engine *LayoutEngine) DayGroupSequence(activities []Activity, day string) []string {
	groups := lo.FilterMap(activities, func(activity Activity, _ int) (string, bool) {
		if activity.Day != day || len(activity.GroupIds) == 0 {
			return "", false
		}
		return activity.PrimaryGroup(), true
	})
	groups = lo.Uniq(groups)
	slices.Sort(groups)
	return groups
}

// GroupKeyedColumns assigns stable columns for the group views: every
// activity sits in its primary group's column, so a group renders in the
// same column across every hour of the day regardless of which hours are
// occupied. Stability takes priority over density.
func (engine *LayoutEngine) GroupKeyedColumns(activities []Activity, day string) map[string]ColumnAssignment {
	sequence := engine.DayGroupSequence(activities, day)
	assignment := make(map[string]ColumnAssignment)

	//** Ungrouped activities sharing one cell split that cell evenly
	ungroupedPerCell := make(map[string][]string)
	for _, activity := range activities {
		if activity.Day == day && len(activity.GroupIds) == 0 {
			ungroupedPerCell[activity.Hour] = append(ungroupedPerCell[activity.Hour], activity.Id)
		}
	}

	for _, activity := range activities {
		if activity.Day != day {
			continue
		}

		if len(activity.GroupIds) > 0 {
			column := slices.Index(sequence, activity.PrimaryGroup())
			if column == -1 {
				column = 0
			}
			assignment[activity.Id] = ColumnAssignment{Column: column, TotalColumns: len(sequence)}
			continue
		}

		if len(sequence) > 0 {
			assignment[activity.Id] = ColumnAssignment{Column: 0, TotalColumns: len(sequence)}
			continue
		}
		cellmates := ungroupedPerCell[activity.Hour]
		assignment[activity.Id] = ColumnAssignment{
			Column:       slices.Index(cellmates, activity.Id),
			TotalColumns: len(cellmates),
		}
	}
	return assignment
}

// GreedyColumns assigns columns for the no-group view by greedy interval
// coloring: activities sorted by start ascending, duration descending, each
// placed into the first column whose members it does not overlap. The final
// column count equals the day's maximum number of simultaneously running
// activities, so every activity gets a uniform width across the day.
func (engine *LayoutEngine) GreedyColumns(activities []Activity, day string) map[string]ColumnAssignment {
	eligible := lo.Filter(activities, func(activity Activity, _ int) bool {
		return activity.Day == day &&
			len(activity.GroupIds) == 0 &&
			len(engine.grid.Expand(activity)) > 0
	})

	slices.SortStableFunc(eligible, func(first, second Activity) int {
		startComparison := engine.grid.HourPosition(first.Hour) - engine.grid.HourPosition(second.Hour)
		if startComparison != 0 {
			return startComparison
		}
		return second.Duration - first.Duration
	})

	type interval struct {
		start int
		end   int
	}
	columns := make([][]interval, 0)
	assignment := make(map[string]ColumnAssignment)

	for _, activity := range eligible {
		start := engine.grid.HourPosition(activity.Hour)
		candidate := interval{start: start, end: start + activity.Duration}

		placed := false
		for column := range columns {
			overlaps := lo.SomeBy(columns[column], func(existing interval) bool {
				return candidate.start < existing.end && candidate.end > existing.start
			})
			if !overlaps {
				columns[column] = append(columns[column], candidate)
				assignment[activity.Id] = ColumnAssignment{Column: column}
				placed = true
				break
			}
		}
		if !placed {
			columns = append(columns, []interval{candidate})
			assignment[activity.Id] = ColumnAssignment{Column: len(columns) - 1}
		}
	}

	//** Total columns is only known once every activity is assigned
	for id, entry := range assignment {
		entry.TotalColumns = len(columns)
		assignment[id] = entry
	}
	return assignment
}

// Columns dispatches the layout regime per the view and merges the per-day
// assignments of every grid day.
func (engine *LayoutEngine) Columns(activities []Activity, view View) map[string]ColumnAssignment {
	assignment := make(map[string]ColumnAssignment)
	for _, day := range engine.grid.Days() {
		var dayAssignment map[string]ColumnAssignment
		if view.NoGroup {
			dayAssignment = engine.GreedyColumns(activities, day)
		} else {
			dayAssignment = engine.GroupKeyedColumns(activities, day)
		}
		for id, entry := range dayAssignment {
			assignment[id] = entry
		}
	}
	return assignment
}
