package timetable

// SlotKey identifies one (day, hour-position) cell of the grid, the atomic
// unit of occupancy.
type SlotKey struct {
	Day      string
	Position int
}

// TimeGrid holds the ordered day and hour label sequences. Adjacency is
// positional: an activity starting at hour-position p with duration d
// occupies positions [p, p+d), clipped at the end of the hours sequence.
type TimeGrid struct {
	days          []string
	hours         []string
	dayPositions  map[string]int
	hourPositions map[string]int
}

func NewTimeGrid(days, hours []string) *TimeGrid {
	grid := &TimeGrid{
		days:          days,
		hours:         hours,
		dayPositions:  make(map[string]int, len(days)),
		hourPositions: make(map[string]int, len(hours)),
	}
	for position, day := range days {
		grid.dayPositions[day] = position
	}
	for position, hour := range hours {
		grid.hourPositions[hour] = position
	}
	return grid
}

func (grid *TimeGrid) Days() []string {
	return grid.days
}

func (grid *TimeGrid) Hours() []string {
	return grid.hours
}

// DayPosition returns the zero-based position of a day label, or -1 when the
// label is not part of the grid.
func (grid *TimeGrid) DayPosition(day string) int {
	position, ok := grid.dayPositions[day]
	if !ok {
		return -1
	}
	return position
}

// HourPosition returns the zero-based position of an hour label, or -1 when
// the label is not part of the grid.
func (grid *TimeGrid) HourPosition(hour string) int {
	position, ok := grid.hourPositions[hour]
	if !ok {
		return -1
	}
	return position
}

// HourLabel is the inverse of HourPosition.
func (grid *TimeGrid) HourLabel(position int) (string, bool) {
	if position < 0 || position >= len(grid.hours) {
		return "", false
	}
	return grid.hours[position], true
}

// Expand converts a placed activity into the slot keys it occupies. An
// unplaced activity, or one whose day or hour label does not resolve against
// the grid, yields no slots at all: it cannot be conflict-checked or laid
// out until its placement becomes resolvable. Positions past the end of the
// hours sequence are dropped.
func (grid *TimeGrid) Expand(activity Activity) []SlotKey {
	if !activity.Placed() {
		return nil
	}
	if grid.DayPosition(activity.Day) == -1 {
		return nil
	}
	start := grid.HourPosition(activity.Hour)
	if start == -1 {
		return nil
	}

	slots := make([]SlotKey, 0, activity.Duration)
	for offset := range activity.Duration {
		position := start + offset
		if position >= len(grid.hours) {
			break
		}
		slots = append(slots, SlotKey{Day: activity.Day, Position: position})
	}
	return slots
}
