package timetable

// Canonical entities produced by the fet parser and consumed by the engine.
// Ids are the distinct display names used by fet documents.

type Teacher struct {
	Id   string
	Name string
}

type Subject struct {
	Id   string
	Name string
}

type StudentGroup struct {
	Id   string
	Name string
}

type Room struct {
	Id       string
	Name     string
	Capacity uint64
}

// Activity is one timetabled unit. Day and Hour are either both set (the
// activity is placed on the grid) or both empty (the activity is unplaced);
// RoomId is independent of placement.
type Activity struct {
	Id            string
	TeacherIds    []string
	SubjectId     string
	GroupIds      []string
	Duration      int
	TotalDuration int
	Active        bool
	Comments      string
	Day           string
	Hour          string
	RoomId        string
}

// Placed reports whether the activity occupies grid slots.
func (activity Activity) Placed() bool {
	return activity.Day != "" && activity.Hour != ""
}

// PrimaryGroup returns the first group id, the stability key for group-keyed
// column layout, or the empty string for an ungrouped activity.
func (activity Activity) PrimaryGroup() string {
	if len(activity.GroupIds) == 0 {
		return ""
	}
	return activity.GroupIds[0]
}

// FetData is the canonical bundle built by the parser: entity lists, the
// flattened activity list with placements merged on, the ordered day and hour
// sequences, and the day-name to short-id lookup used at export time.
type FetData struct {
	Teachers      []Teacher
	Subjects      []Subject
	StudentGroups []StudentGroup
	Rooms         []Room
	Activities    []Activity
	Days          []string
	Hours         []string
	DayIds        map[string]string
}
