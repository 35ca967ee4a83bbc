package timetable

// DragSession is the only transient, non-committed state of the engine: a
// reference to the activity being manipulated. It mutates nothing until a
// drop commits through the store; aborting discards it with no effect.
type DragSession struct {
	candidate Activity
	detector  *ConflictDetector
}

func NewDragSession(candidate Activity, detector *ConflictDetector) *DragSession {
	return &DragSession{candidate: candidate, detector: detector}
}

func (session *DragSession) Candidate() Activity {
	return session.candidate
}

// BusySlots recomputes the advisory teacher-busy preview for the candidate
// against the given snapshot. Purely informational, never persisted.
func (session *DragSession) BusySlots(activities []Activity) map[SlotKey]bool {
	return session.detector.TeacherBusySlots(session.candidate, activities)
}

// Drop commits the drag as a placement. Dropping while hovering the
// unplaced sidebar maps to DropOff instead.
func (session *DragSession) Drop(store *Store, day, hour string) []Activity {
	return store.Apply(PlaceCommand{ActivityId: session.candidate.Id, Day: day, Hour: hour})
}

// DropOff commits the drag as an unplacement.
func (session *DragSession) DropOff(store *Store) []Activity {
	return store.Apply(UnplaceCommand{ActivityId: session.candidate.Id})
}
