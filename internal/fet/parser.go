// Package fet reads and writes the two fet document formats: the structural
// definition (.fet) and the placement document (Activities_Timetable).
package fet

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/samber/lo"

	"github.com/SirSiscu/reFET/pkg/timetable"
)

// Typed intermediate representation of the structural document. Repeated
// elements decode into slices directly, so a single Teacher or Students
// element needs no array normalization.
type fetDocument struct {
	XMLName    xml.Name      `xml:"fet"`
	Teachers   []namedEntity `xml:"Teachers_List>Teacher"`
	Subjects   []namedEntity `xml:"Subjects_List>Subject"`
	Rooms      []fetRoom     `xml:"Rooms_List>Room"`
	Years      []fetGroup    `xml:"Students_List>Year"`
	Days       []fetDay      `xml:"Days_List>Day"`
	Hours      []namedEntity `xml:"Hours_List>Hour"`
	Activities []fetActivity `xml:"Activities_List>Activity"`
}

type namedEntity struct {
	Name string `xml:"Name"`
}

type fetRoom struct {
	Name     string `xml:"Name"`
	Capacity uint64 `xml:"Capacity"`
}

type fetDay struct {
	Name     string `xml:"Name"`
	LongName string `xml:"Long_Name"`
}

// fetGroup covers all three levels of the student hierarchy: Years contain
// Groups, Groups contain Subgroups.
type fetGroup struct {
	Name      string     `xml:"Name"`
	Groups    []fetGroup `xml:"Group"`
	Subgroups []fetGroup `xml:"Subgroup"`
}

type fetActivity struct {
	Id            string   `xml:"Id"`
	Teachers      []string `xml:"Teacher"`
	Subject       string   `xml:"Subject"`
	Students      []string `xml:"Students"`
	Duration      string   `xml:"Duration"`
	TotalDuration string   `xml:"Total_Duration"`
	Active        string   `xml:"Active"`
	Comments      string   `xml:"Comments"`
}

type timetableDocument struct {
	XMLName    xml.Name           `xml:"Activities_Timetable"`
	Activities []placedActivityIR `xml:"Activity"`
}

type placedActivityIR struct {
	Id   string `xml:"Id"`
	Day  string `xml:"Day"`
	Hour string `xml:"Hour"`
	Room string `xml:"Room"`
}

// ParseAndMerge builds the canonical FetData bundle: entities and activity
// definitions from the structural document, placements merged on by
// activity id from the placement document. Days are referenced internally
// by their long display name; the placement document references them by
// short id, resolved here (an unmapped id passes through as-is).
func ParseAndMerge(fetXml, activitiesXml []byte) (timetable.FetData, error) {
	var document fetDocument
	if err := xml.Unmarshal(fetXml, &document); err != nil {
		return timetable.FetData{}, fmt.Errorf("cannot parse fet document: %w", err)
	}
	var placements timetableDocument
	if err := xml.Unmarshal(activitiesXml, &placements); err != nil {
		return timetable.FetData{}, fmt.Errorf("cannot parse activities document: %w", err)
	}

	//** Flatten the Years > Groups > Subgroups hierarchy
	studentGroups := make([]timetable.StudentGroup, 0)
	var flatten func(group fetGroup)
	flatten = func(group fetGroup) {
		if group.Name != "" {
			studentGroups = append(studentGroups, timetable.StudentGroup{Id: group.Name, Name: group.Name})
		}
		for _, child := range group.Groups {
			flatten(child)
		}
		for _, child := range group.Subgroups {
			flatten(child)
		}
	}
	for _, year := range document.Years {
		flatten(year)
	}

	//** Day sequences and the short-id lookups, both directions
	days := make([]string, 0, len(document.Days))
	dayNames := make(map[string]string, len(document.Days))
	dayIds := make(map[string]string, len(document.Days))
	for _, day := range document.Days {
		name := day.LongName
		if name == "" {
			name = day.Name
		}
		days = append(days, name)
		dayNames[day.Name] = name
		dayIds[name] = day.Name
	}

	//** Activity definitions
	activities := make([]timetable.Activity, 0, len(document.Activities))
	activityIndex := make(map[string]int, len(document.Activities))
	for _, definition := range document.Activities {
		duration, err := strconv.Atoi(definition.Duration)
		if err != nil {
			return timetable.FetData{}, fmt.Errorf("activity %v has a malformed duration %q", definition.Id, definition.Duration)
		}
		totalDuration, _ := strconv.Atoi(definition.TotalDuration)

		activityIndex[definition.Id] = len(activities)
		activities = append(activities, timetable.Activity{
			Id:            definition.Id,
			TeacherIds:    definition.Teachers,
			SubjectId:     definition.Subject,
			GroupIds:      definition.Students,
			Duration:      duration,
			TotalDuration: totalDuration,
			Active:        definition.Active == "true",
			Comments:      definition.Comments,
		})
	}

	//** Merge placements onto the definitions
	for _, placement := range placements.Activities {
		index, ok := activityIndex[placement.Id]
		if !ok {
			continue
		}
		if placement.Day != "" && placement.Hour != "" {
			day, resolved := dayNames[placement.Day]
			if !resolved {
				day = placement.Day // unmapped short id passes through
			}
			activities[index].Day = day
			activities[index].Hour = placement.Hour
		}
		if placement.Room != "" {
			activities[index].RoomId = placement.Room
		}
	}

	return timetable.FetData{
		Teachers: lo.Map(document.Teachers, func(entity namedEntity, _ int) timetable.Teacher {
			return timetable.Teacher{Id: entity.Name, Name: entity.Name}
		}),
		Subjects: lo.Map(document.Subjects, func(entity namedEntity, _ int) timetable.Subject {
			return timetable.Subject{Id: entity.Name, Name: entity.Name}
		}),
		Rooms: lo.Map(document.Rooms, func(room fetRoom, _ int) timetable.Room {
			return timetable.Room{Id: room.Name, Name: room.Name, Capacity: room.Capacity}
		}),
		StudentGroups: studentGroups,
		Activities:    activities,
		Days:          days,
		Hours: lo.Map(document.Hours, func(entity namedEntity, _ int) string {
			return entity.Name
		}),
		DayIds: dayIds,
	}, nil
}
