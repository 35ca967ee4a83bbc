package fet

import (
	"encoding/xml"
	"fmt"

	"github.com/samber/lo"

	"github.com/SirSiscu/reFET/pkg/timetable"
)

const xmlHeader = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"

// Serialized record of the placement document. Day, Hour and Room stay
// present even when empty, matching the documents fet itself emits.
type placementRecord struct {
	Id            string   `xml:"Id"`
	Day           string   `xml:"Day"`
	Hour          string   `xml:"Hour"`
	Room          string   `xml:"Room"`
	Subject       string   `xml:"Subject"`
	Teachers      []string `xml:"Teacher"`
	Students      []string `xml:"Students"`
	Duration      int      `xml:"Duration"`
	TotalDuration int      `xml:"Total_Duration"`
	Comments      string   `xml:"Comments,omitempty"`
}

type placementDocument struct {
	XMLName    xml.Name          `xml:"Activities_Timetable"`
	Activities []placementRecord `xml:"Activity"`
}

// WritePlacements serializes the activity list back to the placement
// document format. Long day names map back to their short ids through the
// reverse lookup built at parse time; an unmapped name is written as-is.
// Subject, teacher and room ids degrade to the raw id when no entity
// resolves them.
func WritePlacements(data timetable.FetData) ([]byte, error) {
	roomNames := lo.SliceToMap(data.Rooms, func(room timetable.Room) (string, string) {
		return room.Id, room.Name
	})
	subjectNames := lo.SliceToMap(data.Subjects, func(subject timetable.Subject) (string, string) {
		return subject.Id, subject.Name
	})
	teacherNames := lo.SliceToMap(data.Teachers, func(teacher timetable.Teacher) (string, string) {
		return teacher.Id, teacher.Name
	})
	resolve := func(names map[string]string, id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return id
	}

	document := placementDocument{
		Activities: lo.Map(data.Activities, func(activity timetable.Activity, _ int) placementRecord {
			day := activity.Day
			if shortId, ok := data.DayIds[day]; ok {
				day = shortId
			}
			room := ""
			if activity.RoomId != "" {
				room = resolve(roomNames, activity.RoomId)
			}
			return placementRecord{
				Id:      activity.Id,
				Day:     day,
				Hour:    activity.Hour,
				Room:    room,
				Subject: resolve(subjectNames, activity.SubjectId),
				Teachers: lo.Map(activity.TeacherIds, func(teacher string, _ int) string {
					return resolve(teacherNames, teacher)
				}),
				Students:      activity.GroupIds,
				Duration:      activity.Duration,
				TotalDuration: activity.TotalDuration,
				Comments:      activity.Comments,
			}
		}),
	}

	body, err := xml.MarshalIndent(document, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("cannot serialize placement document: %w", err)
	}
	return append([]byte(xmlHeader), append(body, '\n')...), nil
}
