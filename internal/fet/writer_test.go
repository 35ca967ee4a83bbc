package fet

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/SirSiscu/reFET/pkg/timetable"
)

func exportFixture() timetable.FetData {
	return timetable.FetData{
		Teachers: []timetable.Teacher{{Id: "T1", Name: "T1"}},
		Subjects: []timetable.Subject{{Id: "Mates", Name: "Mates"}},
		Rooms:    []timetable.Room{{Id: "Aula 1", Name: "Aula 1"}},
		Days:     []string{"Dilluns"},
		Hours:    []string{"H1", "H2"},
		DayIds:   map[string]string{"Dilluns": "D1"},
		Activities: []timetable.Activity{
			{
				Id:            "1",
				TeacherIds:    []string{"T1"},
				SubjectId:     "Mates",
				GroupIds:      []string{"ESO1 A"},
				Duration:      2,
				TotalDuration: 4,
				Comments:      "doblada",
				Day:           "Dilluns",
				Hour:          "H1",
				RoomId:        "Aula 1",
			},
			{
				Id:            "2",
				TeacherIds:    []string{"T9"},
				SubjectId:     "Gimnàstica",
				Duration:      1,
				TotalDuration: 1,
			},
		},
	}
}

func TestWritePlacements(t *testing.T) {
	g := NewWithT(t)

	document, err := WritePlacements(exportFixture())
	g.Expect(err).ToNot(HaveOccurred())
	output := string(document)

	t.Run("The document carries the xml header and root element", func(t *testing.T) {
		g := NewWithT(t)
		g.Expect(output).To(HavePrefix(`<?xml version="1.0" encoding="UTF-8"?>`))
		g.Expect(output).To(ContainSubstring("<Activities_Timetable>"))
	})

	t.Run("Long day names map back to short ids", func(t *testing.T) {
		g := NewWithT(t)
		g.Expect(output).To(ContainSubstring("<Day>D1</Day>"))
		g.Expect(output).ToNot(ContainSubstring("<Day>Dilluns</Day>"))
	})

	t.Run("Every reference of the activity is written", func(t *testing.T) {
		g := NewWithT(t)
		g.Expect(output).To(ContainSubstring("<Hour>H1</Hour>"))
		g.Expect(output).To(ContainSubstring("<Room>Aula 1</Room>"))
		g.Expect(output).To(ContainSubstring("<Teacher>T1</Teacher>"))
		g.Expect(output).To(ContainSubstring("<Students>ESO1 A</Students>"))
		g.Expect(output).To(ContainSubstring("<Duration>2</Duration>"))
		g.Expect(output).To(ContainSubstring("<Total_Duration>4</Total_Duration>"))
		g.Expect(output).To(ContainSubstring("<Comments>doblada</Comments>"))
	})

	t.Run("Unplaced fields stay present but empty", func(t *testing.T) {
		g := NewWithT(t)
		g.Expect(output).To(ContainSubstring("<Day></Day>"))
		g.Expect(output).To(ContainSubstring("<Hour></Hour>"))
		g.Expect(output).To(ContainSubstring("<Room></Room>"))
	})

	t.Run("Unresolvable ids degrade to the raw id", func(t *testing.T) {
		g := NewWithT(t)
		g.Expect(output).To(ContainSubstring("<Teacher>T9</Teacher>"))
		g.Expect(output).To(ContainSubstring("<Subject>Gimnàstica</Subject>"))
	})

	t.Run("Omitted comments produce no element", func(t *testing.T) {
		g := NewWithT(t)
		g.Expect(output).ToNot(ContainSubstring("<Comments></Comments>"))
	})

	t.Run("The output round-trips through the parser", func(t *testing.T) {
		g := NewWithT(t)
		structural := `<fet>
			<Days_List><Day><Name>D1</Name><Long_Name>Dilluns</Long_Name></Day></Days_List>
			<Hours_List><Hour><Name>H1</Name></Hour><Hour><Name>H2</Name></Hour></Hours_List>
			<Activities_List>
				<Activity><Id>1</Id><Teacher>T1</Teacher><Subject>Mates</Subject><Students>ESO1 A</Students><Duration>2</Duration><Total_Duration>4</Total_Duration><Active>true</Active></Activity>
				<Activity><Id>2</Id><Teacher>T9</Teacher><Subject>Gimnàstica</Subject><Duration>1</Duration><Total_Duration>1</Total_Duration><Active>true</Active></Activity>
			</Activities_List>
		</fet>`

		data, err := ParseAndMerge([]byte(structural), document)

		g.Expect(err).ToNot(HaveOccurred())
		g.Expect(data.Activities[0].Day).To(Equal("Dilluns"))
		g.Expect(data.Activities[0].Hour).To(Equal("H1"))
		g.Expect(data.Activities[1].Placed()).To(BeFalse())
	})
}
