// Package export renders FetData snapshots to spreadsheet workbooks.
package export

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"github.com/SirSiscu/reFET/pkg/timetable"
)

// Mode selects the workbook shape: one sheet per student group or one sheet
// per teacher with at least one activity.
type Mode string

const (
	ModeGroups   Mode = "groups"
	ModeTeachers Mode = "teachers"
)

var forbiddenSheetChars = regexp.MustCompile(`[*?:/\\\[\]]`)

// Excel caps sheet names at 31 characters.
func sheetName(name string) string {
	name = forbiddenSheetChars.ReplaceAllString(name, "")
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

// BuildWorkbook renders the timetable as a workbook, one sheet per group or
// per teacher depending on the mode. Rows are the hour slots labelled from
// the settings' start time, columns are the days; activities spanning
// several slots merge vertically over their duration.
func BuildWorkbook(data timetable.FetData, settings timetable.Settings, mode Mode) (*excelize.File, error) {
	builder := &sheetBuilder{
		workbook: excelize.NewFile(),
		data:     data,
		settings: settings,
		grid:     timetable.NewTimeGrid(data.Days, data.Hours),
		subjectNames: lo.SliceToMap(data.Subjects, func(subject timetable.Subject) (string, string) {
			return subject.Id, subject.Name
		}),
		teacherNames: lo.SliceToMap(data.Teachers, func(teacher timetable.Teacher) (string, string) {
			return teacher.Id, teacher.Name
		}),
		fillStyles: make(map[string]int),
	}

	switch mode {
	case ModeGroups:
		groups := lo.Uniq(lo.FlatMap(data.Activities, func(activity timetable.Activity, _ int) []string {
			return activity.GroupIds
		}))
		slices.Sort(groups)
		for _, group := range groups {
			sheetActivities := lo.Filter(data.Activities, func(activity timetable.Activity, _ int) bool {
				return slices.Contains(activity.GroupIds, group)
			})
			if err := builder.addSheet(group, sheetActivities, builder.teacherSubtitle); err != nil {
				return nil, err
			}
		}
	case ModeTeachers:
		for _, teacher := range data.Teachers {
			sheetActivities := lo.Filter(data.Activities, func(activity timetable.Activity, _ int) bool {
				return slices.Contains(activity.TeacherIds, teacher.Id)
			})
			// Teachers with no activities get no sheet
			if len(sheetActivities) == 0 {
				continue
			}
			if err := builder.addSheet(teacher.Name, sheetActivities, builder.groupSubtitle); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("%v is not a valid export mode", mode)
	}

	builder.workbook.DeleteSheet("Sheet1")
	return builder.workbook, nil
}

// WriteWorkbook builds the workbook and saves it to disk.
func WriteWorkbook(data timetable.FetData, settings timetable.Settings, mode Mode, path string) error {
	workbook, err := BuildWorkbook(data, settings, mode)
	if err != nil {
		return err
	}
	return workbook.SaveAs(path)
}

type sheetBuilder struct {
	workbook     *excelize.File
	data         timetable.FetData
	settings     timetable.Settings
	grid         *timetable.TimeGrid
	subjectNames map[string]string
	teacherNames map[string]string
	fillStyles   map[string]int
}

// On a group sheet the second cell line shows the teachers.
func (builder *sheetBuilder) teacherSubtitle(activity timetable.Activity) string {
	names := lo.Map(activity.TeacherIds, func(teacher string, _ int) string {
		if name, ok := builder.teacherNames[teacher]; ok {
			return name
		}
		return teacher
	})
	return strings.Join(names, ", ")
}

// On a teacher sheet the second cell line shows the groups.
func (builder *sheetBuilder) groupSubtitle(activity timetable.Activity) string {
	return strings.Join(activity.GroupIds, ", ")
}

func (builder *sheetBuilder) addSheet(name string, activities []timetable.Activity, subtitle func(timetable.Activity) string) error {
	sheet := sheetName(name)
	if _, err := builder.workbook.NewSheet(sheet); err != nil {
		return fmt.Errorf("cannot create sheet %v: %w", sheet, err)
	}

	if err := builder.writeHeader(sheet); err != nil {
		return err
	}
	if err := builder.writeTimeColumn(sheet); err != nil {
		return err
	}

	for _, activity := range activities {
		if err := builder.writeActivity(sheet, activity, subtitle(activity)); err != nil {
			return err
		}
	}
	return nil
}

func (builder *sheetBuilder) writeHeader(sheet string) error {
	headerStyle, err := builder.workbook.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	if err := builder.workbook.SetCellValue(sheet, "A1", "Hora"); err != nil {
		return err
	}
	if err := builder.workbook.SetColWidth(sheet, "A", "A", 15); err != nil {
		return err
	}
	lastColumn := "A"
	for position, day := range builder.data.Days {
		cell, err := excelize.CoordinatesToCellName(position+2, 1)
		if err != nil {
			return err
		}
		if err := builder.workbook.SetCellValue(sheet, cell, day); err != nil {
			return err
		}
		column, err := excelize.ColumnNumberToName(position + 2)
		if err != nil {
			return err
		}
		if err := builder.workbook.SetColWidth(sheet, column, column, 25); err != nil {
			return err
		}
		lastColumn = column
	}

	if err := builder.workbook.SetCellStyle(sheet, "A1", lastColumn+"1", headerStyle); err != nil {
		return err
	}
	return builder.workbook.SetRowHeight(sheet, 1, 30)
}

func (builder *sheetBuilder) writeTimeColumn(sheet string) error {
	labelStyle, err := builder.workbook.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    []excelize.Border{{Type: "right", Style: 1, Color: "000000"}},
	})
	if err != nil {
		return err
	}

	for position := range builder.data.Hours {
		cell, err := excelize.CoordinatesToCellName(1, position+2)
		if err != nil {
			return err
		}
		if err := builder.workbook.SetCellValue(sheet, cell, builder.settings.TimeLabel(position)); err != nil {
			return err
		}
		if err := builder.workbook.SetCellStyle(sheet, cell, cell, labelStyle); err != nil {
			return err
		}
	}
	return nil
}

func (builder *sheetBuilder) writeActivity(sheet string, activity timetable.Activity, subtitle string) error {
	dayPosition := builder.grid.DayPosition(activity.Day)
	hourPosition := builder.grid.HourPosition(activity.Hour)
	// Unplaced or unresolvable activities cannot be rendered
	if !activity.Placed() || dayPosition == -1 || hourPosition == -1 {
		return nil
	}

	row := hourPosition + 2
	column := dayPosition + 2
	cell, err := excelize.CoordinatesToCellName(column, row)
	if err != nil {
		return err
	}

	subjectName, ok := builder.subjectNames[activity.SubjectId]
	if !ok {
		subjectName = activity.SubjectId
	}
	if err := builder.workbook.SetCellRichText(sheet, cell, []excelize.RichTextRun{
		{Text: subjectName, Font: &excelize.Font{Bold: true, Size: 11, Family: "Calibri"}},
		{Text: "\n"},
		{Text: subtitle, Font: &excelize.Font{Italic: true, Size: 9, Family: "Calibri"}},
	}); err != nil {
		return err
	}

	style, err := builder.subjectStyle(activity.SubjectId)
	if err != nil {
		return err
	}
	if err := builder.workbook.SetCellStyle(sheet, cell, cell, style); err != nil {
		return err
	}

	if activity.Duration > 1 {
		bottom, err := excelize.CoordinatesToCellName(column, row+activity.Duration-1)
		if err != nil {
			return err
		}
		// Overlapping activities contend for the same cells; the merge of a
		// later write may fail and the cell then shows the first activity only.
		_ = builder.workbook.MergeCell(sheet, cell, bottom)
	}
	return nil
}

// subjectStyle returns the cached cell style carrying the subject's
// deterministic pastel fill.
func (builder *sheetBuilder) subjectStyle(subjectId string) (int, error) {
	background, _ := SubjectColor(subjectId)
	fill := strings.TrimPrefix(background, "#")
	if style, ok := builder.fillStyles[fill]; ok {
		return style, nil
	}

	style, err := builder.workbook.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border: []excelize.Border{
			{Type: "top", Style: 1, Color: "000000"},
			{Type: "left", Style: 1, Color: "000000"},
			{Type: "bottom", Style: 1, Color: "000000"},
			{Type: "right", Style: 1, Color: "000000"},
		},
	})
	if err != nil {
		return 0, err
	}
	builder.fillStyles[fill] = style
	return style, nil
}
