package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/SirSiscu/reFET/internal/export"
	"github.com/SirSiscu/reFET/internal/fet"
	"github.com/SirSiscu/reFET/pkg/timetable"
)

var validModes = []string{string(export.ModeGroups), string(export.ModeTeachers)}

func main() {
	// Define arguments
	fetPathPtr := flag.String("fet", "", "Path to the structural document (.fet)")
	activitiesPathPtr := flag.String("activities", "", "Path to the placement document (activities xml)")
	settingsPathPtr := flag.String("settings", "", "Path to a settings json file ({\"startTime\": \"08:00\", \"minPerSlot\": 30}); defaults apply when empty")
	modePtr := flag.String("mode", "groups", "Spreadsheet export mode. Allowed values are: \"groups\" (one sheet per student group) and \"teachers\" (one sheet per teacher), where \"groups\" is the default")
	xlsxPathPtr := flag.String("xlsx", "", "Path where the spreadsheet export will be written; skipped when empty")
	xmlPathPtr := flag.String("xml", "", "Path where the placement document export will be written; skipped when empty")
	flag.Parse()
	fetPath := *fetPathPtr
	activitiesPath := *activitiesPathPtr
	mode := strings.ToLower(*modePtr)

	// Validate arguments
	if fetPath == "" {
		log.Fatal("a structural document must be specified")
	} else if activitiesPath == "" {
		log.Fatal("a placement document must be specified")
	} else if !slices.Contains(validModes, mode) {
		log.Fatalf("%v is not a valid export mode", mode)
	}

	// Extract input
	fetXml, err := os.ReadFile(fetPath)
	if err != nil {
		log.Fatalf("cannot read structural document: %v", err)
	}
	activitiesXml, err := os.ReadFile(activitiesPath)
	if err != nil {
		log.Fatalf("cannot read placement document: %v", err)
	}
	data, err := fet.ParseAndMerge(fetXml, activitiesXml)
	if err != nil {
		log.Fatalf("cannot parse input documents: %v", err)
	}

	settings := timetable.DefaultSettings()
	if *settingsPathPtr != "" {
		if settings, err = timetable.SettingsFromJson(*settingsPathPtr); err != nil {
			log.Fatalf("cannot load settings: %v", err)
		}
	}

	// Initialize engines
	grid := timetable.NewTimeGrid(data.Days, data.Hours)
	store := timetable.NewStore(data.Activities)
	detector := timetable.NewConflictDetector(grid)
	snapshot := store.Snapshot()

	reportConflicts(grid, detector, snapshot)
	reportUnplaced(store)

	// Exports
	if *xlsxPathPtr != "" {
		data.Activities = snapshot
		if err := export.WriteWorkbook(data, settings, export.Mode(mode), *xlsxPathPtr); err != nil {
			log.Fatalf("cannot write spreadsheet export: %v", err)
		}
		fmt.Printf("Spreadsheet written to %v\n", *xlsxPathPtr)
	}
	if *xmlPathPtr != "" {
		data.Activities = snapshot
		document, err := fet.WritePlacements(data)
		if err != nil {
			log.Fatalf("cannot serialize placement document: %v", err)
		}
		if err := os.WriteFile(*xmlPathPtr, document, 0644); err != nil {
			log.Fatalf("cannot write placement document: %v", err)
		}
		fmt.Printf("Placement document written to %v\n", *xmlPathPtr)
	}
}

func reportConflicts(grid *timetable.TimeGrid, detector *timetable.ConflictDetector, snapshot []timetable.Activity) {
	groupConflicts := detector.GroupConflicts(snapshot)
	slots := lo.Keys(groupConflicts)
	slices.SortFunc(slots, func(a, b timetable.SlotKey) int {
		dayComparison := grid.DayPosition(a.Day) - grid.DayPosition(b.Day)
		if dayComparison != 0 {
			return dayComparison
		}
		return a.Position - b.Position
	})

	fmt.Printf("Group conflicts: %v\n", len(slots))
	for _, slot := range slots {
		hour, _ := grid.HourLabel(slot.Position)
		fmt.Printf("\t%v %v\n", slot.Day, hour)
	}

	teacherConflicts := detector.TeacherConflicts(snapshot)
	ids := lo.Keys(teacherConflicts)
	slices.Sort(ids)

	fmt.Printf("Teacher conflicts: %v activities\n", len(ids))
	for _, id := range ids {
		for _, conflict := range teacherConflicts[id] {
			hour, _ := grid.HourLabel(conflict.Slot.Position)
			others := strings.Join(lo.Map(conflict.Others, func(party timetable.ConflictParty, _ int) string {
				return strings.Join(party.GroupIds, ", ")
			}), " & ")
			fmt.Printf("\tactivity %v: teacher %v also teaches %v at %v %v\n", id, conflict.TeacherId, others, conflict.Slot.Day, hour)
		}
	}
}

func reportUnplaced(store *timetable.Store) {
	unplaced := store.Unplaced()
	fmt.Printf("Unplaced activities: %v\n", len(unplaced))
	for _, activity := range unplaced {
		fmt.Printf("\t%v (%v)\n", activity.Id, activity.SubjectId)
	}
}
