package timetable

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// Settings drive the time labels shown next to hour rows and in exported
// sheets. They feed label arithmetic only; the conflict and layout
// algorithms never consult them.
type Settings struct {
	StartTime  string
	MinPerSlot int
}

func DefaultSettings() Settings {
	return Settings{
		StartTime:  "08:00",
		MinPerSlot: 30,
	}
}

// SettingsFromJson reads a settings file, decoding through a loose map so
// partial files fall back to the defaults field by field.
func SettingsFromJson(file string) (Settings, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Settings{}, err
	}
	var settingsJson map[string]any
	if err := json.Unmarshal(bytes, &settingsJson); err != nil {
		return Settings{}, fmt.Errorf("cannot parse settings file: %w", err)
	}

	settings := DefaultSettings()
	mapstructure.Decode(settingsJson, &settings)
	if settings.MinPerSlot <= 0 {
		return Settings{}, fmt.Errorf("minPerSlot must be positive: %v", settings.MinPerSlot)
	}
	return settings, nil
}

// TimeLabel renders the clock label of the hour row at the given position,
// counted from StartTime in MinPerSlot steps.
func (settings Settings) TimeLabel(position int) string {
	var startHours, startMinutes int
	if _, err := fmt.Sscanf(settings.StartTime, "%d:%d", &startHours, &startMinutes); err != nil {
		startHours, startMinutes = 8, 0
	}
	total := startHours*60 + startMinutes + position*settings.MinPerSlot
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
