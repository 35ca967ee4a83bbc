package export

import "fmt"

// SubjectColor derives a deterministic pastel fill and border pair from a
// subject id, so a subject keeps its color across sessions and sheets.
func SubjectColor(id string) (background, border string) {
	var hash int32
	for _, char := range []byte(id) {
		hash = int32(char) + (hash << 5) - hash
	}
	hue := int(hash % 360)
	if hue < 0 {
		hue = -hue
	}
	return hslToHex(hue, 85, 92), hslToHex(hue, 60, 80)
}

func hslToHex(hue, saturation, lightness int) string {
	l := float64(lightness) / 100
	a := float64(saturation) * min(l, 1-l) / 100

	channel := func(n int) int {
		k := float64((n*30+hue)%360) / 30
		value := l - a*max(min(k-3, 9-k, 1), -1)
		return int(value*255 + 0.5)
	}
	return fmt.Sprintf("#%02X%02X%02X", channel(0), channel(8), channel(4))
}
