package cluster

import (
	"math"
	"strconv"
)

type MarkerSize string

const (
	MarkerSmall  MarkerSize = "small"
	MarkerMedium MarkerSize = "medium"
	MarkerLarge  MarkerSize = "large"
)

// MarkerStyle. how a cluster marker should be drawn for its member count.
type MarkerStyle struct {
	Size  MarkerSize `json:"size"`
	Color string     `json:"color"`
	Label string     `json:"label"`
}

func NewMarkerStyle(count int) MarkerStyle {
	return MarkerStyle{
		Size:  markerSize(count),
		Color: markerColor(count),
		Label: FormatCompactCount(count),
	}
}

func markerSize(count int) MarkerSize {
	switch {
	case count >= 50:
		return MarkerLarge
	case count >= 10:
		return MarkerMedium
	default:
		return MarkerSmall
	}
}

func markerColor(count int) string {
	switch {
	case count >= 100:
		return "red"
	case count >= 50:
		return "orange"
	case count >= 20:
		return "yellow"
	case count >= 10:
		return "blue"
	default:
		return "green"
	}
}

var compactUnits = []struct {
	value  float64
	suffix string
}{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// FormatCompactCount. 999 -> "999", 1234 -> "1.2K", 12345 -> "12K", 1500000 -> "1.5M".
// one decimal below 10 of a unit, whole units above.
func FormatCompactCount(n int) string {
	v := float64(n)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	for i, u := range compactUnits {
		if v < u.value {
			continue
		}
		scaled := v / u.value
		if scaled < 10 {
			scaled = math.Round(scaled*10) / 10
		} else {
			scaled = math.Round(scaled)
		}
		// 999.6K rounds up to the next unit
		if scaled >= 1000 && i > 0 {
			return sign + "1" + compactUnits[i-1].suffix
		}
		return sign + strconv.FormatFloat(scaled, 'f', -1, 64) + u.suffix
	}
	return sign + strconv.Itoa(int(v))
}
