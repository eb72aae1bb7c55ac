package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkerStyle(t *testing.T) {
	cases := []struct {
		count int
		size  MarkerSize
		color string
	}{
		{2, MarkerSmall, "green"},
		{9, MarkerSmall, "green"},
		{10, MarkerMedium, "blue"},
		{20, MarkerMedium, "yellow"},
		{49, MarkerMedium, "yellow"},
		{50, MarkerLarge, "orange"},
		{100, MarkerLarge, "red"},
	}
	for _, c := range cases {
		style := NewMarkerStyle(c.count)
		assert.Equal(t, c.size, style.Size, "count %d", c.count)
		assert.Equal(t, c.color, style.Color, "count %d", c.count)
	}
}

func TestFormatCompactCount(t *testing.T) {
	cases := map[int]string{
		0:          "0",
		7:          "7",
		999:        "999",
		1000:       "1K",
		1234:       "1.2K",
		9960:       "10K",
		12345:      "12K",
		123456:     "123K",
		999999:     "1M",
		1500000:    "1.5M",
		2000000000: "2B",
		-1234:      "-1.2K",
	}
	for n, expected := range cases {
		assert.Equal(t, expected, FormatCompactCount(n), "n=%d", n)
	}
}
