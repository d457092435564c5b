package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveIntensity(t *testing.T) {
	tests := []struct {
		name     string
		activity string
		want     string
	}{
		{"high lowercase", "high intensity sports", IntensityHigh},
		{"high mixed case", "Sports (HIGH)", IntensityHigh},
		{"high inside word", "Highland dance", IntensityHigh},
		{"low lowercase", "low effort club", IntensityLow},
		{"low mixed case", "Chess - Low", IntensityLow},
		{"low inside word", "Glowing arts", IntensityLow},
		{"high beats low", "low to high", IntensityHigh},
		{"high beats low reversed", "HIGH and LOW", IntensityHigh},
		{"unknown placeholder", UnknownActivity, IntensityMedium},
		{"empty text", "", IntensityMedium},
		{"unrecognised text", "Debate club", IntensityMedium},
		{"medium keyword", "Medium commitment", IntensityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveIntensity(tt.activity))
		})
	}
}

func TestDeriveIntensity_Idempotent(t *testing.T) {
	for _, activity := range []string{"High jump", "low key", "Music", UnknownActivity, ""} {
		first := DeriveIntensity(activity)
		assert.Equal(t, first, DeriveIntensity(activity), "activity %q", activity)
	}
}

func TestFillActivity(t *testing.T) {
	assert.Equal(t, UnknownActivity, FillActivity("", false))
	assert.Equal(t, UnknownActivity, FillActivity("Sports", false))
	assert.Equal(t, "Sports", FillActivity("Sports", true))
	assert.Equal(t, IntensityMedium, DeriveIntensity(FillActivity("", false)))
}

func TestWithIntensity_DoesNotMutateInput(t *testing.T) {
	in := []Record{
		{Activity: "Sports High", GPA: 3.1, WellBeing: 7},
		{Activity: "Art Low", GPA: 3.4, WellBeing: 6, IntensityLevel: "stale"},
	}

	out := WithIntensity(in)

	assert.Equal(t, IntensityHigh, out[0].IntensityLevel)
	assert.Equal(t, IntensityLow, out[1].IntensityLevel)
	assert.Equal(t, "Sports High", out[0].Activity)
	assert.Empty(t, in[0].IntensityLevel)
	assert.Equal(t, "stale", in[1].IntensityLevel)
	assert.Equal(t, out, WithIntensity(out))
}
