package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyVehicleType(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Car", "car"},
		{"my sports car!", "car"},
		{"Motorcycle", "motorcycle"},
		{"motorbike123", "motorcycle"},
		{"a Bike", "motorcycle"},
		{"scooter", "scooter"},
		{"Bicycle", "bicycle"},
		{"a cycle", "bicycle"},
		{"TRUCK", "truck"},
		{"hovercraft", "other"},
		{"", "other"},
		{"1234", "other"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyVehicleType(tc.input), "input %q", tc.input)
	}
}

func TestClassifyVehicleType_Idempotent(t *testing.T) {
	for _, input := range []string{"car", "motorcycle", "scooter", "bicycle", "truck", "other"} {
		assert.Equal(t, input, ClassifyVehicleType(ClassifyVehicleType(input)))
	}
}

func TestNormalizeTheftDate(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"2024-01-15", "2024-01-15T12:00"},
		{"2024-01-15 14:30", "2024-01-15T14:30"},
		{"2024-01-15T14:30", "2024-01-15T14:30"},
		{"  2024-01-15  ", "2024-01-15T12:00"},
		{"sometime last week", "sometime last week"},
		{"15th of January", "15th of January"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeTheftDate(tc.input), "input %q", tc.input)
	}
}

func TestFormatStatus(t *testing.T) {
	assert.Equal(t, "Pending", FormatStatus("pending"))
	assert.Equal(t, "Under Investigation", FormatStatus("under_investigation"))
	assert.Equal(t, "Resolved", FormatStatus("resolved"))
}

func TestIsSkip(t *testing.T) {
	assert.True(t, isSkip("skip"))
	assert.True(t, isSkip("  SKIP\t"))
	assert.True(t, isSkip("Skip"))
	assert.False(t, isSkip("skipped it"))
	assert.False(t, isSkip(""))
}
