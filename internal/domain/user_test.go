package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillInputAcceptsStringAndObject(t *testing.T) {
	var inputs []SkillInput
	payload := `["Guitar", {"name": "Go", "category": "Programming", "level": "expert"}]`

	require.NoError(t, json.Unmarshal([]byte(payload), &inputs))
	require.Len(t, inputs, 2)

	assert.Equal(t, "Guitar", inputs[0].Name)
	assert.Equal(t, "Go", inputs[1].Name)
	assert.Equal(t, "Programming", inputs[1].Category)
	assert.Equal(t, LevelExpert, inputs[1].Level)
}

func TestAvailabilityInputAcceptsStringAndObject(t *testing.T) {
	var inputs []AvailabilityInput
	payload := `["Weekends", {"dayOfWeek": 3, "startTime": "18:00", "endTime": "20:00"}]`

	require.NoError(t, json.Unmarshal([]byte(payload), &inputs))
	require.Len(t, inputs, 2)

	assert.Equal(t, "Weekends", inputs[0].Description)
	assert.Equal(t, 3, inputs[1].DayOfWeek)
	assert.Equal(t, "18:00", inputs[1].StartTime)
}

func TestNormalizeSkills(t *testing.T) {
	inputs := []SkillInput{
		{Skill{Name: "  Guitar  "}},
		{Skill{Name: ""}},
		{Skill{Name: "Go", Category: "Programming", Level: LevelExpert, Tags: []string{"backend"}}},
		{Skill{Name: "Chess", Level: "grandmaster"}},
	}

	skills := NormalizeSkills(inputs, LevelIntermediate)
	require.Len(t, skills, 3)

	assert.Equal(t, "Guitar", skills[0].Name)
	assert.Equal(t, "General", skills[0].Category)
	assert.Equal(t, LevelIntermediate, skills[0].Level)
	assert.NotNil(t, skills[0].Tags)

	assert.Equal(t, LevelExpert, skills[1].Level)
	assert.Equal(t, "Programming", skills[1].Category)

	// unknown level falls back to the default
	assert.Equal(t, LevelIntermediate, skills[2].Level)
}

func TestNormalizeAvailability(t *testing.T) {
	inputs := []AvailabilityInput{
		{AvailabilitySlot{Description: "Weekends"}},
		{AvailabilitySlot{}},
		{AvailabilitySlot{DayOfWeek: 9, StartTime: "10:00", EndTime: "12:00"}},
	}

	slots := NormalizeAvailability(inputs)
	require.Len(t, slots, 2)

	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "17:00", slots[0].EndTime)
	assert.True(t, slots[0].Recurring)
	assert.Equal(t, "UTC", slots[0].Timezone)

	// out-of-range day clamps to Sunday
	assert.Equal(t, 0, slots[1].DayOfWeek)
}

func TestPublicViewStripsEmail(t *testing.T) {
	u := User{Name: "Ana", Email: "ana@example.com"}

	public := u.PublicView()
	assert.Empty(t, public.Email)
	assert.Equal(t, "ana@example.com", u.Email)
}

func TestUserMarshalHidesPasswordHash(t *testing.T) {
	u := User{Name: "Ana", PasswordHash: "secret"}

	data, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
}
