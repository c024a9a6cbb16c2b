package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelExpert       SkillLevel = "expert"
)

func (l SkillLevel) IsValid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return true
	default:
		return false
	}
}

type Skill struct {
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Level       SkillLevel `json:"level"`
	Tags        []string   `json:"tags"`
	Description string     `json:"description,omitempty"`
}

type AvailabilitySlot struct {
	DayOfWeek   int    `json:"dayOfWeek"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Timezone    string `json:"timezone"`
	Recurring   bool   `json:"recurring"`
	Description string `json:"description,omitempty"`
}

// SkillList and AvailabilityList are stored as JSONB columns.

type SkillList []Skill

func (s SkillList) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal(SkillList{})
	}
	return json.Marshal(s)
}

func (s *SkillList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = SkillList{}
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported skill list type %T", src)
	}
}

type AvailabilityList []AvailabilitySlot

func (a AvailabilityList) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal(AvailabilityList{})
	}
	return json.Marshal(a)
}

func (a *AvailabilityList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*a = AvailabilityList{}
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("unsupported availability list type %T", src)
	}
}

type User struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	Name          string           `json:"name" db:"name"`
	Email         string           `json:"email,omitempty" db:"email"`
	PasswordHash  string           `json:"-" db:"password_hash"`
	Location      *string          `json:"location,omitempty" db:"location"`
	ProfilePhoto  *string          `json:"profilePhoto,omitempty" db:"profile_photo"`
	SkillsOffered SkillList        `json:"skillsOffered" db:"skills_offered"`
	SkillsWanted  SkillList        `json:"skillsWanted" db:"skills_wanted"`
	Availability  AvailabilityList `json:"availability" db:"availability"`
	IsPublic      bool             `json:"isPublic" db:"is_public"`
	IsAdmin       bool             `json:"isAdmin" db:"is_admin"`
	Rating        float64          `json:"rating" db:"rating"`
	TotalReviews  int              `json:"totalReviews" db:"total_reviews"`
	LastActive    time.Time        `json:"lastActive" db:"last_active"`
	IsOnline      bool             `json:"isOnline" db:"is_online"`
	CreatedAt     time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time        `json:"updatedAt" db:"updated_at"`
	DeletedAt     *time.Time       `json:"-" db:"deleted_at"`
}

// IsParty reports whether the user is one of the two given swap parties.
func (u *User) IsParty(fromUserID, toUserID uuid.UUID) bool {
	return u.ID == fromUserID || u.ID == toUserID
}

// PublicView strips fields that must not leak on unauthenticated reads.
func (u User) PublicView() User {
	u.Email = ""
	return u
}

// SkillInput accepts either a bare string ("Guitar") or a structured skill
// object. Clients of the original API send both shapes interchangeably, so
// the union is resolved here and only the structured form is stored.
type SkillInput struct {
	Skill
}

func (s *SkillInput) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		s.Skill = Skill{Name: name}
		return nil
	}
	return json.Unmarshal(data, &s.Skill)
}

// AvailabilityInput accepts either a free-text slot description
// ("Weekends") or a structured slot object.
type AvailabilityInput struct {
	AvailabilitySlot
}

func (a *AvailabilityInput) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var description string
		if err := json.Unmarshal(data, &description); err != nil {
			return err
		}
		a.AvailabilitySlot = AvailabilitySlot{Description: description}
		return nil
	}
	return json.Unmarshal(data, &a.AvailabilitySlot)
}

// NormalizeSkills drops empty entries and fills in the defaults the original
// schema applied (category General, caller-chosen level, non-nil tags).
func NormalizeSkills(inputs []SkillInput, defaultLevel SkillLevel) SkillList {
	skills := SkillList{}
	for _, in := range inputs {
		skill := in.Skill
		skill.Name = strings.TrimSpace(skill.Name)
		if skill.Name == "" {
			continue
		}
		if skill.Category == "" {
			skill.Category = "General"
		}
		if !skill.Level.IsValid() {
			skill.Level = defaultLevel
		}
		if skill.Tags == nil {
			skill.Tags = []string{}
		}
		skills = append(skills, skill)
	}
	return skills
}

func NormalizeAvailability(inputs []AvailabilityInput) AvailabilityList {
	slots := AvailabilityList{}
	for _, in := range inputs {
		slot := in.AvailabilitySlot
		slot.Description = strings.TrimSpace(slot.Description)
		if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
			slot.DayOfWeek = 0
		}
		if slot.StartTime == "" && slot.EndTime == "" {
			if slot.Description == "" {
				continue
			}
			slot.StartTime = "09:00"
			slot.EndTime = "17:00"
			slot.Recurring = true
		}
		if slot.Timezone == "" {
			slot.Timezone = "UTC"
		}
		slots = append(slots, slot)
	}
	return slots
}

type RegisterInput struct {
	Name          string              `json:"name" validate:"required,min=2"`
	Email         string              `json:"email" validate:"required,email"`
	Password      string              `json:"password" validate:"required,min=6"`
	Location      string              `json:"location"`
	SkillsOffered []SkillInput        `json:"skillsOffered"`
	SkillsWanted  []SkillInput        `json:"skillsWanted"`
	Availability  []AvailabilityInput `json:"availability"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileInput deliberately has no password, email, admin or rating
// fields: those arrive in request bodies from misbehaving clients and must
// be dropped, not applied.
type UpdateProfileInput struct {
	Name          *string              `json:"name,omitempty" validate:"omitempty,min=2"`
	Location      *string              `json:"location,omitempty"`
	ProfilePhoto  *string              `json:"profilePhoto,omitempty"`
	IsPublic      *bool                `json:"isPublic,omitempty"`
	SkillsOffered *[]SkillInput        `json:"skillsOffered,omitempty"`
	SkillsWanted  *[]SkillInput        `json:"skillsWanted,omitempty"`
	Availability  *[]AvailabilityInput `json:"availability,omitempty"`
}

// AdminUpdateUserInput additionally exposes the admin-only moderation
// switches. Password changes stay out of this path too.
type AdminUpdateUserInput struct {
	Name          *string              `json:"name,omitempty" validate:"omitempty,min=2"`
	Location      *string              `json:"location,omitempty"`
	ProfilePhoto  *string              `json:"profilePhoto,omitempty"`
	IsPublic      *bool                `json:"isPublic,omitempty"`
	IsAdmin       *bool                `json:"isAdmin,omitempty"`
	SkillsOffered *[]SkillInput        `json:"skillsOffered,omitempty"`
	SkillsWanted  *[]SkillInput        `json:"skillsWanted,omitempty"`
	Availability  *[]AvailabilityInput `json:"availability,omitempty"`
}

type UserFilter struct {
	Search   string
	Location string
	// Status filters the admin listing: "active" (public profiles),
	// "inactive" (hidden profiles) or empty for everyone.
	Status string
}

type TokenPair struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int64  `json:"expiresIn"`
}
