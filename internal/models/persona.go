package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TraitOther is the multi-select sentinel that requires a companion
// free-text trait (OtherTrait).
const TraitOther = "other"

// StringList stores a string slice as a JSON array in a single TEXT column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

// Contains reports whether the list holds the given value.
func (l StringList) Contains(v string) bool {
	for _, s := range l {
		if s == v {
			return true
		}
	}
	return false
}

// PersonaProfile is the character the chat assistant impersonates.
// The chat path treats the first stored profile as the active one.
type PersonaProfile struct {
	ID        int64     `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// Basic information
	FullName  string `db:"full_name" json:"fullName"`
	Age       int    `db:"age" json:"age"`
	Residence string `db:"residence" json:"residence"`
	Passion   string `db:"passion" json:"passion"`

	// Personality and traits
	CharacterTraits StringList `db:"character_traits" json:"characterTraits"`
	OtherTrait      string     `db:"other_trait" json:"otherTrait,omitempty"`
	RoleModel       string     `db:"role_model" json:"roleModel,omitempty"`
	PersonalValues  string     `db:"personal_values" json:"personalValues"`

	// Skills and experience
	Expertise       string `db:"expertise" json:"expertise"`
	ExperienceLevel string `db:"experience_level" json:"experienceLevel"`
	Achievements    string `db:"achievements" json:"achievements"`
	DailyRoutine    string `db:"daily_routine" json:"dailyRoutine"`

	// Challenges and growth
	Obstacles            string `db:"obstacles" json:"obstacles"`
	OvercomingChallenges string `db:"overcoming_challenges" json:"overcomingChallenges"`
	HandlingPressure     string `db:"handling_pressure" json:"handlingPressure"`

	// Future goals
	TenYearVision string `db:"ten_year_vision" json:"tenYearVision"`
	FieldChange   string `db:"field_change" json:"fieldChange"`
	BestAdvice    string `db:"best_advice" json:"bestAdvice"`

	// Conversation starters; the first is mandatory, the rest optional.
	ConversationStarter1 string `db:"conversation_starter1" json:"conversationStarter1"`
	ConversationStarter2 string `db:"conversation_starter2" json:"conversationStarter2,omitempty"`
	ConversationStarter3 string `db:"conversation_starter3" json:"conversationStarter3,omitempty"`
	ConversationStarter4 string `db:"conversation_starter4" json:"conversationStarter4,omitempty"`
}

// ConversationStarters returns the non-empty starters in order.
func (p *PersonaProfile) ConversationStarters() []string {
	var out []string
	for _, s := range []string{
		p.ConversationStarter1,
		p.ConversationStarter2,
		p.ConversationStarter3,
		p.ConversationStarter4,
	} {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
