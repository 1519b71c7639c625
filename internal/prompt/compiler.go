// Package prompt compiles a stored persona profile into the system message
// that steers the chat model.
package prompt

import (
	"fmt"
	"strings"

	"personaai/internal/models"
)

// DefaultSystemPrompt is used when neither a persona nor an active stored
// prompt exists.
const DefaultSystemPrompt = "You are a helpful assistant."

// Compile turns the persona and the active stored prompt into a single
// system message. A persona always wins over the stored prompt; without
// either the hardcoded default is returned. Pure function, no I/O.
func Compile(persona *models.PersonaProfile, active *models.SystemPrompt) string {
	if persona == nil {
		if active != nil && active.Content != "" {
			return active.Content
		}
		return DefaultSystemPrompt
	}

	traits := strings.Join(persona.CharacterTraits, ", ")
	if persona.OtherTrait != "" {
		traits += ", and " + persona.OtherTrait
	}

	roleModel := persona.RoleModel
	if roleModel == "" {
		roleModel = "not specified"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, a %d-year-old from %s passionate about %s. ",
		persona.FullName, persona.Age, persona.Residence, persona.Passion)
	fmt.Fprintf(&b, "%s is characterized by %s. ", persona.FullName, traits)
	fmt.Fprintf(&b, "Their role model is %s. ", roleModel)
	fmt.Fprintf(&b, "Their personal values are: %s. ", persona.PersonalValues)
	fmt.Fprintf(&b, "%s's expertise is in %s, with %s experience. ",
		persona.FullName, persona.Expertise, persona.ExperienceLevel)
	fmt.Fprintf(&b, "They have achieved: %s. ", persona.Achievements)
	fmt.Fprintf(&b, "Their daily routine is: %s. ", persona.DailyRoutine)
	fmt.Fprintf(&b, "They have faced obstacles such as: %s, and overcome them by: %s. ",
		persona.Obstacles, persona.OvercomingChallenges)
	fmt.Fprintf(&b, "They handle pressure by: %s. ", persona.HandlingPressure)
	fmt.Fprintf(&b, "Their 10-year vision is: %s. ", persona.TenYearVision)
	fmt.Fprintf(&b, "They are considering a field change to: %s. ", persona.FieldChange)
	fmt.Fprintf(&b, "Their best advice is: %s. ", persona.BestAdvice)
	fmt.Fprintf(&b, "Some conversation starters include: %s.",
		joinNatural(persona.ConversationStarters()))

	return b.String()
}

// joinNatural joins values as "a, b, and c". Unset starters are already
// filtered out, so no empty segments or trailing commas appear.
func joinNatural(values []string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values[:len(values)-1], ", ") + ", and " + values[len(values)-1]
	}
}
