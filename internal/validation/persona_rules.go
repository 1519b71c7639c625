package validation

// PersonaRules validates the admin persona profile form. Field names and
// messages match the form payload one to one.
var PersonaRules = RuleSet{
	Required: []RequiredRule{
		{Field: "fullName", Message: "Full name is required"},
		{Field: "age", Message: "Age is required"},
		{Field: "residence", Message: "Place of residence is required"},
		{Field: "passion", Message: "Passion/Interest is required"},
		{Field: "personalValues", Message: "Personal values are required"},
		{Field: "expertise", Message: "Field of expertise is required"},
		{Field: "experienceLevel", Message: "Experience level is required"},
		{Field: "achievements", Message: "Achievements information is required"},
		{Field: "dailyRoutine", Message: "Daily routine is required"},
		{Field: "obstacles", Message: "Obstacles information is required"},
		{Field: "overcomingChallenges", Message: "Information about overcoming challenges is required"},
		{Field: "handlingPressure", Message: "Information about handling pressure is required"},
		{Field: "tenYearVision", Message: "Future vision is required"},
		{Field: "fieldChange", Message: "Field change information is required"},
		{Field: "bestAdvice", Message: "Best advice received is required"},
		{Field: "conversationStarter1", Message: "At least one conversation starter is required"},
	},
	Ranges: []RangeRule{
		{Field: "age", Min: 1, Max: 120},
	},
	Conditionals: []ConditionalRule{
		{
			Trigger:      "characterTraits",
			TriggerValue: "other",
			Dependent:    "otherTrait",
			Message:      "Please specify your other character trait",
		},
	},
	OneOfs: []OneOfRule{
		{
			Field:   "experienceLevel",
			Allowed: ExperienceLevels,
			Message: "Experience level is invalid",
		},
	},
}

// ExperienceLevels are the accepted values for the experienceLevel select.
var ExperienceLevels = []string{"beginner", "intermediate", "advanced", "expert"}

// PlayerRules validates the player profile form variant. It shares the
// engine with PersonaRules but carries its own age bound (1 to 100) and
// its own yes/no question to detail-field pairs.
var PlayerRules = RuleSet{
	Required: []RequiredRule{
		{Field: "fullName", Message: "Full name is required"},
		{Field: "age", Message: "Age is required"},
		{Field: "residence", Message: "Place of residence is required"},
		{Field: "footballKnowledge", Message: "Football knowledge is required"},
		{Field: "playingStyleDescription", Message: "Playing style description is required"},
		{Field: "firstMotivation", Message: "First motivation is required"},
		{Field: "memorableMoment", Message: "Memorable moment is required"},
		{Field: "recoveryRoutine", Message: "Recovery routine is required"},
		{Field: "relaxationActivities", Message: "Relaxation activities are required"},
		{Field: "injuryHandling", Message: "Injury handling information is required"},
		{Field: "pressureHandling", Message: "Pressure handling information is required"},
		{Field: "tenYearVision", Message: "Future vision is required"},
		{Field: "changeForGirls", Message: "Change for girls in sports is required"},
		{Field: "parentalSupportImpact", Message: "Parental support impact is required"},
		{Field: "bestAdvice", Message: "Best advice received is required"},
	},
	Ranges: []RangeRule{
		{Field: "age", Min: 1, Max: 100},
	},
	Conditionals: []ConditionalRule{
		{
			Trigger:      "professionalExperience",
			TriggerValue: "yes",
			Dependent:    "professionalExperienceDetails",
			Message:      "Please provide details about your professional experience",
		},
		{
			Trigger:      "primaryPosition",
			TriggerValue: "other",
			Dependent:    "otherPrimaryPosition",
			Message:      "Please specify your primary position",
		},
		{
			Trigger:      "secondaryPosition",
			TriggerValue: "other",
			Dependent:    "otherSecondaryPosition",
			Message:      "Please specify your secondary position",
		},
		{
			Trigger:      "characterTraits",
			TriggerValue: "other",
			Dependent:    "otherTrait",
			Message:      "Please specify your other character trait",
		},
		{
			Trigger:      "facedJudgment",
			TriggerValue: "yes",
			Dependent:    "judgmentReaction",
			Message:      "Please describe your reaction to judgment",
		},
		{
			Trigger:      "physicalChanges",
			TriggerValue: "yes",
			Dependent:    "physicalChangesDescription",
			Message:      "Please describe the physical changes",
		},
		{
			Trigger:      "specificDiet",
			TriggerValue: "yes",
			Dependent:    "dietHabits",
			Message:      "Please describe your diet habits",
		},
		{
			Trigger:      "genderSuccess",
			TriggerValue: "yes",
			Dependent:    "genderSuccessReaction",
			Message:      "Please describe your reaction",
		},
	},
}
