package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"personaai/internal/models"
)

const personaColumns = `full_name, age, residence, passion, character_traits,
	other_trait, role_model, personal_values, expertise, experience_level,
	achievements, daily_routine, obstacles, overcoming_challenges,
	handling_pressure, ten_year_vision, field_change, best_advice,
	conversation_starter1, conversation_starter2, conversation_starter3,
	conversation_starter4`

// CreatePersona inserts a new persona profile and fills in the
// server-assigned id and timestamps.
func (s *Store) CreatePersona(ctx context.Context, p *models.PersonaProfile) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := s.db.NamedExecContext(ctx, `
		INSERT INTO persona_profiles (created_at, updated_at, `+personaColumns+`)
		VALUES (:created_at, :updated_at, :full_name, :age, :residence, :passion,
			:character_traits, :other_trait, :role_model, :personal_values,
			:expertise, :experience_level, :achievements, :daily_routine,
			:obstacles, :overcoming_challenges, :handling_pressure,
			:ten_year_vision, :field_change, :best_advice,
			:conversation_starter1, :conversation_starter2,
			:conversation_starter3, :conversation_starter4)`, p)
	if err != nil {
		return fmt.Errorf("failed to insert persona: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read persona id: %w", err)
	}
	p.ID = id
	return nil
}

// UpdatePersona overwrites an existing persona profile. The updated_at
// timestamp always moves, so update is not idempotent in effect.
func (s *Store) UpdatePersona(ctx context.Context, p *models.PersonaProfile) error {
	p.UpdatedAt = time.Now().UTC()

	res, err := s.db.NamedExecContext(ctx, `
		UPDATE persona_profiles SET
			updated_at = :updated_at,
			full_name = :full_name, age = :age, residence = :residence,
			passion = :passion, character_traits = :character_traits,
			other_trait = :other_trait, role_model = :role_model,
			personal_values = :personal_values, expertise = :expertise,
			experience_level = :experience_level, achievements = :achievements,
			daily_routine = :daily_routine, obstacles = :obstacles,
			overcoming_challenges = :overcoming_challenges,
			handling_pressure = :handling_pressure,
			ten_year_vision = :ten_year_vision, field_change = :field_change,
			best_advice = :best_advice,
			conversation_starter1 = :conversation_starter1,
			conversation_starter2 = :conversation_starter2,
			conversation_starter3 = :conversation_starter3,
			conversation_starter4 = :conversation_starter4
		WHERE id = :id`, p)
	if err != nil {
		return fmt.Errorf("failed to update persona: %w", err)
	}
	return requireAffected(res)
}

// GetPersona fetches one persona by id. Returns ErrNotFound when missing.
func (s *Store) GetPersona(ctx context.Context, id int64) (*models.PersonaProfile, error) {
	var p models.PersonaProfile
	err := s.db.GetContext(ctx, &p, `SELECT * FROM persona_profiles WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get persona: %w", err)
	}
	return &p, nil
}

// GetFirstPersona returns the first stored persona, which the chat path
// treats as the active one. Returns nil, nil when none exists.
func (s *Store) GetFirstPersona(ctx context.Context) (*models.PersonaProfile, error) {
	var p models.PersonaProfile
	err := s.db.GetContext(ctx, &p, `SELECT * FROM persona_profiles ORDER BY id ASC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get first persona: %w", err)
	}
	return &p, nil
}

// ListPersonas returns all personas, most recently updated first.
func (s *Store) ListPersonas(ctx context.Context) ([]models.PersonaProfile, error) {
	personas := []models.PersonaProfile{}
	err := s.db.SelectContext(ctx, &personas, `SELECT * FROM persona_profiles ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list personas: %w", err)
	}
	return personas, nil
}

// DeletePersona removes one persona. Returns ErrNotFound when missing.
func (s *Store) DeletePersona(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM persona_profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete persona: %w", err)
	}
	return requireAffected(res)
}

// requireAffected maps a zero-row write to ErrNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
