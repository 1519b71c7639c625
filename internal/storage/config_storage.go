package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"personaai/internal/models"
)

// CreateModelConfig inserts a model configuration. The default flag is
// stored as given here; use SetDefaultModel to flip it exclusively.
func (s *Store) CreateModelConfig(ctx context.Context, m *models.ModelConfig) error {
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	res, err := s.db.NamedExecContext(ctx, `
		INSERT INTO model_configs (name, provider, model_id, is_default, created_at, updated_at)
		VALUES (:name, :provider, :model_id, 0, :created_at, :updated_at)`, m)
	if err != nil {
		return fmt.Errorf("failed to insert model config: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read model config id: %w", err)
	}
	m.ID = id

	if m.IsDefault {
		return s.SetDefaultModel(ctx, id)
	}
	return nil
}

// UpdateModelConfig updates name, provider and model id of a config.
func (s *Store) UpdateModelConfig(ctx context.Context, m *models.ModelConfig) error {
	m.UpdatedAt = time.Now().UTC()
	res, err := s.db.NamedExecContext(ctx, `
		UPDATE model_configs
		SET name = :name, provider = :provider, model_id = :model_id, updated_at = :updated_at
		WHERE id = :id`, m)
	if err != nil {
		return fmt.Errorf("failed to update model config: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	if m.IsDefault {
		return s.SetDefaultModel(ctx, m.ID)
	}
	return nil
}

// SetDefaultModel makes exactly one config the default. The flag flips in a
// single conditional update, so two racing calls cannot leave two defaults.
func (s *Store) SetDefaultModel(ctx context.Context, id int64) error {
	return s.setExclusiveFlag(ctx, "model_configs", "is_default", id)
}

// GetDefaultModel returns the default config, or nil, nil when none is set.
func (s *Store) GetDefaultModel(ctx context.Context) (*models.ModelConfig, error) {
	var m models.ModelConfig
	err := s.db.GetContext(ctx, &m, `SELECT * FROM model_configs WHERE is_default = 1 LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get default model: %w", err)
	}
	return &m, nil
}

// ListModelConfigs returns all configs ordered by display name.
func (s *Store) ListModelConfigs(ctx context.Context) ([]models.ModelConfig, error) {
	configs := []models.ModelConfig{}
	err := s.db.SelectContext(ctx, &configs, `SELECT * FROM model_configs ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list model configs: %w", err)
	}
	return configs, nil
}

// DeleteModelConfig removes a config. Deleting the current default is
// allowed and leaves no default until an admin sets a new one.
func (s *Store) DeleteModelConfig(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM model_configs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete model config: %w", err)
	}
	return requireAffected(res)
}

// CreateSystemPrompt inserts a prompt; SetActivePrompt flips activity.
func (s *Store) CreateSystemPrompt(ctx context.Context, p *models.SystemPrompt) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := s.db.NamedExecContext(ctx, `
		INSERT INTO system_prompts (content, is_active, created_at, updated_at)
		VALUES (:content, 0, :created_at, :updated_at)`, p)
	if err != nil {
		return fmt.Errorf("failed to insert system prompt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read system prompt id: %w", err)
	}
	p.ID = id

	if p.IsActive {
		return s.SetActivePrompt(ctx, id)
	}
	return nil
}

// UpdateSystemPrompt updates the prompt content.
func (s *Store) UpdateSystemPrompt(ctx context.Context, p *models.SystemPrompt) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := s.db.NamedExecContext(ctx, `
		UPDATE system_prompts SET content = :content, updated_at = :updated_at
		WHERE id = :id`, p)
	if err != nil {
		return fmt.Errorf("failed to update system prompt: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	if p.IsActive {
		return s.SetActivePrompt(ctx, p.ID)
	}
	return nil
}

// SetActivePrompt makes exactly one prompt active.
func (s *Store) SetActivePrompt(ctx context.Context, id int64) error {
	return s.setExclusiveFlag(ctx, "system_prompts", "is_active", id)
}

// GetActivePrompt returns the active prompt, or nil, nil when none is set.
func (s *Store) GetActivePrompt(ctx context.Context) (*models.SystemPrompt, error) {
	var p models.SystemPrompt
	err := s.db.GetContext(ctx, &p, `SELECT * FROM system_prompts WHERE is_active = 1 LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active prompt: %w", err)
	}
	return &p, nil
}

// ListSystemPrompts returns all prompts, most recently updated first.
func (s *Store) ListSystemPrompts(ctx context.Context) ([]models.SystemPrompt, error) {
	prompts := []models.SystemPrompt{}
	err := s.db.SelectContext(ctx, &prompts, `SELECT * FROM system_prompts ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list system prompts: %w", err)
	}
	return prompts, nil
}

// DeleteSystemPrompt removes a prompt, active or not.
func (s *Store) DeleteSystemPrompt(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM system_prompts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete system prompt: %w", err)
	}
	return requireAffected(res)
}

// setExclusiveFlag sets flag true on the target row and false everywhere
// else in one statement. The target must exist; checked inside the same
// transaction so a concurrent delete cannot slip between check and update.
func (s *Store) setExclusiveFlag(ctx context.Context, table, flag string, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = ?)`, table)
	if err := tx.GetContext(ctx, &exists, query, id); err != nil {
		return fmt.Errorf("failed to check %s row: %w", table, err)
	}
	if !exists {
		return ErrNotFound
	}

	update := fmt.Sprintf(`UPDATE %s SET %s = (id = ?)`, table, flag)
	if _, err := tx.ExecContext(ctx, update, id); err != nil {
		return fmt.Errorf("failed to set %s.%s: %w", table, flag, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit flag update: %w", err)
	}
	s.logger.Debug("exclusive flag moved", "table", table, "flag", flag, "id", id)
	return nil
}
