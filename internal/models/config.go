package models

import "time"

// ModelConfig selects an LLM backend. At most one row has IsDefault set;
// the storage layer enforces that with a single conditional update.
type ModelConfig struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Provider  string    `db:"provider" json:"provider"`
	ModelID   string    `db:"model_id" json:"modelId"`
	IsDefault bool      `db:"is_default" json:"isDefault"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// SystemPrompt is a stored instruction block. At most one row is active.
type SystemPrompt struct {
	ID        int64     `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
