package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"personaai/internal/auth"
	"personaai/internal/models"
	"personaai/internal/storage"
	"personaai/internal/validation"
)

// actionEnvelope carries the mutation discriminator; the payload is
// re-decoded per action from the raw body.
type actionEnvelope struct {
	Action string `json:"action"`
}

// AdminUpdate godoc
// @Summary      Create or update an admin resource
// @Description  Dispatches on the action field: updatePersona, updateModelConfig, updateSystemPrompt or updateUser. A payload with an id updates, without an id creates.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.actionEnvelope true "action plus resource payload"
// @Success      200 {object} handler.Response
// @Failure      400 {object} handler.Response
// @Failure      403 {object} handler.Response
// @Router       /api/admin [put]
func (h *Handler) AdminUpdate(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}

	var env actionEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}

	switch env.Action {
	case "updatePersona":
		h.updatePersona(c, raw)
	case "updateModelConfig":
		h.updateModelConfig(c, raw)
	case "updateSystemPrompt":
		h.updateSystemPrompt(c, raw)
	case "updateUser":
		h.updateUser(c, raw)
	default:
		respondError(c, http.StatusBadRequest, "Invalid action")
	}
}

// updatePersona validates the form payload before any write; a failing
// validation aborts with the field map and persists nothing.
func (h *Handler) updatePersona(c *gin.Context, raw []byte) {
	var form validation.Form
	if err := json.Unmarshal(raw, &form); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}

	if errs := validation.PersonaRules.Validate(form); len(errs) > 0 {
		verr := &validation.Error{Fields: errs}
		h.logger.Warn("persona submission rejected", "error", verr)
		respondValidation(c, verr.Fields)
		return
	}

	age, _ := strconv.Atoi(form.String("age"))
	persona := &models.PersonaProfile{
		FullName:             form.String("fullName"),
		Age:                  age,
		Residence:            form.String("residence"),
		Passion:              form.String("passion"),
		CharacterTraits:      form.List("characterTraits"),
		OtherTrait:           form.String("otherTrait"),
		RoleModel:            form.String("roleModel"),
		PersonalValues:       form.String("personalValues"),
		Expertise:            form.String("expertise"),
		ExperienceLevel:      form.String("experienceLevel"),
		Achievements:         form.String("achievements"),
		DailyRoutine:         form.String("dailyRoutine"),
		Obstacles:            form.String("obstacles"),
		OvercomingChallenges: form.String("overcomingChallenges"),
		HandlingPressure:     form.String("handlingPressure"),
		TenYearVision:        form.String("tenYearVision"),
		FieldChange:          form.String("fieldChange"),
		BestAdvice:           form.String("bestAdvice"),
		ConversationStarter1: form.String("conversationStarter1"),
		ConversationStarter2: form.String("conversationStarter2"),
		ConversationStarter3: form.String("conversationStarter3"),
		ConversationStarter4: form.String("conversationStarter4"),
	}

	ctx := c.Request.Context()
	if id, err := strconv.ParseInt(form.String("id"), 10, 64); err == nil && id > 0 {
		persona.ID = id
		err = h.store.UpdatePersona(ctx, persona)
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Profile not found")
			return
		}
		if err != nil {
			h.logger.Error("failed to update persona", "error", err)
			respondError(c, http.StatusInternalServerError, "Failed to update persona profile")
			return
		}
	} else if err := h.store.CreatePersona(ctx, persona); err != nil {
		h.logger.Error("failed to create persona", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to update persona profile")
		return
	}

	respondOK(c, persona)
}

type modelConfigRequest struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Provider  string `json:"provider"`
	ModelID   string `json:"modelId"`
	IsDefault bool   `json:"isDefault"`
}

func (h *Handler) updateModelConfig(c *gin.Context, raw []byte) {
	var req modelConfigRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.Name == "" || req.Provider == "" || req.ModelID == "" {
		respondError(c, http.StatusBadRequest, "Name, provider and modelId are required")
		return
	}

	cfg := &models.ModelConfig{
		ID:        req.ID,
		Name:      req.Name,
		Provider:  req.Provider,
		ModelID:   req.ModelID,
		IsDefault: req.IsDefault,
	}

	ctx := c.Request.Context()
	var err error
	if cfg.ID > 0 {
		err = h.store.UpdateModelConfig(ctx, cfg)
	} else {
		err = h.store.CreateModelConfig(ctx, cfg)
	}
	if errors.Is(err, storage.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Model configuration not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to save model config", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to update model configuration")
		return
	}

	respondOK(c, cfg)
}

type systemPromptRequest struct {
	ID       int64  `json:"id"`
	Content  string `json:"content"`
	IsActive bool   `json:"isActive"`
}

func (h *Handler) updateSystemPrompt(c *gin.Context, raw []byte) {
	var req systemPromptRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.Content == "" {
		respondError(c, http.StatusBadRequest, "Content is required")
		return
	}

	sp := &models.SystemPrompt{
		ID:       req.ID,
		Content:  req.Content,
		IsActive: req.IsActive,
	}

	ctx := c.Request.Context()
	var err error
	if sp.ID > 0 {
		err = h.store.UpdateSystemPrompt(ctx, sp)
	} else {
		err = h.store.CreateSystemPrompt(ctx, sp)
	}
	if errors.Is(err, storage.ErrNotFound) {
		respondError(c, http.StatusNotFound, "System prompt not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to save system prompt", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to update system prompt")
		return
	}

	respondOK(c, sp)
}

type userRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Type     string `json:"type"`
	Password string `json:"password"`
}

func (h *Handler) updateUser(c *gin.Context, raw []byte) {
	var req userRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.Name == "" || req.Email == "" {
		respondError(c, http.StatusBadRequest, "Name and email are required")
		return
	}

	role := models.Role(req.Type)
	if req.Type == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		respondError(c, http.StatusBadRequest, "Invalid user type")
		return
	}

	user := &models.User{
		ID:    req.ID,
		Name:  req.Name,
		Email: req.Email,
		Type:  role,
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		user.Password = hash
	}

	ctx := c.Request.Context()
	var err error
	if user.ID != "" {
		err = h.store.UpdateUser(ctx, user)
	} else {
		if user.Password == "" {
			respondError(c, http.StatusBadRequest, "Password is required for new users")
			return
		}
		err = h.store.CreateUser(ctx, user)
	}
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(c, http.StatusNotFound, "User not found")
		return
	case errors.Is(err, storage.ErrEmailExists):
		respondError(c, http.StatusBadRequest, "Email already exists")
		return
	case err != nil:
		h.logger.Error("failed to save user", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	respondOK(c, user)
}

// AdminGet godoc
// @Summary      Read admin resources
// @Description  Returns the resource named by the resource query parameter: personas, persona (optional id, defaults to the first profile), models, systemPrompts or users.
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        resource query string true  "resource name"
// @Param        id       query int    false "record id (persona only)"
// @Success      200 {object} handler.Response
// @Failure      400 {object} handler.Response
// @Failure      404 {object} handler.Response
// @Router       /api/admin [get]
func (h *Handler) AdminGet(c *gin.Context) {
	ctx := c.Request.Context()

	switch c.Query("resource") {
	case "personas":
		personas, err := h.store.ListPersonas(ctx)
		if err != nil {
			h.logger.Error("failed to list personas", "error", err)
			respondError(c, http.StatusInternalServerError, "Failed to retrieve data")
			return
		}
		respondOK(c, personas)

	case "persona":
		h.getPersona(c)

	case "models":
		configs, err := h.store.ListModelConfigs(ctx)
		if err != nil {
			h.logger.Error("failed to list model configs", "error", err)
			respondError(c, http.StatusInternalServerError, "Failed to retrieve data")
			return
		}
		respondOK(c, configs)

	case "systemPrompts":
		prompts, err := h.store.ListSystemPrompts(ctx)
		if err != nil {
			h.logger.Error("failed to list system prompts", "error", err)
			respondError(c, http.StatusInternalServerError, "Failed to retrieve data")
			return
		}
		respondOK(c, prompts)

	case "users":
		users, err := h.store.ListUsers(ctx)
		if err != nil {
			h.logger.Error("failed to list users", "error", err)
			respondError(c, http.StatusInternalServerError, "Failed to retrieve data")
			return
		}
		respondOK(c, users)

	default:
		respondError(c, http.StatusBadRequest, "Invalid resource")
	}
}

func (h *Handler) getPersona(c *gin.Context) {
	ctx := c.Request.Context()

	idParam := c.Query("id")
	if idParam == "" {
		persona, err := h.store.GetFirstPersona(ctx)
		if err != nil {
			h.logger.Error("failed to get first persona", "error", err)
			respondError(c, http.StatusInternalServerError, "Failed to retrieve data")
			return
		}
		if persona == nil {
			respondError(c, http.StatusNotFound, "No profile found")
			return
		}
		respondOK(c, persona)
		return
	}

	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}
	persona, err := h.store.GetPersona(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get persona", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}
	respondOK(c, persona)
}

// AdminDelete godoc
// @Summary      Delete an admin resource
// @Description  Deletes the record named by resource (persona, model, systemPrompt or user) and id. Deleting the default model or active prompt is allowed and leaves none flagged.
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        resource query string true "resource name"
// @Param        id       query string true "record id"
// @Success      200 {object} handler.Response
// @Failure      400 {object} handler.Response
// @Failure      404 {object} handler.Response
// @Router       /api/admin [delete]
func (h *Handler) AdminDelete(c *gin.Context) {
	idParam := c.Query("id")
	if idParam == "" {
		respondError(c, http.StatusBadRequest, "ID is required")
		return
	}

	ctx := c.Request.Context()
	var err error

	switch c.Query("resource") {
	case "persona":
		err = h.deleteByIntID(ctx, idParam, h.store.DeletePersona)
	case "model":
		err = h.deleteByIntID(ctx, idParam, h.store.DeleteModelConfig)
	case "systemPrompt":
		err = h.deleteByIntID(ctx, idParam, h.store.DeleteSystemPrompt)
	case "user":
		err = h.store.DeleteUser(ctx, idParam)
	default:
		respondError(c, http.StatusBadRequest, "Invalid resource")
		return
	}

	switch {
	case errors.Is(err, errInvalidID):
		respondError(c, http.StatusBadRequest, "Invalid id")
	case errors.Is(err, storage.ErrNotFound):
		respondError(c, http.StatusNotFound, "Record not found")
	case err != nil:
		h.logger.Error("failed to delete resource", "resource", c.Query("resource"), "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to delete resource")
	default:
		respondOK(c, gin.H{"deleted": true})
	}
}

var errInvalidID = errors.New("invalid id")

func (h *Handler) deleteByIntID(ctx context.Context, idParam string, del func(context.Context, int64) error) error {
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		return errInvalidID
	}
	return del(ctx, id)
}
