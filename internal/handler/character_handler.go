package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"personaai/internal/models"
)

// CharacterCard is the public subset of the active persona shown in the
// chat sidebar.
type CharacterCard struct {
	FullName             string   `json:"fullName"`
	Age                  int      `json:"age"`
	Residence            string   `json:"residence"`
	Passion              string   `json:"passion"`
	Expertise            string   `json:"expertise"`
	ExperienceLevel      string   `json:"experienceLevel"`
	CharacterTraits      []string `json:"characterTraits"`
	ConversationStarters []string `json:"conversationStarters"`
}

// Character godoc
// @Summary      Get the active character card
// @Description  Returns display fields of the first stored persona for the chat sidebar. Requires a session but not the admin role.
// @Tags         Chat
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.Response
// @Failure      404 {object} handler.Response
// @Router       /api/character [get]
func (h *Handler) Character(c *gin.Context) {
	persona, err := h.store.GetFirstPersona(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to get persona for character card", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}
	if persona == nil {
		respondError(c, http.StatusNotFound, "No profile found")
		return
	}

	traits := []string(persona.CharacterTraits)
	if persona.CharacterTraits.Contains(models.TraitOther) && persona.OtherTrait != "" {
		traits = append(append([]string{}, traits...), persona.OtherTrait)
	}

	respondOK(c, CharacterCard{
		FullName:             persona.FullName,
		Age:                  persona.Age,
		Residence:            persona.Residence,
		Passion:              persona.Passion,
		Expertise:            persona.Expertise,
		ExperienceLevel:      persona.ExperienceLevel,
		CharacterTraits:      traits,
		ConversationStarters: persona.ConversationStarters(),
	})
}
