package api

import (
	"net/http"

	"github.com/homeland-bloc/atamne/internal/constants"

	"github.com/gin-gonic/gin"
)

// GetCreatures returns all roster templates with their config-defined stats.
func (h *BattleHandler) GetCreatures(c *gin.Context) {
	creatures, err := h.repo.GetCreatures()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCreatures})
		return
	}
	c.JSON(http.StatusOK, creatures)
}
