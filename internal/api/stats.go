package api

import (
	"net/http"
	"strconv"

	"github.com/homeland-bloc/atamne/internal/constants"
	"github.com/homeland-bloc/atamne/internal/dedupe"

	"github.com/gin-gonic/gin"
)

// GetRecentBattles lists finished battles, newest first. The limit query
// parameter caps the page size at 50.
func (h *BattleHandler) GetRecentBattles(c *gin.Context) {
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 50 {
		limit = 50
	}
	battles, err := h.repo.GetRecentBattles(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	c.JSON(http.StatusOK, battles)
}

// GetBattleStats returns win/loss/abandon aggregates. Concurrent requests
// share one query through the singleflight group.
func (h *BattleHandler) GetBattleStats(c *gin.Context) {
	v, err, _ := dedupe.StatsGroup.Do("battle-stats", func() (interface{}, error) {
		return h.repo.GetBattleStats()
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, v)
}
