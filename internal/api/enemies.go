package api

import (
	"net/http"
	"strings"

	"github.com/LachyC123/bloodline-arena-sub002/internal/constants"
	"github.com/LachyC123/bloodline-arena-sub002/internal/dedupe"

	"github.com/gin-gonic/gin"
)

// ListEnemies returns the enemy roster, optionally filtered to one league
// via ?league=. The roster is assembled from DB rows plus config overlays
// on every read, so concurrent reads collapse into one query.
func (h *ArenaHandler) ListEnemies(c *gin.Context) {
	league := strings.ToLower(strings.TrimSpace(c.Query("league")))
	key := "roster:all"
	if league != "" {
		key = "roster:" + league
	}
	v, err, _ := dedupe.RosterGroup.Do(key, func() (interface{}, error) {
		if league != "" {
			return h.repo.GetEnemiesByLeague(league)
		}
		return h.repo.GetEnemies()
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchEnemies})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(v)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchEnemies})
		return
	}
	c.JSON(http.StatusOK, out)
}
