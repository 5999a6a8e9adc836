package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/LachyC123/bloodline-arena-sub002/internal/constants"
	"github.com/LachyC123/bloodline-arena-sub002/internal/rng"
	"github.com/LachyC123/bloodline-arena-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateRunPayload struct {
	FighterName string `json:"fighter_name"`
}

// CreateRun starts a new career for the authenticated player and returns
// its code plus the first fighter's name.
func (h *ArenaHandler) CreateRun(c *gin.Context) {
	var req CreateRunPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	userEmail, _ := c.Get("userEmail")
	emailStr, _ := userEmail.(string)
	if emailStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	userName, _ := c.Get("userName")
	nameStr, _ := userName.(string)

	// rng.RNG is not safe for concurrent use, so each request gets its
	// own wall-clock stream. Fights seed their own streams separately.
	r := rng.New(time.Now().UnixNano())
	run, err := service.CreateRun(h.repo, service.CreateRunRequest{
		Email:       emailStr,
		OwnerName:   nameStr,
		FighterName: req.FighterName,
	}, r, h.tun, h.cfg)
	if err != nil {
		switch err {
		case service.ErrRunAlreadyActive:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrRunAlreadyActive})
			return
		case service.ErrInvalidFighterName:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrFighterNameInvalid})
			return
		case service.ErrMissingOwner:
			c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateRun})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"run_id":       run.ID,
		"run_code":     run.Code,
		"fighter_name": run.Fighters[0].Name,
	})
}

// GetRun returns a run by its share code, fighters included.
func (h *ArenaHandler) GetRun(c *gin.Context) {
	code := normalizeRunCode(c.Param("runCode"))
	if code == "" || !runCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRunCode})
		return
	}
	run, err := h.repo.FindRunByCode(code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRuns})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRunNotFound})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(run)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeRun})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetActiveRun returns the caller's active run, or 404 when every run is
// finished. Clients call this on login to resume a career.
func (h *ArenaHandler) GetActiveRun(c *gin.Context) {
	userEmail, _ := c.Get("userEmail")
	emailStr, _ := userEmail.(string)
	if emailStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	run, err := h.repo.FindActiveRunByOwner(emailStr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRuns})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRunNotFound})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(run)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeRun})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListPublicRuns returns recent runs for the spectator lobby, newest
// first, limited to 20 by default.
func (h *ArenaHandler) ListPublicRuns(c *gin.Context) {
	// optional ?limit=N
	limit := 20
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	runs, err := h.repo.GetPublicRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRuns})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(runs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeRuns})
		return
	}
	c.JSON(http.StatusOK, out)
}

// RetireRun ends the caller's run voluntarily, banking its renown.
func (h *ArenaHandler) RetireRun(c *gin.Context) {
	code := normalizeRunCode(c.Param("runCode"))
	if code == "" || !runCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRunCode})
		return
	}
	run, err := h.repo.FindRunByCode(code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRuns})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRunNotFound})
		return
	}
	userEmail, _ := c.Get("userEmail")
	emailStr, _ := userEmail.(string)
	if emailStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	if run.OwnerEmail != emailStr {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotRunOwner})
		return
	}

	if err := service.RetireRun(h.repo, h.sessions, run); err != nil {
		switch err {
		case service.ErrRunNotActive:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrRunNotActive})
			return
		case service.ErrFightInProgress:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrFightInProgress})
			return
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRetireRun})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: run.Message, "renown": run.Renown})
}

// ListFightRecords returns a run's full fight history, newest first.
func (h *ArenaHandler) ListFightRecords(c *gin.Context) {
	code := normalizeRunCode(c.Param("runCode"))
	if code == "" || !runCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRunCode})
		return
	}
	run, err := h.repo.FindRunByCode(code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRuns})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRunNotFound})
		return
	}
	records, err := h.repo.GetFightRecords(run.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRecords})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRecords})
		return
	}
	c.JSON(http.StatusOK, out)
}
