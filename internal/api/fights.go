package api

import (
	"net/http"

	"github.com/LachyC123/bloodline-arena-sub002/internal/arbiter"
	"github.com/LachyC123/bloodline-arena-sub002/internal/constants"
	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
	"github.com/LachyC123/bloodline-arena-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type StartFightPayload struct {
	EnemyKey string `json:"enemy_key"`
	// Seed is optional; zero lets the server pick one. Passing the seed
	// from a fight record replays that fight exactly.
	Seed int64 `json:"seed"`
}

// StartFight pits the run's active fighter against a chosen enemy and
// opens a live fight session.
func (h *ArenaHandler) StartFight(c *gin.Context) {
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
	var req StartFightPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	sess, err := service.StartFight(h.repo, h.sessions, run, service.StartFightRequest{
		EnemyKey: req.EnemyKey,
		Seed:     req.Seed,
	}, h.tun, h.actionTimeout)
	if err != nil {
		switch err {
		case service.ErrRunNotActive:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrRunNotActive})
			return
		case service.ErrFightInProgress:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrFightInProgress})
			return
		case service.ErrNoFighterFit:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrFighterNotFit})
			return
		case service.ErrEnemyNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrEnemyNotFound})
			return
		case service.ErrEnemyWrongLeague:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrEnemyWrongLeague})
			return
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStartFight})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"enemy_name": sess.EnemyName,
		"seed":       sess.Seed,
		"state":      sess.Controller.Snapshot(),
	})
}

// GetCurrentFight returns the live fight for a run so clients can resume
// after a reload.
func (h *ArenaHandler) GetCurrentFight(c *gin.Context) {
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
	sess := h.sessions.Get(run.ID)
	if sess == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrNoFightInProgress})
		return
	}

	out := gin.H{
		"enemy_name": sess.EnemyName,
		"phase":      string(sess.Controller.Phase()),
		"state":      sess.Controller.Snapshot(),
	}
	if !sess.Deadline.IsZero() {
		out["deadline"] = sess.Deadline
	}
	c.JSON(http.StatusOK, out)
}

type FightActionPayload struct {
	Action string `json:"action"`
	Zone   string `json:"zone"`
}

// FightAction plays the caller's action for the current turn. The enemy's
// answer arrives through the advance endpoint.
func (h *ArenaHandler) FightAction(c *gin.Context) {
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
	var req FightActionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	res, err := service.SubmitAction(h.sessions, run.ID, game.CombatAction(req.Action), game.TargetZone(req.Zone), h.actionTimeout)
	if err != nil {
		switch err {
		case service.ErrNoFight:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrNoFightInProgress})
			return
		case arbiter.ErrNotPlayerTurn:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotYourTurn})
			return
		case arbiter.ErrInvalidChoice:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidActionZone})
			return
		case arbiter.ErrCannotAfford:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrCannotAffordAction})
			return
		case arbiter.ErrFightOver:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrFightAlreadyOver})
			return
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
			return
		}
	}

	out := gin.H{"result": res}
	if sess := h.sessions.Get(run.ID); sess != nil {
		out["state"] = sess.Controller.Snapshot()
	}
	c.JSON(http.StatusOK, out)
}

// FightAdvance acknowledges the current resolution step. Mid-fight the
// response carries the enemy's answer; on the deciding blow it carries
// the settled outcome instead.
func (h *ArenaHandler) FightAdvance(c *gin.Context) {
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

	adv, err := service.AdvanceFight(h.repo, h.sessions, run, h.cfg, h.tun, h.actionTimeout)
	if err != nil {
		switch err {
		case service.ErrNoFight:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrNoFightInProgress})
			return
		case arbiter.ErrNotResolving:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNoResolutionToAck})
			return
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedAdvanceFight})
			return
		}
	}
	c.JSON(http.StatusOK, adv)
}

// FightForfeit throws the current fight. The enemy takes the win and the
// fight settles immediately.
func (h *ArenaHandler) FightForfeit(c *gin.Context) {
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

	outcome, err := service.ForfeitFight(h.repo, h.sessions, run, h.cfg, h.tun)
	if err != nil {
		switch err {
		case service.ErrNoFight:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrNoFightInProgress})
			return
		case arbiter.ErrFightOver:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrFightAlreadyOver})
			return
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedForfeitFight})
			return
		}
	}
	c.JSON(http.StatusOK, outcome)
}
