package api

import (
	"errors"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/homeland-bloc/atamne/internal/constants"
	"github.com/homeland-bloc/atamne/internal/engine"
	"github.com/homeland-bloc/atamne/internal/game"
	"github.com/homeland-bloc/atamne/internal/logging"
	"github.com/homeland-bloc/atamne/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateBattlePayload struct {
	Creatures  []string `json:"creature_names"`
	Difficulty string   `json:"difficulty"`
}

// CreateBattle builds a battle from the requested ally roster and a random
// opponent roster, persists it and returns its code.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	difficulty := strings.ToLower(strings.TrimSpace(req.Difficulty))
	if difficulty == "" {
		difficulty = h.defaultDifficulty
	}
	if !engine.ValidDifficulty(engine.Difficulty(difficulty)) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownDifficulty})
		return
	}

	battleCode := generateBattleCode()
	b, err := service.SetupBattle(h.repo, battleCode, req.Creatures, engine.Difficulty(difficulty), newRand(), h.battleTimeout)
	if err != nil {
		status, msg := battleErrorStatus(err)
		c.JSON(status, gin.H{constants.JSONKeyError: msg})
		return
	}
	logging.Info("battle created", logging.Fields{constants.LogFieldBattleCode: battleCode, constants.LogFieldDifficulty: difficulty})

	// The opening actor may already be an opponent.
	h.maybeScheduleAITurn(b)
	c.JSON(http.StatusCreated, battleView(b))
}

// GetBattle returns the battle state plus the scheduling view.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	b, ok := h.loadBattle(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, battleView(b))
}

// GetTargets lists the living opponents of the current actor.
func (h *BattleHandler) GetTargets(c *gin.Context) {
	b, ok := h.loadBattle(c)
	if !ok {
		return
	}
	orch := engine.NewOrchestrator(b)
	targets := orch.AvailableTargets()
	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, t.Name)
	}
	c.JSON(http.StatusOK, gin.H{"targets": names})
}

type SubmitTurnPayload struct {
	Kind   string `json:"kind"`
	Gene   string `json:"gene"`
	Target string `json:"target"`
}

// SubmitTurn resolves the current combatant's chosen attack. The turn stays
// held until the advance call; a concurrent submit gets a conflict.
func (h *BattleHandler) SubmitTurn(c *gin.Context) {
	code, ok := h.battleCode(c)
	if !ok {
		return
	}
	var req SubmitTurnPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	gene, err := game.ParseGene(req.Gene)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	var kind game.AttackKind
	switch strings.ToLower(strings.TrimSpace(req.Kind)) {
	case string(game.AttackSingle):
		kind = game.AttackSingle
	case string(game.AttackSplash):
		kind = game.AttackSplash
	default:
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	b, outcome, err := service.ProcessTurn(h.repo, code, game.AttackOption{Kind: kind, Gene: gene}, req.Target, h.battleTimeout)
	if err != nil {
		status, msg := battleErrorStatus(err)
		c.JSON(status, gin.H{constants.JSONKeyError: msg})
		return
	}
	if outcome.BattleEnded {
		h.tasks.Cancel(code)
		logging.Info("battle ended", logging.Fields{constants.LogFieldBattleCode: code, constants.LogFieldWinner: string(outcome.Winner), constants.LogFieldTurn: b.TurnCount})
	}
	view := battleView(b)
	view["outcome"] = outcome
	c.JSON(http.StatusOK, view)
}

// AdvanceTurn releases the held turn and moves to the next actor. When that
// actor is an opponent, an AI turn is scheduled after the thinking delay.
func (h *BattleHandler) AdvanceTurn(c *gin.Context) {
	code, ok := h.battleCode(c)
	if !ok {
		return
	}
	b, next, err := service.AdvanceTurn(h.repo, code)
	if err != nil {
		status, msg := battleErrorStatus(err)
		c.JSON(status, gin.H{constants.JSONKeyError: msg})
		return
	}
	if next != nil && next.Team == game.TeamOpponent {
		h.scheduleAITurn(code)
	}
	view := battleView(b)
	if next != nil {
		view["next"] = next.Name
	}
	c.JSON(http.StatusOK, view)
}

// AITurn runs the pending opponent turn immediately instead of waiting for
// the scheduled thinking delay.
func (h *BattleHandler) AITurn(c *gin.Context) {
	code, ok := h.battleCode(c)
	if !ok {
		return
	}
	h.tasks.Cancel(code)
	res, err := service.RunAITurn(h.repo, code, newRand(), h.battleTimeout)
	if err != nil {
		status, msg := battleErrorStatus(err)
		c.JSON(status, gin.H{constants.JSONKeyError: msg})
		return
	}
	h.maybeScheduleAITurn(res.Battle)
	view := battleView(res.Battle)
	view["outcome"] = res.Outcome
	view["decision"] = res.Decision
	c.JSON(http.StatusOK, view)
}

// EndBattle finishes a battle early as an ally forfeit.
func (h *BattleHandler) EndBattle(c *gin.Context) {
	code, ok := h.battleCode(c)
	if !ok {
		return
	}
	b, err := service.EndBattle(h.repo, code)
	if err != nil {
		status, msg := battleErrorStatus(err)
		c.JSON(status, gin.H{constants.JSONKeyError: msg})
		return
	}
	h.tasks.Cancel(code)
	c.JSON(http.StatusOK, battleView(b))
}

func (h *BattleHandler) battleCode(c *gin.Context) (string, bool) {
	code := normalizeBattleCode(c.Param("battleCode"))
	if !battleCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return "", false
	}
	return code, true
}

func (h *BattleHandler) loadBattle(c *gin.Context) (*game.Battle, bool) {
	code, ok := h.battleCode(c)
	if !ok {
		return nil, false
	}
	b, err := h.repo.FindBattleByCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return nil, false
	}
	return b, true
}

// maybeScheduleAITurn schedules an opponent turn when the current actor
// belongs to the opponent team and the battle is still running.
func (h *BattleHandler) maybeScheduleAITurn(b *game.Battle) {
	if b.Phase != game.PhaseBattle {
		return
	}
	orch := engine.NewOrchestrator(b)
	if cur := orch.Current(); cur != nil && cur.Team == game.TeamOpponent {
		h.scheduleAITurn(b.BattleCode)
	}
}

func (h *BattleHandler) scheduleAITurn(code string) {
	h.tasks.Schedule(code, h.thinkingDelay, func() {
		res, err := service.RunAITurn(h.repo, code, newRand(), h.battleTimeout)
		if err != nil {
			logging.Error("scheduled AI turn failed", err, logging.Fields{constants.LogFieldBattleCode: code})
			return
		}
		if res.Next != nil && res.Next.Team == game.TeamOpponent {
			h.scheduleAITurn(code)
		}
	})
}

// battleView is the shared response shape: the persisted battle plus the
// derived scheduling view (current actor and upcoming-turn window).
func battleView(b *game.Battle) gin.H {
	orch := engine.NewOrchestrator(b)
	queue := orch.DisplayQueue()
	names := make([]string, 0, len(queue))
	for _, q := range queue {
		names = append(names, q.Name)
	}
	view := gin.H{"battle": b, "queue": names}
	if cur := orch.Current(); cur != nil {
		view["current"] = cur.Name
	}
	return view
}

func battleErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrBattleNotFound):
		return http.StatusNotFound, constants.ErrBattleNotFound
	case errors.Is(err, service.ErrUnknownCreature):
		return http.StatusBadRequest, constants.ErrUnknownCreature
	case errors.Is(err, engine.ErrInvalidRosterSize):
		return http.StatusBadRequest, constants.ErrRosterMustBeThree
	case errors.Is(err, engine.ErrBattleEnded):
		return http.StatusConflict, constants.ErrBattleAlreadyEnded
	case errors.Is(err, engine.ErrTurnInProgress):
		return http.StatusConflict, constants.ErrTurnAlreadyInFlight
	case errors.Is(err, engine.ErrNoTurnResolved):
		return http.StatusConflict, constants.ErrNoTurnToAdvance
	case errors.Is(err, engine.ErrInvalidAttacker):
		return http.StatusConflict, constants.ErrNotCurrentAttacker
	case errors.Is(err, engine.ErrInvalidAttackOption):
		return http.StatusBadRequest, constants.ErrInvalidAttackOption
	case errors.Is(err, engine.ErrMissingTarget):
		return http.StatusBadRequest, constants.ErrTargetRequired
	case errors.Is(err, engine.ErrNoTargets):
		return http.StatusConflict, constants.ErrNoTargetsAvailable
	default:
		return http.StatusInternalServerError, constants.ErrFailedUpdateBattle
	}
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
