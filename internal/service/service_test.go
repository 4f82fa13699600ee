package service

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/homeland-bloc/atamne/internal/engine"
	"github.com/homeland-bloc/atamne/internal/game"
)

type mockRepo struct {
	creatures []game.Creature
	battle    *game.Battle
	updates   int
}

func (m *mockRepo) GetCreaturesByNames(names []string) ([]game.Creature, error) {
	out := make([]game.Creature, 0, len(names))
	for _, n := range names {
		found := false
		for _, c := range m.creatures {
			if strings.EqualFold(c.Name, n) {
				out = append(out, c)
				found = true
				break
			}
		}
		if !found {
			return nil, ErrUnknownCreature
		}
	}
	return out, nil
}

func (m *mockRepo) GetUnlockedCreatures() ([]game.Creature, error) {
	out := make([]game.Creature, 0, len(m.creatures))
	for _, c := range m.creatures {
		if c.Unlocked {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockRepo) CreateBattle(b *game.Battle) error { m.battle = b; return nil }

func (m *mockRepo) FindBattleByCode(code string) (*game.Battle, error) {
	if m.battle == nil || m.battle.BattleCode != code {
		return nil, ErrBattleNotFound
	}
	return m.battle, nil
}

func (m *mockRepo) UpdateBattle(b *game.Battle) error { m.battle = b; m.updates++; return nil }

func serviceTestRepo() *mockRepo {
	return &mockRepo{creatures: []game.Creature{
		{Name: "Emberling", Genes: "Red", HitPoints: 240, Attack: 120, Speed: 400, Unlocked: true},
		{Name: "Tidecaller", Genes: "Blue", HitPoints: 280, Attack: 96, Speed: 320, Unlocked: true},
		{Name: "Verdant", Genes: "Green", HitPoints: 320, Attack: 88, Speed: 280, Unlocked: true},
		{Name: "Duskwing", Genes: "Purple", HitPoints: 260, Attack: 104, Speed: 360, Unlocked: false},
	}}
}

func TestSetupBattlePersistsRosters(t *testing.T) {
	mr := serviceTestRepo()
	rng := rand.New(rand.NewSource(7))
	b, err := SetupBattle(mr, "ABCD1234", []string{"Emberling", "Tidecaller", "Verdant"}, engine.DifficultyNormal, rng, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mr.battle == nil {
		t.Fatalf("expected battle to be persisted")
	}
	if len(b.Combatants) != 6 {
		t.Fatalf("expected 6 combatants, got %d", len(b.Combatants))
	}
	if b.Phase != game.PhaseBattle {
		t.Fatalf("expected battle phase, got %v", b.Phase)
	}
	for _, c := range b.TeamMembers(game.TeamOpponent) {
		if c.Template == "Duskwing" {
			t.Fatalf("locked template drafted into opponent roster")
		}
	}
	if b.ActionDeadline.IsZero() {
		t.Fatalf("expected an action deadline on a fresh battle")
	}
}

func TestSetupBattleRejectsBadRosters(t *testing.T) {
	mr := serviceTestRepo()
	rng := rand.New(rand.NewSource(7))
	if _, err := SetupBattle(mr, "ABCD1234", []string{"Emberling"}, engine.DifficultyNormal, rng, time.Minute); err != engine.ErrInvalidRosterSize {
		t.Fatalf("expected ErrInvalidRosterSize, got %v", err)
	}
	if _, err := SetupBattle(mr, "ABCD1234", []string{"Emberling", "Tidecaller", "Ghost"}, engine.DifficultyNormal, rng, time.Minute); err != ErrUnknownCreature {
		t.Fatalf("expected ErrUnknownCreature, got %v", err)
	}
}

func TestProcessTurnHoldsAndAdvanceReleases(t *testing.T) {
	mr := serviceTestRepo()
	rng := rand.New(rand.NewSource(11))
	b, err := SetupBattle(mr, "TURNHOLD", []string{"Emberling", "Tidecaller", "Verdant"}, engine.DifficultyNormal, rng, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	orch := engine.NewOrchestrator(b)
	cur := orch.Current()
	opt := cur.AttackOptions()[0]
	target := orch.AvailableTargets()[0]

	updated, outcome, err := ProcessTurn(mr, "TURNHOLD", opt, target.Name, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Result == nil || len(outcome.Result.Hits) != 1 {
		t.Fatalf("expected one hit, got %+v", outcome.Result)
	}
	if !updated.TurnInProgress {
		t.Fatalf("expected turn to stay held until advance")
	}
	if _, _, err := ProcessTurn(mr, "TURNHOLD", opt, target.Name, time.Minute); err != engine.ErrTurnInProgress {
		t.Fatalf("expected ErrTurnInProgress, got %v", err)
	}
	after, next, err := AdvanceTurn(mr, "TURNHOLD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after.TurnInProgress {
		t.Fatalf("expected advance to release the turn")
	}
	if next == nil {
		t.Fatalf("expected a next actor")
	}
	if _, _, err := AdvanceTurn(mr, "TURNHOLD"); err != engine.ErrNoTurnResolved {
		t.Fatalf("expected ErrNoTurnResolved on advance without a resolved turn, got %v", err)
	}
}

func TestProcessTurnUnknownBattle(t *testing.T) {
	mr := serviceTestRepo()
	if _, _, err := ProcessTurn(mr, "NOPE", game.AttackOption{Kind: game.AttackSingle, Gene: game.GeneRed}, "x", time.Minute); err != ErrBattleNotFound {
		t.Fatalf("expected ErrBattleNotFound, got %v", err)
	}
}

func TestRunAITurnOnlyActsForOpponent(t *testing.T) {
	mr := serviceTestRepo()
	rng := rand.New(rand.NewSource(3))
	b, err := SetupBattle(mr, "AITURN01", []string{"Emberling", "Tidecaller", "Verdant"}, engine.DifficultyExtreme, rng, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	orch := engine.NewOrchestrator(b)
	for orch.Current() != nil && orch.Current().Team == game.TeamAlly {
		cur := orch.Current()
		opt := cur.AttackOptions()[0]
		if _, err := orch.ProcessTurn(opt, orch.AvailableTargets()[0].Name); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, _, err := orch.AdvanceTurn(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := mr.UpdateBattle(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := RunAITurn(mr, "AITURN01", rng, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Decision == nil || res.Outcome == nil {
		t.Fatalf("expected a decision and an outcome, got %+v", res)
	}
	if !res.Outcome.BattleEnded && res.Next == nil {
		t.Fatalf("expected the AI turn to advance to a next actor")
	}
	if mr.battle.TurnInProgress {
		t.Fatalf("expected the AI turn to release the turn flag")
	}
}

func TestRunAITurnRejectsAllyActor(t *testing.T) {
	mr := serviceTestRepo()
	rng := rand.New(rand.NewSource(5))
	b, err := SetupBattle(mr, "AITURN02", []string{"Emberling", "Tidecaller", "Verdant"}, engine.DifficultyNormal, rng, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	orch := engine.NewOrchestrator(b)
	if orch.Current().Team != game.TeamAlly {
		t.Skip("opening actor is not an ally with this roster")
	}
	if _, err := RunAITurn(mr, "AITURN02", rng, time.Minute); err != engine.ErrInvalidAttacker {
		t.Fatalf("expected ErrInvalidAttacker, got %v", err)
	}
}

func TestHandleTimedOutBattle(t *testing.T) {
	mr := serviceTestRepo()
	b := &game.Battle{BattleCode: "TIMEOUT1", Phase: game.PhaseBattle, TurnInProgress: true, ActionDeadline: time.Now().Add(-time.Minute)}
	mr.battle = b
	if err := HandleTimedOutBattle(mr, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mr.battle.Phase != game.PhaseEnded {
		t.Fatalf("expected ended phase, got %v", mr.battle.Phase)
	}
	if mr.battle.Winner != "" {
		t.Fatalf("expected no winner, got %v", mr.battle.Winner)
	}
	if mr.battle.TurnInProgress {
		t.Fatalf("expected turn flag cleared")
	}
	// Already ended battles are left alone.
	updates := mr.updates
	if err := HandleTimedOutBattle(mr, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mr.updates != updates {
		t.Fatalf("expected no update for an ended battle")
	}
}

func TestHandleTimedOutBattleStaleSnapshot(t *testing.T) {
	mr := serviceTestRepo()
	// The stored battle had its deadline refreshed after the scanner took
	// its snapshot; the stale snapshot must not expire it.
	mr.battle = &game.Battle{BattleCode: "TIMEOUT2", Phase: game.PhaseBattle, ActionDeadline: time.Now().Add(time.Minute)}
	stale := &game.Battle{BattleCode: "TIMEOUT2", Phase: game.PhaseBattle, ActionDeadline: time.Now().Add(-time.Minute)}
	if err := HandleTimedOutBattle(mr, stale); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mr.battle.Phase != game.PhaseBattle {
		t.Fatalf("refreshed battle expired from a stale snapshot")
	}
	if mr.updates != 0 {
		t.Fatalf("expected no update for a refreshed battle")
	}
}

func TestEndBattleForfeits(t *testing.T) {
	mr := serviceTestRepo()
	rng := rand.New(rand.NewSource(9))
	if _, err := SetupBattle(mr, "FORFEIT1", []string{"Emberling", "Tidecaller", "Verdant"}, engine.DifficultyNormal, rng, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := EndBattle(mr, "FORFEIT1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Phase != game.PhaseEnded || b.Winner != game.TeamOpponent {
		t.Fatalf("expected opponent victory by forfeit, got phase=%v winner=%v", b.Phase, b.Winner)
	}
	if _, err := EndBattle(mr, "FORFEIT1"); err != engine.ErrBattleEnded {
		t.Fatalf("expected ErrBattleEnded, got %v", err)
	}
}

func TestTaskRegistryReplacesAndCancels(t *testing.T) {
	reg := NewTaskRegistry()
	fired := make(chan string, 2)
	reg.Schedule("B1", 20*time.Millisecond, func() { fired <- "first" })
	reg.Schedule("B1", 20*time.Millisecond, func() { fired <- "second" })
	select {
	case got := <-fired:
		if got != "second" {
			t.Fatalf("expected the replacement task to fire, got %q", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("scheduled task never fired")
	}
	select {
	case got := <-fired:
		t.Fatalf("replaced task fired anyway: %q", got)
	case <-time.After(60 * time.Millisecond):
	}

	reg.Schedule("B2", 20*time.Millisecond, func() { fired <- "cancelled" })
	reg.Cancel("B2")
	select {
	case got := <-fired:
		t.Fatalf("cancelled task fired anyway: %q", got)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestTaskRegistryRescheduleAfterFire(t *testing.T) {
	reg := NewTaskRegistry()
	fired := make(chan string, 2)
	reg.Schedule("B3", 10*time.Millisecond, func() { fired <- "first" })
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatalf("first task never fired")
	}
	// A task scheduled for the same battle after the previous one fired must
	// survive the fired timer's cleanup.
	reg.Schedule("B3", 10*time.Millisecond, func() { fired <- "second" })
	select {
	case got := <-fired:
		if got != "second" {
			t.Fatalf("expected the rescheduled task, got %q", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("rescheduled task never fired")
	}
}
