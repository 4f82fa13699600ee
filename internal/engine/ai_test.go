package engine

import (
	"math/rand"
	"testing"

	"github.com/homeland-bloc/atamne/internal/game"
)

func TestDecideExtremePicksLethal(t *testing.T) {
	attacker := battleCombatant("atk", game.TeamAlly, 0, "Red", 100, 120, 300)
	weak := battleCombatant("weak", game.TeamOpponent, 1, "Orange", 60, 40, 200)
	tank := battleCombatant("tank", game.TeamOpponent, 2, "Green", 400, 48, 200)
	targets := []*game.Combatant{tank, weak}

	// Extreme always takes the heuristic-best move regardless of the draw:
	// Red vs Orange deals 180 >= 60 hp, collecting the lethal bonus.
	for seed := int64(1); seed <= 25; seed++ {
		eng := NewAIDecisionEngine(DifficultyExtreme, rand.New(rand.NewSource(seed)))
		d, err := eng.Decide(attacker, targets)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !d.Heuristic {
			t.Fatalf("extreme decisions must be heuristic")
		}
		if d.Target == nil || d.Target.Name != "weak" || d.Attack.Gene != game.GeneRed {
			t.Fatalf("seed %d: expected lethal Red on weak, got %+v", seed, d)
		}
	}
}

func TestDecideEasyApproachesUniform(t *testing.T) {
	attacker := battleCombatant("atk", game.TeamAlly, 0, "Red", 100, 120, 300)
	t1 := battleCombatant("t1", game.TeamOpponent, 1, "Orange", 300, 80, 200)
	t2 := battleCombatant("t2", game.TeamOpponent, 2, "Green", 300, 80, 200)
	t3 := battleCombatant("t3", game.TeamOpponent, 3, "Blue", 300, 80, 200)
	targets := []*game.Combatant{t1, t2, t3}

	// One gene -> options Single{Red} and Single{Neutral}; with 3 targets
	// there are 6 legal (attack, target) pairs, each expected at 1/6.
	eng := NewAIDecisionEngine(DifficultyEasy, rand.New(rand.NewSource(42)))
	counts := map[string]int{}
	const trials = 6000
	for i := 0; i < trials; i++ {
		d, err := eng.Decide(attacker, targets)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Heuristic {
			t.Fatalf("easy decisions are never heuristic")
		}
		counts[string(d.Attack.Gene)+"/"+d.Target.Name]++
	}
	if len(counts) != 6 {
		t.Fatalf("expected 6 distinct pairs, got %d", len(counts))
	}
	for pair, n := range counts {
		if n < trials/6-250 || n > trials/6+250 {
			t.Fatalf("pair %s frequency %d far from uniform %d", pair, n, trials/6)
		}
	}
}

func TestDecideSplashOptionHasNilTarget(t *testing.T) {
	attacker := battleCombatant("atk", game.TeamAlly, 0, "Red,Red", 100, 120, 300)
	// Three softened same-gene opponents make the splash wipe dominant:
	// 3 kills collect 600 plus per-target damage and effectiveness bonuses.
	t1 := battleCombatant("t1", game.TeamOpponent, 1, "Orange", 50, 40, 200)
	t2 := battleCombatant("t2", game.TeamOpponent, 2, "Orange", 50, 40, 200)
	t3 := battleCombatant("t3", game.TeamOpponent, 3, "Orange", 50, 40, 200)
	t1.CurrentHitPoints, t2.CurrentHitPoints, t3.CurrentHitPoints = 50, 50, 50
	t1.MaxHitPoints, t2.MaxHitPoints, t3.MaxHitPoints = 400, 400, 400

	eng := NewAIDecisionEngine(DifficultyExtreme, rand.New(rand.NewSource(7)))
	d, err := eng.Decide(attacker, []*game.Combatant{t1, t2, t3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Attack.Kind != game.AttackSplash {
		t.Fatalf("expected splash pick, got %+v", d.Attack)
	}
	if d.Target != nil {
		t.Fatalf("splash decisions carry no target")
	}
}

func TestDecideNoTargets(t *testing.T) {
	attacker := battleCombatant("atk", game.TeamAlly, 0, "Red", 100, 120, 300)
	eng := NewAIDecisionEngine(DifficultyNormal, rand.New(rand.NewSource(1)))
	if _, err := eng.Decide(attacker, nil); err != ErrNoTargets {
		t.Fatalf("expected ErrNoTargets, got %v", err)
	}
	dead := battleCombatant("dead", game.TeamOpponent, 1, "Blue", 100, 80, 200)
	dead.CurrentHitPoints = 0
	if _, err := eng.Decide(attacker, []*game.Combatant{dead}); err != ErrNoTargets {
		t.Fatalf("expected ErrNoTargets for all-dead targets, got %v", err)
	}
}

func TestThreatScoreRarityBands(t *testing.T) {
	common := battleCombatant("c", game.TeamOpponent, 0, "Red", 100, 80, 200)
	uncommon := battleCombatant("u", game.TeamOpponent, 1, "Red,Red", 100, 80, 200)
	rare := battleCombatant("r", game.TeamOpponent, 2, "Red,Blue", 100, 80, 200)
	all := []*game.Combatant{common, uncommon, rare}
	sc := threatScore(common, all)
	su := threatScore(uncommon, all)
	sr := threatScore(rare, all)
	if su-sc != 10 || sr-su != 20 {
		t.Fatalf("rarity deltas wrong: common %v uncommon %v rare %v", sc, su, sr)
	}
}
