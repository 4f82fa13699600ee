package engine

import (
	"math/rand"

	"github.com/homeland-bloc/atamne/internal/game"
)

// Difficulty names a tier controlling how often the AI plays the
// heuristically optimal move instead of a uniformly random one.
type Difficulty string

const (
	DifficultyEasy    Difficulty = "easy"
	DifficultyNormal  Difficulty = "normal"
	DifficultyHard    Difficulty = "hard"
	DifficultyExtreme Difficulty = "extreme"
)

var smartMoveChance = map[Difficulty]float64{
	DifficultyEasy:    0.0,
	DifficultyNormal:  0.5,
	DifficultyHard:    0.8,
	DifficultyExtreme: 1.0,
}

// ValidDifficulty reports whether d names a known tier.
func ValidDifficulty(d Difficulty) bool {
	_, ok := smartMoveChance[d]
	return ok
}

// Decision is the outcome of one AI move selection. Target is nil for
// splash attacks (the target set is fixed). Heuristic records whether the
// scorer picked the move; it exists for introspection only and never feeds
// back into resolution.
type Decision struct {
	Attack    game.AttackOption `json:"attack"`
	Target    *game.Combatant   `json:"-"`
	Heuristic bool              `json:"heuristic"`
}

// AIDecisionEngine selects an attack+target pair for the current actor. It
// is stateless relative to battle data; the random source is injected so
// tests can fix outcomes while production supplies a real entropy source.
type AIDecisionEngine struct {
	difficulty Difficulty
	rng        *rand.Rand
}

// NewAIDecisionEngine creates an engine for one difficulty tier. A nil rng
// falls back to an unseeded source only through the caller; the engine
// requires one.
func NewAIDecisionEngine(difficulty Difficulty, rng *rand.Rand) *AIDecisionEngine {
	return &AIDecisionEngine{difficulty: difficulty, rng: rng}
}

// Decide chooses a move for the attacker against the available targets.
// One uniform draw below the tier's smart-move chance routes to the
// heuristic scorer; otherwise the pick is uniform over the attacker's two
// options and, for singles, uniform over targets.
func (e *AIDecisionEngine) Decide(attacker *game.Combatant, targets []*game.Combatant) (*Decision, error) {
	if attacker == nil || !attacker.Alive() {
		return nil, ErrInvalidAttacker
	}
	living := make([]*game.Combatant, 0, len(targets))
	for _, t := range targets {
		if t != nil && t.Alive() {
			living = append(living, t)
		}
	}
	if len(living) == 0 {
		return nil, ErrNoTargets
	}
	if e.rng.Float64() < smartMoveChance[e.difficulty] {
		opt, target := e.bestMove(attacker, living)
		return &Decision{Attack: opt, Target: target, Heuristic: true}, nil
	}
	options := attacker.AttackOptions()
	opt := options[e.rng.Intn(len(options))]
	var target *game.Combatant
	if opt.Kind == game.AttackSingle {
		target = living[e.rng.Intn(len(living))]
	}
	return &Decision{Attack: opt, Target: target}, nil
}

// bestMove evaluates every (option, target) pair for single attacks and
// each splash option once, keeping the maximum score. Enumeration order is
// fixed, so ties resolve deterministically toward the earliest candidate.
func (e *AIDecisionEngine) bestMove(attacker *game.Combatant, targets []*game.Combatant) (game.AttackOption, *game.Combatant) {
	var (
		bestOpt    game.AttackOption
		bestTarget *game.Combatant
		bestScore  float64
		first      = true
	)
	consider := func(opt game.AttackOption, target *game.Combatant, score float64) {
		if first || score > bestScore {
			bestOpt, bestTarget, bestScore = opt, target, score
			first = false
		}
	}
	for _, opt := range attacker.AttackOptions() {
		switch opt.Kind {
		case game.AttackSingle:
			for _, t := range targets {
				consider(opt, t, e.scoreSingle(attacker, opt.Gene, t, targets))
			}
		case game.AttackSplash:
			consider(opt, nil, e.scoreSplash(attacker, opt.Gene, targets))
		}
	}
	return bestOpt, bestTarget
}

func (e *AIDecisionEngine) scoreSingle(attacker *game.Combatant, gene game.Gene, target *game.Combatant, all []*game.Combatant) float64 {
	q := EffectivenessQuarters(gene, target.DefenseGene())
	dmg := SingleDamage(attacker.Attack, gene, target.DefenseGene())
	score := float64(dmg)

	// Lethal now beats everything else.
	if dmg >= target.CurrentHitPoints {
		score += 500
	}
	// Softened target: finishable next turn.
	if 2*target.CurrentHitPoints <= 3*attacker.Attack {
		score += 100
	}
	switch {
	case q >= quartersModerateAdvantage:
		score += 50 * float64(q) / 4.0
	case q <= quartersModerateDisadvantage:
		score -= 25
	}
	score += threatScore(target, all)
	if 2*target.CurrentHitPoints < target.MaxHitPoints && 10*target.Attack > 8*attacker.Attack {
		score += 75
	}
	return score
}

func (e *AIDecisionEngine) scoreSplash(attacker *game.Combatant, gene game.Gene, targets []*game.Combatant) float64 {
	score := 0.0
	for _, t := range targets {
		q := EffectivenessQuarters(gene, t.DefenseGene())
		dmg := SplashDamage(attacker.Attack, gene, t.DefenseGene())
		score += float64(dmg)
		if dmg >= t.CurrentHitPoints {
			score += 200
		}
		if q >= quartersModerateAdvantage {
			score += 50 * float64(q) / 4.0
		}
	}
	return score
}

// threatScore weighs how dangerous a target is relative to the whole
// opposing lineup: raw stats, above-average attack, current health band and
// rarity.
func threatScore(target *game.Combatant, all []*game.Combatant) float64 {
	score := 0.3*float64(target.Attack) + 0.2*float64(target.Speed)
	if len(all) > 0 {
		sum := 0
		for _, t := range all {
			sum += t.Attack
		}
		if float64(target.Attack) > float64(sum)/float64(len(all)) {
			score += 50
		}
	}
	switch {
	case 4*target.CurrentHitPoints > 3*target.MaxHitPoints:
		score += 30
	case 4*target.CurrentHitPoints < target.MaxHitPoints:
		score -= 20
	}
	switch target.Rarity() {
	case game.RarityRare:
		score += 40
	case game.RarityUncommon:
		score += 20
	default:
		score += 10
	}
	return score
}
