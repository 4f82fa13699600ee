package game

import (
	"time"

	"gorm.io/gorm"
)

// Creature is a persistent roster template identified by its ordered gene
// combination. Base stats are configured via the server config
// (atamne_config.json) and should NOT be persisted in the database. Mark
// them with `gorm:"-"` so GORM ignores them for schema/migration purposes
// while keeping the fields available in-memory and in JSON responses.
type Creature struct {
	gorm.Model
	Name string `json:"name"`
	// Genes is the ordered, comma-separated gene combination (e.g.
	// "Red,Blue"). Order matters: "Red,Blue" and "Blue,Red" are distinct
	// templates with distinct stats.
	Genes     string `json:"genes" gorm:"uniqueIndex"`
	HitPoints int    `json:"hp" gorm:"-"`
	Attack    int    `json:"atk" gorm:"-"`
	Speed     int    `json:"spd" gorm:"-"`
	// Unlocked is owned by the breeding subsystem; the battle core only
	// ever reads it when building the opposing roster.
	Unlocked bool `json:"unlocked"`
}

// TableName overrides the default GORM table name so the persisted table is
// `creature_templates`.
func (Creature) TableName() string { return "creature_templates" }

// GeneList returns the ordered genes of the template. Invalid stored values
// yield an empty list; templates are validated at config load time.
func (c *Creature) GeneList() []Gene {
	genes, err := ParseGeneList(c.Genes)
	if err != nil {
		return nil
	}
	return genes
}

// Team identifies which side of the battle a combatant fights on.
type Team string

const (
	TeamAlly     Team = "ally"
	TeamOpponent Team = "opponent"
)

// Opposing returns the other side.
func (t Team) Opposing() Team {
	if t == TeamAlly {
		return TeamOpponent
	}
	return TeamAlly
}

// BattlePhase is the battle lifecycle state machine: Setup -> Battle ->
// Ended (terminal).
type BattlePhase string

const (
	PhaseSetup  BattlePhase = "setup"
	PhaseBattle BattlePhase = "battle"
	PhaseEnded  BattlePhase = "ended"
)

// AttackKind tags the two attack shapes. Resolution logic switches
// exhaustively on the kind instead of comparing ad hoc strings elsewhere.
type AttackKind string

const (
	AttackSingle AttackKind = "single"
	AttackSplash AttackKind = "splash"
)

// AttackOption is a tagged variant: Single{gene} or Splash{gene}.
type AttackOption struct {
	Kind AttackKind `json:"kind"`
	Gene Gene       `json:"gene"`
}

// Combatant is the battle-scoped instance of a creature template. It is
// created by cloning the persistent record at battle setup, so HP mutations
// never leak back to the roster. The row persists in the battle's team list
// after defeat for display and history purposes; only scheduling drops it.
type Combatant struct {
	gorm.Model
	BattleID uint `json:"-"`
	// Name is the battle identity: template name plus a team-unique
	// suffix when duplicates occur (e.g. "Emberling#2").
	Name     string `json:"name"`
	Template string `json:"template"`
	// Genes is the ordered gene list; the first gene is authoritative for
	// defense even on two-gene combatants.
	Genes            string `json:"genes"`
	MaxHitPoints     int    `json:"max_hp"`
	CurrentHitPoints int    `json:"current_hp"`
	Attack           int    `json:"atk"`
	Speed            int    `json:"spd"`
	Team             Team   `json:"team"`
	// SlotIndex is the original team-list insertion order. It is the final
	// turn-order tie-breaker and is unique per battle.
	SlotIndex int `json:"slot_index"`
	// ActionValue is the accumulated action-bar value. It is owned
	// exclusively by the turn scheduler; it is persisted so a reloaded
	// battle resumes with an identical upcoming-turn buffer.
	ActionValue int `json:"action_value"`
}

// Alive reports whether the combatant can still act.
func (c *Combatant) Alive() bool { return c.CurrentHitPoints > 0 }

// GeneList returns the combatant's ordered genes.
func (c *Combatant) GeneList() []Gene {
	genes, err := ParseGeneList(c.Genes)
	if err != nil {
		return nil
	}
	return genes
}

// DefenseGene is the gene used for every incoming effectiveness lookup:
// always the first gene, even for two-gene combatants.
func (c *Combatant) DefenseGene() Gene {
	genes := c.GeneList()
	if len(genes) == 0 {
		return GeneNeutral
	}
	return genes[0]
}

// Rarity classifies the combatant for AI threat scoring.
func (c *Combatant) Rarity() Rarity { return RarityOf(c.GeneList()) }

// AttackOptions returns the exactly-two options derived from the gene list:
//   - 1 gene            -> Single{gene}, Single{Neutral}
//   - 2 identical genes -> Single{gene}, Splash{gene}
//   - 2 distinct genes  -> Single{gene1}, Single{gene2}
func (c *Combatant) AttackOptions() []AttackOption {
	genes := c.GeneList()
	switch {
	case len(genes) == 1:
		return []AttackOption{
			{Kind: AttackSingle, Gene: genes[0]},
			{Kind: AttackSingle, Gene: GeneNeutral},
		}
	case len(genes) == 2 && genes[0] == genes[1]:
		return []AttackOption{
			{Kind: AttackSingle, Gene: genes[0]},
			{Kind: AttackSplash, Gene: genes[0]},
		}
	case len(genes) == 2:
		return []AttackOption{
			{Kind: AttackSingle, Gene: genes[0]},
			{Kind: AttackSingle, Gene: genes[1]},
		}
	}
	return nil
}

// Battle is a persisted battle session between the ally and opponent teams.
type Battle struct {
	gorm.Model
	BattleCode string      `json:"battle_code" gorm:"unique"`
	Phase      BattlePhase `json:"phase"`
	// Winner is set exactly when one team's living-member count reaches 0.
	Winner     Team        `json:"winner"`
	Difficulty string      `json:"difficulty"`
	Combatants []Combatant `json:"combatants"`
	// TurnInProgress is the mutual-exclusion flag: set when a turn is
	// resolved, cleared when the scheduler advances. A second resolution
	// attempt while it is held is rejected, not queued.
	TurnInProgress  bool   `json:"turn_in_progress"`
	TurnCount       int    `json:"turn_count"`
	Message         string `json:"message"`
	LastTurnSummary string `json:"last_turn_summary"`
	// ActionDeadline drives the inactivity scanner; battles idle past it
	// are marked ended with no winner.
	ActionDeadline time.Time `json:"-"`
}

// TeamMembers returns pointers into the battle's combatant list for one
// side, in insertion order. Defeated members are included.
func (b *Battle) TeamMembers(t Team) []*Combatant {
	out := make([]*Combatant, 0, 3)
	for i := range b.Combatants {
		if b.Combatants[i].Team == t {
			out = append(out, &b.Combatants[i])
		}
	}
	return out
}

// LivingMembers returns the living members of one side, in insertion order.
func (b *Battle) LivingMembers(t Team) []*Combatant {
	out := make([]*Combatant, 0, 3)
	for i := range b.Combatants {
		if b.Combatants[i].Team == t && b.Combatants[i].Alive() {
			out = append(out, &b.Combatants[i])
		}
	}
	return out
}
