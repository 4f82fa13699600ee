package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/homeland-bloc/atamne/internal/game"
)

type creatureEntry struct {
	Name      string   `json:"name"`
	Genes     []string `json:"genes"`
	HitPoints int      `json:"hit_points"`
	Attack    int      `json:"attack"`
	Speed     int      `json:"speed"`
	Unlocked  bool     `json:"unlocked"`
}

type rawConfig struct {
	CreatureList []creatureEntry `json:"creature_list"`
	Server       *struct {
		Address string `json:"address"`
	} `json:"server"`
	AI *struct {
		// Default difficulty when a battle request omits one.
		Difficulty string `json:"difficulty"`
		// Delay before a scheduled AI turn fires, in milliseconds.
		ThinkingDelayMS int `json:"thinking_delay_ms"`
	} `json:"ai"`
	// Battles idle in a held turn past this many seconds are abandoned by
	// the inactivity scanner.
	BattleTimeoutSeconds int `json:"battle_timeout_seconds"`
}

// LoadedConfig contains the creature stat table to seed and the server
// runtime settings.
type LoadedConfig struct {
	Creatures         []game.Creature
	ServerAddress     string
	DefaultDifficulty string
	ThinkingDelay     time.Duration
	BattleTimeout     time.Duration
}

// LoadConfig reads the configuration file at path. It requires the key
// `creature_list` (snake_case). Each entry names a creature and its ordered
// gene combination; order is significant ("Red,Blue" and "Blue,Red" are
// distinct templates).
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	entries := rc.CreatureList
	if len(entries) == 0 {
		return nil, fmt.Errorf("config file %s: creature_list is empty (provide a 'creature_list' array)", path)
	}

	out := make([]game.Creature, 0, len(entries))
	nameSet := make(map[string]struct{}, len(entries))
	comboSet := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("config file %s: creature entry missing 'name'", path)
		}
		genes := make([]game.Gene, 0, len(e.Genes))
		for _, gs := range e.Genes {
			g, err := game.ParseGene(gs)
			if err != nil {
				return nil, fmt.Errorf("config file %s: creature '%s': %w", path, e.Name, err)
			}
			if g == game.GeneNeutral {
				return nil, fmt.Errorf("config file %s: creature '%s' may not carry the Neutral gene", path, e.Name)
			}
			genes = append(genes, g)
		}
		if len(genes) < 1 || len(genes) > 2 {
			return nil, fmt.Errorf("config file %s: creature '%s' must have 1 or 2 genes", path, e.Name)
		}
		if e.HitPoints <= 0 || e.Speed <= 0 {
			return nil, fmt.Errorf("config file %s: creature '%s' needs positive hit_points and speed", path, e.Name)
		}
		// Attack must divide by 8 so both single (x/4 multipliers) and
		// splash (half again) damage stay exact integers.
		if e.Attack <= 0 || e.Attack%8 != 0 {
			return nil, fmt.Errorf("config file %s: creature '%s' attack must be a positive multiple of 8", path, e.Name)
		}

		ln := strings.ToLower(strings.TrimSpace(e.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate creature name '%s'", path, e.Name)
		}
		nameSet[ln] = struct{}{}
		key := game.GenesKey(genes)
		if _, exists := comboSet[key]; exists {
			return nil, fmt.Errorf("config file %s: duplicate gene combination '%s'", path, key)
		}
		comboSet[key] = struct{}{}

		out = append(out, game.Creature{
			Name:      e.Name,
			Genes:     game.JoinGenes(genes),
			HitPoints: e.HitPoints,
			Attack:    e.Attack,
			Speed:     e.Speed,
			Unlocked:  e.Unlocked,
		})
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	difficulty := "normal"
	thinking := 1200 * time.Millisecond
	if rc.AI != nil {
		if rc.AI.Difficulty != "" {
			difficulty = strings.ToLower(rc.AI.Difficulty)
		}
		if rc.AI.ThinkingDelayMS > 0 {
			thinking = time.Duration(rc.AI.ThinkingDelayMS) * time.Millisecond
		}
	}
	timeout := 10 * time.Minute
	if rc.BattleTimeoutSeconds > 0 {
		timeout = time.Duration(rc.BattleTimeoutSeconds) * time.Second
	}

	return &LoadedConfig{
		Creatures:         out,
		ServerAddress:     addr,
		DefaultDifficulty: difficulty,
		ThinkingDelay:     thinking,
		BattleTimeout:     timeout,
	}, nil
}
