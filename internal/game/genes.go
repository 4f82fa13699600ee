package game

import (
	"fmt"
	"strings"
)

// Gene is one of the six elemental types forming the cyclic advantage wheel,
// plus the Neutral sentinel used only as an attack gene.
type Gene string

const (
	GeneRed    Gene = "Red"
	GeneOrange Gene = "Orange"
	GeneYellow Gene = "Yellow"
	GeneGreen  Gene = "Green"
	GeneBlue   Gene = "Blue"
	GenePurple Gene = "Purple"

	// GeneNeutral never appears in a creature's gene list; it is the
	// fallback attack gene for single-gene combatants and always deals
	// 1.0x damage.
	GeneNeutral Gene = "Neutral"
)

// Wheel is the advantage cycle: each gene is strong against the next one.
var Wheel = [6]Gene{GeneRed, GeneOrange, GeneYellow, GeneGreen, GeneBlue, GenePurple}

// WheelIndex returns the position of g on the wheel, or -1 for Neutral and
// unknown values.
func WheelIndex(g Gene) int {
	for i, w := range Wheel {
		if w == g {
			return i
		}
	}
	return -1
}

// ParseGene validates a single gene name (case-insensitive).
func ParseGene(s string) (Gene, error) {
	t := strings.TrimSpace(s)
	for _, w := range Wheel {
		if strings.EqualFold(t, string(w)) {
			return w, nil
		}
	}
	if strings.EqualFold(t, string(GeneNeutral)) {
		return GeneNeutral, nil
	}
	return "", fmt.Errorf("unknown gene %q", s)
}

// ParseGeneList parses a comma-separated, ordered gene list such as
// "Red,Blue". Order is significant: the first gene is the defensive gene.
func ParseGeneList(s string) ([]Gene, error) {
	parts := strings.Split(s, ",")
	genes := make([]Gene, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		g, err := ParseGene(p)
		if err != nil {
			return nil, err
		}
		if g == GeneNeutral {
			return nil, fmt.Errorf("gene list may not contain %s", GeneNeutral)
		}
		genes = append(genes, g)
	}
	if len(genes) < 1 || len(genes) > 2 {
		return nil, fmt.Errorf("gene list %q must contain 1 or 2 genes", s)
	}
	return genes, nil
}

// GenesKey produces a stable, order-preserving key for a gene combination
// (e.g. "red-blue"). Unlike a sorted key, "red-blue" and "blue-red" are
// distinct entries in the stat table.
func GenesKey(genes []Gene) string {
	parts := make([]string, len(genes))
	for i, g := range genes {
		parts[i] = strings.ToLower(string(g))
	}
	return strings.Join(parts, "-")
}

// JoinGenes renders an ordered gene list back into the persisted
// comma-separated form.
func JoinGenes(genes []Gene) string {
	parts := make([]string, len(genes))
	for i, g := range genes {
		parts[i] = string(g)
	}
	return strings.Join(parts, ",")
}

// Rarity classifies a creature by its gene combination. It is used only as
// an AI threat-scoring input.
type Rarity string

const (
	RarityCommon   Rarity = "common"   // one gene
	RarityUncommon Rarity = "uncommon" // two identical genes
	RarityRare     Rarity = "rare"     // two distinct genes
)

// RarityOf derives the rarity classification from an ordered gene list.
func RarityOf(genes []Gene) Rarity {
	if len(genes) < 2 {
		return RarityCommon
	}
	if genes[0] == genes[1] {
		return RarityUncommon
	}
	return RarityRare
}
