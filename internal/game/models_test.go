package game

import "testing"

func TestAttackOptionsByGeneCount(t *testing.T) {
	single := &Combatant{Genes: "Red"}
	opts := single.AttackOptions()
	if len(opts) != 2 || opts[0] != (AttackOption{AttackSingle, GeneRed}) || opts[1] != (AttackOption{AttackSingle, GeneNeutral}) {
		t.Fatalf("single-gene options wrong: %+v", opts)
	}

	twin := &Combatant{Genes: "Blue,Blue"}
	opts = twin.AttackOptions()
	if len(opts) != 2 || opts[0] != (AttackOption{AttackSingle, GeneBlue}) || opts[1] != (AttackOption{AttackSplash, GeneBlue}) {
		t.Fatalf("identical-gene options wrong: %+v", opts)
	}

	dual := &Combatant{Genes: "Red,Purple"}
	opts = dual.AttackOptions()
	if len(opts) != 2 || opts[0] != (AttackOption{AttackSingle, GeneRed}) || opts[1] != (AttackOption{AttackSingle, GenePurple}) {
		t.Fatalf("distinct-gene options wrong: %+v", opts)
	}
}

func TestDefenseGeneIsFirst(t *testing.T) {
	c := &Combatant{Genes: "Blue,Red"}
	if c.DefenseGene() != GeneBlue {
		t.Fatalf("defense gene must be the first gene, got %s", c.DefenseGene())
	}
}

func TestRarityOf(t *testing.T) {
	cases := []struct {
		genes string
		want  Rarity
	}{
		{"Red", RarityCommon},
		{"Green,Green", RarityUncommon},
		{"Red,Blue", RarityRare},
	}
	for _, cse := range cases {
		c := &Combatant{Genes: cse.genes}
		if got := c.Rarity(); got != cse.want {
			t.Fatalf("rarity of %s = %s, want %s", cse.genes, got, cse.want)
		}
	}
}

func TestParseGeneList(t *testing.T) {
	genes, err := ParseGeneList("red, Blue")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(genes) != 2 || genes[0] != GeneRed || genes[1] != GeneBlue {
		t.Fatalf("parsed %v", genes)
	}
	if GenesKey(genes) != "red-blue" {
		t.Fatalf("key %s", GenesKey(genes))
	}
	if _, err := ParseGeneList("Red,Blue,Green"); err == nil {
		t.Fatalf("expected error for 3 genes")
	}
	if _, err := ParseGeneList("Neutral"); err == nil {
		t.Fatalf("expected error for Neutral in a gene list")
	}
	if _, err := ParseGeneList(""); err == nil {
		t.Fatalf("expected error for empty list")
	}
}
