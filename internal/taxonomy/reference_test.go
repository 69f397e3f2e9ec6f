package taxonomy

import (
	"testing"

	"github.com/gbabineau/statelist/internal/domain"
)

func fakeTaxa() []domain.Taxon {
	return []domain.Taxon{
		{CommonName: "Desertas Petrel", SciName: "Pterodroma deserta", SpeciesCode: "despet1", Order: "Procellariiformes", Family: "Shearwaters and Petrels", TaxonOrder: 410, Category: domain.CategorySpecies},
		{CommonName: "Brant", SciName: "Branta bernicla", SpeciesCode: "brant", Order: "Anseriformes", Family: "Ducks, Geese, and Waterfowl", TaxonOrder: 100, Category: domain.CategorySpecies},
		{CommonName: "Yellow-rumped Warbler", SciName: "Setophaga coronata", SpeciesCode: "yerwar", Order: "Passeriformes", Family: "Wood-Warblers", TaxonOrder: 900, Category: domain.CategorySpecies},
		// 同名两条：用于歧义路径（参考自身的歧义，非输入问题）。
		{CommonName: "Common Teal", SciName: "Anas crecca crecca", SpeciesCode: "comtea1", TaxonOrder: 210, Category: domain.CategoryISSF},
		{CommonName: "Common Teal", SciName: "Anas crecca", SpeciesCode: "comtea", TaxonOrder: 200, Category: domain.CategorySpecies},
	}
}

func TestReference_LookupExact(t *testing.T) {
	ref := NewReference(fakeTaxa())

	got := ref.Lookup("Brant")
	if len(got) != 1 {
		t.Fatalf("期望 1 个候选，实际 %d", len(got))
	}
	if got[0].SpeciesCode != "brant" {
		t.Fatalf("期望 speciesCode=brant，实际=%q", got[0].SpeciesCode)
	}

	// 首尾空白不影响查询。
	if len(ref.Lookup("  Brant ")) != 1 {
		t.Fatalf("期望空白被规范化")
	}
	if len(ref.Lookup("Nonsense Bird")) != 0 {
		t.Fatalf("期望无候选")
	}
}

func TestReference_LookupAmbiguousOrderedByTaxonOrder(t *testing.T) {
	ref := NewReference(fakeTaxa())

	got := ref.Lookup("Common Teal")
	if len(got) != 2 {
		t.Fatalf("期望 2 个候选，实际 %d", len(got))
	}
	// 候选必须按 TaxonOrder 升序：裁决“首个候选获胜”依赖该顺序。
	if got[0].SpeciesCode != "comtea" || got[1].SpeciesCode != "comtea1" {
		t.Fatalf("候选顺序不符合契约：%q, %q", got[0].SpeciesCode, got[1].SpeciesCode)
	}
}

func TestReference_LookupBase(t *testing.T) {
	ref := NewReference(fakeTaxa())

	got, ok := ref.LookupBase("Yellow-rumped Warbler (Myrtle)")
	if !ok {
		t.Fatalf("期望前缀回退命中，但 ok=false")
	}
	if got.SpeciesCode != "yerwar" {
		t.Fatalf("期望 speciesCode=yerwar，实际=%q", got.SpeciesCode)
	}

	if _, ok := ref.LookupBase("Zzyzx Bird"); ok {
		t.Fatalf("不期望命中")
	}
}

func TestBaseName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Yellow-rumped Warbler (Myrtle)", "Yellow-rumped Warbler"},
		{"Fea's Petrel", "Fea"},
		{"Brant", "Brant"},
		{"  Brant  ", "Brant"},
		{"(4)", ""},
	}
	for _, c := range cases {
		if got := BaseName(c.in); got != c.want {
			t.Fatalf("BaseName(%q)：期望 %q，实际 %q", c.in, c.want, got)
		}
	}
}
