package dink

import "testing"

func TestExtractDrop_LootFields(t *testing.T) {
	kc := 125
	embed := Embed{
		Title:       "💰 Loot Drop",
		Description: "Thurgo has looted:",
		Fields: []EmbedField{
			{Name: "Item", Value: "1 x [Magic fang](https://oldschool.runescape.wiki/w/Magic_fang) (2.95M)"},
			{Name: "Source", Value: "From: Zulrah"},
			{Name: "Kill Count", Value: "125 kills"},
			{Name: "Total Value", Value: "2.95M"},
			{Name: "Item Rarity", Value: "1/512"},
		},
	}

	got := ExtractDrop(embed, nil)
	if got == nil {
		t.Fatal("expected extraction, got nil")
	}
	if got.Player != "Thurgo" {
		t.Errorf("player = %q, want Thurgo", got.Player)
	}
	if got.DropType != DropTypeLoot {
		t.Errorf("drop type = %q, want %q", got.DropType, DropTypeLoot)
	}
	if len(got.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(got.Items))
	}
	if got.Items[0].Name != "Magic fang" || got.Items[0].NumericValue != 2_950_000 {
		t.Errorf("item = %+v", got.Items[0])
	}
	if got.Source != "Zulrah" {
		t.Errorf("source = %q, want Zulrah", got.Source)
	}
	if got.KillCount == nil || *got.KillCount != kc {
		t.Errorf("kill count = %v, want %d", got.KillCount, kc)
	}
	if got.TotalValue != 2_950_000 || got.RawTotal != "2.95M" {
		t.Errorf("total = %q / %v", got.RawTotal, got.TotalValue)
	}
	if got.Rarity != "1/512" {
		t.Errorf("rarity = %q", got.Rarity)
	}
}

func TestExtractDrop_CollectionLogBody(t *testing.T) {
	embed := Embed{
		Title:       "Collection Log",
		Description: "Thurgo has added [Tanzanite fang](https://oldschool.runescape.wiki/w/Tanzanite_fang) to their collection",
	}

	got := ExtractDrop(embed, nil)
	if got == nil {
		t.Fatal("expected extraction, got nil")
	}
	if got.DropType != DropTypeCollectionLog {
		t.Errorf("drop type = %q", got.DropType)
	}
	if len(got.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(got.Items))
	}
	item := got.Items[0]
	if item.Name != "Tanzanite fang" || item.Quantity != 1 || item.RawValue != ValueCollectionLog || item.NumericValue != 0 {
		t.Errorf("item = %+v", item)
	}
}

func TestExtractDrop_BodyLineFallback(t *testing.T) {
	embed := Embed{
		Title: "Loot Drop",
		Description: "Thurgo has looted:\n\n" +
			"1 x [Zulrah's scales](https://wiki/Zulrahs_scales)\n" +
			"1 x [Zulrah's scales](https://wiki/Zulrahs_scales) (100K)\n" +
			"1 x [Snakeskin](https://wiki/Snakeskin) (500)",
	}

	got := ExtractDrop(embed, nil)
	if got == nil {
		t.Fatal("expected extraction, got nil")
	}
	// The valued line replaces the earlier valueless capture of the same item.
	if len(got.Items) != 2 {
		t.Fatalf("items = %d, want 2 (%+v)", len(got.Items), got.Items)
	}
	if got.Items[0].Name != "Zulrah's scales" || got.Items[0].NumericValue != 100_000 {
		t.Errorf("item[0] = %+v, want upgraded scales", got.Items[0])
	}
	if got.Items[1].Name != "Snakeskin" || got.Items[1].NumericValue != 500 {
		t.Errorf("item[1] = %+v", got.Items[1])
	}
}

func TestExtractDrop_FieldsWinOverBody(t *testing.T) {
	embed := Embed{
		Title:       "Loot Drop",
		Description: "Thurgo has looted:\n1 x [Coins](https://wiki/Coins) (1)",
		Fields: []EmbedField{
			{Name: "Item", Value: "1 x [Dragon warhammer](https://wiki/Dragon_warhammer) (25M)"},
		},
	}

	got := ExtractDrop(embed, nil)
	if got == nil {
		t.Fatal("expected extraction, got nil")
	}
	if len(got.Items) != 1 || got.Items[0].Name != "Dragon warhammer" {
		t.Errorf("items = %+v, want the field item only", got.Items)
	}
}

func TestExtractDrop_NotADrop(t *testing.T) {
	embeds := []Embed{
		{Title: "Level Up", Description: "Thurgo has reached level 99"},
		{Title: "Loot Drop", Description: "no player sentence here"},
		{},
	}
	for _, e := range embeds {
		if got := ExtractDrop(e, nil); got != nil {
			t.Errorf("ExtractDrop(%+v) = %+v, want nil", e, got)
		}
	}
}

func TestExtractDrop_PlayerWithoutItems(t *testing.T) {
	embed := Embed{Title: "Loot Drop", Description: "Thurgo has looted:"}
	got := ExtractDrop(embed, nil)
	if got == nil {
		t.Fatal("expected extraction, got nil")
	}
	if got.Player != "Thurgo" || len(got.Items) != 0 {
		t.Errorf("got %+v", got)
	}
}

func TestExtractDeath(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		player string
		cause  string
	}{
		{
			name:   "linked npc cause",
			body:   "Zed has died... to [Zulrah](https://oldschool.runescape.wiki/w/Zulrah).",
			player: "Zed",
			cause:  "Zulrah",
		},
		{
			name:   "plain cause",
			body:   "Thurgo has died to a Revenant ork",
			player: "Thurgo",
			cause:  "a Revenant ork",
		},
		{
			name:   "no cause",
			body:   "Thurgo has died",
			player: "Thurgo",
			cause:  "Unknown",
		},
		{
			name:   "unsubstituted template token",
			body:   "Thurgo has died to %NPC%",
			player: "Thurgo",
			cause:  "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractDeath(Embed{Description: tt.body})
			if got == nil {
				t.Fatal("expected extraction, got nil")
			}
			if got.Player != tt.player {
				t.Errorf("player = %q, want %q", got.Player, tt.player)
			}
			if got.Cause != tt.cause {
				t.Errorf("cause = %q, want %q", got.Cause, tt.cause)
			}
		})
	}
}

func TestExtractDeath_NotADeath(t *testing.T) {
	if got := ExtractDeath(Embed{Description: "Thurgo has looted: 1 x Coins (5)"}); got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}
