package bingo

import "testing"

func event(player, item string) ItemEvent {
	return ItemEvent{Player: player, Name: item, Quantity: 1}
}

func TestApplyItemEvent_SimpleTile(t *testing.T) {
	board := NewBoard(3)
	board.Tiles[4].Items = []string{"Dragon warhammer"}
	board.Tiles[4].Value = 25

	completed, changed := ApplyItemEvent(board, event("Thurgo", "Dragon warhammer"))
	if !changed {
		t.Fatal("expected board change")
	}
	if len(completed) != 1 {
		t.Fatalf("completions = %d, want 1", len(completed))
	}
	if completed[0].Tile != 5 {
		t.Errorf("tile = %d, want 5 (1-based)", completed[0].Tile)
	}
	if completed[0].Value != 25 {
		t.Errorf("value = %d, want 25", completed[0].Value)
	}
	if !containsString(board.Tiles[4].CompletedBy, "Thurgo") {
		t.Error("player missing from completedBy")
	}
}

func TestApplyItemEvent_Idempotent(t *testing.T) {
	board := NewBoard(3)
	board.Tiles[0].Items = []string{"Magic fang"}

	ApplyItemEvent(board, event("Thurgo", "Magic fang"))
	completed, changed := ApplyItemEvent(board, event("Thurgo", "Magic fang"))
	if changed {
		t.Error("replay changed the board")
	}
	if len(completed) != 0 {
		t.Errorf("replay completed %d tiles, want 0", len(completed))
	}
	if got := len(board.Tiles[0].CompletedBy); got != 1 {
		t.Errorf("completedBy has %d entries, want 1", got)
	}
}

func TestApplyItemEvent_MultipleTilesOneEvent(t *testing.T) {
	board := NewBoard(3)
	board.Tiles[1].Items = []string{"Rune platebody"}
	board.Tiles[7].Items = []string{"Rune platebody"}

	completed, _ := ApplyItemEvent(board, event("Thurgo", "Rune platebody"))
	if len(completed) != 2 {
		t.Fatalf("completions = %d, want 2", len(completed))
	}
	// Board order is preserved.
	if completed[0].Tile != 2 || completed[1].Tile != 8 {
		t.Errorf("tiles = %d, %d, want 2, 8", completed[0].Tile, completed[1].Tile)
	}
}

func TestApplyItemEvent_SubstringMatching(t *testing.T) {
	board := NewBoard(3)
	board.Tiles[0].Items = []string{"Bow"}

	// Loose matching: "Bow" on the tile matches any item containing it.
	completed, _ := ApplyItemEvent(board, event("Thurgo", "Magic shortbow"))
	if len(completed) != 1 {
		t.Errorf("completions = %d, want 1 (substring rule)", len(completed))
	}

	completed, _ = ApplyItemEvent(board, event("Zed", "Rainbow"))
	if len(completed) != 1 {
		t.Errorf("completions = %d, want 1 (either-direction substring)", len(completed))
	}
}

func TestApplyItemEvent_CaseInsensitive(t *testing.T) {
	board := NewBoard(3)
	board.Tiles[0].Items = []string{"DRAGON CLAWS"}

	completed, _ := ApplyItemEvent(board, event("Thurgo", "dragon claws"))
	if len(completed) != 1 {
		t.Errorf("completions = %d, want 1", len(completed))
	}
}

func TestApplyItemEvent_EmptyTileSkipped(t *testing.T) {
	board := NewBoard(3)
	// All tiles start with empty criteria; nothing should ever match.
	completed, changed := ApplyItemEvent(board, event("Thurgo", ""))
	if changed || len(completed) != 0 {
		t.Errorf("empty tiles produced completions: %v", completed)
	}
	completed, changed = ApplyItemEvent(board, event("Thurgo", "Anything"))
	if changed || len(completed) != 0 {
		t.Errorf("empty tiles produced completions: %v", completed)
	}
}

func TestApplyItemEvent_ConjunctiveTile(t *testing.T) {
	board := NewBoard(3)
	board.Tiles[2].Items = []string{"Zulrah uniques"}
	board.Tiles[2].RequiredItems = []string{"Tanzanite fang", "Magic fang"}
	board.Tiles[2].Value = 40

	// First required item: progress only, no completion.
	completed, changed := ApplyItemEvent(board, event("Thurgo", "Tanzanite fang"))
	if !changed {
		t.Fatal("expected progress to be recorded")
	}
	if len(completed) != 0 {
		t.Fatalf("completions = %d, want 0 after first item", len(completed))
	}
	if got := board.Tiles[2].ItemProgress["Thurgo"]; len(got) != 1 {
		t.Fatalf("progress = %v, want one entry", got)
	}

	// Same item again: idempotent.
	completed, changed = ApplyItemEvent(board, event("Thurgo", "Tanzanite fang"))
	if changed || len(completed) != 0 {
		t.Errorf("duplicate progress changed the board")
	}

	// Second required item completes the set.
	completed, changed = ApplyItemEvent(board, event("Thurgo", "Magic fang"))
	if !changed {
		t.Fatal("expected completion")
	}
	if len(completed) != 1 || completed[0].Tile != 3 || completed[0].Value != 40 {
		t.Fatalf("completions = %+v", completed)
	}

	// Replaying after completion is a no-op.
	completed, changed = ApplyItemEvent(board, event("Thurgo", "Magic fang"))
	if changed || len(completed) != 0 {
		t.Error("replay after completion changed the board")
	}
}

func TestApplyItemEvent_ConjunctiveProgressIsPerPlayer(t *testing.T) {
	board := NewBoard(3)
	board.Tiles[0].Items = []string{"Dagannoth rings"}
	board.Tiles[0].RequiredItems = []string{"Berserker ring", "Archers ring"}

	ApplyItemEvent(board, event("Thurgo", "Berserker ring"))
	completed, _ := ApplyItemEvent(board, event("Zed", "Archers ring"))
	if len(completed) != 0 {
		t.Error("players completed the tile with combined progress")
	}

	completed, _ = ApplyItemEvent(board, event("Zed", "Berserker ring"))
	if len(completed) != 1 {
		t.Errorf("completions = %d, want 1 for Zed's own full set", len(completed))
	}
	if containsString(board.Tiles[0].CompletedBy, "Thurgo") {
		t.Error("Thurgo credited without a full set")
	}
}

func TestNormalize_BackfillsMissingFields(t *testing.T) {
	b := &Board{}
	b.Normalize()

	if b.BoardSize != DefaultBoardSize {
		t.Errorf("boardSize = %d, want %d", b.BoardSize, DefaultBoardSize)
	}
	if len(b.Tiles) != DefaultBoardSize*DefaultBoardSize {
		t.Errorf("tiles = %d", len(b.Tiles))
	}
	if b.Completions == nil {
		t.Error("completions not backfilled")
	}
	if len(b.LineBonuses.Rows) != DefaultBoardSize || len(b.LineBonuses.Diags) != 2 {
		t.Errorf("line bonuses not backfilled: %+v", b.LineBonuses)
	}
	for i, tile := range b.Tiles {
		if tile.Items == nil || tile.CompletedBy == nil {
			t.Fatalf("tile %d has nil slices", i)
		}
	}
}
