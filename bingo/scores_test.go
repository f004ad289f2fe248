package bingo

import "testing"

// completeTiles marks the given 0-based tile indexes as completed by player.
func completeTiles(b *Board, player string, indexes ...int) {
	for _, i := range indexes {
		b.Tiles[i].CompletedBy = append(b.Tiles[i].CompletedBy, player)
	}
}

func TestLineCompletionsFor(t *testing.T) {
	board := NewBoard(3)

	// Row 0, column 2, and the top-left diagonal share corners.
	completeTiles(board, "Thurgo", 0, 1, 2, 4, 5, 8)

	lines := board.LineCompletionsFor("Thurgo")
	if len(lines.Rows) != 1 || lines.Rows[0] != 0 {
		t.Errorf("rows = %v, want [0]", lines.Rows)
	}
	if len(lines.Cols) != 1 || lines.Cols[0] != 2 {
		t.Errorf("cols = %v, want [2]", lines.Cols)
	}
	if len(lines.Diagonals) != 1 || lines.Diagonals[0] != 0 {
		t.Errorf("diagonals = %v, want [0]", lines.Diagonals)
	}

	if other := board.LineCompletionsFor("Zed"); len(other.Rows)+len(other.Cols)+len(other.Diagonals) != 0 {
		t.Errorf("Zed has lines without completions: %+v", other)
	}
}

func TestLineCompletionsFor_AntiDiagonal(t *testing.T) {
	board := NewBoard(3)
	completeTiles(board, "Zed", 2, 4, 6)

	lines := board.LineCompletionsFor("Zed")
	if len(lines.Diagonals) != 1 || lines.Diagonals[0] != 1 {
		t.Errorf("diagonals = %v, want [1]", lines.Diagonals)
	}
}

func TestPlayerScores(t *testing.T) {
	board := NewBoard(3)
	// Default values: 10/tile, 50/row, 50/col, 100/diag.
	completeTiles(board, "Thurgo", 0, 1, 2) // full row 0
	completeTiles(board, "Zed", 0, 4)

	scores := board.PlayerScores()
	if len(scores) != 2 {
		t.Fatalf("scores = %d entries, want 2", len(scores))
	}

	top := scores[0]
	if top.Player != "Thurgo" {
		t.Fatalf("top scorer = %q, want Thurgo", top.Player)
	}
	if top.Tiles != 3 || top.LineBonus != 50 || top.Points != 80 {
		t.Errorf("Thurgo score = %+v, want 3 tiles, 50 bonus, 80 points", top)
	}

	second := scores[1]
	if second.Player != "Zed" || second.Tiles != 2 || second.LineBonus != 0 || second.Points != 20 {
		t.Errorf("Zed score = %+v, want 2 tiles, 0 bonus, 20 points", second)
	}
}

func TestPlayerScores_TiesSortByName(t *testing.T) {
	board := NewBoard(3)
	completeTiles(board, "Zed", 0)
	completeTiles(board, "Alice", 1)

	scores := board.PlayerScores()
	if len(scores) != 2 || scores[0].Player != "Alice" || scores[1].Player != "Zed" {
		t.Errorf("tie ordering = %v", scores)
	}
}

func TestPlayerScores_EmptyBoard(t *testing.T) {
	board := NewBoard(5)
	if scores := board.PlayerScores(); len(scores) != 0 {
		t.Errorf("empty board produced scores: %v", scores)
	}
}
