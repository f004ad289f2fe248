// bingo/scores.go
package bingo

import "sort"

// LineCompletions lists the fully-completed rows, columns and diagonals
// (by index) for one player.
type LineCompletions struct {
	Rows      []int `json:"rows"`
	Cols      []int `json:"cols"`
	Diagonals []int `json:"diagonals"`
}

// PlayerScore is one leaderboard entry: tile points plus line bonuses.
type PlayerScore struct {
	Player    string          `json:"player"`
	Tiles     int             `json:"tiles"`
	Points    int             `json:"points"`
	LineBonus int             `json:"lineBonus"`
	Lines     LineCompletions `json:"lines"`
}

// LineCompletionsFor returns which rows, columns and diagonals the player has
// fully completed.
func (b *Board) LineCompletionsFor(player string) LineCompletions {
	size := b.BoardSize
	out := LineCompletions{Rows: []int{}, Cols: []int{}, Diagonals: []int{}}
	if size < 1 || len(b.Tiles) < size*size {
		return out
	}

	done := func(index int) bool {
		return containsString(b.Tiles[index].CompletedBy, player)
	}

	for row := 0; row < size; row++ {
		complete := true
		for col := 0; col < size; col++ {
			if !done(row*size + col) {
				complete = false
				break
			}
		}
		if complete {
			out.Rows = append(out.Rows, row)
		}
	}

	for col := 0; col < size; col++ {
		complete := true
		for row := 0; row < size; row++ {
			if !done(row*size + col) {
				complete = false
				break
			}
		}
		if complete {
			out.Cols = append(out.Cols, col)
		}
	}

	diag1, diag2 := true, true
	for i := 0; i < size; i++ {
		if !done(i*size + i) {
			diag1 = false
		}
		if !done(i*size + (size - 1 - i)) {
			diag2 = false
		}
	}
	if diag1 {
		out.Diagonals = append(out.Diagonals, 0)
	}
	if diag2 {
		out.Diagonals = append(out.Diagonals, 1)
	}

	return out
}

// PlayerScores totals tile points and line bonuses per player, sorted by
// points descending.
func (b *Board) PlayerScores() []PlayerScore {
	byPlayer := map[string]*PlayerScore{}

	for _, tile := range b.Tiles {
		for _, player := range tile.CompletedBy {
			score, ok := byPlayer[player]
			if !ok {
				score = &PlayerScore{Player: player}
				byPlayer[player] = score
			}
			score.Tiles++
			score.Points += tile.Value
		}
	}

	for player, score := range byPlayer {
		lines := b.LineCompletionsFor(player)
		score.Lines = lines

		bonus := 0
		for _, row := range lines.Rows {
			if row < len(b.LineBonuses.Rows) {
				bonus += b.LineBonuses.Rows[row]
			}
		}
		for _, col := range lines.Cols {
			if col < len(b.LineBonuses.Cols) {
				bonus += b.LineBonuses.Cols[col]
			}
		}
		for _, diag := range lines.Diagonals {
			if diag < len(b.LineBonuses.Diags) {
				bonus += b.LineBonuses.Diags[diag]
			}
		}
		score.LineBonus = bonus
		score.Points += bonus
	}

	scores := make([]PlayerScore, 0, len(byPlayer))
	for _, score := range byPlayer {
		scores = append(scores, *score)
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Points != scores[j].Points {
			return scores[i].Points > scores[j].Points
		}
		return scores[i].Player < scores[j].Player
	})
	return scores
}
