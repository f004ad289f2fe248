// bingo/board.go
package bingo

import (
	"strings"
	"time"
)

// Tile is one board cell. A tile is simple (any one matching item completes
// it) unless RequiredItems lists more than one item, in which case a player
// must bank every required item before completing it.
type Tile struct {
	Items         []string            `json:"items"`
	RequiredItems []string            `json:"requiredItems,omitempty"`
	Value         int                 `json:"value"`
	CompletedBy   []string            `json:"completedBy"`
	ItemProgress  map[string][]string `json:"itemProgress,omitempty"`
	DisplayTitle  string              `json:"displayTitle"`
}

// LineBonuses holds the bonus points for completing full rows, columns and
// the two diagonals.
type LineBonuses struct {
	Rows  []int `json:"rows"`
	Cols  []int `json:"cols"`
	Diags []int `json:"diags"`
}

// Board is the shared bingo board: boardSize² tiles in row-major order.
type Board struct {
	BoardSize   int            `json:"boardSize"`
	Tiles       []Tile         `json:"tiles"`
	Completions map[string]int `json:"completions"`
	LineBonuses LineBonuses    `json:"lineBonuses"`
}

const (
	DefaultBoardSize = 5
	defaultTileValue = 10
	defaultLineBonus = 50
	defaultDiagBonus = 100
)

// NewBoard returns an empty size×size board with default tile values and
// line bonuses.
func NewBoard(size int) *Board {
	if size < 1 {
		size = DefaultBoardSize
	}

	tiles := make([]Tile, size*size)
	for i := range tiles {
		tiles[i] = Tile{Items: []string{}, Value: defaultTileValue, CompletedBy: []string{}}
	}

	bonuses := LineBonuses{
		Rows:  make([]int, size),
		Cols:  make([]int, size),
		Diags: []int{defaultDiagBonus, defaultDiagBonus},
	}
	for i := 0; i < size; i++ {
		bonuses.Rows[i] = defaultLineBonus
		bonuses.Cols[i] = defaultLineBonus
	}

	return &Board{
		BoardSize:   size,
		Tiles:       tiles,
		Completions: map[string]int{},
		LineBonuses: bonuses,
	}
}

// Normalize backfills fields older persisted boards are missing.
func (b *Board) Normalize() {
	if b.BoardSize < 1 {
		b.BoardSize = DefaultBoardSize
	}
	if b.Tiles == nil {
		b.Tiles = NewBoard(b.BoardSize).Tiles
	}
	if b.Completions == nil {
		b.Completions = map[string]int{}
	}
	if len(b.LineBonuses.Rows) == 0 && len(b.LineBonuses.Cols) == 0 && len(b.LineBonuses.Diags) == 0 {
		b.LineBonuses = NewBoard(b.BoardSize).LineBonuses
	}
	for i := range b.Tiles {
		if b.Tiles[i].Items == nil {
			b.Tiles[i].Items = []string{}
		}
		if b.Tiles[i].CompletedBy == nil {
			b.Tiles[i].CompletedBy = []string{}
		}
	}
}

// ItemEvent is one item obtained by one player, as extracted from a
// notification.
type ItemEvent struct {
	Player       string    `json:"player"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	RawValue     string    `json:"rawValue"`
	NumericValue float64   `json:"numericValue"`
	DropType     string    `json:"dropType"`
	Source       string    `json:"source,omitempty"`
	KillCount    *int      `json:"killCount,omitempty"`
	Rarity       string    `json:"rarity,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// TileCompletion describes one tile newly completed by a player. Tile is the
// 1-based board position.
type TileCompletion struct {
	Tile  int      `json:"tile"`
	Items []string `json:"items"`
	Value int      `json:"value"`
}

// ApplyItemEvent checks the event against every tile in board order, mutating
// tile state in place. It returns the tiles the event newly completed for the
// player and whether any board state changed. Replaying the same event is a
// no-op. Persisting the mutated board is the caller's job.
func ApplyItemEvent(board *Board, ev ItemEvent) ([]TileCompletion, bool) {
	completed := []TileCompletion{}
	changed := false

	for i := range board.Tiles {
		tile := &board.Tiles[i]
		if len(tile.Items) == 0 {
			continue
		}

		if len(tile.RequiredItems) > 1 {
			if c, ok := applyConjunctive(tile, i, ev); ok {
				changed = true
				if c != nil {
					completed = append(completed, *c)
				}
			}
			continue
		}

		for _, tileItem := range tile.Items {
			if !itemMatches(tileItem, ev.Name) {
				continue
			}
			if !containsString(tile.CompletedBy, ev.Player) {
				tile.CompletedBy = append(tile.CompletedBy, ev.Player)
				completed = append(completed, TileCompletion{Tile: i + 1, Items: tile.Items, Value: tile.Value})
				changed = true
			}
			break
		}
	}

	return completed, changed
}

// applyConjunctive advances a multi-item tile. It returns the completion (if
// the player just finished the set) and whether tile state changed.
func applyConjunctive(tile *Tile, index int, ev ItemEvent) (*TileCompletion, bool) {
	changed := false

	for _, required := range tile.RequiredItems {
		if !itemMatches(required, ev.Name) {
			continue
		}

		if tile.ItemProgress == nil {
			tile.ItemProgress = map[string][]string{}
		}
		progress := tile.ItemProgress[ev.Player]
		if !containsFold(progress, ev.Name) {
			progress = append(progress, ev.Name)
			tile.ItemProgress[ev.Player] = progress
			changed = true
		}

		if hasAllRequired(tile.RequiredItems, progress) && !containsString(tile.CompletedBy, ev.Player) {
			tile.CompletedBy = append(tile.CompletedBy, ev.Player)
			return &TileCompletion{Tile: index + 1, Items: tile.Items, Value: tile.Value}, true
		}
		break
	}

	return nil, changed
}

// hasAllRequired reports whether every required item has a satisfying entry
// in the player's progress set. An empty requirement list never completes.
func hasAllRequired(required, progress []string) bool {
	if len(required) == 0 {
		return false
	}
	for _, req := range required {
		satisfied := false
		for _, banked := range progress {
			if itemMatches(req, banked) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

// itemMatches is the tile matching rule: case-insensitive, whitespace-trimmed
// equality, or either name containing the other. The substring half is
// deliberately loose ("Bow" matches "Rainbow"); live tile configurations
// depend on it.
func itemMatches(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}
