// models/rank.go
package models

import "time"

// RankSnapshot caches one observation of the group's position on the
// group-ironman hiscores. Change columns are deltas against the previous
// snapshot (negative rank change = climbed).
type RankSnapshot struct {
	ID                 string    `json:"id" gorm:"primaryKey"`
	GroupName          string    `json:"group_name" gorm:"index;not null"`
	Rank               int       `json:"rank"`
	PrestigeRank       *int      `json:"prestige_rank,omitempty"`
	TotalXP            int64     `json:"total_xp"`
	RankChange         int       `json:"rank_change"`
	PrestigeRankChange int       `json:"prestige_rank_change"`
	XPChange           int64     `json:"xp_change"`
	CreatedAt          time.Time `json:"created_at"`
}
