// Package storage persists the weekly roster lines that the sync jobs write
// and the analytics endpoints read. Records keep the provider's numeric slot
// and position codes; decoding to the engine's enums happens on read so that
// a bad code surfaces as a loud error instead of a silently skipped player.
package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/gridironhq/lineupiq/internal/lineup"
	"github.com/gridironhq/lineupiq/internal/roster"
	"github.com/gridironhq/lineupiq/pkg/database"
)

// PlayerWeekRecord is one player's stat line in one team's lineup for one
// week, as synced from the upstream provider.
type PlayerWeekRecord struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	TeamID          int       `gorm:"index:idx_team_week;not null" json:"team_id"`
	Week            int       `gorm:"index:idx_team_week;not null" json:"week"`
	PlayerID        int       `gorm:"not null" json:"player_id"`
	PlayerName      string    `gorm:"not null" json:"player_name"`
	LineupSlotCode  int       `gorm:"not null" json:"lineup_slot_code"`
	PositionCode    int       `gorm:"not null" json:"position_code"`
	PointsActual    *float64  `json:"points_actual"`
	PointsProjected *float64  `json:"points_projected"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (PlayerWeekRecord) TableName() string {
	return "player_week_lines"
}

// Repository reads and writes weekly roster lines.
type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// TeamWeek loads one team's full roster for a week, decoded into engine
// lines in the stored order. It is an error for the team-week to reference
// slot or position codes outside the known taxonomy.
func (r *Repository) TeamWeek(ctx context.Context, teamID, week int) ([]lineup.PlayerWeekLine, error) {
	var records []PlayerWeekRecord
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND week = ?", teamID, week).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load roster for team %d week %d: %w", teamID, week, err)
	}

	lines := make([]lineup.PlayerWeekLine, 0, len(records))
	for _, rec := range records {
		line, err := decodeRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("team %d week %d: %w", teamID, week, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// SeasonWeeks lists the weeks for which a team has stored roster lines, in
// ascending order.
func (r *Repository) SeasonWeeks(ctx context.Context, teamID int) ([]int, error) {
	var weeks []int
	err := r.db.WithContext(ctx).
		Model(&PlayerWeekRecord{}).
		Where("team_id = ?", teamID).
		Distinct("week").
		Order("week").
		Pluck("week", &weeks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list weeks for team %d: %w", teamID, err)
	}
	return weeks, nil
}

// SaveTeamWeek replaces a team's roster lines for a week. The sync job calls
// this after each provider poll.
func (r *Repository) SaveTeamWeek(ctx context.Context, teamID, week int, records []PlayerWeekRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ? AND week = ?", teamID, week).
			Delete(&PlayerWeekRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear roster for team %d week %d: %w", teamID, week, err)
		}
		for i := range records {
			records[i].TeamID = teamID
			records[i].Week = week
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.Create(&records).Error; err != nil {
			return fmt.Errorf("failed to save roster for team %d week %d: %w", teamID, week, err)
		}
		return nil
	})
}

// Migrate creates or updates the backing table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&PlayerWeekRecord{})
}

func decodeRecord(rec PlayerWeekRecord) (lineup.PlayerWeekLine, error) {
	slot, err := roster.DecodeSlot(rec.LineupSlotCode)
	if err != nil {
		return lineup.PlayerWeekLine{}, fmt.Errorf("player %d (%s): %w", rec.PlayerID, rec.PlayerName, err)
	}
	pos, err := roster.DecodePosition(rec.PositionCode)
	if err != nil {
		return lineup.PlayerWeekLine{}, fmt.Errorf("player %d (%s): %w", rec.PlayerID, rec.PlayerName, err)
	}
	return lineup.PlayerWeekLine{
		PlayerID:        rec.PlayerID,
		Name:            rec.PlayerName,
		Slot:            slot,
		Position:        pos,
		PointsActual:    rec.PointsActual,
		PointsProjected: rec.PointsProjected,
	}, nil
}
