package services

import (
	"fmt"
	"sort"
	"time"

	"ksabeheer/internal/models"
	"ksabeheer/internal/repositories"
)

// TabSortMode selects how the weekly tab rows are ordered.
type TabSortMode string

const (
	// TabSortByName orders rows alphabetically by display name.
	TabSortByName TabSortMode = "name"
	// TabSortByDrink orders rows descending by one drink's count.
	TabSortByDrink TabSortMode = "drink"
)

// TabColumn is one drink column of the weekly tab.
type TabColumn struct {
	DrinkID   string `json:"drink_id"`
	DrinkName string `json:"drink_name"`
}

// TabRow is one member's row: a count per drink column plus a row total.
type TabRow struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Counts      []int  `json:"counts"`
	Total       int    `json:"total"`
}

// TabTable is the aggregated weekly consumption table. Totals is the
// column-wise sum over all rows (the trailing totals row of the overview).
type TabTable struct {
	WeekStart time.Time   `json:"week_start"`
	Columns   []TabColumn `json:"columns"`
	Rows      []TabRow    `json:"rows"`
	Totals    []int       `json:"totals"`
}

// WeekStart returns the Monday 00:00:00 of t's week, in t's location. The
// week window runs from that instant up to (but not including) the next
// Monday, i.e. through Sunday 23:59:59.
func WeekStart(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// AggregateTab reduces the streak log to the weekly tab: one row per known
// user, one column per known drink, each cell counting that user's streaks
// of that drink within the week starting at weekStart.
//
// Rows are sorted per mode with user ID as the explicit tie-break, and the
// acting user's row is then pinned to index 0 regardless of sort mode — the
// overview always shows your own line first. An empty catalog still yields
// one row per user (all zero); a week without streaks yields an all-zero
// table, never an empty one.
func AggregateTab(streaks []models.Streak, users []models.User, drinks []models.Drink, weekStart time.Time, actingUserID string, mode TabSortMode, sortDrinkID string) TabTable {
	weekEnd := weekStart.AddDate(0, 0, 7)

	columns := make([]TabColumn, 0, len(drinks))
	drinkIndex := make(map[string]int, len(drinks))
	for i, d := range drinks {
		columns = append(columns, TabColumn{DrinkID: d.ID, DrinkName: d.Name})
		drinkIndex[d.ID] = i
	}

	rows := make([]TabRow, 0, len(users))
	rowIndex := make(map[string]int, len(users))
	for i, u := range users {
		user := u
		rows = append(rows, TabRow{
			UserID:      user.ID,
			DisplayName: user.DisplayName(),
			Counts:      make([]int, len(columns)),
		})
		rowIndex[user.ID] = i
	}

	totals := make([]int, len(columns))
	for _, s := range streaks {
		if s.Timestamp.Before(weekStart) || !s.Timestamp.Before(weekEnd) {
			continue
		}
		ri, knownUser := rowIndex[s.UserID]
		ci, knownDrink := drinkIndex[s.DrinkID]
		if !knownUser || !knownDrink {
			// Streaks of departed members or removed drinks do not show
			// up in the table.
			continue
		}
		rows[ri].Counts[ci]++
		rows[ri].Total++
		totals[ci]++
	}

	sortCol, hasSortCol := drinkIndex[sortDrinkID]
	sort.SliceStable(rows, func(i, j int) bool {
		if mode == TabSortByDrink && hasSortCol {
			if rows[i].Counts[sortCol] != rows[j].Counts[sortCol] {
				return rows[i].Counts[sortCol] > rows[j].Counts[sortCol]
			}
		} else if rows[i].DisplayName != rows[j].DisplayName {
			return rows[i].DisplayName < rows[j].DisplayName
		}
		return rows[i].UserID < rows[j].UserID
	})

	// Pin the acting user's row to the top: sort normally first, then
	// extract and reinsert at index 0.
	for i, row := range rows {
		if row.UserID == actingUserID && i > 0 {
			pinned := rows[i]
			copy(rows[1:i+1], rows[:i])
			rows[0] = pinned
			break
		}
	}

	return TabTable{
		WeekStart: weekStart,
		Columns:   columns,
		Rows:      rows,
		Totals:    totals,
	}
}

// TabService produces the weekly consumption overview from the repositories.
type TabService struct {
	streakRepo repositories.StreakRepository
	userRepo   repositories.UserRepository
	drinkRepo  repositories.DrinkRepository
}

// NewTabService creates a new TabService.
func NewTabService(streakRepo repositories.StreakRepository, userRepo repositories.UserRepository, drinkRepo repositories.DrinkRepository) *TabService {
	return &TabService{
		streakRepo: streakRepo,
		userRepo:   userRepo,
		drinkRepo:  drinkRepo,
	}
}

// WeeklyTab aggregates the week starting at weekStart for the acting user.
func (s *TabService) WeeklyTab(weekStart time.Time, actingUserID string, mode TabSortMode, sortDrinkID string) (*TabTable, error) {
	streaks, err := s.streakRepo.GetBetween(weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return nil, fmt.Errorf("failed to load streaks: %w", err)
	}
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	drinks, err := s.drinkRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load drinks: %w", err)
	}

	table := AggregateTab(streaks, users, drinks, weekStart, actingUserID, mode, sortDrinkID)
	return &table, nil
}
