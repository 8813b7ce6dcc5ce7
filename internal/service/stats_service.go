package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"habitloop/internal/metrics"
	"habitloop/internal/period"
	"habitloop/internal/repository"
)

const (
	leaderboardTTL   = 5 * time.Minute
	partnerFetchWait = 5 * time.Second
)

// StatsService joins habits with their entries and feeds them through
// the pure period core. All calendar math lives in internal/period;
// this layer only fetches, adapts, and caches.
type StatsService struct {
	habitRepo       *repository.HabitRepository
	entryRepo       *repository.EntryRepository
	userRepo        *repository.UserRepository
	partnershipRepo *repository.PartnershipRepository
	rdb             *redis.Client
	logger          *zap.Logger
}

func NewStatsService(
	habitRepo *repository.HabitRepository,
	entryRepo *repository.EntryRepository,
	userRepo *repository.UserRepository,
	partnershipRepo *repository.PartnershipRepository,
	rdb *redis.Client,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		habitRepo:       habitRepo,
		entryRepo:       entryRepo,
		userRepo:        userRepo,
		partnershipRepo: partnershipRepo,
		rdb:             rdb,
		logger:          logger,
	}
}

// StreakInfo is one habit's current streak.
type StreakInfo struct {
	HabitID int    `json:"habit_id"`
	Name    string `json:"name"`
	Streak  int    `json:"streak"`
}

// LeaderboardRow is one user's weekly score in a partner comparison.
type LeaderboardRow struct {
	UserID      int    `json:"user_id"`
	DisplayName string `json:"display_name"`
	Points      int    `json:"points"`
	MaxPoints   int    `json:"max_points"`
	Percentage  int    `json:"percentage"`
}

// loadHabits fetches the user's active habits joined with their
// entries inside the window, shaped for the period core.
func (s *StatsService) loadHabits(ctx context.Context, userID int, w period.Window) ([]period.Habit, error) {
	habits, err := s.habitRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListForUserBetween(ctx, userID,
		period.FormatDay(w.Start), period.FormatDay(w.End))
	if err != nil {
		return nil, err
	}

	byHabit := make(map[int][]period.Entry)
	for _, e := range entries {
		byHabit[e.HabitID] = append(byHabit[e.HabitID], period.Entry{
			Date:   e.EntryDate,
			Status: period.EntryStatus(e.Status),
		})
	}

	out := make([]period.Habit, 0, len(habits))
	for _, h := range habits {
		out = append(out, period.Habit{
			ID:      h.ID,
			Name:    h.Name,
			Entries: byHabit[h.ID],
		})
	}
	return out, nil
}

// QuarterStats aggregates a calendar quarter with monthly sub-periods.
func (s *StatsService) QuarterStats(ctx context.Context, userID, year, quarter int, today time.Time) (period.Summary, error) {
	metrics.IncrementStatsCompute("quarter")
	w := period.QuarterWindow(year, quarter)
	habits, err := s.loadHabits(ctx, userID, w)
	if err != nil {
		return period.Summary{}, err
	}
	return period.Aggregate(habits, w, period.SubdivideMonth, today), nil
}

// MonthStats aggregates a calendar month with ISO-week sub-periods.
func (s *StatsService) MonthStats(ctx context.Context, userID, year int, month time.Month, today time.Time) (period.Summary, error) {
	metrics.IncrementStatsCompute("month")
	w := period.MonthWindow(year, month)
	habits, err := s.loadHabits(ctx, userID, w)
	if err != nil {
		return period.Summary{}, err
	}
	return period.Aggregate(habits, w, period.SubdivideWeek, today), nil
}

// WeekStats aggregates the ISO week containing the given date.
func (s *StatsService) WeekStats(ctx context.Context, userID int, date, today time.Time) (period.Summary, error) {
	metrics.IncrementStatsCompute("week")
	w := period.WeekWindow(date)
	habits, err := s.loadHabits(ctx, userID, w)
	if err != nil {
		return period.Summary{}, err
	}
	return period.Aggregate(habits, w, period.SubdivideNone, today), nil
}

// PeriodStats aggregates one of the year's 13 four-week comparison
// periods, with ISO-week sub-periods.
func (s *StatsService) PeriodStats(ctx context.Context, userID, year, index int, today time.Time) (int, period.Summary, error) {
	metrics.IncrementStatsCompute("period")

	var w period.Window
	if index >= 1 && index <= 13 {
		w = period.FourWeekPeriods(year)[index-1]
	} else {
		index, w = period.CurrentPeriod(year, today)
	}

	habits, err := s.loadHabits(ctx, userID, w)
	if err != nil {
		return 0, period.Summary{}, err
	}
	return index, period.Aggregate(habits, w, period.SubdivideWeek, today), nil
}

// Streaks recomputes the current streak for every active habit.
func (s *StatsService) Streaks(ctx context.Context, userID int, today time.Time) ([]StreakInfo, error) {
	metrics.IncrementStatsCompute("streak")

	habits, err := s.habitRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	infos := make([]StreakInfo, 0, len(habits))
	for _, h := range habits {
		entries, err := s.entryRepo.ListByHabit(ctx, h.ID)
		if err != nil {
			return nil, err
		}
		pe := make([]period.Entry, 0, len(entries))
		for _, e := range entries {
			pe = append(pe, period.Entry{Date: e.EntryDate, Status: period.EntryStatus(e.Status)})
		}
		infos = append(infos, StreakInfo{
			HabitID: h.ID,
			Name:    h.Name,
			Streak:  period.Streak(pe, today),
		})
	}
	return infos, nil
}

func leaderboardKey(userID int, week period.Window) string {
	return fmt.Sprintf("leaderboard:%d:%s", userID, period.FormatDay(week.Start))
}

// WeeklyLeaderboard scores the user and every accepted partner for the
// ISO week containing today, sorted by points descending. Results are
// cached briefly; the worker drops the cache when entries change.
func (s *StatsService) WeeklyLeaderboard(ctx context.Context, userID int, today time.Time) ([]LeaderboardRow, error) {
	week := period.WeekWindow(today)
	key := leaderboardKey(userID, week)

	if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
		var rows []LeaderboardRow
		if err := json.Unmarshal([]byte(cached), &rows); err == nil {
			metrics.IncrementLeaderboardCache("hit")
			return rows, nil
		}
	}
	metrics.IncrementLeaderboardCache("miss")

	partners, err := s.partnershipRepo.ListPartners(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Partner data is non-critical: bound the fetch so a slow query
	// degrades the board instead of hanging the request.
	fetchCtx, cancel := context.WithTimeout(ctx, partnerFetchWait)
	defer cancel()

	rows := make([]LeaderboardRow, 0, len(partners)+1)
	for _, id := range append([]int{userID}, partners...) {
		row, err := s.scoreUser(fetchCtx, id, week, today)
		if err != nil {
			if id == userID {
				return nil, err
			}
			s.logger.Warn("Skipping partner in leaderboard",
				zap.Int("partner_id", id),
				zap.Error(err),
			)
			continue
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Points > rows[j].Points })

	if data, err := json.Marshal(rows); err == nil {
		if err := s.rdb.Set(ctx, key, data, leaderboardTTL).Err(); err != nil {
			s.logger.Warn("Failed to cache leaderboard", zap.Error(err))
		}
	}
	return rows, nil
}

func (s *StatsService) scoreUser(ctx context.Context, userID int, week period.Window, today time.Time) (LeaderboardRow, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return LeaderboardRow{}, err
	}
	habits, err := s.loadHabits(ctx, userID, week)
	if err != nil {
		return LeaderboardRow{}, err
	}
	score := period.ScoreWeek(habits, week, today)
	return LeaderboardRow{
		UserID:      u.ID,
		DisplayName: u.DisplayName,
		Points:      score.Points,
		MaxPoints:   score.MaxPoints,
		Percentage:  score.Percentage,
	}, nil
}

// InvalidateLeaderboard drops a user's cached rows for the week that
// contains the changed entry. Called from the worker.
func (s *StatsService) InvalidateLeaderboard(ctx context.Context, userID int, entryDate string) {
	d, err := period.ParseDay(entryDate)
	if err != nil {
		return
	}
	week := period.WeekWindow(d)
	if err := s.rdb.Del(ctx, leaderboardKey(userID, week)).Err(); err != nil {
		s.logger.Warn("Failed to invalidate leaderboard cache",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
	}
}
