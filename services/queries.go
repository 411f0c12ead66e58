package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/miqra/miqra-server/engine"
	"github.com/miqra/miqra-server/models"
	"github.com/miqra/miqra-server/quran"
	"github.com/miqra/miqra-server/utils"
)

// estimateWindowDays is how far back the completion estimate looks when
// computing the recent reading pace.
const estimateWindowDays = 30

func userCachePrefix(userID uint) string {
	return fmt.Sprintf("user:%d:", userID)
}

// CacheKey builds a cache key scoped under the user prefix, so a single
// prefix invalidation after a write clears every cached view.
func CacheKey(userID uint, suffix string) string {
	return userCachePrefix(userID) + suffix
}

func (s *ReadingService) loadUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UserToday resolves the current calendar date in the user's timezone.
func (s *ReadingService) UserToday(userID uint) (engine.Date, error) {
	user, err := s.loadUser(userID)
	if err != nil {
		return engine.Date{}, err
	}
	return s.userToday(user)
}

// StreakView is the streak as presented to clients: the stored run decayed
// for display when the last check-in is older than yesterday.
type StreakView struct {
	Current  int    `json:"current"`
	Longest  int    `json:"longest"`
	LastDate string `json:"last_date,omitempty"`
	Active   bool   `json:"active"`
}

func streakView(state engine.StreakState, today engine.Date) StreakView {
	view := StreakView{
		Current: state.Current,
		Longest: state.Longest,
		Active:  state.Active(today),
	}
	if state.LastDate != nil {
		view.LastDate = state.LastDate.String()
	}
	return view
}

// GetStreak returns the user's streak, verifying the cached row against the
// check-in history on the way out. A mismatch is repaired in place before
// responding, so a bug or missed recompute heals on the next read instead of
// persisting indefinitely.
func (s *ReadingService) GetStreak(userID uint) (StreakView, error) {
	user, err := s.loadUser(userID)
	if err != nil {
		return StreakView{}, err
	}
	today, err := s.userToday(user)
	if err != nil {
		return StreakView{}, err
	}

	derived, err := deriveStreak(s.db, userID, today)
	if err != nil {
		return StreakView{}, err
	}

	var stored models.Streak
	err = s.db.Where("user_id = ?", userID).First(&stored).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return StreakView{}, err
	}

	storedState := engine.StreakState{Current: stored.Current, Longest: stored.Longest}
	if stored.LastDate != nil {
		d := engine.DateOf(*stored.LastDate)
		storedState.LastDate = &d
	}

	if errors.Is(err, gorm.ErrRecordNotFound) || !derived.EqualState(storedState) {
		if repairErr := s.db.Transaction(func(tx *gorm.DB) error {
			return saveStreak(tx, userID, derived)
		}); repairErr != nil {
			return StreakView{}, repairErr
		}
	}

	return streakView(derived, today), nil
}

// RecalculateStreak forces a recompute from check-in history, discarding
// whatever the cached row claimed.
func (s *ReadingService) RecalculateStreak(userID uint) (StreakView, error) {
	user, err := s.loadUser(userID)
	if err != nil {
		return StreakView{}, err
	}
	today, err := s.userToday(user)
	if err != nil {
		return StreakView{}, err
	}

	var state engine.StreakState
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := lockUser(tx, userID); err != nil {
			return err
		}
		state, err = deriveStreak(tx, userID, today)
		if err != nil {
			return err
		}
		return saveStreak(tx, userID, state)
	})
	if err != nil {
		return StreakView{}, err
	}

	s.invalidateUserCaches(userID)
	return streakView(state, today), nil
}

// ReconcileAllStreaks recomputes every user's streak from check-in history.
// Run nightly so that decay (a user simply not reading) is reflected in the
// stored rows without waiting for the user's next request.
func (s *ReadingService) ReconcileAllStreaks() (int, error) {
	var users []models.User
	if err := s.db.Select("id", "timezone").Find(&users).Error; err != nil {
		return 0, err
	}

	repaired := 0
	for i := range users {
		user := users[i]
		today, err := engine.Today(user.Timezone)
		if err != nil {
			utils.Sugar.Warnw("skipping streak reconcile, bad timezone",
				"user_id", user.ID, "timezone", user.Timezone)
			continue
		}
		err = s.db.Transaction(func(tx *gorm.DB) error {
			if _, err := lockUser(tx, user.ID); err != nil {
				return err
			}
			state, err := deriveStreak(tx, user.ID, today)
			if err != nil {
				return err
			}
			return saveStreak(tx, user.ID, state)
		})
		if err != nil {
			utils.Sugar.Errorw("streak reconcile failed", "user_id", user.ID, "error", err)
			continue
		}
		repaired++
	}
	return repaired, nil
}

// ProgressView is the reading cursor plus the derived lap figures.
type ProgressView struct {
	CurrentSurah  int     `json:"current_surah"`
	CurrentAyat   int     `json:"current_ayat"`
	TotalAyatRead int     `json:"total_ayat_read"`
	KhatamCount   int     `json:"khatam_count"`
	LapAyatRead   int     `json:"lap_ayat_read"`
	LapPercentage float64 `json:"lap_percentage"`
	LapRemaining  int     `json:"lap_remaining"`
	LastReadAt    *string `json:"last_read_at,omitempty"`
}

// GetProgress returns the stored cursor, creating the initial (1,1) row for
// users who have never logged a session.
func (s *ReadingService) GetProgress(userID uint) (ProgressView, error) {
	var row *models.ReadingProgress
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		row, err = loadProgress(tx, userID)
		return err
	})
	if err != nil {
		return ProgressView{}, err
	}

	view := ProgressView{
		CurrentSurah:  row.CurrentSurah,
		CurrentAyat:   row.CurrentAyat,
		TotalAyatRead: row.TotalAyatRead,
		KhatamCount:   row.KhatamCount,
		LapAyatRead:   engine.LapAyatRead(row.TotalAyatRead),
		LapPercentage: engine.LapPercentage(row.TotalAyatRead),
		LapRemaining:  engine.LapRemaining(row.TotalAyatRead),
	}
	if row.LastReadAt != nil {
		ts := row.LastReadAt.Format(time.RFC3339)
		view.LastReadAt = &ts
	}
	return view, nil
}

// loadCoverage rebuilds the unique-coverage set from the full session
// history. Coverage is derived state with no table of its own; the session
// log is the single source of truth.
func (s *ReadingService) loadCoverage(userID uint) (*engine.Coverage, error) {
	var sessions []models.ReadingSession
	if err := s.db.Select("surah_number", "ayat_start", "ayat_end").
		Where("user_id = ?", userID).
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	ranges := make([]engine.SessionRange, 0, len(sessions))
	for _, sess := range sessions {
		ranges = append(ranges, engine.SessionRange{
			Surah:     sess.SurahNumber,
			AyatStart: sess.AyatStart,
			AyatEnd:   sess.AyatEnd,
		})
	}
	return engine.CoverageFromSessions(ranges), nil
}

// CoverageSummary is the corpus-wide unique coverage figures.
type CoverageSummary struct {
	AyatRead   int     `json:"ayat_read"`
	AyatTotal  int     `json:"ayat_total"`
	Remaining  int     `json:"remaining"`
	Percentage float64 `json:"percentage"`
}

func (s *ReadingService) GetCoverage(userID uint) (CoverageSummary, error) {
	cov, err := s.loadCoverage(userID)
	if err != nil {
		return CoverageSummary{}, err
	}
	return CoverageSummary{
		AyatRead:   cov.Count(),
		AyatTotal:  quran.TotalAyat,
		Remaining:  cov.Remaining(),
		Percentage: cov.Percentage(),
	}, nil
}

// GetSurahCoverage returns per-surah coverage with the missing ayat ranges.
func (s *ReadingService) GetSurahCoverage(userID uint, surah int) (engine.SurahCoverage, error) {
	if !quran.ValidSurah(surah) {
		return engine.SurahCoverage{}, validationErrorf("surah number %d out of range 1-%d", surah, quran.SurahCount)
	}
	cov, err := s.loadCoverage(userID)
	if err != nil {
		return engine.SurahCoverage{}, err
	}
	return cov.ForSurah(surah), nil
}

// NextUnreadView points at the first never-read ayah at or after the cursor.
type NextUnreadView struct {
	Surah    int  `json:"surah"`
	Ayat     int  `json:"ayat"`
	Complete bool `json:"complete"`
}

// GetNextUnread scans forward from the reading cursor, wrapping at the end
// of the corpus, for the first ayah the user has never read.
func (s *ReadingService) GetNextUnread(userID uint) (NextUnreadView, error) {
	cov, err := s.loadCoverage(userID)
	if err != nil {
		return NextUnreadView{}, err
	}

	var row *models.ReadingProgress
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		row, err = loadProgress(tx, userID)
		return err
	}); err != nil {
		return NextUnreadView{}, err
	}

	pos := cov.NextUnread(row.CurrentSurah, row.CurrentAyat)
	return NextUnreadView{
		Surah:    pos.Surah,
		Ayat:     pos.Ayat,
		Complete: cov.Remaining() == 0,
	}, nil
}

// MilestonesView pairs the full milestone list, each entry flagged achieved
// or not, with the next one ahead.
type MilestonesView struct {
	Milestones []engine.Milestone `json:"milestones"`
	Next       *engine.Milestone  `json:"next,omitempty"`
}

func (s *ReadingService) GetMilestones(userID uint) (MilestonesView, error) {
	var row *models.ReadingProgress
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		row, err = loadProgress(tx, userID)
		return err
	}); err != nil {
		return MilestonesView{}, err
	}
	return MilestonesView{
		Milestones: engine.Milestones(row.TotalAyatRead),
		Next:       engine.NextMilestone(row.TotalAyatRead),
	}, nil
}

// GetCompletionEstimate projects a khatam date from the recent reading pace.
func (s *ReadingService) GetCompletionEstimate(userID uint) (engine.CompletionEstimate, error) {
	user, err := s.loadUser(userID)
	if err != nil {
		return engine.CompletionEstimate{}, err
	}
	today, err := s.userToday(user)
	if err != nil {
		return engine.CompletionEstimate{}, err
	}

	var row *models.ReadingProgress
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		row, err = loadProgress(tx, userID)
		return err
	}); err != nil {
		return engine.CompletionEstimate{}, err
	}

	since := today.AddDays(-estimateWindowDays + 1)
	var checkins []models.CheckIn
	if err := s.db.Where("user_id = ? AND date >= ?", userID, since.String()).
		Order("date ASC").
		Find(&checkins).Error; err != nil {
		return engine.CompletionEstimate{}, err
	}

	recent := make([]engine.DailyTotal, 0, len(checkins))
	for _, ci := range checkins {
		recent = append(recent, engine.DailyTotal{
			Date:      engine.DateOf(ci.Date),
			AyatCount: ci.AyatCount,
		})
	}
	return engine.EstimateCompletion(row.TotalAyatRead, recent, today), nil
}

// CheckInView is one calendar day with reading activity.
type CheckInView struct {
	Date      string `json:"date"`
	AyatCount int    `json:"ayat_count"`
}

// GetCheckIns lists check-in days inside [from, to], newest first.
func (s *ReadingService) GetCheckIns(userID uint, from, to engine.Date) ([]CheckInView, error) {
	if to.Before(from) {
		return nil, validationErrorf("range end %s before start %s", to, from)
	}
	var rows []models.CheckIn
	if err := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, from.String(), to.String()).
		Order("date DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	views := make([]CheckInView, 0, len(rows))
	for _, row := range rows {
		views = append(views, CheckInView{
			Date:      engine.DateOf(row.Date).String(),
			AyatCount: row.AyatCount,
		})
	}
	return views, nil
}

// HasCheckedInToday reports whether the user has any reading logged for
// today in their timezone.
func (s *ReadingService) HasCheckedInToday(userID uint) (bool, engine.Date, error) {
	user, err := s.loadUser(userID)
	if err != nil {
		return false, engine.Date{}, err
	}
	today, err := s.userToday(user)
	if err != nil {
		return false, engine.Date{}, err
	}
	var count int64
	if err := s.db.Model(&models.CheckIn{}).
		Where("user_id = ? AND date = ?", userID, today.String()).
		Count(&count).Error; err != nil {
		return false, engine.Date{}, err
	}
	return count > 0, today, nil
}

// DailyHasanatView is one day's hasanat aggregate.
type DailyHasanatView struct {
	Date         string `json:"date"`
	TotalLetters int    `json:"total_letters"`
	TotalHasanat int    `json:"total_hasanat"`
	SessionCount int    `json:"session_count"`
}

// GetDailyHasanat lists per-day hasanat totals inside [from, to], newest
// first.
func (s *ReadingService) GetDailyHasanat(userID uint, from, to engine.Date) ([]DailyHasanatView, error) {
	if to.Before(from) {
		return nil, validationErrorf("range end %s before start %s", to, from)
	}
	var rows []models.DailyHasanat
	if err := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, from.String(), to.String()).
		Order("date DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	views := make([]DailyHasanatView, 0, len(rows))
	for _, row := range rows {
		views = append(views, DailyHasanatView{
			Date:         engine.DateOf(row.Date).String(),
			TotalLetters: row.TotalLetters,
			TotalHasanat: row.TotalHasanat,
			SessionCount: row.SessionCount,
		})
	}
	return views, nil
}

// RangeStats summarizes activity across a date range.
type RangeStats struct {
	From          string  `json:"from"`
	To            string  `json:"to"`
	DaysActive    int     `json:"days_active"`
	DaysTotal     int     `json:"days_total"`
	AyatRead      int     `json:"ayat_read"`
	TotalLetters  int     `json:"total_letters"`
	TotalHasanat  int     `json:"total_hasanat"`
	SessionCount  int     `json:"session_count"`
	AvgAyatPerDay float64 `json:"avg_ayat_per_day"`
}

// GetRangeStats aggregates check-ins and hasanat over [from, to].
func (s *ReadingService) GetRangeStats(userID uint, from, to engine.Date) (RangeStats, error) {
	if to.Before(from) {
		return RangeStats{}, validationErrorf("range end %s before start %s", to, from)
	}

	var checkins []models.CheckIn
	if err := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, from.String(), to.String()).
		Find(&checkins).Error; err != nil {
		return RangeStats{}, err
	}
	var hasanat []models.DailyHasanat
	if err := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, from.String(), to.String()).
		Find(&hasanat).Error; err != nil {
		return RangeStats{}, err
	}

	stats := RangeStats{
		From:      from.String(),
		To:        to.String(),
		DaysTotal: engine.DayDifference(to, from) + 1,
	}
	for _, ci := range checkins {
		stats.DaysActive++
		stats.AyatRead += ci.AyatCount
	}
	for _, dh := range hasanat {
		stats.TotalLetters += dh.TotalLetters
		stats.TotalHasanat += dh.TotalHasanat
		stats.SessionCount += dh.SessionCount
	}
	if stats.DaysTotal > 0 {
		stats.AvgAyatPerDay = float64(stats.AyatRead) / float64(stats.DaysTotal)
	}
	return stats, nil
}

// ListSessions returns the user's sessions newest first, with offset
// pagination, plus the total row count.
func (s *ReadingService) ListSessions(userID uint, limit, offset int) ([]models.ReadingSession, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := s.db.Model(&models.ReadingSession{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []models.ReadingSession
	if err := s.db.Where("user_id = ?", userID).
		Order("date DESC, session_time DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&sessions).Error; err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

// GetSession fetches one session owned by the user.
func (s *ReadingService) GetSession(userID, sessionID uint) (*models.ReadingSession, error) {
	var session models.ReadingSession
	if err := s.db.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}
