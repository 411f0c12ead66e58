package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/miqra/miqra-server/engine"
	"github.com/miqra/miqra-server/models"
	"github.com/miqra/miqra-server/quran"
	"github.com/miqra/miqra-server/utils"
)

// ReadingService is the session/check-in orchestrator: the single mutating
// entry point for reading history and the recompute pipeline for everything
// derived from it (DailyHasanat, ReadingProgress, CheckIn, Streak).
//
// All mutations for one user are serialized by locking the user row FOR
// UPDATE inside the transaction; the recompute steps read aggregate state
// and would race under concurrent writers. Different users never contend.
type ReadingService struct {
	db      *gorm.DB
	letters *quran.LetterCounts
}

// NewReadingService creates the orchestrator over an initialized database
// and the letter-count reference table.
func NewReadingService(db *gorm.DB, letters *quran.LetterCounts) *ReadingService {
	return &ReadingService{db: db, letters: letters}
}

// LetterCounts exposes the reference table for the preview path.
func (s *ReadingService) LetterCounts() *quran.LetterCounts {
	return s.letters
}

// SessionInput is the payload for logging a reading session. Date is
// optional and defaults to today in the user's timezone. ClientToken is an
// optional client-generated UUID; resubmitting the same token replays the
// original result instead of double-logging.
type SessionInput struct {
	SurahNumber int
	AyatStart   int
	AyatEnd     int
	Date        string
	Notes       string
	ClientToken string
}

// SessionUpdate carries the editable fields of an existing session. Nil
// pointers leave the field unchanged.
type SessionUpdate struct {
	SurahNumber *int
	AyatStart   *int
	AyatEnd     *int
	Date        *string
	Notes       *string
}

func validateRange(surah, start, end int) error {
	if !quran.ValidSurah(surah) {
		return validationErrorf("surah number %d out of range 1-%d", surah, quran.SurahCount)
	}
	if start < 1 || end < start {
		return validationErrorf("invalid ayat range %d-%d", start, end)
	}
	if max := quran.AyatCount(surah); end > max {
		return validationErrorf("ayat end %d exceeds surah %d length %d", end, surah, max)
	}
	return nil
}

// resolveDate parses the requested date, defaulting to today, and rejects
// anything in the future. Future-dated check-ins corrupting streak math was
// a recurring bug class; the fix is this hard precondition.
func resolveDate(requested string, today engine.Date) (engine.Date, error) {
	if requested == "" {
		return today, nil
	}
	d, err := engine.ParseDate(requested)
	if err != nil {
		return engine.Date{}, &ValidationError{Message: err.Error()}
	}
	if d.After(today) {
		return engine.Date{}, validationErrorf("cannot log reading for a future date %s", d)
	}
	return d, nil
}

// userToday resolves "today" in the user's configured timezone, never the
// server's.
func (s *ReadingService) userToday(user *models.User) (engine.Date, error) {
	today, err := engine.Today(user.Timezone)
	if err != nil {
		return engine.Date{}, validationErrorf("invalid timezone %q on profile", user.Timezone)
	}
	return today, nil
}

// LogSession validates and persists one reading session, then runs the full
// derived-state pipeline for its date inside a single transaction: daily
// hasanat resum, forward-only progress advance, check-in resum, streak
// recompute. If any step fails the transaction rolls back and no partial
// state is observable.
func (s *ReadingService) LogSession(userID uint, in SessionInput) (*models.ReadingSession, error) {
	if err := validateRange(in.SurahNumber, in.AyatStart, in.AyatEnd); err != nil {
		return nil, err
	}
	if in.ClientToken != "" {
		if _, err := uuid.Parse(in.ClientToken); err != nil {
			return nil, validationErrorf("client token must be a UUID")
		}
	}

	var session models.ReadingSession
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		today, err := s.userToday(user)
		if err != nil {
			return err
		}
		date, err := resolveDate(in.Date, today)
		if err != nil {
			return err
		}

		// Idempotency replay: a retry of an already-applied submission
		// returns the original row without touching any aggregate.
		if in.ClientToken != "" {
			var existing models.ReadingSession
			err := tx.Where("user_id = ? AND client_token = ?", userID, in.ClientToken).First(&existing).Error
			if err == nil {
				session = existing
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		token := in.ClientToken
		if token == "" {
			token = uuid.NewString()
		}

		session = models.ReadingSession{
			UserID:      userID,
			SurahNumber: in.SurahNumber,
			AyatStart:   in.AyatStart,
			AyatEnd:     in.AyatEnd,
			AyatCount:   in.AyatEnd - in.AyatStart + 1,
			Date:        date.Time(),
			SessionTime: time.Now(),
			Notes:       utils.Sanitize(in.Notes),
			ClientToken: token,
		}
		if err := tx.Create(&session).Error; err != nil {
			return err
		}

		if err := s.recomputeDate(tx, userID, date); err != nil {
			return err
		}
		if err := s.advanceProgress(tx, userID, &session); err != nil {
			return err
		}
		return s.recomputeStreak(tx, userID, today)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateUserCaches(userID)
	return &session, nil
}

// UpdateSession edits an existing session and re-runs the derived-state
// pipeline for every affected date. The reading cursor is rebuilt by
// replaying the full corrected history, so an edit can never leave progress
// reflecting a range that no longer exists.
func (s *ReadingService) UpdateSession(userID, sessionID uint, in SessionUpdate) (*models.ReadingSession, error) {
	var session models.ReadingSession
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		today, err := s.userToday(user)
		if err != nil {
			return err
		}

		if err := tx.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		oldDate := engine.DateOf(session.Date)

		if in.SurahNumber != nil {
			session.SurahNumber = *in.SurahNumber
		}
		if in.AyatStart != nil {
			session.AyatStart = *in.AyatStart
		}
		if in.AyatEnd != nil {
			session.AyatEnd = *in.AyatEnd
		}
		if err := validateRange(session.SurahNumber, session.AyatStart, session.AyatEnd); err != nil {
			return err
		}
		session.AyatCount = session.AyatEnd - session.AyatStart + 1

		newDate := oldDate
		if in.Date != nil {
			newDate, err = resolveDate(*in.Date, today)
			if err != nil {
				return err
			}
			session.Date = newDate.Time()
		}
		if in.Notes != nil {
			session.Notes = utils.Sanitize(*in.Notes)
		}

		if err := tx.Save(&session).Error; err != nil {
			return err
		}

		if err := s.recomputeDate(tx, userID, oldDate); err != nil {
			return err
		}
		if !newDate.Equal(oldDate) {
			if err := s.recomputeDate(tx, userID, newDate); err != nil {
				return err
			}
		}
		if err := s.replayProgress(tx, userID); err != nil {
			return err
		}
		return s.recomputeStreak(tx, userID, today)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateUserCaches(userID)
	return &session, nil
}

// DeleteSession removes a session and re-runs the pipeline for its date. A
// date left with no sessions loses its check-in, which can shorten or break
// a streak; that is the correct outcome, not a special case.
func (s *ReadingService) DeleteSession(userID, sessionID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		today, err := s.userToday(user)
		if err != nil {
			return err
		}

		var session models.ReadingSession
		if err := tx.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		date := engine.DateOf(session.Date)

		if err := tx.Delete(&session).Error; err != nil {
			return err
		}

		if err := s.recomputeDate(tx, userID, date); err != nil {
			return err
		}
		if err := s.replayProgress(tx, userID); err != nil {
			return err
		}
		return s.recomputeStreak(tx, userID, today)
	})
	if err != nil {
		return err
	}

	s.invalidateUserCaches(userID)
	return nil
}

// lockUser reads the user row FOR UPDATE, serializing all mutations for this
// user for the rest of the transaction.
func lockUser(tx *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// sessionsForDate loads every remaining session for user+date. Date equality
// is compared as a YYYY-MM-DD string to sidestep timezone/type mismatches
// with the DATE column.
func sessionsForDate(tx *gorm.DB, userID uint, date engine.Date) ([]models.ReadingSession, error) {
	var sessions []models.ReadingSession
	err := tx.Where("user_id = ? AND date = ?", userID, date.String()).
		Order("session_time ASC").
		Find(&sessions).Error
	return sessions, err
}

// recomputeDate resums DailyHasanat and the CheckIn for one date from the
// full remaining session set. Aggregates are rewritten, never incremented,
// so edits and deletes cannot drift them.
func (s *ReadingService) recomputeDate(tx *gorm.DB, userID uint, date engine.Date) error {
	sessions, err := sessionsForDate(tx, userID, date)
	if err != nil {
		return err
	}

	ranges := make([]engine.SessionRange, 0, len(sessions))
	ayatTotal := 0
	for _, sess := range sessions {
		ranges = append(ranges, engine.SessionRange{
			Surah:     sess.SurahNumber,
			AyatStart: sess.AyatStart,
			AyatEnd:   sess.AyatEnd,
		})
		ayatTotal += sess.AyatCount
	}

	if len(sessions) == 0 {
		// Nothing left on this date: drop the aggregates entirely so the
		// date disappears from the check-in set.
		if err := tx.Where("user_id = ? AND date = ?", userID, date.String()).
			Delete(&models.DailyHasanat{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND date = ?", userID, date.String()).
			Delete(&models.CheckIn{}).Error
	}

	totals, count := engine.ComputeDailyHasanat(s.letters, ranges)
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_letters": totals.Letters,
			"total_hasanat": totals.Hasanat,
			"session_count": count,
			"updated_at":    time.Now(),
		}),
	}).Create(&models.DailyHasanat{
		UserID:       userID,
		Date:         date.Time(),
		TotalLetters: totals.Letters,
		TotalHasanat: totals.Hasanat,
		SessionCount: count,
	}).Error; err != nil {
		return err
	}

	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"ayat_count": ayatTotal,
			"updated_at": time.Now(),
		}),
	}).Create(&models.CheckIn{
		UserID:    userID,
		Date:      date.Time(),
		AyatCount: ayatTotal,
	}).Error
}

// advanceProgress applies one new session to the stored cursor.
func (s *ReadingService) advanceProgress(tx *gorm.DB, userID uint, session *models.ReadingSession) error {
	row, err := loadProgress(tx, userID)
	if err != nil {
		return err
	}

	p := engine.Progress{
		CurrentSurah:  row.CurrentSurah,
		CurrentAyat:   row.CurrentAyat,
		TotalAyatRead: row.TotalAyatRead,
		KhatamCount:   row.KhatamCount,
	}
	p = p.Advance(session.SurahNumber, session.AyatStart, session.AyatEnd)

	now := time.Now()
	row.CurrentSurah = p.CurrentSurah
	row.CurrentAyat = p.CurrentAyat
	row.TotalAyatRead = p.TotalAyatRead
	row.KhatamCount = p.KhatamCount
	row.LastReadAt = &now
	return tx.Save(row).Error
}

// replayProgress rebuilds the cursor and lifetime counters by replaying the
// whole session history in reading order. Used after edits and deletes,
// where incremental advancement cannot express the correction.
func (s *ReadingService) replayProgress(tx *gorm.DB, userID uint) error {
	var sessions []models.ReadingSession
	if err := tx.Where("user_id = ?", userID).
		Order("session_time ASC, id ASC").
		Find(&sessions).Error; err != nil {
		return err
	}

	p := engine.NewProgress()
	var lastRead *time.Time
	for i := range sessions {
		p = p.Advance(sessions[i].SurahNumber, sessions[i].AyatStart, sessions[i].AyatEnd)
		t := sessions[i].SessionTime
		lastRead = &t
	}

	row, err := loadProgress(tx, userID)
	if err != nil {
		return err
	}
	row.CurrentSurah = p.CurrentSurah
	row.CurrentAyat = p.CurrentAyat
	row.TotalAyatRead = p.TotalAyatRead
	row.KhatamCount = p.KhatamCount
	row.LastReadAt = lastRead
	return tx.Save(row).Error
}

func loadProgress(tx *gorm.DB, userID uint) (*models.ReadingProgress, error) {
	var row models.ReadingProgress
	err := tx.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.ReadingProgress{UserID: userID, CurrentSurah: 1, CurrentAyat: 1}
		if err := tx.Create(&row).Error; err != nil {
			return nil, err
		}
		return &row, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// recomputeStreak rewrites the cached streak from the authoritative check-in
// date set.
func (s *ReadingService) recomputeStreak(tx *gorm.DB, userID uint, today engine.Date) error {
	state, err := deriveStreak(tx, userID, today)
	if err != nil {
		return err
	}
	return saveStreak(tx, userID, state)
}

func deriveStreak(tx *gorm.DB, userID uint, today engine.Date) (engine.StreakState, error) {
	var rows []models.CheckIn
	if err := tx.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return engine.StreakState{}, err
	}
	dates := make([]engine.Date, 0, len(rows))
	for _, row := range rows {
		dates = append(dates, engine.DateOf(row.Date))
	}
	return engine.ComputeStreak(dates, today), nil
}

func saveStreak(tx *gorm.DB, userID uint, state engine.StreakState) error {
	var lastDate interface{}
	if state.LastDate != nil {
		lastDate = state.LastDate.String()
	}
	var row models.Streak
	err := tx.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.Streak{UserID: userID, Current: state.Current, Longest: state.Longest}
		if state.LastDate != nil {
			t := state.LastDate.Time()
			row.LastDate = &t
		}
		return tx.Create(&row).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&row).Updates(map[string]interface{}{
		"current":    state.Current,
		"longest":    state.Longest,
		"last_date":  lastDate,
		"updated_at": time.Now(),
	}).Error
}

// invalidateUserCaches drops every cached read payload for the user after a
// committed mutation.
func (s *ReadingService) invalidateUserCaches(userID uint) {
	utils.InvalidateByPrefix(userCachePrefix(userID))
}
