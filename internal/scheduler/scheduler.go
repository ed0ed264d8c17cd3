package scheduler

import (
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kitchenops-backend/internal/models"
	"kitchenops-backend/internal/tempcheck"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron   *cron.Cron
	db     *gorm.DB
	logger *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(db *gorm.DB, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:   cron.New(),
		db:     db,
		logger: logger,
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	// Archive the previous month on the 1st at 02:00
	_, err := s.cron.AddFunc("0 2 1 * *", s.archivePreviousMonth)
	if err != nil {
		s.logger.Error("failed to schedule monthly archive", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

// archivePreviousMonth closes the previous month for every active
// organization. Months already archived by hand are skipped.
func (s *Scheduler) archivePreviousMonth() {
	prev := time.Now().UTC().AddDate(0, -1, 0)
	year, month := prev.Year(), int(prev.Month())

	s.logger.Info("running monthly archive",
		zap.Int("year", year),
		zap.Int("month", month))

	var orgs []models.Organization
	if err := s.db.Where("active = true").Find(&orgs).Error; err != nil {
		s.logger.Error("failed to list organizations", zap.Error(err))
		return
	}

	for _, org := range orgs {
		summary, err := tempcheck.ArchiveMonth(s.db, org.ID, year, month, 0, "system")
		if errors.Is(err, tempcheck.ErrAlreadyArchived) {
			s.logger.Info("month already archived",
				zap.Uint("org_id", org.ID),
				zap.Int("year", year),
				zap.Int("month", month))
			continue
		}
		if err != nil {
			s.logger.Error("failed to archive month",
				zap.Uint("org_id", org.ID),
				zap.Error(err))
			continue
		}

		s.logger.Info("month archived",
			zap.Uint("org_id", org.ID),
			zap.Uint("archive_id", summary.ID),
			zap.Int("total_checks", summary.TotalCount))
	}
}
