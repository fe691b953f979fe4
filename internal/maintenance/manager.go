package maintenance

import (
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/fittrack/fittrack/internal/config"
	"github.com/fittrack/fittrack/internal/database"
)

const (
	// DefaultSchedule runs upkeep nightly at 03:30 local time.
	DefaultSchedule = "30 3 * * *"

	settingSchedule = "maintenance.schedule"
	settingVacuum   = "maintenance.vacuum"
)

// Manager runs scheduled database upkeep: expired-session pruning, planner
// stat refresh and (optionally) VACUUM.
type Manager struct {
	db          *database.DB
	loader      *config.Loader
	cron        *cron.Cron
	cronEntryID cron.EntryID
	mu          sync.Mutex
	running     bool
}

// New creates a new maintenance manager
func New(db *database.DB, loader *config.Loader) *Manager {
	return &Manager{
		db:     db,
		loader: loader,
		cron:   cron.New(),
	}
}

// Start starts the scheduler. The schedule is read from settings with a
// nightly default.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}

	schedule := m.loader.String(settingSchedule, DefaultSchedule)
	entryID, err := m.cron.AddFunc(schedule, m.runOnce)
	if err != nil {
		return err
	}
	m.cronEntryID = entryID
	m.cron.Start()
	m.running = true

	log.Info().Str("schedule", schedule).Msg("Maintenance scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	ctx := m.cron.Stop()
	<-ctx.Done()
	m.running = false

	log.Info().Msg("Maintenance scheduler stopped")
}

// runOnce performs a single maintenance pass.
func (m *Manager) runOnce() {
	pruned, err := m.db.DeleteExpiredSessions()
	if err != nil {
		log.Error().Err(err).Msg("Failed to prune expired sessions")
	} else if pruned > 0 {
		log.Debug().Int64("pruned", pruned).Msg("Pruned expired sessions")
	}

	if err := m.db.Optimize(); err != nil {
		log.Error().Err(err).Msg("Failed to optimize database")
	}

	if m.loader.Bool(settingVacuum, false) {
		if err := m.db.Vacuum(); err != nil {
			log.Error().Err(err).Msg("Failed to vacuum database")
		}
	}

	log.Debug().Msg("Maintenance pass complete")
}
