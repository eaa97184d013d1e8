// Package app wires the configured client toolkit: config → logger →
// state database → session store → HTTP client → entity modules.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/simp-lee/schoolkit/internal/client"
	"github.com/simp-lee/schoolkit/internal/config"
	"github.com/simp-lee/schoolkit/internal/module/admission"
	"github.com/simp-lee/schoolkit/internal/module/attendance"
	"github.com/simp-lee/schoolkit/internal/module/auth"
	"github.com/simp-lee/schoolkit/internal/module/batch"
	"github.com/simp-lee/schoolkit/internal/module/class"
	"github.com/simp-lee/schoolkit/internal/module/exam"
	"github.com/simp-lee/schoolkit/internal/module/examcategory"
	"github.com/simp-lee/schoolkit/internal/module/group"
	"github.com/simp-lee/schoolkit/internal/module/subject"
	"github.com/simp-lee/schoolkit/internal/module/teacher"
	"github.com/simp-lee/schoolkit/internal/session"
)

// App holds the shared client, the session store, and one module per
// entity. Each module owns its process-wide list store; the modules
// operate fully independently with no shared lock.
type App struct {
	cfg    *config.Config
	logger *logger.Logger
	db     *gorm.DB

	Client    *client.Client
	Sessions  *session.Store
	Auth      *auth.Service
	Dropdowns *client.Dropdowns

	Classes        *class.Module
	Subjects       *subject.Module
	Groups         *group.Module
	Batches        *batch.Module
	Admissions     *admission.Module
	Attendance     *attendance.Module
	Teachers       *teacher.Module
	Exams          *exam.Module
	ExamCategories *examcategory.Module
}

// New creates and wires a fully configured App from the given Config.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	success := false

	// 1. Setup logger.
	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	// 2. Setup state database and session store.
	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup state database: %w", err)
	}
	defer func() {
		if success {
			return
		}
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			slog.Error("state database close error", slog.Any("error", err))
		}
	}()

	sessions, err := session.NewStore(db)
	if err != nil {
		return nil, fmt.Errorf("setup session store: %w", err)
	}

	// 3. Base HTTP client with the persisted token attached per request.
	opts := []client.Option{
		client.WithTokenSource(sessions),
		client.WithLogger(log.Logger),
	}
	if cfg.API.Timeout != "" {
		if d, err := time.ParseDuration(cfg.API.Timeout); err == nil {
			opts = append(opts, client.WithTimeout(d))
		}
	}
	c, err := client.New(cfg.API.BaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("setup client: %w", err)
	}

	dropdownTTL := time.Minute
	if cfg.Client.DropdownTTL != "" {
		if d, err := time.ParseDuration(cfg.Client.DropdownTTL); err == nil {
			dropdownTTL = d
		}
	}

	// 4. One module per entity, all over the shared client.
	a := &App{
		cfg:    cfg,
		logger: log,
		db:     db,

		Client:    c,
		Sessions:  sessions,
		Auth:      auth.NewService(c, sessions),
		Dropdowns: client.NewDropdowns(c, dropdownTTL),

		Classes:        class.NewModule(c),
		Subjects:       subject.NewModule(c),
		Groups:         group.NewModule(c),
		Batches:        batch.NewModule(c),
		Admissions:     admission.NewModule(c),
		Attendance:     attendance.NewModule(c),
		Teachers:       teacher.NewModule(c),
		Exams:          exam.NewModule(c),
		ExamCategories: examcategory.NewModule(c),
	}

	success = true
	return a, nil
}

// DefaultLimit is the page size used when the caller does not specify one.
func (a *App) DefaultLimit() int {
	if a.cfg.Client.DefaultLimit > 0 {
		return a.cfg.Client.DefaultLimit
	}
	return 10
}

// Debounce returns the configured search debounce window.
func (a *App) Debounce() time.Duration {
	if a.cfg.Client.Debounce != "" {
		if d, err := time.ParseDuration(a.cfg.Client.Debounce); err == nil {
			return d
		}
	}
	return 500 * time.Millisecond
}

// Close releases the dropdown cache, the state database, and the logger.
func (a *App) Close() error {
	var firstErr error

	if a.Dropdowns != nil {
		a.Dropdowns.Close()
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	if a.logger != nil {
		if err := a.logger.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Ping verifies the state database connection, e.g. at CLI startup.
func (a *App) Ping(ctx context.Context) error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
