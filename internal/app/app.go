// Package app assembles the table stores and services from configuration.
// Both the API server and thomasctl start from here.
package app

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/config"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/domain"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/repository/memory"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/repository/ports"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/repository/postgres"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/service"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/util"
)

type App struct {
	Config config.Config

	Users                ports.TableStore[domain.User]
	Notifications        ports.TableStore[domain.Notification]
	PatientNotifications ports.TableStore[domain.PatientNotification]

	Tokens        *util.JWTManager
	Sessions      *service.SessionService
	Admins        *service.AdminService
	Notifier      *service.NotificationService
	closeDatabase func() error
	ping          func(context.Context) error
}

type Option func(*options)

type options struct {
	now    func() time.Time
	logger *log.Logger
}

// WithClock fixes the time used for tokens and generated columns.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithLogger sets where session events are logged.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func New(cfg config.Config, opts ...Option) (*App, error) {
	o := options{logger: log.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{Config: cfg}
	if err := a.openTables(o); err != nil {
		return nil, err
	}

	var jwtOpts []util.JWTOption
	if o.now != nil {
		jwtOpts = append(jwtOpts, util.WithJWTClock(o.now))
	}
	a.Tokens = util.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL, jwtOpts...)
	a.Sessions = service.NewSessionService(a.Tokens, cfg.AcceptExpiredTokens, service.WithSessionLogger(o.logger))
	a.Admins = service.NewAdminService(a.Users, a.Sessions)
	a.Notifier = service.NewNotificationService(a.Notifications, a.PatientNotifications)
	return a, nil
}

func (a *App) openTables(o options) error {
	if a.Config.DatabaseDriver == config.DriverMemory {
		var memOpts []memory.Option
		if o.now != nil {
			memOpts = append(memOpts, memory.WithClock(o.now))
		}
		stores, err := memory.NewStores(memOpts...)
		if err != nil {
			return err
		}
		a.Users = stores.Users
		a.Notifications = stores.Notifications
		a.PatientNotifications = stores.PatientNotifications
		a.closeDatabase = func() error { return nil }
		a.ping = func(context.Context) error { return nil }
		return nil
	}

	db, err := postgres.New(a.Config.DatabaseDriver, a.Config.DatabaseURL)
	if err != nil {
		return err
	}
	stores, err := postgres.NewStores(db)
	if err != nil {
		return errors.Join(err, db.Close())
	}
	a.Users = stores.Users
	a.Notifications = stores.Notifications
	a.PatientNotifications = stores.PatientNotifications
	a.closeDatabase = db.Close
	a.ping = db.PingContext
	return nil
}

// Ping reports whether the backing store answers.
func (a *App) Ping(ctx context.Context) error {
	if a.ping == nil {
		return nil
	}
	return a.ping(ctx)
}

var _ io.Closer = (*App)(nil)

func (a *App) Close() error {
	if a.closeDatabase == nil {
		return nil
	}
	return a.closeDatabase()
}
