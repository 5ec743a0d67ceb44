package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/databridge-io/databridge/internal/domain"
)

const (
	// DefaultAdminLogin is the login seeded on first run.
	DefaultAdminLogin = "admin"

	// Only the hash of the default password is ever persisted.
	defaultAdminPassword = "pass"
)

// DefaultEngineSettings are the factory settings written on first run.
func DefaultEngineSettings() domain.EngineSettingsCommand {
	return domain.EngineSettingsCommand{
		Name: "databridge",
		Port: 2223,
		LogParameters: domain.LogParameters{
			Console:  domain.ConsoleLogSettings{Level: "silent"},
			File:     domain.FileLogSettings{Level: "info", MaxFileSize: 50, NumberOfFiles: 5},
			Database: domain.DatabaseLogSettings{Level: "info", MaxNumberOfLogs: 100_000},
			Loki:     domain.LokiLogSettings{Level: "silent", Interval: 60},
		},
		HealthSignal: domain.HealthSignal{
			Logging: domain.HealthSignalLogging{Enabled: true, Interval: 60},
			HTTP: domain.HealthSignalHTTP{
				Enabled:        false,
				Interval:       60,
				Authentication: domain.Authentication{Type: "basic"},
			},
		},
	}
}

// SettingsService owns the singleton engine configuration and first-run
// seeding.
type SettingsService struct {
	engine domain.EngineSettingsRepository
	users  domain.UserRepository
	hasher domain.Hasher
	log    logrus.FieldLogger
}

func NewSettingsService(engine domain.EngineSettingsRepository, users domain.UserRepository, hasher domain.Hasher, log logrus.FieldLogger) *SettingsService {
	return &SettingsService{engine: engine, users: users, hasher: hasher, log: log}
}

// BootstrapDefaults seeds the engine settings row and the default admin
// user. Both seeds are idempotent: existing rows are left untouched.
func (s *SettingsService) BootstrapDefaults(ctx context.Context) error {
	if err := s.engine.CreateIfAbsent(ctx, DefaultEngineSettings()); err != nil {
		return fmt.Errorf("seed engine settings: %w", err)
	}

	_, err := s.users.GetByLogin(ctx, DefaultAdminLogin)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := s.hasher.Hash(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hash default admin password: %w", err)
	}
	_, err = s.users.Create(ctx, domain.UserCommand{
		Login:    DefaultAdminLogin,
		Language: "en",
		Timezone: "Etc/UTC",
	}, hash)
	if err != nil {
		return fmt.Errorf("seed default admin: %w", err)
	}
	s.log.WithField("login", DefaultAdminLogin).Info("created default admin user")
	return nil
}

func (s *SettingsService) GetEngineSettings(ctx context.Context) (domain.EngineSettings, error) {
	return s.engine.Get(ctx)
}

func (s *SettingsService) UpdateEngineSettings(ctx context.Context, command domain.EngineSettingsCommand) error {
	if command.Name == "" {
		return errors.New("name is required")
	}
	if command.Port <= 0 || command.Port > 65535 {
		return fmt.Errorf("invalid port %d", command.Port)
	}
	return s.engine.Update(ctx, command)
}
