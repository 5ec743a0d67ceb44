package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/databridge-io/databridge/internal/domain"
	"github.com/databridge-io/databridge/internal/idgen"
)

// EngineSettingsRepository manages the singleton configuration row. Exactly
// zero or one row ever exists in the engine table.
type EngineSettingsRepository struct {
	db *gorm.DB
}

func NewEngineSettingsRepository(db *gorm.DB) *EngineSettingsRepository {
	return &EngineSettingsRepository{db: db}
}

func (r *EngineSettingsRepository) Get(ctx context.Context) (domain.EngineSettings, error) {
	var m EngineModel
	if err := r.db.WithContext(ctx).First(&m).Error; err != nil {
		return domain.EngineSettings{}, translateErr(err)
	}
	return toEngineSettings(m)
}

// CreateIfAbsent seeds the settings row on first run. When a row already
// exists the call is a silent no-op: an operator's configuration is never
// overwritten by process-start defaults.
func (r *EngineSettingsRepository) CreateIfAbsent(ctx context.Context, command domain.EngineSettingsCommand) error {
	_, err := r.Get(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	m, err := fromEngineSettingsCommand(command)
	if err != nil {
		return err
	}
	m.ID = idgen.NewID()
	return r.db.WithContext(ctx).Create(&m).Error
}

// Update overwrites the single row in place, keyed on MIN(rowid) so no id
// lookup is needed.
func (r *EngineSettingsRepository) Update(ctx context.Context, command domain.EngineSettingsCommand) error {
	m, err := fromEngineSettingsCommand(command)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&EngineModel{}).
		Where("rowid = (SELECT MIN(rowid) FROM engine)").
		Updates(map[string]any{
			"name":                              m.Name,
			"port":                              m.Port,
			"log_console_level":                 m.LogConsoleLevel,
			"log_file_level":                    m.LogFileLevel,
			"log_file_max_file_size":            m.LogFileMaxFileSize,
			"log_file_number_of_files":          m.LogFileNumberOfFiles,
			"log_database_level":                m.LogDatabaseLevel,
			"log_database_max_number_of_logs":   m.LogDatabaseMaxNumberOfLogs,
			"log_loki_level":                    m.LogLokiLevel,
			"log_loki_interval":                 m.LogLokiInterval,
			"log_loki_address":                  m.LogLokiAddress,
			"log_loki_token_address":            m.LogLokiTokenAddress,
			"log_loki_proxy_id":                 m.LogLokiProxyID,
			"log_loki_username":                 m.LogLokiUsername,
			"log_loki_password":                 m.LogLokiPassword,
			"health_signal_log_enabled":         m.HealthSignalLogEnabled,
			"health_signal_log_interval":        m.HealthSignalLogInterval,
			"health_signal_http_enabled":        m.HealthSignalHTTPEnabled,
			"health_signal_http_interval":       m.HealthSignalHTTPInterval,
			"health_signal_http_verbose":        m.HealthSignalHTTPVerbose,
			"health_signal_http_address":        m.HealthSignalHTTPAddress,
			"health_signal_http_proxy_id":       m.HealthSignalHTTPProxyID,
			"health_signal_http_authentication": m.HealthSignalHTTPAuth,
		}).Error
}

func fromEngineSettingsCommand(command domain.EngineSettingsCommand) (EngineModel, error) {
	auth, err := json.Marshal(command.HealthSignal.HTTP.Authentication)
	if err != nil {
		return EngineModel{}, fmt.Errorf("encode health signal authentication: %w", err)
	}
	return EngineModel{
		Name:                       command.Name,
		Port:                       command.Port,
		LogConsoleLevel:            command.LogParameters.Console.Level,
		LogFileLevel:               command.LogParameters.File.Level,
		LogFileMaxFileSize:         command.LogParameters.File.MaxFileSize,
		LogFileNumberOfFiles:       command.LogParameters.File.NumberOfFiles,
		LogDatabaseLevel:           command.LogParameters.Database.Level,
		LogDatabaseMaxNumberOfLogs: command.LogParameters.Database.MaxNumberOfLogs,
		LogLokiLevel:               command.LogParameters.Loki.Level,
		LogLokiInterval:            command.LogParameters.Loki.Interval,
		LogLokiAddress:             command.LogParameters.Loki.Address,
		LogLokiTokenAddress:        command.LogParameters.Loki.TokenAddress,
		LogLokiProxyID:             command.LogParameters.Loki.ProxyID,
		LogLokiUsername:            command.LogParameters.Loki.Username,
		LogLokiPassword:            command.LogParameters.Loki.Password,
		HealthSignalLogEnabled:     command.HealthSignal.Logging.Enabled,
		HealthSignalLogInterval:    command.HealthSignal.Logging.Interval,
		HealthSignalHTTPEnabled:    command.HealthSignal.HTTP.Enabled,
		HealthSignalHTTPInterval:   command.HealthSignal.HTTP.Interval,
		HealthSignalHTTPVerbose:    command.HealthSignal.HTTP.Verbose,
		HealthSignalHTTPAddress:    command.HealthSignal.HTTP.Address,
		HealthSignalHTTPProxyID:    command.HealthSignal.HTTP.ProxyID,
		HealthSignalHTTPAuth:       string(auth),
	}, nil
}

func toEngineSettings(m EngineModel) (domain.EngineSettings, error) {
	var auth domain.Authentication
	if m.HealthSignalHTTPAuth != "" {
		if err := json.Unmarshal([]byte(m.HealthSignalHTTPAuth), &auth); err != nil {
			return domain.EngineSettings{}, fmt.Errorf("decode health signal authentication: %w", err)
		}
	}
	return domain.EngineSettings{
		ID:   m.ID,
		Name: m.Name,
		Port: m.Port,
		LogParameters: domain.LogParameters{
			Console: domain.ConsoleLogSettings{Level: m.LogConsoleLevel},
			File: domain.FileLogSettings{
				Level:         m.LogFileLevel,
				MaxFileSize:   m.LogFileMaxFileSize,
				NumberOfFiles: m.LogFileNumberOfFiles,
			},
			Database: domain.DatabaseLogSettings{
				Level:           m.LogDatabaseLevel,
				MaxNumberOfLogs: m.LogDatabaseMaxNumberOfLogs,
			},
			Loki: domain.LokiLogSettings{
				Level:        m.LogLokiLevel,
				Interval:     m.LogLokiInterval,
				Address:      m.LogLokiAddress,
				TokenAddress: m.LogLokiTokenAddress,
				ProxyID:      m.LogLokiProxyID,
				Username:     m.LogLokiUsername,
				Password:     m.LogLokiPassword,
			},
		},
		HealthSignal: domain.HealthSignal{
			Logging: domain.HealthSignalLogging{
				Enabled:  m.HealthSignalLogEnabled,
				Interval: m.HealthSignalLogInterval,
			},
			HTTP: domain.HealthSignalHTTP{
				Enabled:        m.HealthSignalHTTPEnabled,
				Interval:       m.HealthSignalHTTPInterval,
				Verbose:        m.HealthSignalHTTPVerbose,
				Address:        m.HealthSignalHTTPAddress,
				ProxyID:        m.HealthSignalHTTPProxyID,
				Authentication: auth,
			},
		},
	}, nil
}
