package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by single-row lookups when no row matches.
var ErrNotFound = errors.New("not found")

type ScanModeRepository interface {
	GetAll(ctx context.Context) ([]ScanMode, error)
	GetByID(ctx context.Context, id string) (ScanMode, error)
	Create(ctx context.Context, command ScanModeCommand) (ScanMode, error)
	Update(ctx context.Context, id string, command ScanModeCommand) error
	Delete(ctx context.Context, id string) error
}

type ProxyRepository interface {
	GetAll(ctx context.Context) ([]Proxy, error)
	GetByID(ctx context.Context, id string) (Proxy, error)
	Create(ctx context.Context, command ProxyCommand) (Proxy, error)
	Update(ctx context.Context, id string, command ProxyCommand) error
	Delete(ctx context.Context, id string) error
}

type IPFilterRepository interface {
	GetAll(ctx context.Context) ([]IPFilter, error)
	GetByID(ctx context.Context, id string) (IPFilter, error)
	Create(ctx context.Context, command IPFilterCommand) (IPFilter, error)
	Update(ctx context.Context, id string, command IPFilterCommand) error
	Delete(ctx context.Context, id string) error
}

type ExternalSourceRepository interface {
	GetAll(ctx context.Context) ([]ExternalSource, error)
	GetByID(ctx context.Context, id string) (ExternalSource, error)
	Create(ctx context.Context, command ExternalSourceCommand) (ExternalSource, error)
	Update(ctx context.Context, id string, command ExternalSourceCommand) error
	Delete(ctx context.Context, id string) error
}

type SouthConnectorRepository interface {
	GetAll(ctx context.Context) ([]SouthConnector, error)
	GetByID(ctx context.Context, id string) (SouthConnector, error)
	Create(ctx context.Context, command SouthConnectorCommand) (SouthConnector, error)
	Update(ctx context.Context, id string, command SouthConnectorCommand) error
	// Delete removes the connector together with its items and any cache
	// rows left without a remaining referent, in one transaction.
	Delete(ctx context.Context, id string) error
}

type SouthItemRepository interface {
	GetByID(ctx context.Context, id string) (SouthItem, error)
	ListBySouth(ctx context.Context, southID string) ([]SouthItem, error)
	Search(ctx context.Context, southID, name string, page int) (Page[SouthItem], error)
	Create(ctx context.Context, southID string, command SouthItemCommand) (SouthItem, error)
	Update(ctx context.Context, id string, command SouthItemCommand) error
	Delete(ctx context.Context, id string) error
	DeleteAllBySouth(ctx context.Context, southID string) error
}

type NorthConnectorRepository interface {
	GetAll(ctx context.Context) ([]NorthConnector, error)
	GetByID(ctx context.Context, id string) (NorthConnector, error)
	Create(ctx context.Context, command NorthConnectorCommand) (NorthConnector, error)
	Update(ctx context.Context, id string, command NorthConnectorCommand) error
	Delete(ctx context.Context, id string) error
}

type HistoryQueryRepository interface {
	GetAll(ctx context.Context) ([]HistoryQuery, error)
	Search(ctx context.Context, name string, page int) (Page[HistoryQuery], error)
	GetByID(ctx context.Context, id string) (HistoryQuery, error)
	Create(ctx context.Context, command HistoryQueryCommand) (HistoryQuery, error)
	Update(ctx context.Context, id string, command HistoryQueryCommand) error
	Delete(ctx context.Context, id string) error
}

// SouthCacheRepository tracks per-scan-mode read progress. Upsert must be
// atomic: at most one row per scan mode regardless of interleaving.
type SouthCacheRepository interface {
	GetByScanMode(ctx context.Context, scanModeID string) (SouthCache, error)
	Upsert(ctx context.Context, entry SouthCache) error
	Delete(ctx context.Context, scanModeID string) error
	Reset(ctx context.Context) error
}

type EngineSettingsRepository interface {
	Get(ctx context.Context) (EngineSettings, error)
	// CreateIfAbsent seeds the singleton row and is a silent no-op when a
	// row already exists.
	CreateIfAbsent(ctx context.Context, command EngineSettingsCommand) error
	Update(ctx context.Context, command EngineSettingsCommand) error
}

type UserRepository interface {
	Search(ctx context.Context, login string, page int) (Page[User], error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByLogin(ctx context.Context, login string) (User, error)
	Create(ctx context.Context, command UserCommand, passwordHash string) (User, error)
	// Update overwrites every column except the password hash.
	Update(ctx context.Context, id string, command UserCommand) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}

type LogRepository interface {
	Append(ctx context.Context, entry LogEntry) error
	Search(ctx context.Context, params LogSearchParams) (Page[LogEntry], error)
}

// Hasher is the opaque password-hashing capability injected into the user
// service.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(hash, plaintext string) error
}
