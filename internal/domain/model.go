package domain

import "encoding/json"

// PageSize is the fixed page size used by every paginated search.
const PageSize = 50

// Page is one slice of a paginated result set.
type Page[T any] struct {
	Content       []T
	Size          int
	Number        int
	TotalElements int
	TotalPages    int
}

// ScanMode is a named polling schedule. Items, caches and history queries
// reference it by id.
type ScanMode struct {
	ID          string
	Name        string
	Description string
	Cron        string
}

type ScanModeCommand struct {
	Name        string
	Description string
	Cron        string
}

type Proxy struct {
	ID          string
	Name        string
	Description string
	Address     string
	Username    string
	Password    string
}

type ProxyCommand struct {
	Name        string
	Description string
	Address     string
	Username    string
	Password    string
}

type IPFilter struct {
	ID          string
	Address     string
	Description string
}

type IPFilterCommand struct {
	Address     string
	Description string
}

type ExternalSource struct {
	ID          string
	Reference   string
	Description string
}

type ExternalSourceCommand struct {
	Reference   string
	Description string
}

// SouthConnector is a data-acquisition endpoint. Settings is the
// protocol-specific configuration, kept opaque by this layer and stored as
// JSON text.
type SouthConnector struct {
	ID          string
	Name        string
	Type        string
	Description string
	Enabled     bool
	Settings    json.RawMessage
}

type SouthConnectorCommand struct {
	Name        string
	Type        string
	Description string
	Enabled     bool
	Settings    json.RawMessage
}

// SouthItem is one queryable point within a South connector. Many items can
// share one scan mode.
type SouthItem struct {
	ID         string
	Name       string
	SouthID    string
	ScanModeID string
	Settings   json.RawMessage
}

type SouthItemCommand struct {
	Name       string
	ScanModeID string
	Settings   json.RawMessage
}

type NorthConnector struct {
	ID          string
	Name        string
	Type        string
	Description string
	Enabled     bool
	Settings    json.RawMessage
}

type NorthConnectorCommand struct {
	Name        string
	Type        string
	Description string
	Enabled     bool
	Settings    json.RawMessage
}

// HistoryQuery is a bounded-time backfill job pairing a South and a North
// type with its own caching policy. StartTime and EndTime are ISO-8601 UTC
// instants.
type HistoryQuery struct {
	ID            string
	Name          string
	Description   string
	Enabled       bool
	StartTime     string
	EndTime       string
	SouthType     string
	NorthType     string
	SouthSettings json.RawMessage
	NorthSettings json.RawMessage
	Caching       HistoryCaching
	Archive       HistoryArchive
}

type HistoryCaching struct {
	ScanModeID    string
	GroupCount    int
	RetryInterval int
	RetryCount    int
	MaxSendCount  int
	Timeout       int
}

type HistoryArchive struct {
	Enabled           bool
	RetentionDuration int
}

type HistoryQueryCommand struct {
	Name          string
	Description   string
	Enabled       bool
	StartTime     string
	EndTime       string
	SouthType     string
	NorthType     string
	SouthSettings json.RawMessage
	NorthSettings json.RawMessage
	Caching       HistoryCaching
	Archive       HistoryArchive
}

// SouthCache is the resumption cursor for interval-based historical reads:
// one row per scan mode. MaxInstant is an ISO-8601 UTC instant; such strings
// order lexicographically, which callers rely on when comparing progress.
type SouthCache struct {
	ScanModeID    string
	IntervalIndex int
	MaxInstant    string
}

// EngineSettings is the singleton gateway configuration row.
type EngineSettings struct {
	ID            string
	Name          string
	Port          int
	LogParameters LogParameters
	HealthSignal  HealthSignal
}

type EngineSettingsCommand struct {
	Name          string
	Port          int
	LogParameters LogParameters
	HealthSignal  HealthSignal
}

type LogParameters struct {
	Console  ConsoleLogSettings
	File     FileLogSettings
	Database DatabaseLogSettings
	Loki     LokiLogSettings
}

type ConsoleLogSettings struct {
	Level string
}

type FileLogSettings struct {
	Level         string
	MaxFileSize   int
	NumberOfFiles int
}

type DatabaseLogSettings struct {
	Level           string
	MaxNumberOfLogs int
}

type LokiLogSettings struct {
	Level        string
	Interval     int
	Address      string
	TokenAddress string
	ProxyID      string
	Username     string
	Password     string
}

type HealthSignal struct {
	Logging HealthSignalLogging
	HTTP    HealthSignalHTTP
}

type HealthSignalLogging struct {
	Enabled  bool
	Interval int
}

type HealthSignalHTTP struct {
	Enabled        bool
	Interval       int
	Verbose        bool
	Address        string
	ProxyID        string
	Authentication Authentication
}

type Authentication struct {
	Type   string
	Key    string
	Secret string
}

// User carries the stored password hash for the authentication layer; it is
// never serialized outward.
type User struct {
	ID           string
	Login        string
	PasswordHash string `json:"-"`
	FirstName    string
	LastName     string
	Email        string
	Language     string
	Timezone     string
}

// UserCommand updates every column of a user except the password: an empty
// Password leaves the stored hash untouched.
type UserCommand struct {
	Login     string
	Password  string
	FirstName string
	LastName  string
	Email     string
	Language  string
	Timezone  string
}

// LogEntry is written by the logging transport and only read here.
type LogEntry struct {
	ID        int64
	Timestamp string
	Level     string
	Scope     string
	Message   string
}

// LogSearchParams filters log entries; all predicates are combined with AND.
type LogSearchParams struct {
	Start          string
	End            string
	Levels         []string
	Scope          string
	MessageContent string
	Page           int
}
