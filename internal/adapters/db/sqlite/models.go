package sqlite

type ScanModeModel struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	Cron        string `gorm:"not null"`
}

func (ScanModeModel) TableName() string { return "scan_mode" }

type ProxyModel struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	Address     string `gorm:"not null"`
	Username    string
	Password    string
}

func (ProxyModel) TableName() string { return "proxy" }

type IPFilterModel struct {
	ID          string `gorm:"primaryKey"`
	Address     string `gorm:"not null"`
	Description string
}

func (IPFilterModel) TableName() string { return "ip_filter" }

type ExternalSourceModel struct {
	ID          string `gorm:"primaryKey"`
	Reference   string `gorm:"not null"`
	Description string
}

func (ExternalSourceModel) TableName() string { return "external_sources" }

type SouthConnectorModel struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Type        string `gorm:"not null"`
	Description string
	Enabled     bool   `gorm:"not null"`
	Settings    string `gorm:"not null;default:'{}'"`
}

func (SouthConnectorModel) TableName() string { return "south_connector" }

type SouthItemModel struct {
	ID         string `gorm:"primaryKey"`
	Name       string `gorm:"not null"`
	SouthID    string `gorm:"not null;index"`
	ScanModeID string `gorm:"not null;index"`
	Settings   string `gorm:"not null;default:'{}'"`
}

func (SouthItemModel) TableName() string { return "south_item" }

type NorthConnectorModel struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Type        string `gorm:"not null"`
	Description string
	Enabled     bool   `gorm:"not null"`
	Settings    string `gorm:"not null;default:'{}'"`
}

func (NorthConnectorModel) TableName() string { return "north_connector" }

type HistoryQueryModel struct {
	ID                       string `gorm:"primaryKey"`
	Name                     string `gorm:"not null"`
	Description              string
	Enabled                  bool   `gorm:"not null"`
	StartTime                string `gorm:"not null"`
	EndTime                  string `gorm:"not null"`
	SouthType                string `gorm:"not null"`
	NorthType                string `gorm:"not null"`
	SouthSettings            string `gorm:"not null;default:'{}'"`
	NorthSettings            string `gorm:"not null;default:'{}'"`
	CachingScanModeID        string `gorm:"column:caching_scan_mode_id"`
	CachingGroupCount        int
	CachingRetryInterval     int
	CachingRetryCount        int
	CachingMaxSendCount      int
	CachingTimeout           int
	ArchiveEnabled           bool
	ArchiveRetentionDuration int
}

func (HistoryQueryModel) TableName() string { return "history_queries" }

// SouthCacheModel keys on the scan mode: the schema itself guarantees at
// most one cursor row per scan mode.
type SouthCacheModel struct {
	ScanModeID    string `gorm:"primaryKey;column:scan_mode_id"`
	IntervalIndex int    `gorm:"not null"`
	MaxInstant    string `gorm:"not null"`
}

func (SouthCacheModel) TableName() string { return "cache_history" }

type EngineModel struct {
	ID                           string `gorm:"primaryKey"`
	Name                         string `gorm:"not null"`
	Port                         int    `gorm:"not null"`
	LogConsoleLevel              string `gorm:"column:log_console_level"`
	LogFileLevel                 string `gorm:"column:log_file_level"`
	LogFileMaxFileSize           int    `gorm:"column:log_file_max_file_size"`
	LogFileNumberOfFiles         int    `gorm:"column:log_file_number_of_files"`
	LogDatabaseLevel             string `gorm:"column:log_database_level"`
	LogDatabaseMaxNumberOfLogs   int    `gorm:"column:log_database_max_number_of_logs"`
	LogLokiLevel                 string `gorm:"column:log_loki_level"`
	LogLokiInterval              int    `gorm:"column:log_loki_interval"`
	LogLokiAddress               string `gorm:"column:log_loki_address"`
	LogLokiTokenAddress          string `gorm:"column:log_loki_token_address"`
	LogLokiProxyID               string `gorm:"column:log_loki_proxy_id"`
	LogLokiUsername              string `gorm:"column:log_loki_username"`
	LogLokiPassword              string `gorm:"column:log_loki_password"`
	HealthSignalLogEnabled       bool   `gorm:"column:health_signal_log_enabled"`
	HealthSignalLogInterval      int    `gorm:"column:health_signal_log_interval"`
	HealthSignalHTTPEnabled      bool   `gorm:"column:health_signal_http_enabled"`
	HealthSignalHTTPInterval     int    `gorm:"column:health_signal_http_interval"`
	HealthSignalHTTPVerbose      bool   `gorm:"column:health_signal_http_verbose"`
	HealthSignalHTTPAddress      string `gorm:"column:health_signal_http_address"`
	HealthSignalHTTPProxyID      string `gorm:"column:health_signal_http_proxy_id"`
	HealthSignalHTTPAuth         string `gorm:"column:health_signal_http_authentication"`
}

func (EngineModel) TableName() string { return "engine" }

type UserModel struct {
	ID        string `gorm:"primaryKey"`
	Login     string `gorm:"not null;uniqueIndex"`
	Password  string `gorm:"not null"`
	FirstName string
	LastName  string
	Email     string
	Language  string
	Timezone  string
}

func (UserModel) TableName() string { return "user" }

type LogModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Timestamp string `gorm:"not null;index"`
	Level     string `gorm:"not null;index"`
	Scope     string `gorm:"not null"`
	Message   string `gorm:"not null"`
}

func (LogModel) TableName() string { return "logs" }
