package logger

// Console implements a console based logger.
type Console struct {
	Enabled          bool `toml:"enabled"`
	UseConsoleWriter bool `toml:"useConsoleWriter"`
}

// LogFile implements a file based logger with one rotating file per level group.
type LogFile struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`

	ErrorLog        string `toml:"error"`
	ErrorMaxSize    int    `toml:"errorMaxSize"`
	ErrorMaxBackups int    `toml:"errorMaxBackups"`
	ErrorMaxAge     int    `toml:"errorMaxAge"`

	InfoLog        string `toml:"info"`
	InfoMaxSize    int    `toml:"infoMaxSize"`
	InfoMaxBackups int    `toml:"infoMaxBackups"`
	InfoMaxAge     int    `toml:"infoMaxAge"`

	TraceLog        string `toml:"trace"`
	TraceMaxSize    int    `toml:"traceMaxSize"`
	TraceMaxBackups int    `toml:"traceMaxBackups"`
	TraceMaxAge     int    `toml:"traceMaxAge"`

	// SQLLog receives the statements traced by the gorm adapter.
	SQLLog        string `toml:"sql"`
	SQLMaxSize    int    `toml:"sqlMaxSize"`
	SQLMaxBackups int    `toml:"sqlMaxBackups"`
	SQLMaxAge     int    `toml:"sqlMaxAge"`
}

// SQL implements the settings of the gorm adapter.
type SQL struct {
	// LogLevel of the statements: silent, error, warn or info.
	LogLevel string `toml:"logLevel"`
	// SlowThreshold in milliseconds, statements taking longer are logged as warnings.
	SlowThreshold int `toml:"slowThreshold"`
	// IgnoreRecordNotFound suppresses "record not found" errors, lookups report them anyway.
	IgnoreRecordNotFound bool `toml:"ignoreRecordNotFound"`
}

// Log implements the logger config.
type Log struct {
	LogLevel     string // trace, debug, info, warn, error.
	ReportCaller bool

	AppName     string
	ServiceName string

	// Console used mainly for docker and dev.
	Console Console

	File LogFile `toml:"file"`

	SQL SQL `toml:"sql"`
}
