package constants

const (
	AppName            = "daybook"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/daybook/daybook.db"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// EnvPrefix namespaces every environment override, e.g. DAYBOOK_DATABASE.
	EnvPrefix = "DAYBOOK"

	// ConfigFileName is looked up next to the database, without extension.
	ConfigFileName = "config"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "daybook-"
	BackupFileSuffix = ".db"

	// Log constants
	LogDirName  = "logs"
	LogFileName = "daybook.log"

	// Export constants
	EntriesPerPage       = 5
	ExportFormatMarkdown = "markdown"
	ExportFormatJSON     = "json"
	ExportFormatYAML     = "yaml"
)
