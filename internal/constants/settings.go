package constants

const (
	SettingTimezone     = "timezone"
	SettingExportFormat = "export_format"

	// Default Settings Values
	DefaultTimezone     = "Local" // Use system local timezone by default
	DefaultExportFormat = ExportFormatMarkdown
)
