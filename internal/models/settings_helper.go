package models

import (
	"github.com/julianstephens/daybook/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) Settings {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingExportFormat:
			settings.ExportFormat = value
		}
	}
	return settings
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:     settings.Timezone,
		constants.SettingExportFormat: settings.ExportFormat,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.ExportFormat == "" {
		settings.ExportFormat = constants.DefaultExportFormat
	}
}
