package models

import (
	"testing"

	"github.com/julianstephens/daybook/internal/constants"
)

func TestMapToSettings(t *testing.T) {
	settings := MapToSettings(map[string]string{
		constants.SettingTimezone:     "Europe/London",
		constants.SettingExportFormat: "yaml",
		"unknown":                     "ignored",
	})
	if settings.Timezone != "Europe/London" {
		t.Errorf("expected timezone Europe/London, got %q", settings.Timezone)
	}
	if settings.ExportFormat != "yaml" {
		t.Errorf("expected export format yaml, got %q", settings.ExportFormat)
	}
}

func TestSettingsRoundTripThroughMap(t *testing.T) {
	in := Settings{Timezone: "UTC", ExportFormat: "json"}
	out := MapToSettings(SettingsToMap(in))
	if out != in {
		t.Errorf("expected %+v, got %+v", in, out)
	}
}

func TestApplyDefaultSettings(t *testing.T) {
	var settings Settings
	ApplyDefaultSettings(&settings)
	if settings.Timezone != constants.DefaultTimezone {
		t.Errorf("expected default timezone, got %q", settings.Timezone)
	}
	if settings.ExportFormat != constants.DefaultExportFormat {
		t.Errorf("expected default export format, got %q", settings.ExportFormat)
	}

	custom := Settings{Timezone: "Asia/Tokyo", ExportFormat: "json"}
	ApplyDefaultSettings(&custom)
	if custom.Timezone != "Asia/Tokyo" || custom.ExportFormat != "json" {
		t.Errorf("defaults should not overwrite set values, got %+v", custom)
	}
}
