// ABOUTME: Response DTOs for the settings endpoints
// ABOUTME: Settings are returned with the API key masked plus the panel's choice lists

package responses

import "reader-assist/core/domain"

// SettingsResponse is the current settings record
type SettingsResponse struct {
	Settings domain.Settings `json:"settings" doc:"Current settings, API key masked"`
	Options  SettingsOptions `json:"options" doc:"Values offered by the settings panel"`
}

// SettingsOptions lists the choices offered by the settings panel
type SettingsOptions struct {
	Fonts             []string                  `json:"fonts"`
	LineSpacings      []LineSpacingOption       `json:"lineSpacings"`
	TranslateServices []domain.TranslateService `json:"translateServices"`
	FontSize          RangeOption               `json:"fontSize"`
	PageWidth         RangeOption               `json:"pageWidth"`
}

// LineSpacingOption is one line spacing radio button
type LineSpacingOption struct {
	Label string             `json:"label"`
	Value domain.LineSpacing `json:"value"`
}

// RangeOption describes a slider
type RangeOption struct {
	Min  int `json:"min"`
	Max  int `json:"max"`
	Step int `json:"step"`
}
