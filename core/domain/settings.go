// ABOUTME: Settings domain model for the reader overlay
// ABOUTME: Defines the persisted settings record, its defaults and partial-update patch

package domain

// Bounds for the numeric layout settings. The store accepts any value;
// producers clamp with ClampFontSize and ClampPageWidth before submitting.
const (
	MinFontSize      = 12
	MaxFontSize      = 40
	MinPageWidth     = 400
	MaxPageWidth     = 1900
	PageWidthStep    = 10
	DefaultFontSize  = 18
	DefaultPageWidth = 800
	DefaultModel     = "gpt-4o-mini"
	DefaultFont      = "Default"
)

// LineSpacing is the CSS line height applied to the reader page
type LineSpacing string

const (
	LineSpacingSmall  LineSpacing = "1.4em"
	LineSpacingMedium LineSpacing = "1.8em"
	LineSpacingLarge  LineSpacing = "2.4em"
)

// LineSpacings lists the selectable spacings in display order
var LineSpacings = []LineSpacing{LineSpacingSmall, LineSpacingMedium, LineSpacingLarge}

// Label returns the name shown next to the spacing radio button
func (l LineSpacing) Label() string {
	switch l {
	case LineSpacingSmall:
		return "Small"
	case LineSpacingMedium:
		return "Medium"
	case LineSpacingLarge:
		return "Large"
	default:
		return string(l)
	}
}

// TranslateService names the backend used for page translation
type TranslateService string

const (
	GoogleTranslate  TranslateService = "google_translate"
	TencentTranslate TranslateService = "tencent_translate"
	OpenAITranslate  TranslateService = "openai_translate"
)

// TranslateServices lists the supported translation backends
var TranslateServices = []TranslateService{GoogleTranslate, TencentTranslate, OpenAITranslate}

// IsValid reports whether s is one of the known translation backends
func (s TranslateService) IsValid() bool {
	for _, known := range TranslateServices {
		if s == known {
			return true
		}
	}
	return false
}

// Fonts is the list of font families offered by the settings panel
var Fonts = []string{
	"Default",
	"Arial",
	"Arial Black",
	"Athelas",
	"Bookerly",
	"Chakra Petch",
	"Comic Sans",
	"Comic Sans MS",
	"Constantia",
	"Courier New",
	"Courier",
	"Didot",
	"Fira Code",
	"Georgia",
	"Gill Sans",
	"IBM Plex Sans",
	"Impact",
	"Iowan Old Style",
	"Palatino",
	"Optima",
	"Sans-serif",
	"Seravek",
	"Serif",
	"Sitka Text",
	"Times New Roman",
	"Trebuchet MS",
}

// Settings is the per-profile configuration shared by every overlay consumer
type Settings struct {
	FontFamily       string           `json:"fontFamily"`
	FontSize         int              `json:"fontSize"`
	LineSpacing      LineSpacing      `json:"lineSpacing"`
	PageWidth        int              `json:"pageWidth"`
	TranslateService TranslateService `json:"translateService"`
	OpenAIKey        string           `json:"openaiKey"`
	Model            string           `json:"model"`
	SummaryPrompt    string           `json:"summaryPrompt"`
}

// DefaultSettings returns the settings used before anything has been persisted
func DefaultSettings() Settings {
	return Settings{
		FontFamily:       DefaultFont,
		FontSize:         DefaultFontSize,
		LineSpacing:      LineSpacingMedium,
		PageWidth:        DefaultPageWidth,
		TranslateService: GoogleTranslate,
		Model:            DefaultModel,
	}
}

// SettingsPatch carries a partial settings update. Nil fields are left untouched.
type SettingsPatch struct {
	FontFamily       *string           `json:"fontFamily,omitempty"`
	FontSize         *int              `json:"fontSize,omitempty"`
	LineSpacing      *LineSpacing      `json:"lineSpacing,omitempty"`
	PageWidth        *int              `json:"pageWidth,omitempty"`
	TranslateService *TranslateService `json:"translateService,omitempty"`
	OpenAIKey        *string           `json:"openaiKey,omitempty"`
	Model            *string           `json:"model,omitempty"`
	SummaryPrompt    *string           `json:"summaryPrompt,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p SettingsPatch) IsEmpty() bool {
	return p.FontFamily == nil && p.FontSize == nil && p.LineSpacing == nil &&
		p.PageWidth == nil && p.TranslateService == nil && p.OpenAIKey == nil &&
		p.Model == nil && p.SummaryPrompt == nil
}

// Apply returns a copy of s with the non-nil patch fields merged in
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.FontFamily != nil {
		s.FontFamily = *p.FontFamily
	}
	if p.FontSize != nil {
		s.FontSize = *p.FontSize
	}
	if p.LineSpacing != nil {
		s.LineSpacing = *p.LineSpacing
	}
	if p.PageWidth != nil {
		s.PageWidth = *p.PageWidth
	}
	if p.TranslateService != nil {
		s.TranslateService = *p.TranslateService
	}
	if p.OpenAIKey != nil {
		s.OpenAIKey = *p.OpenAIKey
	}
	if p.Model != nil {
		s.Model = *p.Model
	}
	if p.SummaryPrompt != nil {
		s.SummaryPrompt = *p.SummaryPrompt
	}
	return s
}

// Masked returns a copy of s safe to log or return to clients
func (s Settings) Masked() Settings {
	if len(s.OpenAIKey) > 8 {
		s.OpenAIKey = s.OpenAIKey[:3] + "..." + s.OpenAIKey[len(s.OpenAIKey)-4:]
	} else if s.OpenAIKey != "" {
		s.OpenAIKey = "***"
	}
	return s
}

// ClampFontSize pins a slider value into the supported font size range
func ClampFontSize(size int) int {
	if size < MinFontSize {
		return MinFontSize
	}
	if size > MaxFontSize {
		return MaxFontSize
	}
	return size
}

// ClampPageWidth pins a slider value into the supported page width range,
// snapping to the slider step
func ClampPageWidth(width int) int {
	if width < MinPageWidth {
		return MinPageWidth
	}
	if width > MaxPageWidth {
		return MaxPageWidth
	}
	offset := (width - MinPageWidth) % PageWidthStep
	if offset*2 >= PageWidthStep {
		width += PageWidthStep - offset
	} else {
		width -= offset
	}
	if width > MaxPageWidth {
		width = MaxPageWidth
	}
	return width
}
