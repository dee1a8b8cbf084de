package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

// Mode is the persisted theme preference.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// ParseMode returns the mode for s, or false when s is not a known mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeLight, ModeDark:
		return Mode(s), true
	default:
		return "", false
	}
}

// Toggle returns the opposite mode.
func (m Mode) Toggle() Mode {
	if m == ModeDark {
		return ModeLight
	}
	return ModeDark
}

// Palette is the semantic color set one mode exposes to clients. All values
// are #RRGGBB hex strings.
type Palette struct {
	Background          string `json:"background"`
	Primary             string `json:"primary"`
	Secondary           string `json:"secondary"`
	Text                string `json:"text"`
	TextSecondary       string `json:"text_secondary"`
	Accent              string `json:"accent"`
	Card                string `json:"card"`
	Border              string `json:"border"`
	ActionButton        string `json:"action_button"`
	ActionButtonText    string `json:"action_button_text"`
	HeaderBackground    string `json:"header_background"`
	InputBackground     string `json:"input_background"`
	ChatMessageBg       string `json:"chat_message_bg"`
	ChatMessageText     string `json:"chat_message_text"`
	ChatUserMessageBg   string `json:"chat_user_message_bg"`
	ChatUserMessageText string `json:"chat_user_message_text"`
	Success             string `json:"success"`
	Warning             string `json:"warning"`
	Error               string `json:"error"`
	GradientStart       string `json:"gradient_start"`
	GradientEnd         string `json:"gradient_end"`
}

// Config holds both palettes.
type Config struct {
	Light Palette `json:"light"`
	Dark  Palette `json:"dark"`
}

// Default returns the built-in palettes.
func Default() *Config {
	return &Config{
		Light: Palette{
			Background:          "#FFFFFF",
			Primary:             "#6246EA",
			Secondary:           "#D1D1E9",
			Text:                "#2B2C34",
			TextSecondary:       "#6B6C74",
			Accent:              "#E45858",
			Card:                "#F8F8FC",
			Border:              "#E6E6E6",
			ActionButton:        "#6246EA",
			ActionButtonText:    "#FFFFFF",
			HeaderBackground:    "#F8F8FC",
			InputBackground:     "#F8F8FC",
			ChatMessageBg:       "#F0F0F8",
			ChatMessageText:     "#2B2C34",
			ChatUserMessageBg:   "#D8D5F2",
			ChatUserMessageText: "#2B2C34",
			Success:             "#4CAF50",
			Warning:             "#FFC107",
			Error:               "#E45858",
			GradientStart:       "#7E5AF0",
			GradientEnd:         "#6246EA",
		},
		Dark: Palette{
			Background:          "#2B2C34",
			Primary:             "#7E5AF0",
			Secondary:           "#3A3B47",
			Text:                "#FFFFFE",
			TextSecondary:       "#B0B1BB",
			Accent:              "#FF6B6B",
			Card:                "#3A3B47",
			Border:              "#4A4B57",
			ActionButton:        "#7E5AF0",
			ActionButtonText:    "#FFFFFF",
			HeaderBackground:    "#3A3B47",
			InputBackground:     "#3A3B47",
			ChatMessageBg:       "#3A3B47",
			ChatMessageText:     "#FFFFFE",
			ChatUserMessageBg:   "#4D3BAA",
			ChatUserMessageText: "#FFFFFE",
			Success:             "#4CAF50",
			Warning:             "#FFC107",
			Error:               "#FF6B6B",
			GradientStart:       "#7E5AF0",
			GradientEnd:         "#6246EA",
		},
	}
}

// Load reads a palette config from path. A missing file falls back to the
// built-in palettes.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid theme file: %w", err)
	}
	return &config, nil
}

// Palette returns the palette for a mode.
func (c *Config) Palette(mode Mode) Palette {
	if mode == ModeDark {
		return c.Dark
	}
	return c.Light
}

func validate(config *Config) error {
	if err := validatePalette("light", config.Light); err != nil {
		return err
	}
	return validatePalette("dark", config.Dark)
}

func validatePalette(name string, p Palette) error {
	fields := map[string]string{
		"background":             p.Background,
		"primary":                p.Primary,
		"secondary":              p.Secondary,
		"text":                   p.Text,
		"text_secondary":         p.TextSecondary,
		"accent":                 p.Accent,
		"card":                   p.Card,
		"border":                 p.Border,
		"action_button":          p.ActionButton,
		"action_button_text":     p.ActionButtonText,
		"header_background":      p.HeaderBackground,
		"input_background":       p.InputBackground,
		"chat_message_bg":        p.ChatMessageBg,
		"chat_message_text":      p.ChatMessageText,
		"chat_user_message_bg":   p.ChatUserMessageBg,
		"chat_user_message_text": p.ChatUserMessageText,
		"success":                p.Success,
		"warning":                p.Warning,
		"error":                  p.Error,
		"gradient_start":         p.GradientStart,
		"gradient_end":           p.GradientEnd,
	}
	for field, color := range fields {
		if color == "" {
			return fmt.Errorf("%s palette missing color: %s", name, field)
		}
		if !isValidHexColor(color) {
			return fmt.Errorf("%s palette has invalid hex color for %s: %s", name, field, color)
		}
	}
	return nil
}

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func isValidHexColor(color string) bool {
	return hexColorPattern.MatchString(color)
}
