package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/ionut-t/modaledit/core"
)

const (
	SettingsFormatTOML SettingsFormat = "toml"
	SettingsFormatJSON SettingsFormat = "json"

	TabWidthDefault = 4
	TabWidthMax     = 16
	ThemeDefault    = "dracula"

	dirEnv = "MODALEDIT_CONFIG_DIR"
)

type Settings struct {
	Editor EditorSettings `json:"editor" toml:"editor"`
	UI     UISettings     `json:"ui"     toml:"ui"`
}

type EditorSettings struct {
	TabWidth       int  `json:"tab_width"       toml:"tab_width"`
	InsertSpaces   bool `json:"insert_spaces"   toml:"insert_spaces"`
	StrictCommands bool `json:"strict_commands" toml:"strict_commands"`
	SyncClipboard  bool `json:"sync_clipboard"  toml:"sync_clipboard"`
}

type UISettings struct {
	Theme           string `json:"theme"            toml:"theme"`
	LineNumbers     bool   `json:"line_numbers"     toml:"line_numbers"`
	RelativeNumbers bool   `json:"relative_numbers" toml:"relative_numbers"`
}

type SettingsFormat string
type SettingsHandle struct {
	Path   string
	Format SettingsFormat
}

func DefaultSettings() Settings {
	opts := core.DefaultOptions()
	return Settings{
		Editor: EditorSettings{
			TabWidth:     opts.TabWidth,
			InsertSpaces: opts.InsertSpaces,
		},
		UI: UISettings{
			Theme:       ThemeDefault,
			LineNumbers: true,
		},
	}
}

// Dir is $MODALEDIT_CONFIG_DIR, else <user config dir>/modaledit.
func Dir() string {
	if dir := os.Getenv(dirEnv); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return ".modaledit"
	}
	return filepath.Join(base, "modaledit")
}

// tries loading TOML first, then JSON, then returns defaults if neither exists.
// parse errors fail immediately but missing files just skip to the next format.
func LoadSettings() (Settings, SettingsHandle, error) {
	dir := Dir()
	candidates := []SettingsHandle{
		{Path: filepath.Join(dir, "settings.toml"), Format: SettingsFormatTOML},
		{Path: filepath.Join(dir, "settings.json"), Format: SettingsFormatJSON},
	}

	var accumulated error
	for _, candidate := range candidates {
		settings, err := LoadFile(candidate.Path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		var perr *ParseError
		if errors.As(err, &perr) {
			return Settings{}, SettingsHandle{}, err
		}
		if err != nil {
			accumulated = errors.Join(accumulated, err)
			continue
		}
		return settings, candidate, nil
	}

	if accumulated != nil {
		return Settings{}, SettingsHandle{}, accumulated
	}

	return DefaultSettings(), candidates[0], nil
}

// ParseError reports a settings file that exists but does not decode.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse settings %q: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadFile reads one settings file; the format follows the extension.
// Keys missing from the file keep their defaults.
func LoadFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings %q: %w", path, err)
	}

	settings, err := decodeSettings(data, formatOf(path))
	if err != nil {
		return Settings{}, &ParseError{Path: path, Err: err}
	}
	return Normalise(settings), nil
}

func formatOf(path string) SettingsFormat {
	if filepath.Ext(path) == ".json" {
		return SettingsFormatJSON
	}
	return SettingsFormatTOML
}

func decodeSettings(data []byte, format SettingsFormat) (Settings, error) {
	settings := DefaultSettings()
	switch format {
	case SettingsFormatTOML:
		if err := toml.Unmarshal(data, &settings); err != nil {
			return Settings{}, err
		}
	case SettingsFormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&settings); err != nil {
			return Settings{}, err
		}
	default:
		return Settings{}, fmt.Errorf("unsupported settings format %q", format)
	}
	return settings, nil
}

// Normalise clamps values the editor cannot use.
func Normalise(settings Settings) Settings {
	switch {
	case settings.Editor.TabWidth <= 0:
		settings.Editor.TabWidth = TabWidthDefault
	case settings.Editor.TabWidth > TabWidthMax:
		settings.Editor.TabWidth = TabWidthMax
	}
	if settings.UI.Theme == "" {
		settings.UI.Theme = ThemeDefault
	}
	return settings
}

// EditorOptions maps the editor section onto core options.
func (s Settings) EditorOptions() core.Options {
	return core.Options{
		TabWidth:       s.Editor.TabWidth,
		InsertSpaces:   s.Editor.InsertSpaces,
		StrictCommands: s.Editor.StrictCommands,
		SyncClipboard:  s.Editor.SyncClipboard,
	}
}

func SaveSettings(settings Settings, handle SettingsHandle) error {
	settings = Normalise(settings)
	path := handle.Path
	format := handle.Format
	if path == "" {
		path = filepath.Join(Dir(), "settings.toml")
	}
	if format == "" {
		format = formatOf(path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure settings directory: %w", err)
	}

	var (
		data []byte
		err  error
	)

	switch format {
	case SettingsFormatTOML:
		data, err = toml.Marshal(settings)
	case SettingsFormatJSON:
		buffer := &bytes.Buffer{}
		encoder := json.NewEncoder(buffer)
		encoder.SetIndent("", "  ")
		if err = encoder.Encode(settings); err == nil {
			data = buffer.Bytes()
		}
	default:
		return fmt.Errorf("unsupported settings format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings %q: %w", path, err)
	}
	return nil
}

// write to a temp file then rename so readers never see a partial file.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".modaledit-settings-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return errors.Join(err, tmp.Close())
	}
	if err := tmp.Chmod(perm); err != nil {
		return errors.Join(err, tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
