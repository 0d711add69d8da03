package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/bulkmv/pkg/errors"
	"github.com/arthur-debert/bulkmv/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// AppName names the config, cache and env namespaces.
const AppName = "bulkmv"

// EnvPrefix prefixes environment overrides: BULKMV_HANDOFF_DIR sets handoff.dir.
const EnvPrefix = "BULKMV_"

// Config is the effective configuration of a run
type Config struct {
	Editor  []string `koanf:"editor"`
	Confirm bool     `koanf:"confirm"`
	Handoff Handoff  `koanf:"handoff"`
	UI      UI       `koanf:"ui"`
	Watch   Watch    `koanf:"watch"`
	Events  Events   `koanf:"events"`

	// Source is the user config file that was loaded, if any
	Source string
}

// Handoff configures the editor handoff file
type Handoff struct {
	Dir    string `koanf:"dir"`
	Prefix string `koanf:"prefix"`
}

// UI configures operator-facing output
type UI struct {
	Format string `koanf:"format"`
	Clear  bool   `koanf:"clear"`
}

// Watch configures the watch subsystem
type Watch struct {
	Enabled bool          `koanf:"enabled"`
	Settle  time.Duration `koanf:"settle"`
}

// Events configures the notification event output
type Events struct {
	JSON bool `koanf:"json"`
}

// Options controls where configuration is read from
type Options struct {
	// Path is an explicit config file; it must exist
	Path string
	// Overrides are dotted keys set from command-line flags
	Overrides map[string]interface{}
}

// Load builds the configuration from the embedded defaults, the user file,
// the environment and opts.Overrides, later layers winning.
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config file
	path, err := userConfigPath(opts.Path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded user config")
	}

	// 3. Environment
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Flags
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flag overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.Source = path

	postProcessConfig(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("handoffDir", cfg.Handoff.Dir).
		Str("format", cfg.UI.Format).
		Bool("confirm", cfg.Confirm).
		Msg("Configuration loaded")
	return cfg, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// Default returns the configuration built from the embedded defaults only.
func Default() *Config {
	k := koanf.New(".")
	// The embedded file is part of the binary; a failure here is a build defect
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic(err)
	}
	cfg, err := unmarshal(k)
	if err != nil {
		panic(err)
	}
	postProcessConfig(cfg)
	return cfg
}

func userConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", explicit).
				WithDetail("path", explicit)
		}
		return explicit, nil
	}

	xdg.Reload()
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		path := filepath.Join(xdg.ConfigHome, AppName, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

func postProcessConfig(cfg *Config) {
	// A single editor value from the environment carries its own arguments
	if len(cfg.Editor) == 1 {
		cfg.Editor = strings.Fields(cfg.Editor[0])
	}
	if cfg.Handoff.Dir == "" {
		xdg.Reload()
		cfg.Handoff.Dir = filepath.Join(xdg.CacheHome, AppName)
	}
	if cfg.Handoff.Prefix == "" {
		cfg.Handoff.Prefix = "bulk"
	}
	cfg.UI.Format = strings.ToLower(cfg.UI.Format)
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	switch c.UI.Format {
	case "", "auto", "term", "terminal", "text", "plain":
	default:
		return errors.Newf(errors.ErrConfigValid, "ui.format must be auto, term or text, got %q", c.UI.Format).
			WithDetail("key", "ui.format")
	}
	if c.Watch.Settle < 0 {
		return errors.Newf(errors.ErrConfigValid, "watch.settle must not be negative, got %s", c.Watch.Settle).
			WithDetail("key", "watch.settle")
	}
	if strings.ContainsRune(c.Handoff.Prefix, filepath.Separator) {
		return errors.Newf(errors.ErrConfigValid, "handoff.prefix must not contain %q", filepath.Separator).
			WithDetail("key", "handoff.prefix")
	}
	return nil
}

// TOML renders the effective configuration.
func (c *Config) TOML() ([]byte, error) {
	editor := c.Editor
	if editor == nil {
		editor = []string{}
	}
	view := map[string]interface{}{
		"editor":  editor,
		"confirm": c.Confirm,
		"handoff": map[string]interface{}{
			"dir":    c.Handoff.Dir,
			"prefix": c.Handoff.Prefix,
		},
		"ui": map[string]interface{}{
			"format": c.UI.Format,
			"clear":  c.UI.Clear,
		},
		"watch": map[string]interface{}{
			"enabled": c.Watch.Enabled,
			"settle":  c.Watch.Settle.String(),
		},
		"events": map[string]interface{}{
			"json": c.Events.JSON,
		},
	}

	data, err := gotoml.Marshal(view)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return data, nil
}
