package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/safehold-dev/safehold/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// Config holds the runtime settings of the safehold tooling.
type Config struct {
	Store struct {
		Format string `koanf:"format"`
	} `koanf:"store"`
	Safehouse struct {
		Name string `koanf:"name"`
	} `koanf:"safehouse"`
	Notices struct {
		Enabled bool `koanf:"enabled"`
	} `koanf:"notices"`
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "not implemented")
}

// Load builds the configuration in three layers: embedded defaults,
// then an optional safehold.toml in dir (or the working directory when
// dir is empty), then SAFEHOLD_ environment variables.
func Load(dir string) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Optional config file
	if dir == "" {
		dir = "."
	}
	for _, filename := range []string{".safehold.toml", "safehold.toml"} {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
			}
			break
		}
	}

	// 3. Environment overrides, SAFEHOLD_STORE_FORMAT -> store.format
	err := k.Load(env.Provider("SAFEHOLD_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "SAFEHOLD_")), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}
