package serialize

import (
	"encoding/json"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/safehold-dev/safehold/pkg/errors"
	"github.com/safehold-dev/safehold/pkg/filesystem"
	"github.com/safehold-dev/safehold/pkg/types"
)

// Serializer is the two-operation contract the guard components consume:
// write a value to a path, read a value back from a path. Backends are
// interchangeable; the protection protocols never inspect the bytes.
type Serializer interface {
	// Store writes value to path, replacing any existing content.
	Store(value interface{}, path string) error

	// Load reads the value previously stored at path.
	Load(path string) (interface{}, error)
}

// Format names a built-in serializer backend.
type Format string

const (
	JSON Format = "json"
	TOML Format = "toml"
	YAML Format = "yaml"
)

// New returns the built-in serializer for the given format, running
// against the OS filesystem.
func New(format Format) (Serializer, error) {
	return NewFS(format, filesystem.NewOS())
}

// NewFS returns the built-in serializer for the given format against
// an injected filesystem.
func NewFS(format Format, fs types.FS) (Serializer, error) {
	switch format {
	case JSON:
		return &codecSerializer{fs: fs, marshal: jsonMarshal, unmarshal: json.Unmarshal}, nil
	case TOML:
		return &codecSerializer{fs: fs, marshal: toml.Marshal, unmarshal: tomlUnmarshal}, nil
	case YAML:
		return &codecSerializer{fs: fs, marshal: yaml.Marshal, unmarshal: yaml.Unmarshal}, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown serialization format %q", format)
	}
}

// codecSerializer adapts a marshal/unmarshal pair to the Serializer
// contract with plain 0644 file writes.
type codecSerializer struct {
	fs        types.FS
	marshal   func(interface{}) ([]byte, error)
	unmarshal func([]byte, interface{}) error
}

func (s *codecSerializer) Store(value interface{}, path string) error {
	data, err := s.marshal(value)
	if err != nil {
		return errors.Wrapf(err, errors.ErrSerialize, "failed to encode value for %s", path)
	}
	if err := s.fs.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to write %s", path)
	}
	return nil
}

func (s *codecSerializer) Load(path string) (interface{}, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to read %s", path)
	}
	var value interface{}
	if err := s.unmarshal(data, &value); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDeserialize, "failed to decode %s", path)
	}
	return value, nil
}

// jsonMarshal indents output so stored files stay diffable.
func jsonMarshal(value interface{}) ([]byte, error) {
	return json.MarshalIndent(value, "", "  ")
}

// tomlUnmarshal decodes through a map because TOML documents are
// tables at the top level; go-toml will not target a bare interface.
func tomlUnmarshal(data []byte, v interface{}) error {
	var m map[string]interface{}
	if err := toml.Unmarshal(data, &m); err != nil {
		return err
	}
	*(v.(*interface{})) = m
	return nil
}
