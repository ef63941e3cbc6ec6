package session

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/trackerview/internal/filter"
	"github.com/hupe1980/trackerview/internal/version"
)

// StateFile is the compact serialized selection of a filter set. Each
// filter is a string of '0' and '1' flags, one per option, with leading
// zeros omitted. Filters with every option selected are omitted entirely.
type StateFile struct {
	Version string            `yaml:"version"`
	Filters map[string]string `yaml:"filters,omitempty"`
}

// EncodeState captures the selection of every filter in set.
func EncodeState(set *filter.Set) StateFile {
	sf := StateFile{
		Version: version.StateFormat,
		Filters: make(map[string]string),
	}

	for _, m := range set.All() {
		s := m.State()
		if filter.AreAllSelected(s) {
			continue
		}

		flags := make([]bool, len(s))
		for i, o := range s {
			flags[i] = o.Selected
		}

		sf.Filters[m.Name()] = encodeFlags(flags)
	}

	return sf
}

// CheckVersion reports whether the state file can be read by this binary.
func (sf StateFile) CheckVersion() error {
	if sf.Version == "" {
		return errors.New("state file has no version")
	}

	v, err := semver.NewVersion(sf.Version)
	if err != nil {
		return fmt.Errorf("invalid state file version %q: %w", sf.Version, err)
	}

	current := semver.MustParse(version.StateFormat)

	c, err := semver.NewConstraint(fmt.Sprintf("^%d", current.Major()))
	if err != nil {
		return fmt.Errorf("building version constraint: %w", err)
	}

	if !c.Check(v) {
		return fmt.Errorf("unsupported state file version %s (supported: %s)", v, c)
	}

	return nil
}

// ApplyState restores the selection recorded in sf. Filters absent from sf
// are fully selected. The view is recomputed once.
func (s *Session) ApplyState(sf StateFile) error {
	if err := sf.CheckVersion(); err != nil {
		return err
	}

	decoded := make(map[string][]bool, len(sf.Filters))

	for name, enc := range sf.Filters {
		if _, err := s.Filters.ByName(name); err != nil {
			return fmt.Errorf("state file: %w", err)
		}

		flags, err := decodeFlags(enc)
		if err != nil {
			return fmt.Errorf("state file filter %q: %w", name, err)
		}

		decoded[name] = flags
	}

	s.View.Batch(func() {
		for _, m := range s.Filters.All() {
			flags, ok := decoded[m.Name()]
			if !ok {
				m.SelectAll()
				continue
			}

			m.ApplyBoolArray(flags)
		}
	})

	return nil
}

// ReadState decodes a YAML state file.
func ReadState(r io.Reader) (StateFile, error) {
	var sf StateFile

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&sf); err != nil {
		if errors.Is(err, io.EOF) {
			return StateFile{}, errors.New("state file is empty")
		}

		return StateFile{}, fmt.Errorf("decoding state file: %w", err)
	}

	return sf, nil
}

// WriteState encodes sf as YAML.
func WriteState(w io.Writer, sf StateFile) error {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(sf); err != nil {
		return fmt.Errorf("encoding state file: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding state file: %w", err)
	}

	_, err := w.Write(buf.Bytes())

	return err
}

// LoadStateFile reads the state file at path.
func LoadStateFile(path string) (StateFile, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided state file
	if err != nil {
		return StateFile{}, fmt.Errorf("opening state file: %w", err)
	}
	defer f.Close()

	sf, err := ReadState(f)
	if err != nil {
		return StateFile{}, fmt.Errorf("%s: %w", path, err)
	}

	return sf, nil
}

// SaveStateFile writes sf to path, creating parent directories.
func SaveStateFile(path string, sf StateFile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := WriteState(&buf, sf); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // state files are not secret
		return fmt.Errorf("writing state file %s: %w", path, err)
	}

	return nil
}

// encodeFlags renders flags as '0'/'1' with leading zeros trimmed. Options
// without a flag are unselected on decode, so the trimmed zeros are implied.
func encodeFlags(flags []bool) string {
	var b strings.Builder

	for _, f := range flags {
		if f {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}

	return strings.TrimLeft(b.String(), "0")
}

func decodeFlags(s string) ([]bool, error) {
	flags := make([]bool, len(s))

	for i, c := range s {
		switch c {
		case '0':
		case '1':
			flags[i] = true
		default:
			return nil, fmt.Errorf("invalid flag %q at position %d", c, i)
		}
	}

	return flags, nil
}
