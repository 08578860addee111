package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/appengine-ltd/gift-exchange/internal/pairing"
)

type Participant struct {
	Name         string `json:"name" yaml:"name"`
	PasswordHash string `json:"passwordHash,omitempty" yaml:"passwordHash,omitempty"`
}

// Dataset is the participant file shared with the onboarding tooling.
// Exclusions are [giver, receiver] pairs.
type Dataset struct {
	Participants []Participant `json:"participants" yaml:"participants"`
	Exclusions   [][]string    `json:"exclusions,omitempty" yaml:"exclusions,omitempty"`
}

type LoadOptions struct {
	// Strict turns exclusions naming unknown participants into load errors.
	Strict bool
	Logger *zap.Logger
}

// Load reads a JSON or YAML dataset and validates it.
func Load(path string, opts LoadOptions) (*Dataset, error) {
	ds, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := ds.Validate(opts); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Read decodes a JSON or YAML dataset without validating it.
func Read(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	ds, err := Parse(data, formatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func Parse(data []byte, format Format) (*Dataset, error) {
	var ds Dataset
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &ds)
	default:
		err = json.Unmarshal(data, &ds)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", pairing.ErrInvalidInput, format, err)
	}
	return &ds, nil
}

// Validate checks the dataset before any seed runs. Every failure wraps
// pairing.ErrInvalidInput.
func (d *Dataset) Validate(opts LoadOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(d.Participants) < 2 {
		return fmt.Errorf("%w: need at least 2 participants, got %d", pairing.ErrInvalidInput, len(d.Participants))
	}
	known := make(map[string]struct{}, len(d.Participants))
	for i, p := range d.Participants {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: participant %d is missing a name", pairing.ErrInvalidInput, i)
		}
		if _, dup := known[p.Name]; dup {
			return fmt.Errorf("%w: duplicate participant name %q", pairing.ErrInvalidInput, p.Name)
		}
		known[p.Name] = struct{}{}
	}

	names := d.Names()
	for i, ex := range d.Exclusions {
		if len(ex) != 2 {
			return fmt.Errorf("%w: exclusion %d must be [giver, receiver], got %d entries", pairing.ErrInvalidInput, i, len(ex))
		}
		for _, name := range ex {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("%w: exclusion %d has an empty name", pairing.ErrInvalidInput, i)
			}
			if _, ok := known[name]; ok {
				continue
			}
			msg := fmt.Sprintf("exclusion %d names unknown participant %q", i, name)
			if s := Suggest(name, names); s != "" {
				msg += fmt.Sprintf(" (did you mean %q?)", s)
			}
			if opts.Strict {
				return fmt.Errorf("%w: %s", pairing.ErrInvalidInput, msg)
			}
			logger.Warn(msg, zap.Int("exclusion", i), zap.String("name", name))
		}
	}
	return nil
}

// Names returns participant names in file order.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.Participants))
	for i, p := range d.Participants {
		out[i] = p.Name
	}
	return out
}

func (d *Dataset) ExclusionSet() pairing.ExclusionSet {
	set := make(pairing.ExclusionSet, len(d.Exclusions))
	for _, ex := range d.Exclusions {
		if len(ex) == 2 {
			set.Add(ex[0], ex[1])
		}
	}
	return set
}
