// Package credentials turns a plain password list into the participant file
// consumed by the pairing tools. Passwords never reach the pairing code.
package credentials

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/appengine-ltd/gift-exchange/internal/roster"
)

// Hash returns the lowercase hex SHA-256 digest of s.
func Hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

type Entry struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

var ErrMalformedEntry = errors.New("each entry must be {name: string, password: string}")

// HashEntries converts entries into participants, keeping input order.
func HashEntries(entries []Entry) ([]roster.Participant, error) {
	out := make([]roster.Participant, 0, len(entries))
	for i, e := range entries {
		if e.Name == nil || e.Password == nil {
			return nil, fmt.Errorf("entry %d: %w", i, ErrMalformedEntry)
		}
		out = append(out, roster.Participant{Name: *e.Name, PasswordHash: Hash(*e.Password)})
	}
	return out, nil
}

// BuildFile reads the password list at pwPath, hashes it and writes the
// participant file to outPath. When templatePath is set its top-level keys are
// carried over, except participants. An unreadable template is logged and
// skipped.
func BuildFile(pwPath, outPath, templatePath string, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	raw, err := os.ReadFile(pwPath)
	if err != nil {
		return 0, fmt.Errorf("read passwords: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return 0, fmt.Errorf("passwords file must be an array of {name, password}: %w", err)
	}
	participants, err := HashEntries(entries)
	if err != nil {
		return 0, err
	}

	doc := map[string]any{}
	if templatePath != "" {
		if tpl, err := readTemplate(templatePath); err != nil {
			logger.Warn("could not read template file, continuing without it", zap.String("path", templatePath), zap.Error(err))
		} else {
			doc = tpl
		}
	}
	doc["participants"] = participants

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(outPath, data, 0o600); err != nil {
		return 0, fmt.Errorf("write participants: %w", err)
	}
	return len(participants), nil
}

func readTemplate(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tpl map[string]any
	if err := json.Unmarshal(raw, &tpl); err != nil {
		return nil, err
	}
	if tpl == nil {
		tpl = map[string]any{}
	}
	return tpl, nil
}
