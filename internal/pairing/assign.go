package pairing

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxAttempts is the default number of derived-seed retries after the first
// shuffle is rejected.
const MaxAttempts = 10000

type Pair struct {
	Giver    string `json:"giver"`
	Receiver string `json:"receiver"`
}

// Assignment is an accepted pairing. Pairs follow participant order.
type Assignment struct {
	Seed     string `json:"seed"`
	Attempts int    `json:"attempts"`
	Pairs    []Pair `json:"pairs"`
}

func (a Assignment) Receiver(giver string) (string, bool) {
	for _, p := range a.Pairs {
		if p.Giver == giver {
			return p.Receiver, true
		}
	}
	return "", false
}

func (a Assignment) Map() map[string]string {
	out := make(map[string]string, len(a.Pairs))
	for _, p := range a.Pairs {
		out[p.Giver] = p.Receiver
	}
	return out
}

// Check verifies that pairs follow names as givers, that every participant
// receives exactly once and that no pair breaks the self or exclusion rules.
func (a Assignment) Check(names []string, exclusions ExclusionSet) error {
	seen := make(map[string]struct{}, len(a.Pairs))
	for _, p := range a.Pairs {
		seen[p.Receiver] = struct{}{}
	}
	if len(a.Pairs) != len(names) || len(seen) != len(names) {
		return fmt.Errorf("%w: %d distinct receivers for %d participants", ErrDuplicateReceiver, len(seen), len(names))
	}
	for _, name := range names {
		if _, ok := seen[name]; !ok {
			return fmt.Errorf("%w: %q never receives", ErrDuplicateReceiver, name)
		}
	}
	receivers := make([]string, len(a.Pairs))
	for i, p := range a.Pairs {
		if p.Giver != names[i] {
			return fmt.Errorf("pair %d gives from %q, want %q", i, p.Giver, names[i])
		}
		receivers[i] = p.Receiver
	}
	return Validate(names, receivers, exclusions)
}

type options struct {
	maxAttempts int
}

type Option func(*options)

// WithMaxAttempts overrides MaxAttempts. Values below zero are treated as zero.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		o.maxAttempts = max(0, n)
	}
}

// Validate rejects a candidate where someone draws themselves or an excluded
// receiver.
func Validate(names, candidate []string, exclusions ExclusionSet) error {
	if len(names) != len(candidate) {
		return fmt.Errorf("candidate has %d entries for %d participants", len(candidate), len(names))
	}
	for i, giver := range names {
		receiver := candidate[i]
		if giver == receiver {
			return fmt.Errorf("%s would draw themselves", giver)
		}
		if exclusions.Excludes(giver, receiver) {
			return fmt.Errorf("%s is excluded from drawing %s", giver, receiver)
		}
	}
	return nil
}

// Generate returns a seeded derangement of names that respects exclusions.
// The first shuffle uses seed itself; rejected shuffles retry with
// DeriveSeed(seed, n) until the attempt budget runs out.
func Generate(names []string, exclusions ExclusionSet, seed string, opts ...Option) (Assignment, error) {
	o := options{maxAttempts: MaxAttempts}
	for _, opt := range opts {
		opt(&o)
	}
	if err := checkNames(names); err != nil {
		return Assignment{}, err
	}

	attemptSeed := seed
	for attempt := 0; ; attempt++ {
		candidate := Shuffle(names, attemptSeed)
		if Validate(names, candidate, exclusions) == nil {
			return zip(seed, attempt+1, names, candidate), nil
		}
		if attempt >= o.maxAttempts {
			return Assignment{}, fmt.Errorf("%w after %d attempts, check exclusions or participant count", ErrPairingExhausted, attempt+1)
		}
		// Same value as DeriveSeed(seed, attempt), built without re-copying.
		attemptSeed += retryMarker + strconv.Itoa(attempt)
	}
}

func checkNames(names []string) error {
	if len(names) < 2 {
		return fmt.Errorf("%w: need at least 2 participants, got %d", ErrInvalidInput, len(names))
	}
	seen := make(map[string]struct{}, len(names))
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: participant %d has an empty name", ErrInvalidInput, i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate participant %q", ErrInvalidInput, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func zip(seed string, attempts int, names, receivers []string) Assignment {
	pairs := make([]Pair, len(names))
	for i := range names {
		pairs[i] = Pair{Giver: names[i], Receiver: receivers[i]}
	}
	return Assignment{Seed: seed, Attempts: attempts, Pairs: pairs}
}
