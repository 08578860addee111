package pairing

// Exclusion forbids Giver from drawing Receiver. It is directional.
type Exclusion struct {
	Giver    string
	Receiver string
}

type ExclusionSet map[Exclusion]struct{}

func NewExclusionSet(pairs ...Exclusion) ExclusionSet {
	set := make(ExclusionSet, len(pairs))
	for _, p := range pairs {
		set.Add(p.Giver, p.Receiver)
	}
	return set
}

func (s ExclusionSet) Add(giver, receiver string) {
	s[Exclusion{Giver: giver, Receiver: receiver}] = struct{}{}
}

// Excludes reports whether giver is forbidden from drawing receiver. A nil set
// excludes nothing.
func (s ExclusionSet) Excludes(giver, receiver string) bool {
	_, ok := s[Exclusion{Giver: giver, Receiver: receiver}]
	return ok
}

func (s ExclusionSet) Len() int { return len(s) }
