package match

import "github.com/realmeta/artlens/internal/domain"

// Identification is the match policy outcome for one request.
type Identification struct {
	confident    bool
	best         Candidate
	alternatives []Candidate
}

// Confident reports whether the best score cleared the threshold.
func (r Identification) Confident() bool { return r.confident }

// Best returns the highest-ranked candidate. It is always populated:
// an empty ranking classifies as ErrNoCandidates, never as an
// Identification with no best.
func (r Identification) Best() Candidate { return r.best }

// Alternatives returns the remaining ranked candidates, best first.
func (r Identification) Alternatives() []Candidate { return r.alternatives }

// Classify turns a ranked candidate list into a terminal outcome:
//
//   - empty ranking        -> ErrNoCandidates ("nothing to match against")
//   - top score >= threshold -> confident match
//   - top score <  threshold -> ambiguous; best is still surfaced as the
//     best guess with the rest as alternatives
//
// The comparison is >=: a score exactly at the threshold is confident.
// Identical inputs always classify identically.
func Classify(ranked []Candidate, threshold float64) (Identification, error) {
	if len(ranked) == 0 {
		return Identification{}, domain.ErrNoCandidates
	}

	return Identification{
		confident:    ranked[0].score >= threshold,
		best:         ranked[0],
		alternatives: ranked[1:],
	}, nil
}
