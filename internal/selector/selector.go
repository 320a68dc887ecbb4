// Package selector tries candidate models for a role in priority order,
// falling back to the next candidate when one is not usable.
package selector

import (
	"context"
	"fmt"

	ai "github.com/mchlmayer/thumbpro"
	"github.com/mchlmayer/thumbpro/model"
)

// Policy decides which failures move selection to the next candidate.
// Errors the policy does not accept propagate to the caller immediately.
type Policy struct {
	// Advance reports whether err should move selection to the next candidate.
	Advance func(err error) bool

	// OnAdvance is called each time selection moves past a failed candidate.
	OnAdvance func(c model.Candidate, err error)
}

// DefaultPolicy advances only when the model is unavailable to this credential.
func DefaultPolicy() Policy {
	return Policy{Advance: unavailable}
}

// VisionPolicy also advances when a describer returned no usable text.
func VisionPolicy() Policy {
	return Policy{Advance: func(err error) bool {
		switch ai.KindOf(err) {
		case ai.KindModelUnavailable, ai.KindMalformedResponse, ai.KindInterrupted:
			return true
		}
		return false
	}}
}

// WithOnAdvance returns a copy of p that calls fn on every advance.
func (p Policy) WithOnAdvance(fn func(c model.Candidate, err error)) Policy {
	p.OnAdvance = fn
	return p
}

func unavailable(err error) bool {
	return ai.IsKind(err, ai.KindModelUnavailable)
}

func (p Policy) advances(err error) bool {
	if p.Advance == nil {
		return unavailable(err)
	}
	return p.Advance(err)
}

// Skips records candidates found unavailable during one logical request, so
// later retry attempts of the same request do not call them again.
// A Skips belongs to a single request and is not safe for concurrent use.
type Skips struct {
	seen    map[model.Candidate]struct{}
	lastErr error
}

// NewSkips returns an empty skip set.
func NewSkips() *Skips {
	return &Skips{seen: make(map[model.Candidate]struct{})}
}

// Add records c as unavailable because of err.
func (s *Skips) Add(c model.Candidate, err error) {
	if s == nil {
		return
	}
	s.seen[c] = struct{}{}
	s.lastErr = err
}

// Has reports whether c was recorded as unavailable.
func (s *Skips) Has(c model.Candidate) bool {
	if s == nil {
		return false
	}
	_, ok := s.seen[c]
	return ok
}

// Len returns the number of skipped candidates.
func (s *Skips) Len() int {
	if s == nil {
		return 0
	}
	return len(s.seen)
}

// Run calls fn for each candidate in order until one succeeds. Candidates are
// tried strictly one at a time with no delay between them.
//
// A failure accepted by the policy moves to the next candidate; any other
// failure, including quota exhaustion, is returned as is. When no candidate
// is left, Run returns a model-unavailable error naming the role and wrapping
// the last failure. Candidates in skips are not called.
func Run[T any](ctx context.Context, role model.Role, candidates []model.Candidate, policy Policy, skips *Skips, fn func(context.Context, model.Candidate) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for _, c := range candidates {
		if skips.Has(c) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn(ctx, c)
		if err == nil {
			return result, nil
		}
		if !policy.advances(err) {
			return zero, err
		}

		lastErr = err
		if unavailable(err) {
			skips.Add(c, err)
		}
		if policy.OnAdvance != nil {
			policy.OnAdvance(c, err)
		}
	}

	if lastErr == nil && skips != nil {
		lastErr = skips.lastErr
	}
	return zero, ai.NewModelUnavailableError(fmt.Sprintf("no backend available for %s", role), 0, lastErr)
}
