// Package assignment picks recruiters for candidates using a priority cascade
// with workload balancing.
package assignment

import (
	"go.uber.org/zap"

	"github.com/saori-ai/trs-engine/internal/recruitment"
)

// Profile is the assigner's view of a candidate: an inferred specialty area
// and home region.
type Profile struct {
	Name   string
	Area   string
	Region string
}

// Result pairs a candidate with the chosen recruiter. Recruiter is never nil;
// the Unassigned sentinel stands in when no pool member matches.
type Result struct {
	Name      string
	Recruiter *recruitment.Recruiter
}

// Workloads is the mutable working copy of per-recruiter active-profile
// counters used for tie-breaking. It is owned by a single batch run and
// mutated strictly one assignment at a time; callers parallelizing the
// surrounding pipeline must keep assignment serialized.
type Workloads map[string]int

// NewWorkloads seeds counters from the pool's current ActiveProfiles values.
func NewWorkloads(pool *recruitment.Recruiters) Workloads {
	w := make(Workloads, pool.Len())
	for _, r := range pool.Items {
		w[r.ID] = r.ActiveProfiles
	}
	return w
}

type Assigner struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Assigner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assigner{logger: logger}
}

// Assign resolves one candidate against the pool using the 4-tier cascade:
//
//  1. specialty and region both match
//  2. specialty matches
//  3. region matches, or the recruiter covers Remote
//  4. the Unassigned sentinel
//
// Every tier is tie-broken by the lowest workload counter; equal counters
// keep pool order. The caller's pool is read, never mutated.
func (a *Assigner) Assign(profile *Profile, pool *recruitment.Recruiters, workloads Workloads) *recruitment.Recruiter {
	tiers := []func(*recruitment.Recruiter) bool{
		func(r *recruitment.Recruiter) bool { return r.HasSpecialty(profile.Area) && r.CoversRegion(profile.Region) },
		func(r *recruitment.Recruiter) bool { return r.HasSpecialty(profile.Area) },
		func(r *recruitment.Recruiter) bool { return r.CoversRegion(profile.Region) || r.IsRemote() },
	}

	for _, matches := range tiers {
		if chosen := leastLoaded(pool, workloads, matches); chosen != nil {
			return chosen
		}
	}

	return recruitment.Unassigned()
}

// AssignBatch assigns recruiters to candidates in order, incrementing the
// chosen recruiter's workload counter after each non-sentinel assignment.
// Processing order therefore changes outcomes; that is the intended
// load-balancing behavior. Given a fixed input order the result is
// deterministic, and the caller's recruiter list is left untouched.
func (a *Assigner) AssignBatch(profiles []*Profile, pool *recruitment.Recruiters) []*Result {
	return a.AssignBatchWithWorkloads(profiles, pool, NewWorkloads(pool))
}

// AssignBatchWithWorkloads is AssignBatch with caller-seeded counters, so
// scenarios can start from specific workload states.
func (a *Assigner) AssignBatchWithWorkloads(profiles []*Profile, pool *recruitment.Recruiters, workloads Workloads) []*Result {
	results := make([]*Result, 0, len(profiles))

	for _, profile := range profiles {
		recruiter := a.Assign(profile, pool, workloads)
		results = append(results, &Result{Name: profile.Name, Recruiter: recruiter})

		if !recruiter.IsUnassigned() {
			workloads[recruiter.ID]++
		}

		a.logger.Info("recruiter assigned",
			zap.String("candidate", profile.Name),
			zap.String("area", profile.Area),
			zap.String("region", profile.Region),
			zap.String("recruiter_id", recruiter.ID),
			zap.String("recruiter", recruiter.Name),
			zap.Int("recruiter_workload", workloads[recruiter.ID]),
		)
	}

	return results
}

// leastLoaded returns the matching recruiter with the lowest workload
// counter, or nil when nothing matches. A strict less-than comparison keeps
// the earliest pool entry on ties.
func leastLoaded(pool *recruitment.Recruiters, workloads Workloads, matches func(*recruitment.Recruiter) bool) *recruitment.Recruiter {
	var chosen *recruitment.Recruiter
	for _, r := range pool.Items {
		if !matches(r) {
			continue
		}
		if chosen == nil || workloads[r.ID] < workloads[chosen.ID] {
			chosen = r
		}
	}
	return chosen
}
