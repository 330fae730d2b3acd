package recruitment

import "strings"

// UnassignedID is the sentinel recruiter ID returned when no recruiter matches.
const UnassignedID = "R000"

// RemoteRegion marks a recruiter able to handle candidates from any region.
const RemoteRegion = "Remote"

type Recruiter struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Specialties []string `json:"specialties"`
	Regions     []string `json:"regions"`
	// ActiveProfiles is the recruiter's current workload. During a batch
	// assignment it is tracked in a working copy owned by the assigner; the
	// loaded value is only the starting point.
	ActiveProfiles int    `json:"active_profiles" validate:"gte=0"`
	Location       string `json:"location"`
}

// Unassigned returns the sentinel recruiter used when no pool member matches.
// It is never nil so downstream reporting always has a recruiter to render.
func Unassigned() *Recruiter {
	return &Recruiter{
		ID:       UnassignedID,
		Name:     "Unassigned",
		Location: RemoteRegion,
	}
}

func (r *Recruiter) IsUnassigned() bool {
	return r.ID == UnassignedID
}

// HasSpecialty reports whether the recruiter covers the given area, case-insensitively.
func (r *Recruiter) HasSpecialty(area string) bool {
	for _, s := range r.Specialties {
		if strings.EqualFold(s, area) {
			return true
		}
	}
	return false
}

// CoversRegion reports whether the recruiter covers the given region, case-insensitively.
func (r *Recruiter) CoversRegion(region string) bool {
	for _, reg := range r.Regions {
		if strings.EqualFold(reg, region) {
			return true
		}
	}
	return false
}

// IsRemote reports whether the recruiter lists "Remote" among its regions.
func (r *Recruiter) IsRemote() bool {
	return r.CoversRegion(RemoteRegion)
}

func (r *Recruiter) Clone() *Recruiter {
	clone := *r
	clone.Specialties = append([]string(nil), r.Specialties...)
	clone.Regions = append([]string(nil), r.Regions...)
	return &clone
}

type Recruiters struct {
	Items []*Recruiter
}

func (r *Recruiters) Len() int {
	return len(r.Items)
}

func (r *Recruiters) FindByID(id string) *Recruiter {
	for _, recruiter := range r.Items {
		if recruiter.ID == id {
			return recruiter
		}
	}
	return nil
}

func (r *Recruiters) Clone() *Recruiters {
	clone := &Recruiters{Items: make([]*Recruiter, 0, len(r.Items))}
	for _, recruiter := range r.Items {
		clone.Items = append(clone.Items, recruiter.Clone())
	}
	return clone
}
