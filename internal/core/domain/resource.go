package domain

// RegionAll marks a resource that serves every region.
const RegionAll = "all"

// DefaultResourceLimit is the number of resources returned by a ranked query.
const DefaultResourceLimit = 5

// LocalResource is a healthcare facility or service near the user.
// Resources are reference data owned by storage; the core only reads them.
type LocalResource struct {
	ID                 int64    `json:"id,omitempty"`
	Type               string   `json:"type"`
	Name               string   `json:"name"`
	Location           string   `json:"location"`
	Contact            string   `json:"contact"`
	Services           []string `json:"services"`
	EmergencyAvailable bool     `json:"emergency_available"`
	DistanceKm         float64  `json:"distance_km"`
	Availability       string   `json:"availability"`
	Region             string   `json:"region"`
}

// ServesRegion reports whether the resource applies to region.
// An empty region matches everything.
func (r LocalResource) ServesRegion(region string) bool {
	return region == "" || r.Region == region || r.Region == RegionAll
}

// AsContact converts the resource to an emergency contact.
func (r LocalResource) AsContact() EmergencyContact {
	return EmergencyContact{
		Name:         r.Name,
		Contact:      r.Contact,
		Availability: r.Availability,
	}
}

// ResourceQuery filters a resource listing.
type ResourceQuery struct {
	// Region keeps resources in this region or in RegionAll. Empty means any.
	Region string

	// EmergencyOnly keeps only resources with emergency care.
	EmergencyOnly bool

	// Limit caps the result count. Zero means DefaultResourceLimit.
	Limit int
}

// EffectiveLimit returns Limit, or DefaultResourceLimit when unset.
func (q ResourceQuery) EffectiveLimit() int {
	if q.Limit <= 0 {
		return DefaultResourceLimit
	}
	return q.Limit
}

// Matches reports whether r passes the region and emergency filters.
func (q ResourceQuery) Matches(r LocalResource) bool {
	if q.EmergencyOnly && !r.EmergencyAvailable {
		return false
	}
	return r.ServesRegion(q.Region)
}
