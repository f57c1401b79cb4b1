package ports

import (
	"context"

	"transport-route-service/internal/domain"
)

// FacilityDirectory resolves short facility identifiers to known sites.
// The core treats it as synchronous and side-effect-free.
type FacilityDirectory interface {
	// LookupByID returns the facility for the identifier. The second
	// return is false when the identifier is unknown.
	LookupByID(ctx context.Context, id string) (domain.Facility, bool, error)
}

// FacilityStore extends the directory with the address book CRUD surface.
type FacilityStore interface {
	FacilityDirectory
	List(ctx context.Context) ([]domain.Facility, error)
	Create(ctx context.Context, f domain.Facility) (domain.Facility, error)
	Update(ctx context.Context, f domain.Facility) (domain.Facility, error)
	Delete(ctx context.Context, facilityID string) error
}
