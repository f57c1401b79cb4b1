package resolve

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"transport-route-service/internal/domain"
)

// Classify interprets a raw token as one of the three location variants.
// Coordinate-shaped tokens with out-of-range values are a validation
// error, never reinterpreted as free text. Short alphanumeric tokens
// count as identifiers only when the directory knows them; a failed
// lookup falls through to address interpretation.
func (r *Resolver) Classify(ctx context.Context, token string) (domain.Location, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Location{}, domain.ErrEmptyToken
	}

	if domain.LooksLikeCoordinate(token) {
		coord, err := domain.ParseCoordinateLiteral(token)
		if err != nil {
			return domain.Location{}, err
		}
		return domain.Location{Kind: domain.KindCoordinate, Raw: token, Coordinate: coord}, nil
	}

	if domain.IsNumericIdentifier(token) {
		loc := domain.Location{Kind: domain.KindIdentifier, Raw: token}
		if f, ok := r.lookupFacility(ctx, token); ok {
			loc.Facility = &f
		}
		return loc, nil
	}

	if domain.LooksLikeIdentifier(token) {
		if f, ok := r.lookupFacility(ctx, token); ok {
			return domain.Location{Kind: domain.KindIdentifier, Raw: token, Facility: &f}, nil
		}
	}

	return domain.Location{Kind: domain.KindAddress, Raw: token}, nil
}

func (r *Resolver) lookupFacility(ctx context.Context, id string) (domain.Facility, bool) {
	if r.directory == nil {
		return domain.Facility{}, false
	}
	f, ok, err := r.directory.LookupByID(ctx, strings.TrimSpace(id))
	if err != nil {
		r.logger.Warn("facility lookup failed", zap.String("id", id), zap.Error(err))
		return domain.Facility{}, false
	}
	return f, ok
}
