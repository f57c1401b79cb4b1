package directory

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"transport-route-service/internal/domain"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "facilities.csv"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	return s
}

func grenaaDepot() domain.Facility {
	return domain.Facility{
		FacilityID: "1061",
		Name:       "Grenå Depot",
		Address:    "Rugvænget 18",
		PostalCode: "8444",
		City:       "Grenå",
	}
}

func TestFileStoreCreateAndLookup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, grenaaDepot())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected a generated record id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}

	got, ok, err := s.LookupByID(ctx, "1061")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !ok {
		t.Fatalf("expected facility to be found")
	}
	if got.Name != "Grenå Depot" || got.City != "Grenå" {
		t.Fatalf("unexpected facility: %+v", got)
	}
	if got.FullAddress() != "Rugvænget 18, 8444 Grenå" {
		t.Fatalf("unexpected full address: %q", got.FullAddress())
	}

	if _, ok, err := s.LookupByID(ctx, "9999"); err != nil || ok {
		t.Fatalf("expected clean miss for unknown id, got ok=%v err=%v", ok, err)
	}
}

func TestFileStoreDuplicateCreate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Create(ctx, grenaaDepot()); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := s.Create(ctx, grenaaDepot())
	if !errors.Is(err, ErrDuplicateFacility) {
		t.Fatalf("expected ErrDuplicateFacility, got %v", err)
	}
}

func TestFileStoreUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, grenaaDepot())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	changed := created
	changed.Name = "Grenå Nord"
	updated, err := s.Update(ctx, changed)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Grenå Nord" {
		t.Fatalf("unexpected name: %q", updated.Name)
	}
	if updated.ID != created.ID {
		t.Fatalf("update must keep the record id")
	}

	_, err = s.Update(ctx, domain.Facility{FacilityID: "missing"})
	if !errors.Is(err, ErrFacilityNotFound) {
		t.Fatalf("expected ErrFacilityNotFound, got %v", err)
	}
}

func TestFileStoreDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Create(ctx, grenaaDepot()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Delete(ctx, "1061"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.LookupByID(ctx, "1061"); ok {
		t.Fatalf("expected facility gone after delete")
	}
	if err := s.Delete(ctx, "1061"); !errors.Is(err, ErrFacilityNotFound) {
		t.Fatalf("expected ErrFacilityNotFound, got %v", err)
	}
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facilities.csv")
	ctx := context.Background()

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if _, err := s.Create(ctx, grenaaDepot()); err != nil {
		t.Fatalf("create: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	list, err := reopened.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].FacilityID != "1061" {
		t.Fatalf("unexpected contents after reopen: %+v", list)
	}
}
