// Package directory implements the facility address book behind the
// FacilityDirectory and FacilityStore ports.
package directory

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"transport-route-service/internal/domain"
)

var (
	ErrDuplicateFacility = errors.New("facility id already exists")
	ErrFacilityNotFound  = errors.New("facility not found")
)

var fileHeader = []string{"id", "facility_id", "name", "address", "postal_code", "city", "created_at", "updated_at"}

// FileStore keeps the address book in a flat CSV file. Every operation
// reads or rewrites the whole file under one mutex; the table is small
// and slowly changing, so simplicity wins over incremental writes.
type FileStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, now: time.Now}
	if err := s.ensureFile(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) ensureFile() error {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory data dir: %w", err)
		}
	}
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat directory file: %w", err)
	}
	return s.writeAll(nil)
}

func (s *FileStore) LookupByID(_ context.Context, id string) (domain.Facility, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	facilities, err := s.readAll()
	if err != nil {
		return domain.Facility{}, false, err
	}
	for _, f := range facilities {
		if f.FacilityID == strings.TrimSpace(id) {
			return f, true, nil
		}
	}
	return domain.Facility{}, false, nil
}

func (s *FileStore) List(_ context.Context) ([]domain.Facility, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

func (s *FileStore) Create(_ context.Context, f domain.Facility) (domain.Facility, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	facilities, err := s.readAll()
	if err != nil {
		return domain.Facility{}, err
	}
	for _, existing := range facilities {
		if existing.FacilityID == f.FacilityID {
			return domain.Facility{}, fmt.Errorf("%w: %q", ErrDuplicateFacility, f.FacilityID)
		}
	}

	now := s.now()
	f.ID = uuid.NewString()
	f.CreatedAt = now
	f.UpdatedAt = now

	facilities = append(facilities, f)
	if err := s.writeAll(facilities); err != nil {
		return domain.Facility{}, err
	}
	return f, nil
}

func (s *FileStore) Update(_ context.Context, f domain.Facility) (domain.Facility, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	facilities, err := s.readAll()
	if err != nil {
		return domain.Facility{}, err
	}
	for i, existing := range facilities {
		if existing.FacilityID == f.FacilityID {
			f.ID = existing.ID
			f.CreatedAt = existing.CreatedAt
			f.UpdatedAt = s.now()
			facilities[i] = f
			if err := s.writeAll(facilities); err != nil {
				return domain.Facility{}, err
			}
			return f, nil
		}
	}
	return domain.Facility{}, fmt.Errorf("%w: %q", ErrFacilityNotFound, f.FacilityID)
}

func (s *FileStore) Delete(_ context.Context, facilityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	facilities, err := s.readAll()
	if err != nil {
		return err
	}
	kept := facilities[:0]
	found := false
	for _, f := range facilities {
		if f.FacilityID == facilityID {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	if !found {
		return fmt.Errorf("%w: %q", ErrFacilityNotFound, facilityID)
	}
	return s.writeAll(kept)
}

func (s *FileStore) readAll() ([]domain.Facility, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open directory file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read directory file: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	facilities := make([]domain.Facility, 0, len(rows)-1)
	for _, row := range rows[1:] { // skip header
		if len(row) < len(fileHeader) {
			continue
		}
		facilities = append(facilities, domain.Facility{
			ID:         row[0],
			FacilityID: row[1],
			Name:       row[2],
			Address:    row[3],
			PostalCode: row[4],
			City:       row[5],
			CreatedAt:  parseTime(row[6]),
			UpdatedAt:  parseTime(row[7]),
		})
	}
	return facilities, nil
}

func (s *FileStore) writeAll(facilities []domain.Facility) error {
	tmp := s.path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create directory file: %w", err)
	}

	writer := csv.NewWriter(file)
	rows := [][]string{fileHeader}
	for _, f := range facilities {
		rows = append(rows, []string{
			f.ID, f.FacilityID, f.Name, f.Address, f.PostalCode, f.City,
			formatTime(f.CreatedAt), formatTime(f.UpdatedAt),
		})
	}
	if err := writer.WriteAll(rows); err != nil {
		file.Close()
		return fmt.Errorf("write directory file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close directory file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace directory file: %w", err)
	}
	return nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
