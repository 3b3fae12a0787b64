// Package plaza loads the plaza data set from flat JSON files and serves
// read-only snapshots of it.
package plaza

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"sync"
	"time"

	"github.com/plazahub/plazadir/internal/apperr"
	"github.com/plazahub/plazadir/internal/models"
	"github.com/plazahub/plazadir/internal/storage"
)

// Layout names the files making up a plaza data set, relative to the data
// root. The consolidated file is tried first; the index file plus the
// per-business directory is the fallback.
type Layout struct {
	PlazaFile   string
	IndexFile   string
	BusinessDir string
}

// DefaultLayout matches the data files the site has always shipped with.
func DefaultLayout() Layout {
	return Layout{
		PlazaFile:   "plaza.json",
		IndexFile:   "index.json",
		BusinessDir: "businesses",
	}
}

// HealthStatus reports whether plaza data is currently loadable.
type HealthStatus struct {
	OK            bool      `json:"ok"`
	PlazaName     string    `json:"plazaName,omitempty"`
	BusinessCount int       `json:"businessCount"`
	LastUpdated   string    `json:"lastUpdated,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	Error         string    `json:"error,omitempty"`
}

// Service loads and holds the current plaza snapshot. Load replaces the
// snapshot pointer under a write lock; readers take the read lock and then
// treat the snapshot as immutable.
type Service struct {
	store  storage.Provider
	layout Layout
	logger *slog.Logger

	mu       sync.RWMutex
	current  *models.Plaza
	loadedAt time.Time
}

// NewService creates a plaza service over the given store.
func NewService(store storage.Provider, layout Layout, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, layout: layout, logger: logger}
}

// Load reads the plaza data set and swaps it in as the current snapshot.
// The consolidated file wins when present; otherwise the index file is
// read and each listed business file is loaded, skipping (and logging)
// individual failures. An index that names no files falls back to every
// .json file in the business directory. Both resources missing is a hard
// failure wrapping apperr.ErrNoData.
func (s *Service) Load() error {
	p, err := s.read()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.current = p
	s.loadedAt = time.Now()
	s.mu.Unlock()

	s.logger.Info("plaza data loaded",
		slog.String("plaza", p.PlazaName),
		slog.Int("businesses", len(p.Businesses)))
	return nil
}

func (s *Service) read() (*models.Plaza, error) {
	if data, err := s.store.Read(s.layout.PlazaFile); err == nil {
		var p models.Plaza
		if jsonErr := json.Unmarshal(data, &p); jsonErr == nil {
			return &p, nil
		}
		s.logger.Warn("consolidated plaza file unreadable, trying index",
			slog.String("file", s.layout.PlazaFile))
	}
	return s.readMultiFile()
}

func (s *Service) readMultiFile() (*models.Plaza, error) {
	data, err := s.store.Read(s.layout.IndexFile)
	if err != nil {
		return nil, fmt.Errorf("%w: neither %s nor %s readable", apperr.ErrNoData,
			s.layout.PlazaFile, s.layout.IndexFile)
	}

	var p models.Plaza
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", apperr.ErrNoData, s.layout.IndexFile, err)
	}

	files := p.BusinessFiles
	if len(files) == 0 {
		// Index without an explicit file list: load whatever .json files
		// sit in the business directory.
		listed, listErr := s.store.List(s.layout.BusinessDir)
		if listErr != nil {
			s.logger.Warn("index lists no business files and directory is unreadable",
				slog.String("dir", s.layout.BusinessDir),
				slog.String("error", listErr.Error()))
		}
		files = listed
	}

	businesses := make([]models.Business, 0, len(files))
	for _, file := range files {
		raw, err := s.store.Read(path.Join(s.layout.BusinessDir, file))
		if err != nil {
			s.logger.Warn("skipping unreadable business file",
				slog.String("file", file),
				slog.String("error", err.Error()))
			continue
		}
		var b models.Business
		if err := json.Unmarshal(raw, &b); err != nil {
			s.logger.Warn("skipping malformed business file",
				slog.String("file", file),
				slog.String("error", err.Error()))
			continue
		}
		businesses = append(businesses, b)
	}
	p.Businesses = businesses
	p.BusinessFiles = nil
	return &p, nil
}

// Plaza returns the current snapshot, or an ErrNoData-wrapped error when
// nothing has been loaded yet.
func (s *Service) Plaza() (*models.Plaza, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, apperr.ErrNoData
	}
	return s.current, nil
}

// Businesses returns the business list of the current snapshot.
func (s *Service) Businesses() ([]models.Business, error) {
	p, err := s.Plaza()
	if err != nil {
		return nil, err
	}
	return p.Businesses, nil
}

// BusinessByID returns the business with the given identifier.
func (s *Service) BusinessByID(id string) (*models.Business, error) {
	list, err := s.Businesses()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("business %q: %w", id, apperr.ErrNotFound)
}

// Health reports whether plaza data is loadable, the business count, and
// the evaluation timestamp.
func (s *Service) Health() HealthStatus {
	st := HealthStatus{Timestamp: time.Now()}
	p, err := s.Plaza()
	if err != nil {
		st.Error = "failed to load plaza data"
		return st
	}
	st.OK = true
	st.PlazaName = p.PlazaName
	st.BusinessCount = len(p.Businesses)
	st.LastUpdated = p.LastUpdated
	return st
}
