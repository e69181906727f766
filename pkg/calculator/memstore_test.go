package calculator

import (
	"time"

	"github.com/google/uuid"

	"github.com/rmx-ops/concrete/models"
)

// memStore is the in-memory Store used by the engine tests.
type memStore struct {
	projects   []models.Project
	trucks     []models.Truck
	mixes      []models.Mix
	bands      []models.PriceBand
	settings   map[string]string
	attendance map[string]int
	summaries  []models.DailySummary
	dispatches []*models.Dispatch
}

func newMemStore() *memStore {
	return &memStore{
		settings:   make(map[string]string),
		attendance: make(map[string]int),
	}
}

func dateKey(t time.Time) string { return t.Format("20060102") }

func (s *memStore) ActiveProjects() ([]models.Project, error) {
	var out []models.Project
	for _, p := range s.projects {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memStore) ActiveTrucks() ([]models.Truck, error) {
	var out []models.Truck
	for _, t := range s.trucks {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *memStore) ActiveMixes() ([]models.Mix, error) {
	var out []models.Mix
	for _, m := range s.mixes {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memStore) MixByID(id uuid.UUID) (*models.Mix, error) {
	for i := range s.mixes {
		if s.mixes[i].ID == id {
			return &s.mixes[i], nil
		}
	}
	return nil, &NotFoundError{Kind: "mix", Query: id.String()}
}

func (s *memStore) PriceBands(projectID, mixID uuid.UUID) ([]models.PriceBand, error) {
	var out []models.PriceBand
	for _, b := range s.bands {
		if b.ProjectID == projectID && b.MixID == mixID && b.IsActive {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *memStore) Setting(key, fallback string) string {
	if v, ok := s.settings[key]; ok {
		return v
	}
	return fallback
}

func (s *memStore) AttendanceCount(date time.Time) (int, bool) {
	n, ok := s.attendance[dateKey(date)]
	return n, ok
}

func (s *memStore) TripCounts(date time.Time) (int, int, error) {
	dispatchTrips := 0
	for _, d := range s.dispatches {
		if dateKey(d.Date) == dateKey(date) && d.Status != models.DispatchCancelled {
			dispatchTrips++
		}
	}
	summaryTrips := 0
	for _, sm := range s.summaries {
		if dateKey(sm.Date) == dateKey(date) {
			summaryTrips += sm.Trips
		}
	}
	return dispatchTrips, summaryTrips, nil
}

func (s *memStore) DispatchNosByPrefix(prefix string) ([]string, error) {
	var nos []string
	for _, d := range s.dispatches {
		if len(d.DispatchNo) >= len(prefix) && d.DispatchNo[:len(prefix)] == prefix {
			nos = append(nos, d.DispatchNo)
		}
	}
	return nos, nil
}

func (s *memStore) FindDuplicate(date time.Time, projectID, truckID uuid.UUID, loadM3 float64) (*models.Dispatch, error) {
	for _, d := range s.dispatches {
		if dateKey(d.Date) == dateKey(date) && d.ProjectID == projectID &&
			d.TruckID == truckID && d.LoadM3 == loadM3 && d.Status != models.DispatchCancelled {
			return d, nil
		}
	}
	return nil, nil
}

func (s *memStore) InsertDispatch(d *models.Dispatch) error {
	d.ID = uuid.New()
	s.dispatches = append(s.dispatches, d)
	return nil
}
