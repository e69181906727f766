package calculator

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rmx-ops/concrete/models"
)

// Store is the queryable state the engine depends on. The production
// implementation wraps a *gorm.DB; tests substitute an in-memory fake.
type Store interface {
	ActiveProjects() ([]models.Project, error)
	ActiveTrucks() ([]models.Truck, error)
	ActiveMixes() ([]models.Mix, error)
	MixByID(id uuid.UUID) (*models.Mix, error)

	// PriceBands returns the active bands for a (project, mix) pair;
	// window filtering and ordering happen in the engine.
	PriceBands(projectID, mixID uuid.UUID) ([]models.PriceBand, error)

	// Setting returns the value for key, or fallback when unset.
	Setting(key, fallback string) string

	// AttendanceCount reports the drivers on duty for a date, if recorded.
	AttendanceCount(date time.Time) (int, bool)

	// TripCounts returns the non-cancelled dispatch count and the summed
	// bulk daily-summary trip count for a date.
	TripCounts(date time.Time) (dispatchTrips, summaryTrips int, err error)

	DispatchNosByPrefix(prefix string) ([]string, error)

	// FindDuplicate returns the existing non-cancelled dispatch with the
	// same date, project, truck and load, or nil.
	FindDuplicate(date time.Time, projectID, truckID uuid.UUID, loadM3 float64) (*models.Dispatch, error)

	InsertDispatch(d *models.Dispatch) error
}

type gormStore struct {
	db *gorm.DB
}

func (s *gormStore) ActiveProjects() ([]models.Project, error) {
	var projects []models.Project
	err := s.db.Preload("DefaultMix").Where("is_active = ?", true).Find(&projects).Error
	return projects, err
}

func (s *gormStore) ActiveTrucks() ([]models.Truck, error) {
	var trucks []models.Truck
	err := s.db.Where("is_active = ?", true).Find(&trucks).Error
	return trucks, err
}

func (s *gormStore) ActiveMixes() ([]models.Mix, error) {
	var mixes []models.Mix
	err := s.db.Where("is_active = ?", true).Find(&mixes).Error
	return mixes, err
}

func (s *gormStore) MixByID(id uuid.UUID) (*models.Mix, error) {
	var mix models.Mix
	if err := s.db.First(&mix, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &mix, nil
}

func (s *gormStore) PriceBands(projectID, mixID uuid.UUID) ([]models.PriceBand, error) {
	var bands []models.PriceBand
	err := s.db.
		Where("project_id = ? AND mix_id = ? AND is_active = ?", projectID, mixID, true).
		Find(&bands).Error
	return bands, err
}

func (s *gormStore) Setting(key, fallback string) string {
	var setting models.Setting
	if err := s.db.Where("key = ?", key).First(&setting).Error; err != nil {
		return fallback
	}
	return setting.Value
}

func (s *gormStore) AttendanceCount(date time.Time) (int, bool) {
	var attendance models.DriverAttendance
	err := s.db.Where("date = ?", date).First(&attendance).Error
	if err != nil {
		return 0, false
	}
	return attendance.DriverCount, true
}

func (s *gormStore) TripCounts(date time.Time) (int, int, error) {
	var dispatchTrips int64
	err := s.db.Model(&models.Dispatch{}).
		Where("date = ? AND status <> ?", date, models.DispatchCancelled).
		Count(&dispatchTrips).Error
	if err != nil {
		return 0, 0, err
	}

	var summaryTrips int64
	err = s.db.Model(&models.DailySummary{}).
		Where("date = ?", date).
		Select("COALESCE(SUM(trips), 0)").
		Scan(&summaryTrips).Error
	if err != nil {
		return 0, 0, err
	}

	return int(dispatchTrips), int(summaryTrips), nil
}

func (s *gormStore) DispatchNosByPrefix(prefix string) ([]string, error) {
	var nos []string
	err := s.db.Model(&models.Dispatch{}).
		Where("dispatch_no LIKE ?", prefix+"%").
		Pluck("dispatch_no", &nos).Error
	return nos, err
}

func (s *gormStore) FindDuplicate(date time.Time, projectID, truckID uuid.UUID, loadM3 float64) (*models.Dispatch, error) {
	var existing models.Dispatch
	err := s.db.
		Where("date = ? AND project_id = ? AND truck_id = ? AND load_m3 = ? AND status <> ?",
			date, projectID, truckID, loadM3, models.DispatchCancelled).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

func (s *gormStore) InsertDispatch(d *models.Dispatch) error {
	return s.db.Create(d).Error
}
