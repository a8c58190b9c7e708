package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"hospital-dashboard/internal/domain/entity"
	"hospital-dashboard/internal/domain/repository"
	"hospital-dashboard/internal/query"
	"hospital-dashboard/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

// --- mockCatalogRepository ---
var _ repository.CatalogRepository = (*mockCatalogRepository)(nil)

type mockCatalogRepository struct {
	FindSpecialtiesFunc   func() ([]entity.Specialty, error)
	FindProfessionalsFunc func() ([]entity.CatalogItem, error)
	FindPatientsFunc      func(ctx context.Context) ([]entity.CatalogItem, error)
	SpecialtyExistsFunc   func(id int) (bool, error)

	FindSpecialtiesCallCount int32
	SpecialtyExistsCallCount int32
}

func (m *mockCatalogRepository) FindSpecialties(db *gorm.DB) ([]entity.Specialty, error) {
	atomic.AddInt32(&m.FindSpecialtiesCallCount, 1)
	if m.FindSpecialtiesFunc != nil {
		return m.FindSpecialtiesFunc()
	}
	return nil, errors.New("FindSpecialtiesFunc not implemented in mock")
}

func (m *mockCatalogRepository) FindProfessionals(db *gorm.DB) ([]entity.CatalogItem, error) {
	if m.FindProfessionalsFunc != nil {
		return m.FindProfessionalsFunc()
	}
	return nil, errors.New("FindProfessionalsFunc not implemented in mock")
}

func (m *mockCatalogRepository) FindPatients(db *gorm.DB) ([]entity.CatalogItem, error) {
	if m.FindPatientsFunc != nil {
		return m.FindPatientsFunc(db.Statement.Context)
	}
	return nil, errors.New("FindPatientsFunc not implemented in mock")
}

func (m *mockCatalogRepository) SpecialtyExists(db *gorm.DB, id int) (bool, error) {
	atomic.AddInt32(&m.SpecialtyExistsCallCount, 1)
	if m.SpecialtyExistsFunc != nil {
		return m.SpecialtyExistsFunc(id)
	}
	return true, nil
}

// --- mockReportRepository ---
var _ repository.ReportRepository = (*mockReportRepository)(nil)

type mockReportRepository struct {
	AggregateFunc func(spec query.Spec) ([]entity.AggregateRow, error)

	mu    sync.Mutex
	specs []query.Spec
}

func (m *mockReportRepository) Aggregate(db *gorm.DB, spec query.Spec) ([]entity.AggregateRow, error) {
	m.mu.Lock()
	m.specs = append(m.specs, spec)
	m.mu.Unlock()
	if m.AggregateFunc != nil {
		return m.AggregateFunc(spec)
	}
	return []entity.AggregateRow{}, nil
}

func (m *mockReportRepository) Specs() []query.Spec {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]query.Spec(nil), m.specs...)
}

// --- mockAppointmentRepository ---
var _ repository.AppointmentRepository = (*mockAppointmentRepository)(nil)

type mockAppointmentRepository struct {
	CreateFunc func(appointment *entity.Appointment) error

	CreateCallCount int32
}

func (m *mockAppointmentRepository) Create(tx *gorm.DB, appointment *entity.Appointment) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateFunc != nil {
		return m.CreateFunc(appointment)
	}
	return nil
}

// --- fakeCatalogCache ---
var _ service.CatalogCache = (*fakeCatalogCache)(nil)

// fakeCatalogCache stores values as-is; Get copies through a type switch on
// the destinations the catalog use case passes.
type fakeCatalogCache struct {
	mu      sync.Mutex
	entries map[string]interface{}
	getErr  error
	setErr  error
}

func newFakeCatalogCache() *fakeCatalogCache {
	return &fakeCatalogCache{entries: make(map[string]interface{})}
}

func (c *fakeCatalogCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return false, c.getErr
	}
	v, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	switch d := dest.(type) {
	case *[]entity.Specialty:
		*d = v.([]entity.Specialty)
	case *[]entity.CatalogItem:
		*d = v.([]entity.CatalogItem)
	default:
		return false, errors.New("unexpected cache destination")
	}
	return true, nil
}

func (c *fakeCatalogCache) Set(ctx context.Context, key string, value interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = value
	return nil
}
