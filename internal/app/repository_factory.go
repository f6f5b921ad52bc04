package app

import (
	"fmt"

	bookingDomain "github.com/felixgeelhaar/recruita/internal/booking/domain"
	bookingPersistence "github.com/felixgeelhaar/recruita/internal/booking/infrastructure/persistence"
	interviewDomain "github.com/felixgeelhaar/recruita/internal/interviews/domain"
	interviewPersistence "github.com/felixgeelhaar/recruita/internal/interviews/infrastructure/persistence"
	resourceDomain "github.com/felixgeelhaar/recruita/internal/resources/domain"
	resourcePersistence "github.com/felixgeelhaar/recruita/internal/resources/infrastructure/persistence"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/outbox"
)

// RepositoryFactory creates repositories based on the database driver.
type RepositoryFactory struct {
	conn   database.Connection
	driver database.Driver
}

// NewRepositoryFactory creates a new repository factory.
func NewRepositoryFactory(conn database.Connection) *RepositoryFactory {
	return &RepositoryFactory{
		conn:   conn,
		driver: conn.Driver(),
	}
}

// Driver returns the driver the factory builds for.
func (f *RepositoryFactory) Driver() database.Driver {
	return f.driver
}

// RoomRepository creates a room repository for the configured driver.
func (f *RepositoryFactory) RoomRepository() (resourceDomain.RoomRepository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return resourcePersistence.NewPostgresRoomRepository(f.conn), nil
	case database.DriverSQLite:
		return resourcePersistence.NewSQLiteRoomRepository(f.conn), nil
	default:
		return nil, unsupported(f.driver)
	}
}

// AssetRepository creates an asset repository for the configured driver.
func (f *RepositoryFactory) AssetRepository() (resourceDomain.AssetRepository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return resourcePersistence.NewPostgresAssetRepository(f.conn), nil
	case database.DriverSQLite:
		return resourcePersistence.NewSQLiteAssetRepository(f.conn), nil
	default:
		return nil, unsupported(f.driver)
	}
}

// BookingRepository creates a booking repository for the configured driver.
func (f *RepositoryFactory) BookingRepository() (bookingDomain.Repository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return bookingPersistence.NewPostgresRepository(f.conn), nil
	case database.DriverSQLite:
		return bookingPersistence.NewSQLiteRepository(f.conn), nil
	default:
		return nil, unsupported(f.driver)
	}
}

// InterviewRepository creates an interview repository for the configured driver.
func (f *RepositoryFactory) InterviewRepository() (interviewDomain.Repository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return interviewPersistence.NewPostgresRepository(f.conn), nil
	case database.DriverSQLite:
		return interviewPersistence.NewSQLiteRepository(f.conn), nil
	default:
		return nil, unsupported(f.driver)
	}
}

// OutboxRepository creates an outbox repository for the configured driver.
func (f *RepositoryFactory) OutboxRepository() (outbox.Repository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return outbox.NewPostgresRepository(f.conn), nil
	case database.DriverSQLite:
		return outbox.NewSQLiteRepository(f.conn), nil
	default:
		return nil, unsupported(f.driver)
	}
}

func unsupported(driver database.Driver) error {
	return fmt.Errorf("unsupported driver: %s", driver)
}
