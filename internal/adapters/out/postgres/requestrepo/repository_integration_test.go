package requestrepo_test

import (
	"context"
	"testing"
	"time"

	"buildconnect/internal/adapters/out/postgres/requestrepo"
	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/request"
	"buildconnect/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// DeliveryRequestRepositoryIntegrationTestSuite provides integration tests for
// DeliveryRequestRepository using PostgreSQL containers.
type DeliveryRequestRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *requestrepo.GormDeliveryRequestRepository
	tracker    *MockAggregateTracker
}

func (suite *DeliveryRequestRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&requestrepo.DeliveryRequestDTO{}))
}

func (suite *DeliveryRequestRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE delivery_requests").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = requestrepo.NewGormDeliveryRequestRepository(suite.db, suite.tracker)
}

func (suite *DeliveryRequestRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DeliveryRequestRepositoryIntegrationTestSuite) TestAdd_ValidRequest_Success() {
	ctx := context.Background()

	deliveryRequest := suite.createTestRequest()

	suite.tracker.On("TrackAggregate", deliveryRequest.ID(), deliveryRequest).Once()

	err := suite.repository.Add(ctx, deliveryRequest)
	suite.Require().NoError(err)

	var count int64
	suite.Require().NoError(suite.db.Model(&requestrepo.DeliveryRequestDTO{}).Count(&count).Error)
	suite.EqualValues(1, count)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRequestRepositoryIntegrationTestSuite) TestGet_RoundTripsAllFields() {
	ctx := context.Background()

	deliveryRequest := suite.createTestRequest()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	err := suite.repository.Add(ctx, deliveryRequest)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, deliveryRequest.ID())
	suite.Require().NoError(err)

	suite.Equal(deliveryRequest.ID(), retrieved.ID())
	suite.Equal(deliveryRequest.BuilderID(), retrieved.BuilderID())
	suite.Equal("cement", retrieved.Material())
	suite.Equal("50 bags", retrieved.Quantity())
	suite.Equal(request.StatusPending, retrieved.Status())
	suite.Equal(request.PhasePending, retrieved.Phase())
	suite.Equal(5, retrieved.MaxRotationAttempts())
	suite.InDelta(25, retrieved.RadiusKm(), 0.001)
	suite.Equal(1, retrieved.Version())
	suite.Require().NotNil(retrieved.PickupLocation())
	suite.InDelta(-1.2921, retrieved.PickupLocation().Latitude(), 0.0001)
	suite.Nil(retrieved.DeliveryLocation())
	suite.Nil(retrieved.SupplierID())
	suite.Empty(retrieved.AttemptedProviders())
}

func (suite *DeliveryRequestRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryRequestRepositoryIntegrationTestSuite) TestUpdate_PersistsStateAndAttempts() {
	ctx := context.Background()

	deliveryRequest := suite.createTestRequest()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	err := suite.repository.Add(ctx, deliveryRequest)
	suite.Require().NoError(err)

	loaded, err := suite.repository.Get(ctx, deliveryRequest.ID())
	suite.Require().NoError(err)

	firstProvider := kernel.NewUUID()
	secondProvider := kernel.NewUUID()
	suite.Require().NoError(loaded.RecordAttempt(firstProvider))
	suite.Require().NoError(loaded.RecordAttempt(secondProvider))
	suite.Require().NoError(loaded.Accept())

	err = suite.repository.Update(ctx, loaded)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, deliveryRequest.ID())
	suite.Require().NoError(err)
	suite.Equal(request.StatusAccepted, retrieved.Status())
	suite.Require().NotNil(retrieved.CompletedAt())
	suite.Equal([]kernel.UUID{firstProvider, secondProvider}, retrieved.AttemptedProviders())
	suite.Equal(2, retrieved.Version())
}

func (suite *DeliveryRequestRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_Conflict() {
	ctx := context.Background()

	deliveryRequest := suite.createTestRequest()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	err := suite.repository.Add(ctx, deliveryRequest)
	suite.Require().NoError(err)

	first, err := suite.repository.Get(ctx, deliveryRequest.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, deliveryRequest.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Cancel())
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Cancel())
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *DeliveryRequestRepositoryIntegrationTestSuite) TestGetAllActive_FiltersTerminal() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	active := suite.createTestRequest()
	suite.Require().NoError(suite.repository.Add(ctx, active))

	cancelled := suite.createTestRequest()
	suite.Require().NoError(cancelled.Cancel())
	suite.Require().NoError(suite.repository.Add(ctx, cancelled))

	requests, err := suite.repository.GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(requests, 1)
	suite.Equal(active.ID(), requests[0].ID())
}

func (suite *DeliveryRequestRepositoryIntegrationTestSuite) createTestRequest() *request.DeliveryRequest {
	pickup, err := kernel.NewGeoPoint(-1.2921, 36.8219)
	suite.Require().NoError(err)

	deliveryRequest, err := request.NewDeliveryRequest(
		kernel.NewUUID(), kernel.NewUUID(), nil,
		"cement", "50 bags",
		"Industrial Area, Nairobi", "Kilimani, Nairobi",
		&pickup, nil,
		5, 25,
	)
	suite.Require().NoError(err)
	return deliveryRequest
}

func TestDeliveryRequestRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryRequestRepositoryIntegrationTestSuite))
}
