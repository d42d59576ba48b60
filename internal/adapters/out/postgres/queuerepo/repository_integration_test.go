package queuerepo_test

import (
	"context"
	"testing"
	"time"

	"buildconnect/internal/adapters/out/postgres/queuerepo"
	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/queue"
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

// ProviderQueueRepositoryIntegrationTestSuite provides integration tests for
// ProviderQueueRepository using PostgreSQL containers.
type ProviderQueueRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *queuerepo.GormProviderQueueRepository
	tracker    *MockAggregateTracker
}

func (suite *ProviderQueueRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&queuerepo.EntryDTO{}))
}

func (suite *ProviderQueueRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE delivery_provider_queue").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = queuerepo.NewGormProviderQueueRepository(suite.db, suite.tracker)
}

func (suite *ProviderQueueRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ProviderQueueRepositoryIntegrationTestSuite) TestGetByRequest_OrderedByPosition() {
	ctx := context.Background()
	requestID := kernel.NewUUID()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	// Insert out of order to prove ordering comes from the query.
	third := suite.createEntry(requestID, 3)
	first := suite.createEntry(requestID, 1)
	second := suite.createEntry(requestID, 2)

	for _, entry := range []*queue.Entry{third, first, second} {
		suite.Require().NoError(suite.repository.Add(ctx, entry))
	}
	suite.Require().NoError(suite.repository.Add(ctx, suite.createEntry(kernel.NewUUID(), 1)))

	entries, err := suite.repository.GetByRequest(ctx, requestID)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 3)
	suite.Equal(1, entries[0].Position())
	suite.Equal(2, entries[1].Position())
	suite.Equal(3, entries[2].Position())
	suite.Equal(first.ID(), entries[0].ID())
}

func (suite *ProviderQueueRepositoryIntegrationTestSuite) TestGetContacted_FindsAwaitingEntry() {
	ctx := context.Background()
	requestID := kernel.NewUUID()
	now := time.Now().UTC()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	pending := suite.createEntry(requestID, 2)
	suite.Require().NoError(suite.repository.Add(ctx, pending))

	contacted := suite.createEntry(requestID, 1)
	suite.Require().NoError(contacted.Contact(now, now.Add(30*time.Minute)))
	suite.Require().NoError(suite.repository.Add(ctx, contacted))

	found, err := suite.repository.GetContacted(ctx, requestID)
	suite.Require().NoError(err)
	suite.Equal(contacted.ID(), found.ID())
	suite.Equal(queue.StatusContacted, found.Status())
	suite.Require().NotNil(found.ContactedAt())
	suite.Require().NotNil(found.ResponseDeadline())
	suite.WithinDuration(now.Add(30*time.Minute), *found.ResponseDeadline(), time.Second)
}

func (suite *ProviderQueueRepositoryIntegrationTestSuite) TestGetContacted_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.GetContacted(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ProviderQueueRepositoryIntegrationTestSuite) TestUpdate_PersistsResponse() {
	ctx := context.Background()
	requestID := kernel.NewUUID()
	now := time.Now().UTC()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	entry := suite.createEntry(requestID, 1)
	suite.Require().NoError(entry.Contact(now, now.Add(30*time.Minute)))
	suite.Require().NoError(suite.repository.Add(ctx, entry))

	suite.Require().NoError(entry.Reject(now.Add(10 * time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, entry))

	entries, err := suite.repository.GetByRequest(ctx, requestID)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal(queue.StatusRejected, entries[0].Status())
	suite.Require().NotNil(entries[0].RespondedAt())

	_, err = suite.repository.GetContacted(ctx, requestID)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ProviderQueueRepositoryIntegrationTestSuite) TestGetAllExpiredContacted() {
	ctx := context.Background()
	now := time.Now().UTC()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	expired := suite.createEntry(kernel.NewUUID(), 1)
	suite.Require().NoError(expired.Contact(now.Add(-time.Hour), now.Add(-time.Minute)))
	suite.Require().NoError(suite.repository.Add(ctx, expired))

	live := suite.createEntry(kernel.NewUUID(), 1)
	suite.Require().NoError(live.Contact(now, now.Add(30*time.Minute)))
	suite.Require().NoError(suite.repository.Add(ctx, live))

	answered := suite.createEntry(kernel.NewUUID(), 1)
	suite.Require().NoError(answered.Contact(now.Add(-time.Hour), now.Add(-time.Minute)))
	suite.Require().NoError(answered.Accept(now.Add(-30 * time.Minute)))
	suite.Require().NoError(suite.repository.Add(ctx, answered))

	found, err := suite.repository.GetAllExpiredContacted(ctx, now)
	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.Equal(expired.ID(), found[0].ID())
}

func (suite *ProviderQueueRepositoryIntegrationTestSuite) createEntry(requestID kernel.UUID, position int) *queue.Entry {
	entry, err := queue.NewEntry(kernel.NewUUID(), requestID, kernel.NewUUID(), position, 3.5, 5.5)
	suite.Require().NoError(err)
	return entry
}

func TestProviderQueueRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProviderQueueRepositoryIntegrationTestSuite))
}
