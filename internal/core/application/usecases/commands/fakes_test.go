package commands_test

import (
	"context"
	"sort"
	"time"

	"buildconnect/internal/core/application/usecases/commands"
	"buildconnect/internal/core/domain/model/access"
	"buildconnect/internal/core/domain/model/comm"
	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/provider"
	"buildconnect/internal/core/domain/model/queue"
	"buildconnect/internal/core/domain/model/request"
	"buildconnect/internal/core/ports"
	"buildconnect/internal/pkg/errs"
)

// In-memory infrastructure fakes. They honor the repository contracts
// (not-found errors, ordering) so handler tests exercise real control flow.

type fakeRequestRepo struct {
	requests map[string]*request.DeliveryRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[string]*request.DeliveryRequest{}}
}

func (r *fakeRequestRepo) Add(_ context.Context, aggregate *request.DeliveryRequest) error {
	r.requests[aggregate.ID().String()] = aggregate
	return nil
}

func (r *fakeRequestRepo) Update(_ context.Context, aggregate *request.DeliveryRequest) error {
	if _, ok := r.requests[aggregate.ID().String()]; !ok {
		return errs.NewObjectNotFoundError("requestId", aggregate.ID())
	}
	r.requests[aggregate.ID().String()] = aggregate
	return nil
}

func (r *fakeRequestRepo) Get(_ context.Context, id kernel.UUID) (*request.DeliveryRequest, error) {
	aggregate, ok := r.requests[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("requestId", id)
	}
	return aggregate, nil
}

func (r *fakeRequestRepo) GetAllActive(_ context.Context) ([]*request.DeliveryRequest, error) {
	var active []*request.DeliveryRequest
	for _, aggregate := range r.requests {
		if !aggregate.IsTerminal() {
			active = append(active, aggregate)
		}
	}
	return active, nil
}

type fakeQueueRepo struct {
	entries []*queue.Entry
}

func (r *fakeQueueRepo) Add(_ context.Context, entry *queue.Entry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeQueueRepo) Update(_ context.Context, entry *queue.Entry) error {
	for i, existing := range r.entries {
		if existing.ID().IsEqual(entry.ID()) {
			r.entries[i] = entry
			return nil
		}
	}
	return errs.NewObjectNotFoundError("entryId", entry.ID())
}

func (r *fakeQueueRepo) GetByRequest(_ context.Context, requestID kernel.UUID) ([]*queue.Entry, error) {
	var result []*queue.Entry
	for _, entry := range r.entries {
		if entry.RequestID().IsEqual(requestID) {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Position() < result[j].Position() })
	return result, nil
}

func (r *fakeQueueRepo) GetContacted(_ context.Context, requestID kernel.UUID) (*queue.Entry, error) {
	for _, entry := range r.entries {
		if entry.RequestID().IsEqual(requestID) && entry.Status() == queue.StatusContacted {
			return entry, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("requestId", requestID)
}

func (r *fakeQueueRepo) GetAllExpiredContacted(_ context.Context, now time.Time) ([]*queue.Entry, error) {
	var result []*queue.Entry
	for _, entry := range r.entries {
		if entry.Status() == queue.StatusContacted && entry.IsDeadlineExpired(now) {
			result = append(result, entry)
		}
	}
	return result, nil
}

type fakeProviderRepo struct {
	providers []*provider.Provider
}

func (r *fakeProviderRepo) Get(_ context.Context, id kernel.UUID) (*provider.Provider, error) {
	for _, p := range r.providers {
		if p.ID().IsEqual(id) {
			return p, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("providerId", id)
}

func (r *fakeProviderRepo) GetAllActive(_ context.Context) ([]*provider.Provider, error) {
	var active []*provider.Provider
	for _, p := range r.providers {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active, nil
}

type fakeCommRepo struct {
	records []*comm.Record
}

func (r *fakeCommRepo) Add(_ context.Context, record *comm.Record) error {
	r.records = append(r.records, record)
	return nil
}

func (r *fakeCommRepo) GetByRequest(_ context.Context, requestID kernel.UUID) ([]*comm.Record, error) {
	var result []*comm.Record
	for _, record := range r.records {
		if record.RequestID().IsEqual(requestID) {
			result = append(result, record)
		}
	}
	return result, nil
}

// byType returns the records carrying the given message type tag.
func (r *fakeCommRepo) byType(messageType string) []*comm.Record {
	var result []*comm.Record
	for _, record := range r.records {
		if record.MessageType() == messageType {
			result = append(result, record)
		}
	}
	return result
}

type fakeAccessRepo struct {
	entries []access.LogEntry
}

func (r *fakeAccessRepo) Add(_ context.Context, entry access.LogEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

// fakeUoW satisfies both RotationUoW and DisclosureUoW over the in-memory
// repos. Commits and rollbacks are counted, not transactional.
type fakeUoW struct {
	requestRepo  *fakeRequestRepo
	queueRepo    *fakeQueueRepo
	providerRepo *fakeProviderRepo
	commRepo     *fakeCommRepo
	accessRepo   *fakeAccessRepo

	begun     int
	committed int
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{
		requestRepo:  newFakeRequestRepo(),
		queueRepo:    &fakeQueueRepo{},
		providerRepo: &fakeProviderRepo{},
		commRepo:     &fakeCommRepo{},
		accessRepo:   &fakeAccessRepo{},
	}
}

func (u *fakeUoW) Begin(context.Context) error    { u.begun++; return nil }
func (u *fakeUoW) Commit(context.Context) error   { u.committed++; return nil }
func (u *fakeUoW) Rollback(context.Context) error { return nil }

func (u *fakeUoW) DeliveryRequestRepository() ports.DeliveryRequestRepository { return u.requestRepo }
func (u *fakeUoW) ProviderQueueRepository() ports.ProviderQueueRepository     { return u.queueRepo }
func (u *fakeUoW) ProviderRepository() ports.ProviderRepository               { return u.providerRepo }
func (u *fakeUoW) CommunicationRepository() ports.CommunicationRepository     { return u.commRepo }
func (u *fakeUoW) AccessLogRepository() ports.AccessLogRepository             { return u.accessRepo }

type fakeRotationUoWFactory struct{ uow *fakeUoW }

func (f fakeRotationUoWFactory) Create() commands.RotationUoW { return f.uow }

type fakeDisclosureUoWFactory struct{ uow *fakeUoW }

func (f fakeDisclosureUoWFactory) Create() commands.DisclosureUoW { return f.uow }

type fakeDispatcher struct {
	providerNotifications []ports.ProviderContactNotification
	outcomeNotifications  []ports.RotationOutcomeNotification
}

func (d *fakeDispatcher) NotifyProviderContacted(_ context.Context, n ports.ProviderContactNotification) {
	d.providerNotifications = append(d.providerNotifications, n)
}

func (d *fakeDispatcher) NotifyRotationOutcome(_ context.Context, n ports.RotationOutcomeNotification) {
	d.outcomeNotifications = append(d.outcomeNotifications, n)
}

type fakePublisher struct {
	events []ports.RotationEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, event ports.RotationEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) eventTypes() []string {
	types := make([]string, 0, len(p.events))
	for _, event := range p.events {
		types = append(types, event.EventType)
	}
	return types
}

type fakeResolver struct {
	contact ports.DriverContact
	err     error
}

func (r *fakeResolver) Resolve(_ context.Context, providerID kernel.UUID) (ports.DriverContact, error) {
	if r.err != nil {
		return ports.DriverContact{}, r.err
	}
	contact := r.contact
	contact.ProviderID = providerID
	return contact, nil
}
