package domain

import "github.com/google/uuid"

// AggregateRoot is the consistency boundary persisted by a repository and the
// source of the domain events written to the outbox.
type AggregateRoot interface {
	Entity
	DomainEvents() []DomainEvent
	ClearDomainEvents()
	Version() int
	PersistedVersion() int
}

// BaseAggregateRoot carries uncommitted events and an optimistic version.
// version counts changes; persistedVersion is the version held by storage.
type BaseAggregateRoot struct {
	BaseEntity
	domainEvents     []DomainEvent
	version          int
	persistedVersion int
}

// NewBaseAggregateRoot creates an aggregate root with a fresh identity.
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity()}
}

// NewBaseAggregateRootWithID creates an aggregate root for a known identity.
func NewBaseAggregateRootWithID(id uuid.UUID) BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntityWithID(id)}
}

// RehydrateBaseAggregateRoot recreates an aggregate root from storage.
func RehydrateBaseAggregateRoot(entity BaseEntity, version int) BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: entity, version: version, persistedVersion: version}
}

func (a *BaseAggregateRoot) DomainEvents() []DomainEvent { return a.domainEvents }
func (a *BaseAggregateRoot) Version() int                { return a.version }

// PersistedVersion is the version the aggregate had when it was loaded or
// last saved. Repositories update a row only while it still holds this
// version.
func (a *BaseAggregateRoot) PersistedVersion() int { return a.persistedVersion }

// MarkPersisted records that the current version is now in storage.
func (a *BaseAggregateRoot) MarkPersisted() {
	a.persistedVersion = a.version
}

// ClearDomainEvents drops events once they have been handed to the outbox.
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// AddDomainEvent records an event and bumps the version.
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
	a.IncrementVersion()
}

// IncrementVersion marks a change that raises no event.
func (a *BaseAggregateRoot) IncrementVersion() {
	a.version++
	a.Touch()
}
