package account

import (
	"errors"

	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when an Actor instance was not created
// through the NewActor factory method.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// ErrEmailIsRequired is returned when an actor is constructed without an email.
var ErrEmailIsRequired = errors.New("email is required")

// Actor is the resolved identity behind a request: who is acting and in what
// role. It is produced by the identity provider adapter and carried through
// command handlers for authorization checks and audit attribution.
type Actor struct {
	id    kernel.UUID
	email string
	role  Role

	guard guard.ConstructorGuard
}

// NewActor creates a validated Actor. The id is the stable subject identifier
// from the identity provider, mapped into our UUID space.
func NewActor(id kernel.UUID, email string, role Role) (Actor, error) {
	actor := Actor{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		actor.setID(id),
		actor.setEmail(email),
		actor.setRole(role),
	); err != nil {
		return Actor{}, err
	}

	return actor, nil
}

// Validate ensures the Actor was created through NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the actor's unique identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Email returns the actor's email address.
func (a Actor) Email() string {
	return a.email
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

func (a *Actor) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Actor) setEmail(email string) error {
	if email == "" {
		return ErrEmailIsRequired
	}
	a.email = email
	return nil
}

func (a *Actor) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}
