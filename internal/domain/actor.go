package domain

import "github.com/google/uuid"

type ActorScope string

const (
	ScopeAdmin ActorScope = "admin"
	ScopeGuide ActorScope = "guide"
)

// Actor is who performs a review action. Guide actors are restricted to
// reports listed in their own internships.
type Actor struct {
	ID    uuid.UUID
	Name  string
	Scope ActorScope
}

func AdminActor(id uuid.UUID, name string) Actor {
	return Actor{ID: id, Name: name, Scope: ScopeAdmin}
}

func GuideActor(id uuid.UUID, name string) Actor {
	return Actor{ID: id, Name: name, Scope: ScopeGuide}
}

func (a Actor) IsGuide() bool {
	return a.Scope == ScopeGuide
}
