package policy

type Status string

const (
	StatusPending           Status = "pending"
	StatusAwaitingSignature Status = "awaiting_signature"
	StatusActive            Status = "active"
	StatusRejected          Status = "rejected"
	StatusCancelled         Status = "cancelled"
	StatusExpired           Status = "expired"
)

// Who may move a policy along an edge.
type Role string

const (
	RoleClient Role = "client"
	RoleAgent  Role = "agent"
	RoleAdmin  Role = "admin"
	RoleSystem Role = "system"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleAgent, RoleAdmin, RoleSystem:
		return true
	}
	return false
}

type edge struct{ from, to Status }

var transitions = map[edge][]Role{
	{StatusPending, StatusAwaitingSignature}:   {RoleAgent, RoleAdmin},
	{StatusPending, StatusRejected}:            {RoleAgent, RoleAdmin},
	{StatusAwaitingSignature, StatusActive}:    {RoleClient, RoleAdmin},
	{StatusPending, StatusCancelled}:           {RoleAdmin},
	{StatusAwaitingSignature, StatusCancelled}: {RoleAdmin},
	{StatusActive, StatusCancelled}:            {RoleAdmin},
	{StatusPending, StatusExpired}:             {RoleAdmin, RoleSystem},
	{StatusAwaitingSignature, StatusExpired}:   {RoleAdmin, RoleSystem},
	{StatusActive, StatusExpired}:              {RoleAdmin, RoleSystem},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAwaitingSignature, StatusActive, StatusRejected, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// Terminal reports whether no further transition leaves s.
func (s Status) Terminal() bool {
	for e := range transitions {
		if e.from == s {
			return false
		}
	}
	return true
}

// CanTransition reports whether role may move a policy from -> to.
func CanTransition(from, to Status, role Role) bool {
	roles, ok := transitions[edge{from, to}]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// EdgeExists ignores the actor; used to tell "wrong state" apart from "wrong role".
func EdgeExists(from, to Status) bool {
	_, ok := transitions[edge{from, to}]
	return ok
}
