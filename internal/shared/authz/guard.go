package authz

// Identity is the {id, role} pair resolved from the request's credentials.
type Identity struct {
	ID   string
	Role string
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Resource string

const (
	ResourceBook   Resource = "book"
	ResourceReview Resource = "review"
	ResourceUser   Resource = "user"
)

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanMutate reports whether the acting identity may perform action on a
// resource owned by ownerID. Pure predicate, no side effects.
//
// Rules:
//   - book create/update/delete: admin only
//   - review create: any authenticated identity (ownership is the actor)
//   - review update: owner only
//   - review delete: owner or admin
//   - user update/delete: the user themselves or admin
func CanMutate(identity Identity, ownerID string, action Action, resource Resource) bool {
	if identity.ID == "" {
		return false
	}

	switch resource {
	case ResourceBook:
		return identity.IsAdmin()

	case ResourceReview:
		switch action {
		case ActionCreate:
			return true
		case ActionUpdate:
			return identity.ID == ownerID
		case ActionDelete:
			return identity.ID == ownerID || identity.IsAdmin()
		}

	case ResourceUser:
		switch action {
		case ActionUpdate, ActionDelete:
			return identity.ID == ownerID || identity.IsAdmin()
		}
	}

	return false
}
