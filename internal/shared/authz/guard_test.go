package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	admin    = Identity{ID: "admin-1", Role: RoleAdmin}
	owner    = Identity{ID: "user-1", Role: RoleUser}
	stranger = Identity{ID: "user-2", Role: RoleUser}
)

func TestCanMutate_AnonymousAlwaysDenied(t *testing.T) {
	anon := Identity{}

	assert.False(t, CanMutate(anon, "user-1", ActionCreate, ResourceReview))
	assert.False(t, CanMutate(anon, "", ActionCreate, ResourceBook))
	assert.False(t, CanMutate(anon, "user-1", ActionDelete, ResourceUser))
}

func TestCanMutate_Books(t *testing.T) {
	for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
		assert.True(t, CanMutate(admin, "", action, ResourceBook), "admin %s", action)
		assert.False(t, CanMutate(owner, "", action, ResourceBook), "user %s", action)
	}
}

func TestCanMutate_ReviewCreate(t *testing.T) {
	assert.True(t, CanMutate(owner, owner.ID, ActionCreate, ResourceReview))
	assert.True(t, CanMutate(admin, admin.ID, ActionCreate, ResourceReview))
}

func TestCanMutate_ReviewUpdateOwnerOnly(t *testing.T) {
	assert.True(t, CanMutate(owner, owner.ID, ActionUpdate, ResourceReview))
	assert.False(t, CanMutate(stranger, owner.ID, ActionUpdate, ResourceReview))
	// Admins do not edit other people's words.
	assert.False(t, CanMutate(admin, owner.ID, ActionUpdate, ResourceReview))
}

func TestCanMutate_ReviewDeleteOwnerOrAdmin(t *testing.T) {
	assert.True(t, CanMutate(owner, owner.ID, ActionDelete, ResourceReview))
	assert.True(t, CanMutate(admin, owner.ID, ActionDelete, ResourceReview))
	assert.False(t, CanMutate(stranger, owner.ID, ActionDelete, ResourceReview))
}

func TestCanMutate_UserSelfOrAdmin(t *testing.T) {
	for _, action := range []Action{ActionUpdate, ActionDelete} {
		assert.True(t, CanMutate(owner, owner.ID, action, ResourceUser), "self %s", action)
		assert.True(t, CanMutate(admin, owner.ID, action, ResourceUser), "admin %s", action)
		assert.False(t, CanMutate(stranger, owner.ID, action, ResourceUser), "stranger %s", action)
	}
	// Creating accounts goes through registration, not the guard.
	assert.False(t, CanMutate(admin, "", ActionCreate, ResourceUser))
}
