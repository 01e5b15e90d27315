package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, role := range []Role{RoleUser, RoleOwner, RoleAdmin} {
		parsed, ok := ParseRole(string(role))
		assert.True(t, ok)
		assert.Equal(t, role, parsed)
	}

	_, ok := ParseRole("manager")
	assert.False(t, ok)

	_, ok = ParseRole("admin") // регистр имеет значение
	assert.False(t, ok)
}

func TestCanPerform(t *testing.T) {
	ownerID := uuid.New()
	bookerID := uuid.New()
	strangerID := uuid.New()

	admin := Caller{UserID: uuid.New(), Role: RoleAdmin}
	owner := Caller{UserID: ownerID, Role: RoleOwner}
	booker := Caller{UserID: bookerID, Role: RoleUser}
	stranger := Caller{UserID: strangerID, Role: RoleUser}

	allActions := []Action{
		ActionConfirmReservation,
		ActionCancelReservation,
		ActionUpdateReservation,
		ActionDeleteReservation,
		ActionViewReservation,
		ActionManageResource,
		ActionManageAvailability,
	}

	t.Run("admin can perform everything", func(t *testing.T) {
		for _, action := range allActions {
			assert.True(t, CanPerform(action, admin, ownerID, bookerID), "action=%s", action)
		}
	})

	t.Run("resource owner", func(t *testing.T) {
		assert.True(t, CanPerform(ActionConfirmReservation, owner, ownerID, bookerID))
		assert.True(t, CanPerform(ActionCancelReservation, owner, ownerID, bookerID))
		assert.True(t, CanPerform(ActionUpdateReservation, owner, ownerID, bookerID))
		assert.True(t, CanPerform(ActionViewReservation, owner, ownerID, bookerID))
		assert.True(t, CanPerform(ActionManageResource, owner, ownerID, bookerID))
		assert.True(t, CanPerform(ActionManageAvailability, owner, ownerID, bookerID))

		// Физическое удаление - только администратор
		assert.False(t, CanPerform(ActionDeleteReservation, owner, ownerID, bookerID))
	})

	t.Run("booker", func(t *testing.T) {
		assert.True(t, CanPerform(ActionCancelReservation, booker, ownerID, bookerID))
		assert.True(t, CanPerform(ActionUpdateReservation, booker, ownerID, bookerID))
		assert.True(t, CanPerform(ActionViewReservation, booker, ownerID, bookerID))

		assert.False(t, CanPerform(ActionConfirmReservation, booker, ownerID, bookerID))
		assert.False(t, CanPerform(ActionDeleteReservation, booker, ownerID, bookerID))
		assert.False(t, CanPerform(ActionManageResource, booker, ownerID, bookerID))
		assert.False(t, CanPerform(ActionManageAvailability, booker, ownerID, bookerID))
	})

	t.Run("stranger can do nothing", func(t *testing.T) {
		for _, action := range allActions {
			assert.False(t, CanPerform(action, stranger, ownerID, bookerID), "action=%s", action)
		}
	})

	t.Run("unknown action denied", func(t *testing.T) {
		assert.False(t, CanPerform(Action("reservation.unknown"), owner, ownerID, bookerID))
	})
}
