package domain

import "github.com/google/uuid"

// Role represents the role supplied by the identity provider
type Role string

const (
	RoleUser  Role = "USER"
	RoleOwner Role = "OWNER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole валидирует строковое представление роли
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleOwner, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// Caller is the opaque credential of the requesting user: the service
// treats identity as external and only consumes {id, role}.
type Caller struct {
	UserID uuid.UUID
	Role   Role
}

// IsAdmin reports whether the caller has the ADMIN role
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Action is a permission-checked lifecycle operation
type Action string

const (
	ActionConfirmReservation Action = "reservation.confirm"
	ActionCancelReservation  Action = "reservation.cancel"
	ActionUpdateReservation  Action = "reservation.update"
	ActionDeleteReservation  Action = "reservation.delete"
	ActionViewReservation    Action = "reservation.view"
	ActionManageResource     Action = "resource.manage"
	ActionManageAvailability Action = "availability.manage"
)

// CanPerform единая таблица решений по авторизации:
// ADMIN может всё; владелец ресурса управляет своим ресурсом и бронированиями
// на нём; бронирующий распоряжается только собственным бронированием.
// Вызывается ровно один раз на каждый переход жизненного цикла.
func CanPerform(action Action, caller Caller, resourceOwnerID, bookerID uuid.UUID) bool {
	if caller.IsAdmin() {
		return true
	}

	isResourceOwner := caller.UserID == resourceOwnerID
	isBooker := caller.UserID == bookerID

	switch action {
	case ActionConfirmReservation:
		return isResourceOwner
	case ActionCancelReservation:
		return isResourceOwner || isBooker
	case ActionUpdateReservation:
		return isResourceOwner || isBooker
	case ActionDeleteReservation:
		// Физическое удаление - административная операция
		return false
	case ActionViewReservation:
		return isResourceOwner || isBooker
	case ActionManageResource, ActionManageAvailability:
		return isResourceOwner
	default:
		return false
	}
}
