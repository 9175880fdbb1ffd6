package realtime

import "strings"

// RoomKey identifies a broadcast room. Keys are built through the
// constructors below rather than ad hoc string concatenation, so the
// wire-level naming conventions live in exactly one place and the
// family-sweep unsubscribe can never miss a scope.
type RoomKey struct {
	name string
}

func (k RoomKey) String() string { return k.name }

// Family is a subscription namespace that a connection can clear in one
// sweep. A family owns every room named "<family>:<scope>".
type Family string

const (
	FamilyAppointments  Family = "appointments"
	FamilyPrescriptions Family = "prescriptions"
	FamilyLabOrders     Family = "lab-orders"
	FamilyNotifications Family = "notifications"
)

// Room returns the family room for the given scope, falling back to the
// catch-all room when no scope is supplied.
func (f Family) Room(scope string) RoomKey {
	if scope == "" {
		scope = "all"
	}
	return RoomKey{name: string(f) + ":" + scope}
}

// Owns reports whether the named room belongs to this family.
func (f Family) Owns(room string) bool {
	return strings.HasPrefix(room, string(f)+":")
}

// RoleRoom is the implicit room every authenticated connection of a role joins.
func RoleRoom(role string) RoomKey {
	return RoomKey{name: "role:" + role}
}

// UserRoom is the implicit per-user room joined at auth:join.
func UserRoom(userID string) RoomKey {
	return RoomKey{name: "user:" + userID}
}

// QueueRoom scopes live queue traffic to a single doctor's queue.
func QueueRoom(doctorID string) RoomKey {
	return RoomKey{name: "queue:" + doctorID}
}

// NotificationsRoom addresses notifications to a single user.
func NotificationsRoom(userID string) RoomKey {
	return FamilyNotifications.Room(userID)
}
