package models

// Role strings are stored verbatim in the remote user table. There is no
// finer-grained authorization model on top of them.
const (
	// RoleVessel is the operator role used by crews logging time.
	RoleVessel = "Vessel"

	// RoleOffice is the shore-side view role.
	RoleOffice = "Office"

	// RoleAdmin can manage reference lists and other users.
	RoleAdmin = "Admin"
)

// User is an account provisioned by an administrator. Name is unique
// case-insensitively across the user list.
type User struct {
	// ID is the remote record identifier, empty for users that have never
	// been mirrored to the remote store.
	ID string `json:"id,omitempty"`

	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`

	// SortID is the optional ordering key from the remote table.
	SortID int `json:"sortId,omitempty"`
}
