package dto

const (
	RoleAdmin = "admin"
	// RoleStaff is the documented spelling; the server also emits the
	// legacy "sub_admin" value for the same privilege level.
	RoleStaff    = "staff"
	RoleSubAdmin = "sub_admin"
	RoleMember   = "member"
)

type User struct {
	ID         int    `json:"id"`
	Phone      string `json:"phone"`
	Name       string `json:"name,omitempty"`
	Role       string `json:"role"`
	IsApproved bool   `json:"is_approved,omitempty"`
	ExpiryDate string `json:"expiry_date,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}
