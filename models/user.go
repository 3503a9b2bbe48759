package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User mirrors the identity provider's subject locally, mainly so admin
// routes can check the stored role.
type User struct {
	UID       string    `json:"uid" bson:"uid"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	Role      string    `json:"role" bson:"role"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
