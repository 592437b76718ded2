package model

import "time"

// User is an API account keyed by email. Password holds a bcrypt hash and is
// never serialized.
type User struct {
	Email     string    `json:"email" bson:"_id"`
	Password  string    `json:"-" bson:"password"`
	Name      string    `json:"name" bson:"name"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Role      string    `json:"role" bson:"role"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
