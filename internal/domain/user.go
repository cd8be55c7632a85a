package domain

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Performance-point awards for the gamified actions.
const (
	PointsSignup    = 50
	PointsGarageAdd = 10
	PointsPromote   = 25
)

type Profile struct {
	ID                uint      `json:"id"`
	UserID            uint      `json:"user_id"`
	DisplayName       string    `json:"display_name"`
	PerformancePoints int       `json:"performance_points"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
