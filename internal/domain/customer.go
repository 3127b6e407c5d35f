package domain

import "time"

// Customer is a salon client, unique by (salon, phone)
type Customer struct {
	ID        int64
	SalonID   int64
	Name      string
	Phone     string
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
