package entity

import "github.com/google/uuid"

type SportType struct {
	BaseNoDelete
	Name string `db:"name"`
}

// Court is the bookable resource.
type Court struct {
	BaseNoDelete
	Name        string    `db:"name"`
	SportTypeID uuid.UUID `db:"sport_type_id"`
	IsActive    bool      `db:"is_active"`
}
