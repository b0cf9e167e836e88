package entity

// User is the directory entry this core checks for existence. Account
// management lives elsewhere.
type User struct {
	BaseNoDelete
	Name  string `db:"name"`
	Email string `db:"email"`
}
