package entity

// Rate is the price source for a reservation: full price plus the
// deposit collected up front.
type Rate struct {
	BaseNoDelete
	Name          string  `db:"name"`
	Price         float64 `db:"price"`
	DepositAmount float64 `db:"deposit_amount"`
}
