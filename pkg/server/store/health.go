package store

// HealthStore abstracts database health checking
type HealthStore interface {
	// CheckDatabase verifies database connectivity
	CheckDatabase() error
}
