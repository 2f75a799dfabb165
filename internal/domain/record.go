package domain

// Record is a single row expressed as column name to value. It carries
// partial updates and filter values into a table store.
type Record map[string]any

// Identifiable is implemented by every entity persisted through a table
// store. PrimaryKey returns zero for records the store has not assigned an
// id to yet.
type Identifiable interface {
	PrimaryKey() int64
}
