package newsletter

// Database is a storage backend that owns a connection to the subscription store.
type Database interface {
	Open() error
	Close() error
}
