package checkout

// IDGenerator issues opaque identifiers for new orders.
type IDGenerator interface {
	NewID() string
}
