package port

// Channel delivers structured messages to one participant. The transport
// owns the connection behind it; Close requests session termination.
type Channel interface {
	Send(v any) error
	Close() error
}
