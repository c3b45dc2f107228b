package proto

// Handler observes events carried on response frames, such as READY after
// the handshake. It is invoked synchronously from the reading call; it
// must not call back into the Session.
type Handler interface {
	OnEvent(eventType EventType, data []byte)
}

type noopHandler struct{}

func newNoopHandler() *noopHandler {
	return &noopHandler{}
}

func (noopHandler) OnEvent(_ EventType, _ []byte) {}
