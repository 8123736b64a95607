// Package hub fans reading events out to websocket subscribers using a
// single channel-driven goroutine.
package hub

// Message is one encoded JSON payload, sent to every client as a text
// frame. Data is shared between clients and must not be modified after
// Broadcast.
type Message struct {
	Data []byte
}

// NewJSONMessage wraps already encoded JSON.
func NewJSONMessage(data []byte) Message {
	return Message{Data: data}
}
