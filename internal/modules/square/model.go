package square

import "time"

// Event is one inbound webhook delivery as received. Events are append-only.
type Event struct {
	ID         int64     `json:"id"`
	StoreID    int       `json:"storeId"`
	EventType  string    `json:"eventType"`
	Signature  string    `json:"signature"`
	Payload    string    `json:"payload"`
	ReceivedAt time.Time `json:"receivedAt"`
	Processed  bool      `json:"processed"`
}

// Delivery is what the handler extracts from the HTTP request. Truncated
// marks a body cut at the size limit; such deliveries are recorded but never valid.
type Delivery struct {
	EventType string
	Signature string
	Body      []byte
	Truncated bool
}
