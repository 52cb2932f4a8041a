package store

// Store is a retail location. Name is unique across all stores.
type Store struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Request is the payload for creating or replacing a store.
type Request struct {
	Name string `json:"name" validate:"notblank,max=100"`
}
