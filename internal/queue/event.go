// Package queue defines message payloads exchanged over the message broker.
package queue

// Actions carried by ProductEvent.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ProductEvent is published whenever a product is created, updated or
// deleted. It carries enough information for downstream consumers to
// log, audit or trigger analytics without querying the primary database.
type ProductEvent struct {
	Action     string  `json:"action"`
	ProductID  uint64  `json:"product_id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	ActorID    uint64  `json:"actor_id"`    // authenticated user performing the mutation
	ActorName  string  `json:"actor_name"`
	OccurredAt string  `json:"occurred_at"`
}
