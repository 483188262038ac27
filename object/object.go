// Package object defines the opaque indexed datum shared across the search core.
package object

// NoLabel marks an Object that carries no classification label.
const NoLabel int32 = -1

// Object is an immutable, opaque indexed datum. It carries a stable id unique
// within its owning dataset, an optional classification label, and payload
// bytes that only the distance space interprets.
//
// Objects are owned by the dataset that created them; indices hold
// non-owning references and must not outlive the dataset.
type Object struct {
	id      uint64
	label   int32
	payload []byte
}

// New creates an Object with the given id, label, and payload.
// Pass NoLabel when the object carries no classification label.
func New(id uint64, label int32, payload []byte) *Object {
	return &Object{id: id, label: label, payload: payload}
}

// ID returns the object's dataset-unique identifier.
func (o *Object) ID() uint64 { return o.id }

// Label returns the object's classification label, or NoLabel if absent.
func (o *Object) Label() int32 { return o.label }

// Payload returns the object's opaque bytes. Callers must not mutate it.
func (o *Object) Payload() []byte { return o.payload }

// ObjectVector is the authoritative, ordered dataset representation.
type ObjectVector []*Object
