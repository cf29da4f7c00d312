package port

// IDKind namespaces allocated identifiers so one allocator can serve several
// entity types.
type IDKind string

const (
	IDKindTransaction IDKind = "transaction"
	IDKindOrder       IDKind = "order"
)

// IDGenerator allocates integers that are monotonically unique per kind
// across the process lifetime. Centralizing allocation keeps transaction ids
// unique across providers.
type IDGenerator interface {
	GenerateID(kind IDKind) int64
}
