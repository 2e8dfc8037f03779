package registry

// Route tags a handle with the ICD it was created on. In single-ICD mode
// every handle carries IcdIndex 0 and Remote equal to the local handle
// value, making the aggregated and single-ICD code paths share the same
// record shape (spec.md §9: "model as per-handle tagged variants {
// IcdIndex, RemoteHandle }; dispatch is a switch on the tag rather than
// inheritance").
type Route struct {
	IcdIndex uint32
	Remote   uint64
}

// Routed pairs a local opaque handle with the route it must always
// dispatch through. Once set at construction the tag is immutable, per
// spec.md §5's "a handle's routing tag is immutable" rule.
type Routed[T any] struct {
	Route  Route
	Record T
}
