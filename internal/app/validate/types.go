package validate

// Options bounds a single Validate call. Zero means unlimited for both
// fields. MaxDepth counts ref hops only; structural nesting is bounded by
// the instance itself.
type Options struct {
	MaxDepth  int
	MaxErrors int
}

// Mismatch locates one schema violation: the path to the rejected part of
// the instance and the path to the schema node that rejected it. Paths are
// property names, decimal array indices, or schema keywords.
type Mismatch struct {
	InstancePath []string
	SchemaPath   []string
}
