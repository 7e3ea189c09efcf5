package validate

// TimestampChecker decides whether a string satisfies the timestamp type
// tag. Wired to the RFC 3339 adapter in production, faked in tests.
type TimestampChecker interface {
	Valid(value string) bool
}
