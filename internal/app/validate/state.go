package validate

import "github.com/osvaldoandrade/typedef/internal/domain"

// state is the call-scoped accumulator threaded through the walk. Schema
// tokens are kept as a stack of frames: following a ref starts a fresh
// frame at ["definitions", name], so reported schema paths always point
// into the definition that did the rejecting, never through the ref chain.
// The frame count doubles as the ref recursion depth.
type state struct {
	opts       Options
	root       domain.Schema
	timestamps TimestampChecker

	instanceTokens []string
	schemaTokens   [][]string
	mismatches     []Mismatch
}

func newState(root domain.Schema, timestamps TimestampChecker, opts Options) *state {
	return &state{
		opts:         opts,
		root:         root,
		timestamps:   timestamps,
		schemaTokens: [][]string{{}},
	}
}

func (st *state) pushInstanceToken(token string) {
	st.instanceTokens = append(st.instanceTokens, token)
}

func (st *state) popInstanceToken() {
	st.instanceTokens = st.instanceTokens[:len(st.instanceTokens)-1]
}

func (st *state) pushSchemaToken(token string) {
	top := len(st.schemaTokens) - 1
	st.schemaTokens[top] = append(st.schemaTokens[top], token)
}

func (st *state) popSchemaToken() {
	top := len(st.schemaTokens) - 1
	st.schemaTokens[top] = st.schemaTokens[top][:len(st.schemaTokens[top])-1]
}

func (st *state) pushSchemaFrame(tokens ...string) {
	st.schemaTokens = append(st.schemaTokens, tokens)
}

func (st *state) popSchemaFrame() {
	st.schemaTokens = st.schemaTokens[:len(st.schemaTokens)-1]
}

// pushMismatch snapshots the current location. Returns errTooManyMismatches
// once the MaxErrors cutoff is hit so the walk unwinds immediately.
func (st *state) pushMismatch() error {
	top := st.schemaTokens[len(st.schemaTokens)-1]
	st.mismatches = append(st.mismatches, Mismatch{
		InstancePath: append([]string(nil), st.instanceTokens...),
		SchemaPath:   append([]string(nil), top...),
	})
	if len(st.mismatches) == st.opts.MaxErrors {
		return errTooManyMismatches
	}
	return nil
}
