package flow

import "context"

// StaticFlow answers every verification with a fixed outcome; used for
// non-interactive runs and tests.
type StaticFlow struct {
	Err error
}

func (s *StaticFlow) Available(ctx context.Context) bool {
	return s.Err != ErrUnavailable
}

func (s *StaticFlow) Authenticate(ctx context.Context, prompt string) error {
	return s.Err
}

// NewApproveFlow returns a flow that always verifies.
func NewApproveFlow() *StaticFlow {
	return &StaticFlow{}
}

// NewDenyFlow returns a flow that always fails with err, ErrDenied when nil.
func NewDenyFlow(err error) *StaticFlow {
	if err == nil {
		err = ErrDenied
	}
	return &StaticFlow{Err: err}
}
