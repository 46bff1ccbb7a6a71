package download

import (
	"context"
	"io"
)

// ContextReader wraps an io.Reader such that reads respect an embedded
// context. A read that is still active when the context finishes is orphaned
// in its goroutine.
type ContextReader struct {
	ctx context.Context
	r   io.Reader
}

func NewContextReader(ctx context.Context, r io.Reader) *ContextReader {
	return &ContextReader{
		ctx: ctx,
		r:   r,
	}
}

// Read implements io.Reader#Read(), respecting the ContextReader's embedded
// context.
func (cr *ContextReader) Read(p []byte) (int, error) {
	type result struct {
		n   int
		err error
	}

	resultChan := make(chan result, 1)

	go func() {
		defer close(resultChan)
		n, err := cr.r.Read(p)
		resultChan <- result{n, err}
	}()

	select {
	case <-cr.ctx.Done():
		return 0, cr.ctx.Err()
	case res := <-resultChan:
		return res.n, res.err
	}
}
