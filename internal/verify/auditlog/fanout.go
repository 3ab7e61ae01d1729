package auditlog

import "context"

// Fanout appends each row to every sink. The first error is returned after
// all sinks have been attempted.
type Fanout []Store

func (f Fanout) Append(ctx context.Context, row Row) error {
	var first error
	for _, s := range f {
		if err := s.Append(ctx, row); err != nil && first == nil {
			first = err
		}
	}
	return first
}
