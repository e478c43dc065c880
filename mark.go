package regionarena

import "github.com/pkg/errors"

// Mark is a checkpoint: the number of bytes consumed across the chain, in
// chunk creation order. It is only meaningful for the arena that produced it.
type Mark int

// Mark returns the current position of the arena. It is 0 for a fresh or
// reset arena.
func (a *Arena) Mark() Mark {
	if a == nil || a.chunks == nil {
		return 0
	}
	sum := 0
	for _, c := range a.chunks[:a.active+1] {
		sum += c.off
	}
	return Mark(sum)
}

// ResetToMark rolls the arena back to m, discarding everything allocated
// after m was taken. Negative marks and marks beyond the current position
// are rejected with ErrInvalidMark and leave the arena untouched. A mark is
// a plain position, so one taken before a Reset or an earlier rollback is
// rejected only when it lies beyond the current position; otherwise it rolls
// back to that position.
func (a *Arena) ResetToMark(m Mark) error {
	if err := a.checkLive(); err != nil {
		return err
	}
	if cur := a.Mark(); m < 0 || m > cur {
		return errors.Wrapf(ErrInvalidMark, "mark %d outside [0, %d]", m, cur)
	}

	before := 0
	for i, c := range a.chunks[:a.active+1] {
		if int(m) <= before+c.off {
			c.off = int(m) - before
			if c.off == 0 {
				c.allocs = 0
				c.requested = 0
			}
			a.truncateAfter(i)
			a.active = i
			return nil
		}
		before += c.off
	}
	// Unreachable: m <= Mark() is the sum over the chunks walked above.
	return errors.Wrapf(ErrInvalidMark, "mark %d not found", m)
}
