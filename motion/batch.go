package motion

// Batch processes a polled list of fixes a bounded number at a time.
// The host calls Step once per scheduling tick (e.g. per render frame)
// until Done; the engine never schedules steps itself.
type Batch struct {
	fixes    []Fix
	next     int
	size     int
	process  func(Fix)
	done     func()
	finished bool
}

// NewBatch prepares fixes for processing in input order, size per step.
// A non-positive size uses DefaultConfig.BatchSize. done is called exactly
// once, after the final step; for an empty list it is called immediately.
func NewBatch(fixes []Fix, process func(Fix), done func(), size int) *Batch {
	if size <= 0 {
		size = DefaultConfig.BatchSize
	}
	b := &Batch{
		fixes:   append([]Fix(nil), fixes...),
		size:    size,
		process: process,
		done:    done,
	}
	if len(b.fixes) == 0 {
		b.finish()
	}
	return b
}

// Step processes the next chunk and returns how many fixes it handled.
func (b *Batch) Step() int {
	if b.finished {
		return 0
	}
	end := b.next + b.size
	if end > len(b.fixes) {
		end = len(b.fixes)
	}
	n := 0
	for ; b.next < end; b.next++ {
		b.process(b.fixes[b.next])
		n++
	}
	if b.next == len(b.fixes) {
		b.finish()
	}
	return n
}

func (b *Batch) Remaining() int {
	return len(b.fixes) - b.next
}

func (b *Batch) Done() bool {
	return b.finished
}

func (b *Batch) finish() {
	b.finished = true
	if b.done != nil {
		b.done()
	}
}
