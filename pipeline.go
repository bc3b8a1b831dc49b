package kterm

// Pipeline is a single-producer/single-consumer byte ring buffer: the host
// writer pushes, the parser drains (spec §4.1 "Input Pipeline"). Capacity is
// rounded up to a power of two. push/drain never block and never allocate
// once constructed.
type Pipeline struct {
	buf        []byte
	mask       int
	head, tail int // tail is the write cursor, head the read cursor; both ever-increasing

	highWatermark int
	lowWatermark  int
	xoffArmed     bool
	droppedBytes  uint64
}

const defaultPipelineCapacity = 64 * 1024

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// NewPipeline allocates a ring of at least capacity bytes (rounded to a power of two).
func NewPipeline(capacity int) *Pipeline {
	if capacity <= 0 {
		capacity = defaultPipelineCapacity
	}
	capacity = nextPow2(capacity)
	return &Pipeline{
		buf:           make([]byte, capacity),
		mask:          capacity - 1,
		highWatermark: capacity * 90 / 100,
		lowWatermark:  capacity * 10 / 100,
	}
}

func (p *Pipeline) Capacity() int  { return len(p.buf) }
func (p *Pipeline) Len() int       { return p.tail - p.head }
func (p *Pipeline) Free() int      { return len(p.buf) - p.Len() }
func (p *Pipeline) DroppedBytes() uint64 { return p.droppedBytes }

// Push appends as many bytes of data as fit, returning the number accepted.
// The remainder is dropped (§7.2 "resource-exhaustion": drop newest bytes).
func (p *Pipeline) Push(data []byte) int {
	free := p.Free()
	n := len(data)
	if n > free {
		p.droppedBytes += uint64(n - free)
		n = free
	}
	for i := 0; i < n; i++ {
		p.buf[(p.tail+i)&p.mask] = data[i]
	}
	p.tail += n
	return n
}

// Drain returns up to nMax unread bytes starting at the read cursor. The
// slice may be shorter than nMax at the ring wrap point; the caller must
// call Advance with however many bytes it actually consumed.
func (p *Pipeline) Drain(nMax int) []byte {
	avail := p.Len()
	if avail == 0 {
		return nil
	}
	if nMax > avail {
		nMax = avail
	}
	start := p.head & p.mask
	end := start + nMax
	if end <= len(p.buf) {
		return p.buf[start:end]
	}
	// Wrap: caller gets the contiguous first part; a second Drain call
	// after Advance will pick up the rest.
	return p.buf[start:]
}

// Advance moves the read cursor forward by n bytes (n must not exceed what
// the most recent Drain returned cumulatively).
func (p *Pipeline) Advance(n int) { p.head += n }

// Occupancy returns current fill level as occupied/capacity in [0,1].
func (p *Pipeline) Occupancy() float64 {
	return float64(p.Len()) / float64(len(p.buf))
}

// BackpressureSignal evaluates DECXRLM hysteresis (§4.1): crossing the high
// watermark returns 0x13 (XOFF) once per crossing; falling below the low
// watermark after that returns 0x11 (XON); otherwise 0.
func (p *Pipeline) BackpressureSignal() byte {
	occ := p.Len()
	if !p.xoffArmed && occ >= p.highWatermark {
		p.xoffArmed = true
		return 0x13 // DC3 / XOFF
	}
	if p.xoffArmed && occ <= p.lowWatermark {
		p.xoffArmed = false
		return 0x11 // DC1 / XON
	}
	return 0
}
