package buffer

// Ring is a fixed-capacity FIFO. Once full, each Push evicts the oldest value.
type Ring[T any] struct {
	data []T
	head int // next write position
	size int
}

func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring[T]{data: make([]T, capacity)}
}

func (r *Ring[T]) Push(v T) {
	r.data[r.head] = v
	r.head = (r.head + 1) % len(r.data)
	if r.size < len(r.data) {
		r.size++
	}
}

// Values returns a copy of the contents, oldest first.
func (r *Ring[T]) Values() []T {
	out := make([]T, r.size)
	start := (r.head - r.size + len(r.data)) % len(r.data)
	for i := 0; i < r.size; i++ {
		out[i] = r.data[(start+i)%len(r.data)]
	}
	return out
}

// Last returns up to n most recent values, oldest first.
func (r *Ring[T]) Last(n int) []T {
	vals := r.Values()
	if n >= 0 && n < len(vals) {
		return vals[len(vals)-n:]
	}
	return vals
}

func (r *Ring[T]) Len() int { return r.size }

func (r *Ring[T]) Full() bool { return r.size == len(r.data) }
