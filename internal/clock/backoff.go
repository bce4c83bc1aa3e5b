package clock

import "time"

// Backoff doubles Base per consecutive failure, up to Max.
type Backoff struct {
	Base time.Duration
	Max  time.Duration
}

// Delay returns the wait after the given number of consecutive failures.
func (b Backoff) Delay(failures int) time.Duration {
	if failures <= 0 || b.Max <= b.Base {
		return b.Base
	}
	d := b.Base
	for i := 0; i < failures; i++ {
		if d >= b.Max/2 {
			return b.Max
		}
		d *= 2
	}
	return d
}
