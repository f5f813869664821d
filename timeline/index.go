// Package timeline maps chart time onto scroll distance and beats.
//
// Every derived table is searched through one generic binary search, keyed
// either by time or by distance.
package timeline

// Mode selects which entry Search returns around the query key.
type Mode int

const (
	AtOrBefore Mode = iota // greatest key <= q
	AtOrAfter              // least key >= q
	Before                 // greatest key < q
	After                  // least key > q
)

// NotFound is returned when the table is empty or no entry satisfies the mode.
const NotFound = -1

// Timed is implemented by records ordered by chart time.
type Timed interface {
	TimeKey() float64
}

// Spaced is implemented by records ordered by scroll distance.
type Spaced interface {
	DistanceKey() float64
}

// ByTime extracts the time key of a record.
func ByTime[T Timed](v T) float64 { return v.TimeKey() }

// ByDistance extracts the distance key of a record.
func ByDistance[T Spaced](v T) float64 { return v.DistanceKey() }

// Search returns the index in s selected by mode for query q. s must be
// sorted by key. Equal keys are legal; for AtOrBefore and AtOrAfter the first
// entry of an equal run is returned, Before returns the last entry below q
// and After the first entry above q.
func Search[T any](s []T, key func(T) float64, q float64, mode Mode) int {
	n := len(s)
	if n == 0 {
		return NotFound
	}
	at := func(i int) float64 { return key(s[i]) }
	lo := straddle(n, at, q)

	switch mode {
	case AtOrBefore:
		if lo < 0 {
			return NotFound
		}
		return firstOfRun(at, lo)
	case AtOrAfter:
		if lo >= 0 && at(lo) == q {
			return firstOfRun(at, lo)
		}
		if lo+1 >= n {
			return NotFound
		}
		return lo + 1
	case Before:
		i := lo
		for i >= 0 && at(i) == q {
			i--
		}
		if i < 0 {
			return NotFound
		}
		return i
	case After:
		if lo+1 >= n {
			return NotFound
		}
		return lo + 1
	}
	return NotFound
}

// Floor returns the index of the segment start containing q: the last entry
// with key <= q. Queries before the first entry clamp to 0.
func Floor[T any](s []T, key func(T) float64, q float64) int {
	n := len(s)
	if n == 0 {
		return NotFound
	}
	lo := straddle(n, func(i int) float64 { return key(s[i]) }, q)
	if lo < 0 {
		return 0
	}
	return lo
}

// straddle finds lo with key(lo) <= q < key(lo+1). It returns -1 when q is
// below every key and n-1 when q is at or above the last key.
func straddle(n int, at func(int) float64, q float64) int {
	if q < at(0) {
		return -1
	}
	if q >= at(n-1) {
		return n - 1
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if at(mid) <= q {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

func firstOfRun(at func(int) float64, i int) int {
	k := at(i)
	for i > 0 && at(i-1) == k {
		i--
	}
	return i
}
