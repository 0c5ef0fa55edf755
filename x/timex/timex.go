package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// CyclesToDuration converts a count of reference-clock cycles into a duration.
// hz==0 is coerced to 1 to avoid division by zero.
func CyclesToDuration(cycles uint64, hz uint32) time.Duration {
	if hz == 0 {
		hz = 1
	}
	// Split to keep cycles*1e9 inside uint64 for multi-second spans.
	whole := cycles / uint64(hz)
	rem := cycles % uint64(hz)
	return time.Duration(whole)*time.Second + time.Duration(rem*uint64(time.Second)/uint64(hz))
}

// DurationToCycles is the inverse of CyclesToDuration, truncating.
func DurationToCycles(d time.Duration, hz uint32) uint64 {
	if d <= 0 {
		return 0
	}
	whole := uint64(d / time.Second)
	rem := uint64(d % time.Second)
	return whole*uint64(hz) + rem*uint64(hz)/uint64(time.Second)
}
