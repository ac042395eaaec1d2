package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// Ms converts a duration to whole milliseconds.
func Ms(d time.Duration) int64 { return int64(d / time.Millisecond) }
