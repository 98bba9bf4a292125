package nexuslog

import (
	"fmt"
	"time"
)

// processOffset is the local UTC offset captured once at process start and
// reused for the lifetime of the process (spec §9: DST transitions within a
// process lifetime are intentionally ignored).
var processOffset = computeProcessOffset()

func computeProcessOffset() *time.Location {
	_, offsetSecs := time.Now().Zone()
	sign := "+"
	abs := offsetSecs
	if abs < 0 {
		sign = "-"
		abs = -abs
	}
	name := fmt.Sprintf("UTC%s%02d:%02d", sign, abs/3600, (abs%3600)/60)
	return time.FixedZone(name, offsetSecs)
}

// formatterCache caches the whole-second prefix of the output line so that
// a worker writing many entries within the same wall-clock second never
// reformats the date/time/offset more than once.
type formatterCache struct {
	lastSecs     uint64
	timePrefix   string // "time=YYYY-MM-DDTHH:MM:SS."
	offsetSuffix string // "{+|-}HH:MM"
	currentDate  string // "YYYYMMDD", in the process-fixed local zone
}

func newFormatterCache() formatterCache {
	return formatterCache{lastSecs: ^uint64(0)}
}

// update rebuilds the cached prefixes if secs falls in a different
// wall-clock second than the last call. A no-op otherwise.
func (c *formatterCache) update(secs uint64) {
	if secs == c.lastSecs {
		return
	}
	c.lastSecs = secs

	t := time.Unix(int64(secs), 0).In(processOffset)
	c.timePrefix = fmt.Sprintf("time=%04d-%02d-%02dT%02d:%02d:%02d.",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())

	_, offsetSecs := t.Zone()
	sign := byte('+')
	abs := offsetSecs
	if abs < 0 {
		sign = '-'
		abs = -abs
	}
	c.offsetSuffix = fmt.Sprintf("%c%02d:%02d", sign, abs/3600, (abs%3600)/60)

	c.currentDate = fmt.Sprintf("%04d%02d%02d", t.Year(), t.Month(), t.Day())
}
