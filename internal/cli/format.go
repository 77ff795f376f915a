package cli

import (
	"fmt"
	"time"
)

// FormatElapsed renders a run duration as M:SS, or H:MM:SS once it crosses
// an hour. Sub-second runs collapse to "0:00".
func FormatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	h, m, s := secs/3600, secs/60%60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
