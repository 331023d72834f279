package timeutil

import (
	"fmt"
	"time"
)

// Relative formats t as a relative-time string against now: "Just now"
// under a minute, then "{n}m ago", "{n}h ago", "{n}d ago", and an absolute
// date once the age exceeds 30 days. Future timestamps format as "Just now".
func Relative(t, now time.Time) string {
	d := now.Sub(t)
	if d < time.Minute {
		return "Just now"
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	if d <= 30*24*time.Hour {
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
	return t.Format("Jan 2, 2006")
}
