package dashboard

import (
	"fmt"
	"strings"
	"time"

	"devhub/internal/models"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a backend timestamp as "Jan 2, 2006". Unparseable input
// comes back unchanged.
func FormatDate(s string) string {
	t, ok := parseTime(s)
	if !ok {
		return s
	}
	return t.Format("Jan 2, 2006")
}

// TimeAgo renders a timestamp relative to now, falling back to FormatDate
// after a week.
func TimeAgo(s string, now time.Time) string {
	t, ok := parseTime(s)
	if !ok {
		return s
	}
	seconds := int64(now.Sub(t) / time.Second)
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds ago", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	case seconds < 604800:
		return fmt.Sprintf("%dd ago", seconds/86400)
	}
	return FormatDate(s)
}

// StatusText turns "in-progress" into "In progress".
func StatusText(status models.ProjectStatus) string {
	s := string(status)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.Replace(s[1:], "-", " ", 1)
}
