package gate

import (
	"fmt"
	"time"

	"github.com/AnthoniusHendriyanto/access-gate/pkg/constant"
)

const day = 24 * time.Hour

// FormatRemaining renders the time left on a ban using the coarsest non-zero
// pair of units: days+hours, hours+minutes, or minutes alone.
func FormatRemaining(expiresAt *time.Time, now time.Time) string {
	if expiresAt == nil {
		return constant.PermanentBanLabel
	}

	diff := expiresAt.Sub(now)
	if diff <= 0 {
		return constant.ExpiredBanLabel
	}

	days := int(diff / day)
	hours := int(diff % day / time.Hour)
	minutes := int(diff % time.Hour / time.Minute)

	switch {
	case days > 0:
		return fmt.Sprintf("%s %s", unit(days, "day"), unit(hours, "hour"))
	case hours > 0:
		return fmt.Sprintf("%s %s", unit(hours, "hour"), unit(minutes, "minute"))
	default:
		return unit(minutes, "minute")
	}
}

func unit(n int, name string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, name)
	}
	return fmt.Sprintf("%d %ss", n, name)
}
