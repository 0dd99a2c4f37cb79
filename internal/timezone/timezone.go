package timezone

import "time"

const DefaultTimezone = "Asia/Ho_Chi_Minh"

// ict stands in when the host ships without tzdata.
var ict = time.FixedZone("ICT", 7*60*60)

// Location resolves tz, falling back to the shop timezone for empty or
// unknown names.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return ict
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}
