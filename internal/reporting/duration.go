package reporting

import (
	"strconv"
	"strings"

	"log/slog"
)

// DurationSeconds parses the free-text duration fields of the email workflow
// export into seconds. Recognized shapes: "mm:ss", "hh:mm:ss" and a decimal
// number of minutes (detected by a literal dot). Anything else yields 0 so a
// bad row never fails an aggregation; it is on the hot path of every email
// KPI endpoint.
func DurationSeconds(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		switch len(parts) {
		case 2:
			m, errM := strconv.ParseFloat(parts[0], 64)
			sec, errS := strconv.ParseFloat(parts[1], 64)
			if errM != nil || errS != nil {
				return unparseable(s)
			}
			return m*60 + sec
		case 3:
			h, errH := strconv.ParseFloat(parts[0], 64)
			m, errM := strconv.ParseFloat(parts[1], 64)
			sec, errS := strconv.ParseFloat(parts[2], 64)
			if errH != nil || errM != nil || errS != nil {
				return unparseable(s)
			}
			return h*3600 + m*60 + sec
		default:
			return unparseable(s)
		}
	}
	if strings.Contains(s, ".") {
		minutes, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return unparseable(s)
		}
		return minutes * 60
	}
	return unparseable(s)
}

func unparseable(s string) float64 {
	slog.Default().Debug("unparseable duration", slog.String("value", s))
	return 0
}
