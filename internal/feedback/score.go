package feedback

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Score is a 0-100 grade. Graders return it in whatever shape they feel
// like that day ("85%", "85", 85, 85.0, null), so unmarshaling is
// deliberately forgiving: anything unparseable is 0.
type Score int

func (s *Score) UnmarshalJSON(data []byte) error {
	*s = ParseScore(string(data))
	return nil
}

// ParseScore converts a raw JSON value into a clamped 0-100 score.
func ParseScore(raw string) Score {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return 0
	}
	if len(raw) >= 2 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return 0
		}
		raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	switch {
	case f < 0:
		return 0
	case f > 100:
		return 100
	default:
		return Score(int(f + 0.5))
	}
}
