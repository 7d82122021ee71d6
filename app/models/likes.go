package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Likes is a non-negative like counter. It decodes from JSON numbers and numeric
// strings; null, false and the empty string decode to zero.
type Likes int

// UnmarshalJSON implements json.Unmarshaler
func (l *Likes) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null", "false", `""`:
		*l = 0
		return nil
	}

	text := string(data)
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			*l = 0
			return nil
		}
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		return NewValidationError(fmt.Sprintf("likes must be a whole number, got %s", data))
	}
	*l = Likes(n)
	return nil
}
