/* normalize.go
 * Contains the response normaliser. List endpoints either return a bare JSON array, or a pagination envelope
 * whose `results` member holds the array
 */

package external

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Normalize unwraps a pagination envelope.
// Preconditions: Receives any valid JSON value
// Postconditions: Returns the value of `results` if raw is an object whose `results` member is present and not falsy,
// otherwise raw unchanged. null, false, 0 and "" count as falsy, an empty array or object does not. The shape of the
// returned value is not validated
func Normalize(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return raw
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return raw
	}

	results, ok := envelope["results"]
	if !ok || falsy(results) {
		return raw
	}
	return results
}

// falsy reports whether a JSON value is one of null, false, "" or a numeric zero
func falsy(value json.RawMessage) bool {
	trimmed := bytes.TrimSpace(value)
	switch string(trimmed) {
	case "null", "false", `""`:
		return true
	}
	if len(trimmed) == 0 || (trimmed[0] != '-' && (trimmed[0] < '0' || trimmed[0] > '9')) {
		return false
	}
	n, err := strconv.ParseFloat(string(trimmed), 64)
	return err == nil && n == 0
}
