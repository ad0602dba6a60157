/* input_processing.go
 * Contains the logic for processing user input, resolving typed screen names such as "leaderbord" to a known screen
 */

package logic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ErrUnknownScreen is returned when input does not match any screen name
var ErrUnknownScreen = errors.New("unknown screen")

// ResolveScreenName matches user input against the valid screen names.
// Preconditions: Receives the user's input and the list of valid screen names
// Postconditions: Returns the matching screen name in its original form, or an error wrapping ErrUnknownScreen listing the
// valid names. An exact (case-insensitive) match wins, otherwise the best ranked fuzzy match is taken
func ResolveScreenName(input string, validNames []string) (string, error) {
	input = strings.ToLower(strings.TrimSpace(strings.Trim(input, "\"“”")))
	if input == "" {
		return "", fmt.Errorf("%w: no screen given, expected one of %s", ErrUnknownScreen, strings.Join(validNames, ", "))
	}

	lookup := make(map[string]string)
	var validLower []string
	for _, name := range validNames {
		lower := strings.ToLower(name)
		lookup[lower] = name
		validLower = append(validLower, lower)
	}

	if name, ok := lookup[input]; ok {
		return name, nil
	}

	// Input as a subsequence of a name, e.g. "board", "work" or "leaderbord"
	matches := fuzzy.RankFind(input, validLower)
	if len(matches) == 0 {
		// Swapped letters are not subsequences, e.g. "usres"
		for _, name := range validLower {
			if levenshteinClose(input, name) {
				return lookup[name], nil
			}
		}
		return "", fmt.Errorf("%w: '%s', expected one of %s", ErrUnknownScreen, input, strings.Join(validNames, ", "))
	}

	best := matches[0]
	for _, match := range matches[1:] {
		if match.Distance < best.Distance {
			best = match
		}
	}
	return lookup[best.Target], nil
}

// levenshteinClose accepts a name within two edits of the input
func levenshteinClose(input, name string) bool {
	return fuzzy.LevenshteinDistance(input, name) <= 2
}
