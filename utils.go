/* utils.go
 * Utility functions used across the application
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	api "octofit-tracker/api/api"
	"octofit-tracker/api/render"
)

// errScreenFailed is returned by printScreen when the screen settled on its error banner
var errScreenFailed = errors.New("screen failed to load")

// convertStrToBool converts a string of true or false into a boolean for comparisons
// Preconditions: Receives string containing either true or false (case insensitive)
// Postconditions: Returns boolean value or an error if the string is not true or false
func convertStrToBool(str string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean string")
}

// resolveLogPayloads applies the -logPayloads flag on top of the configured value. An unset flag keeps the fallback
func resolveLogPayloads(flagValue string, fallback bool) (bool, error) {
	if flagValue == "" {
		return fallback, nil
	}
	return convertStrToBool(flagValue)
}

// printScreen loads one screen and writes it to w as plain text
// Preconditions: Receives a context bounding the load, the output writer, the API and the (possibly misspelled) screen name
// Postconditions: Writes the loading line then the table, or "Error: <message>" and returns errScreenFailed
func printScreen(ctx context.Context, w io.Writer, a *api.API, input string) error {
	screen, err := a.ResolveScreen(input)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Loading %s...\n", strings.ToLower(screen.Title))
	page, err := a.LoadPage(ctx, screen.Name)
	if err != nil {
		return err
	}
	if page.Failed() {
		fmt.Fprintf(w, "Error: %s\n", page.Error)
		return fmt.Errorf("%w: %s", errScreenFailed, screen.Name)
	}

	fmt.Fprint(w, render.Text(page.Table, 0))
	return nil
}
