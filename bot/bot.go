/* bot.go
 * Contains logic used for creating the bot and parsing commands. Requires a discord bot token, and APIPtr both of
 * which are passed in from main.go
 */

package bot

import (
	"context"
	"fmt"
	"strings"

	"octofit-tracker/api/api"

	"github.com/go-andiamo/splitter"
)

// CommandPrefix starts every bot command
const CommandPrefix = "$"

type Bot struct {
	BotToken string
	APIPtr   *api.API

	ctx context.Context
}

func NewBot(botToken string, apiPtr *api.API) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if apiPtr == nil {
		return nil, fmt.Errorf("apiPtr is required but none was provided")
	}

	return &Bot{
		BotToken: botToken,
		APIPtr:   apiPtr,
	}, nil
}

// context returns the bot's lifetime context. Loads still running when the bot shuts down are cancelled
func (b *Bot) context() context.Context {
	if b.ctx == nil {
		return context.Background()
	}
	return b.ctx
}

// parseCommand splits a message into its command and arguments. Arguments may be quoted, e.g. $show "leader board"
// Preconditions: Receives the raw message content
// Postconditions: Returns the lower case command without its prefix and the remaining arguments, or ok false if the
// message is not a command
func parseCommand(content string) (command string, args []string, ok bool) {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, CommandPrefix) {
		return "", nil, false
	}

	// splitter keeps quoted arguments together where strings.Fields would not
	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return "", nil, false
	}
	parts, err := spaceSplitter.Split(content)
	if err != nil {
		// Unbalanced quotes, fall back to plain whitespace
		parts = strings.Fields(content)
	}

	var fields []string
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			fields = append(fields, part)
		}
	}
	if len(fields) == 0 {
		return "", nil, false
	}

	command = strings.ToLower(strings.TrimPrefix(fields[0], CommandPrefix))
	if command == "" {
		return "", nil, false
	}
	return command, fields[1:], true
}
