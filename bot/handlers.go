/* handlers.go
 * Contains testable handler methods that accept DiscordSession interface
 */

package bot

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"octofit-tracker/api/api"
	"octofit-tracker/api/logic"
	"octofit-tracker/api/render"

	"github.com/bwmarrin/discordgo"
)

// messageLimit is the most characters discord accepts in one message
const messageLimit = 2000

// codeFence wraps table output so discord keeps the columns aligned
const codeFence = "```"

// helpMessageHandler handles the $help command with a DiscordSession interface
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("OctoFit Tracker Bot\n")
	for _, screen := range b.APIPtr.Screens() {
		res.WriteString(fmt.Sprintf("`$%s`: %s %s\n", screen.Name, screen.Icon, screen.Description))
	}
	res.WriteString("`$show <screen>`: shows any of the screens above. There is fuzzy matching on names, so `$show board` shows the leaderboard\n")
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// showHandler handles the $show command, resolving its argument to a screen
func (b *Bot) showHandler(session DiscordSession, message *discordgo.MessageCreate, args []string) {
	screen, err := b.APIPtr.ResolveScreen(strings.Join(args, " "))
	if err != nil {
		if errors.Is(err, logic.ErrUnknownScreen) {
			session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Unknown screen. Try one of: %s", strings.Join(b.APIPtr.ScreenNames(), ", ")))
			return
		}
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An unexpected error occured")
		return
	}
	b.screenHandler(session, message, screen)
}

// screenHandler loads one screen and posts it. The loading line is sent first, the table or error banner follows
func (b *Bot) screenHandler(session DiscordSession, message *discordgo.MessageCreate, screen api.Screen) {
	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("%s Loading %s...", screen.Icon, strings.ToLower(screen.Title)))

	page, err := b.APIPtr.LoadPage(b.context(), screen.Name)
	if err != nil {
		log.Printf("%s screen abandoned: %v", screen.Name, err)
		return
	}
	session.ChannelMessageSend(message.ChannelID, formatPage(page))
}

// formatPage renders a settled page as a discord message
// Preconditions: Receives a page that is no longer loading
// Postconditions: Returns "Error: <message>" for failed pages, else the table as text inside a code block
func formatPage(page api.Page) string {
	if page.Failed() {
		return fmt.Sprintf("Error: %s", page.Error)
	}
	budget := messageLimit - 2*len(codeFence) - 2
	return fmt.Sprintf("%s\n%s%s", codeFence, render.Text(page.Table, budget), codeFence)
}

// newMessageHandler routes messages to appropriate handlers with a DiscordSession interface
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// Prevent bot from responding to its own messages
	if message.Author == nil || message.Author.ID == botUserID {
		return
	}

	command, args, ok := parseCommand(message.Content)
	if !ok {
		return
	}

	switch command {
	case "help":
		b.helpMessageHandler(session, message)

	case "show":
		b.showHandler(session, message, args)

	default:
		if screen, found := b.APIPtr.Screen(command); found {
			b.screenHandler(session, message, screen)
		}
	}
}
