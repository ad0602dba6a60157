/* main.go
 * The "main" method for running the dashboard. The same screens are served as a web dashboard, posted by a discord
 * bot, or printed once to stdout
 * Usage: go run . -mode="<web|bot|print>" -screen="<screen>" -logPayloads="<true|false>"
 */

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	api "octofit-tracker/api/api"
	"octofit-tracker/api/external"
	"octofit-tracker/api/render"
	"octofit-tracker/bot"
	"octofit-tracker/config"
	"octofit-tracker/web"
)

func main() {
	//Flags
	modePtr := flag.String("mode", "web", "How to serve the dashboard: web, bot or print")
	screenPtr := flag.String("screen", "leaderboard", "Screen to print in print mode, e.g. users, activities, teams, leaderboard, workouts")
	logPayloadsPtr := flag.String("logPayloads", "", "Log every fetched payload: takes true or false as argument, defaults to LOG_PAYLOADS")
	envPtr := flag.String("env", ".env", "Path to the .env file")

	flag.Parse()

	cfg, err := config.Load(*envPtr)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.LogPayloads, err = resolveLogPayloads(*logPayloadsPtr, cfg.LogPayloads)
	if err != nil {
		log.Fatalf("Invalid \"logPayloads\" flag. Should be true or false: %v", err)
	}

	client := external.NewClient(cfg.ClientConfig())
	log.Println("using API at", client.BaseURL)

	apiPtr, err := api.NewAPI(client, render.NewFormatter(render.ParseLocale(cfg.Locale)))
	if err != nil {
		log.Fatalf("failed to initialize API: %v", err)
	}

	switch *modePtr {
	case "web":
		if err := web.Start(web.Config{Addr: cfg.HTTPAddr, API: apiPtr}); err != nil {
			log.Fatalf("web server stopped: %v", err)
		}

	case "bot":
		b, err := bot.NewBot(cfg.DiscordToken, apiPtr)
		if err != nil {
			log.Fatalf("failed to initialize bot: %v", err)
		}
		if err := b.Run(); err != nil {
			log.Fatalf("bot stopped: %v", err)
		}

	case "print":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := printScreen(ctx, os.Stdout, apiPtr, *screenPtr); err != nil {
			stop()
			log.Fatal(err)
		}

	default:
		log.Fatalf("Invalid \"mode\" flag %q. Should be web, bot or print", *modePtr)
	}
}
