package main

import (
	"context"
	"net/http"
	"os"
	"strings"

	"fivem-community/audit"
	"fivem-community/handlers/command"
	"fivem-community/handlers/msgcomponent"
	"fivem-community/monitoring"
	"fivem-community/store"
	"fivem-community/tickets"
	"fivem-community/types"
	"fivem-community/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/infinitybotlist/eureka/snippets"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	config *types.Config

	discord *discordgo.Session

	st *store.Store

	eng *tickets.Engine

	aud *audit.Sink

	rediscli *redis.Client

	ctx = context.Background()

	logger *zap.Logger
)

func main() {
	logger = snippets.CreateZap()

	// Secrets come from the environment; .env is optional.
	_ = godotenv.Load()

	token := os.Getenv("DISCORD_TOKEN")

	if token == "" {
		logger.Fatal("DISCORD_TOKEN is not set")
	}

	f, err := os.Open("config.yaml")

	if err != nil {
		panic(err)
	}

	err = yaml.NewDecoder(f).Decode(&config)

	if err != nil {
		panic(err)
	}

	f.Close()

	config.SetDefaults()

	st, err = store.Open(config.DataFile, logger)

	if err != nil {
		panic(err)
	}

	if config.Redis != "" {
		rOptions, err := redis.ParseURL(config.Redis)

		if err != nil {
			panic(err)
		}

		rediscli = redis.NewClient(rOptions)
	}

	discord, err = discordgo.New("Bot " + token)

	if err != nil {
		panic(err)
	}

	if config.ProxyHost != "" {
		discord.Client.Transport = NewHostRewriter(config.ProxyHost, http.DefaultTransport, logger)
	}

	discord.Identify.Intents = discordgo.IntentsAllWithoutPrivileged | discordgo.IntentsMessageContent | discordgo.IntentsGuildMembers

	me, err := discord.User("@me")

	if err != nil {
		panic(err)
	}

	aud = audit.New(discord, st, logger)
	eng = tickets.New(discord, st, aud, logger, me.ID)

	discord.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		logger.Info("Bot is ready", zap.String("username", r.User.Username), zap.String("userId", r.User.ID))

		_, err := s.ApplicationCommandBulkOverwrite(r.User.ID, "", command.Commands)

		if err != nil {
			logger.Error("Error registering application commands", zap.Error(err))
			return
		}

		logger.Info("Application commands registered", zap.Int("count", len(command.Commands)))
	})

	discord.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			data := i.ApplicationCommandData()

			fn, ok := command.Handlers[data.Name]

			if !ok {
				logger.Error("Invalid command handler", zap.String("name", data.Name))
				return
			}

			err := fn(s, i.Interaction, data, st, eng, aud, logger)

			if err != nil {
				monitoring.HandlerErrors.WithLabelValues(data.Name).Inc()
				logger.Error("Error handling command", zap.Error(err), zap.String("name", data.Name))
				s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
					Content: utils.Stringp("❌ Ha ocurrido un error. Inténtalo de nuevo más tarde."),
				})
				return
			}
		case discordgo.InteractionMessageComponent:
			data := i.MessageComponentData()

			name := strings.Split(data.CustomID, ":")[0]

			fn, ok := msgcomponent.Handlers[name]

			if !ok {
				logger.Error("Invalid component handler", zap.String("customId", data.CustomID))
				return
			}

			err := fn(s, i.Interaction, data, st, eng, ctx, logger, rediscli)

			if err != nil {
				monitoring.HandlerErrors.WithLabelValues(name).Inc()
				logger.Error("Error handling component", zap.Error(err), zap.String("customId", data.CustomID))
				s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
					Content: utils.Stringp("❌ Ha ocurrido un error. Inténtalo de nuevo más tarde."),
				})
				return
			}
		}
	})

	err = discord.Open()

	if err != nil {
		panic(err)
	}

	go serveMonitoring(config.MonitoringAddr, discord, st, logger)

	select {}
}
