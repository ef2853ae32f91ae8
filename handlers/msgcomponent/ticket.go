package msgcomponent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fivem-community/store"
	"fivem-community/tickets"
	"fivem-community/types"
	"fivem-community/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// creationCooldown is how long a user must wait between ticket panel presses.
const creationCooldown = 10 * time.Second

// openTicket handles the four panel buttons ("ticket:<kind>").
func openTicket(s *discordgo.Session, i *discordgo.Interaction, data discordgo.MessageComponentInteractionData, st *store.Store, eng *tickets.Engine, ctx context.Context, logger *zap.Logger, rediscli *redis.Client) error {
	parts := strings.Split(data.CustomID, ":")

	if len(parts) != 2 {
		return fmt.Errorf("malformed ticket button id: %s", data.CustomID)
	}

	kind := types.CategoryKind(parts[1])

	if !kind.Valid() {
		return fmt.Errorf("unknown ticket kind: %s", parts[1])
	}

	user := i.Member.User

	if rediscli != nil {
		cooldownKey := "ticket_cooldown:" + user.ID

		cooldown := rediscli.TTL(ctx, cooldownKey).Val()

		if cooldown == -2 || cooldown == -1 {
			if err := rediscli.Set(ctx, cooldownKey, "0", creationCooldown).Err(); err != nil {
				logger.Error("Error setting cooldown", zap.Error(err), zap.String("userId", user.ID))
				return fmt.Errorf("error setting cooldown: %w", err)
			}
		} else {
			logger.Info("User is on cooldown", zap.String("userId", user.ID), zap.Duration("cooldown", cooldown))

			return s.InteractionRespond(i, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: "Espera ``" + cooldown.String() + "`` antes de crear otro ticket.",
					Flags:   discordgo.MessageFlagsEphemeral,
					AllowedMentions: &discordgo.MessageAllowedMentions{
						Parse: []discordgo.AllowedMentionType{},
					},
				},
			})
		}
	}

	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "Creando tu ticket...\n\nPor favor espera...",
			Flags:   discordgo.MessageFlagsEphemeral,
			AllowedMentions: &discordgo.MessageAllowedMentions{
				Parse: []discordgo.AllowedMentionType{},
			},
		},
	})

	if err != nil {
		return fmt.Errorf("error sending create response: %w", err)
	}

	channel, err := eng.Create(i.GuildID, user, kind)

	if err != nil {
		dup := new(tickets.DuplicateOpenTicketError)
		missing := new(tickets.ConfigurationMissingError)

		var content string

		switch {
		case errors.As(err, &dup):
			content = "❌ Ya tienes un ticket abierto: <#" + dup.ChannelID + ">"
		case errors.As(err, &missing):
			content = "❌ Esta categoría no está configurada todavía. Contacta con un administrador."
		default:
			logger.Error("Error creating ticket", zap.Error(err), zap.String("userId", user.ID), zap.String("kind", string(kind)))
			content = "❌ Error al crear el ticket. Inténtalo de nuevo más tarde."
		}

		_, err = s.InteractionResponseEdit(i, &discordgo.WebhookEdit{
			Content: utils.Stringp(content),
			AllowedMentions: &discordgo.MessageAllowedMentions{
				Parse: []discordgo.AllowedMentionType{},
			},
		})

		return err
	}

	_, err = s.InteractionResponseEdit(i, &discordgo.WebhookEdit{
		Content: utils.Stringp("✅ Ticket creado: <#" + channel.ID + ">"),
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{},
		},
	})

	return err
}
