package msgcomponent

import (
	"context"
	"errors"

	"fivem-community/store"
	"fivem-community/tickets"
	"fivem-community/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// closeTicket handles the close button inside a ticket channel. Anyone who
// can see the channel may close it.
func closeTicket(s *discordgo.Session, i *discordgo.Interaction, data discordgo.MessageComponentInteractionData, st *store.Store, eng *tickets.Engine, ctx context.Context, logger *zap.Logger, rediscli *redis.Client) error {
	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "Cerrando el ticket... Por favor espera...",
			AllowedMentions: &discordgo.MessageAllowedMentions{
				Parse: []discordgo.AllowedMentionType{},
			},
		},
	})

	if err != nil {
		return err
	}

	err = eng.Close(i.ChannelID, i.Member.User.ID)

	var content string

	switch {
	case err == nil:
		content = "✅ Ticket cerrado. Este canal se eliminará en unos segundos."
	case errors.Is(err, tickets.ErrAlreadyClosed):
		content = "❌ Este ticket ya está cerrado."
	case errors.Is(err, tickets.ErrTicketNotFound):
		content = "❌ Este canal no es un ticket."
	default:
		logger.Error("Error closing ticket", zap.Error(err), zap.String("channelId", i.ChannelID), zap.String("userId", i.Member.User.ID))
		content = "❌ Error al cerrar el ticket. Inténtalo de nuevo más tarde."
	}

	_, err = s.InteractionResponseEdit(i, &discordgo.WebhookEdit{
		Content: utils.Stringp(content),
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{},
		},
	})

	return err
}
