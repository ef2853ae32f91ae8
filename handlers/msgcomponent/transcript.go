package msgcomponent

import (
	"context"
	"errors"

	"fivem-community/store"
	"fivem-community/tickets"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// transcript handles the transcript button: it produces the artifact without
// closing the ticket, sends a copy to the transcript channel when one is
// configured and returns it to the requester either way.
func transcript(s *discordgo.Session, i *discordgo.Interaction, data discordgo.MessageComponentInteractionData, st *store.Store, eng *tickets.Engine, ctx context.Context, logger *zap.Logger, rediscli *redis.Client) error {
	tr, err := eng.Transcript(i.ChannelID)

	if errors.Is(err, tickets.ErrTicketNotFound) {
		return s.InteractionRespond(i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "❌ Este canal no es un ticket.",
				Flags:   discordgo.MessageFlagsEphemeral,
				AllowedMentions: &discordgo.MessageAllowedMentions{
					Parse: []discordgo.AllowedMentionType{},
				},
			},
		})
	}

	if err != nil {
		return err
	}

	if channelID := st.TranscriptChannelID(); channelID != "" {
		_, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
			Content: "📄 Transcript del ticket #" + tr.Number,
			Files:   []*discordgo.File{tr.File()},
			AllowedMentions: &discordgo.MessageAllowedMentions{
				Parse: []discordgo.AllowedMentionType{},
			},
		})

		if err != nil {
			logger.Error("Error sending transcript to transcript channel", zap.Error(err), zap.String("ticket", tr.Number), zap.String("channelId", channelID))
		}
	}

	return s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "📄 Transcript del ticket #" + tr.Number,
			Flags:   discordgo.MessageFlagsEphemeral,
			Files:   []*discordgo.File{tr.File()},
			AllowedMentions: &discordgo.MessageAllowedMentions{
				Parse: []discordgo.AllowedMentionType{},
			},
		},
	})
}
