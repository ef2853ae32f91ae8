// Package audit appends human-readable action lines to the configured logs
// channel. Delivery is best-effort: a missing channel or a failed send is
// logged and otherwise ignored, it never fails the operation that emitted
// the line.
package audit

import (
	"time"

	"fivem-community/store"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Messenger is the slice of the Discord session the sink needs.
type Messenger interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type Sink struct {
	s      Messenger
	store  *store.Store
	logger *zap.Logger
}

func New(s Messenger, st *store.Store, logger *zap.Logger) *Sink {
	return &Sink{
		s:      s,
		store:  st,
		logger: logger,
	}
}

// LogAction sends one audit line to the logs channel.
func (k *Sink) LogAction(category, message string) {
	channelID := k.store.LogsChannelID()

	if channelID == "" {
		return
	}

	_, err := k.s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       "📋 " + category,
				Description: message,
				Color:       0x3498db,
				Timestamp:   time.Now().Format(time.RFC3339),
			},
		},
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{},
		},
	})

	if err != nil {
		k.logger.Warn("Error sending audit line", zap.Error(err), zap.String("category", category), zap.String("channelId", channelID))
	}
}
