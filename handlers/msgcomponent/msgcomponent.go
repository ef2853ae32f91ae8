// Package msgcomponent holds the button handlers. Custom IDs carry an action
// prefix and optional arguments separated by ":", e.g. "ticket:support"; the
// dispatcher in main routes on the prefix.
package msgcomponent

import (
	"context"

	"fivem-community/store"
	"fivem-community/tickets"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler func(s *discordgo.Session, i *discordgo.Interaction, data discordgo.MessageComponentInteractionData, st *store.Store, eng *tickets.Engine, ctx context.Context, logger *zap.Logger, rediscli *redis.Client) error

var Handlers = map[string]Handler{}

func AddHandler(name string, handler Handler) {
	Handlers[name] = handler
}

func init() {
	AddHandler(tickets.TicketButtonPrefix, openTicket)
	AddHandler(tickets.CloseButtonID, closeTicket)
	AddHandler(tickets.TranscriptButtonID, transcript)
}
