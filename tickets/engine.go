// Package tickets implements the ticket lifecycle: creation of restricted
// per-user channels, the one-open-ticket-per-user rule, monotonic ticket
// numbers, and transcript generation on close.
package tickets

import (
	"fmt"
	"sync"
	"time"

	"fivem-community/audit"
	"fivem-community/monitoring"
	"fivem-community/store"
	"fivem-community/types"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Custom IDs of the buttons attached to a ticket's welcome message. The
// component dispatcher routes on the part before the first ":".
const (
	TicketButtonPrefix = "ticket"
	CloseButtonID      = "close"
	TranscriptButtonID = "transcript"
)

// closeGraceDelay is how long a closed ticket channel stays around before it
// is deleted, so in-flight reads and the closing UI can settle.
const closeGraceDelay = 5 * time.Second

type Engine struct {
	s      Session
	store  *store.Store
	audit  *audit.Sink
	logger *zap.Logger
	botID  string

	deleteDelay time.Duration

	// createMu serializes the whole duplicate-check → channel-create →
	// record-commit sequence. The check suspends on Discord I/O before the
	// commit, so without this two rapid presses could both pass the check
	// and open two tickets for one user. Holding it globally also keeps the
	// peeked channel number and the committed counter in step.
	createMu sync.Mutex
}

func New(s Session, st *store.Store, aud *audit.Sink, logger *zap.Logger, botID string) *Engine {
	return &Engine{
		s:           s,
		store:       st,
		audit:       aud,
		logger:      logger,
		botID:       botID,
		deleteDelay: closeGraceDelay,
	}
}

// Create opens a new ticket of the given kind for user. On success the new
// channel is returned; the record is persisted before this returns. Fails
// with *ConfigurationMissingError when the kind has no destination category,
// and with *DuplicateOpenTicketError when the user already has an open
// ticket of any kind. A Discord refusal consumes no ticket number and
// persists nothing.
func (e *Engine) Create(guildID string, user *discordgo.User, kind types.CategoryKind) (*discordgo.Channel, error) {
	cat, ok := e.store.Category(kind)

	if !ok || cat.CategoryID == "" {
		return nil, &ConfigurationMissingError{Kind: kind}
	}

	e.createMu.Lock()
	defer e.createMu.Unlock()

	var existing string

	e.store.View(func(d *types.Document) {
		if t := d.OpenTicketFor(user.ID); t != nil {
			existing = t.ChannelID
		}
	})

	if existing != "" {
		return nil, &DuplicateOpenTicketError{ChannelID: existing}
	}

	staffRoleID := e.store.StaffRoleID()
	number := e.store.PeekTicketNumber()

	overwrites := []*discordgo.PermissionOverwrite{
		// Deny @everyone from seeing the ticket.
		{
			ID:   guildID,
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		},
		// The requester can read and write.
		{
			ID:    user.ID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionReadMessageHistory | discordgo.PermissionAttachFiles,
		},
		// The bot manages the channel.
		{
			ID:    e.botID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionReadMessageHistory | discordgo.PermissionManageChannels,
		},
	}

	if staffRoleID != "" {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    staffRoleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionReadMessageHistory,
		})
	}

	channel, err := e.s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 "ticket-" + number,
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                fmt.Sprintf("Ticket de %s", user.Username),
		ParentID:             cat.CategoryID,
		PermissionOverwrites: overwrites,
	})

	if err != nil {
		return nil, &PlatformError{Op: "channel creation", Err: err}
	}

	err = e.store.Update(func(d *types.Document) error {
		n := d.AllocateTicketNumber()

		d.Tickets[channel.ID] = &types.Ticket{
			UserID:    user.ID,
			Kind:      kind,
			Number:    n,
			ChannelID: channel.ID,
			Open:      true,
			CreatedAt: time.Now().Unix(),
			Messages:  []string{},
		}

		return nil
	})

	if err != nil {
		// The record never committed; remove the orphan channel so the user
		// can retry cleanly.
		e.deleteChannel(channel.ID)
		return nil, err
	}

	if err := e.sendWelcome(channel.ID, user, &cat, number, staffRoleID); err != nil {
		e.logger.Error("Error sending welcome message", zap.Error(err), zap.String("channelId", channel.ID), zap.String("userId", user.ID))
		e.rollbackCreate(channel.ID)
		return nil, &PlatformError{Op: "welcome message", Err: err}
	}

	monitoring.TicketsCreated.Inc()
	e.audit.LogAction("Ticket Creado", fmt.Sprintf("<@%s> creó el ticket #%s\n**Tipo:** %s", user.ID, number, cat.Name))

	return channel, nil
}

func (e *Engine) sendWelcome(channelID string, user *discordgo.User, cat *types.TicketCategory, number, staffRoleID string) error {
	content := user.Mention()

	if staffRoleID != "" {
		content += " <@&" + staffRoleID + ">"
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s Ticket #%s - %s", cat.Emoji, number, cat.Name),
		Description: fmt.Sprintf("¡Hola %s!\n\n"+
			"Gracias por abrir un ticket. Un miembro del staff te atenderá pronto.\n\n"+
			"**Categoría:** %s\n"+
			"**Descripción:** %s\n"+
			"**Creado:** <t:%d:R>", user.Mention(), cat.Name, cat.Description, time.Now().Unix()),
		Color:     0x3498db,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if logo := e.store.ServerLogo(); logo != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: logo}
	}

	_, err := e.s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Embeds:  []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Cerrar Ticket",
						Style:    discordgo.DangerButton,
						Emoji:    discordgo.ComponentEmoji{Name: "🔒"},
						CustomID: CloseButtonID,
					},
					discordgo.Button{
						Label:    "Transcript",
						Style:    discordgo.SecondaryButton,
						Emoji:    discordgo.ComponentEmoji{Name: "📄"},
						CustomID: TranscriptButtonID,
					},
				},
			},
		},
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{
				discordgo.AllowedMentionTypeUsers,
				discordgo.AllowedMentionTypeRoles,
			},
		},
	})

	return err
}

// rollbackCreate undoes a creation whose later steps failed: the record is
// removed first so the open-ticket invariant frees up, then the channel. The
// counter is returned as well; createMu is still held, so no other creation
// can have observed the allocated number.
func (e *Engine) rollbackCreate(channelID string) {
	err := e.store.Update(func(d *types.Document) error {
		delete(d.Tickets, channelID)
		d.Config.TicketCounter--
		return nil
	})

	if err != nil {
		e.logger.Error("Error removing ticket record during rollback", zap.Error(err), zap.String("channelId", channelID))
	}

	e.deleteChannel(channelID)
}

func (e *Engine) deleteChannel(channelID string) {
	if _, err := e.s.ChannelDelete(channelID); err != nil {
		e.logger.Error("Error deleting ticket channel", zap.Error(err), zap.String("channelId", channelID))
	}
}

// Close generates a transcript, marks the ticket closed and schedules the
// channel for deletion after a grace delay. The transcript is best-effort: a
// failed history read yields a truncated artifact, never a failed close.
func (e *Engine) Close(channelID, actorID string) error {
	var (
		ticket types.Ticket
		found  bool
	)

	e.store.View(func(d *types.Document) {
		if t, ok := d.Tickets[channelID]; ok {
			ticket = *t
			found = true
		}
	})

	if !found {
		return ErrTicketNotFound
	}

	if !ticket.Open {
		return ErrAlreadyClosed
	}

	transcript := e.Collect(channelID)
	transcript.Number = ticket.Number

	err := e.store.Update(func(d *types.Document) error {
		t, ok := d.Tickets[channelID]

		if !ok {
			return ErrTicketNotFound
		}

		if !t.Open {
			return ErrAlreadyClosed
		}

		t.Open = false
		t.ClosedBy = actorID
		t.Messages = append(t.Messages, transcript.Lines...)

		return nil
	})

	if err != nil {
		return err
	}

	e.deliverTranscript(&ticket, transcript, actorID)

	monitoring.TicketsClosed.Inc()
	monitoring.TranscriptsGenerated.Inc()
	e.audit.LogAction("Ticket Cerrado", fmt.Sprintf("<@%s> cerró el ticket #%s de <@%s>", actorID, ticket.Number, ticket.UserID))

	go func() {
		time.Sleep(e.deleteDelay)
		e.deleteChannel(channelID)
	}()

	return nil
}

// Transcript builds a transcript artifact for an existing ticket without
// changing its state.
func (e *Engine) Transcript(channelID string) (*Transcript, error) {
	var (
		number string
		found  bool
	)

	e.store.View(func(d *types.Document) {
		if t, ok := d.Tickets[channelID]; ok {
			number = t.Number
			found = true
		}
	})

	if !found {
		return nil, ErrTicketNotFound
	}

	transcript := e.Collect(channelID)
	transcript.Number = number

	monitoring.TranscriptsGenerated.Inc()

	return transcript, nil
}

// deliverTranscript sends the closed-ticket embed plus the transcript file to
// the transcript channel. Best-effort, like the audit sink.
func (e *Engine) deliverTranscript(ticket *types.Ticket, transcript *Transcript, closedBy string) {
	channelID := e.store.TranscriptChannelID()

	if channelID == "" {
		return
	}

	_, err := e.s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title: "🔒 Ticket Cerrado",
				Color: 0xe74c3c,
				Fields: []*discordgo.MessageEmbedField{
					{
						Name:   "Ticket",
						Value:  "#" + ticket.Number,
						Inline: true,
					},
					{
						Name:   "Usuario",
						Value:  "<@" + ticket.UserID + ">",
						Inline: true,
					},
					{
						Name:   "Cerrado por",
						Value:  "<@" + closedBy + ">",
						Inline: true,
					},
				},
				Timestamp: time.Now().Format(time.RFC3339),
			},
		},
		Files: []*discordgo.File{transcript.File()},
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{},
		},
	})

	if err != nil {
		e.logger.Error("Error sending transcript to transcript channel", zap.Error(err), zap.String("ticket", ticket.Number), zap.String("channelId", channelID))
	}
}
