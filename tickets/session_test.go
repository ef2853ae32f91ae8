package tickets

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// fakeSession implements Session (and the audit sink's Messenger) in memory.
type fakeSession struct {
	mu sync.Mutex

	nextChannel int
	channels    map[string]*discordgo.Channel

	// sent records every message send, per channel.
	sent map[string][]*discordgo.MessageSend

	// history is served by ChannelMessages, newest-first, per channel.
	history map[string][]*discordgo.Message

	deleted []string

	createErr error

	// sendErrTo makes sends to the given channel fail.
	sendErrTo map[string]error

	// historyErrAt makes the history page starting before the given message
	// id fail; "" fails the first page.
	historyErrAt map[string]error
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		channels:     map[string]*discordgo.Channel{},
		sent:         map[string][]*discordgo.MessageSend{},
		history:      map[string][]*discordgo.Message{},
		sendErrTo:    map[string]error{},
		historyErrAt: map[string]error{},
	}
}

func (f *fakeSession) GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}

	f.nextChannel++

	channel := &discordgo.Channel{
		ID:       fmt.Sprintf("chan-%d", f.nextChannel),
		GuildID:  guildID,
		Name:     data.Name,
		Type:     data.Type,
		ParentID: data.ParentID,
	}

	f.channels[channel.ID] = channel

	return channel, nil
}

func (f *fakeSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.sendErrTo[channelID]; ok {
		return nil, err
	}

	f.sent[channelID] = append(f.sent[channelID], data)

	return &discordgo.Message{ID: fmt.Sprintf("msg-%d", len(f.sent[channelID])), ChannelID: channelID}, nil
}

func (f *fakeSession) ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.historyErrAt[beforeID]; ok {
		return nil, err
	}

	msgs := f.history[channelID]

	start := 0

	if beforeID != "" {
		start = len(msgs)

		for idx, msg := range msgs {
			if msg.ID == beforeID {
				start = idx + 1
				break
			}
		}
	}

	end := start + limit

	if end > len(msgs) {
		end = len(msgs)
	}

	return msgs[start:end], nil
}

func (f *fakeSession) ChannelDelete(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	channel, ok := f.channels[channelID]

	if !ok {
		return nil, errors.New("unknown channel")
	}

	delete(f.channels, channelID)
	f.deleted = append(f.deleted, channelID)

	return channel, nil
}

func (f *fakeSession) sentTo(channelID string) []*discordgo.MessageSend {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]*discordgo.MessageSend{}, f.sent[channelID]...)
}

func (f *fakeSession) deletedChannels() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string{}, f.deleted...)
}
