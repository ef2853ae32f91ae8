package audit

import (
	"errors"
	"path/filepath"
	"testing"

	"fivem-community/store"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMessenger struct {
	sent []string
	err  error
}

func (f *fakeMessenger) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.sent = append(f.sent, channelID)

	return &discordgo.Message{ChannelID: channelID}, nil
}

func newTestSink(t *testing.T) (*Sink, *fakeMessenger, *store.Store) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "data.json"), zap.NewNop())
	require.NoError(t, err)

	fake := &fakeMessenger{}

	return New(fake, st, zap.NewNop()), fake, st
}

func TestLogActionWithoutLogsChannel(t *testing.T) {
	sink, fake, _ := newTestSink(t)

	// No logs channel configured yet, the line goes nowhere.
	sink.LogAction("Ticket Creado", "mensaje")
	require.Empty(t, fake.sent)
}

func TestLogActionSendsToLogsChannel(t *testing.T) {
	sink, fake, st := newTestSink(t)

	require.NoError(t, st.SetCoreChannels("chan-logs", "chan-updates", "chan-transcripts"))

	sink.LogAction("Ticket Creado", "mensaje")
	require.Equal(t, []string{"chan-logs"}, fake.sent)
}

func TestLogActionSwallowsSendFailure(t *testing.T) {
	sink, fake, st := newTestSink(t)

	require.NoError(t, st.SetCoreChannels("chan-logs", "chan-updates", "chan-transcripts"))

	fake.err = errors.New("missing access")

	// Delivery failure is logged, never surfaced.
	sink.LogAction("Ticket Cerrado", "mensaje")
	require.Empty(t, fake.sent)
}
