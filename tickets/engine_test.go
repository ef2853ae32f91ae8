package tickets

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"fivem-community/audit"
	"fivem-community/store"
	"fivem-community/types"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T) (*Engine, *fakeSession, *store.Store) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "data.json"), zap.NewNop())
	require.NoError(t, err, "Failed to open store")

	for idx, kind := range types.CategoryKinds {
		require.NoError(t, st.SetCategoryDestination(kind, "cat-"+string(rune('a'+idx))))
	}

	fake := newFakeSession()

	eng := New(fake, st, audit.New(fake, st, zap.NewNop()), zap.NewNop(), "bot-1")
	eng.deleteDelay = 10 * time.Millisecond

	return eng, fake, st
}

func user(id, name string) *discordgo.User {
	return &discordgo.User{ID: id, Username: name}
}

func ticketFor(t *testing.T, st *store.Store, channelID string) types.Ticket {
	t.Helper()

	var (
		ticket types.Ticket
		found  bool
	)

	st.View(func(d *types.Document) {
		if rec, ok := d.Tickets[channelID]; ok {
			ticket = *rec
			found = true
		}
	})

	require.True(t, found, "Expected a ticket record for %s", channelID)

	return ticket
}

func TestCreateTicket(t *testing.T) {
	eng, fake, st := newTestEngine(t)

	channel, err := eng.Create("guild-1", user("user-a", "alice"), types.CategorySupport)
	require.NoError(t, err)
	require.Equal(t, "ticket-0001", channel.Name)
	require.Equal(t, "cat-a", channel.ParentID)

	ticket := ticketFor(t, st, channel.ID)
	require.Equal(t, "user-a", ticket.UserID)
	require.Equal(t, types.CategorySupport, ticket.Kind)
	require.Equal(t, "0001", ticket.Number)
	require.True(t, ticket.Open)

	welcome := fake.sentTo(channel.ID)
	require.Len(t, welcome, 1)
	require.Len(t, welcome[0].Embeds, 1)

	row, ok := welcome[0].Components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Equal(t, CloseButtonID, row.Components[0].(discordgo.Button).CustomID)
	require.Equal(t, TranscriptButtonID, row.Components[1].(discordgo.Button).CustomID)

	require.Equal(t, "0002", st.PeekTicketNumber())
}

func TestCreateConfigurationMissing(t *testing.T) {
	eng, fake, st := newTestEngine(t)

	require.NoError(t, st.SetCategoryDestination(types.CategoryReport, ""))

	_, err := eng.Create("guild-1", user("user-a", "alice"), types.CategoryReport)

	missing := new(ConfigurationMissingError)
	require.ErrorAs(t, err, &missing)
	require.Equal(t, types.CategoryReport, missing.Kind)

	// Nothing happened: no channel, no record, and the counter is untouched.
	require.Empty(t, fake.channels)
	require.Equal(t, "0001", st.PeekTicketNumber())
}

func TestCreateDuplicate(t *testing.T) {
	eng, _, st := newTestEngine(t)

	channel, err := eng.Create("guild-1", user("user-a", "alice"), types.CategorySupport)
	require.NoError(t, err)

	_, err = eng.Create("guild-1", user("user-a", "alice"), types.CategorySupport)

	dup := new(DuplicateOpenTicketError)
	require.ErrorAs(t, err, &dup)
	require.Equal(t, channel.ID, dup.ChannelID)

	// The rule spans kinds: an open support ticket blocks a report ticket.
	_, err = eng.Create("guild-1", user("user-a", "alice"), types.CategoryReport)
	require.ErrorAs(t, err, &dup)
	require.Equal(t, channel.ID, dup.ChannelID)

	// Another user is unaffected.
	_, err = eng.Create("guild-1", user("user-b", "bob"), types.CategorySupport)
	require.NoError(t, err)

	require.Equal(t, "0003", st.PeekTicketNumber())
}

func TestCreateConcurrentSameUser(t *testing.T) {
	eng, _, st := newTestEngine(t)

	const presses = 8

	var (
		wg sync.WaitGroup

		mu   sync.Mutex
		errs []error
	)

	for n := 0; n < presses; n++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := eng.Create("guild-1", user("user-a", "alice"), types.CategorySupport)

			mu.Lock()
			defer mu.Unlock()

			errs = append(errs, err)
		}()
	}

	wg.Wait()

	// Exactly one press wins, the rest fail the duplicate check.
	var successes, duplicates int

	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}

		dup := new(DuplicateOpenTicketError)
		require.ErrorAs(t, err, &dup)
		duplicates++
	}

	require.Equal(t, 1, successes)
	require.Equal(t, presses-1, duplicates)

	st.View(func(d *types.Document) {
		require.Equal(t, 1, d.OpenTicketCount())
	})

	require.Equal(t, "0002", st.PeekTicketNumber())
}

func TestCreatePlatformRejected(t *testing.T) {
	eng, fake, st := newTestEngine(t)

	fake.createErr = errors.New("missing permissions")

	_, err := eng.Create("guild-1", user("user-a", "alice"), types.CategorySupport)

	platform := new(PlatformError)
	require.ErrorAs(t, err, &platform)
	require.ErrorIs(t, err, fake.createErr)

	// The refusal consumed no number and persisted nothing.
	require.Equal(t, "0001", st.PeekTicketNumber())

	st.View(func(d *types.Document) {
		require.Empty(t, d.Tickets)
	})

	// The user can retry once the refusal clears.
	fake.createErr = nil

	channel, err := eng.Create("guild-1", user("user-a", "alice"), types.CategorySupport)
	require.NoError(t, err)
	require.Equal(t, "ticket-0001", channel.Name)
}

func TestCreateWelcomeFailureRollsBack(t *testing.T) {
	eng, fake, st := newTestEngine(t)

	// Channel ids are assigned sequentially by the fake, so the welcome send
	// of the first creation targets chan-1.
	fake.sendErrTo["chan-1"] = errors.New("cannot send messages")

	_, err := eng.Create("guild-1", user("user-a", "alice"), types.CategorySupport)

	platform := new(PlatformError)
	require.ErrorAs(t, err, &platform)

	// Record gone, orphan channel deleted, number returned.
	st.View(func(d *types.Document) {
		require.Empty(t, d.Tickets)
	})
	require.Equal(t, []string{"chan-1"}, fake.deletedChannels())
	require.Equal(t, "0001", st.PeekTicketNumber())

	delete(fake.sendErrTo, "chan-1")

	channel, err := eng.Create("guild-1", user("user-a", "alice"), types.CategorySupport)
	require.NoError(t, err)
	require.Equal(t, "ticket-0001", channel.Name)
}

func TestTicketNumbersAreGapFree(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	first, err := eng.Create("guild-1", user("user-a", "alice"), types.CategorySupport)
	require.NoError(t, err)
	require.Equal(t, "ticket-0001", first.Name)

	require.NoError(t, eng.Close(first.ID, "staff-1"))

	// Closing frees the user but never recycles the number.
	second, err := eng.Create("guild-1", user("user-a", "alice"), types.CategoryDonations)
	require.NoError(t, err)
	require.Equal(t, "ticket-0002", second.Name)

	third, err := eng.Create("guild-1", user("user-b", "bob"), types.CategoryReport)
	require.NoError(t, err)
	require.Equal(t, "ticket-0003", third.Name)
}

func TestCloseLifecycle(t *testing.T) {
	eng, fake, st := newTestEngine(t)

	require.NoError(t, st.SetCoreChannels("chan-logs", "chan-updates", "chan-transcripts"))

	channel, err := eng.Create("guild-1", user("user-a", "alice"), types.CategorySupport)
	require.NoError(t, err)

	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	// History is served newest-first, like the real API.
	fake.history[channel.ID] = []*discordgo.Message{
		{ID: "m3", Content: "gracias", Author: user("user-a", "alice"), Timestamp: stamp.Add(2 * time.Minute)},
		{ID: "m2", Content: "ya está resuelto", Author: user("staff-1", "staff"), Timestamp: stamp.Add(time.Minute)},
		{ID: "m1", Content: "no puedo conectarme", Author: user("user-a", "alice"), Timestamp: stamp},
	}

	require.NoError(t, eng.Close(channel.ID, "staff-1"))

	ticket := ticketFor(t, st, channel.ID)
	require.False(t, ticket.Open)
	require.Equal(t, "staff-1", ticket.ClosedBy)
	require.Equal(t, []string{
		"[2024-05-01 12:00:00] alice: no puedo conectarme",
		"[2024-05-01 12:01:00] staff: ya está resuelto",
		"[2024-05-01 12:02:00] alice: gracias",
	}, ticket.Messages)

	// The transcript landed in the transcript channel as a file.
	delivered := fake.sentTo("chan-transcripts")
	require.Len(t, delivered, 1)
	require.Len(t, delivered[0].Files, 1)
	require.Equal(t, "ticket-0001.txt", delivered[0].Files[0].Name)

	// Closing again is rejected, not repeated.
	require.ErrorIs(t, eng.Close(channel.ID, "staff-1"), ErrAlreadyClosed)

	require.ErrorIs(t, eng.Close("chan-nope", "staff-1"), ErrTicketNotFound)

	// The channel goes away after the grace delay.
	require.Eventually(t, func() bool {
		for _, id := range fake.deletedChannels() {
			if id == channel.ID {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
}

func TestCloseWithUnreadableHistory(t *testing.T) {
	eng, fake, st := newTestEngine(t)

	channel, err := eng.Create("guild-1", user("user-a", "alice"), types.CategorySupport)
	require.NoError(t, err)

	fake.historyErrAt[""] = errors.New("missing access")

	// A failed history read truncates the transcript, it never blocks the
	// close itself.
	require.NoError(t, eng.Close(channel.ID, "staff-1"))

	ticket := ticketFor(t, st, channel.ID)
	require.False(t, ticket.Open)
	require.Empty(t, ticket.Messages)
}

func TestTranscriptLeavesStateAlone(t *testing.T) {
	eng, fake, st := newTestEngine(t)

	channel, err := eng.Create("guild-1", user("user-a", "alice"), types.CategorySupport)
	require.NoError(t, err)

	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	fake.history[channel.ID] = []*discordgo.Message{
		{ID: "m1", Content: "hola", Author: user("user-a", "alice"), Timestamp: stamp},
	}

	transcript, err := eng.Transcript(channel.ID)
	require.NoError(t, err)
	require.Equal(t, "0001", transcript.Number)
	require.Equal(t, []string{"[2024-05-01 12:00:00] alice: hola"}, transcript.Lines)

	ticket := ticketFor(t, st, channel.ID)
	require.True(t, ticket.Open, "generating a transcript must not close the ticket")
	require.Empty(t, ticket.Messages)

	_, err = eng.Transcript("chan-nope")
	require.ErrorIs(t, err, ErrTicketNotFound)
}
