package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fivem-community/types"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "data.json"), zap.NewNop())
	require.NoError(t, err, "Failed to open store")

	return s
}

func TestOpenCreatesDefaultDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	s, err := Open(path, zap.NewNop())
	require.NoError(t, err)

	// The default document is persisted immediately.
	_, err = os.Stat(path)
	require.NoError(t, err)

	s.View(func(d *types.Document) {
		require.Empty(t, d.Tickets)
		require.Empty(t, d.BannedUsers)
		require.Equal(t, types.ServerOffline, d.ServerStatus)
		require.Len(t, d.Config.TicketCategories, 4)
		require.Equal(t, "🛠️ Soporte Técnico", d.Config.TicketCategories[types.CategorySupport].Name)
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	s, err := Open(path, zap.NewNop())
	require.NoError(t, err)

	err = s.Update(func(d *types.Document) error {
		d.ServerStatus = types.ServerOnline
		d.Config.StaffRoleID = "role-1"
		d.Config.TicketCounter = 7
		d.Tickets["chan-1"] = &types.Ticket{
			UserID:    "user-a",
			Kind:      types.CategorySupport,
			Number:    "0007",
			ChannelID: "chan-1",
			Open:      true,
			CreatedAt: time.Now().Unix(),
			Messages:  []string{"hola — ¿está el servidor caído? 🎮"},
		}
		d.BannedUsers["user-b"] = &types.BanRecord{
			Username: "niño",
			Reason:   "razón con acentos: instalación de módulos",
			Duration: "7 días",
			BannedBy: "admin",
			BannedAt: 1700000000,
		}
		return nil
	})
	require.NoError(t, err)

	var want types.Document

	s.View(func(d *types.Document) { want = *d })

	// A fresh store over the same file must see the identical document,
	// including all the non-ASCII content.
	reloaded, err := Open(path, zap.NewNop())
	require.NoError(t, err)

	reloaded.View(func(d *types.Document) {
		require.Equal(t, want.ServerStatus, d.ServerStatus)
		require.Equal(t, want.Config, d.Config)
		require.Equal(t, want.Tickets, d.Tickets)
		require.Equal(t, want.BannedUsers, d.BannedUsers)
	})
}

func TestUpdateRollsBackOnError(t *testing.T) {
	s := newTestStore(t)

	boom := errors.New("boom")

	err := s.Update(func(d *types.Document) error {
		d.Config.StaffRoleID = "role-1"
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.Empty(t, s.StaffRoleID(), "failed update must not leave dirty state")
}

func TestUpdateRollsBackOnWriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	s, err := Open(path, zap.NewNop())
	require.NoError(t, err)

	// A directory squatting on the temp path makes the rewrite fail even
	// when running as root.
	require.NoError(t, os.Mkdir(path+".tmp", 0755))

	err = s.Update(func(d *types.Document) error {
		d.Config.StaffRoleID = "role-1"
		return nil
	})
	require.Error(t, err, "write failure must propagate")

	require.Empty(t, s.StaffRoleID(), "uncommitted change must not survive in memory")
}

func TestNormalizeFillsMissingSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	require.NoError(t, os.WriteFile(path, []byte(`{"server_status":"online"}`), 0644))

	s, err := Open(path, zap.NewNop())
	require.NoError(t, err)

	s.View(func(d *types.Document) {
		require.NotNil(t, d.Tickets)
		require.NotNil(t, d.BannedUsers)
		require.Equal(t, types.ServerOnline, d.ServerStatus)
		require.Len(t, d.Config.TicketCategories, 4)
	})
}
