package store

import (
	"fivem-community/types"
)

// AddBan records (or overwrites) a ban for userID.
func (s *Store) AddBan(userID string, rec *types.BanRecord) error {
	return s.Update(func(d *types.Document) error {
		d.BannedUsers[userID] = rec
		return nil
	})
}

// RemoveBan deletes the ban record for userID and returns it. Returns
// ErrBanNotFound when no record exists; nothing is persisted in that case.
func (s *Store) RemoveBan(userID string) (*types.BanRecord, error) {
	var rec *types.BanRecord

	err := s.Update(func(d *types.Document) error {
		var ok bool

		rec, ok = d.BannedUsers[userID]

		if !ok {
			return ErrBanNotFound
		}

		delete(d.BannedUsers, userID)

		return nil
	})

	if err != nil {
		return nil, err
	}

	return rec, nil
}

// Bans returns a snapshot of all ban records.
func (s *Store) Bans() map[string]types.BanRecord {
	bans := map[string]types.BanRecord{}

	s.View(func(d *types.Document) {
		for id, rec := range d.BannedUsers {
			bans[id] = *rec
		}
	})

	return bans
}

func (s *Store) BanCount() int {
	var n int

	s.View(func(d *types.Document) { n = len(d.BannedUsers) })

	return n
}
