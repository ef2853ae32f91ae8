package store

import (
	"fivem-community/types"
)

// Typed accessors over the configuration section of the document. Mutators
// persist immediately; a returned error means the change was not committed.

func (s *Store) StaffRoleID() string {
	var id string

	s.View(func(d *types.Document) { id = d.Config.StaffRoleID })

	return id
}

func (s *Store) SetStaffRole(id string) error {
	return s.Update(func(d *types.Document) error {
		d.Config.StaffRoleID = id
		return nil
	})
}

func (s *Store) LogsChannelID() string {
	var id string

	s.View(func(d *types.Document) { id = d.Config.LogsChannelID })

	return id
}

func (s *Store) UpdatesChannelID() string {
	var id string

	s.View(func(d *types.Document) { id = d.Config.UpdatesChannelID })

	return id
}

func (s *Store) TranscriptChannelID() string {
	var id string

	s.View(func(d *types.Document) { id = d.Config.TranscriptChannelID })

	return id
}

func (s *Store) PanelChannelID() string {
	var id string

	s.View(func(d *types.Document) { id = d.Config.TicketPanelChannelID })

	return id
}

func (s *Store) SetPanelChannel(id string) error {
	return s.Update(func(d *types.Document) error {
		d.Config.TicketPanelChannelID = id
		return nil
	})
}

// SetCoreChannels records the three channels created by the setup command in
// a single commit.
func (s *Store) SetCoreChannels(logsID, updatesID, transcriptID string) error {
	return s.Update(func(d *types.Document) error {
		d.Config.LogsChannelID = logsID
		d.Config.UpdatesChannelID = updatesID
		d.Config.TranscriptChannelID = transcriptID
		return nil
	})
}

// Image slots settable through the setimages command.
const (
	ImageLogo    = "logo"
	ImageOnline  = "online"
	ImageOffline = "offline"
)

func (s *Store) SetImage(slot, url string) error {
	return s.Update(func(d *types.Document) error {
		switch slot {
		case ImageLogo:
			d.Config.ServerLogo = url
		case ImageOnline:
			d.Config.ServerOnlineImage = url
		case ImageOffline:
			d.Config.ServerOfflineImage = url
		default:
			return &UnknownImageSlotError{Slot: slot}
		}

		return nil
	})
}

func (s *Store) ServerLogo() string {
	var url string

	s.View(func(d *types.Document) { url = d.Config.ServerLogo })

	return url
}

func (s *Store) ServerStatus() types.ServerStatus {
	var status types.ServerStatus

	s.View(func(d *types.Document) { status = d.ServerStatus })

	return status
}

func (s *Store) SetServerStatus(status types.ServerStatus) error {
	return s.Update(func(d *types.Document) error {
		d.ServerStatus = status
		return nil
	})
}

// Category returns a copy of the category entry for kind.
func (s *Store) Category(kind types.CategoryKind) (types.TicketCategory, bool) {
	var (
		cat types.TicketCategory
		ok  bool
	)

	s.View(func(d *types.Document) {
		var c *types.TicketCategory

		c, ok = d.Config.TicketCategories[kind]

		if ok {
			cat = *c
		}
	})

	return cat, ok
}

func (s *Store) SetCategoryDestination(kind types.CategoryKind, categoryID string) error {
	return s.Update(func(d *types.Document) error {
		cat, ok := d.Config.TicketCategories[kind]

		if !ok {
			return &UnknownCategoryError{Kind: kind}
		}

		cat.CategoryID = categoryID

		return nil
	})
}

// AllocateTicketNumber increments the shared counter and persists it,
// returning the zero-padded value. It never returns the same value twice.
func (s *Store) AllocateTicketNumber() (string, error) {
	var number string

	err := s.Update(func(d *types.Document) error {
		number = d.AllocateTicketNumber()
		return nil
	})

	if err != nil {
		return "", err
	}

	return number, nil
}

// PeekTicketNumber returns the number the next allocation will produce,
// without consuming it. The ticket engine uses this to name the channel
// before the counter commits; it holds its own creation lock so the peeked
// and committed values cannot diverge.
func (s *Store) PeekTicketNumber() string {
	var number string

	s.View(func(d *types.Document) {
		number = types.FormatTicketNumber(d.Config.TicketCounter + 1)
	})

	return number
}
