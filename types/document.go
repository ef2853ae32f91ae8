package types

import "fmt"

// CategoryKind classifies what a ticket is about. Each kind maps to one
// Discord category channel under which its ticket channels are created.
type CategoryKind string

const (
	CategorySupport   CategoryKind = "support"
	CategoryDonations CategoryKind = "donations"
	CategoryDeals     CategoryKind = "deals"
	CategoryReport    CategoryKind = "report"
)

// CategoryKinds is the fixed display order used by the ticket panel.
var CategoryKinds = []CategoryKind{
	CategorySupport,
	CategoryDonations,
	CategoryDeals,
	CategoryReport,
}

func (k CategoryKind) Valid() bool {
	for _, kind := range CategoryKinds {
		if k == kind {
			return true
		}
	}

	return false
}

type ServerStatus string

const (
	ServerOnline  ServerStatus = "online"
	ServerOffline ServerStatus = "offline"
)

type Ticket struct {
	UserID    string       `json:"user_id"`
	Kind      CategoryKind `json:"type"`
	Number    string       `json:"number"`
	ChannelID string       `json:"channel_id"`
	Open      bool         `json:"open"`
	CreatedAt int64        `json:"created_at"`
	ClosedBy  string       `json:"closed_by,omitempty"`

	// Messages holds the transcript lines collected when the ticket was
	// closed. Transcripts are always rebuilt from live channel history, this
	// is audit data only.
	Messages []string `json:"messages"`
}

type BanRecord struct {
	Username string `json:"username"`
	Reason   string `json:"reason"`
	Duration string `json:"duration"`
	BannedBy string `json:"banned_by"`
	BannedAt int64  `json:"banned_at"`
}

type TicketCategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`

	// CategoryID is the Discord category channel tickets of this kind are
	// created under. Empty until an admin runs setupcategory.
	CategoryID string `json:"category_id"`
}

type Configuration struct {
	StaffRoleID          string                           `json:"staff_role_id"`
	LogsChannelID        string                           `json:"logs_channel_id"`
	UpdatesChannelID     string                           `json:"updates_channel_id"`
	TranscriptChannelID  string                           `json:"transcript_channel_id"`
	TicketPanelChannelID string                           `json:"ticket_panel_channel_id"`
	TicketCounter        int                              `json:"ticket_counter"`
	ServerLogo           string                           `json:"server_logo"`
	ServerOnlineImage    string                           `json:"server_online_image"`
	ServerOfflineImage   string                           `json:"server_offline_image"`
	TicketCategories     map[CategoryKind]*TicketCategory `json:"ticket_categories"`
}

// Document is the full persisted state. The running process holds exactly one
// of these and rewrites it to disk in full after every mutation.
type Document struct {
	Tickets      map[string]*Ticket    `json:"tickets"`
	ServerStatus ServerStatus          `json:"server_status"`
	BannedUsers  map[string]*BanRecord `json:"banned_users"`
	Config       Configuration         `json:"config"`
}

func DefaultDocument() *Document {
	return &Document{
		Tickets:      map[string]*Ticket{},
		ServerStatus: ServerOffline,
		BannedUsers:  map[string]*BanRecord{},
		Config: Configuration{
			ServerLogo:         "https://i.imgur.com/9w3wHPF.png",
			ServerOnlineImage:  "https://i.imgur.com/dQwWZpF.png",
			ServerOfflineImage: "https://i.imgur.com/3vN8FkM.png",
			TicketCategories: map[CategoryKind]*TicketCategory{
				CategorySupport: {
					Name:        "🛠️ Soporte Técnico",
					Description: "Problemas técnicos, bugs del servidor o ayuda general",
					Emoji:       "🛠️",
				},
				CategoryDonations: {
					Name:        "💰 Donaciones",
					Description: "Consultas sobre donaciones, VIP y beneficios",
					Emoji:       "💰",
				},
				CategoryDeals: {
					Name:        "🎁 Gangas",
					Description: "Ofertas especiales, eventos y promociones",
					Emoji:       "🎁",
				},
				CategoryReport: {
					Name:        "🚨 Reporte a Jugador",
					Description: "Reportar jugadores que incumplen las normas",
					Emoji:       "🚨",
				},
			},
		},
	}
}

// Normalize fills in anything missing from an older or hand-edited document
// so the rest of the code never sees nil maps or unknown categories.
func (d *Document) Normalize() {
	if d.Tickets == nil {
		d.Tickets = map[string]*Ticket{}
	}

	if d.BannedUsers == nil {
		d.BannedUsers = map[string]*BanRecord{}
	}

	if d.ServerStatus != ServerOnline {
		d.ServerStatus = ServerOffline
	}

	defaults := DefaultDocument()

	if d.Config.TicketCategories == nil {
		d.Config.TicketCategories = map[CategoryKind]*TicketCategory{}
	}

	for kind, cat := range defaults.Config.TicketCategories {
		if _, ok := d.Config.TicketCategories[kind]; !ok {
			d.Config.TicketCategories[kind] = cat
		}
	}
}

// OpenTicketFor returns the user's open ticket, if any. At most one open
// ticket may exist per user regardless of kind.
func (d *Document) OpenTicketFor(userID string) *Ticket {
	for _, t := range d.Tickets {
		if t.UserID == userID && t.Open {
			return t
		}
	}

	return nil
}

func (d *Document) OpenTicketCount() int {
	var n int

	for _, t := range d.Tickets {
		if t.Open {
			n++
		}
	}

	return n
}

// AllocateTicketNumber increments the running counter and returns the new
// value zero-padded to four digits. Callers must hold the store's write lock
// (i.e. run inside Store.Update).
func (d *Document) AllocateTicketNumber() string {
	d.Config.TicketCounter++
	return FormatTicketNumber(d.Config.TicketCounter)
}

func FormatTicketNumber(n int) string {
	return fmt.Sprintf("%04d", n)
}
