package command

import (
	"fmt"
	"strings"

	"fivem-community/audit"
	"fivem-community/store"
	"fivem-community/tickets"
	"fivem-community/types"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// panel shows a control-panel embed with the server status and counters.
func panel(s *discordgo.Session, i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData, st *store.Store, eng *tickets.Engine, aud *audit.Sink, logger *zap.Logger) error {
	var (
		status      types.ServerStatus
		banCount    int
		ticketCount int
		logo        string
	)

	st.View(func(d *types.Document) {
		status = d.ServerStatus
		banCount = len(d.BannedUsers)
		ticketCount = d.OpenTicketCount()
		logo = d.Config.ServerLogo
	})

	statusText := "🔴 Offline"
	color := 0xe74c3c

	if status == types.ServerOnline {
		statusText = "🟢 Online"
		color = 0x2ecc71
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎮 Panel de Control - FiveM",
		Description: "Estado actual del servidor y estadísticas",
		Color:       color,
		Timestamp:   now(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📡 Estado del Servidor", Value: statusText, Inline: true},
			{Name: "🔨 Usuarios Baneados", Value: fmt.Sprintf("`%d`", banCount), Inline: true},
			{Name: "🎫 Tickets Activos", Value: fmt.Sprintf("`%d`", ticketCount), Inline: true},
		},
		Footer: footerFor(i, "Solicitado"),
	}

	if logo != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: logo}
	}

	return respondEmbed(s, i, embed, false)
}

var panelButtonStyles = map[types.CategoryKind]discordgo.ButtonStyle{
	types.CategorySupport:   discordgo.PrimaryButton,
	types.CategoryDonations: discordgo.SuccessButton,
	types.CategoryDeals:     discordgo.SecondaryButton,
	types.CategoryReport:    discordgo.DangerButton,
}

// ticketPanel publishes the ticket panel with one button per category. It
// refuses to publish while any category has no destination configured, and
// names the missing ones.
func ticketPanel(s *discordgo.Session, i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData, st *store.Store, eng *tickets.Engine, aud *audit.Sink, logger *zap.Logger) error {
	if !isAdmin(i) {
		return respondText(s, i, "❌ Necesitas permisos de administrador para usar este comando.", true)
	}

	var (
		categories = map[types.CategoryKind]types.TicketCategory{}
		logo       string
		panelDest  string
	)

	st.View(func(d *types.Document) {
		for kind, cat := range d.Config.TicketCategories {
			categories[kind] = *cat
		}

		logo = d.Config.ServerLogo
		panelDest = d.Config.TicketPanelChannelID
	})

	var missing []string

	for _, kind := range types.CategoryKinds {
		if cat, ok := categories[kind]; ok && cat.CategoryID == "" {
			missing = append(missing, "• "+cat.Name)
		}
	}

	if len(missing) > 0 {
		return respondText(s, i,
			"❌ Faltan configurar categorías:\n"+strings.Join(missing, "\n")+"\n\nUsa `/setupcategory` para configurarlas.", true)
	}

	var description strings.Builder

	description.WriteString("**Bienvenido al sistema de soporte**\n\n" +
		"Selecciona el tipo de ticket que necesitas haciendo clic en uno de los botones de abajo:\n")

	buttons := make([]discordgo.MessageComponent, 0, len(types.CategoryKinds))

	for _, kind := range types.CategoryKinds {
		cat := categories[kind]

		fmt.Fprintf(&description, "\n%s\n%s\n", "**"+cat.Name+"**", cat.Description)

		buttons = append(buttons, discordgo.Button{
			Label:    strings.TrimSpace(strings.TrimPrefix(cat.Name, cat.Emoji)),
			Style:    panelButtonStyles[kind],
			Emoji:    discordgo.ComponentEmoji{Name: cat.Emoji},
			CustomID: tickets.TicketButtonPrefix + ":" + string(kind),
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎫 Sistema de Tickets",
		Description: description.String(),
		Color:       0x3498db,
		Timestamp:   now(),
		Footer:      &discordgo.MessageEmbedFooter{Text: "Haz clic en un botón para abrir tu ticket"},
	}

	if logo != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: logo}
	}

	// Fall back to the invoking channel when no panel channel is configured.
	target := panelDest

	if target == "" {
		target = i.ChannelID
	}

	_, err := s.ChannelMessageSendComplex(target, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: buttons},
		},
	})

	if err != nil {
		return fmt.Errorf("error sending ticket panel: %w", err)
	}

	return respondText(s, i, "✅ Panel de tickets creado en <#"+target+">.", true)
}
