package command

import (
	"fmt"

	"fivem-community/audit"
	"fivem-community/store"
	"fivem-community/tickets"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// actualizacion broadcasts an announcement embed to the updates channel.
func actualizacion(s *discordgo.Session, i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData, st *store.Store, eng *tickets.Engine, aud *audit.Sink, logger *zap.Logger) error {
	channelID := st.UpdatesChannelID()

	if channelID == "" {
		return respondText(s, i, "❌ No hay canal de actualizaciones configurado. Usa /setup primero.", true)
	}

	options := optionMap(data)

	title := options["titulo"].StringValue()
	body := options["descripcion"].StringValue()

	embed := &discordgo.MessageEmbed{
		Title:       "📢 " + title,
		Description: body,
		Color:       0x3498db,
		Timestamp:   now(),
		Footer:      footerFor(i, "Actualizado"),
	}

	if opt, ok := options["imagen"]; ok {
		embed.Image = &discordgo.MessageEmbedImage{URL: opt.StringValue()}
	}

	if logo := st.ServerLogo(); logo != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: logo}
	}

	_, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: "@everyone",
		Embeds:  []*discordgo.MessageEmbed{embed},
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeEveryone},
		},
	})

	if err != nil {
		return fmt.Errorf("error sending update: %w", err)
	}

	return respondText(s, i, "✅ Actualización enviada correctamente.", true)
}
