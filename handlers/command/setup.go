package command

import (
	"fmt"

	"fivem-community/audit"
	"fivem-community/store"
	"fivem-community/tickets"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// setup bootstraps the logs, updates and transcripts channels and records
// their ids. The channels are created hidden (or read-only for updates) for
// @everyone.
func setup(s *discordgo.Session, i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData, st *store.Store, eng *tickets.Engine, aud *audit.Sink, logger *zap.Logger) error {
	if !isAdmin(i) {
		return respondText(s, i, "❌ Necesitas permisos de administrador para usar este comando.", true)
	}

	hidden := []*discordgo.PermissionOverwrite{
		{
			ID:   i.GuildID,
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		},
	}

	readOnly := []*discordgo.PermissionOverwrite{
		{
			ID:   i.GuildID,
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionSendMessages,
		},
	}

	logsChannel, err := s.GuildChannelCreateComplex(i.GuildID, discordgo.GuildChannelCreateData{
		Name:                 "📋-logs",
		Type:                 discordgo.ChannelTypeGuildText,
		PermissionOverwrites: hidden,
	})

	if err != nil {
		return fmt.Errorf("error creating logs channel: %w", err)
	}

	updatesChannel, err := s.GuildChannelCreateComplex(i.GuildID, discordgo.GuildChannelCreateData{
		Name:                 "📢-actualizaciones",
		Type:                 discordgo.ChannelTypeGuildText,
		PermissionOverwrites: readOnly,
	})

	if err != nil {
		return fmt.Errorf("error creating updates channel: %w", err)
	}

	transcriptChannel, err := s.GuildChannelCreateComplex(i.GuildID, discordgo.GuildChannelCreateData{
		Name:                 "📄-transcripts",
		Type:                 discordgo.ChannelTypeGuildText,
		PermissionOverwrites: hidden,
	})

	if err != nil {
		return fmt.Errorf("error creating transcript channel: %w", err)
	}

	if err := st.SetCoreChannels(logsChannel.ID, updatesChannel.ID, transcriptChannel.ID); err != nil {
		return err
	}

	return respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "✅ Setup Básico Completado",
		Description: "Configuración inicial completada. Ahora configura las categorías de tickets.",
		Color:       0x2ecc71,
		Timestamp:   now(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📋 Canal de Logs", Value: "<#" + logsChannel.ID + ">", Inline: true},
			{Name: "📢 Canal de Actualizaciones", Value: "<#" + updatesChannel.ID + ">", Inline: true},
			{Name: "📄 Canal de Transcripts", Value: "<#" + transcriptChannel.ID + ">", Inline: true},
			{Name: "📝 Siguiente Paso", Value: "Usa `/setupcategory` para configurar cada categoría de ticket", Inline: false},
		},
		Footer: footerFor(i, "Configurado"),
	}, true)
}
