package command

import (
	"fmt"
	"time"

	"fivem-community/audit"
	"fivem-community/store"
	"fivem-community/tickets"
	"fivem-community/types"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func serverUp(s *discordgo.Session, i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData, st *store.Store, eng *tickets.Engine, aud *audit.Sink, logger *zap.Logger) error {
	if err := st.SetServerStatus(types.ServerOnline); err != nil {
		return err
	}

	options := optionMap(data)

	var ip string

	if opt, ok := options["ip"]; ok {
		ip = opt.StringValue()
	}

	slots := int64(32)

	if opt, ok := options["slots"]; ok {
		slots = opt.IntValue()
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🟢 SERVIDOR ONLINE",
		Description: "¡El servidor está ahora disponible para jugar!",
		Color:       0x2ecc71,
		Timestamp:   now(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📡 Estado", Value: "✅ Online", Inline: true},
		},
		Footer: footerFor(i, "Actualizado"),
	}

	if ip != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "🌐 IP del Servidor", Value: "`" + ip + "`", Inline: true})
	}

	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{Name: "👥 Slots Disponibles", Value: fmt.Sprintf("`%d`", slots), Inline: true},
		&discordgo.MessageEmbedField{Name: "⏰ Actualizado", Value: fmt.Sprintf("<t:%d:R>", time.Now().Unix()), Inline: false},
	)

	decorateStatusEmbed(embed, st, true)

	if err := respondEmbed(s, i, embed, false); err != nil {
		return err
	}

	aud.LogAction("Server Status", fmt.Sprintf("<@%s> marcó el servidor como **ONLINE**", invoker(i).ID))

	return nil
}

func serverDown(s *discordgo.Session, i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData, st *store.Store, eng *tickets.Engine, aud *audit.Sink, logger *zap.Logger) error {
	if err := st.SetServerStatus(types.ServerOffline); err != nil {
		return err
	}

	reason := "Mantenimiento programado"

	if opt, ok := optionMap(data)["razon"]; ok {
		reason = opt.StringValue()
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🔴 SERVIDOR OFFLINE",
		Description: "El servidor está actualmente en mantenimiento.",
		Color:       0xe74c3c,
		Timestamp:   now(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📡 Estado", Value: "❌ Offline", Inline: true},
			{Name: "📝 Razón", Value: reason, Inline: true},
			{Name: "⏰ Desde", Value: fmt.Sprintf("<t:%d:R>", time.Now().Unix()), Inline: false},
		},
		Footer: footerFor(i, "Actualizado"),
	}

	decorateStatusEmbed(embed, st, false)

	if err := respondEmbed(s, i, embed, false); err != nil {
		return err
	}

	aud.LogAction("Server Status", fmt.Sprintf("<@%s> marcó el servidor como **OFFLINE**\n**Razón:** %s", invoker(i).ID, reason))

	return nil
}

func decorateStatusEmbed(embed *discordgo.MessageEmbed, st *store.Store, online bool) {
	st.View(func(d *types.Document) {
		if d.Config.ServerLogo != "" {
			embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: d.Config.ServerLogo}
		}

		image := d.Config.ServerOfflineImage

		if online {
			image = d.Config.ServerOnlineImage
		}

		if image != "" {
			embed.Image = &discordgo.MessageEmbedImage{URL: image}
		}
	})
}
