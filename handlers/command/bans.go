package command

import (
	"errors"
	"fmt"
	"time"

	"fivem-community/audit"
	"fivem-community/store"
	"fivem-community/tickets"
	"fivem-community/types"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func ban(s *discordgo.Session, i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData, st *store.Store, eng *tickets.Engine, aud *audit.Sink, logger *zap.Logger) error {
	options := optionMap(data)

	user := options["usuario"].UserValue(s)
	reason := options["razon"].StringValue()
	duration := "permanente"

	if opt, ok := options["duracion"]; ok {
		duration = opt.StringValue()
	}

	actor := invoker(i)

	err := st.AddBan(user.ID, &types.BanRecord{
		Username: user.Username,
		Reason:   reason,
		Duration: duration,
		BannedBy: actor.Username,
		BannedAt: time.Now().Unix(),
	})

	if err != nil {
		return err
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🔨 Usuario Baneado",
		Description: fmt.Sprintf("**<@%s>** ha sido baneado del servidor FiveM.", user.ID),
		Color:       0xe74c3c,
		Timestamp:   now(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👤 Usuario", Value: fmt.Sprintf("<@%s>\n`ID: %s`", user.ID, user.ID), Inline: true},
			{Name: "⏰ Duración", Value: duration, Inline: true},
			{Name: "📝 Razón", Value: reason, Inline: false},
			{Name: "👮 Baneado por", Value: "<@" + actor.ID + ">", Inline: true},
		},
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: user.AvatarURL("")},
		Footer:    footerFor(i, "Ban ejecutado"),
	}

	if err := respondEmbed(s, i, embed, false); err != nil {
		return err
	}

	aud.LogAction("Ban", fmt.Sprintf("<@%s> baneó a <@%s>\n**Razón:** %s\n**Duración:** %s", actor.ID, user.ID, reason, duration))

	return nil
}

func unban(s *discordgo.Session, i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData, st *store.Store, eng *tickets.Engine, aud *audit.Sink, logger *zap.Logger) error {
	userID := optionMap(data)["userid"].StringValue()

	rec, err := st.RemoveBan(userID)

	if errors.Is(err, store.ErrBanNotFound) {
		return respondText(s, i, "❌ Este usuario no está baneado.", true)
	}

	if err != nil {
		return err
	}

	actor := invoker(i)

	embed := &discordgo.MessageEmbed{
		Title:       "✅ Usuario Desbaneado",
		Description: fmt.Sprintf("**%s** ha sido desbaneado.", rec.Username),
		Color:       0x2ecc71,
		Timestamp:   now(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👤 Usuario", Value: fmt.Sprintf("%s\n`ID: %s`", rec.Username, userID), Inline: true},
			{Name: "👮 Desbaneado por", Value: "<@" + actor.ID + ">", Inline: true},
		},
		Footer: footerFor(i, "Unban ejecutado"),
	}

	if err := respondEmbed(s, i, embed, false); err != nil {
		return err
	}

	aud.LogAction("Unban", fmt.Sprintf("<@%s> desbaneó a %s", actor.ID, rec.Username))

	return nil
}

// bans lists the first ten ban records, ordered by user id so the output is
// stable between invocations.
func bans(s *discordgo.Session, i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData, st *store.Store, eng *tickets.Engine, aud *audit.Sink, logger *zap.Logger) error {
	banned := st.Bans()

	if len(banned) == 0 {
		return respondText(s, i, "✅ No hay usuarios baneados.", true)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📋 Lista de Baneados",
		Description: fmt.Sprintf("Total de baneados: **%d**", len(banned)),
		Color:       0xe74c3c,
		Timestamp:   now(),
	}

	ids := maps.Keys(banned)
	slices.Sort(ids)

	const maxShown = 10

	for idx, userID := range ids {
		if idx == maxShown {
			break
		}

		rec := banned[userID]

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%d. %s", idx+1, rec.Username),
			Value:  fmt.Sprintf("**ID:** `%s`\n**Razón:** %s\n**Duración:** %s\n**Por:** %s", userID, rec.Reason, rec.Duration, rec.BannedBy),
			Inline: false,
		})
	}

	if len(banned) > maxShown {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Mostrando %d de %d baneados", maxShown, len(banned)),
		}
	}

	return respondEmbed(s, i, embed, true)
}
