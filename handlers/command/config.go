package command

import (
	"fivem-community/audit"
	"fivem-community/store"
	"fivem-community/tickets"
	"fivem-community/types"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func setupCategory(s *discordgo.Session, i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData, st *store.Store, eng *tickets.Engine, aud *audit.Sink, logger *zap.Logger) error {
	if !isAdmin(i) {
		return respondText(s, i, "❌ Necesitas permisos de administrador para usar este comando.", true)
	}

	options := optionMap(data)

	kind := types.CategoryKind(options["tipo"].StringValue())
	categoryID := options["category_id"].StringValue()

	if !kind.Valid() {
		return respondText(s, i, "❌ Tipo de ticket inválido.", true)
	}

	category, err := s.Channel(categoryID)

	if err != nil || category.Type != discordgo.ChannelTypeGuildCategory {
		return respondText(s, i, "❌ ID de categoría inválido. Asegúrate de que sea una categoría válida.", true)
	}

	if err := st.SetCategoryDestination(kind, categoryID); err != nil {
		return err
	}

	info, _ := st.Category(kind)

	return respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "✅ Categoría Configurada",
		Description: info.Emoji + " **" + info.Name + "**\nSe abrirá en: **" + category.Name + "**",
		Color:       0x2ecc71,
		Timestamp:   now(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📝 Descripción", Value: info.Description, Inline: false},
			{Name: "🆔 Category ID", Value: "`" + categoryID + "`", Inline: true},
		},
	}, true)
}

func setPanelChannel(s *discordgo.Session, i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData, st *store.Store, eng *tickets.Engine, aud *audit.Sink, logger *zap.Logger) error {
	if !isAdmin(i) {
		return respondText(s, i, "❌ Necesitas permisos de administrador para usar este comando.", true)
	}

	channel := optionMap(data)["canal"].ChannelValue(s)

	if err := st.SetPanelChannel(channel.ID); err != nil {
		return err
	}

	return respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "✅ Canal de Panel Configurado",
		Description: "El panel de tickets se enviará a <#" + channel.ID + ">",
		Color:       0x2ecc71,
		Timestamp:   now(),
	}, true)
}

func setupStaff(s *discordgo.Session, i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData, st *store.Store, eng *tickets.Engine, aud *audit.Sink, logger *zap.Logger) error {
	if !isAdmin(i) {
		return respondText(s, i, "❌ Necesitas permisos de administrador para usar este comando.", true)
	}

	role := optionMap(data)["rol"].RoleValue(s, i.GuildID)

	if err := st.SetStaffRole(role.ID); err != nil {
		return err
	}

	return respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "✅ Rol de Staff Configurado",
		Description: "El rol <@&" + role.ID + "> ha sido establecido como rol de staff.",
		Color:       0x2ecc71,
		Timestamp:   now(),
	}, true)
}

func setImages(s *discordgo.Session, i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData, st *store.Store, eng *tickets.Engine, aud *audit.Sink, logger *zap.Logger) error {
	if !isAdmin(i) {
		return respondText(s, i, "❌ Necesitas permisos de administrador para usar este comando.", true)
	}

	options := optionMap(data)

	slot := options["tipo"].StringValue()
	url := options["url"].StringValue()

	if err := st.SetImage(slot, url); err != nil {
		return err
	}

	var name string

	switch slot {
	case store.ImageLogo:
		name = "Logo del Servidor"
	case store.ImageOnline:
		name = "Imagen Server Online"
	case store.ImageOffline:
		name = "Imagen Server Offline"
	}

	return respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "✅ Imagen Configurada",
		Description: "**" + name + "** ha sido actualizado.",
		Color:       0x2ecc71,
		Timestamp:   now(),
		Image:       &discordgo.MessageEmbedImage{URL: url},
	}, true)
}
