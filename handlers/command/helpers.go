package command

import (
	"time"

	"fivem-community/types"

	"github.com/bwmarrin/discordgo"
)

func categoryChoices() []*discordgo.ApplicationCommandOptionChoice {
	defaults := types.DefaultDocument().Config.TicketCategories

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(types.CategoryKinds))

	for _, kind := range types.CategoryKinds {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  defaults[kind].Name,
			Value: string(kind),
		})
	}

	return choices
}

func optionMap(data discordgo.ApplicationCommandInteractionData) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(data.Options))

	for _, opt := range data.Options {
		options[opt.Name] = opt
	}

	return options
}

func invoker(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}

	return i.User
}

func isAdmin(i *discordgo.Interaction) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}

func respondText(s *discordgo.Session, i *discordgo.Interaction, content string, ephemeral bool) error {
	var flags discordgo.MessageFlags

	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	return s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   flags,
			AllowedMentions: &discordgo.MessageAllowedMentions{
				Parse: []discordgo.AllowedMentionType{},
			},
		},
	})
}

func respondEmbed(s *discordgo.Session, i *discordgo.Interaction, embed *discordgo.MessageEmbed, ephemeral bool) error {
	var flags discordgo.MessageFlags

	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	return s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  flags,
			AllowedMentions: &discordgo.MessageAllowedMentions{
				Parse: []discordgo.AllowedMentionType{},
			},
		},
	})
}

func footerFor(i *discordgo.Interaction, action string) *discordgo.MessageEmbedFooter {
	user := invoker(i)

	footer := &discordgo.MessageEmbedFooter{
		Text: action + " por " + user.Username,
	}

	if avatar := user.AvatarURL(""); avatar != "" {
		footer.IconURL = avatar
	}

	return footer
}

func now() string {
	return time.Now().Format(time.RFC3339)
}
