// Package command holds the slash command surface. Handlers are looked up by
// command name from a table, mirroring the component dispatcher.
package command

import (
	"fivem-community/audit"
	"fivem-community/store"
	"fivem-community/tickets"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

type Handler func(s *discordgo.Session, i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData, st *store.Store, eng *tickets.Engine, aud *audit.Sink, logger *zap.Logger) error

var Handlers = map[string]Handler{}

func AddHandler(name string, handler Handler) {
	Handlers[name] = handler
}

func init() {
	AddHandler("setup", setup)
	AddHandler("setupcategory", setupCategory)
	AddHandler("setpanelchannel", setPanelChannel)
	AddHandler("setupstaff", setupStaff)
	AddHandler("setimages", setImages)
	AddHandler("serverup", serverUp)
	AddHandler("serverdown", serverDown)
	AddHandler("ban", ban)
	AddHandler("unban", unban)
	AddHandler("bans", bans)
	AddHandler("actualizacion", actualizacion)
	AddHandler("panel", panel)
	AddHandler("ticketpanel", ticketPanel)
}

var adminPermission = int64(discordgo.PermissionAdministrator)

// Commands is registered with Discord on startup via bulk overwrite.
var Commands = []*discordgo.ApplicationCommand{
	{
		Name:                     "setup",
		Description:              "Configuración inicial básica del bot",
		DefaultMemberPermissions: &adminPermission,
	},
	{
		Name:                     "setupcategory",
		Description:              "Configura la categoría para un tipo de ticket",
		DefaultMemberPermissions: &adminPermission,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "tipo",
				Description: "Tipo de ticket",
				Required:    true,
				Choices:     categoryChoices(),
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "category_id",
				Description: "ID de la categoría de Discord",
				Required:    true,
			},
		},
	},
	{
		Name:                     "setpanelchannel",
		Description:              "Establece el canal donde se enviará el panel de tickets",
		DefaultMemberPermissions: &adminPermission,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionChannel,
				Name:        "canal",
				Description: "Canal del panel",
				Required:    true,
			},
		},
	},
	{
		Name:                     "setupstaff",
		Description:              "Establece el rol de staff",
		DefaultMemberPermissions: &adminPermission,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionRole,
				Name:        "rol",
				Description: "Rol de staff",
				Required:    true,
			},
		},
	},
	{
		Name:                     "setimages",
		Description:              "Configura las imágenes del bot (logo, online, offline)",
		DefaultMemberPermissions: &adminPermission,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "tipo",
				Description: "Imagen a configurar",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Logo del Servidor", Value: store.ImageLogo},
					{Name: "Imagen Server Online", Value: store.ImageOnline},
					{Name: "Imagen Server Offline", Value: store.ImageOffline},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "url",
				Description: "URL de la imagen",
				Required:    true,
			},
		},
	},
	{
		Name:        "serverup",
		Description: "Marca el servidor como online",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "ip",
				Description: "IP del servidor",
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "slots",
				Description: "Slots disponibles",
			},
		},
	},
	{
		Name:        "serverdown",
		Description: "Marca el servidor como offline",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "razon",
				Description: "Razón del mantenimiento",
			},
		},
	},
	{
		Name:        "ban",
		Description: "Banea a un usuario del servidor FiveM",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "usuario",
				Description: "Usuario a banear",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "razon",
				Description: "Razón del baneo",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "duracion",
				Description: "Duración del baneo",
			},
		},
	},
	{
		Name:        "unban",
		Description: "Desbanea a un usuario",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "userid",
				Description: "ID del usuario",
				Required:    true,
			},
		},
	},
	{
		Name:        "bans",
		Description: "Lista de usuarios baneados",
	},
	{
		Name:        "actualizacion",
		Description: "Envía una actualización al canal de actualizaciones",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "titulo",
				Description: "Título de la actualización",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "descripcion",
				Description: "Contenido de la actualización",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "imagen",
				Description: "URL de una imagen",
			},
		},
	},
	{
		Name:        "panel",
		Description: "Muestra el panel de control del servidor",
	},
	{
		Name:                     "ticketpanel",
		Description:              "Crea el panel de tickets con botones",
		DefaultMemberPermissions: &adminPermission,
	},
}
