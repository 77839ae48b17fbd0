package discord

import "github.com/bwmarrin/discordgo"

var setupDefaultPerms int64 = discordgo.PermissionAdministrator

var Commands = []*discordgo.ApplicationCommand{
	{
		Name:                     "setup",
		Description:              "Configura el bot de asistencia (admins)",
		DefaultMemberPermissions: &setupDefaultPerms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "staffrole",
				Description: "Rol que identifica al staff",
				Options: []*discordgo.ApplicationCommandOption{{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Rol de staff",
					Required:    true,
				}},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "staffchannel",
				Description: "Canal donde vive el panel de staff",
				Options: []*discordgo.ApplicationCommandOption{{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "Canal del panel",
					Required:    true,
				}},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "leaderboard",
				Description: "Canal del leaderboard (puede ser el mismo)",
				Options: []*discordgo.ApplicationCommandOption{{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "Canal del leaderboard",
					Required:    true,
				}},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "monitored",
				Description: "Canales monitoreados (IDs o menciones, separados por coma)",
				Options: []*discordgo.ApplicationCommandOption{{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "channels",
					Description: "Lista de canales; vacío = todos",
					Required:    true,
				}},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "stagemod",
				Description: "Moderador de stage (modo single)",
				Options: []*discordgo.ApplicationCommandOption{{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Usuario moderador",
					Required:    true,
				}},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "stage-mode",
				Description: "Modo de tracking del stage",
				Options: []*discordgo.ApplicationCommandOption{{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "mode",
					Description: "single o role",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "single", Value: "single"},
						{Name: "role", Value: "role"},
					},
				}},
			},
		},
	},
}
