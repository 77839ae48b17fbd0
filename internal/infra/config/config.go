package config

import (
	"log"
	"os"
	"strings"
)

type Config struct {
	DatabaseURL  string
	DiscordToken string
	DiscordGuild string

	// opcionales
	AdminRoleIDs []string // roles que pueden usar /setup además del bit admin
	PanelLogoURL string   // logo para el embed del panel
}

func Load() Config {
	get := func(k string, req bool) string {
		v := os.Getenv(k)
		if v == "" && req {
			log.Fatalf("faltante env %s", k)
		}
		return v
	}

	cfg := Config{
		DatabaseURL:  get("DATABASE_URL", true),
		DiscordToken: get("DISCORD_BOT_TOKEN", true),
		DiscordGuild: get("DISCORD_GUILD_ID", true),
		PanelLogoURL: get("PANEL_LOGO_URL", false),
	}
	for _, id := range strings.Split(get("ADMIN_ROLE_IDS", false), ",") {
		if id = strings.TrimSpace(id); id != "" {
			cfg.AdminRoleIDs = append(cfg.AdminRoleIDs, id)
		}
	}
	return cfg
}
