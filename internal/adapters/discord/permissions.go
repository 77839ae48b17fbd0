package discord

import "github.com/bwmarrin/discordgo"

// memberHasRole es el predicado de autorización del bot:
// (roles del member, rol requerido) → allow/deny.
func memberHasRole(m *discordgo.Member, roleID string) bool {
	if m == nil {
		return false
	}
	for _, rid := range m.Roles {
		if rid == roleID {
			return true
		}
	}
	return false
}

func (r *Router) requireAdminOrRoles(s *discordgo.Session, ic *discordgo.InteractionCreate) bool {
	// Owner
	if g, _ := s.State.Guild(ic.GuildID); g != nil && ic.Member != nil && ic.Member.User != nil && ic.Member.User.ID == g.OwnerID {
		return true
	}

	// Administrator bit
	roles, _ := s.GuildRoles(ic.GuildID)
	var perms int64
outer:
	for _, rid := range ic.Member.Roles {
		for _, ro := range roles {
			if ro.ID == rid {
				perms |= ro.Permissions
				if (perms & discordgo.PermissionAdministrator) != 0 {
					break outer
				}
			}
		}
	}
	if (perms & discordgo.PermissionAdministrator) != 0 {
		return true
	}

	// Roles explícitos del bot
	for _, want := range r.adminRoleIDs {
		if memberHasRole(ic.Member, want) {
			return true
		}
	}

	ReplyEphemeral(s, ic, "🔒 No tienes permisos para esta acción.")
	return false
}
