// logica de InteractionApplicationCommand: validar permisos y
// despachar cada subcomando de /setup al settings service.
package discord

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jose-valero/staff-attendance-bot/internal/app/service"
)

const maxMonitoredChannels = 25

func (r *Router) handleSlashCommand(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	cmd := ic.ApplicationCommandData()
	log.Printf("cmd: /%s by=%s guild=%s", cmd.Name, ic.Member.User.ID, ic.GuildID)

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("panic in cmd /%s: %v", cmd.Name, rec)
			ReplyEphemeral(s, ic, "❌ Ocurrió un error inesperado procesando el comando.")
		}
	}()

	_ = DeferEphemeral(s, ic)
	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()

	if cmd.Name != "setup" {
		return
	}
	if !r.requireAdminOrRoles(s, ic) {
		return
	}
	if len(cmd.Options) == 0 {
		ReplyEphemeral(s, ic, "Usa un subcomando de `/setup`.")
		return
	}

	sub := cmd.Options[0]
	switch sub.Name {

	case "staffrole":
		role := sub.Options[0].RoleValue(nil, "")
		if err := r.settings.Set(ctx, service.KeyStaffRole, role.ID); err != nil {
			ReplyEphemeral(s, ic, "⚠️ No pude guardar el rol: "+err.Error())
			return
		}
		ReplyEphemeral(s, ic, fmt.Sprintf("✅ Rol de staff: <@&%s>", role.ID))

	case "staffchannel":
		ch := sub.Options[0].ChannelValue(nil)
		if err := r.settings.Set(ctx, service.KeyStaffChannel, ch.ID); err != nil {
			ReplyEphemeral(s, ic, "⚠️ No pude guardar el canal: "+err.Error())
			return
		}
		ReplyEphemeral(s, ic, fmt.Sprintf("✅ Canal del panel: <#%s>", ch.ID))

	case "leaderboard":
		ch := sub.Options[0].ChannelValue(nil)
		if err := r.settings.Set(ctx, service.KeyLeaderboardChannel, ch.ID); err != nil {
			ReplyEphemeral(s, ic, "⚠️ No pude guardar el canal: "+err.Error())
			return
		}
		ReplyEphemeral(s, ic, fmt.Sprintf("✅ Canal del leaderboard: <#%s>", ch.ID))

	case "monitored":
		ids := parseIDs(strings.ReplaceAll(sub.Options[0].StringValue(), ",", " "))
		if len(ids) > maxMonitoredChannels {
			ReplyEphemeral(s, ic, fmt.Sprintf("⚠️ Máximo %d canales.", maxMonitoredChannels))
			return
		}
		if err := r.settings.Set(ctx, service.KeyMonitoredChannels, strings.Join(ids, ",")); err != nil {
			ReplyEphemeral(s, ic, "⚠️ No pude guardar la lista: "+err.Error())
			return
		}
		if len(ids) == 0 {
			ReplyEphemeral(s, ic, "✅ Lista vacía: se monitorean **todos** los canales.")
			return
		}
		mentions := make([]string, 0, len(ids))
		for _, id := range ids {
			mentions = append(mentions, "<#"+id+">")
		}
		ReplyEphemeral(s, ic, "✅ Canales monitoreados: "+strings.Join(mentions, ", "))

	case "stagemod":
		user := sub.Options[0].UserValue(nil)
		if err := r.settings.Set(ctx, service.KeyStageMod, user.ID); err != nil {
			ReplyEphemeral(s, ic, "⚠️ No pude guardar el moderador: "+err.Error())
			return
		}
		ReplyEphemeral(s, ic, fmt.Sprintf("✅ Moderador de stage: <@%s>", user.ID))

	case "stage-mode":
		mode := sub.Options[0].StringValue()
		if mode != service.StageModeSingle && mode != service.StageModeRole {
			ReplyEphemeral(s, ic, "⚠️ Modo inválido, usa `single` o `role`.")
			return
		}
		if err := r.settings.Set(ctx, service.KeyStageMode, mode); err != nil {
			ReplyEphemeral(s, ic, "⚠️ No pude guardar el modo: "+err.Error())
			return
		}
		ReplyEphemeral(s, ic, fmt.Sprintf("✅ Stage mode: **%s**", mode))
	}
}
