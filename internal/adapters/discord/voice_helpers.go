package discord

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jose-valero/staff-attendance-bot/internal/app/service"
)

func (r *Router) safeGetChannel(id string) (*discordgo.Channel, error) {
	if ch, err := r.s.State.Channel(id); err == nil && ch != nil {
		return ch, nil
	}
	ch, err := r.s.Channel(id)
	if err != nil {
		return nil, err
	}
	_ = r.s.State.ChannelAdd(ch)
	return ch, nil
}

func (r *Router) isStageChannel(id string) bool {
	if id == "" {
		return false
	}
	ch, err := r.safeGetChannel(id)
	return err == nil && ch.Type == discordgo.ChannelTypeGuildStageVoice
}

// VoiceStateUpdate → abre/cierra sesiones de stage. En modo single solo
// trackeamos al moderador configurado; en modo role a cualquier miembro
// con el rol de staff.
func (r *Router) onVoiceStateUpdate(s *discordgo.Session, vs *discordgo.VoiceStateUpdate) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("panic in voiceStateUpdate: %v", rec)
		}
	}()

	if vs.GuildID != r.guildID {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()

	oldChannelID := ""
	if vs.BeforeUpdate != nil {
		oldChannelID = vs.BeforeUpdate.ChannelID
	}
	joinedStage := r.isStageChannel(vs.ChannelID)
	leftStage := r.isStageChannel(oldChannelID) && vs.ChannelID != oldChannelID

	if !joinedStage && !leftStage {
		return
	}

	mode, err := r.settings.StageMode(ctx)
	if err != nil {
		log.Printf("voiceStateUpdate: stage_mode: %v", err)
		return
	}

	uid := vs.UserID
	switch mode {
	case service.StageModeSingle:
		modID, err := r.settings.StageModID(ctx)
		if err != nil || modID == "" || uid != modID {
			return
		}
	case service.StageModeRole:
		staffRole, err := r.settings.StaffRoleID(ctx)
		if err != nil || staffRole == "" {
			return
		}
		// el evento trae una referencia parcial: resolvemos el member
		// completo antes de mirar roles
		member, err := r.safeGetMember(uid)
		if err != nil {
			return
		}
		if !memberHasRole(member, staffRole) {
			return
		}
	}

	if joinedStage {
		if err := r.stage.Start(ctx, uid); err != nil {
			log.Printf("voiceStateUpdate: start de %s: %v", uid, err)
		}
	}
	if leftStage {
		if err := r.stage.End(ctx, uid); err != nil {
			log.Printf("voiceStateUpdate: end de %s: %v", uid, err)
		}
	}
}

func (r *Router) safeGetMember(userID string) (*discordgo.Member, error) {
	if m, err := r.s.State.Member(r.guildID, userID); err == nil && m != nil {
		return m, nil
	}
	m, err := r.s.GuildMember(r.guildID, userID)
	if err != nil {
		return nil, err
	}
	_ = r.s.State.MemberAdd(m)
	return m, nil
}
