// logica de InteractionMessageComponent: los cuatro botones del panel.
package discord

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
)

func (r *Router) handleMessageComponent(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	data := ic.MessageComponentData()

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("panic in component %s: %v", data.CustomID, rec)
			ReplyEphemeral(s, ic, "⚠️ Ocurrió un error inesperado.")
		}
	}()

	_ = DeferEphemeral(s, ic)
	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()

	uid := ic.Member.User.ID
	if !r.clickLimiter.Allow(uid) {
		ReplyEphemeral(s, ic, "⏳ Esperá un segundo…")
		return
	}

	// solo staff puede tocar los botones
	staffRole, err := r.settings.StaffRoleID(ctx)
	if err != nil {
		ReplyEphemeral(s, ic, "⚠️ No pude leer la configuración: "+err.Error())
		return
	}
	if staffRole != "" && !memberHasRole(ic.Member, staffRole) {
		ReplyEphemeral(s, ic, "❌ Solo el staff puede usar estos botones.")
		return
	}

	name := displayNameOf(ic.Member)

	var msg string
	switch data.CustomID {
	case "staff_checkin":
		stop := step("component.checkin")
		msg, err = r.staff.CheckIn(ctx, uid, name)
		stop()
	case "staff_pause":
		msg, err = r.staff.Pause(ctx, uid, name)
	case "staff_resume":
		msg, err = r.staff.Resume(ctx, uid, name)
	case "staff_off":
		msg, err = r.staff.SignOff(ctx, uid, name)
	default:
		return
	}
	if err != nil {
		msg = "⚠️ No pude actualizar tu estado: " + err.Error()
	}
	ReplyEphemeral(s, ic, msg)

	r.refreshPanel()
}

func displayNameOf(m *discordgo.Member) string {
	if m == nil {
		return ""
	}
	if m.Nick != "" {
		return m.Nick
	}
	if m.User != nil {
		return m.User.Username
	}
	return ""
}
