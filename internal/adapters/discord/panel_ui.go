package discord

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jose-valero/staff-attendance-bot/internal/domain"
	"github.com/jose-valero/staff-attendance-bot/internal/infra/storage"
)

// atajos de tunning del panel
const (
	panelTitle     = "Asistencia & Leaderboard — Staff"
	panelDebounce  = 1200 * time.Millisecond
	panelScanLimit = 50
	leaderboardTop = 12
	ctxRenderMax   = 5 * time.Second
)

// RefreshPanel re-renderiza y publica el panel ya. Se traga todos los
// errores: un panel roto nunca tumba el proceso ni una interacción.
func (r *Router) RefreshPanel() {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("panic in panel refresh: %v", rec)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), ctxRenderMax)
	defer cancel()

	if err := r.publishPanel(ctx); err != nil {
		log.Printf("panel refresh: %v", err)
	}
}

// refreshPanel agenda un refresh con debounce: varios botones seguidos
// colapsan en un solo repaint.
func (r *Router) refreshPanel() {
	r.refreshMu.Lock()
	defer r.refreshMu.Unlock()
	if r.refreshTimer != nil {
		r.refreshTimer.Stop()
	}
	r.refreshTimer = time.AfterFunc(panelDebounce, r.RefreshPanel)
}

// publishPanel resuelve el mensaje destino y lo edita o crea.
// Primero el id persistido en settings; si no sirve, escaneo acotado de
// los últimos mensajes buscando un embed nuestro con el título del
// panel (paneles publicados por revisiones viejas); si no, mensaje
// nuevo. Siempre re-persiste el id.
func (r *Router) publishPanel(ctx context.Context) error {
	channelID, err := r.settings.PanelChannelID(ctx)
	if err != nil {
		return err
	}
	if channelID == "" {
		return nil // todavía sin configurar
	}

	embed, comps, err := r.renderPanelEmbed(ctx)
	if err != nil {
		return err
	}
	em := []*discordgo.MessageEmbed{embed}
	cc := []discordgo.MessageComponent{comps}

	refCh, refMsg, err := r.settings.PanelRef(ctx)
	if err != nil {
		return err
	}
	if refCh == channelID && refMsg != "" {
		_, err := r.s.ChannelMessageEditComplex(&discordgo.MessageEdit{
			Channel:    refCh,
			ID:         refMsg,
			Embeds:     &em,
			Components: &cc,
		})
		if err == nil {
			return nil
		}
		// mensaje borrado o canal cambiado: seguimos al fallback
		log.Printf("panel edit por id falló, re-descubriendo: %v", err)
	}

	if msgID := r.findPanelMessage(channelID); msgID != "" {
		if _, err := r.s.ChannelMessageEditComplex(&discordgo.MessageEdit{
			Channel:    channelID,
			ID:         msgID,
			Embeds:     &em,
			Components: &cc,
		}); err == nil {
			return r.settings.SetPanelRef(ctx, channelID, msgID)
		}
	}

	msg, err := r.s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     em,
		Components: cc,
	})
	if err != nil {
		return err
	}
	return r.settings.SetPanelRef(ctx, channelID, msg.ID)
}

// findPanelMessage: escaneo acotado por título, solo como fallback.
func (r *Router) findPanelMessage(channelID string) string {
	msgs, err := r.s.ChannelMessages(channelID, panelScanLimit, "", "", "")
	if err != nil {
		return ""
	}
	botID := r.s.State.User.ID
	for _, m := range msgs {
		if m.Author == nil || m.Author.ID != botID {
			continue
		}
		if len(m.Embeds) > 0 && strings.HasPrefix(m.Embeds[0].Title, panelTitle) {
			return m.ID
		}
	}
	return ""
}

func (r *Router) renderPanelEmbed(ctx context.Context) (*discordgo.MessageEmbed, discordgo.MessageComponent, error) {
	rows, err := r.staff.Leaderboard(ctx, panelScanLimit)
	if err != nil {
		return nil, nil, err
	}
	all, err := r.staff.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	top := rows
	if len(top) > leaderboardTop {
		top = top[:leaderboardTop]
	}

	embed := &discordgo.MessageEmbed{
		Color:       0x00cf91,
		Title:       panelTitle,
		Description: "**Leaderboard en vivo** · 100 msgs = 1 pt · 30 min en stage = 1 pt\nUsá los botones para registrarte o cambiar tu estado.",
		Fields: []*discordgo.MessageEmbedField{
			{Name: fmt.Sprintf("Top %d", len(top)), Value: leaderboardLines(top)},
			{Name: "Activos", Value: statusColumn(all, domain.StatusActive, "🟢"), Inline: true},
			{Name: "Pausa", Value: statusColumn(all, domain.StatusPaused, "⏸️"), Inline: true},
			{Name: "Off", Value: statusColumn(all, domain.StatusOff, "⛔"), Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "El panel se actualiza solo cada 30 segundos."},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if g, _ := r.s.State.Guild(r.guildID); g != nil {
		name := g.Name + " · Panel Staff"
		icon := r.logoURL
		if icon == "" {
			icon = g.IconURL("256")
		}
		embed.Author = &discordgo.MessageEmbedAuthor{Name: name, IconURL: icon}
	}

	comps := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Style:    discordgo.SuccessButton,
				Label:    "Presente",
				CustomID: "staff_checkin",
				Emoji:    &discordgo.ComponentEmoji{Name: "🟢"},
			},
			discordgo.Button{
				Style:    discordgo.SecondaryButton,
				Label:    "Pausa",
				CustomID: "staff_pause",
				Emoji:    &discordgo.ComponentEmoji{Name: "⏸️"},
			},
			discordgo.Button{
				Style:    discordgo.PrimaryButton,
				Label:    "Seguir",
				CustomID: "staff_resume",
				Emoji:    &discordgo.ComponentEmoji{Name: "▶️"},
			},
			discordgo.Button{
				Style:    discordgo.DangerButton,
				Label:    "Off",
				CustomID: "staff_off",
				Emoji:    &discordgo.ComponentEmoji{Name: "⛔"},
			},
		},
	}

	return embed, comps, nil
}

// leaderboardLines arma el ranking. Placeholder → mención cruda al id.
func leaderboardLines(top []storage.StaffMember) string {
	if len(top) == 0 {
		return "_Sin datos en el leaderboard todavía._"
	}
	var b strings.Builder
	for i, m := range top {
		name := "<@" + m.DiscordID + ">"
		if m.DisplayName != nil && !domain.IsPlaceholderName(*m.DisplayName) {
			name = "**" + strings.TrimSpace(*m.DisplayName) + "**"
		}
		whole := int(m.Points)
		bar := progressBar(m.Points-float64(whole), 10)
		fmt.Fprintf(&b, "`%2d.` %s\n• **%.2f pts** %s\n• msgs: %d • mins: %d\n\n",
			i+1, name, m.Points, bar, m.MessagesCount, m.MinutesOnStage)
	}
	return strings.TrimRight(b.String(), "\n")
}

// statusColumn lista nombres (sin placeholders) con el status pedido.
// Un status inválido o vacío cuenta como off.
func statusColumn(all []storage.StaffMember, want domain.Status, emoji string) string {
	var b strings.Builder
	for _, m := range all {
		st := domain.Status(m.Status)
		if !domain.ValidStatus(m.Status) {
			st = domain.StatusOff
		}
		if st != want {
			continue
		}
		if m.DisplayName == nil || domain.IsPlaceholderName(*m.DisplayName) {
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", emoji, strings.TrimSpace(*m.DisplayName))
	}
	if b.Len() == 0 {
		return "—"
	}
	return strings.TrimRight(b.String(), "\n")
}
