package discord

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jose-valero/staff-attendance-bot/internal/app/service"
	"github.com/jose-valero/staff-attendance-bot/internal/domain"
)

type Router struct {
	s       *discordgo.Session
	guildID string
	logoURL string

	settings *service.SettingsService
	staff    *service.StaffService
	stage    *service.StageService

	adminRoleIDs []string
	clickLimiter *userLimiter

	refreshMu    sync.Mutex
	refreshTimer *time.Timer
}

func NewRouter(
	s *discordgo.Session,
	guildID string,
	logoURL string,
	settings *service.SettingsService,
	staff *service.StaffService,
	stage *service.StageService,
	adminRoleIDs []string,
) *Router {
	return &Router{
		s:            s,
		guildID:      guildID,
		logoURL:      logoURL,
		settings:     settings,
		staff:        staff,
		stage:        stage,
		adminRoleIDs: adminRoleIDs,
		clickLimiter: newUserLimiter(1 * time.Second),
	}
}

func (r *Router) Register() error {
	appID := r.s.State.User.ID
	for _, cmd := range Commands {
		if _, err := r.s.ApplicationCommandCreate(appID, r.guildID, cmd); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) Handlers() {
	r.s.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		switch ic.Type {
		case discordgo.InteractionApplicationCommand:
			r.handleSlashCommand(s, ic)
		case discordgo.InteractionMessageComponent:
			r.handleMessageComponent(s, ic)
		}
	})
	r.s.AddHandler(r.onMessageCreate)
	r.s.AddHandler(r.onVoiceStateUpdate)
}

// MessageCreate → contador de mensajes. Solo cuenta si: no es bot,
// canal monitoreado, rol de staff (si está configurado) y status active.
func (r *Router) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("panic in messageCreate: %v", rec)
		}
	}()

	if m.Author == nil || m.Author.Bot {
		return
	}
	if m.GuildID != r.guildID {
		return
	}
	if m.Member == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()

	// lista vacía = se monitorea todo (ver DESIGN.md)
	monitored, err := r.settings.MonitoredChannels(ctx)
	if err != nil {
		log.Printf("messageCreate: monitored_channels: %v", err)
		return
	}
	if len(monitored) > 0 && !contains(monitored, m.ChannelID) {
		return
	}

	staffRole, err := r.settings.StaffRoleID(ctx)
	if err != nil {
		log.Printf("messageCreate: staff_role: %v", err)
		return
	}
	if staffRole != "" && !memberHasRole(m.Member, staffRole) {
		return
	}

	st, err := r.staff.Status(ctx, m.Author.ID)
	if err != nil {
		log.Printf("messageCreate: status de %s: %v", m.Author.ID, err)
		return
	}
	if st != domain.StatusActive {
		return
	}

	if err := r.staff.CountMessage(ctx, m.Author.ID, m.ChannelID); err != nil {
		log.Printf("messageCreate: count de %s: %v", m.Author.ID, err)
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
