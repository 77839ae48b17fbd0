package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	discordrouter "github.com/jose-valero/staff-attendance-bot/internal/adapters/discord"
	"github.com/jose-valero/staff-attendance-bot/internal/app/service"
	"github.com/jose-valero/staff-attendance-bot/internal/infra/config"
	"github.com/jose-valero/staff-attendance-bot/internal/infra/storage"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const panelInterval = 30 * time.Second

func main() {
	_ = godotenv.Load()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()

	// DB
	db, err := storage.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := storage.Migrate(db); err != nil {
		log.Fatal("migrate:", err)
	}
	log.Println("✅ DB lista y migrada")

	// Repos
	settingsRepo := storage.NewSettingsRepo(db)
	staffRepo := storage.NewStaffRepo(db)
	stageRepo := storage.NewStageRepo(db)
	logsRepo := storage.NewMessageLogRepo(db)

	// Services
	settingsSvc := service.NewSettingsService(settingsRepo)
	staffSvc := service.NewStaffService(staffRepo, logsRepo)
	stageSvc := service.NewStageService(stageRepo, staffSvc)

	// Discord session
	auth := cfg.DiscordToken
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(auth)), "bot ") {
		auth = "Bot " + strings.TrimSpace(auth)
	}
	s, err := discordgo.New(auth)
	if err != nil {
		log.Fatal(err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsGuildMembers
	if err := s.Open(); err != nil {
		log.Fatal(err)
	}
	defer s.Close()
	log.Printf("✅ Conectado como %s (%s)", s.State.User.Username, s.State.User.ID)

	// Router
	r := discordrouter.NewRouter(
		s,
		cfg.DiscordGuild,
		cfg.PanelLogoURL,
		settingsSvc,
		staffSvc,
		stageSvc,
		cfg.AdminRoleIDs,
	)
	if err := r.Register(); err != nil {
		log.Fatalf("registrando comandos: %v", err)
	}
	r.Handlers()
	log.Printf("✅ comandos registrados en guild %s", cfg.DiscordGuild)

	// Panel: publicación inicial + refresh periódico
	r.RefreshPanel()
	go func() {
		t := time.NewTicker(panelInterval)
		defer t.Stop()
		for range t.C {
			r.RefreshPanel()
		}
	}()

	// Esperar señal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-stop
}
