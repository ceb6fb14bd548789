// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/MHBDPro/rage-backend/internal/auth"
	"github.com/MHBDPro/rage-backend/internal/cache"
	"github.com/MHBDPro/rage-backend/internal/database"
	"github.com/MHBDPro/rage-backend/internal/handlers"
	"github.com/MHBDPro/rage-backend/internal/leaderboard"
	"github.com/MHBDPro/rage-backend/internal/live"
	"github.com/MHBDPro/rage-backend/internal/middleware"
	"github.com/MHBDPro/rage-backend/internal/scrims"
	"github.com/MHBDPro/rage-backend/internal/textfilter"
)

func main() {
	auth.Init()
	database.ConnectDB()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	if err := cache.ConnectRedis(); err != nil {
		// The platform works without the invalidation channel; pages just go
		// stale until their revalidation window.
		logger.Warnf("redis unavailable, cache invalidation disabled: %v", err)
		cache.Rdb = nil
	}

	store := database.NewStore(database.DB)
	if err := store.EnsureDefaultAdmin(context.Background()); err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}

	hub := live.NewHub()
	scrimSvc := scrims.NewService(store, textfilter.New(), &handlers.SlotNotifier{Hub: hub})
	boardSvc := leaderboard.NewService(store)

	mux := http.NewServeMux()

	// public endpoints
	mux.HandleFunc("GET /api/scrims", handlers.ListScrimsHandler(scrimSvc))
	mux.HandleFunc("GET /api/scrims/{slug}", handlers.GetScrimHandler(scrimSvc))
	mux.HandleFunc("POST /api/scrims/{id}/register", handlers.RegisterHandler(scrimSvc))
	mux.HandleFunc("GET /api/scrims/{slug}/live", handlers.LiveScrimHandler(logger, scrimSvc, hub))
	mux.HandleFunc("GET /api/leaderboards", handlers.ListLeaderboardsHandler(boardSvc))
	mux.HandleFunc("GET /api/leaderboards/main", handlers.GetMainLeaderboardHandler(boardSvc))
	mux.HandleFunc("GET /api/leaderboards/{slug}", handlers.GetLeaderboardHandler(boardSvc))
	mux.HandleFunc("GET /api/settings", handlers.GetSettingsHandler(store))

	// cron trigger
	mux.HandleFunc("POST /api/scrims/rollover", handlers.RolloverHandler(scrimSvc))

	// admin session
	mux.HandleFunc("POST /api/admin/login", handlers.AdminLoginHandler(store))
	mux.HandleFunc("POST /api/admin/logout", handlers.AdminLogoutHandler())

	// admin scrims
	mux.HandleFunc("POST /api/admin/scrims", handlers.AdminCreateScrimHandler(scrimSvc))
	mux.HandleFunc("PUT /api/admin/scrims/{id}", handlers.AdminUpdateScrimHandler(scrimSvc))
	mux.HandleFunc("DELETE /api/admin/scrims/{id}", handlers.AdminDeleteScrimHandler(scrimSvc))
	mux.HandleFunc("POST /api/admin/scrims/{id}/champion", handlers.AdminSetChampionHandler(scrimSvc))
	mux.HandleFunc("POST /api/admin/scrims/{id}/slots", handlers.AdminAddSlotHandler(scrimSvc))
	mux.HandleFunc("POST /api/admin/scrims/{id}/lock", handlers.AdminLockSlotHandler(scrimSvc))
	mux.HandleFunc("POST /api/admin/scrims/{id}/unlock", handlers.AdminUnlockSlotHandler(scrimSvc))
	mux.HandleFunc("DELETE /api/admin/slots/{slotId}", handlers.AdminDeleteSlotHandler(scrimSvc))

	// admin daily templates
	mux.HandleFunc("GET /api/admin/templates", handlers.AdminListTemplatesHandler(scrimSvc))
	mux.HandleFunc("POST /api/admin/templates", handlers.AdminCreateTemplateHandler(scrimSvc))
	mux.HandleFunc("PUT /api/admin/templates/{id}", handlers.AdminUpdateTemplateHandler(scrimSvc))
	mux.HandleFunc("DELETE /api/admin/templates/{id}", handlers.AdminDeleteTemplateHandler(scrimSvc))

	// admin leaderboards
	mux.HandleFunc("POST /api/admin/leaderboards", handlers.AdminCreateLeaderboardHandler(boardSvc))
	mux.HandleFunc("PUT /api/admin/leaderboards/{id}", handlers.AdminUpdateLeaderboardHandler(boardSvc))
	mux.HandleFunc("DELETE /api/admin/leaderboards/{id}", handlers.AdminDeleteLeaderboardHandler(boardSvc))
	mux.HandleFunc("POST /api/admin/leaderboards/{id}/main", handlers.AdminSetMainHandler(boardSvc))
	mux.HandleFunc("POST /api/admin/leaderboards/{id}/entries", handlers.AdminAddEntryHandler(boardSvc))
	mux.HandleFunc("PUT /api/admin/entries/{entryId}", handlers.AdminUpdateEntryHandler(boardSvc))
	mux.HandleFunc("DELETE /api/admin/entries/{entryId}", handlers.AdminDeleteEntryHandler(boardSvc))

	// admin settings
	mux.HandleFunc("POST /api/admin/settings", handlers.AdminUpdateSettingsHandler(store))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, middleware.LogMiddleware(logger)(mux)); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
