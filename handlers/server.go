package handlers

import (
	"net/http"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/ga-dictionary/api-server-go/idp"
	"github.com/ga-dictionary/api-server-go/idp/asgardeo"
	"github.com/ga-dictionary/api-server-go/middleware"
	"github.com/ga-dictionary/api-server-go/services"
)

// Handler holds the services behind the API routes
type Handler struct {
	wordService         *services.WordService
	contributionService *services.ContributionService
	flagService         *services.FlagService
	userService         *services.UserService
	phonemeClient       services.PhonemeClient
}

// NewHandler wires the services from environment configuration
func NewHandler(db *gorm.DB) *Handler {
	var userManager idp.UserManager
	if baseURL := os.Getenv("IDP_BASE_URL"); baseURL != "" {
		var scopes []string
		if scopesEnv := os.Getenv("IDP_SCOPES"); scopesEnv != "" {
			scopes = strings.Fields(scopesEnv)
		}
		userManager = asgardeo.NewClient(
			baseURL,
			os.Getenv("IDP_CLIENT_ID"),
			os.Getenv("IDP_CLIENT_SECRET"),
			scopes,
		)
	}

	var phonemeClient services.PhonemeClient
	if phonemeURL := os.Getenv("PHONEME_SERVICE_URL"); phonemeURL != "" {
		phonemeClient = services.NewPhonemeService(phonemeURL, os.Getenv("PHONEME_SERVICE_API_KEY"))
	}

	return &Handler{
		wordService:         services.NewWordService(db),
		contributionService: services.NewContributionService(db),
		flagService:         services.NewFlagService(db),
		userService:         services.NewUserService(db, userManager),
		phonemeClient:       phonemeClient,
	}
}

// UserService exposes the user service for principal resolution wiring
func (h *Handler) UserService() *services.UserService {
	return h.userService
}

// SetupRoutes configures all API routes
func (h *Handler) SetupRoutes(mux *http.ServeMux) {
	// Public dictionary surface
	mux.Handle("/api/dictionary/words", middleware.PanicRecovery(http.HandlerFunc(h.handleWords)))
	mux.Handle("/api/dictionary/words/", middleware.PanicRecovery(http.HandlerFunc(h.handleWords)))
	mux.Handle("/api/dictionary/phoneme-suggestions", middleware.PanicRecovery(http.HandlerFunc(h.handlePhonemeSuggestions)))

	// Contribution routes
	mux.Handle("/api/v1/contributions", middleware.PanicRecovery(http.HandlerFunc(h.handleContributions)))
	mux.Handle("/api/v1/contributions/", middleware.PanicRecovery(http.HandlerFunc(h.handleContributions)))

	// Flag routes
	mux.Handle("/api/v1/flags", middleware.PanicRecovery(http.HandlerFunc(h.handleFlags)))
	mux.Handle("/api/v1/flags/", middleware.PanicRecovery(http.HandlerFunc(h.handleFlags)))

	// User routes
	mux.Handle("/api/v1/users", middleware.PanicRecovery(http.HandlerFunc(h.handleUsers)))
	mux.Handle("/api/v1/users/", middleware.PanicRecovery(http.HandlerFunc(h.handleUsers)))
}
