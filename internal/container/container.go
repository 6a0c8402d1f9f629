package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/gatherly/internal/models"
	"github.com/joshua-takyi/gatherly/internal/services"
	"github.com/supabase-community/supabase-go"
)

// Container holds all application dependencies
type Container struct {
	Logger     *slog.Logger
	Cloudinary *cloudinary.Cloudinary

	SupabaseClient      *supabase.Client
	UserService         *services.UserService
	EventService        *services.EventService
	RegistrationService *services.RegistrationService
	AnalyticsService    *services.AnalyticsService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cloudinary *cloudinary.Cloudinary,
	supabaseClient *supabase.Client,
	supaUrl, supaKey string,
) *Container {
	supa := models.SupabaseNewRepo(supabaseClient, supaUrl, supaKey)

	userService := services.NewUserService(supa)
	eventService := services.NewEventService(supa)
	registrationService := services.NewRegistrationService(supa, supa, logger)
	analyticsService := services.NewAnalyticsService(supa, supa, logger)

	return &Container{
		Logger:              logger,
		Cloudinary:          cloudinary,
		SupabaseClient:      supabaseClient,
		UserService:         userService,
		EventService:        eventService,
		RegistrationService: registrationService,
		AnalyticsService:    analyticsService,
	}
}
