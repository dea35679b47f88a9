package travel_plan_fx

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"travelplan/internal/ai"
	"travelplan/internal/repositories"
	"travelplan/internal/services"
)

var Module = fx.Provide(provideTravelPlanRepo, provideTravelPlanService)

func provideTravelPlanRepo(db *gorm.DB) repositories.TravelPlanRepositoryInterface {
	return repositories.NewTravelPlanRepository(db)
}

func provideTravelPlanService(
	repo repositories.TravelPlanRepositoryInterface,
	generator ai.PlanGeneratorInterface,
	log zerolog.Logger,
) services.TravelPlanServiceInterface {
	return services.NewTravelPlanService(repo, generator, log)
}
