package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"travelplan/internal/ai"
	"travelplan/internal/models/db_models"
	"travelplan/internal/models/request_models"
	"travelplan/internal/models/response_models"
	"travelplan/internal/normalizer"
	"travelplan/internal/repositories"
	"travelplan/pkg/metrics"
	"travelplan/pkg/utils"
)

type TravelPlanServiceInterface interface {
	CreateTravelPlan(ctx context.Context, userID string, req request_models.CreateTravelPlanRequest) (*response_models.TravelPlanResponse, error)
	CreateTravelPlanStream(ctx context.Context, userID string, req request_models.CreateTravelPlanRequest, observer ai.StreamObserver) (*response_models.TravelPlanResponse, error)
	GetUserTravelPlans(ctx context.Context, userID string) (*response_models.TravelPlanListResponse, error)
	GetTravelPlanByID(ctx context.Context, id, userID string) (*response_models.TravelPlanResponse, error)
	UpdateTravelPlan(ctx context.Context, id, userID string, req request_models.UpdateTravelPlanRequest) (*response_models.TravelPlanResponse, error)
	DeleteTravelPlan(ctx context.Context, id, userID string) error
}

type TravelPlanService struct {
	repo      repositories.TravelPlanRepositoryInterface
	generator ai.PlanGeneratorInterface
	logger    zerolog.Logger
}

func NewTravelPlanService(
	repo repositories.TravelPlanRepositoryInterface,
	generator ai.PlanGeneratorInterface,
	logger zerolog.Logger,
) TravelPlanServiceInterface {
	return &TravelPlanService{
		repo:      repo,
		generator: generator,
		logger:    logger.With().Str("component", "travel_plan_service").Logger(),
	}
}

var sdkByProvider = map[string]string{
	ai.ProviderGemini: "github.com/google/generative-ai-go",
	ai.ProviderOpenAI: "github.com/sashabaranov/go-openai",
}

func (s *TravelPlanService) CreateTravelPlan(ctx context.Context, userID string, req request_models.CreateTravelPlanRequest) (*response_models.TravelPlanResponse, error) {
	return s.create(ctx, userID, req, func(ctx context.Context, prompt ai.PlanPrompt) (*ai.Result, error) {
		return s.generator.Generate(ctx, prompt)
	})
}

func (s *TravelPlanService) CreateTravelPlanStream(ctx context.Context, userID string, req request_models.CreateTravelPlanRequest, observer ai.StreamObserver) (*response_models.TravelPlanResponse, error) {
	return s.create(ctx, userID, req, func(ctx context.Context, prompt ai.PlanPrompt) (*ai.Result, error) {
		return s.generator.GenerateStream(ctx, prompt, observer)
	})
}

func (s *TravelPlanService) create(
	ctx context.Context,
	userID string,
	req request_models.CreateTravelPlanRequest,
	generate func(context.Context, ai.PlanPrompt) (*ai.Result, error),
) (*response_models.TravelPlanResponse, error) {
	if userID == "" {
		return nil, utils.ErrUnauthenticated
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := generate(ctx, promptFor(req))
	if err != nil {
		return nil, generationError(err)
	}
	generationTime := time.Since(start)

	plan, err := buildEntity(userID, req, result, generationTime)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("%w: create travel plan: %w", utils.ErrDatabaseError, err)
	}

	metrics.RecordPlanCreated(string(plan.Type))
	s.logger.Info().
		Str("plan_id", plan.ID.String()).
		Str("type", string(plan.Type)).
		Str("model", result.Model).
		Int64("generation_ms", generationTime.Milliseconds()).
		Msg("travel plan created")

	return toResponse(plan)
}

func (s *TravelPlanService) GetUserTravelPlans(ctx context.Context, userID string) (*response_models.TravelPlanListResponse, error) {
	if userID == "" {
		return nil, utils.ErrUnauthenticated
	}
	plans, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list travel plans: %w", utils.ErrDatabaseError, err)
	}

	summaries := make([]response_models.TravelPlanSummary, 0, len(plans))
	for _, p := range plans {
		summaries = append(summaries, response_models.TravelPlanSummary{
			ID:          p.ID.String(),
			Destination: p.Destination,
			Type:        string(p.Type),
			BudgetLevel: string(p.BudgetLevel),
			Days:        p.Days,
			Budget:      p.Budget,
			CostSummary: json.RawMessage(p.CostSummary),
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}

	return &response_models.TravelPlanListResponse{
		TravelPlans: summaries,
		Total:       len(summaries),
		Page:        1,
		Limit:       len(summaries),
	}, nil
}

func (s *TravelPlanService) GetTravelPlanByID(ctx context.Context, id, userID string) (*response_models.TravelPlanResponse, error) {
	if userID == "" {
		return nil, utils.ErrUnauthenticated
	}
	planID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrPlanNotFound
	}

	plan, err := s.repo.FindByIDAndUserID(ctx, planID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: get travel plan: %w", utils.ErrDatabaseError, err)
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}
	return toResponse(plan)
}

func (s *TravelPlanService) UpdateTravelPlan(ctx context.Context, id, userID string, req request_models.UpdateTravelPlanRequest) (*response_models.TravelPlanResponse, error) {
	if userID == "" {
		return nil, utils.ErrUnauthenticated
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	planID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrPlanNotFound
	}

	if req.Days != nil {
		current, err := s.repo.FindByIDAndUserID(ctx, planID, userID)
		if err != nil {
			return nil, fmt.Errorf("%w: find travel plan: %w", utils.ErrDatabaseError, err)
		}
		if current == nil {
			return nil, utils.ErrPlanNotFound
		}
		if current.Type != db_models.TravelTypeVacation {
			return nil, utils.NewValidationError(utils.FieldViolation{Field: "days", Message: "is only allowed for VACATION plans"})
		}
	}

	plan, err := s.repo.UpdateByIDAndUserID(ctx, planID, userID, req.Changes())
	if err != nil {
		return nil, fmt.Errorf("%w: update travel plan: %w", utils.ErrDatabaseError, err)
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}
	return toResponse(plan)
}

func (s *TravelPlanService) DeleteTravelPlan(ctx context.Context, id, userID string) error {
	if userID == "" {
		return utils.ErrUnauthenticated
	}
	planID, err := uuid.Parse(id)
	if err != nil {
		return utils.ErrPlanNotFound
	}

	exists, err := s.repo.ExistsByIDAndUserID(ctx, planID, userID)
	if err != nil {
		return fmt.Errorf("%w: check travel plan: %w", utils.ErrDatabaseError, err)
	}
	if !exists {
		return utils.ErrPlanNotFound
	}

	deleted, err := s.repo.DeleteByIDAndUserID(ctx, planID, userID)
	if err != nil {
		return fmt.Errorf("%w: delete travel plan: %w", utils.ErrDatabaseError, err)
	}
	if !deleted {
		// removed between the existence check and the delete
		return utils.ErrPlanNotFound
	}
	return nil
}

func promptFor(req request_models.CreateTravelPlanRequest) ai.PlanPrompt {
	if req.Type == db_models.TravelTypeRelocation {
		return ai.RelocationPrompt(req.Destination, string(req.BudgetLevel))
	}
	return ai.VacationPrompt(req.Destination, *req.Days, string(req.BudgetLevel))
}

func generationError(err error) error {
	switch {
	case errors.Is(err, ai.ErrCancelled):
		return fmt.Errorf("%w: %w", utils.ErrCancelled, err)
	case errors.Is(err, ai.ErrUpstreamUnavailable):
		return fmt.Errorf("%w: %w", utils.ErrUpstreamUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", utils.ErrGenerationFailed, err)
	}
}

func buildEntity(userID string, req request_models.CreateTravelPlanRequest, result *ai.Result, generationTime time.Duration) (*db_models.TravelPlan, error) {
	itinerary, err := result.Plan.JSON()
	if err != nil {
		return nil, fmt.Errorf("encode itinerary: %w", err)
	}

	var costSummary datatypes.JSON
	if section, ok := result.Plan.CostSection(); ok {
		if costSummary, err = json.Marshal(section); err != nil {
			return nil, fmt.Errorf("encode cost summary: %w", err)
		}
	}

	additionalInfo, err := json.Marshal(map[string]any{
		"model":          result.Model,
		"provider":       result.Provider,
		"sdk":            sdkByProvider[result.Provider],
		"generationTime": generationTime.Milliseconds(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode additional info: %w", err)
	}

	return &db_models.TravelPlan{
		ClerkUserID:    userID,
		Destination:    req.Destination,
		Type:           req.Type,
		BudgetLevel:    req.BudgetLevel,
		Days:           req.Days,
		Budget:         req.Budget,
		Itinerary:      datatypes.JSON(itinerary),
		CostSummary:    costSummary,
		AdditionalInfo: datatypes.JSON(additionalInfo),
	}, nil
}

func toResponse(plan *db_models.TravelPlan) (*response_models.TravelPlanResponse, error) {
	data := map[string]any{}
	if len(plan.Itinerary) > 0 {
		if err := json.Unmarshal(plan.Itinerary, &data); err != nil {
			return nil, fmt.Errorf("decode itinerary of plan %s: %w", plan.ID, err)
		}
	}

	resp := &response_models.TravelPlanResponse{
		ID:          plan.ID.String(),
		Destination: plan.Destination,
		Type:        string(plan.Type),
		BudgetLevel: string(plan.BudgetLevel),
		Days:        plan.Days,
		Budget:      plan.Budget,
		Plan:        data,
		Metadata: response_models.PlanMetadata{
			GeneratedAt: plan.CreatedAt,
			UpdatedAt:   plan.UpdatedAt,
		},
	}

	if plan.Type == db_models.TravelTypeVacation && plan.Days != nil {
		if cost, ok := EstimatedTotalCost(data, *plan.Days); ok {
			resp.Metadata.EstimatedTotalCost = &cost
		}
	}

	var info struct {
		Model string `json:"model"`
	}
	if len(plan.AdditionalInfo) > 0 && json.Unmarshal(plan.AdditionalInfo, &info) == nil {
		resp.Metadata.Model = info.Model
	}
	return resp, nil
}

// EstimatedTotalCost is the midpoint of costs.totalDaily multiplied by days, rounded.
func EstimatedTotalCost(data map[string]any, days int) (float64, bool) {
	if days <= 0 {
		return 0, false
	}
	minCost, maxCost, ok := normalizer.TotalDaily(data)
	if !ok {
		return 0, false
	}
	return math.Round((minCost + maxCost) / 2 * float64(days)), true
}
