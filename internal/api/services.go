package api

import (
	"github.com/platelistapp/platelist-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Restaurant     *service.RestaurantService
	Ranking        *service.RankingService
	Taste          *service.TasteService
	Recommendation *service.RecommendationService
	Search         *service.SearchService // Optional; search routes return 503 without it
}
