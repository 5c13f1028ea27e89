// Package sse streams ranking and rating changes to a user's connected clients
// so other open sessions can refresh without polling.
package sse

import (
	"time"

	"github.com/platelistapp/platelist-server/internal/domain"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventRankingReordered is sent after a move has been applied.
	EventRankingReordered EventType = "ranking.reordered"
	// EventRatingUpdated is sent when a visit is logged or re-rated.
	EventRatingUpdated EventType = "ranking.rating_updated"
	// EventTasteUpdated is sent when the taste questionnaire is saved.
	EventTasteUpdated EventType = "taste.updated"
	// EventHeartbeat keeps idle connections open.
	EventHeartbeat EventType = "heartbeat"
)

// Event is one message on the stream. UserID scopes delivery and is not serialized.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`
	UserID    string    `json:"-"`
}

// RankingReorderedData is the payload of EventRankingReordered.
type RankingReorderedData struct {
	PlanID         string              `json:"plan_id"`
	RankUpdates    []domain.RankUpdate `json:"rank_updates"`
	RatingBound    *domain.RatingBound `json:"rating_bound,omitempty"`
	RatingConflict bool                `json:"rating_conflict"`
}

// RatingUpdatedData is the payload of EventRatingUpdated.
type RatingUpdatedData struct {
	Rating *domain.Rating `json:"rating"`
}

// TasteUpdatedData is the payload of EventTasteUpdated.
type TasteUpdatedData struct {
	Profile *domain.TasteProfile `json:"profile"`
}

// NewRankingReorderedEvent builds the event for an applied plan.
func NewRankingReorderedEvent(userID string, plan *domain.ReorderPlan, conflict bool) Event {
	data := RankingReorderedData{
		PlanID:         plan.ID,
		RankUpdates:    plan.RankUpdates,
		RatingConflict: conflict,
	}
	if len(plan.RatingBounds) > 0 {
		b := plan.RatingBounds[0]
		data.RatingBound = &b
	}
	return Event{Type: EventRankingReordered, UserID: userID, Timestamp: time.Now(), Data: data}
}

// NewRatingUpdatedEvent builds the event for a logged or edited rating.
func NewRatingUpdatedEvent(rating *domain.Rating) Event {
	return Event{
		Type:      EventRatingUpdated,
		UserID:    rating.UserID,
		Timestamp: time.Now(),
		Data:      RatingUpdatedData{Rating: rating},
	}
}

// NewTasteUpdatedEvent builds the event for a saved taste profile.
func NewTasteUpdatedEvent(profile *domain.TasteProfile) Event {
	return Event{
		Type:      EventTasteUpdated,
		UserID:    profile.UserID,
		Timestamp: time.Now(),
		Data:      TasteUpdatedData{Profile: profile},
	}
}

// NewHeartbeatEvent creates a keepalive event.
func NewHeartbeatEvent() Event {
	return Event{Type: EventHeartbeat, Timestamp: time.Now(), Data: map[string]any{}}
}
