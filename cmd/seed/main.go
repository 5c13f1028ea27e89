// Package main seeds a Platelist database with restaurants, rated visits and
// friendships so recommendations and social signals have something to work with.
//
// Usage:
//
//	go run ./cmd/seed --data-path ~/platelist
//	go run ./cmd/seed --data-path ~/platelist --users 5 --seed 42
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/platelistapp/platelist-server/internal/config"
	"github.com/platelistapp/platelist-server/internal/logger"
	"github.com/platelistapp/platelist-server/internal/search"
	"github.com/platelistapp/platelist-server/internal/service"
	"github.com/platelistapp/platelist-server/internal/store/sqlite"
)

type seedRestaurant struct {
	name     string
	cuisine  string
	city     string
	tier     int
	external float64
	openNow  bool
	endorsed bool
}

var catalog = []seedRestaurant{
	{"Trattoria Roma", "Italian", "Austin", 2, 4.4, true, false},
	{"Osteria Nonna", "Italian", "Austin", 3, 4.7, false, true},
	{"Pasta Bar", "Italian", "Dallas", 2, 4.1, true, false},
	{"Ramen Tatsu", "ramen", "Austin", 1, 4.6, true, true},
	{"Sushi Zen", "sushi", "Dallas", 4, 4.8, false, true},
	{"Izakaya Kon", "Japanese", "Houston", 3, 4.3, true, false},
	{"Taco Stop", "Mexican", "Austin", 1, 4.2, true, false},
	{"Cocina Verde", "Mexican", "Houston", 2, 4.0, false, false},
	{"Seoul BBQ", "Korean", "Dallas", 3, 4.5, true, false},
	{"Pho Saigon", "Vietnamese", "Houston", 1, 4.4, true, false},
	{"Le Bistro", "French", "Austin", 4, 4.6, false, true},
	{"Burger Shack", "American", "Dallas", 1, 3.9, true, false},
	{"Smoke House", "BBQ", "Austin", 2, 4.7, true, true},
	{"Bangkok Garden", "Thai", "Austin", 2, 4.3, true, false},
	{"Curry Leaf", "Indian", "Dallas", 2, 4.5, false, false},
	{"Mezze Table", "Mediterranean", "Houston", 2, 4.2, true, false},
}

func main() {
	dataPath := flag.String("data-path", os.Getenv("DATA_PATH"), "Directory holding the Platelist database and search index")
	users := flag.Int("users", 4, "Number of users to create ratings for")
	seed := flag.Uint64("seed", 1, "Random seed for reproducible ratings")
	flag.Parse()

	log := logger.New(logger.Config{Level: logger.ParseLevel("info")})

	if *dataPath == "" {
		log.Fatal("data path is required (--data-path or DATA_PATH)")
	}
	storage := config.StorageConfig{DataPath: *dataPath}
	if err := os.MkdirAll(storage.SearchPath(), 0o750); err != nil {
		log.Fatal("Failed to create data directory", "error", err)
	}

	st, err := sqlite.Open(storage.DatabasePath(), log.Logger)
	if err != nil {
		log.Fatal("Failed to open store", "error", err)
	}
	defer st.Close()

	index, err := search.NewSearchIndex(search.Options{DataPath: storage.SearchPath(), Logger: log.Logger})
	if err != nil {
		log.Fatal("Failed to open search index", "error", err)
	}
	defer index.Close()
	st.SetSearchIndexer(index)

	ctx := context.Background()
	restaurants := service.NewRestaurantService(st, log.Logger)
	ranking := service.NewRankingService(st, service.NewNoopEmitter(), nil, log.Logger)

	ids := make([]string, 0, len(catalog))
	for _, r := range catalog {
		external := r.external
		created, err := restaurants.Create(ctx, service.CreateRestaurantInput{
			Name:           r.name,
			Cuisine:        r.cuisine,
			City:           r.city,
			PriceTier:      r.tier,
			ExternalRating: &external,
			IsOpenNow:      r.openNow,
			ExpertEndorsed: r.endorsed,
		})
		if err != nil {
			log.Fatal("Failed to create restaurant", "name", r.name, "error", err)
		}
		ids = append(ids, created.ID)
	}
	log.Info("Created restaurants", "count", len(ids))

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	userIDs := make([]string, *users)
	for u := range userIDs {
		userIDs[u] = fmt.Sprintf("user-%d", u+1)
		ratings, err := seedRatings(ctx, ranking, rng, userIDs[u], ids)
		if err != nil {
			log.Fatal("Failed to seed ratings", "user_id", userIDs[u], "error", err)
		}
		log.Info("Seeded ratings", "user_id", userIDs[u], "ratings", ratings)
	}

	// Everyone is friends with the next user, which gives each candidate a few social signals.
	friendships := 0
	for u := range userIDs {
		if len(userIDs) < 2 {
			break
		}
		friend := userIDs[(u+1)%len(userIDs)]
		if err := st.AddFriendship(ctx, userIDs[u], friend); err != nil {
			log.Fatal("Failed to add friendship", "user_id", userIDs[u], "error", err)
		}
		friendships++
	}

	log.Info("Seeding complete", "restaurants", len(ids), "users", len(userIDs), "friendships", friendships)
}

// seedRatings logs visits to a random half of the catalog. Ratings land on the
// 0.1 grid between 5.0 and 10.0; roughly one visit in eight is left unrated.
func seedRatings(ctx context.Context, ranking *service.RankingService, rng *rand.Rand, userID string, ids []string) (int, error) {
	rated := 0
	for _, i := range rng.Perm(len(ids))[:len(ids)/2] {
		in := service.RateInput{}
		if rng.IntN(8) != 0 {
			value := float64(50+rng.IntN(51)) / 10
			in.Rating = &value
			rated++
		}
		if _, err := ranking.RateRestaurant(ctx, userID, ids[i], in); err != nil {
			return rated, err
		}
	}
	return rated, nil
}
