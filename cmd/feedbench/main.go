package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/d60-Lab/feedtamer/config"
	"github.com/d60-Lab/feedtamer/internal/cache"
	"github.com/d60-Lab/feedtamer/internal/model"
	"github.com/d60-Lab/feedtamer/internal/repository"
	"github.com/d60-Lab/feedtamer/internal/service"
	"github.com/d60-Lab/feedtamer/pkg/database"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 { return 0 }
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 { k = 0 }
	if k >= len(xs) { k = len(xs) - 1 }
	return xs[k]
}

// feed 组装延迟基准：对已 seed 的库反复跑 AssembleFeed / FeedByPlatform
func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))

	ROUNDS := 500
	LIMIT := 20
	if s := os.Getenv("ROUNDS"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { ROUNDS = v } }
	if s := os.Getenv("LIMIT"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { LIMIT = v } }

	accountRepo := repository.NewAccountRepository(db)
	contentRepo := repository.NewContentRepository(db)
	directory := cache.NewAccountCache(accountRepo, nil, 0) // 无 redis 时直读
	feedSvc := service.NewFeedService(directory, accountRepo, contentRepo)

	var user model.User
	must(0, db.Where("active = ?", true).First(&user).Error)

	ctx := context.Background()
	unified := make([]time.Duration, 0, ROUNDS)
	grouped := make([]time.Duration, 0, ROUNDS)

	for i := 0; i < ROUNDS; i++ {
		st := time.Now()
		_ = must(feedSvc.AssembleFeed(ctx, user.ID, service.FeedOptions{Limit: LIMIT, IncludeRead: true}))
		unified = append(unified, time.Since(st))

		st = time.Now()
		_ = must(feedSvc.FeedByPlatform(ctx, user.ID, service.FeedOptions{Limit: LIMIT, IncludeRead: true}))
		grouped = append(grouped, time.Since(st))
	}

	fmt.Printf("rounds=%d limit=%d\n", ROUNDS, LIMIT)
	fmt.Printf("unified  p50=%v p95=%v p99=%v\n", pct(unified, 0.50), pct(unified, 0.95), pct(unified, 0.99))
	fmt.Printf("grouped  p50=%v p95=%v p99=%v\n", pct(grouped, 0.50), pct(grouped, 0.95), pct(grouped, 0.99))
}
