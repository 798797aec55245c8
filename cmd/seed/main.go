package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/feedtamer/config"
	"github.com/d60-Lab/feedtamer/internal/model"
	"github.com/d60-Lab/feedtamer/pkg/database"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

// 本地演示数据：一个用户 + 每平台若干账号 + 批量内容
func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	must(0, db.AutoMigrate(&model.User{}, &model.Account{}, &model.Content{}, &model.UserInteraction{}))

	USERS := 1
	ACCOUNTS := 2 // per platform
	POSTS := 50   // per account
	if s := os.Getenv("USERS"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { USERS = v } }
	if s := os.Getenv("ACCOUNTS"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { ACCOUNTS = v } }
	if s := os.Getenv("POSTS"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { POSTS = v } }

	hashed := must(bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost))
	now := time.Now()

	for u := 0; u < USERS; u++ {
		user := model.User{
			ID:       uuid.New().String(),
			Email:    fmt.Sprintf("demo%d@example.com", u),
			Password: string(hashed),
			Name:     fmt.Sprintf("Demo User %d", u),
			Active:   true,
		}
		must(0, db.Create(&user).Error)

		for _, platform := range model.Platforms {
			for a := 0; a < ACCOUNTS; a++ {
				account := model.Account{
					ID:        uuid.New().String(),
					UserID:    user.ID,
					Platform:  platform,
					AccountID: fmt.Sprintf("%s-remote-%d-%d", platform, u, a),
					Username:  fmt.Sprintf("%s_creator_%d", platform, a),
					IsActive:  true,
					NotificationSettings: model.NotificationSettings{Enabled: true, Frequency: "all"},
					LastUpdated: now,
				}
				must(0, db.Create(&account).Error)

				contents := make([]model.Content, 0, POSTS)
				for p := 0; p < POSTS; p++ {
					contents = append(contents, model.Content{
						ID:          uuid.New().String(),
						AccountID:   account.ID,
						Platform:    platform,
						ContentID:   fmt.Sprintf("%s-%s-%d", platform, account.AccountID, p),
						ContentType: model.ContentTypePost,
						Text:        fmt.Sprintf("demo post %d from %s", p, account.Username),
						PublishedAt: now.Add(-time.Duration(rand.Intn(72)) * time.Hour),
						RetrievedAt: now,
					})
				}
				must(0, db.CreateInBatches(&contents, 500).Error)
			}
		}
		fmt.Printf("seeded user %s (%s / password123)\n", user.ID, user.Email)
	}
}
