// Command seed populates a development database with fake channels, videos,
// comments and subscriptions.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"videotube/internal/config"
	"videotube/internal/database"
	"videotube/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	users := flag.Int("users", 10, "number of users to create")
	videosPerUser := flag.Int("videos", 5, "videos per user")
	commentsPerVideo := flag.Int("comments", 3, "comments per video")
	seed := flag.Int64("seed", 0, "optional RNG seed for reproducible data")
	flag.Parse()

	if *seed != 0 {
		gofakeit.Seed(*seed)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := run(db, *users, *videosPerUser, *commentsPerVideo); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

func run(db *gorm.DB, userCount, videosPerUser, commentsPerVideo int) error {
	// One shared hash keeps seeding fast; every seeded account logs in with
	// the same well-known password.
	hash, err := bcrypt.GenerateFromPassword([]byte("Seed-Passw0rd!"), bcrypt.MinCost)
	if err != nil {
		return err
	}

	seeded := make([]*models.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		user := &models.User{
			Username:   strings.ToLower(gofakeit.Username()),
			Email:      strings.ToLower(gofakeit.Email()),
			FullName:   gofakeit.Name(),
			Password:   string(hash),
			Avatar:     gofakeit.ImageURL(200, 200),
			CoverImage: gofakeit.ImageURL(1280, 320),
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		seeded = append(seeded, user)
	}

	var videos []*models.Video
	for _, user := range seeded {
		for i := 0; i < videosPerUser; i++ {
			video := &models.Video{
				OwnerID:     user.ID,
				Title:       gofakeit.Sentence(5),
				Description: gofakeit.Paragraph(1, 3, 12, " "),
				VideoFile:   gofakeit.URL(),
				Thumbnail:   gofakeit.ImageURL(640, 360),
				Duration:    gofakeit.Float64Range(30, 1800),
				Views:       int64(gofakeit.Number(0, 100000)),
				IsPublished: gofakeit.Bool() || i == 0,
			}
			if err := db.Create(video).Error; err != nil {
				return fmt.Errorf("create video: %w", err)
			}
			videos = append(videos, video)
		}
	}

	for _, video := range videos {
		for i := 0; i < commentsPerVideo; i++ {
			commenter := seeded[gofakeit.Number(0, len(seeded)-1)]
			comment := &models.Comment{
				VideoID: video.ID,
				OwnerID: commenter.ID,
				Content: gofakeit.Sentence(10),
			}
			if err := db.Create(comment).Error; err != nil {
				return fmt.Errorf("create comment: %w", err)
			}
		}
	}

	// Random subscription graph; the unique index deduplicates repeats.
	for _, subscriber := range seeded {
		for i := 0; i < 3; i++ {
			channel := seeded[gofakeit.Number(0, len(seeded)-1)]
			if channel.ID == subscriber.ID {
				continue
			}
			sub := &models.Subscription{
				SubscriberID: subscriber.ID,
				ChannelID:    channel.ID,
			}
			if err := db.Where(sub).FirstOrCreate(sub).Error; err != nil {
				return fmt.Errorf("create subscription: %w", err)
			}
		}
	}

	log.Printf("Seeded %d users, %d videos", len(seeded), len(videos))
	return nil
}
