package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"time"

	"post-composer/pkg/config"
	"post-composer/pkg/database"
	"post-composer/pkg/jwt"
	"post-composer/pkg/logger"
	"post-composer/pkg/s3"
	"post-composer/services/composer/internal/entity"
	"post-composer/services/composer/internal/repo/persistent"
	"post-composer/services/composer/internal/upload"
)

func main() {
	var (
		userID     = flag.String("user", "demo-user", "user whose post list is seeded")
		postsCount = flag.Int("posts", 3, "number of posts to append")
		withImages = flag.Bool("images", false, "fetch cat images and upload them as post media")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()

	repo, closeStore, err := openPostListRepository(cfg)
	if err != nil {
		log.Error("Failed to open post store: %v", err)
		panic(err)
	}
	defer closeStore()

	var storage upload.Storage
	if *withImages {
		s3Client, err := s3.NewClient(cfg)
		if err != nil {
			log.Error("Failed to create S3 client: %v", err)
			panic(err)
		}
		storage = s3Client
	}

	ctx := context.Background()
	if err := seedPostList(ctx, repo, storage, cfg.S3UploadPrefix, *userID, *postsCount, log); err != nil {
		log.Error("Failed to seed post list: %v", err)
		panic(err)
	}

	token, err := jwt.NewService(cfg.JWTSecret).GenerateToken(*userID, "creator")
	if err != nil {
		log.Error("Failed to generate token: %v", err)
		panic(err)
	}

	log.Info("Post list seeded successfully!")
	fmt.Printf("Development token for %s:\nBearer %s\n", *userID, token)
}

func openPostListRepository(cfg *config.Config) (persistent.PostListRepository, func(), error) {
	switch cfg.PostStore {
	case config.PostStoreMongo:
		client, err := database.NewMongoClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		return persistent.NewMongoPostListRepository(client.Database(cfg.MongoDatabase)), closeFn, nil
	case config.PostStorePostgres:
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return persistent.NewPostgresPostListRepository(db), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("unknown POST_STORE %q", cfg.PostStore)
	}
}

func seedPostList(ctx context.Context, repo persistent.PostListRepository, storage upload.Storage, prefix, userID string, count int, log *logger.Logger) error {
	if err := repo.Create(ctx, userID); err != nil {
		return fmt.Errorf("failed to create post list: %w", err)
	}

	list, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to read post list: %w", err)
	}
	existing := list.Len()
	log.Info("User %s already has %d posts", userID, existing)

	var uploads upload.Factory
	if storage != nil {
		uploads = upload.NewFactory(storage, prefix, nil, nil)
	}
	httpClient := &http.Client{Timeout: 30 * time.Second}

	for i := 0; i < count; i++ {
		number := existing + 1
		title := fmt.Sprintf("Demo post #%d", number)

		var media *string
		if uploads != nil {
			result, err := uploads(catLoader{client: httpClient, userID: userID, index: number}).Upload(ctx)
			if err != nil {
				log.Warn("Skipping image for post %d: %v", number, err)
			} else {
				media = &result.Default
			}
		}

		content := fmt.Sprintf("<h2>%s</h2><p>Seeded for local development.</p>", title)
		if media != nil {
			content += fmt.Sprintf(`<figure class="image"><img src="%s"></figure>`, *media)
		}

		post := &entity.Post{
			PostNumber: number,
			Title:      title,
			Content:    content,
			Media:      media,
			CreatedAt:  time.Now(),
			UserID:     userID,
			Advert:     "",
		}

		if err := repo.AppendPost(ctx, userID, existing, post); err != nil {
			if errors.Is(err, entity.ErrPostListConflict) {
				return fmt.Errorf("post list of %s changed while seeding: %w", userID, err)
			}
			return fmt.Errorf("failed to append post %d: %w", number, err)
		}
		existing++

		log.Info("Created post: %s", title)
	}

	return nil
}

// catLoader fetches a random cat picture to use as seeded media.
type catLoader struct {
	client *http.Client
	userID string
	index  int
}

func (l catLoader) File(ctx context.Context) (*upload.PendingFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://cataas.com/cat", nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cat image: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("cataas API returned status %d", resp.StatusCode)
	}

	return &upload.PendingFile{
		Name:        fmt.Sprintf("seed_%s_%d.jpg", l.userID, l.index),
		ContentType: "image/jpeg",
		Body:        resp.Body,
	}, nil
}
