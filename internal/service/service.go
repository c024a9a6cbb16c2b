package service

import (
	miniolib "github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"swapr-backend/internal/config"
	"swapr-backend/internal/repository"
	"swapr-backend/internal/service/auth"
	"swapr-backend/internal/service/email"
	"swapr-backend/internal/service/media"
	"swapr-backend/internal/service/notification"
	"swapr-backend/internal/service/review"
	"swapr-backend/internal/service/swap"
	"swapr-backend/internal/service/user"
)

// Services bundles every application service behind one constructor so main
// wires dependencies in a single place.
type Services struct {
	Auth         auth.Service
	User         user.Service
	Swap         swap.Service
	Review       review.Service
	Notification notification.Service
	Media        media.Service
	Email        email.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, minioClient *miniolib.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	notifService := notification.NewService(repos.Notification, repos.User, redisClient)

	return &Services{
		Auth:         auth.NewService(repos.User, repos.Session, emailService, cfg),
		User:         user.NewService(repos.User, redisClient),
		Swap:         swap.NewService(repos.Swap, repos.User, notifService, emailService),
		Review:       review.NewService(repos.Review, repos.Swap, repos.User, notifService, emailService),
		Notification: notifService,
		Media:        media.NewService(minioClient, cfg),
		Email:        emailService,
	}
}
