package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"profilehub/internal/auth"
	"profilehub/internal/config"
	"profilehub/internal/db"
	apperrors "profilehub/internal/errors"
	"profilehub/internal/logging"
	"profilehub/internal/service"
)

// seedUser is one entry of the seed file.
type seedUser struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	City         string `json:"city"`
	MobileNumber string `json:"mobileNumber"`
	Password     string `json:"password"`
}

type seedResult struct {
	created int
	skipped int
}

func main() {
	file := pflag.StringP("file", "f", "seed/users.json", "path to a JSON array of users")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	users, err := readSeedFile(*file)
	if err != nil {
		logger.Fatalf("read seed file: %v", err)
	}
	logger.Infof("loaded %d users from %s", len(users), *file)

	repo, closeRepo, err := db.OpenUserRepository(ctx, cfg)
	if err != nil {
		logger.Fatalf("setup user store: %v", err)
	}
	defer closeRepo()

	// Seed users never carry a picture, so no media service is needed.
	authService := service.NewAuthService(
		repo,
		auth.NewBcryptHasher(cfg.BcryptCost),
		auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL),
		nil,
	)

	res, err := seed(ctx, authService, users, logger)
	if err != nil {
		logger.Fatalf("seed users: %v", err)
	}
	logger.WithFields(logrus.Fields{
		"created": res.created,
		"skipped": res.skipped,
	}).Info("seeding completed")
}

func readSeedFile(path string) ([]seedUser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeSeedUsers(f)
}

func decodeSeedUsers(r io.Reader) ([]seedUser, error) {
	var users []seedUser
	if err := json.NewDecoder(r).Decode(&users); err != nil {
		return nil, fmt.Errorf("decode seed users: %w", err)
	}
	return users, nil
}

// seed signs every user up. Existing and invalid entries are skipped; any
// other failure aborts the run.
func seed(ctx context.Context, svc service.AuthService, users []seedUser, log logrus.FieldLogger) (seedResult, error) {
	var res seedResult
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		_, err := svc.Signup(ctx, service.SignupInput{
			Username:     u.Username,
			Email:        u.Email,
			City:         u.City,
			MobileNumber: u.MobileNumber,
			Password:     u.Password,
		})
		switch {
		case err == nil:
			res.created++
		case errors.Is(err, apperrors.ErrDuplicateUser):
			log.Infof("skipping %q: already exists", u.Username)
			res.skipped++
		case errors.Is(err, apperrors.ErrValidation):
			log.Warnf("skipping %q: %v", u.Username, err)
			res.skipped++
		default:
			return res, fmt.Errorf("signup %q: %w", u.Username, err)
		}
	}
	return res, nil
}
