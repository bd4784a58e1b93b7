//go:build ignore

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/hugh/planit/internal/apperr"
	"github.com/hugh/planit/internal/auth"
	"github.com/hugh/planit/internal/database"
	"github.com/hugh/planit/internal/database/models"
	"github.com/hugh/planit/internal/teams"
	"github.com/hugh/planit/pkg/clock"
	"github.com/hugh/planit/pkg/config"
	"github.com/hugh/planit/pkg/util"
	"github.com/joho/godotenv"
)

// Seeds two demo accounts and a team with one request-mode meeting.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env, "planit-seed")

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	ctx := context.Background()
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry(), cfg.JWT.RememberMeExpiry())
	authService := auth.NewService(db, jwtService, nil)

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "planit123"
	}

	var users []*models.User
	for _, name := range []string{"alice", "bob"} {
		email := name + "@example.com"
		resp, err := authService.Register(ctx, auth.RegisterInput{
			Username: name,
			Email:    email,
			Password: password,
		})
		if errors.Is(err, apperr.ErrConflict) {
			fmt.Printf("Demo user already exists: %s\n", email)
			return
		}
		if err != nil {
			log.Fatalf("failed to create %s: %v", email, err)
		}
		users = append(users, resp.User)
		fmt.Printf("Created %s (id %s)\n", email, resp.User.ID)
	}

	date, _ := clock.ParseDate("2026-12-01")
	start, _ := clock.ParseTime("10:00")
	end, _ := clock.ParseTime("11:00")

	created, err := teams.NewService(db, logger).CreateTeam(ctx, users[0].ID,
		teams.TeamInput{Name: "Demo Team", Description: "Seeded by scripts/seed.go"},
		teams.MeetingInput{
			Title:         "Kickoff",
			Date:          date,
			StartTime:     &start,
			EndTime:       &end,
			Mode:          models.InvitationModeRequest,
			InviteeEmails: []string{users[1].Email},
		},
	)
	if err != nil {
		log.Fatalf("failed to create demo team: %v", err)
	}

	fmt.Printf("Created team %s with meeting %s\n", created.TeamID, created.MeetingIDs[0])
	fmt.Printf("Password for both accounts: %s\n", password)
}
