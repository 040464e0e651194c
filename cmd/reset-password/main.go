// Command reset-password sets a new password for an existing account.
package main

import (
	"flag"
	"fmt"

	"microsite-shop/internal/config"
	"microsite-shop/internal/logger"
	"microsite-shop/internal/model"
	"microsite-shop/internal/repository"
	"microsite-shop/pkg/database"

	"github.com/sirupsen/logrus"
)

func main() {
	email := flag.String("email", "", "account email (required)")
	password := flag.String("password", "", "new password, at least 6 characters (required)")
	promote := flag.Bool("admin", false, "also grant the admin role")
	flag.Parse()

	if *email == "" || len(*password) < 6 {
		flag.Usage()
		logrus.Fatal("email and a password of at least 6 characters are required")
	}

	// 1. Load Env
	cfg, _, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log, err := logger.Init(cfg.Log)
	if err != nil {
		logrus.Fatalf("logger: %v", err)
	}

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.DSN(), log)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}

	// 3. Reset
	user, err := resetPassword(repository.NewUserRepo(db), *email, *password, *promote)
	if err != nil {
		log.WithError(err).Fatal("Password reset failed")
	}

	log.WithField("email", user.Email).Info("Password has been reset")
}

// resetPassword looks the account up by its stored email form, rehashes the
// password and optionally promotes it to admin.
func resetPassword(users repository.UserRepository, email, password string, promote bool) (*model.User, error) {
	email = model.NormalizeEmail(email)
	user, err := users.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("user %s not found in database: %w", email, err)
	}

	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := users.UpdatePassword(user.ID, user.Password); err != nil {
		return nil, fmt.Errorf("update password: %w", err)
	}
	if promote && !user.IsAdmin() {
		if err := users.UpdateRole(user.ID, model.RoleAdmin); err != nil {
			return nil, fmt.Errorf("update role: %w", err)
		}
		user.Role = model.RoleAdmin
	}
	return user, nil
}
