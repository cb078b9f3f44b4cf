// Command admintoken upserts a user and prints a bearer token for it. It is
// the operator's way to obtain a back-office session.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/example/mataam/internal/config"
	"github.com/example/mataam/internal/database"
	"github.com/example/mataam/internal/logging"
	"github.com/example/mataam/internal/models"
	"github.com/example/mataam/internal/store"
	"github.com/example/mataam/internal/utils"
)

func main() {
	configPath := pflag.String("config", "", "path to a YAML config file")
	openID := pflag.String("open-id", "", "identity of the user (generated when empty)")
	name := pflag.String("name", "", "display name")
	role := pflag.String("role", "", "role to assign: user or admin (empty keeps the stored role; OWNER_OPEN_ID is promoted to admin)")
	pflag.Parse()

	if err := checkRole(*role); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	logging.Configure(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg.DatabaseURL, cfg.LogLevel)
	if err != nil {
		logrus.WithError(err).Fatal("connect database")
	}

	if *openID == "" {
		*openID = uuid.NewString()
	}

	st := store.New(db)
	user := models.User{OpenID: *openID, Name: *name, LoginMethod: "admintoken", Role: *role}
	if err := st.UpsertUser(context.Background(), user, cfg.OwnerOpenID); err != nil {
		logrus.WithError(err).Fatal("upsert user")
	}

	token, err := utils.GenerateToken(cfg.JWTSecret, *openID, cfg.TokenExpires)
	if err != nil {
		logrus.WithError(err).Fatal("generate token")
	}

	fmt.Println(token)
}

func checkRole(role string) error {
	switch role {
	case "", models.RoleUser, models.RoleAdmin:
		return nil
	}
	return fmt.Errorf("unknown role %q", role)
}
