package main

import (
	"fmt"
	"time"

	"dealflow_backend/internal/auth"
	"dealflow_backend/internal/models"

	"github.com/spf13/cobra"
)

var (
	tokenUserType string
	tokenTTL      time.Duration
)

// tokenCmd выпускает токен для локальной разработки; в проде токены выдает identity-сервис
var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Mint a development bearer token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userType := models.UserType(tokenUserType)
		if !userType.Valid() {
			return fmt.Errorf("unknown user type %q", tokenUserType)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ttl := tokenTTL
		if ttl == 0 {
			ttl = time.Duration(cfg.JWT.TTL) * time.Minute
		}

		tokens, err := auth.NewTokenManager(cfg.JWT.Secret, ttl)
		if err != nil {
			return err
		}
		token, err := tokens.Generate(args[0], userType)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenUserType, "type", "t", string(models.UserTypeStartup), "user type: startup or investor")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (default from config)")
	rootCmd.AddCommand(tokenCmd)
}
