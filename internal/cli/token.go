package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abcall/clients/internal/core/service"
)

var tokenCmd = &cobra.Command{
	Use:   "token <subject>",
	Short: "Mint a development token",
	Long:  "Sign a bearer token with the configured secret, for local testing against the API",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")
		email, _ := cmd.Flags().GetString("email")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		authService := service.NewAuthService(service.AuthConfig{
			JWTSecret:    cfg.JWTSecretKey,
			JWTAlgorithm: cfg.JWTAlgorithm,
			RoleClaim:    cfg.RoleClaim,
			RequiredRole: cfg.RequiredRole,
		})

		token, err := authService.IssueToken(args[0], email, role, ttl)
		if err != nil {
			return fmt.Errorf("failed to issue token: %w", err)
		}

		fmt.Println(token)
		return nil
	},
}

var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func init() {
	tokenCmd.Flags().String("role", service.DefaultRequiredRole, "role claim value")
	tokenCmd.Flags().String("email", "", "email claim value")
	tokenCmd.Flags().Duration("ttl", time.Hour, "token lifetime")

	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(versionCmd)
}
