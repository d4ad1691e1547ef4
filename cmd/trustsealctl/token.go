package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trustseal/trustseal-go/pkg/config"
	"github.com/trustseal/trustseal-go/pkg/db"
	"github.com/trustseal/trustseal-go/pkg/server/middleware"
	storegorm "github.com/trustseal/trustseal-go/pkg/server/store/gorm"
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token USERNAME",
	Short: "Mint a bearer token for a user",
	Long: `Mint a bearer token for a user.

The token carries the user's role and is signed with TRUSTSEAL_JWT_SECRET.
Token lifetime comes from the issuer_token_ttl_seconds configuration attribute.

Example:
  trustsealctl token registrar@university.edu`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		jwtSecret, ok := os.LookupEnv("TRUSTSEAL_JWT_SECRET")
		if !ok || jwtSecret == "" {
			fmt.Fprintln(os.Stderr, "TRUSTSEAL_JWT_SECRET environment variable is required")
			os.Exit(1)
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
			os.Exit(1)
		}

		gormDB, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to DB: %v\n", err)
			os.Exit(1)
		}

		user, err := storegorm.NewUsersStore(gormDB).FetchUserByUsername(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to fetch user %q: %v\n", args[0], err)
			os.Exit(1)
		}

		authenticator := middleware.NewJWTAuthenticator([]byte(jwtSecret))
		token, err := authenticator.MintToken(user.ID, user.Username, user.Role, cfg.IssuerTokenTTL())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to mint token: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(token)
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}
