package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trustseal/trustseal-go/pkg/db"
	"github.com/trustseal/trustseal-go/pkg/model"
	storegorm "github.com/trustseal/trustseal-go/pkg/server/store/gorm"
)

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create USERNAME",
	Short: "Create a user record",
	Long: `Create a user record.

Issuer accounts created here can mint bearer tokens with 'trustsealctl token'
and issue credentials through the API. Student records are normally created
automatically during issuance; creating them here is only needed for seeding.

Example:
  trustsealctl user create registrar@university.edu --role ISSUER_ADMIN \
    --name "University Registrar" --institution "Example University"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		role, _ := cmd.Flags().GetString("role")
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		institution, _ := cmd.Flags().GetString("institution")
		studentID, _ := cmd.Flags().GetString("student-id")

		if email == "" {
			email = args[0]
		}

		user := &model.User{
			Username:    args[0],
			Email:       email,
			FullName:    name,
			Role:        model.Role(role),
			Institution: institution,
			StudentID:   studentID,
		}

		gormDB, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to DB: %v\n", err)
			os.Exit(1)
		}

		if err := storegorm.NewUsersStore(gormDB).CreateUser(user); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create user: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Created user '%s' with role %s\n", user.Username, user.Role)
		fmt.Printf("User ID: %d\n", user.ID)
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().StringP("role", "r", string(model.RoleIssuerAdmin), "user role (ISSUER_ADMIN, VERIFIER or STUDENT)")
	userCreateCmd.Flags().StringP("name", "n", "", "full name")
	userCreateCmd.Flags().StringP("email", "e", "", "email address (default: username)")
	userCreateCmd.Flags().StringP("institution", "i", "", "institution")
	userCreateCmd.Flags().String("student-id", "", "external student identifier (students only)")
	_ = userCreateCmd.MarkFlagRequired("name")
}
