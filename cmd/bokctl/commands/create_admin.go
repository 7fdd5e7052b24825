package commands

import (
	"fmt"
	"strings"
	"syscall"

	"bokloftet/internal/auth"
	"bokloftet/internal/entity"
	"bokloftet/internal/store"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin EMAIL",
	Short: "Create an administrator account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := strings.TrimSpace(args[0])

		firstName, _ := cmd.Flags().GetString("first-name")
		lastName, _ := cmd.Flags().GetString("last-name")

		password, err := readPassword("Password: ")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		if err := auth.CheckPasswordFormat(password); err != nil {
			return err
		}
		confirm, err := readPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		pool, err := openPool(ctx)
		if err != nil {
			return fmt.Errorf("cannot connect to database: %w", err)
		}
		defer pool.Close()

		user := &entity.User{
			FirstName: firstName,
			LastName:  lastName,
			Email:     email,
			Password:  hash,
			Role:      entity.RoleAdmin,
		}
		if err := store.NewUserPG(pool).Create(ctx, user); err != nil {
			return err
		}

		fmt.Printf("Created admin %s (%s)\n", user.Email, user.ID)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().String("first-name", "Admin", "First name of the new admin")
	createAdminCmd.Flags().String("last-name", "", "Last name of the new admin")
}

// readPassword reads a password from the terminal without echoing it.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(bytePassword)), nil
}
