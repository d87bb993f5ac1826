package commands

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uhudbuilders/sitecms/internal/auth"
)

const minPasswordLength = 8

func AdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage the admin account",
	}
	cmd.AddCommand(SetPasswordCmd())
	return cmd
}

func SetPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-password",
		Short: "Create the admin user or reset its password",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			name, _ := cmd.Flags().GetString("name")
			password, _ := cmd.Flags().GetString("password")

			email = strings.ToLower(strings.TrimSpace(email))
			if _, err := mail.ParseAddress(email); err != nil {
				return fmt.Errorf("invalid email %q", email)
			}
			if len(password) < minPasswordLength {
				return fmt.Errorf("password must be at least %d characters", minPasswordLength)
			}
			if name = strings.TrimSpace(name); name == "" {
				name = "Admin User"
			}

			hash, err := auth.NewHasher(auth.DefaultArgon2Params()).Hash(password)
			if err != nil {
				return err
			}

			_, st, err := openStore(false)
			if err != nil {
				return err
			}
			defer st.Close()

			admin, created, err := st.SetAdminPassword(cmd.Context(), email, name, hash)
			if err != nil {
				return fmt.Errorf("failed to save admin user: %w", err)
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Created admin user %s (%s)\n", admin.Email, admin.ID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Updated password for admin user %s\n", admin.Email)
			}
			return nil
		},
	}
	cmd.Flags().String("email", "", "Admin email address")
	cmd.Flags().String("name", "Admin User", "Display name")
	cmd.Flags().String("password", "", "New password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
