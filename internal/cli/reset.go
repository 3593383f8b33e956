package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/abeba/internal/db"
	"github.com/terraincognita07/abeba/internal/logging"
	"github.com/terraincognita07/abeba/internal/services"
)

func newResetPasswordCommand(options *rootOptions) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Replace a user's password with a temporary one.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := options.viper()
			if err != nil {
				return err
			}
			return runResetPassword(cmd.OutOrStdout(), v.GetString("DB_PATH"), email)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func runResetPassword(w io.Writer, dbPath string, email string) error {
	normalizedEmail := services.NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return fmt.Errorf("invalid email address %q", email)
	}

	database, err := db.OpenSQLite(strings.TrimSpace(dbPath), logging.Discard())
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	auth := services.NewAuthService(db.NewUserRepository(database))
	temporaryPassword, err := auth.ResetPassword(normalizedEmail)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
		return err
	}

	success := color.New(color.FgGreen, color.Bold)
	_, err = fmt.Fprintf(w, "%s\nTemporary password: %s\nUser must change password on next login.\n",
		success.Sprint("Password reset successful"), temporaryPassword)
	return err
}
