package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/auction-browser/internal/view"
	domain "github.com/donaldgifford/auction-browser/pkg/types"
)

func (a *app) loginCmd() *cobra.Command {
	var creds domain.LoginCredentials

	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Log in and store the session token",
		Example: `  subastas login --email ana@example.com --password s3cret`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.apiClient(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := c.Login(cmd.Context(), creds); err != nil {
				a.log.Debug("login failed", "error", err)
				return errors.New(view.AuthMessage(view.OpLogin, err))
			}

			sess, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			if err := sess.SaveToken(cmd.Context(), c.AuthToken()); err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.out, "Logged in as %s.\n", creds.Email)
			return err
		},
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password")
	cobra.CheckErr(cmd.MarkFlagRequired("email"))
	cobra.CheckErr(cmd.MarkFlagRequired("password"))

	return cmd
}

func (a *app) registerCmd() *cobra.Command {
	var data domain.RegisterData

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and store the session token",
		Example: `  subastas register --email ana@example.com --full-name "Ana López" \
    --phone 3312345678 --company "Transportes del Bajío" --password s3cret`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.apiClient(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := c.Register(cmd.Context(), data); err != nil {
				a.log.Debug("register failed", "error", err)
				return errors.New(view.AuthMessage(view.OpRegister, err))
			}

			sess, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			if err := sess.SaveToken(cmd.Context(), c.AuthToken()); err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.out, "Account created for %s.\n", data.Email)
			return err
		},
	}
	cmd.Flags().StringVar(&data.Email, "email", "", "account email")
	cmd.Flags().StringVar(&data.FullName, "full-name", "", "full name")
	cmd.Flags().StringVar(&data.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&data.Company, "company", "", "company name (optional)")
	cmd.Flags().StringVar(&data.Password, "password", "", "account password")
	for _, name := range []string{"email", "full-name", "phone", "password"} {
		cobra.CheckErr(cmd.MarkFlagRequired(name))
	}

	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Long:  "Clears the token locally. The backend is not contacted.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			if c, err := a.apiClient(cmd.Context()); err == nil {
				c.Logout()
			}
			if err := sess.ClearToken(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, "Logged out.")
			return err
		},
	}
}
