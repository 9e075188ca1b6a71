package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/auction-browser/internal/session"
)

func (a *app) themeCmd() *cobra.Command {
	themeRoot := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the color theme preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.printTheme(cmd)
		},
	}

	themeRoot.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the current theme",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.printTheme(cmd)
			},
		},
		&cobra.Command{
			Use:       "set <light|dark>",
			Short:     "Set the theme",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{string(session.ThemeLight), string(session.ThemeDark)},
			RunE: func(cmd *cobra.Command, args []string) error {
				theme, err := session.ParseTheme(args[0])
				if err != nil {
					return err
				}
				sess, err := a.session(cmd.Context())
				if err != nil {
					return err
				}
				if err := sess.SetTheme(cmd.Context(), theme); err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.out, theme)
				return err
			},
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "Switch between light and dark",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				sess, err := a.session(cmd.Context())
				if err != nil {
					return err
				}
				theme, err := sess.ToggleTheme(cmd.Context())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.out, theme)
				return err
			},
		},
	)

	return themeRoot
}

func (a *app) printTheme(cmd *cobra.Command) error {
	sess, err := a.session(cmd.Context())
	if err != nil {
		return err
	}
	theme, err := sess.Theme(cmd.Context())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, theme)
	return err
}
