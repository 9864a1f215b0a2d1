package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/obradev/obra/internal/auth"
	"github.com/obradev/obra/internal/i18n"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string
	var remember bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if email == "" || password == "" {
				if !app.Interactive {
					return errors.New("--email and --password are required in non-interactive mode")
				}
				form := loginForm(app, &email, &password, &remember)
				if err := form.Run(); err != nil {
					return err
				}
			}

			token, err := app.API.Login(ctx, email, password)
			if err != nil {
				return err
			}

			language := app.Bundle.Lang()
			if creds, err := app.Auth.Current(ctx); err == nil {
				language = creds.Language
			}
			if err := app.Auth.Save(ctx, &auth.Credentials{
				Token:    token,
				Language: language,
				Remember: remember,
			}); err != nil {
				return err
			}

			claims, err := auth.ParseClaims(token)
			if err != nil {
				return err
			}
			fmt.Println(app.T("auth.login.success", claims.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().BoolVar(&remember, "remember", false, "Keep the session across restarts")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := app.Auth.Clear(ctx); err != nil {
				return err
			}
			fmt.Println(app.T("auth.logout.success"))
			return nil
		},
	}
}

func newLangCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lang LANGUAGE",
		Short: "Set the interface language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			lang := strings.ToLower(args[0])
			if !i18n.Supported(lang) {
				return fmt.Errorf("%s", app.T("lang.unsupported", lang, strings.Join(i18n.Languages(), ", ")))
			}

			creds, err := app.Auth.Current(ctx)
			if err != nil {
				if !errors.Is(err, auth.ErrNoCredentials) {
					return err
				}
				creds = &auth.Credentials{}
			}
			creds.Language = lang
			if err := app.Auth.Save(ctx, creds); err != nil {
				return err
			}

			bundle, err := i18n.NewBundle(lang)
			if err != nil {
				return err
			}
			app.Bundle = bundle

			fmt.Println(app.T("lang.changed", lang))
			return nil
		},
	}
}
