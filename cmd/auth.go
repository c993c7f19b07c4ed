package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/perarneng/gmailday/pkg/auth"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize access to Gmail and cache the token",
	Long:  `Run the OAuth2 authorization flow if no cached token exists, then store the token for later runs.`,
	Args:  cobra.NoArgs,
	RunE:  runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	settings, err := loadSettings(cmd)
	if err != nil {
		log.Error(err.Error())
		return err
	}
	oauthConfig, err := settings.OAuthConfig()
	if err != nil {
		log.Error(err.Error())
		return err
	}

	store := auth.NewFileTokenStore(settings.TokenFile, log)
	authorizer := auth.NewAuthorizer(oauthConfig, store, log, os.Stdin, os.Stdout)
	if _, err := authorizer.Authorize(cmd.Context()); err != nil {
		return err
	}

	if authorizer.Source() == auth.SourceCache {
		log.Info(fmt.Sprintf("Already authorized, token cached at %s", store.Path()))
	} else {
		log.Info("Authorization complete")
	}
	return nil
}
