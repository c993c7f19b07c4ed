package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/perarneng/gmailday/pkg/auth"
	"github.com/perarneng/gmailday/pkg/config"
	"github.com/perarneng/gmailday/pkg/fetcher"
	"github.com/perarneng/gmailday/pkg/gmail"
	"github.com/perarneng/gmailday/pkg/interfaces"
	"github.com/perarneng/gmailday/pkg/output"
	"github.com/perarneng/gmailday/pkg/runner"
)

var (
	outputDir    string
	inclusiveEnd bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <date> [end-date]",
	Short: "Save message metadata for a date or date range to JSON",
	Long: `Search Gmail for messages between the given dates (YYYY-MM-DD) and write
id, date, subject, from and snippet for up to 10 messages to
emails_<date>.json or emails_<start>_to_<end>.json.

The search filter is "after:<start> before:<end>". Gmail treats before: as
exclusive, so a single date matches nothing unless --inclusive-end is set.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&outputDir, "output-dir", "d", ".", "Output directory for the JSON file")
	fetchCmd.Flags().BoolVar(&inclusiveEnd, "inclusive-end", false, "Include the end date by searching before the following day")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	end := ""
	if len(args) == 2 {
		end = args[1]
	}
	query, err := fetcher.NewQuery(args[0], end)
	if err != nil {
		log.Error(err.Error())
		return err
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		log.Error(err.Error())
		return err
	}
	var overrides config.Overrides
	if cmd.Flags().Changed("output-dir") {
		overrides.OutputDir = &outputDir
	}
	if cmd.Flags().Changed("inclusive-end") {
		overrides.InclusiveEnd = &inclusiveEnd
	}
	settings.Apply(overrides)

	oauthConfig, err := settings.OAuthConfig()
	if err != nil {
		log.Error(err.Error())
		return err
	}

	store := auth.NewFileTokenStore(settings.TokenFile, log)
	authorizer := auth.NewAuthorizer(oauthConfig, store, log, os.Stdin, os.Stdout)
	connect := func(ctx context.Context, tok *oauth2.Token) (interfaces.MailAPI, error) {
		log.Info("Connecting to Gmail API...")
		return gmail.Connect(ctx, oauthConfig, tok, store, log)
	}

	r := runner.New(
		authorizer,
		connect,
		output.NewFileWriter(log, settings.OutputDir),
		log,
		fetcher.Options{InclusiveEnd: settings.InclusiveEnd},
	)

	path, err := r.Run(cmd.Context(), query)
	if err != nil {
		return err
	}
	log.Info(fmt.Sprintf("Emails saved to %s", path))
	return nil
}
