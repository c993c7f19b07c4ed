package runner

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/perarneng/gmailday/pkg/auth"
	"github.com/perarneng/gmailday/pkg/fetcher"
	"github.com/perarneng/gmailday/pkg/gmail"
	"github.com/perarneng/gmailday/pkg/interfaces"
)

type Authorizer interface {
	Authorize(ctx context.Context) (*oauth2.Token, error)
	Reauthorize(ctx context.Context) (*oauth2.Token, error)
	Source() auth.Source
}

// ConnectFunc builds a mail client for an authorized token.
type ConnectFunc func(ctx context.Context, tok *oauth2.Token) (interfaces.MailAPI, error)

type Runner struct {
	auth    Authorizer
	connect ConnectFunc
	writer  interfaces.OutputWriter
	logger  interfaces.Logger
	opts    fetcher.Options
}

func New(authorizer Authorizer, connect ConnectFunc, writer interfaces.OutputWriter, logger interfaces.Logger, opts fetcher.Options) *Runner {
	return &Runner{
		auth:    authorizer,
		connect: connect,
		writer:  writer,
		logger:  logger,
		opts:    opts,
	}
}

// Run authorizes, fetches the messages for q and writes them to disk. A cached
// token rejected by the API gets exactly one interactive re-authorization.
func (r *Runner) Run(ctx context.Context, q interfaces.Query) (string, error) {
	if err := r.writer.ValidateOutputDir(); err != nil {
		return "", err
	}

	tok, err := r.auth.Authorize(ctx)
	if err != nil {
		return "", err
	}

	records, err := r.fetch(ctx, tok, q)
	if err != nil && r.auth.Source() == auth.SourceCache && gmail.IsAuthRejected(err) {
		r.logger.Warn(fmt.Sprintf("Cached credential rejected: %v", err))
		tok, err = r.auth.Reauthorize(ctx)
		if err != nil {
			return "", err
		}
		records, err = r.fetch(ctx, tok, q)
	}
	if err != nil {
		return "", err
	}

	return r.writer.Persist(records, q)
}

func (r *Runner) fetch(ctx context.Context, tok *oauth2.Token, q interfaces.Query) ([]interfaces.MessageRecord, error) {
	api, err := r.connect(ctx, tok)
	if err != nil {
		r.logger.Error(fmt.Sprintf("Failed to connect to Gmail: %v", err))
		return nil, err
	}
	return fetcher.New(api, r.logger, r.opts).Fetch(ctx, q)
}
