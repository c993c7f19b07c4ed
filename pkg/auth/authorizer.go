package auth

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/perarneng/gmailday/pkg/interfaces"
)

type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Source records where the installed token came from.
type Source int

const (
	SourceNone Source = iota
	SourceCache
	SourceInteractive
)

// CodeExchanger is the part of *oauth2.Config the authorizer needs.
type CodeExchanger interface {
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
}

// Authorizer drives the authorization-code flow. The interactive step runs at
// most once per Authorizer.
type Authorizer struct {
	exchanger CodeExchanger
	store     interfaces.TokenStore
	logger    interfaces.Logger
	in        io.Reader
	out       io.Writer

	state           State
	source          Source
	token           *oauth2.Token
	interactiveUsed bool
}

func NewAuthorizer(exchanger CodeExchanger, store interfaces.TokenStore, logger interfaces.Logger, in io.Reader, out io.Writer) *Authorizer {
	return &Authorizer{
		exchanger: exchanger,
		store:     store,
		logger:    logger,
		in:        in,
		out:       out,
	}
}

func (a *Authorizer) State() State {
	return a.state
}

func (a *Authorizer) Source() Source {
	return a.source
}

func (a *Authorizer) Token() *oauth2.Token {
	return a.token
}

// Authorize returns the cached token when one is stored, otherwise runs the
// interactive flow.
func (a *Authorizer) Authorize(ctx context.Context) (*oauth2.Token, error) {
	if a.state == Authenticated {
		return a.token, nil
	}

	if tok, ok := a.store.Load(); ok {
		a.logger.Debug("Using cached token")
		a.install(tok, SourceCache)
		return tok, nil
	}

	a.logger.Info("No cached token, starting authorization")
	return a.interactive(ctx)
}

// Reauthorize replaces a cached token that the API rejected.
func (a *Authorizer) Reauthorize(ctx context.Context) (*oauth2.Token, error) {
	if a.source != SourceCache {
		return nil, fmt.Errorf("%w: current token was not loaded from cache, refusing to re-authorize", interfaces.ErrAuth)
	}
	a.logger.Warn("Cached token was rejected, starting authorization")
	a.state = Unauthenticated
	a.token = nil
	a.source = SourceNone
	return a.interactive(ctx)
}

func (a *Authorizer) interactive(ctx context.Context) (*oauth2.Token, error) {
	if a.interactiveUsed {
		return nil, fmt.Errorf("%w: interactive authorization already attempted in this run", interfaces.ErrAuth)
	}
	a.interactiveUsed = true

	authURL := a.exchanger.AuthCodeURL(uuid.NewString(), oauth2.AccessTypeOffline)
	fmt.Fprintf(a.out, "Authorize this app by visiting this url:\n%v\n", authURL)
	fmt.Fprint(a.out, "Enter the code from that page here: ")

	var authCode string
	if _, err := fmt.Fscan(a.in, &authCode); err != nil {
		a.logger.Error(fmt.Sprintf("Unable to read authorization code: %v", err))
		return nil, fmt.Errorf("%w: unable to read authorization code: %v", interfaces.ErrAuth, err)
	}
	authCode = strings.TrimSpace(authCode)

	tok, err := a.exchanger.Exchange(ctx, authCode)
	if err != nil {
		a.logger.Error(fmt.Sprintf("Unable to retrieve token from web: %v", err))
		return nil, fmt.Errorf("%w: unable to retrieve token from web: %w", interfaces.ErrAuth, err)
	}

	if err := a.store.Save(tok); err != nil {
		a.logger.Error(err.Error())
		return nil, err
	}

	a.install(tok, SourceInteractive)
	return tok, nil
}

func (a *Authorizer) install(tok *oauth2.Token, source Source) {
	a.token = tok
	a.source = source
	a.state = Authenticated
}
