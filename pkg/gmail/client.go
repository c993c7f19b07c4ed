package gmail

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/perarneng/gmailday/pkg/interfaces"
)

type Client struct {
	service *gmail.Service
	userID  string
}

// NewClient wraps an existing Gmail service.
func NewClient(service *gmail.Service) *Client {
	return &Client{
		service: service,
		userID:  "me",
	}
}

// Connect builds a Gmail client authorized with tok. Refreshed tokens are
// written back to store.
func Connect(ctx context.Context, config *oauth2.Config, tok *oauth2.Token, store interfaces.TokenStore, logger interfaces.Logger, opts ...option.ClientOption) (*Client, error) {
	httpClient := &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 30 * time.Second,
		},
	}

	// The token source uses the same transport for refreshes.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	src := &savingTokenSource{
		base:   config.TokenSource(ctx, tok),
		last:   tok,
		store:  store,
		logger: logger,
	}
	client := oauth2.NewClient(ctx, src)

	opts = append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)
	srv, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to retrieve Gmail client: %v", interfaces.ErrRemote, err)
	}
	return NewClient(srv), nil
}

// ListMessageIDs returns the ids on the first result page only.
func (c *Client) ListMessageIDs(ctx context.Context, filter string, maxResults int64) ([]string, error) {
	call := c.service.Users.Messages.List(c.userID).Q(filter)
	if maxResults > 0 {
		call = call.MaxResults(maxResults)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: unable to retrieve messages: %w", interfaces.ErrRemote, err)
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		ids = append(ids, m.Id)
	}
	return ids, nil
}

func (c *Client) GetMessageMeta(ctx context.Context, messageID string, headers []string) (*interfaces.MessageMeta, error) {
	msg, err := c.service.Users.Messages.Get(c.userID, messageID).
		Format("metadata").
		MetadataHeaders(headers...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: unable to retrieve message %s: %w", interfaces.ErrRemote, messageID, err)
	}

	meta := &interfaces.MessageMeta{
		ID:      msg.Id,
		Headers: make(map[string]string),
		Snippet: msg.Snippet,
	}
	if msg.Payload != nil {
		for _, h := range msg.Payload.Headers {
			// First occurrence wins for repeated headers.
			if _, seen := meta.Headers[h.Name]; !seen {
				meta.Headers[h.Name] = h.Value
			}
		}
	}
	return meta, nil
}

// IsAuthRejected reports whether err means the credential in use was refused:
// a 401 from the API, or a refresh the token endpoint answered with
// invalid_grant, 400 or 401. Other refresh failures are transient.
func IsAuthRejected(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusUnauthorized
	}

	var retrieveErr *oauth2.RetrieveError
	if !errors.As(err, &retrieveErr) {
		return false
	}
	if retrieveErr.ErrorCode == "invalid_grant" {
		return true
	}
	if retrieveErr.Response == nil {
		return false
	}
	switch retrieveErr.Response.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized:
		return true
	}
	return false
}

// savingTokenSource persists every token that differs from the last one seen.
type savingTokenSource struct {
	mu     sync.Mutex
	base   oauth2.TokenSource
	last   *oauth2.Token
	store  interfaces.TokenStore
	logger interfaces.Logger
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil || tok.AccessToken != s.last.AccessToken {
		s.logger.Debug("Access token refreshed")
		if err := s.store.Save(tok); err != nil {
			s.logger.Warn(fmt.Sprintf("Failed to save refreshed token: %v", err))
		}
		s.last = tok
	}
	return tok, nil
}

var _ interfaces.MailAPI = (*Client)(nil)
