package interfaces

import (
	"context"
)

// MessageRecord is one fetched message as written to the output file.
type MessageRecord struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Subject string `json:"subject"`
	From    string `json:"from"`
	Snippet string `json:"snippet"`
}

// MessageMeta is the metadata returned by a single message get.
// Headers is keyed by the exact header name sent by the provider.
type MessageMeta struct {
	ID      string
	Headers map[string]string
	Snippet string
}

// MailAPI is the narrow surface of the remote mail service used by the fetcher.
type MailAPI interface {
	ListMessageIDs(ctx context.Context, filter string, maxResults int64) ([]string, error)
	GetMessageMeta(ctx context.Context, messageID string, headers []string) (*MessageMeta, error)
}
