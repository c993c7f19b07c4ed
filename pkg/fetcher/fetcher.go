package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/perarneng/gmailday/pkg/interfaces"
)

const (
	// MaxListResults caps the single list call. Only the first page is read.
	MaxListResults int64 = 10

	// FilterDateLayout is the date format Gmail accepts in after:/before:.
	FilterDateLayout = "2006/01/02"
)

// MetadataHeaders are requested for every message, matched case-sensitively.
var MetadataHeaders = []string{"Subject", "From", "Date"}

type Options struct {
	// InclusiveEnd emits before:<end+1 day>. When false the filter is
	// after:<start> before:<end> verbatim, which for a single day is an
	// empty window in Gmail.
	InclusiveEnd bool
}

type Fetcher struct {
	api    interfaces.MailAPI
	logger interfaces.Logger
	opts   Options
}

func New(api interfaces.MailAPI, logger interfaces.Logger, opts Options) *Fetcher {
	return &Fetcher{
		api:    api,
		logger: logger,
		opts:   opts,
	}
}

// BuildFilter renders the Gmail search filter for q.
func BuildFilter(q interfaces.Query, opts Options) string {
	end := q.End
	if opts.InclusiveEnd {
		end = end.AddDate(0, 0, 1)
	}
	return fmt.Sprintf("after:%s before:%s", q.Start.Format(FilterDateLayout), end.Format(FilterDateLayout))
}

// Fetch lists the messages matching q and fetches their metadata one at a
// time. Any error aborts the whole fetch.
func (f *Fetcher) Fetch(ctx context.Context, q interfaces.Query) ([]interfaces.MessageRecord, error) {
	filter := BuildFilter(q, f.opts)
	f.logger.Info(fmt.Sprintf("Searching messages with filter %q (max %d)", filter, MaxListResults))

	ids, err := f.api.ListMessageIDs(ctx, filter, MaxListResults)
	if err != nil {
		f.logger.Error(fmt.Sprintf("Failed to list messages: %v", err))
		return nil, err
	}

	records := make([]interfaces.MessageRecord, 0, len(ids))
	if len(ids) == 0 {
		f.logger.Info(fmt.Sprintf("No messages found matching %q", filter))
		return records, nil
	}

	f.logger.Info(fmt.Sprintf("Found %d messages to process", len(ids)))
	for i, id := range ids {
		f.logger.Debug(fmt.Sprintf("Fetching message %d/%d (ID: %s)", i+1, len(ids), id))

		meta, err := f.api.GetMessageMeta(ctx, id, MetadataHeaders)
		if err != nil {
			f.logger.Error(fmt.Sprintf("Failed to get message %s: %v", id, err))
			return nil, err
		}
		records = append(records, toRecord(id, meta))
	}
	return records, nil
}

// toRecord keeps the listed id; absent headers become empty strings.
func toRecord(id string, meta *interfaces.MessageMeta) interfaces.MessageRecord {
	return interfaces.MessageRecord{
		ID:      id,
		Date:    meta.Headers["Date"],
		Subject: meta.Headers["Subject"],
		From:    meta.Headers["From"],
		Snippet: meta.Snippet,
	}
}

// ParseDate parses a YYYY-MM-DD command line date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", interfaces.ErrConfig, s)
	}
	return t, nil
}

// NewQuery validates and builds a query. end may be empty for a single day.
func NewQuery(start, end string) (interfaces.Query, error) {
	s, err := ParseDate(start)
	if err != nil {
		return interfaces.Query{}, err
	}
	if end == "" {
		return interfaces.Query{Start: s, End: s}, nil
	}
	e, err := ParseDate(end)
	if err != nil {
		return interfaces.Query{}, err
	}
	if e.Before(s) {
		return interfaces.Query{}, fmt.Errorf("%w: end date %s is before start date %s", interfaces.ErrConfig, end, start)
	}
	return interfaces.Query{Start: s, End: e}, nil
}
