package auth

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"

	"github.com/perarneng/gmailday/pkg/interfaces"
)

// FileTokenStore keeps the token as JSON at a fixed path. There is no
// locking; two runs sharing the file can clobber each other.
type FileTokenStore struct {
	path   string
	logger interfaces.Logger
}

func NewFileTokenStore(path string, logger interfaces.Logger) *FileTokenStore {
	return &FileTokenStore{
		path:   path,
		logger: logger,
	}
}

func (s *FileTokenStore) Path() string {
	return s.path
}

// Load treats a missing and an unreadable token file the same way.
func (s *FileTokenStore) Load() (*oauth2.Token, bool) {
	f, err := os.Open(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn(fmt.Sprintf("Unable to open token file %s: %v", s.path, err))
		}
		return nil, false
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		s.logger.Warn(fmt.Sprintf("Ignoring unparsable token file %s: %v", s.path, err))
		return nil, false
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		s.logger.Warn(fmt.Sprintf("Ignoring token file %s without tokens", s.path))
		return nil, false
	}
	return tok, true
}

func (s *FileTokenStore) Save(token *oauth2.Token) error {
	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("%w: unable to cache oauth token: %v", interfaces.ErrIO, err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("%w: unable to write oauth token: %v", interfaces.ErrIO, err)
	}
	s.logger.Info(fmt.Sprintf("Token stored to %s", s.path))
	return nil
}

var _ interfaces.TokenStore = (*FileTokenStore)(nil)
