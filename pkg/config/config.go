package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"

	"github.com/perarneng/gmailday/pkg/interfaces"
)

// DefaultSettingsFile is read when present; it is never required.
const DefaultSettingsFile = "gmailday.toml"

// Settings holds the local file layout and fetch behaviour.
type Settings struct {
	CredentialsFile string `toml:"credentials_file"`
	TokenFile       string `toml:"token_file"`
	OutputDir       string `toml:"output_dir"`
	InclusiveEnd    bool   `toml:"inclusive_end"`
}

func Default() *Settings {
	return &Settings{
		CredentialsFile: "credentials.json",
		TokenFile:       "token.json",
		OutputDir:       ".",
	}
}

// Load reads .env, then the TOML settings file, then applies environment
// overrides. A missing settings file is only an error when explicit is true.
func Load(path string, explicit bool) (*Settings, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	s := Default()
	if path == "" {
		path = DefaultSettingsFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %v", interfaces.ErrConfig, path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("%w: failed to read %s: %v", interfaces.ErrConfig, path, err)
	}

	s.applyEnv()
	return s, nil
}

func (s *Settings) applyEnv() {
	if v := os.Getenv("GOOGLE_CREDENTIALS_FILE"); v != "" {
		s.CredentialsFile = v
	}
	if v := os.Getenv("GOOGLE_TOKEN_FILE"); v != "" {
		s.TokenFile = v
	}
}

// Overrides carries command line values. Nil fields leave the setting alone.
type Overrides struct {
	OutputDir    *string
	InclusiveEnd *bool
}

// Apply sets the flags the user passed on top of file and environment values.
func (s *Settings) Apply(o Overrides) {
	if o.OutputDir != nil {
		s.OutputDir = *o.OutputDir
	}
	if o.InclusiveEnd != nil {
		s.InclusiveEnd = *o.InclusiveEnd
	}
}

// OAuthConfig builds the client configuration. GOOGLE_CLIENT_ID,
// GOOGLE_CLIENT_SECRET and GOOGLE_REDIRECT_URI take precedence over the
// credentials file.
func (s *Settings) OAuthConfig() (*oauth2.Config, error) {
	if clientID := os.Getenv("GOOGLE_CLIENT_ID"); clientID != "" {
		secret := os.Getenv("GOOGLE_CLIENT_SECRET")
		redirect := os.Getenv("GOOGLE_REDIRECT_URI")
		if secret == "" || redirect == "" {
			return nil, fmt.Errorf("%w: GOOGLE_CLIENT_ID is set but GOOGLE_CLIENT_SECRET or GOOGLE_REDIRECT_URI is missing", interfaces.ErrConfig)
		}
		return &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: secret,
			RedirectURL:  redirect,
			Scopes:       []string{gmail.GmailReadonlyScope},
			Endpoint:     google.Endpoint,
		}, nil
	}

	b, err := os.ReadFile(s.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read client secret file %s (or set GOOGLE_CLIENT_ID): %v", interfaces.ErrConfig, s.CredentialsFile, err)
	}

	cfg, err := google.ConfigFromJSON(b, gmail.GmailReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to parse client secret file to config: %v", interfaces.ErrConfig, err)
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: client secret file %s has no client id or secret", interfaces.ErrConfig, s.CredentialsFile)
	}
	return cfg, nil
}
