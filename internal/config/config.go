package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"

	"github.com/nhle/fast-task/internal/credential"
)

// ProjectAlias maps a Jira project key to a human-readable display
// name. Aliases are stored as a list rather than a map because viper
// lowercases map keys and project keys are case-sensitive.
type ProjectAlias struct {
	Key  string `mapstructure:"key" json:"key"`
	Name string `mapstructure:"name" json:"name"`
}

// Profile holds the Jira connection settings and the project alias
// table. The token is kept in the system keyring, never in the JSON
// file.
type Profile struct {
	BaseURL  string         `mapstructure:"base_url" json:"base_url" validate:"required,url"`
	Email    string         `mapstructure:"email" json:"email" validate:"required,email"`
	Projects []ProjectAlias `mapstructure:"projects" json:"projects"`

	Token string `mapstructure:"-" json:"-" validate:"required"`
}

// IsConfigured reports whether the profile carries everything a remote
// call needs: base URL, email, and token all non-empty.
func (p *Profile) IsConfigured() bool {
	return p.BaseURL != "" && p.Email != "" && p.Token != ""
}

// ProjectMap returns the alias table as a key-to-name map.
func (p *Profile) ProjectMap() map[string]string {
	m := make(map[string]string, len(p.Projects))
	for _, a := range p.Projects {
		m[a.Key] = a.Name
	}
	return m
}

// ProjectKeys returns the project keys sorted for stable menus.
func (p *Profile) ProjectKeys() []string {
	keys := make([]string, 0, len(p.Projects))
	for _, a := range p.Projects {
		keys = append(keys, a.Key)
	}
	sort.Strings(keys)
	return keys
}

// ProjectName returns the display name for key, falling back to the
// key itself when no alias is known.
func (p *Profile) ProjectName(key string) string {
	for _, a := range p.Projects {
		if a.Key == key {
			return a.Name
		}
	}
	return key
}

// SetConnection replaces the connection settings.
func (p *Profile) SetConnection(baseURL, email, token string) {
	p.BaseURL = baseURL
	p.Email = email
	p.Token = token
}

// AddProject adds an alias, replacing the display name if the key
// already exists.
func (p *Profile) AddProject(key, name string) {
	for i, a := range p.Projects {
		if a.Key == key {
			p.Projects[i].Name = name
			return
		}
	}
	p.Projects = append(p.Projects, ProjectAlias{Key: key, Name: name})
}

// RemoveProject removes the alias for key and reports whether it was
// present.
func (p *Profile) RemoveProject(key string) bool {
	for i, a := range p.Projects {
		if a.Key == key {
			p.Projects = append(p.Projects[:i], p.Projects[i+1:]...)
			return true
		}
	}
	return false
}

// Dir returns the fast-task configuration directory. The
// FAST_TASK_CONFIG_DIR environment variable overrides the platform
// default.
func Dir() (string, error) {
	if dir := os.Getenv("FAST_TASK_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config directory: %w", err)
	}
	return filepath.Join(base, "fast-task"), nil
}

// Path returns the location of the profile JSON file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the stored profile. A missing file yields a zero profile
// and no error; an unreadable or undeserializable file yields a zero
// profile and the error, which callers treat the same as unconfigured.
// The token is looked up in the keyring; a missing entry simply leaves
// it empty.
func Load() (*Profile, error) {
	path, err := Path()
	if err != nil {
		return &Profile{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return &Profile{}, nil
		}
		if _, ok := err.(*os.PathError); ok {
			return &Profile{}, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return &Profile{}, nil
		}
		return &Profile{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	p := &Profile{}
	if err := v.Unmarshal(p); err != nil {
		return &Profile{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if token, err := credential.Get(credential.TokenKey); err == nil {
		p.Token = token
	}

	return p, nil
}

// Save writes the profile JSON, creating the config directory if
// needed, and stores a non-empty token in the keyring. The JSON file
// never contains the token.
func Save(p *Profile) error {
	path, err := Path()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.Set("base_url", p.BaseURL)
	v.Set("email", p.Email)
	v.Set("projects", p.Projects)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	if p.Token != "" {
		if err := credential.Set(credential.TokenKey, p.Token); err != nil {
			return fmt.Errorf("storing token: %w", err)
		}
	}

	return nil
}
