package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is where the workflow is expected to keep the gatekeeper config
const DefaultPath = ".github/deploygate.toml"

type Config struct {
	Deploy DeployConfig `toml:"deploy"`
	Bots   BotsConfig   `toml:"bots"`
}

type DeployConfig struct {
	// Branch is the shared branch whose tip represents what is currently deployed
	Branch string `toml:"branch"`
	// ResetWorkflow is the workflow file that force-resets the deploy branch,
	// referenced in the remediation message when a deploy is blocked
	ResetWorkflow string `toml:"reset_workflow"`
}

type BotsConfig struct {
	// Emails is the allow-list of committer identities treated as automation
	Emails []string `toml:"emails"`
}

func DefaultConfig() *Config {
	return &Config{
		Deploy: DeployConfig{
			Branch:        "deploy/dev",
			ResetWorkflow: "reset-dev-deploy-branch.yml",
		},
		Bots: BotsConfig{
			Emails: []string{
				"github-actions[bot]@users.noreply.github.com",
				"noreply@github.com",
			},
		},
	}
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist. Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsBotEmail reports whether email belongs to a known automation identity
func (c *Config) IsBotEmail(email string) bool {
	for _, e := range c.Bots.Emails {
		if e == email {
			return true
		}
	}
	return false
}
