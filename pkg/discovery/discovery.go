// Package discovery finds agent definition files in configured directories.
// Repository-local directories take precedence over the user's home
// directory; the first file found for a given agent name wins.
package discovery

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"

	"github.com/jingkaihe/agentlint/pkg/logger"
)

// Agent is a discovered agent definition with the metadata the listing
// surface needs.
type Agent struct {
	Name        string
	Description string
	Mode        string
	Model       string
	Path        string
}

// Discovery locates agent definition files in a set of directories.
type Discovery struct {
	dirs []string
}

// Option configures a Discovery.
type Option func(*Discovery) error

// WithDirs sets custom agent directories.
func WithDirs(dirs ...string) Option {
	return func(d *Discovery) error {
		if len(dirs) == 0 {
			return errors.New("at least one agent directory must be specified")
		}
		d.dirs = dirs
		return nil
	}
}

// WithDefaultDirs sets the default agent directories (./agents,
// ~/.agentlint/agents).
func WithDefaultDirs() Option {
	return func(d *Discovery) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "failed to get user home directory")
		}
		d.dirs = []string{
			"./agents", // Repository-specific (higher precedence)
			filepath.Join(homeDir, ".agentlint", "agents"),
		}
		return nil
	}
}

// New creates a Discovery with optional configuration.
func New(opts ...Option) (*Discovery, error) {
	d := &Discovery{}

	if len(opts) == 0 {
		if err := WithDefaultDirs()(d); err != nil {
			return nil, err
		}
		return d, nil
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, errors.Wrap(err, "failed to apply discovery option")
		}
	}
	return d, nil
}

// Discover returns all agent definitions from the configured directories,
// sorted by name. Earlier directories shadow later ones.
func (d *Discovery) Discover(ctx context.Context) ([]*Agent, error) {
	var agents []*Agent
	seen := make(map[string]bool)

	for _, dir := range d.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			logger.G(ctx).WithField("dir", dir).Debug("Agent directory not found, skipping")
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			name := strings.TrimSuffix(entry.Name(), ".md")
			if seen[name] {
				continue
			}

			agent, err := loadAgent(path)
			if err != nil {
				logger.G(ctx).WithField("path", path).WithError(err).Warn("Failed to load agent, skipping")
				continue
			}
			agent.Name = name

			agents = append(agents, agent)
			seen[name] = true
		}
	}

	sort.Slice(agents, func(i, j int) bool { return agents[i].Name < agents[j].Name })

	logger.G(ctx).WithField("count", len(agents)).Debug("Discovered agents")
	return agents, nil
}

// loadAgent parses the frontmatter of an agent definition file.
func loadAgent(path string) (*Agent, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read agent file '%s'", path)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			meta.Meta,
		),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, errors.Wrap(err, "failed to convert markdown")
	}

	agent := &Agent{Path: path}
	metaData := meta.Get(pctx)
	if metaData != nil {
		if description, ok := metaData["description"].(string); ok {
			agent.Description = description
		}
		if mode, ok := metaData["mode"].(string); ok {
			agent.Mode = mode
		}
		if model, ok := metaData["model"].(string); ok {
			agent.Model = model
		}
	}

	return agent, nil
}
