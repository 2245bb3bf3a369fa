// Package config loads s3tui's inputs: the mc/mcli credentials file (the
// only required input), an optional YAML preferences file, and environment
// overrides layered on top.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ErrCredentialsNotFound is returned when neither the .mc nor .mcli config
// file exists. The caller (cmd/s3tui) turns this into exit code 2.
var ErrCredentialsNotFound = errors.New("config: no credentials file found")

// Remote is one configured S3-compatible target, as described in spec.md §3.
// Immutable after load.
type Remote struct {
	Name            string
	EndpointURL     string
	AccessKey       string
	SecretKey       string
	APIVersion      string // "s3v4" by default
	AddressingStyle string // "on" | "off" | "auto"
}

type aliasFile struct {
	Aliases map[string]struct {
		URL       string `json:"url"`
		AccessKey string `json:"accessKey"`
		SecretKey string `json:"secretKey"`
		API       string `json:"api"`
		Path      string `json:"path"`
	} `json:"aliases"`
}

// credentialPaths returns $HOME/.mc/config.json then $HOME/.mcli/config.json,
// in the preference order spec.md §6 names.
func credentialPaths() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("config: resolve home directory: %w", err)
	}
	return []string{
		filepath.Join(home, ".mc", "config.json"),
		filepath.Join(home, ".mcli", "config.json"),
	}, nil
}

// LoadRemotes reads the first existing credentials file and returns the
// configured remotes in declaration order, skipping any alias with an empty
// URL or missing credentials (spec.md §6). Returns ErrCredentialsNotFound if
// neither candidate path exists, and a parse error if the file exists but is
// not valid JSON — both are fatal at startup (exit code 2), distinct from a
// malformed preferences file (exit code 1, see preferences.go).
func LoadRemotes(logger *slog.Logger) ([]Remote, error) {
	paths, err := credentialPaths()
	if err != nil {
		return nil, err
	}

	var data []byte
	var used string
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err == nil {
			data, used = b, p
			break
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: read %s: %w", p, err)
		}
	}
	if used == "" {
		return nil, ErrCredentialsNotFound
	}

	var af aliasFile
	if err := json.Unmarshal(data, &af); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", used, err)
	}

	names := orderedAliasNames(data)
	remotes := make([]Remote, 0, len(af.Aliases))
	for _, name := range names {
		a, ok := af.Aliases[name]
		if !ok {
			continue
		}
		if a.URL == "" || a.AccessKey == "" || a.SecretKey == "" {
			logger.Warn("skipping remote with incomplete credentials", "remote", name)
			continue
		}
		api := a.API
		if api == "" {
			api = "s3v4"
		}
		path := a.Path
		if path == "" {
			path = "auto"
		}
		remotes = append(remotes, Remote{
			Name:            name,
			EndpointURL:     a.URL,
			AccessKey:       a.AccessKey,
			SecretKey:       a.SecretKey,
			APIVersion:      api,
			AddressingStyle: path,
		})
	}
	return remotes, nil
}

// orderedAliasNames walks the raw JSON object to recover the declaration
// order of the "aliases" keys, since encoding/json into a map does not
// preserve it and spec.md §4.1 requires list_remotes to return "the order
// in which they appeared in the configuration."
func orderedAliasNames(data []byte) []string {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil
	}
	aliasesRaw, ok := root["aliases"]
	if !ok {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(aliasesRaw))
	var names []string
	tok, err := dec.Token() // opening '{'
	if err != nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			break
		}
		key, _ := keyTok.(string)
		names = append(names, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			break
		}
	}
	return names
}
