package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// EnvEntry represents a single key-value pair from a .env file.
type EnvEntry struct {
	Key   string
	Value string
}

// ParseEnvFile reads a .env file and returns key-value entries.
// It skips blank lines and lines starting with #, accepts an optional
// "export " prefix, and strips matching surrounding quotes from values.
func ParseEnvFile(path string) ([]EnvEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer f.Close()

	var entries []EnvEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		entries = append(entries, EnvEntry{
			Key:   strings.TrimSpace(key),
			Value: unquote(strings.TrimSpace(value)),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return entries, nil
}

// LoadDotEnv sets process environment variables from a .env file. Variables
// already present in the environment win.
func LoadDotEnv(path string) error {
	entries, err := ParseEnvFile(path)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if _, exists := os.LookupEnv(e.Key); exists {
			continue
		}
		if err := os.Setenv(e.Key, e.Value); err != nil {
			return fmt.Errorf("setting %s: %w", e.Key, err)
		}
	}
	return nil
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}
