package manifest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvEntry is one KEY=VALUE line of a .env file.
type EnvEntry struct {
	Key   string
	Value string
}

// DecodePackage parses package.json content.
func DecodePackage(data []byte) (*Package, error) {
	var p Package
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing package manifest: %w", err)
	}
	return &p, nil
}

// ParsePackage reads and parses a package.json file.
func ParsePackage(path string) (*Package, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	p, err := DecodePackage(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// DecodeWorker parses wrangler.toml content.
func DecodeWorker(data []byte) (*Worker, error) {
	var w Worker
	if err := toml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parsing wrangler config: %w", err)
	}
	return &w, nil
}

// ParseWorker reads and parses a wrangler.toml file.
func ParseWorker(path string) (*Worker, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	w, err := DecodeWorker(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// DecodeDescriptor parses vercel.json content.
func DecodeDescriptor(data []byte) (*BuildDescriptor, error) {
	var d BuildDescriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing build descriptor: %w", err)
	}
	return &d, nil
}

// ParseDescriptor reads and parses a vercel.json file.
func ParseDescriptor(path string) (*BuildDescriptor, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	d, err := DecodeDescriptor(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// DecodeEnv parses .env content. Blank lines and # comments are skipped.
func DecodeEnv(data []byte) ([]EnvEntry, error) {
	var entries []EnvEntry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		entries = append(entries, EnvEntry{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading env template: %w", err)
	}
	return entries, nil
}

// ParseEnv reads and parses a .env file.
func ParseEnv(path string) ([]EnvEntry, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeEnv(data)
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
