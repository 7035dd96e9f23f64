// Copyright (c) 2025 BVK Chaitanya

package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
)

// EnvOption customizes how env files are found and applied.
type EnvOption func(*envLoader) error

type envLoader struct {
	dirs     []string
	prefix   string
	override bool
}

// InDirs adds directories to the env file search path. They are searched in
// the order given and the first file found is used.
func InDirs(dirs ...string) EnvOption {
	return func(l *envLoader) error {
		l.dirs = append(l.dirs, dirs...)
		return nil
	}
}

// UpwardsFrom adds dir and all its ancestors up to the root to the search
// path, nearest first.
func UpwardsFrom(dir string) EnvOption {
	return func(l *envLoader) error {
		dir, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		for {
			l.dirs = append(l.dirs, dir)
			parent := filepath.Dir(dir)
			if parent == dir {
				return nil
			}
			dir = parent
		}
	}
}

var prefixRe = regexp.MustCompile("^[a-zA-Z][0-9a-zA-Z_]*$")

// WithPrefix prepends prefix to every variable name read from the file.
func WithPrefix(prefix string) EnvOption {
	return func(l *envLoader) error {
		if !prefixRe.MatchString(prefix) {
			return fmt.Errorf("variable name prefix %q has invalid characters: %w", prefix, os.ErrInvalid)
		}
		l.prefix = prefix
		return nil
	}
}

// Override replaces variables that are already set in the environment.
func Override(override bool) EnvOption {
	return func(l *envLoader) error {
		l.override = override
		return nil
	}
}

func newEnvLoader(opts []EnvOption) (*envLoader, error) {
	l := new(envLoader)
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// UpdateEnv loads the first env file named filename found on the search
// path into the process environment. The search path is the home directory
// unless InDirs or UpwardsFrom options are given. It is not an error if no
// file is found.
func UpdateEnv(filename string, opts ...EnvOption) error {
	if strings.ContainsRune(filename, os.PathSeparator) {
		return fmt.Errorf("env file name %q contains path separator: %w", filename, os.ErrInvalid)
	}
	l, err := newEnvLoader(opts)
	if err != nil {
		return err
	}
	if len(l.dirs) == 0 {
		u, err := user.Current()
		if err != nil {
			return err
		}
		if u.HomeDir == "" {
			return fmt.Errorf("could not determine the home directory of user %q", u.Username)
		}
		l.dirs = []string{u.HomeDir}
	}

	for _, dir := range l.dirs {
		fpath := filepath.Join(dir, filename)
		if _, err := os.Stat(fpath); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		return l.load(fpath)
	}
	return nil
}

// LoadEnvFile loads the env file at fpath, which must exist, into the process
// environment. Search path options are ignored.
func LoadEnvFile(fpath string, opts ...EnvOption) error {
	l, err := newEnvLoader(opts)
	if err != nil {
		return err
	}
	return l.load(fpath)
}

func (l *envLoader) load(fpath string) error {
	if l.prefix == "" {
		load := godotenv.Load
		if l.override {
			load = godotenv.Overload
		}
		if err := load(fpath); err != nil {
			return fmt.Errorf("could not load env file %q: %w", fpath, err)
		}
		return nil
	}

	vars, err := godotenv.Read(fpath)
	if err != nil {
		return fmt.Errorf("could not read env file %q: %w", fpath, err)
	}
	for key, value := range vars {
		key = l.prefix + key
		if _, ok := os.LookupEnv(key); ok && !l.override {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}
