package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/replicate/releasegate/pkg/env"
	"github.com/replicate/releasegate/pkg/errors"
	"github.com/replicate/releasegate/pkg/global"
	"github.com/replicate/releasegate/pkg/util/console"
	"github.com/replicate/releasegate/pkg/util/files"
)

const maxSearchDepth = 100

// Load reads, completes and validates the config.
//
// The file is, in order of preference: explicitPath, $RELEASEGATE_CONFIG, the
// nearest .releasegate.yaml in the working directory or its parents, and
// ~/.releasegate.yaml. With none of those the defaults are used.
func Load(explicitPath string) (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return LoadFromDir(cwd, explicitPath)
}

func LoadFromDir(dir string, explicitPath string) (*Config, error) {
	configPath, err := findConfigPath(dir, explicitPath)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if configPath != "" {
		console.Debugf("Loading config from %s", configPath)
		cfg, err = Parse(configPath)
		if err != nil {
			return nil, err
		}
	} else {
		console.Debugf("No %s found, using defaults", global.ConfigFilename)
	}

	if err := cfg.ValidateAndComplete(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigPath returns the config file to load, or "" when there is none.
func findConfigPath(dir string, explicitPath string) (string, error) {
	if explicitPath == "" {
		explicitPath = env.ConfigPathFromEnvironment()
	}
	if explicitPath != "" {
		return explicitPath, nil
	}

	switch rootDir, err := findProjectRootDir(dir, global.ConfigFilename); {
	case err == nil:
		return path.Join(rootDir, global.ConfigFilename), nil
	case !errors.IsConfigNotFound(err):
		return "", err
	}

	homePath, err := homedir.Expand("~/" + global.ConfigFilename)
	if err != nil {
		console.Debugf("Cannot locate home directory: %s", err)
		return "", nil
	}
	exists, err := files.IsFile(homePath)
	if err != nil {
		return "", err
	}
	if exists {
		return homePath, nil
	}
	return "", nil
}

// Given a directory, find the config file in that directory
func findConfigPathInDirectory(dir string, configFilename string) (configPath string, err error) {
	filePath := path.Join(dir, configFilename)
	exists, err := files.IsFile(filePath)
	if err != nil {
		return "", fmt.Errorf("Failed to scan directory %s for %s: %s", dir, filePath, err)
	} else if exists {
		return filePath, nil
	}

	return "", errors.ConfigNotFound(fmt.Sprintf("%s not found in %s", configFilename, dir))
}

// Walk up the directory tree to find the directory housing the config file.
func findProjectRootDir(startDir string, configFilename string) (string, error) {
	dir := startDir
	for i := 0; i < maxSearchDepth; i++ {
		switch _, err := findConfigPathInDirectory(dir, configFilename); {
		case err != nil && !errors.IsConfigNotFound(err):
			return "", err
		case err == nil:
			return dir, nil
		case dir == "." || dir == "/" || dir == filepath.Dir(dir):
			return "", errors.ConfigNotFound(fmt.Sprintf("%s not found in %s (or in any parent directories)", configFilename, startDir))
		}

		dir = filepath.Dir(dir)
	}

	return "", errors.ConfigNotFound(fmt.Sprintf("No %s found in parent directories.", configFilename))
}
