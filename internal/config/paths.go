package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrz1836/breathe/internal/constants"
	"github.com/mrz1836/breathe/internal/errors"
)

// HomeEnvVar overrides the global breathe directory when set.
const HomeEnvVar = "BREATHE_HOME"

// GlobalConfigDir returns the path to the global breathe directory.
// This is $BREATHE_HOME when set, otherwise ~/.breathe.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigDir() (string, error) {
	if dir := os.Getenv(HomeEnvVar); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.BreatheHome), nil
}

// ProjectConfigDir returns the relative path to the project configuration directory.
func ProjectConfigDir() string {
	return constants.BreatheHome
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// ProjectConfigPath returns the relative path to the project configuration file.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir(), constants.GlobalConfigName)
}

// GlobalPatternsDir returns the default directory for user pattern files.
func GlobalPatternsDir() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.PatternsDir), nil
}

// LogDir returns the directory for rotating log files.
func LogDir() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.LogsDir), nil
}
