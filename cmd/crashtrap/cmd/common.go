package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/hugo-lorenzo-mato/crashtrap"
	"github.com/hugo-lorenzo-mato/crashtrap/internal/logging"
)

// resolveDir returns the report directory to operate on: an explicit --dir
// wins, otherwise it is derived from --app and the OS temp directory.
func resolveDir() (string, error) {
	if dir := viper.GetString("dir"); dir != "" {
		return dir, nil
	}
	app := viper.GetString("app")
	if app == "" {
		return "", fmt.Errorf("either --app or --dir is required")
	}
	return crashtrap.ReportDir(app), nil
}

func newLogger() *logging.Logger {
	return logging.New(logging.Config{
		Level:  viper.GetString("log.level"),
		Format: viper.GetString("log.format"),
	})
}
