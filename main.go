package main

import (
	"os"

	"github.com/sitesmith/sitesmith/cmd"
	"github.com/sitesmith/sitesmith/pkg/logging"
)

func main() {
	logger := logging.GetLogger()
	defer func() {
		if err := logger.Close(); err != nil {
			os.Stderr.WriteString("Error closing logger: " + err.Error() + "\n")
		}
	}()

	if err := cmd.Execute(); err != nil {
		logger.LogError(err)
		os.Exit(1)
	}
}
