package tool

import (
	"flag"

	"github.com/hdcinema/linkstream/types"
)

// SetFlags parses CLI flags and returns the override config.
func SetFlags() types.Config {
	var cfg types.Config
	flag.StringVar(&cfg.Log, "log", "", "log mode: dev|prod|none")
	flag.StringVar(&cfg.UseConfigPath, "useConfigPath", "", "override config file path")
	flag.IntVar(&cfg.UsePort, "usePort", 0, "override HTTP port")
	flag.StringVar(&cfg.UseBaseURL, "useBaseUrl", "", "override public base URL")
	flag.StringVar(&cfg.UseLinkFile, "useLinkFile", "", "override permanent link file path")
	flag.Parse()
	return cfg
}
