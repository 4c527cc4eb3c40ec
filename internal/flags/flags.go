package flags

import (
	"flag"
)

// The program's flags
var (
	// CfgPathFlag is the path to the configuration file
	CfgPathFlag string

	// VerboseFlag enables debug logging
	VerboseFlag bool
)

// defaultConfigFilePath is the default path for the configuration file
const defaultConfigFilePath = "./config.toml"

// init initializes the command-line flags
func init() {
	flag.StringVar(&CfgPathFlag, "config", defaultConfigFilePath, "path to config file")
	flag.BoolVar(&VerboseFlag, "verbose", false, "enable debug logging")
	flag.Parse()
}
