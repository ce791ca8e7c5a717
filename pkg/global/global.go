package global

import (
	"time"
)

var (
	Version             = "0.0.1"
	Commit              = ""
	BuildTime           = "none"
	Verbose             = false
	ConfigFilename      = ".releasegate.yaml"
	DefaultPollInterval = 5 * time.Second
	DefaultTravisAPIURL = "https://api.travis-ci.com"
)
