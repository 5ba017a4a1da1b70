// Package version reports how the modman binary was built. The variables
// are overridden at link time, for example:
//
//	go build -ldflags "-X github.com/quantmind-br/modman/pkg/version.Version=1.0.0"
package version

import (
	"fmt"
	"runtime"
)

// Name is the binary name printed by modman version
const Name = "modman"

// Set via -ldflags -X
var (
	Version   = "dev"
	BuildTime = "unknown"
	Commit    = "unknown"
)

// Info describes a modman build
type Info struct {
	Name      string `json:"name" yaml:"name"`
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildTime string `json:"build_time" yaml:"build_time"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the build info of the running binary
func Get() Info {
	return Info{
		Name:      Name,
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func (i Info) String() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s, %s %s)",
		i.Name, i.Version, i.Commit, i.BuildTime, i.GoVersion, i.Platform)
}

// Short returns the bare version, as used by modman --version
func Short() string {
	return Version
}

// Full returns the line printed by modman version
func Full() string {
	return Get().String()
}
