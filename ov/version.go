package ov

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// buildNumber is the runtime build this binding surface was generated for.
const buildNumber = "2025.2.0-19140-ovbind"

// Version describes a runtime component build.
type Version struct {
	BuildNumber string
	Description string
}

func (v Version) String() string {
	return fmt.Sprintf("%s %s", v.Description, v.BuildNumber)
}

// Semver returns the build number as a semantic version.
func (v Version) Semver() (*semver.Version, error) {
	return semver.NewVersion(v.BuildNumber)
}

// GetVersion returns the runtime build number.
func GetVersion() string {
	return buildNumber
}

// RuntimeVersion returns the runtime version as a semantic version.
func RuntimeVersion() *semver.Version {
	return semver.MustParse(buildNumber)
}
