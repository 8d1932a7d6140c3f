package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/rxtech-lab/trendscout/pkg/errors"
)

// CheckConfigCompatibility checks that a config file written by configVersion can be
// read by binaryVersion.
//
// Compatibility Rules:
//   - An empty config version or "main" on either side skips the check
//   - Major versions must match exactly
//   - Minor versions must match exactly
//   - Patch versions can differ
//
// Examples:
//   - Binary 0.3.0, Config 0.3.0 -> OK
//   - Binary 0.3.2, Config 0.3.0 -> OK
//   - Binary 0.4.0, Config 0.3.0 -> ERROR (minor differs)
//   - Binary 1.0.0, Config 0.3.0 -> ERROR (major differs)
func CheckConfigCompatibility(binaryVersion, configVersion string) error {
	binaryVersion = strings.TrimPrefix(binaryVersion, "v")
	configVersion = strings.TrimPrefix(configVersion, "v")

	if configVersion == "" || binaryVersion == "main" || configVersion == "main" {
		return nil
	}

	binarySemver, err := semver.NewVersion(binaryVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid binary version '%s'", binaryVersion)
	}

	configSemver, err := semver.NewVersion(configVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid config version '%s'", configVersion)
	}

	if binarySemver.Major() != configSemver.Major() {
		return errors.Newf(errors.ErrCodeInvalidConfiguration,
			"major version mismatch: binary is %d.x.x but config was written for %d.x.x",
			binarySemver.Major(), configSemver.Major())
	}

	if binarySemver.Minor() != configSemver.Minor() {
		return errors.Newf(errors.ErrCodeInvalidConfiguration,
			"minor version mismatch: binary is %d.%d.x but config was written for %d.%d.x",
			binarySemver.Major(), binarySemver.Minor(),
			configSemver.Major(), configSemver.Minor())
	}

	return nil
}
