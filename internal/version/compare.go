package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// CheckCompatibility checks engineVersion against the semver constraint a
// run config declares, e.g. "^1.0" or ">= 1.2, < 2".
//
// Rules:
//   - An empty constraint accepts every engine
//   - A "main" engine (development build) accepts every constraint
//   - Otherwise the engine version must satisfy the constraint
func CheckCompatibility(engineVersion, constraint string) error {
	constraint = strings.TrimSpace(constraint)
	if constraint == "" {
		return nil
	}

	engineVersion = strings.TrimPrefix(engineVersion, "v")
	if engineVersion == "main" {
		return nil
	}

	engineSemver, err := semver.NewVersion(engineVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid engine version '%s'", engineVersion)
	}

	constraints, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid version constraint '%s'", constraint)
	}

	ok, reasons := constraints.Validate(engineSemver)
	if !ok {
		messages := make([]string, 0, len(reasons))
		for _, reason := range reasons {
			messages = append(messages, reason.Error())
		}

		return errors.Newf(errors.ErrCodeVersionMismatch, "engine %s does not satisfy %s: %s",
			engineSemver.String(), constraint, strings.Join(messages, "; "))
	}

	return nil
}

// CheckCurrent checks the running engine against constraint.
func CheckCurrent(constraint string) error {
	return CheckCompatibility(GetVersion(), constraint)
}
