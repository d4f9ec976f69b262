// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package asyncapi

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SupportedVersions is the range of document versions that carry
// publish/subscribe channel operations.
const SupportedVersions = ">= 2.0.0, < 3.0.0"

// ErrUnsupportedVersion is returned for documents outside SupportedVersions.
var ErrUnsupportedVersion = errors.New("unsupported asyncapi version")

// CheckVersion validates the document's asyncapi field against SupportedVersions.
func (s *Spec) CheckVersion() error {
	if s.AsyncAPI == "" {
		return fmt.Errorf("%w: asyncapi field is missing", ErrUnsupportedVersion)
	}

	v, err := semver.NewVersion(s.AsyncAPI)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrUnsupportedVersion, s.AsyncAPI, err)
	}

	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s (want %s)", ErrUnsupportedVersion, v, SupportedVersions)
	}
	return nil
}
