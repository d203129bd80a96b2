// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"io/fs"

	"github.com/razorheadfx/mediocore/lib/cpufreq"
	"github.com/razorheadfx/mediocore/lib/snapshot"
)

// PrivilegeHint accompanies every permission failure.
const PrivilegeHint = "requires elevated privileges; re-run with sudo"

// Classify wraps a library error in a [ToolError] whose category
// matches the failure. Errors that are already categorized pass
// through unchanged; nil stays nil.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var toolError *ToolError
	if errors.As(err, &toolError) {
		return err
	}

	switch {
	case cpufreq.IsPermission(err):
		return Wrap(CategoryForbidden, err).WithHint(PrivilegeHint)
	case errors.Is(err, cpufreq.ErrUnknownCore):
		return Wrap(CategoryNotFound, err).WithHint("Run 'mdcr show' to list the cores.")
	case cpufreq.IsValidation(err):
		return Wrap(CategoryValidation, err)
	case errors.Is(err, cpufreq.ErrDiscoveryUnavailable):
		return Wrap(CategoryNotFound, err).
			WithHint("Check --sysfs-root, or whether a cpufreq driver is loaded. 'mdcr doctor' checks both.")
	case errors.Is(err, cpufreq.ErrAttributeMissing):
		return Wrap(CategoryNotFound, err)
	case errors.Is(err, snapshot.ErrHardwareMismatch), errors.Is(err, snapshot.ErrCoreMissing):
		return Wrap(CategoryConflict, err)
	case errors.Is(err, snapshot.ErrUnsupportedVersion), errors.Is(err, snapshot.ErrInvalidSnapshot):
		return Wrap(CategoryValidation, err)
	case errors.Is(err, fs.ErrNotExist):
		return Wrap(CategoryNotFound, err)
	default:
		return Wrap(CategoryInternal, err)
	}
}
