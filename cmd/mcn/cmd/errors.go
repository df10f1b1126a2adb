// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package cmd

import (
	"fmt"

	"github.com/juju/errors"
)

// usageError marks a failure caused by how the command was invoked.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func usageErrorf(format string, args ...interface{}) error {
	return errors.Trace(&usageError{msg: fmt.Sprintf(format, args...)})
}

// IsUsageError reports whether err was caused by a bad invocation.
func IsUsageError(err error) bool {
	_, ok := errors.Cause(err).(*usageError)
	return ok
}
