// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package cmd

import (
	"strconv"

	"github.com/spf13/pflag"
)

// lenientUint32 is a flag value that ignores malformed input and keeps
// whatever value it held before.
type lenientUint32 struct {
	value uint32
}

var _ pflag.Value = (*lenientUint32)(nil)

func (v *lenientUint32) String() string {
	return strconv.FormatUint(uint64(v.value), 10)
}

func (v *lenientUint32) Set(s string) error {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		logger.Debugf("ignoring malformed value %q", s)
		return nil
	}
	v.value = uint32(n)
	return nil
}

func (v *lenientUint32) Type() string {
	return "uint"
}
