// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

import (
	"os"

	"github.com/gnuobjc/objcrt/internal/log"
)

// Options configures a Runtime, mirroring saferwall/pe's Options{Fast,
// SectionEntropy, MaxCOFFSymbolsCount, ...} pattern: a value struct with
// zero-value defaults resolved once at construction time.
type Options struct {
	// SelectorKeyMode chooses selector identity policy. Zero value is
	// KeyNameAndType.
	SelectorKeyMode SelectorKeyMode

	// ShortCircuitSelf enables the optional `self` fast path in
	// msg_lookup. Off by default.
	ShortCircuitSelf bool

	// RequireSignedModules rejects exec_class calls whose module image
	// has no valid signature (signing.go). Off by default.
	RequireSignedModules bool

	// TrustedCertPool is consulted by verifyModuleSignature when
	// RequireSignedModules is set.
	TrustedCertPool []byte

	// MaxOrphanDrainPasses is not read by the loader: the orphan,
	// category and method drain loops always run until a pass makes no
	// progress, whatever this field holds. A drain loop is bounded
	// naturally by queue size.
	MaxOrphanDrainPasses int

	// Logger receives load- and dispatch-path diagnostics. A nil Logger
	// defaults to a stderr logger filtered to LevelError, exactly as
	// saferwall/pe's File defaults when Options.Logger is nil.
	Logger log.Logger
}

func normalizeOptions(opts *Options) *Options {
	if opts == nil {
		opts = &Options{}
	}
	out := *opts
	if out.Logger == nil {
		out.Logger = log.NewFilter(log.NewStdLogger(os.Stderr), log.FilterLevel(log.LevelError))
	}
	return &out
}
