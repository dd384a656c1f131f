// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version carries build metadata stamped in via ldflags.
package version

import "fmt"

// Info identifies a build of the indublog binary.
type Info struct {
	Version   string // git tag, "dev" for untagged builds
	GitCommit string // short commit hash
	BuildTime string // RFC3339 build timestamp
}

// String renders the info the way the -version flag prints it.
func (i Info) String() string {
	return fmt.Sprintf("indublog %s (%s, built %s)", i.Version, i.GitCommit, i.BuildTime)
}
