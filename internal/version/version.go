// Copyright 2022 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package version implements reading of build version information.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const ourPath = "github.com/zircuit-labs/genesis-ops" // Path to our module

// Version is the release of the toolkit; ldflags may override it.
var Version = "0.3.0-unstable"

// ClientName creates a software name/version identifier, as recorded next to
// compile runs.
func ClientName(clientIdentifier string) string {
	return fmt.Sprintf("%s/v%s/%s", clientIdentifier, Version, runtime.GOARCH)
}

// Info returns the version line and VCS information of the current binary.
//
// When the main package belongs to our module the commit and date recorded by
// the go tool are returned. Otherwise the toolkit is imported by a third
// party and the imported module version is reported instead.
func Info() (version, vcs string) {
	version = fmt.Sprintf("genesisc %s", Version)
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return version, ""
	}
	if buildInfo.Main.Path != ourPath {
		for _, dep := range buildInfo.Deps {
			if dep.Path == ourPath {
				if dep.Replace != nil {
					return version, fmt.Sprintf("%s (replaced by %s)", dep.Version, dep.Replace.Path)
				}
				return version, dep.Version
			}
		}
		return version, ""
	}
	return version, vcsInfo(buildInfo.Settings)
}

func vcsInfo(settings []debug.BuildSetting) string {
	var revision, modified, time string
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			if s.Value == "true" {
				modified = "-dirty"
			}
		case "vcs.time":
			time = s.Value
		}
	}
	if revision == "" {
		return ""
	}
	if len(revision) > 8 {
		revision = revision[:8]
	}
	if time == "" {
		return revision + modified
	}
	return fmt.Sprintf("%s%s-%s", revision, modified, time)
}
