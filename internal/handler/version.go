package handler

import (
	"net/http"
	"os"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/osse101/QuizDuel_Go/internal/handler.Version=..."
var (
	Version   = ""
	BuildTime = ""
	GitCommit = ""
)

// VersionInfo describes the running binary
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	BuildTime string `json:"build_time,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
}

// HandleVersion reports build information
// @Summary Build information
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion() http.HandlerFunc {
	info := buildInfo()
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, info)
	}
}

// buildInfo prefers ldflags, then the VERSION variable, then VCS stamps from the toolchain
func buildInfo() VersionInfo {
	info := VersionInfo{
		Version:   firstNonEmpty(Version, os.Getenv("VERSION"), "dev"),
		GoVersion: runtime.Version(),
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.GitCommit = firstNonEmpty(info.GitCommit, s.Value)
			case "vcs.time":
				info.BuildTime = firstNonEmpty(info.BuildTime, s.Value)
			}
		}
	}
	return info
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
