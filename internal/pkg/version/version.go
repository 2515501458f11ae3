// 发布时更新 Version，BuildTime / GitCommit / GoVersion 由 -ldflags 注入:
//
//	go build -ldflags "-X ttlfinger/internal/pkg/version.GitCommit=$(git rev-parse --short HEAD)"
package version

import "runtime"

var (
	Version   = "0.3.0"
	BuildTime string
	GitCommit string
	GoVersion = runtime.Version()
)

func GetVersion() string {
	return Version
}

// GetFullVersion 带提交号的版本，未注入时与 GetVersion 相同
func GetFullVersion() string {
	if GitCommit == "" {
		return Version
	}
	return Version + "+" + GitCommit
}
