package os

// 平台标识
const (
	PlatformWindows = "windows"
	PlatformPosix   = "posix"
	PlatformNative  = "native"
)

// Convention ping 的调用约定
// 启动时选定一次，注入给 CommandProber，不在每次探测时重新判断
type Convention struct {
	Platform     string
	CountFlag    string
	TimeoutFlag  string
	TimeoutValue string
}

var (
	// WindowsConvention ping -n 1 -w 1 <host>
	WindowsConvention = Convention{
		Platform:     PlatformWindows,
		CountFlag:    "-n",
		TimeoutFlag:  "-w",
		TimeoutValue: "1",
	}

	// PosixConvention ping -c 1 -w 1 <host>
	PosixConvention = Convention{
		Platform:     PlatformPosix,
		CountFlag:    "-c",
		TimeoutFlag:  "-w",
		TimeoutValue: "1",
	}
)

// Args 构造单次探测的命令行参数
func (c Convention) Args(host string) []string {
	return []string{c.CountFlag, "1", c.TimeoutFlag, c.TimeoutValue, host}
}
