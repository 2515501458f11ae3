//go:build !windows

package os

// DefaultConvention 当前平台的 ping 调用约定
func DefaultConvention() Convention {
	return PosixConvention
}
