//go:build debug

package actors

import "fmt"

// assertf 在 debug 构建下将契约错误转为 panic
func assertf(format string, args ...interface{}) {
	panic(fmt.Sprintf("[Registry] contract violation: "+format, args...))
}
