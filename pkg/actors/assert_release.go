//go:build !debug

package actors

import "log"

// assertf 发布构建只记录契约错误
// 使用 -tags debug 构建时改为 panic
func assertf(format string, args ...interface{}) {
	log.Printf("[Registry] contract violation: "+format, args...)
}
