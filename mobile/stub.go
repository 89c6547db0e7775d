//go:build !mobile

// stub.go - 非移动端构建时的占位文件
//
// 实际的移动端代码在 mobile.go 和 embed.go 中，
// 仅在使用 -tags mobile 时编译。
package mobile

// SaveOnExit 非移动端无操作
func SaveOnExit() bool { return true }

// Dummy 是一个空导出函数，确保包在非移动端构建时也能被引用
func Dummy() {}
