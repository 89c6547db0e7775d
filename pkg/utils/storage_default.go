//go:build !android

package utils

// EnsureStorageDir 桌面端由 gdata 自行创建目录
func EnsureStorageDir() error {
	return nil
}

// GetStoragePath 桌面端不需要额外的存档目录
func GetStoragePath() string {
	return ""
}
