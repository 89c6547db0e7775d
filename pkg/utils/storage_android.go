//go:build android

package utils

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在 gdata 打开之前准备 Android 的存档目录
// gdata 使用 /data/data/{package}/ 存放数据，但不会创建子目录
func EnsureStorageDir() error {
	dir := GetStoragePath()
	if dir == "" {
		return errors.New("cannot resolve android package name")
	}
	saves := filepath.Join(dir, "saves")
	if err := os.MkdirAll(saves, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", saves, err)
	}

	probe := filepath.Join(saves, ".probe")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return fmt.Errorf("%s is not writable: %w", saves, err)
	}
	return os.Remove(probe)
}

// GetStoragePath 返回应用私有目录 /data/data/{package}
// 包名取自 /proc/self/cmdline 的第一个参数
func GetStoragePath() string {
	cmdline, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	name, _, _ := bytes.Cut(cmdline, []byte{0})
	name = bytes.TrimSpace(name)
	if len(name) == 0 {
		return ""
	}
	return filepath.Join("/data/data", string(name))
}
