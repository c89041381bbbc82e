// nurseplan 护士排班优化服务与命令行工具
package main

import (
	"os"
)

// 版本信息（构建时通过 -ldflags 注入）
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
