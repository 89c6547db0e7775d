package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"

	"github.com/decker502/ninjafruit/pkg/app"
	"github.com/decker502/ninjafruit/pkg/config"
	"github.com/decker502/ninjafruit/pkg/embedded"
)

// 环境变量（可写在 .env 中）
const (
	envPoseAddr = "NINJAFRUIT_POSE_ADDR"
	envVerbose  = "NINJAFRUIT_VERBOSE"
)

var (
	// 命令行参数
	verbose    = flag.Bool("verbose", false, "显示详细日志")
	configPath = flag.String("config", "", "外部游戏配置文件（默认使用内置 data/config/game.yaml）")
	poseAddr   = flag.String("pose-addr", "", "手部关键点 WebSocket 监听地址（覆盖配置文件）")
	noPose     = flag.Bool("no-pose", false, "不启动手部关键点服务")
)

func main() {
	// .env 可选
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[Main] Warning: failed to load .env: %v", err)
	}
	flag.Parse()

	embedded.Init(dataFS)

	cfg := app.Config{
		Verbose:     *verbose || envBool(envVerbose),
		ConfigPath:  *configPath,
		PoseAddr:    *poseAddr,
		DisablePose: *noPose,
	}
	if cfg.PoseAddr == "" {
		cfg.PoseAddr = os.Getenv(envPoseAddr)
	}

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Ninja Fruit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(gameApp)
	gameApp.Shutdown()
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		log.SetOutput(os.Stderr)
		log.Fatal(runErr)
	}
}

// envBool 解析布尔环境变量，未设置或无法解析时返回 false
func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
