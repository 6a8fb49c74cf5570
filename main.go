package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/fukuwarai/pkg/app"
	"github.com/decker502/fukuwarai/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	recordID   = flag.String("record", "", "要游玩的 kintone 记录 ID（必需）")
	configPath = flag.String("config", "", "YAML 配置文件，为空时使用内嵌的 data/config/fukuwarai.yaml")
	envFile    = flag.String("env", ".env", "包含 KINTONE_* 环境变量的文件，不存在时忽略")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()

	if *recordID == "" {
		fmt.Fprintln(os.Stderr, "usage: fukuwarai -record <id> [-config file.yaml] [-env .env] [-verbose]")
		os.Exit(2)
	}

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		RecordID:   *recordID,
		ConfigPath: *configPath,
		EnvFile:    *envFile,
	})
	if err != nil {
		// 非 verbose 模式下 log 输出被丢弃，直接写到 stderr
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer gameApp.Close()

	width, height := gameApp.WindowSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(gameApp.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(gameApp.StartFullscreen())

	if err := ebiten.RunGame(gameApp); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		gameApp.Close()
		os.Exit(1)
	}
}
