// score 无头评分工具
//
// 读取一条记录（kintone 或本地 JSON 文件）和一份放置日志，
// 用游戏内相同的评分算法计算得分并打印匹配情况。
//
// 用法：
//
//	score -record 42                       # 从 kintone 读取记录，使用记录里的放置日志
//	score -record-file rec.json -log log.json
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/fukuwarai/pkg/config"
	"github.com/decker502/fukuwarai/pkg/kintone"
	"github.com/decker502/fukuwarai/pkg/scoring"
	"github.com/gookit/color"
	"github.com/zyedidia/generic/mapset"
	"golang.org/x/term"
)

var (
	styleTitle   = color.Style{color.FgCyan, color.OpBold}
	styleScore   = color.Style{color.FgGreen, color.OpBold}
	styleMatched = color.Style{color.FgGreen}
	styleMissing = color.Style{color.FgRed, color.OpBold}
	styleSubtle  = color.Style{color.FgGray}
)

type options struct {
	recordID   string
	recordFile string
	logFile    string
	configPath string
	envFile    string
}

func main() {
	var opts options
	verbose := flag.Bool("verbose", false, "启用详细日志")
	flag.StringVar(&opts.recordID, "record", "", "从 kintone 读取的记录 ID")
	flag.StringVar(&opts.recordFile, "record-file", "", "本地记录 JSON（GET /k/v1/record.json 的响应）")
	flag.StringVar(&opts.logFile, "log", "", "放置日志 JSON，省略时使用记录中的放置日志字段")
	flag.StringVar(&opts.configPath, "config", "", "YAML 配置文件（字段代码、kintone 连接）")
	flag.StringVar(&opts.envFile, "env", ".env", "提供 KINTONE_* 环境变量的 .env 文件")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}
	// 输出被重定向时不使用颜色
	color.Enable = term.IsTerminal(int(os.Stdout.Fd()))

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, styleMissing.Sprint("Error: "+err.Error()))
		os.Exit(1)
	}
}

// run 读取记录和放置日志并打印评分结果
func run(ctx context.Context, opts options, out io.Writer) error {
	if (opts.recordID == "") == (opts.recordFile == "") {
		return errors.New("exactly one of -record or -record-file is required")
	}

	cfg := config.DefaultAppConfig()
	if opts.configPath != "" {
		loaded, err := config.LoadAppConfig(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	rec, err := loadRecord(ctx, cfg, opts)
	if err != nil {
		return err
	}

	var logData []byte
	if opts.logFile != "" {
		logData, err = os.ReadFile(opts.logFile)
		if err != nil {
			return fmt.Errorf("failed to read play log: %w", err)
		}
	} else {
		logData = []byte(rec.Text(cfg.Fields.PlayLog))
		if len(logData) == 0 {
			return fmt.Errorf("record %s has no play log (field %s); pass -log", rec.ID(), cfg.Fields.PlayLog)
		}
	}
	placements, err := scoring.DecodePlayLog(logData)
	if err != nil {
		return err
	}

	report(out, rec, cfg.Fields, placements)
	return nil
}

func loadRecord(ctx context.Context, cfg *config.AppConfig, opts options) (*kintone.Record, error) {
	if opts.recordFile != "" {
		data, err := os.ReadFile(opts.recordFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read record file: %w", err)
		}
		return kintone.ParseRecord(data)
	}

	if err := cfg.ApplyEnv(opts.envFile); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置无效: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, kintone.DefaultTimeout)
	defer cancel()
	return kintone.NewClient(cfg.Kintone).GetRecord(ctx, opts.recordID)
}

// report 打印每个放置的匹配情况、总分以及与记录中已保存分数的比较
// 只读取评分相关的字段，不依赖游戏会话（避免链接图形库）
func report(out io.Writer, rec *kintone.Record, fields config.FieldCodes, placements []scoring.Placement) {
	weight := scoring.CoerceWeight(rec.Text(fields.DifficultyWeight))
	targets, err := scoring.DecodeTargets(rec.Text(fields.TargetCoordinates))

	fmt.Fprint(out, styleTitle.Sprintf("Record #%s (revision %s)\n", rec.ID(), rec.Revision()))
	if err != nil {
		log.Printf("[Score] Warning: record %s: %v", rec.ID(), err)
		fmt.Fprint(out, styleMissing.Sprint("  target coordinates are invalid, scoring without targets\n"))
	}
	fmt.Fprintf(out, "  targets: %d  placements: %d  weight: %g\n", len(targets), len(placements), weight)

	unmatched := scoring.UnmatchedNames(placements, targets)
	missing := mapset.New[string]()
	for _, name := range unmatched {
		missing.Put(name)
	}
	for _, p := range placements {
		if missing.Has(p.Name) {
			fmt.Fprint(out, styleMissing.Sprintf("  ✗ %-20s (%.1f, %.1f)  no target\n", p.Name, p.X, p.Y))
			continue
		}
		d := scoring.WeightedDistance([]scoring.Placement{p}, targets, weight)
		fmt.Fprint(out, styleMatched.Sprintf("  ✓ %-20s (%.1f, %.1f)  -%.1f\n", p.Name, p.X, p.Y, d))
	}

	score := scoring.Score(placements, targets, weight)
	fmt.Fprint(out, styleScore.Sprintf("Score: %d\n", score))

	if stored, ok := rec.Number(fields.Score); ok {
		if int(stored) == score {
			fmt.Fprint(out, styleSubtle.Sprint("  matches the stored score\n"))
		} else {
			fmt.Fprint(out, styleMissing.Sprintf("  stored score is %d\n", int(stored)))
		}
	}
}
