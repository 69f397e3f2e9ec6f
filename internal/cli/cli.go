// Package cli 集中四个可执行程序共用的外围逻辑：
// 版本号、日志器构造、RunReport 的终端/管道双态输出。
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gbabineau/statelist/internal/domain"
)

// Version 由构建注入（-ldflags "-X .../internal/cli.Version=v1.2.3"）。
var Version = "0.0.0-dev"

// NewLogger 构造标准日志器：JSON 结构化，输出到 stderr。
// 默认只输出 Warn 及以上；verbose 打开 Debug。
// stdout 保留给 RunReport，日志绝不写 stdout。
func NewLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		// 固定配置构造失败只可能是编程错误。
		panic(err)
	}
	return log.Named("statelist")
}

// EmitReport 输出批次结果。
// - stdout 是 TTY：打印人类可读摘要；问题明细走 stderr
// - stdout 非 TTY：stdout 必须且仅输出一个 RunReport JSON（摘要走 stderr）
func EmitReport(rr domain.RunReport) {
	summary := fmt.Sprintf("完成：rows=%d resolved=%d not_found=%d ambiguous=%d dropped=%d",
		rr.Summary.Rows, rr.Summary.Resolved, rr.Summary.NotFound, rr.Summary.Ambiguous, rr.Summary.Dropped,
	)

	if IsTTY(os.Stdout) {
		fmt.Fprintln(os.Stdout, summary)
		for _, is := range rr.Issues {
			anchor := is.Name
			if anchor == "" {
				anchor = fmt.Sprintf("第 %d 行", is.Line)
			}
			fmt.Fprintf(os.Stderr, "%s %s: %s\n", anchor, is.Kind, is.Msg)
		}
		return
	}

	enc := json.NewEncoder(os.Stdout)
	_ = enc.Encode(rr)
	fmt.Fprintln(os.Stderr, summary)
}

// Args 是四个可执行程序共同的参数形态：一个主输入文件加两个开关。
type Args struct {
	File    string
	Verbose bool
	Version bool
}

// ParseArgs 解析共同参数。fileFlag 是主输入文件的长参数名
// （update-state-list 用 common_names_file，文档生成用 official_list_csv）。
func ParseArgs(args []string, fileFlag string) (Args, error) {
	var out Args
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--"+fileFlag:
			if i+1 >= len(args) {
				return Args{}, fmt.Errorf("--%s 需要一个值", fileFlag)
			}
			i++
			out.File = args[i]
		case strings.HasPrefix(a, "--"+fileFlag+"="):
			out.File = strings.TrimPrefix(a, "--"+fileFlag+"=")
		case a == "--verbose":
			out.Verbose = true
		case a == "--version":
			out.Version = true
		default:
			return Args{}, fmt.Errorf("未知参数 %q", a)
		}
	}
	return out, nil
}

// IsHelp 判断 s 是否是求助参数。
func IsHelp(s string) bool {
	return s == "-h" || s == "--help" || s == "help"
}

// IsTTY 判断 f 是否连接到交互终端。
func IsTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
