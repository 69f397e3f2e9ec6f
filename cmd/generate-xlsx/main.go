// generate-xlsx 把官方名录 CSV 渲染为 Excel 工作簿（同名 .xlsx）。
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/gbabineau/statelist/internal/cli"
	"github.com/gbabineau/statelist/internal/csvio"
	"github.com/gbabineau/statelist/internal/render"
)

func main() {
	if code := run(os.Args[1:]); code != 0 {
		os.Exit(code)
	}
}

func run(args []string) int {
	for _, a := range args {
		if cli.IsHelp(a) {
			printUsage()
			return 0
		}
	}

	fa, err := cli.ParseArgs(args, "official_list_csv")
	if err != nil {
		fmt.Fprintf(os.Stderr, "参数错误：%v\n\n", err)
		printUsage()
		return 2
	}
	if fa.Version {
		fmt.Fprintf(os.Stdout, "generate-xlsx %s\n", cli.Version)
		return 0
	}
	if fa.File == "" {
		fmt.Fprint(os.Stderr, "参数错误：--official_list_csv 是必填项\n\n")
		printUsage()
		return 2
	}

	log := cli.NewLogger(fa.Verbose)
	defer func() { _ = log.Sync() }()

	records, err := csvio.ReadOfficial(fa.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取官方名录失败：%v\n", err)
		return 1
	}

	out := render.OutputPath(fa.File, ".xlsx")
	if err := render.WriteXLSX(out, records); err != nil {
		fmt.Fprintf(os.Stderr, "写入文档失败：%v\n", err)
		return 1
	}
	log.Debug("文档已生成", zap.String("output", out), zap.Int("records", len(records)))
	return 0
}

func printUsage() {
	fmt.Fprint(os.Stdout, `用法：
  generate-xlsx --official_list_csv <csv> [--verbose] [--version]

参数：
  --official_list_csv  update-state-list 产出的官方名录 CSV
  --verbose            输出调试日志（stderr）
  --version            显示版本号
  -h, --help           显示帮助
`)
}
