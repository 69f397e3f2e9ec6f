// update-state-list 读取手工维护的名录 CSV，与 eBird taxonomy 核对，
// 写出按规范顺序排好的 <input_basename>_updated.csv。
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/gbabineau/statelist/internal/app/update"
	"github.com/gbabineau/statelist/internal/cli"
	"github.com/gbabineau/statelist/internal/config"
	"github.com/gbabineau/statelist/internal/infra/httpx"
	"github.com/gbabineau/statelist/internal/taxonomy/ebird"
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

	fa, err := cli.ParseArgs(args, "common_names_file")
	if err != nil {
		fmt.Fprintf(os.Stderr, "参数错误：%v\n\n", err)
		printUsage()
		return 2
	}
	if fa.Version {
		fmt.Fprintf(os.Stdout, "update-state-list %s\n", cli.Version)
		return 0
	}
	if fa.File == "" {
		fmt.Fprint(os.Stderr, "参数错误：--common_names_file 是必填项\n\n")
		printUsage()
		return 2
	}

	log := cli.NewLogger(fa.Verbose)
	defer func() { _ = log.Sync() }()

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取当前目录失败：%v\n", err)
		return 1
	}
	eff, err := config.LoadEffective(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	rr, err := update.Execute(context.Background(), update.Options{
		InputPath: fa.File,
		CacheDir:  eff.CacheDir,
		Source:    ebird.Source{BaseURL: eff.EBirdBaseURL},
		Client:    httpx.NewAPIClient(eff.APIKey),
		Log:       log,
	})
	if err != nil {
		log.Error("批次失败",
			zap.String("error_code", update.FatalCode(err)), zap.Error(err))
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	// 行级问题不改变退出码：名录维护者按 report 逐条修订输入。
	cli.EmitReport(rr)
	return 0
}

func printUsage() {
	fmt.Fprint(os.Stdout, `用法：
  update-state-list --common_names_file <csv> [--verbose] [--version]

参数：
  --common_names_file  名录输入 CSV（列：comName、State Status、Sort as）
  --verbose            输出调试日志（stderr）
  --version            显示版本号
  -h, --help           显示帮助

环境变量：
  EBIRD_API_KEY        eBird API 密钥（申请见 https://ebird.org/api/keygen）
`)
}
