package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/valyala/fastrand"
	"github.com/wolf-joe/ts-domains/config"
	"github.com/wolf-joe/ts-domains/inbound"
	"github.com/wolf-joe/ts-domains/metrics"
	"github.com/wolf-joe/ts-domains/utils"
)

// VERSION 程序版本号
var VERSION = "v0.1.0-dev"

// 全局命令行参数
type options struct {
	confFile    string
	logLevel    string
	metricsFile string
}

// 读取配置、初始化logger，返回带logger的ctx
func (opts *options) setup(cmd *cobra.Command) (context.Context, *config.Conf, error) {
	logID := uint16(fastrand.Uint32n(1 << 16))
	conf := config.NewDefaultConf()
	if opts.confFile != "" {
		var err error
		if conf, err = config.NewConfByFile(utils.NewCtx(nil, logID), opts.confFile); err != nil {
			return nil, nil, err
		}
	}
	if opts.logLevel != "" {
		conf.LogLevel = opts.logLevel
	}
	logger, err := utils.NewLogger(cmd.ErrOrStderr(), conf.LogLevel)
	if err != nil {
		utils.CtxError(utils.NewCtx(nil, logID), "parse log level %q error: %s", conf.LogLevel, err)
		return nil, nil, err
	}
	return utils.WithLogger(cmd.Context(), logger, logID), conf, nil
}

// 处理标准输入，结束后按需导出指标
func (opts *options) serve(ctx context.Context, cmd *cobra.Command, h inbound.Handler, collector *metrics.Collector) error {
	if err := h.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		return err
	}
	if opts.metricsFile != "" {
		if err := collector.WriteToTextfile(opts.metricsFile); err != nil {
			utils.CtxError(ctx, "write metrics %q error: %s", opts.metricsFile, err)
			return err
		}
	}
	return nil
}

func newDomainsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "domains",
		Short: "Check domains against a forbidden list read from stdin",
		Long: "Reads N forbidden domains and M queries from stdin and prints one verdict per query.\n" +
			"Input: N, N lines of domains, M, M lines of domains.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, conf, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			extra, err := conf.GenBlockList(ctx)
			if err != nil {
				return err
			}
			collector := metrics.NewCollector()
			h := inbound.NewDomainHandler(conf.Output.Blocked, conf.Output.Allowed, extra)
			h.Metrics = collector
			return opts.serve(ctx, cmd, h, collector)
		},
	}
}

func newMotivatorCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "motivator",
		Short: "Answer READ/CHEER requests of the reading motivator",
		Long: "Reads Q requests from stdin: \"READ <user> <page>\" or \"CHEER <user>\".\n" +
			"Each CHEER prints the share of other readers behind the user.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			collector := metrics.NewCollector()
			return opts.serve(ctx, cmd, &inbound.MotivatorHandler{Metrics: collector}, collector)
		},
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "ts-domains",
		Short:        "Line oriented domain block checker and reading motivator",
		Version:      VERSION,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.confFile, "config", "c", "", "config file path (.toml, .yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level, overrides config")
	root.PersistentFlags().StringVar(&opts.metricsFile, "metrics-file", "", "write prometheus metrics to file on exit")
	root.AddCommand(newDomainsCmd(opts), newMotivatorCmd(opts))
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
