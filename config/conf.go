package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/wolf-joe/ts-domains/matcher"
	"github.com/wolf-joe/ts-domains/utils"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultBlocked 被屏蔽域名的输出
	DefaultBlocked = "Bad"
	// DefaultAllowed 未被屏蔽域名的输出
	DefaultAllowed = "Good"
	// DefaultLogLevel 默认日志级别
	DefaultLogLevel = "warn"
)

// Output 配置文件中output section对应的结构
type Output struct {
	Blocked string `toml:"blocked" yaml:"blocked"`
	Allowed string `toml:"allowed" yaml:"allowed"`
}

// Conf 配置文件总体结构
type Conf struct {
	LogLevel      string   `toml:"log_level" yaml:"log_level"`
	Output        Output   `toml:"output" yaml:"output"`
	Blocked       []string `toml:"blocked" yaml:"blocked"`
	BlockFiles    []string `toml:"block_files" yaml:"block_files"`
	BlockFilesB64 bool     `toml:"block_files_b64" yaml:"block_files_b64"`
}

// SetDefault 为部分字段设置默认值
func (conf *Conf) SetDefault() {
	if conf.LogLevel == "" {
		conf.LogLevel = DefaultLogLevel
	}
	if conf.Output.Blocked == "" {
		conf.Output.Blocked = DefaultBlocked
	}
	if conf.Output.Allowed == "" {
		conf.Output.Allowed = DefaultAllowed
	}
}

// Validate 检查配置有效性
func (conf *Conf) Validate() error {
	if conf.Output.Blocked == conf.Output.Allowed {
		return errors.New("output tokens for blocked and allowed must differ")
	}
	if strings.ContainsAny(conf.Output.Blocked+conf.Output.Allowed, "\r\n") {
		return errors.New("output tokens must be single line")
	}
	return nil
}

// NewDefaultConf 返回只含默认值的配置
func NewDefaultConf() *Conf {
	conf := &Conf{}
	conf.SetDefault()
	return conf
}

// NewConfByText 从文本中读取配置，format为yaml或toml
func NewConfByText(ctx context.Context, text, format string) (*Conf, error) {
	conf := &Conf{}
	var err error
	switch format {
	case "yaml":
		err = yaml.Unmarshal([]byte(text), conf)
	case "toml":
		_, err = toml.Decode(text, conf)
	default:
		err = fmt.Errorf("unknown config format %q", format)
	}
	if err != nil {
		utils.CtxError(ctx, "decode %s config error: %s", format, err)
		return nil, err
	}
	conf.SetDefault()
	if err = conf.Validate(); err != nil {
		utils.CtxError(ctx, "invalid config: %s", err)
		return nil, err
	}
	return conf, nil
}

// NewConfByFile 从文件中读取配置，.yaml/.yml按yaml解析，其余按toml解析
func NewConfByFile(ctx context.Context, filename string) (*Conf, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		utils.CtxError(ctx, "read file %q error: %s", filename, err)
		return nil, err
	}
	format := "toml"
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		format = "yaml"
	}
	return NewConfByText(ctx, string(data), format)
}

// GenBlockList 汇总blocked和block_files里的域名，多个文件并发读取，结果保持配置中的顺序
func (conf *Conf) GenBlockList(ctx context.Context) ([]matcher.Domain, error) {
	parts := make([][]matcher.Domain, len(conf.BlockFiles))
	g, gctx := errgroup.WithContext(ctx)
	for i, filename := range conf.BlockFiles {
		i, filename := i, filename
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := matcher.ReadListFile(filename, conf.BlockFilesB64)
			if err != nil {
				utils.CtxError(ctx, "read block file %q error: %s", filename, err)
				return err
			}
			parts[i] = matcher.ParseDomainList(text)
			utils.CtxInfo(ctx, "read %d domains from %s", len(parts[i]), filename)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	domains := matcher.ParseDomainList(strings.Join(conf.Blocked, "\n"))
	for _, part := range parts {
		domains = append(domains, part...)
	}
	return domains, nil
}
