package inbound

import (
	"bufio"
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/wolf-joe/ts-domains/matcher"
	"github.com/wolf-joe/ts-domains/metrics"
	"github.com/wolf-joe/ts-domains/utils"
)

// DomainHandler 读取屏蔽域名列表和待查询域名，逐个输出查询结果
type DomainHandler struct {
	Blocked string           // 被屏蔽时的输出
	Allowed string           // 未被屏蔽时的输出
	Extra   []matcher.Domain // 额外的屏蔽域名，如配置文件中的列表
	Metrics *metrics.Collector

	set *matcher.DomainSet
}

// NewDomainHandler 创建DomainHandler
func NewDomainHandler(blocked, allowed string, extra []matcher.Domain) *DomainHandler {
	return &DomainHandler{Blocked: blocked, Allowed: allowed, Extra: extra}
}

// Set 返回最近一次Serve构造的屏蔽集合
func (h *DomainHandler) Set() *matcher.DomainSet {
	return h.set
}

// 读取count行域名，域名内容不做校验
func readDomains(ctx context.Context, reader *tokenReader, name string) ([]matcher.Domain, error) {
	n, err := reader.count(name)
	if err != nil {
		return nil, err
	}
	// 数量来自输入，预分配容量需要设上限
	domains := make([]matcher.Domain, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		var line string
		if line, err = reader.next(); err != nil {
			return nil, err
		}
		domains = append(domains, matcher.NewDomain(line))
	}
	return domains, nil
}

// Serve 输入格式：数量N、N行屏蔽域名、数量M、M行待查询域名；每个查询输出一行结果
func (h *DomainHandler) Serve(ctx context.Context, r io.Reader, w io.Writer) (err error) {
	reader := newLineReader(r)
	forbidden, err := readDomains(ctx, reader, "forbidden count")
	if err != nil {
		utils.CtxError(ctx, "read forbidden domains error: %s", err)
		return err
	}
	input := len(forbidden) + len(h.Extra)
	h.set = matcher.NewDomainSet(append(forbidden, h.Extra...))
	h.Metrics.ObserveSet(input, h.set.Len())
	utils.CtxInfo(utils.WithFields(ctx, logrus.Fields{
		"input": input, "retained": h.set.Len(),
	}), "domain set built, digest %016x", h.set.Digest())

	n, err := reader.count("query count")
	if err != nil {
		utils.CtxError(ctx, "read query count error: %s", err)
		return err
	}
	writer := bufio.NewWriter(w)
	defer func() {
		if flushErr := writer.Flush(); err == nil {
			err = flushErr
		}
	}()
	blocked := 0
	for i := 0; i < n; i++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		var line string
		if line, err = reader.next(); err != nil {
			utils.CtxError(ctx, "read query error: %s", err)
			return err
		}
		forbid := h.set.IsForbidden(matcher.NewDomain(line))
		h.Metrics.ObserveVerdict(forbid)
		token := h.Allowed
		if forbid {
			token, blocked = h.Blocked, blocked+1
			utils.CtxDebug(ctx, "%q blocked", line)
		}
		if _, err = writer.WriteString(token + "\n"); err != nil {
			return err
		}
	}
	utils.CtxInfo(ctx, "answered %d queries, %d blocked", n, blocked)
	return nil
}
