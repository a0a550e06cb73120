package inbound

import (
	"bufio"
	"context"
	"io"
	"strconv"

	"github.com/wolf-joe/ts-domains/metrics"
	"github.com/wolf-joe/ts-domains/motivator"
	"github.com/wolf-joe/ts-domains/utils"
)

const (
	verbRead  = "READ"
	verbCheer = "CHEER"
)

// MotivatorHandler 处理READ/CHEER请求
type MotivatorHandler struct {
	Metrics *metrics.Collector
}

// FormatRatio 保留6位有效数字输出比例，如0、1、0.5、0.333333
func FormatRatio(val float64) string {
	return strconv.FormatFloat(val, 'g', 6, 64)
}

// Serve 输入格式：请求数量Q，随后Q个"READ user page"或"CHEER user"请求；每个CHEER输出一行
func (h *MotivatorHandler) Serve(ctx context.Context, r io.Reader, w io.Writer) (err error) {
	reader := newWordReader(r)
	n, err := reader.count("request count")
	if err != nil {
		utils.CtxError(ctx, "read request count error: %s", err)
		return err
	}
	writer := bufio.NewWriter(w)
	defer func() {
		if flushErr := writer.Flush(); err == nil {
			err = flushErr
		}
	}()
	m := motivator.New()
	for i := 0; i < n; i++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		if err = h.handle(ctx, reader, writer, m); err != nil {
			utils.CtxError(ctx, "handle request #%d error: %s", i+1, err)
			return err
		}
	}
	utils.CtxInfo(ctx, "handled %d requests, %d readers", n, m.Readers())
	return nil
}

func (h *MotivatorHandler) handle(ctx context.Context, reader *tokenReader, w *bufio.Writer, m *motivator.Motivator) error {
	verb, err := reader.next()
	if err != nil {
		return err
	}
	switch verb {
	case verbRead:
		user, err := reader.int("user", 0, motivator.MaxUsers)
		if err != nil {
			return err
		}
		page, err := reader.int("page", 0, motivator.MaxPages)
		if err != nil {
			return err
		}
		m.Read(user, page)
		h.Metrics.ObserveRequest("read")
		return nil
	case verbCheer:
		user, err := reader.int("user", 0, motivator.MaxUsers)
		if err != nil {
			return err
		}
		ratio := m.Cheer(user)
		h.Metrics.ObserveRequest("cheer")
		utils.CtxDebug(ctx, "cheer user %d: %v", user, ratio)
		_, err = w.WriteString(FormatRatio(ratio) + "\n")
		return err
	default:
		return reader.errorf("unknown request %q", verb)
	}
}
