package inbound

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInputFormat 输入格式错误，具体原因通过%w包装在其后
var ErrInputFormat = errors.New("malformed input")

const maxLineSize = 1 << 20

// 按输入数量预分配切片时的容量上限
const maxPrealloc = 1 << 16

// Handler 读取一次完整的输入并写出全部结果
type Handler interface {
	Serve(ctx context.Context, r io.Reader, w io.Writer) error
}

// 按行或按空白分隔读取输入，并记录位置用于报错
type tokenReader struct {
	scanner *bufio.Scanner
	unit    string // line或token
	pos     int
}

func newLineReader(r io.Reader) *tokenReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &tokenReader{scanner: scanner, unit: "line"}
}

func newWordReader(r io.Reader) *tokenReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	scanner.Split(bufio.ScanWords)
	return &tokenReader{scanner: scanner, unit: "token"}
}

func (r *tokenReader) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s %d: %s", ErrInputFormat, r.unit, r.pos, fmt.Sprintf(format, args...))
}

// 读取下一行/下一个token，提前遇到EOF视为格式错误
func (r *tokenReader) next() (string, error) {
	if !r.scanner.Scan() {
		r.pos++
		if err := r.scanner.Err(); err != nil {
			return "", r.errorf("%s", err)
		}
		return "", r.errorf("unexpected end of input")
	}
	r.pos++
	return strings.TrimSpace(r.scanner.Text()), nil
}

// 读取一个[lo, hi]范围内的整数
func (r *tokenReader) int(name string, lo, hi int) (int, error) {
	text, err := r.next()
	if err != nil {
		return 0, err
	}
	val, err := strconv.Atoi(text)
	if err != nil {
		return 0, r.errorf("%s %q is not a number", name, text)
	}
	if val < lo || val > hi {
		return 0, r.errorf("%s %d out of range [%d, %d]", name, val, lo, hi)
	}
	return val, nil
}

// 读取一个非负的数量
func (r *tokenReader) count(name string) (int, error) {
	return r.int(name, 0, int(^uint(0)>>1))
}
