package matcher

import (
	"encoding/base64"
	"net"
	"os"
	"strings"

	"github.com/miekg/dns"
)

// 从规则中提取域名，兼容AdBlock Plus锚点和url写法
func extractDomain(rule string) string {
	if i := strings.Index(rule, "||"); i != -1 {
		rule = rule[i+2:] // remove domain name anchor
	}
	if i := strings.Index(rule, "|"); i != -1 {
		rule = rule[i+1:] // remove address start anchor
	}
	if i := strings.Index(rule, "://"); i != -1 {
		rule = rule[i+3:] // remove method name
	}
	if i := strings.IndexAny(rule, "/^$"); i != -1 {
		rule = rule[:i] // remove path, separator and options
	}
	return rule
}

// ParseDomainList 解析屏蔽列表文本，每行一条规则。
// 支持纯域名、hosts格式（ip hostname）和AdBlock Plus的域名锚点；通配符规则和白名单规则被忽略
func ParseDomainList(text string) []Domain {
	var domains []Domain
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' || line[0] == '!' || line[0] == '[' {
			continue // 忽略空行、注释行、类型声明
		}
		if strings.HasPrefix(line, "@@") || strings.Contains(line, "*") {
			continue
		}
		fields := strings.Fields(line)
		rule := fields[0]
		if len(fields) > 1 && net.ParseIP(fields[0]) != nil {
			rule = fields[1] // hosts格式
		}
		name := strings.ToLower(extractDomain(rule))
		name = strings.TrimPrefix(strings.TrimSuffix(name, "."), ".")
		if name == "" {
			continue
		}
		if _, ok := dns.IsDomainName(name); !ok {
			continue // 无效域名
		}
		domains = append(domains, NewDomain(name))
	}
	return domains
}

// ReadListFile 读取列表文件内容，b64decode为true时先对内容做base64解码
func ReadListFile(filename string, b64decode bool) (string, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	if b64decode {
		if raw, err = base64.StdEncoding.DecodeString(strings.TrimSpace(string(raw))); err != nil {
			return "", err
		}
	}
	return string(raw), nil
}
