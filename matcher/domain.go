package matcher

import "strings"

// Separator 规范化key末尾追加的分隔符，保证前缀匹配只会落在label边界上
const Separator = '.'

// Domain 域名值类型。内部保存逆序后的规范化key，如mail.google.com保存为"moc.elgoog.liam."，
// 这样"是上级域名"等价于"是key的真前缀"
type Domain struct {
	key string
}

// NewDomain 将人类阅读顺序的域名转换为Domain，空串得到仅含分隔符的key
func NewDomain(name string) Domain {
	buf := make([]byte, len(name)+1)
	for i := 0; i < len(name); i++ {
		buf[len(name)-1-i] = name[i]
	}
	buf[len(name)] = Separator
	return Domain{key: string(buf)}
}

// Key 返回规范化key
func (d Domain) Key() string {
	return d.key
}

// Name 返回人类阅读顺序的域名
func (d Domain) Name() string {
	if d.key == "" {
		return ""
	}
	body := d.key[:len(d.key)-1]
	buf := make([]byte, len(body))
	for i := 0; i < len(body); i++ {
		buf[len(body)-1-i] = body[i]
	}
	return string(buf)
}

func (d Domain) String() string {
	return d.Name()
}

// Equal 两个域名的key完全一致时相等
func (d Domain) Equal(other Domain) bool {
	return d.key == other.key
}

// Less 按key的字节序比较
func (d Domain) Less(other Domain) bool {
	return d.key < other.key
}

// IsSubdomain 判断d是否为other的子域名（不含相等）
func (d Domain) IsSubdomain(other Domain) bool {
	return len(d.key) > len(other.key) && strings.HasPrefix(d.key, other.key)
}
