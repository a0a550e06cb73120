package matcher

import (
	"sort"

	"github.com/zeebo/xxh3"
)

// DomainSet 排序、去重后的屏蔽域名集合，构造后只读，可被多个goroutine同时查询
type DomainSet struct {
	domains []Domain
}

// NewDomainSet 用域名列表构造集合。排序后单次扫描，丢弃与上一个保留项相等或为其子域名的元素
func NewDomainSet(domains []Domain) *DomainSet {
	sorted := make([]Domain, len(domains))
	copy(sorted, domains)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	kept := sorted[:0]
	for _, domain := range sorted {
		if n := len(kept); n > 0 {
			last := kept[n-1]
			if domain.Equal(last) || domain.IsSubdomain(last) {
				continue // 已被上级域名覆盖
			}
		}
		kept = append(kept, domain)
	}
	return &DomainSet{domains: kept}
}

// Get 返回保留下来的有序域名列表（副本）
func (s *DomainSet) Get() []Domain {
	ans := make([]Domain, len(s.domains))
	copy(ans, s.domains)
	return ans
}

// Len 返回保留下来的域名数量
func (s *DomainSet) Len() int {
	return len(s.domains)
}

// IsForbidden 判断域名是否等于集合中某个域名或为其子域名。
// 只有不大于query的最大元素可能是它的上级域名，用upper bound二分定位
func (s *DomainSet) IsForbidden(query Domain) bool {
	if len(s.domains) == 0 {
		return false
	}
	i := sort.Search(len(s.domains), func(i int) bool {
		return query.Less(s.domains[i])
	})
	if i == 0 {
		return false
	}
	candidate := s.domains[i-1]
	return query.Equal(candidate) || query.IsSubdomain(candidate)
}

// Match 实现DomainMatcher，集合只对命中的域名给出结论
func (s *DomainSet) Match(domain string) (matched bool, ok bool) {
	matched = s.IsForbidden(NewDomain(domain))
	return matched, matched
}

// Digest 按顺序对保留的key计算xxh3指纹，内容相同的集合指纹相同
func (s *DomainSet) Digest() uint64 {
	hasher := xxh3.New()
	for _, domain := range s.domains {
		_, _ = hasher.Write([]byte(domain.key))
		_, _ = hasher.Write([]byte{'\n'})
	}
	return hasher.Sum64()
}
