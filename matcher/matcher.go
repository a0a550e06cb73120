package matcher

// DomainMatcher 域名匹配器基类
type DomainMatcher interface {
	// Match 判断域名是否命中规则，ok为false代表匹配器对该域名没有结论
	Match(domain string) (matched bool, ok bool)
}
