package motivator

const (
	// MaxUsers 用户id上限（含）
	MaxUsers = 100000
	// MaxPages 页码上限（含）
	MaxPages = 1000
)

// Motivator 记录每个用户读到的页码，并计算落后于某用户的其他读者比例。
// 用户id和页码的范围由调用方保证
type Motivator struct {
	userPage  []int // -1代表从未阅读
	pageCount []int // 当前停留在各页的用户数
	readers   int   // 读过书的用户数
}

// New 返回一个空的Motivator
func New() *Motivator {
	m := &Motivator{
		userPage:  make([]int, MaxUsers+1),
		pageCount: make([]int, MaxPages+1),
	}
	for i := range m.userPage {
		m.userPage[i] = -1
	}
	return m
}

// Read 记录user读到了page页
func (m *Motivator) Read(user, page int) {
	if prev := m.userPage[user]; prev >= 0 {
		m.pageCount[prev]--
	} else {
		m.readers++
	}
	m.userPage[user] = page
	m.pageCount[page]++
}

// Cheer 返回页码小于user当前页的其他读者占其他读者总数的比例。
// user未读过时返回0，只有user一个读者时返回1
func (m *Motivator) Cheer(user int) float64 {
	page := m.userPage[user]
	if page < 0 {
		return 0
	}
	if m.readers == 1 {
		return 1
	}
	behind := 0
	for _, count := range m.pageCount[:page] {
		behind += count
	}
	return float64(behind) / float64(m.readers-1)
}

// Readers 返回读过书的用户数
func (m *Motivator) Readers() int {
	return m.readers
}
