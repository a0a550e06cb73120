package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDomain(t *testing.T) {
	assert.Equal(t, "moc.elgoog.liam.", NewDomain("mail.google.com").Key())
	assert.Equal(t, "mail.google.com", NewDomain("mail.google.com").Name())
	assert.Equal(t, "moc.", NewDomain("com").Key())
	// 空串得到仅含分隔符的key
	assert.Equal(t, ".", NewDomain("").Key())
	assert.Equal(t, "", NewDomain("").Name())
	assert.Equal(t, "", Domain{}.Name())
	assert.Equal(t, "ya.ru", NewDomain("ya.ru").String())
}

func TestDomainCompare(t *testing.T) {
	a, b := NewDomain("abc.com"), NewDomain("abc.com")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Less(b))
	assert.False(t, a.Equal(NewDomain("abd.com")))
	// key为"moc."与"ur."，com排在ru前
	assert.True(t, NewDomain("com").Less(NewDomain("ru")))
	assert.True(t, NewDomain("com").Less(NewDomain("abc.com")))
}

func TestIsSubdomain(t *testing.T) {
	cases := []struct {
		child, parent string
		want          bool
	}{
		{"mail.google.com", "google.com", true},
		{"a.b.google.com", "google.com", true},
		{"google.com", "com", true},
		{"google.com", "google.com", false},
		{"google.com", "mail.google.com", false},
		{"evil-google.com", "google.com", false},
		{"notgoogle.com", "google.com", false},
		{"google.com.ru", "google.com", false},
		{"com.", "", true},
		{"com", "", false},
	}
	for _, c := range cases {
		got := NewDomain(c.child).IsSubdomain(NewDomain(c.parent))
		assert.Equal(t, c.want, got, "%s under %s", c.child, c.parent)
	}
}

func TestIsSubdomainProperties(t *testing.T) {
	domains := randomDomains(500)
	for _, a := range domains {
		assert.False(t, a.IsSubdomain(a), a.Name())
	}
	for _, a := range domains[:100] {
		for _, b := range domains[:100] {
			if a.IsSubdomain(b) {
				assert.False(t, b.IsSubdomain(a), "%s <-> %s", a, b)
			}
		}
	}
}
