package seed

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

// clampRunes trims s to at most max runes, dropping a trailing space.
func clampRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		runes = runes[:max]
	}
	return strings.TrimSpace(string(runes))
}

// fakeLogin produces a unique login within the 3-10 character limit.
func fakeLogin(i int) string {
	base := strings.ToLower(gofakeit.LetterN(6))
	return fmt.Sprintf("%s%02d", base, i%100)
}

func fakeEmail(login string) string {
	return fmt.Sprintf("%s@%s", login, gofakeit.DomainName())
}

func fakeBlogName() string {
	return clampRunes(gofakeit.Company(), 15)
}

func fakeBlogDescription() string {
	return clampRunes(gofakeit.Paragraph(1, 2, 8, " "), 500)
}

func fakeWebsiteURL() string {
	return "https://" + gofakeit.DomainName()
}

func fakePostTitle() string {
	return clampRunes(gofakeit.Sentence(3), 30)
}

func fakeShortDescription() string {
	return clampRunes(gofakeit.Sentence(8), 100)
}

func fakePostContent() string {
	return clampRunes(gofakeit.Paragraph(1, 3, 10, " "), 1000)
}

// fakeCommentContent stays inside the 20-300 character window.
func fakeCommentContent() string {
	content := clampRunes(gofakeit.Sentence(10), 300)
	for len([]rune(content)) < 20 {
		content += " " + gofakeit.Word()
	}
	return clampRunes(content, 300)
}
