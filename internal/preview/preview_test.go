package preview

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/career-pulse/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderDoc(t *testing.T, r types.Resume) *goquery.Document {
	t.Helper()
	html, err := RenderHTML(r)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestRenderHTML_BlankResumeShowsPlaceholders(t *testing.T) {
	doc := renderDoc(t, types.NewBlankResume())

	assert.Equal(t, NamePlaceholder, doc.Find("h1.name").Text())
	assert.Equal(t, TitlePlaceholder, doc.Find("p.title").Text())
	assert.Equal(t, EmailPlaceholder, doc.Find(".contact .email").Text())
	assert.Equal(t, PhonePlaceholder, doc.Find(".contact .phone").Text())
	assert.Equal(t, LocationPlaceholder, doc.Find(".contact .location").Text())

	assert.Equal(t, 0, doc.Find(".links").Length())
	assert.Equal(t, 0, doc.Find("section").Length(), "empty sections are omitted")
}

func TestRenderHTML_SampleResume(t *testing.T) {
	r := types.NewSampleResume()
	doc := renderDoc(t, r)

	assert.Equal(t, r.PersonalInfo.Name, doc.Find("h1.name").Text())
	assert.Equal(t, r.Summary, doc.Find("#summary p").Text())

	var skills []string
	doc.Find("#skills .skill").Each(func(_ int, s *goquery.Selection) {
		skills = append(skills, s.Text())
	})
	require.Len(t, skills, len(r.Skills))
	for i, skill := range r.Skills {
		assert.Equal(t, skill.Name, skills[i])
	}

	exp := r.Experience[0]
	entry := doc.Find("#experience .entry").First()
	assert.Equal(t, exp.JobTitle, entry.Find("h3").Text())
	assert.Equal(t, exp.StartDate+" – "+exp.EndDate, entry.Find(".dates").Text())
	assert.Equal(t, len(exp.Description), entry.Find("li").Length())

	edu := doc.Find("#education .entry").First()
	assert.Equal(t, r.Education[0].Institution, edu.Find("h3").Text())
	assert.Equal(t, "Professional Experience", doc.Find("#experience h2").Text())
}

func TestRenderHTML_Links(t *testing.T) {
	r := types.NewBlankResume()
	r.PersonalInfo.LinkedIn = "https://linkedin.com/in/alex"

	doc := renderDoc(t, r)

	href, ok := doc.Find("a.linkedin").Attr("href")
	assert.True(t, ok)
	assert.Equal(t, "https://linkedin.com/in/alex", href)
	assert.Equal(t, 0, doc.Find("a.portfolio").Length())
}

func TestRenderHTML_EscapesContent(t *testing.T) {
	r := types.NewBlankResume()
	r.Summary = `<script>alert("x")</script>`
	r.PersonalInfo.Portfolio = "javascript:alert(1)"

	html, err := RenderHTML(r)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, r.Summary, doc.Find("#summary p").Text())
	href, _ := doc.Find("a.portfolio").Attr("href")
	assert.NotContains(t, href, "javascript:")
}

func TestRenderText(t *testing.T) {
	r := types.NewSampleResume()

	text, err := RenderText(r)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, r.PersonalInfo.Name+"\n"))
	assert.Contains(t, text, "SUMMARY\n"+r.Summary)
	assert.Contains(t, text, "SKILLS\n"+r.Skills[0].Name+", ")
	assert.Contains(t, text, "  - "+r.Experience[0].Description[0])
	assert.Contains(t, text, "EDUCATION")
}

func TestRenderText_Blank(t *testing.T) {
	text, err := RenderText(types.NewBlankResume())
	require.NoError(t, err)

	assert.Contains(t, text, NamePlaceholder)
	assert.Contains(t, text, EmailPlaceholder+" | "+PhonePlaceholder+" | "+LocationPlaceholder)
	assert.NotContains(t, text, "SUMMARY")
	assert.NotContains(t, text, "PROFESSIONAL EXPERIENCE")
}

func TestTemplateError(t *testing.T) {
	cause := assert.AnError
	err := &TemplateError{Message: "boom", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "template error: boom")
}
