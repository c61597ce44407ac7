package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeFile(t *testing.T, root, rel, body string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "posts/hello-world.md", `---
title: Hello World
date: "2024-03-01"
categories: [news, launch]
tags: release
comment_count: 3
comments: false
thumbnail: /img/hello.jpg
---
Hello **there**.
`)
	writeFile(t, dir, "posts/older.md", `---
date: "2023-01-01T10:00:00"
---
Older post.
`)
	writeFile(t, dir, "about_us.md", "Just markdown, no frontmatter.\n")
	writeFile(t, dir, "sliders/first.md", "---\ntitle: Slide\ntype: slider\ndate: \"2022-01-01\"\n---\nCaption\n")
	writeFile(t, dir, "notes.txt", "ignored")

	items, err := NewLoader(zaptest.NewLogger(t)).Load(dir)
	require.NoError(t, err)
	require.Len(t, items, 4)

	// newest first, undated last
	assert.Equal(t, "Hello World", items[0].Title)
	assert.Equal(t, "Older", items[1].Title)
	assert.Equal(t, "Slide", items[2].Title)
	assert.Equal(t, "About Us", items[3].Title)

	hello := items[0]
	assert.Equal(t, "post", hello.Type)
	assert.Equal(t, "/posts/hello-world/", hello.Permalink)
	assert.Equal(t, []string{"news", "launch"}, hello.Categories)
	assert.Equal(t, []string{"release"}, hello.Tags)
	assert.Equal(t, 3, hello.CommentCount)
	require.NotNil(t, hello.CommentsOpen)
	assert.False(t, *hello.CommentsOpen)
	assert.Nil(t, hello.PingsOpen)
	assert.Equal(t, "/img/hello.jpg", hello.Thumbnail)
	assert.Contains(t, string(hello.ContentHTML), "<strong>there</strong>")
	assert.True(t, strings.HasPrefix(hello.Excerpt, "Hello there"))

	about := items[3]
	assert.Equal(t, "page", about.Type)
	assert.Equal(t, "/about_us/", about.Permalink)
	assert.True(t, about.Date.IsZero())

	assert.Equal(t, "slider", items[2].Type)

	ids := map[int]bool{}
	for _, it := range items {
		assert.NotZero(t, it.ID)
		ids[it.ID] = true
	}
	assert.Len(t, ids, 4)
}

func TestLoadMissingDir(t *testing.T) {
	_, err := NewLoader(zaptest.NewLogger(t)).Load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "one two", PlainText("<p>one <em>two</em></p>"))
	assert.Equal(t, "Hello there.", PlainText("<p>Hello <strong>there</strong>.</p>"))
	assert.Equal(t, "first second", PlainText("<p>first</p>\n<p>second</p>"))
	assert.Equal(t, `Tom & Jerry say "hi" <3`, PlainText("<p>Tom &amp; Jerry say &quot;hi&quot; &lt;3</p>"))
	assert.Equal(t, "shown", PlainText("<script>var x</script><p>shown</p>"))
}

func TestLoadDecodesEntitiesInExcerpt(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "posts/a.md", "Tom & Jerry say \"hi\" <3\n")

	items, err := NewLoader(zaptest.NewLogger(t)).Load(dir)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, `Tom & Jerry say "hi" <3`, items[0].Excerpt)
	assert.Equal(t, items[0].Excerpt, items[0].Text)
	assert.Contains(t, string(items[0].ContentHTML), "&amp;")
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "one two", Excerpt("one  two", 5))

	long := strings.Repeat("word ", 60)
	got := Excerpt(long, ExcerptWords)
	assert.True(t, strings.HasSuffix(got, " […]"))
	assert.Len(t, strings.Fields(strings.TrimSuffix(got, " […]")), ExcerptWords)
}

func TestPermalinkOverride(t *testing.T) {
	l := NewLoader(zaptest.NewLogger(t))
	tests := []struct {
		name      string
		permalink string
		want      string
	}{
		{"from path", "", "/posts/x/"},
		{"override", "custom/path", "/custom/path/"},
		{"root", "/", "/"},
		{"parent segments", "../../escaped", "/escaped/"},
		{"inner parent segments", "/a/../../b/", "/b/"},
		{"backslashes", `..\..\win`, "/win/"},
		{"dot segments", "./a/./b", "/a/b/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm := map[string]interface{}{}
			if tt.permalink != "" {
				fm["permalink"] = tt.permalink
			}
			assert.Equal(t, tt.want, l.permalinkFor("posts/x.md", fm))
		})
	}
}

func TestLoadDropsUnsluggableTerms(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "posts/a.md", "---\ncategories: [\"日本\", \"!!\"]\n---\nbody\n")

	items, err := NewLoader(zaptest.NewLogger(t)).Load(dir)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, []string{"日本"}, items[0].Categories)
}
