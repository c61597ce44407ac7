package theme

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func handles(assets []*Asset) []string {
	out := make([]string, 0, len(assets))
	for _, a := range assets {
		out = append(out, a.Handle)
	}
	return out
}

func TestQueueDependencyOrder(t *testing.T) {
	q := NewQueue(false, zaptest.NewLogger(t))
	q.RegisterScript("jquery", "/jquery.js", nil, "", false)
	q.EnqueueScript("main", "/main.js", []string{"carousel", "jquery"}, "1.0.0", true)
	q.EnqueueScript("carousel", "/carousel.js", []string{"jquery"}, "1.0.0", true)
	q.EnqueueScript("standalone", "/standalone.js", nil, "", true)

	all := append(q.HeadScripts(), q.FooterScripts()...)
	if diff := cmp.Diff([]string{"jquery", "carousel", "main", "standalone"}, handles(all)); diff != "" {
		t.Errorf("script order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"jquery"}, handles(q.HeadScripts()))
}

func TestQueueHeadScriptPullsDependencies(t *testing.T) {
	q := NewQueue(false, zaptest.NewLogger(t))
	q.RegisterScript("lib", "/lib.js", nil, "", true)
	q.EnqueueScript("early", "/early.js", []string{"lib"}, "", false)
	q.EnqueueScript("late", "/late.js", nil, "", true)

	assert.Equal(t, []string{"lib", "early"}, handles(q.HeadScripts()))
	assert.Equal(t, []string{"late"}, handles(q.FooterScripts()))
}

func TestQueueUnknownDependencyDropsDependent(t *testing.T) {
	q := NewQueue(false, zaptest.NewLogger(t))
	q.EnqueueStyle("ok", "/ok.css", nil, "")
	q.EnqueueStyle("broken", "/broken.css", []string{"missing"}, "")
	q.EnqueueStyle("child", "/child.css", []string{"broken"}, "")

	assert.Equal(t, []string{"ok"}, handles(q.Styles()))
}

func TestQueueCycleDropped(t *testing.T) {
	q := NewQueue(false, zaptest.NewLogger(t))
	q.EnqueueScript("a", "/a.js", []string{"b"}, "", true)
	q.EnqueueScript("b", "/b.js", []string{"a"}, "", true)
	q.EnqueueScript("c", "/c.js", nil, "", true)

	assert.Equal(t, []string{"c"}, handles(q.FooterScripts()))
}

func TestQueueEnqueueTwice(t *testing.T) {
	q := NewQueue(false, zaptest.NewLogger(t))
	q.EnqueueStyle("s", "/s.css", nil, "1")
	q.EnqueueStyle("s", "/other.css", nil, "2")

	styles := q.Styles()
	assert.Len(t, styles, 1)
	assert.Equal(t, "/s.css?ver=1", styles[0].URL())
}

func TestQueueRTLReplace(t *testing.T) {
	for _, rtl := range []bool{false, true} {
		q := NewQueue(rtl, zaptest.NewLogger(t))
		q.EnqueueStyle("theme", "/style.css", nil, "1.0.0")
		q.AddData("theme", "rtl", "replace")
		q.AddData("unknown", "rtl", "replace")

		want := "/style.css?ver=1.0.0"
		if rtl {
			want = "/style-rtl.css?ver=1.0.0"
		}
		assert.Equal(t, want, q.Styles()[0].URL())
	}
}

func TestAssetURL(t *testing.T) {
	assert.Equal(t, "/a.js", (&Asset{Src: "/a.js"}).URL())
	assert.Equal(t, "/a.js?ver=2", (&Asset{Src: "/a.js", Version: "2"}).URL())
	assert.Equal(t, "/a.js?x=1&ver=2", (&Asset{Src: "/a.js?x=1", Version: "2"}).URL())
}

func TestTags(t *testing.T) {
	styles := StyleTags([]*Asset{{Handle: "s", Src: "/s.css", Version: "1"}})
	assert.Equal(t, "<link rel=\"stylesheet\" id=\"s-css\" href=\"/s.css?ver=1\" media=\"all\">\n", string(styles))

	scripts := ScriptTags([]*Asset{{Handle: "group"}, {Handle: "j", Src: "/j.js"}})
	assert.Equal(t, "<script src=\"/j.js\" id=\"j-js\"></script>\n", string(scripts))
}

func TestNeedsCommentReply(t *testing.T) {
	for _, singular := range []bool{false, true} {
		for _, open := range []bool{false, true} {
			for _, threaded := range []bool{false, true} {
				want := singular && open && threaded
				assert.Equal(t, want, NeedsCommentReply(singular, open, threaded),
					"singular=%v open=%v threaded=%v", singular, open, threaded)
			}
		}
	}
}
