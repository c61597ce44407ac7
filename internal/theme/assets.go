package theme

import (
	"fmt"
	"html/template"
	"strings"

	"go.uber.org/zap"
)

// Asset is one registered stylesheet or script.
type Asset struct {
	Handle   string
	Src      string
	Deps     []string
	Version  string
	InFooter bool
	Data     map[string]string
}

// URL is the asset source with its version tag appended.
func (a *Asset) URL() string {
	if a.Version == "" {
		return a.Src
	}
	sep := "?"
	if strings.Contains(a.Src, "?") {
		sep = "&"
	}
	return a.Src + sep + "ver=" + a.Version
}

type assetSet struct {
	registered map[string]*Asset
	enqueued   []string
}

func newAssetSet() assetSet {
	return assetSet{registered: make(map[string]*Asset)}
}

func (s *assetSet) register(a *Asset) {
	if _, ok := s.registered[a.Handle]; ok {
		return
	}
	s.registered[a.Handle] = a
}

func (s *assetSet) enqueue(handle string) {
	for _, h := range s.enqueued {
		if h == handle {
			return
		}
	}
	s.enqueued = append(s.enqueued, handle)
}

// Queue collects the assets a page wants. Final order comes from the declared
// dependencies; enqueue order only breaks ties.
type Queue struct {
	styles  assetSet
	scripts assetSet
	rtl     bool
	logger  *zap.Logger
}

func NewQueue(rtl bool, logger *zap.Logger) *Queue {
	return &Queue{
		styles:  newAssetSet(),
		scripts: newAssetSet(),
		rtl:     rtl,
		logger:  logger,
	}
}

// RegisterStyle makes a stylesheet known without emitting it. The first registration wins.
func (q *Queue) RegisterStyle(handle, src string, deps []string, version string) {
	q.styles.register(&Asset{Handle: handle, Src: src, Deps: deps, Version: version})
}

// RegisterScript makes a script known without emitting it. The first registration wins.
func (q *Queue) RegisterScript(handle, src string, deps []string, version string, inFooter bool) {
	q.scripts.register(&Asset{Handle: handle, Src: src, Deps: deps, Version: version, InFooter: inFooter})
}

// EnqueueStyle registers (when src is given) and enqueues a stylesheet.
func (q *Queue) EnqueueStyle(handle, src string, deps []string, version string) {
	if src != "" {
		q.RegisterStyle(handle, src, deps, version)
	}
	q.styles.enqueue(handle)
}

// EnqueueScript registers (when src is given) and enqueues a script.
func (q *Queue) EnqueueScript(handle, src string, deps []string, version string, inFooter bool) {
	if src != "" {
		q.RegisterScript(handle, src, deps, version, inFooter)
	}
	q.scripts.enqueue(handle)
}

// Enqueue emits an already registered handle, script first, then style.
func (q *Queue) Enqueue(handle string) {
	if _, ok := q.scripts.registered[handle]; ok {
		q.scripts.enqueue(handle)
		return
	}
	q.styles.enqueue(handle)
}

// AddData attaches metadata to a registered stylesheet (e.g. rtl=replace).
func (q *Queue) AddData(handle, key, value string) {
	a, ok := q.styles.registered[handle]
	if !ok {
		return
	}
	if a.Data == nil {
		a.Data = make(map[string]string)
	}
	a.Data[key] = value
}

// Styles returns the stylesheets to emit, dependencies first.
func (q *Queue) Styles() []*Asset {
	resolved := q.resolve("style", q.styles)
	out := make([]*Asset, 0, len(resolved))
	for _, a := range resolved {
		if q.rtl && a.Data["rtl"] == "replace" && strings.HasSuffix(a.Src, ".css") {
			cp := *a
			cp.Src = strings.TrimSuffix(a.Src, ".css") + "-rtl.css"
			a = &cp
		}
		out = append(out, a)
	}
	return out
}

// HeadScripts returns the scripts that load in <head>: those not marked for
// the footer, plus everything they depend on.
func (q *Queue) HeadScripts() []*Asset {
	head, _ := q.splitScripts()
	return head
}

// FooterScripts returns the scripts that load before </body>.
func (q *Queue) FooterScripts() []*Asset {
	_, footer := q.splitScripts()
	return footer
}

func (q *Queue) splitScripts() (head, footer []*Asset) {
	resolved := q.resolve("script", q.scripts)
	inHead := make(map[string]bool)
	var mark func(h string)
	mark = func(h string) {
		if inHead[h] {
			return
		}
		inHead[h] = true
		if a, ok := q.scripts.registered[h]; ok {
			for _, d := range a.Deps {
				mark(d)
			}
		}
	}
	for _, a := range resolved {
		if !a.InFooter {
			mark(a.Handle)
		}
	}
	for _, a := range resolved {
		if inHead[a.Handle] {
			head = append(head, a)
		} else {
			footer = append(footer, a)
		}
	}
	return head, footer
}

type visitState int

const (
	unvisited visitState = iota
	visiting
	done
	failed
)

// resolve orders the enqueued handles and their dependencies depth first.
// Handles with an unknown dependency or on a cycle are dropped with a warning.
func (q *Queue) resolve(kind string, set assetSet) []*Asset {
	state := make(map[string]visitState)
	var out []*Asset

	var visit func(h string) bool
	visit = func(h string) bool {
		switch state[h] {
		case done:
			return true
		case failed:
			return false
		case visiting:
			q.logger.Warn("dependency cycle", zap.String("kind", kind), zap.String("handle", h))
			state[h] = failed
			return false
		}
		a, ok := set.registered[h]
		if !ok {
			q.logger.Warn("unknown asset handle", zap.String("kind", kind), zap.String("handle", h))
			state[h] = failed
			return false
		}
		state[h] = visiting
		for _, d := range a.Deps {
			if !visit(d) {
				q.logger.Warn("dropping asset with unresolved dependency",
					zap.String("kind", kind), zap.String("handle", h), zap.String("dependency", d))
				state[h] = failed
				return false
			}
		}
		if state[h] == failed {
			return false
		}
		state[h] = done
		out = append(out, a)
		return true
	}

	for _, h := range set.enqueued {
		visit(h)
	}
	return out
}

// StyleTags renders <link> elements for the resolved stylesheets.
func StyleTags(assets []*Asset) template.HTML {
	var b strings.Builder
	for _, a := range assets {
		if a.Src == "" {
			continue
		}
		fmt.Fprintf(&b, "<link rel=\"stylesheet\" id=\"%s-css\" href=\"%s\" media=\"all\">\n",
			template.HTMLEscapeString(a.Handle), template.HTMLEscapeString(a.URL()))
	}
	return template.HTML(b.String())
}

// ScriptTags renders <script> elements. Handles without a source only group their dependencies.
func ScriptTags(assets []*Asset) template.HTML {
	var b strings.Builder
	for _, a := range assets {
		if a.Src == "" {
			continue
		}
		fmt.Fprintf(&b, "<script src=\"%s\" id=\"%s-js\"></script>\n",
			template.HTMLEscapeString(a.URL()), template.HTMLEscapeString(a.Handle))
	}
	return template.HTML(b.String())
}

// NeedsCommentReply is the comment-reply guard: only a single item with open
// comments on a site with threaded comments gets the reply script.
func NeedsCommentReply(singular, commentsOpen, threaded bool) bool {
	return singular && commentsOpen && threaded
}
