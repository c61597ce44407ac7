package theme

// Body classes added by the theme.
const (
	ClassHFeed     = "hfeed"
	ClassNoSidebar = "no-sidebar"
)

// BodyClasses adds hfeed to non-singular pages and no-sidebar when the sidebar
// is empty. Duplicates are dropped; the first occurrence keeps its position.
func BodyClasses(in []string, singular, sidebarActive bool) []string {
	out := make([]string, 0, len(in)+2)
	seen := make(map[string]bool, len(in)+2)
	add := func(c string) {
		if c == "" || seen[c] {
			return
		}
		seen[c] = true
		out = append(out, c)
	}
	for _, c := range in {
		add(c)
	}
	if !singular {
		add(ClassHFeed)
	}
	if !sidebarActive {
		add(ClassNoSidebar)
	}
	return out
}

func appendClass(classes []string, c string) []string {
	for _, have := range classes {
		if have == c {
			return classes
		}
	}
	return append(classes, c)
}
