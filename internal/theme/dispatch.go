package theme

import "github.com/hasanfardous/startup-wp/internal/model"

// Partial names a content template.
type Partial string

const (
	PartialGeneric    Partial = "content"
	PartialSingle     Partial = "content-single"
	PartialExcerpt    Partial = "content-excerpt"
	PartialSearch     Partial = "content-search"
	PartialNone       Partial = "content-none"
	PartialAttachment Partial = "content-attachment"
)

// Templates that render page regions rather than a content item. An item layout
// may never name one of them.
var reservedLayouts = map[string]bool{
	regionHeader:  true,
	regionSidebar: true,
	regionFooter:  true,
	"searchform":  true,
	"entry":       true,
}

// ItemLayout reports whether name may be used as an item's layout.
func ItemLayout(name string) bool {
	return name != "" && !reservedLayouts[name]
}

// SelectPartial maps a context kind to the partial that renders its items.
func SelectPartial(kind model.Kind) Partial {
	switch kind {
	case model.KindSingular:
		return PartialSingle
	case model.KindArchive:
		return PartialExcerpt
	case model.KindSearch:
		return PartialSearch
	case model.KindNotFound:
		return PartialNone
	case model.KindAttachment:
		return PartialAttachment
	default:
		return PartialGeneric
	}
}

// PartialFor picks the partial for one item of ctx. An item layout that names an
// existing content template wins over the kind's default. exists reports template presence.
func PartialFor(ctx model.QueryContext, item *model.ContentItem, exists func(Partial) bool) Partial {
	if item != nil && ItemLayout(item.Layout) && exists(Partial(item.Layout)) {
		return Partial(item.Layout)
	}
	p := SelectPartial(ctx.Kind)
	if !exists(p) {
		return PartialGeneric
	}
	return p
}
