package site

import (
	"fmt"

	"github.com/hasanfardous/startup-wp/internal/model"
)

// BaseBodyClasses returns the classes the host puts on <body> before any theme filter runs.
func (s *Site) BaseBodyClasses(ctx model.QueryContext) []string {
	var classes []string
	if s.cfg.TextDirection == "rtl" {
		classes = append(classes, "rtl")
	}

	switch ctx.Kind {
	case model.KindArchive:
		switch {
		case ctx.FrontPage:
			classes = append(classes, "home", "blog")
		case ctx.Taxonomy != "":
			classes = append(classes, "archive", ctx.Taxonomy, fmt.Sprintf("%s-%s", ctx.Taxonomy, ctx.Term))
		default:
			classes = append(classes, "archive")
		}
	case model.KindSearch:
		classes = append(classes, "search")
		if len(ctx.Items) > 0 {
			classes = append(classes, "search-results")
		} else {
			classes = append(classes, "search-no-results")
		}
	case model.KindNotFound:
		classes = append(classes, "error404")
	case model.KindAttachment:
		it := ctx.Item()
		classes = append(classes, "attachment", "single", "single-attachment")
		if it != nil {
			classes = append(classes, fmt.Sprintf("attachmentid-%d", it.ID))
		}
	case model.KindSingular:
		it := ctx.Item()
		if it == nil {
			break
		}
		if it.Type == "page" {
			classes = append(classes, "page-template-default", "page", fmt.Sprintf("page-id-%d", it.ID))
		} else {
			classes = append(classes, "post-template-default", "single", "single-"+it.Type, fmt.Sprintf("postid-%d", it.ID))
		}
	}
	return classes
}
