package handler

import (
	"net/http"

	"github.com/beevik/etree"
)

// publicPages are the routes exposed in the sitemap
var publicPages = []string{"/", "/testimonials", "/about", "/contact", "/faq"}

// Sitemap serves a sitemap.xml of the public pages
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", "http://www.sitemaps.org/schemas/sitemap/0.9")
	for _, page := range publicPages {
		loc := urlset.CreateElement("url").CreateElement("loc")
		loc.SetText(h.baseURL + page)
	}

	doc.Indent(2)
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if _, err := doc.WriteTo(w); err != nil {
		h.log.Errorf("Failed to write sitemap: %v", err)
	}
}
