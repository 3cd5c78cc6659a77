package web

import "html/template"

func (h *Handler) SetRenderHTML(fn func(string) (template.HTML, error)) {
	h.renderHTML = fn
}
