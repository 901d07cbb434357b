/*
The resp package provides a high-level API for responding to HTTP requests
with an easy way to configure the responses application-wide.

resp provides four main ways of responding to an HTTP request:
- rendering HTML templates
- rendering JSON data
- sending files
- redirecting

A handler composes a response out of Fn options:

	func (h *Handler) getReport(w http.ResponseWriter, r *http.Request) {
		h.Json(w, r, resp.Data(map[string]any{"id": 1}), resp.Pairs("ok", true))
	}

	func (h *Handler) downloadReport(w http.ResponseWriter, r *http.Request) {
		h.File(w, r, resp.Path("reports/q3.csv"), resp.Attachment(""), resp.Conditional())
	}
*/
package resp
