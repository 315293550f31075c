package app

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/soletrade/admin/internal/pkg"
)

// errorTemplates names the dedicated error pages. Codes without a page
// reuse the 500 template.
var errorTemplates = map[int]string{
	http.StatusBadRequest:          "errors/400.html",
	http.StatusNotFound:            "errors/404.html",
	http.StatusInternalServerError: "errors/500.html",
}

// renderError answers a failed request in whatever shape the client asked
// for: a JSON envelope for API clients, an error page for browsers, and
// plain text when no HTML renderer is available.
func renderError(c *gin.Context, code int, message string) {
	accept := strings.ToLower(c.GetHeader("Accept"))
	wantsJSON := strings.Contains(accept, "application/json") &&
		!strings.Contains(accept, "text/html")

	if !wantsJSON && acceptsHTML(c) {
		renderErrorPage(c, code)
		return
	}
	c.JSON(code, pkg.Response{Code: code, Message: message, Data: nil})
}

func renderErrorPage(c *gin.Context, code int) {
	// c.HTML panics when the engine has no renderer or the template is
	// missing; an error page must never escalate into a second error.
	defer func() {
		if r := recover(); r != nil {
			c.Data(code, "text/plain; charset=utf-8",
				[]byte(strconv.Itoa(code)+" "+statusLabel(code)))
		}
	}()

	page, ok := errorTemplates[code]
	if !ok {
		page = errorTemplates[http.StatusInternalServerError]
	}
	c.HTML(code, page, gin.H{})
}

// acceptsHTML reports whether the Accept header allows an HTML answer.
// Browsers send text/html or */*; an absent header means anything goes.
func acceptsHTML(c *gin.Context) bool {
	accept := strings.ToLower(strings.TrimSpace(c.GetHeader("Accept")))
	if accept == "" {
		return true
	}
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "*/*")
}

func statusLabel(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "Error"
}
