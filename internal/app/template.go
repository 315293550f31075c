package app

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"
)

// TemplateRenderer serves the admin pages through layout inheritance:
// every page under templates/ is compiled against the shared set of
// layouts and partials, so a page only defines the blocks it fills
// ({{ define "title" }}, {{ define "content" }}) and invokes
// {{ template "base" . }} for the skeleton.
//
// With debug set, the whole tree is re-read from the filesystem on each
// request so template edits show up without restarting. Otherwise
// everything is compiled once in NewTemplateRenderer and served from
// memory.
type TemplateRenderer struct {
	templates map[string]*template.Template // page path -> compiled set, nil in debug mode
	fs        fs.FS
	funcMap   template.FuncMap
	debug     bool
}

var _ render.HTMLRender = (*TemplateRenderer)(nil)

// NewTemplateRenderer builds a renderer over fsys, which must hold a
// templates/ directory with layouts/ and partials/ subdirectories plus
// one directory per screen (user/, order/, product/, coupon/, errors/).
// Pass os.DirFS("web") with debug for live reload, or web.EmbeddedFS
// for the compiled-in tree.
func NewTemplateRenderer(fsys fs.FS, debug bool) (*TemplateRenderer, error) {
	r := &TemplateRenderer{
		fs:      fsys,
		funcMap: templateFuncMap(),
		debug:   debug,
	}
	if debug {
		return r, nil
	}

	compiled, err := r.compileAll()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.templates = compiled
	return r, nil
}

// Instance satisfies render.HTMLRender. The name is the page path
// relative to templates/, e.g. "coupon/list.html".
func (r *TemplateRenderer) Instance(name string, data any) render.Render {
	pages := r.templates
	if r.debug {
		var err error
		if pages, err = r.compileAll(); err != nil {
			return &HTMLInstance{err: err}
		}
	}
	return &HTMLInstance{Template: pages[name], Name: name, Data: data}
}

// compileAll parses layouts and partials into a base set, then compiles
// each page as a clone of that base with the page parsed on top. The
// clone is what lets a page override blocks the layout declares.
func (r *TemplateRenderer) compileAll() (map[string]*template.Template, error) {
	base := template.New("").Funcs(r.funcMap)
	for _, pattern := range []string{"templates/layouts/*.html", "templates/partials/*.html"} {
		files, err := fs.Glob(r.fs, pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		for _, f := range files {
			if err := parseInto(base, r.fs, f, f); err != nil {
				return nil, err
			}
		}
	}

	pageFiles, err := r.discoverPageTemplates()
	if err != nil {
		return nil, fmt.Errorf("discover pages: %w", err)
	}

	compiled := make(map[string]*template.Template, len(pageFiles))
	for _, pf := range pageFiles {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone base for %s: %w", pf, err)
		}
		name := strings.TrimPrefix(pf, "templates/")
		if err := parseInto(clone, r.fs, pf, name); err != nil {
			return nil, err
		}
		compiled[name] = clone
	}
	return compiled, nil
}

func parseInto(t *template.Template, fsys fs.FS, path, name string) error {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if _, err := t.New(name).Parse(string(content)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// discoverPageTemplates lists every .html file under templates/ except
// the layouts and partials that make up the base set.
func (r *TemplateRenderer) discoverPageTemplates() ([]string, error) {
	var pages []string
	err := fs.WalkDir(r.fs, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		rel := strings.TrimPrefix(path, "templates/")
		if strings.HasPrefix(rel, "layouts/") || strings.HasPrefix(rel, "partials/") {
			return nil
		}
		pages = append(pages, path)
		return nil
	})
	return pages, err
}

func templateFuncMap() template.FuncMap {
	return template.FuncMap{
		// json emits v for script contexts (Alpine x-data and the like)
		// as template.JS, so html/template does not escape it a second
		// time.
		"json": func(v any) template.JS {
			b, err := json.Marshal(v)
			if err != nil {
				return template.JS("null")
			}
			return template.JS(b)
		},

		"formatDate": func(t time.Time) string {
			return t.Format("2006-01-02 15:04:05")
		},

		// dangerouslySetInnerHTML bypasses auto-escaping. Never feed it
		// user-supplied content; it exists for developer-authored HTML
		// fragments only.
		"dangerouslySetInnerHTML": func(s string) template.HTML {
			return template.HTML(s)
		},

		// add and sub drive the pagination prev/next links.
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },

		// deref shows an optional price; nil renders as 0.
		"deref": func(f *float64) float64 {
			if f == nil {
				return 0
			}
			return *f
		},

		// seq renders the numbered page links, start through end inclusive.
		"seq": func(start, end int) []int {
			if start > end {
				return nil
			}
			s := make([]int, 0, end-start+1)
			for i := start; i <= end; i++ {
				s = append(s, i)
			}
			return s
		},
	}
}

// HTMLInstance is a single pending template execution handed back to gin.
type HTMLInstance struct {
	Template *template.Template
	Name     string
	Data     any
	err      error // non-nil when a debug-mode reparse failed
}

const htmlContentType = "text/html; charset=utf-8"

func (h *HTMLInstance) Render(w http.ResponseWriter) error {
	h.WriteContentType(w)
	if h.err != nil {
		return h.err
	}
	if h.Template == nil {
		return fmt.Errorf("template %q not found", h.Name)
	}
	return h.Template.ExecuteTemplate(w, h.Name, h.Data)
}

func (h *HTMLInstance) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if len(header["Content-Type"]) == 0 {
		header["Content-Type"] = []string{htmlContentType}
	}
}
