// Package web serves the interactive capital growth page.
//
// The page and its JSON and chart endpoints recompute the analysis on every
// request from index series loaded once at startup.
package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/etnz/capgrowth"
	"github.com/etnz/capgrowth/date"
	"github.com/etnz/capgrowth/plot"
	"github.com/etnz/capgrowth/renderer"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templates embed.FS

// Defaults are the inputs of the page before the user changes them.
type Defaults struct {
	Index     capgrowth.IndexType
	Price     float64
	Purchased date.Date
	Raw       bool
}

// Server holds the loaded indexes.
type Server struct {
	indexes  map[capgrowth.IndexType]capgrowth.IndexSeries
	defaults Defaults
	currency string
	Verbose  bool // log every request
}

// NewServer returns a server for indexes. Index series are read only and
// shared by all requests.
func NewServer(indexes map[capgrowth.IndexType]capgrowth.IndexSeries, defaults Defaults, currency string) *Server {
	return &Server{indexes: indexes, defaults: defaults, currency: currency}
}

// Query is the page form, all fields are optional.
type Query struct {
	Index     string  `form:"index" binding:"omitempty,oneof=real nominal"`
	Price     float64 `form:"price" binding:"omitempty,gte=1"`
	Purchased string  `form:"purchased" binding:"omitempty,datetime=2006-01-02"`
	Raw       bool    `form:"raw"`
}

// ErrorResponse is the body of API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Router returns the handler of all routes.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if s.Verbose {
		router.Use(gin.LoggerWithWriter(log.Writer()))
	}
	router.SetHTMLTemplate(template.Must(template.New("").Funcs(template.FuncMap{
		"checked": func(b bool) template.HTMLAttr {
			if b {
				return "checked"
			}
			return ""
		},
	}).ParseFS(templates, "templates/*.html")))

	router.GET("/", s.HandlePage)
	router.GET("/api/growth", s.HandleGrowth)
	router.GET("/chart.svg", s.HandleChart(plot.SVG))
	router.GET("/chart.png", s.HandleChart(plot.PNG))
	return router
}

// indexTypes returns the loaded index types in their display order.
func (s *Server) indexTypes() []capgrowth.IndexType {
	var types []capgrowth.IndexType
	for _, t := range capgrowth.IndexTypes() {
		if _, ok := s.indexes[t]; ok {
			types = append(types, t)
		}
	}
	return types
}

// bind reads the query and completes it with the defaults.
//
// When no parameter is given at all, the page has never been submitted and
// the raw data toggle takes its default too.
func (s *Server) bind(c *gin.Context) (Query, error) {
	var q Query
	if err := c.ShouldBindQuery(&q); err != nil {
		return q, err
	}
	if len(c.Request.URL.Query()) == 0 {
		q.Raw = s.defaults.Raw
	}
	if q.Index == "" {
		q.Index = s.defaults.Index.String()
	}
	if q.Price == 0 {
		q.Price = s.defaults.Price
	}
	if q.Purchased == "" {
		q.Purchased = s.defaults.Purchased.String()
	}
	return q, nil
}

// analyze runs the analysis requested by q.
func (s *Server) analyze(q Query) (*capgrowth.Growth, error) {
	typ, err := capgrowth.ParseIndexType(q.Index)
	if err != nil {
		return nil, err
	}
	index, ok := s.indexes[typ]
	if !ok {
		return nil, fmt.Errorf("%s index is not available, want one of %v", typ, s.indexTypes())
	}
	on, err := date.Parse(q.Purchased)
	if err != nil {
		return nil, err
	}
	return capgrowth.Analyze(index, capgrowth.Anchor{Date: on, Value: q.Price})
}

// status returns the HTTP status, code and message of an analysis error.
func status(err error) (int, string, string) {
	switch {
	case errors.Is(err, capgrowth.ErrEmptySegment):
		return http.StatusUnprocessableEntity, "EMPTY_SEGMENT", "purchase date must fall inside the index range, with at least one index record after it"
	case errors.Is(err, capgrowth.ErrDivision):
		return http.StatusUnprocessableEntity, "DIVISION", "index has a zero value or spans less than a calendar year, growth is undefined"
	case errors.Is(err, capgrowth.ErrDomain):
		return http.StatusUnprocessableEntity, "DOMAIN", "value went negative, CAGR is undefined"
	}
	return http.StatusBadRequest, "INVALID_REQUEST", err.Error()
}

type pageData struct {
	Query   Query
	Indexes []capgrowth.IndexType
	Range   map[capgrowth.IndexType]date.Range
	Error   string
	Chart   template.HTML
	Report  template.HTML
}

// HandlePage renders the interactive page.
func (s *Server) HandlePage(c *gin.Context) {
	data := pageData{Indexes: s.indexTypes(), Range: make(map[capgrowth.IndexType]date.Range)}
	for t, index := range s.indexes {
		data.Range[t] = index.Range()
	}
	q, err := s.bind(c)
	data.Query = q
	if err != nil {
		data.Error = err.Error()
		c.HTML(http.StatusBadRequest, "index.html", data)
		return
	}
	g, err := s.analyze(q)
	if err != nil {
		code, _, msg := status(err)
		data.Error = msg
		c.HTML(code, "index.html", data)
		return
	}

	var svg bytes.Buffer
	if err := plot.Render(&svg, g, plot.SVG, plot.Options{Currency: s.currency}); err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	report := renderer.GrowthMarkdown(g, renderer.Options{Currency: s.currency, Raw: q.Raw, Untitled: true})
	body, err := renderer.ToHTML(report)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	data.Chart = template.HTML(svg.String())
	data.Report = body
	c.HTML(http.StatusOK, "index.html", data)
}

// GrowthResponse is the body of /api/growth.
type GrowthResponse struct {
	*capgrowth.Growth
	CAGRPercent string `json:"cagr_percent"`
}

// HandleGrowth returns the analysis as JSON.
func (s *Server) HandleGrowth(c *gin.Context) {
	q, err := s.bind(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INVALID_REQUEST"})
		return
	}
	g, err := s.analyze(q)
	if err != nil {
		code, id, msg := status(err)
		c.JSON(code, ErrorResponse{Error: msg, Code: id})
		return
	}
	if !q.Raw {
		// Rows are the raw data, keep only the reconstructed values.
		rows := make([]capgrowth.Row, len(g.Rows))
		for i, r := range g.Rows {
			rows[i] = capgrowth.Row{Date: r.Date, Value: r.Value, Segment: r.Segment}
		}
		g.Rows = rows
	}
	c.JSON(http.StatusOK, GrowthResponse{Growth: g, CAGRPercent: g.CAGRPercent().String()})
}

// HandleChart returns a handler drawing the chart in format f.
func (s *Server) HandleChart(f plot.Format) gin.HandlerFunc {
	contentType := "image/png"
	if f == plot.SVG {
		contentType = "image/svg+xml"
	}
	return func(c *gin.Context) {
		q, err := s.bind(c)
		if err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		g, err := s.analyze(q)
		if err != nil {
			code, _, msg := status(err)
			c.String(code, msg)
			return
		}
		var buf bytes.Buffer
		if err := plot.Render(&buf, g, f, plot.Options{Currency: s.currency}); err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.Data(http.StatusOK, contentType, buf.Bytes())
	}
}

// Run serves the page on addr until the server fails.
func (s *Server) Run(addr string) error {
	log.Printf("serving %v indexes on http://%s", s.indexTypes(), addr)
	srv := &http.Server{Addr: addr, Handler: s.Router()}
	return srv.ListenAndServe()
}
