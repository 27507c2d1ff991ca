package web

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/five82/epicview/internal/state"
	"github.com/five82/epicview/internal/view"
)

// Options configure the HTML front end.
type Options struct {
	Addr   string
	Base   string
	Loader *state.Loader
	// Proxy, when set, receives every GET the page issues that this server
	// does not route itself. Use it when BASE is same-origin.
	Proxy  *url.URL
	Logger logrus.FieldLogger
}

// Server renders the view controller as an HTML page.
type Server struct {
	addr   string
	base   string
	loader *state.Loader
	proxy  *url.URL
	log    logrus.FieldLogger

	engine   *gin.Engine
	server   *http.Server
	listener net.Listener
	ctx      context.Context
	cancel   context.CancelFunc
	loads    sync.WaitGroup
}

// NewServer creates the HTML server. Routes are registered immediately so
// Handler can be used without Start.
func NewServer(opts Options) *Server {
	addr := opts.Addr
	if addr == "" {
		addr = "127.0.0.1:8080"
	}
	log := opts.Logger
	if log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		log = quiet
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		addr:   addr,
		base:   opts.Base,
		loader: opts.Loader,
		proxy:  opts.Proxy,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.SetHTMLTemplate(view.Template())

	r.GET("/", s.handlePage)
	r.POST("/refresh", s.handleRefresh)
	r.GET("/healthz", s.handleHealth)

	if s.proxy != nil {
		rp := httputil.NewSingleHostReverseProxy(s.proxy)
		rp.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			s.log.WithField("path", r.URL.Path).Warnf("proxy request failed: %v", err)
			w.WriteHeader(http.StatusBadGateway)
		}
		r.NoRoute(func(c *gin.Context) {
			if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
				c.Status(http.StatusNotFound)
				return
			}
			rp.ServeHTTP(c.Writer, c.Request)
		})
	}
	return r
}

// Handler exposes the routes, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start dispatches the initial load and begins serving.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.server = &http.Server{
		Handler:           s.engine,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	s.dispatch()

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorf("http server stopped: %v", err)
		}
	}()
	s.log.WithField("addr", listener.Addr().String()).Info("serving epic view")
	return nil
}

// Addr returns the bound address once started, or the configured one.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Stop cancels in-flight loads and shuts the server down.
func (s *Server) Stop() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var err error
	if s.server != nil {
		err = s.server.Shutdown(ctx)
	}
	s.loads.Wait()
	return err
}

// dispatch enters loading synchronously and settles on a goroutine. Earlier
// loads are neither awaited nor cancelled.
func (s *Server) dispatch() state.Ticket {
	ticket := s.loader.Store().Begin()
	s.loads.Add(1)
	go func() {
		defer s.loads.Done()
		s.loader.Load(s.ctx, ticket)
	}()
	return ticket
}

func (s *Server) handlePage(c *gin.Context) {
	page := view.Build(s.loader.Store().Snapshot(), s.base)
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, view.TemplateName, page)
}

func (s *Server) handleRefresh(c *gin.Context) {
	ticket := s.dispatch()
	s.log.WithField("seq", uint64(ticket)).Info("refresh requested")
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleHealth(c *gin.Context) {
	snap := s.loader.Store().Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"phase": snap.Phase.String(),
		"seq":   snap.Seq,
	})
}
