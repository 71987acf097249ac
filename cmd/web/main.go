package main

import (
	_ "embed"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tomz197/colorcatch/internal/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

// siteInfo is what players need to connect.
type siteInfo struct {
	SSHHost string `json:"ssh_host"`
	SSHPort string `json:"ssh_port"`
	Command string `json:"command"`
}

func newSiteInfo(host, port string) siteInfo {
	cmd := "ssh " + host
	if port != "" && port != "22" {
		cmd = "ssh -p " + port + " " + host
	}
	return siteInfo{SSHHost: host, SSHPort: port, Command: cmd}
}

// newRouter serves the landing page, the connection info and a health check.
func newRouter(info siteInfo, logger *log.Logger) http.Handler {
	page := strings.NewReplacer(
		"{{.SSHHost}}", info.SSHHost,
		"{{.Command}}", info.Command,
	).Replace(htmlPage)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  logger.StandardLog(),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			MaxAge:         300,
		}))
		api.Get("/connect", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(info); err != nil {
				logger.Error("Failed to encode connect info", "err", err)
			}
		})
	})

	return r
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "colorcatch-web",
	})

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	info := newSiteInfo(
		config.GetEnv("SSH_DISPLAY_HOST", "your-server.com"),
		config.GetEnv("SSH_DISPLAY_PORT", "22"),
	)

	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           newRouter(info, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("Starting web server", "addr", "http://"+srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("Server error", "err", err)
	}
}
