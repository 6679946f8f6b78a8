package preview

import (
	"encoding/json"
	"image/png"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/bmp"
)

// Server presents images over HTTP:
//
//	GET /images                      list of stored images
//	GET /header?name=N               header of image N
//	GET /image?name=N[&format=png]   image N as BMP (default) or PNG
type Server struct {
	*Store
	mux *http.ServeMux
}

type headerResponse struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	Width      uint32 `json:"width"`
	Height     uint32 `json:"height"`
	Channels   string `json:"channels"`
	Colorspace string `json:"colorspace"`
}

func NewServer(store *Store) *Server {
	s := &Server{Store: store, mux: http.NewServeMux()}
	s.mux.HandleFunc("/images", s.handleImages)
	s.mux.HandleFunc("/header", s.handleHeader)
	s.mux.HandleFunc("/image", s.handleImage)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logrus.Debugln("preview request", r.Method, r.URL.String())
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	logrus.Infoln("serving previews on", addr)
	return errors.Wrap(http.ListenAndServe(addr, s), "preview server stopped")
}

func (s *Server) header(name string, e Entry) headerResponse {
	h := e.Image.Header
	return headerResponse{
		Name:       name,
		Title:      e.Title,
		Width:      h.Width,
		Height:     h.Height,
		Channels:   h.Channels.String(),
		Colorspace: h.Colorspace.String(),
	}
}

func (s *Server) handleImages(w http.ResponseWriter, r *http.Request) {
	list := []headerResponse{}
	for _, name := range s.Names() {
		if e, ok := s.Get(name); ok {
			list = append(list, s.header(name, e))
		}
	}
	writeJSON(w, list)
}

func (s *Server) handleHeader(w http.ResponseWriter, r *http.Request) {
	name, e, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, s.header(name, e))
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	_, e, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var err error
	switch format := r.FormValue("format"); format {
	case "", "bmp":
		w.Header().Set("content-type", "image/bmp")
		err = bmp.Encode(w, e.Image.NRGBA())
	case "png":
		w.Header().Set("content-type", "image/png")
		err = png.Encode(w, e.Image.NRGBA())
	default:
		http.Error(w, "Invalid format, must be bmp or png", http.StatusBadRequest)
		return
	}
	if err != nil {
		logrus.WithError(err).Warnln("failed writing preview")
	}
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (string, Entry, bool) {
	name := r.FormValue("name")
	if name == "" {
		http.Error(w, "Missing name", http.StatusBadRequest)
		return "", Entry{}, false
	}
	e, ok := s.Get(name)
	if !ok {
		http.Error(w, "Unknown image "+name, http.StatusNotFound)
		return "", Entry{}, false
	}
	return name, e, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Warnln("failed writing response")
	}
}
