package preview

import (
	"image/png"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/wagpa/qoiview/pkg/qoi"
	"github.com/wagpa/qoiview/pkg/source"
	"golang.org/x/image/bmp"
)

// FileWriter presents an image by writing it to Path. The format follows the
// extension: .png, .bmp, .qoi, or any of them with a trailing .zst.
type FileWriter struct {
	Path string
}

func (f FileWriter) Present(title string, width, height int, rgba []byte) (err error) {
	img, err := toImage(width, height, rgba)
	if err != nil {
		return err
	}

	var encode func(w *source.Writer) error
	switch ext := formatExt(f.Path); ext {
	case ".png":
		encode = func(w *source.Writer) error { return png.Encode(w, img.NRGBA()) }
	case ".bmp":
		encode = func(w *source.Writer) error { return bmp.Encode(w, img.NRGBA()) }
	case ".qoi":
		encode = func(w *source.Writer) error { return qoi.EncodeBuffer(w, img.Header, img.Pix) }
	default:
		return errors.Errorf("unsupported output format %q", ext)
	}

	w, err := source.Create(f.Path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	if err := encode(w); err != nil {
		return errors.Wrapf(err, "failed writing %s", f.Path)
	}

	logrus.WithFields(logrus.Fields{
		"title":      title,
		"path":       f.Path,
		"compressed": w.Compressed,
	}).Infoln("wrote image")
	return nil
}

// formatExt returns the lower case extension, skipping a trailing .zst.
func formatExt(path string) string {
	path = strings.ToLower(path)
	if filepath.Ext(path) == ".zst" {
		path = strings.TrimSuffix(path, ".zst")
	}
	return filepath.Ext(path)
}
