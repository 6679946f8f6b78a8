package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/wagpa/qoiview/pkg/preview"
	"github.com/wagpa/qoiview/pkg/qoi"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		logrus.WithError(err).Fatalln("qoiview failed")
	}
}

func run(args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("qoiview", flag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), "Usage: qoiview [flags] <image.qoi>")
		flags.PrintDefaults()
	}
	out := flags.String("o", "", "write the decoded image to `file` (.png, .bmp or .qoi, optionally followed by .zst)")
	serve := flags.String("serve", "", "serve the decoded image over HTTP on `addr`, e.g. :8089")
	title := flags.String("title", "", "title of the presented image (default the image path)")
	lenient := flags.Bool("lenient", false, "accept images with a missing or invalid end marker")
	level := flags.String("log-level", "info", "log `level` (debug, info, warn, error)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return errors.New("expected exactly one image path")
	}

	lvl, err := logrus.ParseLevel(*level)
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	logrus.SetLevel(lvl)

	path := flags.Arg(0)
	if *title == "" {
		*title = path
	}
	var opts []qoi.DecoderOption
	if *lenient {
		opts = append(opts, qoi.WithLenientEndMarker())
	}

	img, err := preview.DecodeFile(path, opts...)
	if err != nil {
		return err
	}
	h := img.Header
	fmt.Fprintf(stdout, "%s: %dx%d %s %s\n", path, h.Width, h.Height, h.Channels, h.Colorspace)

	if *out != "" {
		if err := preview.Show(preview.FileWriter{Path: *out}, *title, img); err != nil {
			return err
		}
	}
	if *serve != "" {
		srv := preview.NewServer(preview.NewStore())
		if err := preview.Show(srv, *title, img); err != nil {
			return err
		}
		return srv.ListenAndServe(*serve)
	}
	return nil
}
