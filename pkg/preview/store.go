package preview

import (
	"sort"
	"sync"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/wagpa/qoiview/pkg/qoi"
	"github.com/wagpa/qoiview/pkg/source"
)

// Entry is a decoded image kept by a Store.
type Entry struct {
	Title string
	Image *qoi.Image
}

// Store holds decoded images by name. It is safe for concurrent use.
type Store struct {
	entries cmap.ConcurrentMap[string, Entry]
}

func NewStore() *Store {
	return &Store{entries: cmap.New[Entry]()}
}

// Present stores the image under its title, replacing an older one.
func (s *Store) Present(title string, width, height int, rgba []byte) error {
	img, err := toImage(width, height, rgba)
	if err != nil {
		return err
	}
	s.Put(title, Entry{Title: title, Image: img})
	return nil
}

func (s *Store) Put(name string, e Entry) {
	s.entries.Set(name, e)
}

func (s *Store) Get(name string) (Entry, bool) {
	return s.entries.Get(name)
}

// Names returns the stored names in sorted order.
func (s *Store) Names() []string {
	names := s.entries.Keys()
	sort.Strings(names)
	return names
}

// Load decodes the file at path and stores it under the path.
func (s *Store) Load(path string, opts ...qoi.DecoderOption) (Entry, error) {
	img, err := DecodeFile(path, opts...)
	if err != nil {
		return Entry{}, err
	}
	e := Entry{Title: path, Image: img}
	s.Put(path, e)
	return e, nil
}

// LoadAll decodes every path on its own goroutine. Decoders share no state,
// so one broken file does not affect the others. The returned error describes
// the first failure in path order.
func (s *Store) LoadAll(paths []string, opts ...qoi.DecoderOption) error {
	errs := make([]error, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			if _, err := s.Load(path, opts...); err != nil {
				logrus.WithError(err).WithField("path", path).Warnln("failed loading image")
				errs[i] = err
			}
		}(i, path)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// DecodeFile opens, decodes and closes the file at path. zstd compressed files are unwrapped.
func DecodeFile(path string, opts ...qoi.DecoderOption) (*qoi.Image, error) {
	r, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	dec, err := qoi.NewDecoder(r, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed decoding %s", path)
	}
	img, err := dec.Decode()
	if err != nil {
		return nil, errors.Wrapf(err, "failed decoding %s", path)
	}
	return img, nil
}
