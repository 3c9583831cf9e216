package cmd

import (
	"fmt"

	"github.com/edp1096/icemos/pkg/device"
	"github.com/edp1096/icemos/pkg/extract"
	"github.com/edp1096/icemos/pkg/fragment"
	"github.com/edp1096/icemos/pkg/render"
)

// libraryPath picks the --library flag over the project file.
func libraryPath(flag string, p device.Polarity) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if path, ok := cfg.Libraries[p]; ok && path != "" {
		return path, nil
	}
	return "", fmt.Errorf("no model library for %s: pass --library or add library %q to the project file", p, p)
}

func layout() fragment.Layout {
	return fragment.NewLayout(cfg.OutputRoot)
}

func openExtractor(libFlag string, p device.Polarity, opts ...extract.Option) (*extract.Extractor, error) {
	path, err := libraryPath(libFlag, p)
	if err != nil {
		return nil, err
	}
	return extract.Open(path, p, device.DefaultTables().For(p), layout(), opts...)
}

// newRenderer registers an extractor for every polarity whose library is
// known. A missing library only matters once a fragment has to be extracted.
func newRenderer(libFlag string, polarities ...device.Polarity) (*render.Renderer, error) {
	opts := cfg.RenderOptions()
	for _, p := range polarities {
		if _, err := libraryPath(libFlag, p); err != nil {
			continue
		}
		e, err := openExtractor(libFlag, p)
		if err != nil {
			return nil, err
		}
		opts = append(opts, render.WithExtractor(p, e))
	}
	return render.New(layout(), device.DefaultTables(), opts...), nil
}
