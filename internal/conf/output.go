package conf

import (
	"fmt"
	"slices"

	"pvdcrypt/internal/imageio"
)

// Output controls where embed writes its image when no path is given.
type Output struct {
	Format string `yaml:"format"`
	Dir    string `yaml:"dir"`
}

func (o *Output) setDefaults() {
	if o.Format == "" {
		o.Format = imageio.FormatPNG
	}
	if o.Dir == "" {
		o.Dir = "."
	}
}

func (o *Output) validate() []error {
	var errors []error
	if !slices.Contains(imageio.LosslessFormats, o.Format) {
		errors = append(errors, fmt.Errorf("output.format must be one of %v (lossy formats destroy the payload)", imageio.LosslessFormats))
	}
	return errors
}
