package content

import (
	"fmt"

	"github.com/RATIU5/zaggonaut/internal/model"
)

// LoadError reports which content file failed to load.
type LoadError struct {
	ContentType model.ContentType
	Stem        string
	Path        string
	Err         error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s/%s (%s): %v", e.ContentType, e.Stem, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
