package cli

import (
	"errors"
	"fmt"

	"github.com/hammamikhairi/souschef/internal/domain"
)

// explain turns sentinel errors into something a cook can act on. The
// original error stays wrapped for errors.Is.
func explain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNoActiveSession):
		return fmt.Errorf("no recipe in progress, start one with \"souschef start <recipe>\": %w", err)
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("%w (see \"souschef recipes\")", err)
	case errors.Is(err, domain.ErrTimerNotFound):
		return fmt.Errorf("%w (see \"souschef timer list\")", err)
	default:
		return err
	}
}
