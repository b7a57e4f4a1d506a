package composition

import (
	"fmt"

	"github.com/toyz/nestgen/internal/errors"
	"github.com/toyz/nestgen/internal/utils/fileops"
)

// Patcher applies Patch to a composition file on disk
type Patcher struct {
	fo   *fileops.FileOps
	opts Options
}

// NewPatcher creates a Patcher reading and writing through fo
func NewPatcher(fo *fileops.FileOps, opts Options) *Patcher {
	return &Patcher{fo: fo, opts: opts}
}

// Register loads file, registers reg in it and persists the result when it
// changed. A missing file is a warning, not an error.
func (p *Patcher) Register(file string, reg Registration) (Result, error) {
	if !p.fo.IsFile(file) {
		return Result{
			Status:   StatusNoComposition,
			Warnings: []string{fmt.Sprintf("%s not found; import %s from '%s' and add it to the root module manually", file, reg.Symbol, reg.ImportPath)},
		}, nil
	}

	src, err := p.fo.ReadFile(file)
	if err != nil {
		return Result{}, err
	}

	res := Patch(src, reg, p.opts)
	if !res.Changed {
		return res, nil
	}

	if _, err := p.fo.WriteFile(file, res.Content); err != nil {
		regErr := errors.NewRegistrationError(reg.Symbol, file, "write failed")
		regErr.Cause = err
		return res, regErr
	}
	return res, nil
}
