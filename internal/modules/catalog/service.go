package catalog

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"github.com/BUNNY1710/glassshop-backend/internal/apperr"
)

// DefaultUnit is used when a stock request omits the unit.
const DefaultUnit = "MM"

type Service interface {
	Resolve(ctx context.Context, spec Spec) (*Glass, error)
	List(ctx context.Context) ([]*Glass, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Resolve(ctx context.Context, spec Spec) (*Glass, error) {
	norm, err := Normalize(spec)
	if err != nil {
		return nil, err
	}
	return s.repo.FindOrCreate(ctx, norm)
}

func (s *service) List(ctx context.Context) ([]*Glass, error) {
	return s.repo.List(ctx)
}

// Normalize upper-cases the type and unit and fills a zero thickness from the
// leading digits of the type ("8MM" -> 8).
func Normalize(spec Spec) (Spec, error) {
	spec.Type = strings.ToUpper(strings.Join(strings.Fields(spec.Type), ""))
	if spec.Type == "" {
		return Spec{}, apperr.Invalid("glass type is required")
	}
	spec.Unit = strings.ToUpper(strings.TrimSpace(spec.Unit))
	if spec.Unit == "" {
		spec.Unit = DefaultUnit
	}
	if spec.Thickness < 0 {
		return Spec{}, apperr.Invalid("thickness must not be negative")
	}
	if spec.Thickness == 0 {
		spec.Thickness = leadingInt(spec.Type)
	}
	return spec, nil
}

func leadingInt(s string) int {
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(s)
	}
	n, _ := strconv.Atoi(s[:end])
	return n
}
