// Package forms holds the user-facing input for new pieces and galleries,
// validates it, and builds the stored records.
package forms

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/mesh-intelligence/canvas/pkg/types"
)

// DefaultTitle is the title a new piece starts with.
const DefaultTitle = "New Artwork"

// Dimension units.
const (
	UnitCentimetres = "cm"
	UnitInches      = "in"
)

// ErrInvalidForm is wrapped by every validation failure.
var ErrInvalidForm = errors.New("invalid form")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// PieceForm is the input for a new art piece. Blank optional fields mean
// "not given".
type PieceForm struct {
	Title         string `validate:"required,max=200"`
	Medium        string `validate:"max=200"`
	Height        string `validate:"omitempty,numeric"`
	Width         string `validate:"omitempty,numeric"`
	Depth         string `validate:"omitempty,numeric"`
	Unit          string `validate:"oneof=cm in"`
	Inspiration   string `validate:"max=2000"`
	Notes         string `validate:"max=2000"`
	DateStarted   string `validate:"omitempty,datetime=2006-01-02"`
	DateCompleted string `validate:"omitempty,datetime=2006-01-02"`
}

// NewPieceForm returns a form with the default title and unit.
func NewPieceForm() PieceForm {
	return PieceForm{Title: DefaultTitle, Unit: UnitCentimetres}
}

// Validate checks f and returns an error wrapping ErrInvalidForm that
// names each failing field.
func (f PieceForm) Validate() error {
	return check(f.trimmed())
}

func (f PieceForm) trimmed() PieceForm {
	for _, s := range []*string{
		&f.Title, &f.Medium, &f.Height, &f.Width, &f.Depth, &f.Unit,
		&f.Inspiration, &f.Notes, &f.DateStarted, &f.DateCompleted,
	} {
		*s = strings.TrimSpace(*s)
	}
	return f
}

// Dimensions formats height, width and depth as "HxWxD unit". It is
// absent when all three are blank; blank parts stay blank in the text.
func (f PieceForm) Dimensions() types.Optional[string] {
	f = f.trimmed()
	if f.Height == "" && f.Width == "" && f.Depth == "" {
		return types.None[string]()
	}
	return types.Some(fmt.Sprintf("%sx%sx%s %s", f.Height, f.Width, f.Depth, f.Unit))
}

// Build validates f and returns a new piece holding imageData.
func (f PieceForm) Build(imageData []byte) (types.ArtPiece, error) {
	f = f.trimmed()
	if err := check(f); err != nil {
		return types.ArtPiece{}, err
	}

	p := types.NewArtPiece(f.Title, imageData)
	p.Medium = types.OptionalString(f.Medium)
	p.Dimensions = f.Dimensions()
	p.Inspiration = types.OptionalString(f.Inspiration)
	p.Notes = types.OptionalString(f.Notes)

	var err error
	if p.DateStarted, err = optionalDate(f.DateStarted); err != nil {
		return types.ArtPiece{}, err
	}
	if p.DateCompleted, err = optionalDate(f.DateCompleted); err != nil {
		return types.ArtPiece{}, err
	}
	return p, nil
}

// GalleryForm is the input for a new gallery.
type GalleryForm struct {
	Name string `validate:"required,max=200"`
}

// Validate checks f.
func (f GalleryForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	return check(f)
}

// Build validates f and returns an empty gallery.
func (f GalleryForm) Build() (types.Gallery, error) {
	if err := f.Validate(); err != nil {
		return types.Gallery{}, err
	}
	return types.NewGallery(strings.TrimSpace(f.Name)), nil
}

func check(form any) error {
	err := validatorInstance().Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidForm, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s exceeds %s characters", field, fe.Param())
	case "numeric":
		return field + " must be a number"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "datetime":
		return field + " must be a date (YYYY-MM-DD)"
	default:
		return fmt.Sprintf("%s fails %s", field, fe.Tag())
	}
}

func optionalDate(s string) (types.Optional[types.Date], error) {
	if s == "" {
		return types.None[types.Date](), nil
	}
	d, err := types.ParseDate(s)
	if err != nil {
		return types.None[types.Date](), err
	}
	return types.Some(d), nil
}
