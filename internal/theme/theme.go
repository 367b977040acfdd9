// Package theme persists the page accent colors.
package theme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"stackmap/internal/domain"
	"stackmap/internal/repository"
)

// ErrInvalidTheme is returned by Set when a color fails validation
var ErrInvalidTheme = errors.New("invalid theme")

// rgbHex matches #rgb and #rrggbb. The stock hexcolor tag also takes alpha.
var rgbHex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Service reads and writes the theme record
type Service struct {
	records  repository.Store
	validate *validator.Validate
	logger   *zap.Logger
}

// NewService creates a theme service
func NewService(records repository.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for an empty tag or nil func
	_ = v.RegisterValidation("rgbhex", func(fl validator.FieldLevel) bool {
		return rgbHex.MatchString(fl.Field().String())
	})

	return &Service{
		records:  records,
		validate: v,
		logger:   logger,
	}
}

// Get returns the persisted theme, or the defaults when none is usable
func (s *Service) Get(ctx context.Context) domain.Theme {
	data, err := s.records.Get(ctx, repository.ThemeKey)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.DefaultTheme()
	}
	if err != nil {
		s.logger.Warn("failed to read theme, using defaults", zap.Error(err))
		return domain.DefaultTheme()
	}

	var t domain.Theme
	if err := json.Unmarshal(data, &t); err != nil {
		s.logger.Warn("malformed theme, using defaults", zap.Error(err))
		return domain.DefaultTheme()
	}
	if err := s.Validate(t); err != nil {
		s.logger.Warn("stored theme rejected, using defaults", zap.Error(err))
		return domain.DefaultTheme()
	}
	return t
}

// Set validates and persists the theme
func (s *Service) Set(ctx context.Context, t domain.Theme) error {
	if err := s.Validate(t); err != nil {
		return err
	}

	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal theme: %w", err)
	}
	if err := s.records.Put(ctx, repository.ThemeKey, data); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// Reset removes the persisted theme so Get returns the defaults
func (s *Service) Reset(ctx context.Context) error {
	if err := s.records.Delete(ctx, repository.ThemeKey); err != nil {
		return fmt.Errorf("failed to reset theme: %w", err)
	}
	return nil
}

// Validate checks that every color is a #rgb or #rrggbb hex color
func (s *Service) Validate(t domain.Theme) error {
	err := s.validate.Struct(t)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s must be %s", fe.Field(), describeTag(fe.Tag())))
	}
	return fmt.Errorf("%w: %s", ErrInvalidTheme, strings.Join(fields, "; "))
}

func describeTag(tag string) string {
	switch tag {
	case "required":
		return "set"
	case "rgbhex":
		return "a #rgb or #rrggbb hex color"
	default:
		return tag
	}
}
