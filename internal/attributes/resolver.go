package attributes

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ldrlegend/backend-pro/internal/platform/httpx"
)

// UnresolvedValueError reports a raw value that matched no option of the
// named attribute.
type UnresolvedValueError struct {
	AttributeCode string
	Raw           string
}

func (e *UnresolvedValueError) Error() string {
	return fmt.Sprintf("no option of attribute %q matches value %q", e.AttributeCode, e.Raw)
}

func (e *UnresolvedValueError) Unwrap() error { return httpx.ErrValidation }

// AmbiguousValueError reports a label matching more than one option under the
// same attribute. Only surfaced in strict resolution mode.
type AmbiguousValueError struct {
	AttributeCode string
	Raw           string
	Matches       int
}

func (e *AmbiguousValueError) Error() string {
	return fmt.Sprintf("value %q matches %d options of attribute %q", e.Raw, e.Matches, e.AttributeCode)
}

func (e *AmbiguousValueError) Unwrap() error { return httpx.ErrValidation }

// normLabel folds a localized label for comparison. Vietnamese labels can
// arrive in either composed or decomposed Unicode form depending on the
// client, so both sides are normalized to NFC.
func normLabel(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// ResolveOption maps a raw payload value onto one option of the attribute.
// A numeric raw value is first tried as an option id scoped to the attribute;
// on miss, or when the value is not numeric, it is matched against either
// localized label. In first-match mode the first label hit wins; strict mode
// rejects ambiguous labels.
func (s *Service) ResolveOption(ctx context.Context, attributeCode, raw string) (AttributeOption, error) {
	if id, convErr := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); convErr == nil {
		opt, err := s.repo.GetOptionForAttribute(ctx, attributeCode, id)
		if err == nil {
			return opt, nil
		}
		if !errors.Is(err, httpx.ErrNotFound) {
			return AttributeOption{}, fmt.Errorf("resolve option by id: %w", err)
		}
	}

	opts, err := s.repo.ListOptionsForAttribute(ctx, attributeCode)
	if err != nil {
		return AttributeOption{}, fmt.Errorf("list options: %w", err)
	}

	want := normLabel(raw)
	var matches []AttributeOption
	for _, opt := range opts {
		if normLabel(opt.AttributeOptionEN) == want || normLabel(opt.AttributeOptionVN) == want {
			matches = append(matches, opt)
		}
	}

	switch {
	case len(matches) == 0:
		return AttributeOption{}, &UnresolvedValueError{AttributeCode: attributeCode, Raw: raw}
	case len(matches) > 1 && s.resolution == ResolutionStrict:
		return AttributeOption{}, &AmbiguousValueError{AttributeCode: attributeCode, Raw: raw, Matches: len(matches)}
	default:
		return matches[0], nil
	}
}
