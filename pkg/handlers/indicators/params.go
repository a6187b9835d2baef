package indicators

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/de-tools/isg-atlas/pkg/models/domain"
)

// intParam returns the named integer query parameter; ok is false when absent.
func intParam(q url.Values, name string) (value int, ok bool, err error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return 0, false, nil
	}
	value, err = strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%w: parameter '%s' must be an integer", domain.ErrInvalidInput, name)
	}
	return value, true, nil
}

func requiredIntParam(q url.Values, name string) (int, error) {
	value, ok, err := intParam(q, name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: missing required parameter '%s'", domain.ErrInvalidInput, name)
	}
	return value, nil
}

func intParamOr(q url.Values, name string, fallback int) (int, error) {
	value, ok, err := intParam(q, name)
	if err != nil || !ok {
		return fallback, err
	}
	return value, nil
}

// subject reads name/category; at least one of them is required.
func subject(q url.Values) (name, category string, err error) {
	name = strings.TrimSpace(q.Get("name"))
	category = strings.TrimSpace(q.Get("category"))
	if name == "" && category == "" {
		return "", "", fmt.Errorf("%w: either 'name' or 'category' is required", domain.ErrInvalidInput)
	}
	return name, category, nil
}

func compareQuery(q url.Values) (domain.IndicatorQuery, error) {
	name, category, err := subject(q)
	if err != nil {
		return domain.IndicatorQuery{}, err
	}
	startYear, err := requiredIntParam(q, "startYear")
	if err != nil {
		return domain.IndicatorQuery{}, err
	}
	endYear, err := requiredIntParam(q, "endYear")
	if err != nil {
		return domain.IndicatorQuery{}, err
	}
	startMonth, err := intParamOr(q, "startMonth", 1)
	if err != nil {
		return domain.IndicatorQuery{}, err
	}
	endMonth, err := intParamOr(q, "endMonth", 12)
	if err != nil {
		return domain.IndicatorQuery{}, err
	}
	rng, err := domain.NewMonthRange(startYear, startMonth, endYear, endMonth)
	if err != nil {
		return domain.IndicatorQuery{}, err
	}
	granularity, err := domain.ParseGranularity(q.Get("granularity"))
	if err != nil {
		return domain.IndicatorQuery{}, err
	}
	return domain.IndicatorQuery{Name: name, Category: category, Range: rng, Granularity: granularity}, nil
}

func trendQuery(q url.Values) (domain.IndicatorQuery, error) {
	name, category, err := subject(q)
	if err != nil {
		return domain.IndicatorQuery{}, err
	}
	startYear, err := requiredIntParam(q, "startYear")
	if err != nil {
		return domain.IndicatorQuery{}, err
	}
	endYear, err := requiredIntParam(q, "endYear")
	if err != nil {
		return domain.IndicatorQuery{}, err
	}
	rng, err := domain.YearsRange(startYear, endYear)
	if err != nil {
		return domain.IndicatorQuery{}, err
	}
	granularity, err := domain.ParseGranularity(q.Get("granularity"))
	if err != nil {
		return domain.IndicatorQuery{}, err
	}
	return domain.IndicatorQuery{Name: name, Category: category, Range: rng, Granularity: granularity}, nil
}

func targetFilter(q url.Values) (domain.TargetFilter, error) {
	year, err := requiredIntParam(q, "year")
	if err != nil {
		return domain.TargetFilter{}, err
	}
	filter := domain.TargetFilter{
		Year:     year,
		Category: strings.TrimSpace(q.Get("category")),
		Name:     strings.TrimSpace(q.Get("name")),
	}
	month, ok, err := intParam(q, "month")
	if err != nil {
		return domain.TargetFilter{}, err
	}
	if ok {
		filter.Month = &month
	}
	return filter, nil
}
