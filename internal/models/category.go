// ABOUTME: Category enum for workout sessions.
// ABOUTME: Defines the fixed category set with display labels, icons, and colors.
package models

import (
	"fmt"
	"strings"
)

// Category is the kind of exercise recorded in a workout.
type Category string

const (
	CategoryStrength   Category = "Strength"
	CategoryCardio     Category = "Cardio"
	CategoryYoga       Category = "Yoga"
	CategoryStretching Category = "Stretching"
	CategoryOther      Category = "Other"
)

// AllCategories lists every category in declaration order.
// Aggregations that need a deterministic order (tie-breaks, reports) use it.
var AllCategories = []Category{
	CategoryStrength,
	CategoryCardio,
	CategoryYoga,
	CategoryStretching,
	CategoryOther,
}

type categoryInfo struct {
	label string
	icon  string
	color string
}

var categoryInfos = map[Category]categoryInfo{
	CategoryStrength:   {label: "Силовая тренировка", icon: "dumbbell.fill", color: "#FF3B30"},
	CategoryCardio:     {label: "Кардио", icon: "heart.fill", color: "#007AFF"},
	CategoryYoga:       {label: "Йога", icon: "leaf.fill", color: "#34C759"},
	CategoryStretching: {label: "Растяжка", icon: "figure.flexibility", color: "#FF9500"},
	CategoryOther:      {label: "Другое", icon: "ellipsis.circle.fill", color: "#6D6D70"},
}

// Label returns the user-facing display label.
func (c Category) Label() string {
	if info, ok := categoryInfos[c]; ok {
		return info.label
	}
	return string(c)
}

// Icon returns the symbol name used by presentation layers.
func (c Category) Icon() string {
	return categoryInfos[c].icon
}

// Color returns the hex color used by presentation layers.
func (c Category) Color() string {
	return categoryInfos[c].color
}

// IsValid reports whether c is one of AllCategories.
func (c Category) IsValid() bool {
	_, ok := categoryInfos[c]
	return ok
}

// ParseCategory resolves user input (case-insensitive) to a Category.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range AllCategories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %s\nValid categories: strength, cardio, yoga, stretching, other", s)
}

// CategoryFromStored decodes a persisted category, mapping unknown values to Other.
func CategoryFromStored(s string) Category {
	c, err := ParseCategory(s)
	if err != nil {
		return CategoryOther
	}
	return c
}
