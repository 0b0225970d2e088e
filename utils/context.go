package utils

import (
	"context"

	"github.com/yeremiapane/qrmenu-app/models"
)

type preferenceKey struct{}

// WithPreferences stores the effective preference record on ctx.
func WithPreferences(ctx context.Context, p models.Preference) context.Context {
	return context.WithValue(ctx, preferenceKey{}, p)
}

// PreferencesFrom returns the preferences carried by ctx, or the defaults.
func PreferencesFrom(ctx context.Context) models.Preference {
	if p, ok := ctx.Value(preferenceKey{}).(models.Preference); ok {
		return p
	}
	return models.DefaultPreference(models.VenueUserID)
}
