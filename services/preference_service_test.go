package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/testutil"
)

func boolPtr(b bool) *bool { return &b }

func TestPreferencesDefaultToEnabled(t *testing.T) {
	svc := services.NewPreferenceService(testutil.NewDB(t))

	pref, err := svc.Effective(5)
	require.NoError(t, err)
	assert.True(t, pref.WaiterSystemEnabled)
	assert.True(t, pref.SoundNotificationEnabled)
	assert.Equal(t, uint(5), pref.UserID)
}

func TestWaiterSystemIsVenueWide(t *testing.T) {
	svc := services.NewPreferenceService(testutil.NewDB(t))

	pref, err := svc.Update(1, services.PreferencePatch{WaiterSystemEnabled: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, pref.WaiterSystemEnabled)

	other, err := svc.Effective(2)
	require.NoError(t, err)
	assert.False(t, other.WaiterSystemEnabled)

	venue, err := svc.Effective(models.VenueUserID)
	require.NoError(t, err)
	assert.False(t, venue.WaiterSystemEnabled)

	_, err = svc.Update(2, services.PreferencePatch{WaiterSystemEnabled: boolPtr(true)})
	require.NoError(t, err)
	venue, err = svc.Effective(models.VenueUserID)
	require.NoError(t, err)
	assert.True(t, venue.WaiterSystemEnabled)
}

func TestSoundNotificationIsPerUser(t *testing.T) {
	svc := services.NewPreferenceService(testutil.NewDB(t))

	pref, err := svc.Update(1, services.PreferencePatch{SoundNotificationEnabled: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, pref.SoundNotificationEnabled)
	assert.True(t, pref.WaiterSystemEnabled)

	other, err := svc.Effective(2)
	require.NoError(t, err)
	assert.True(t, other.SoundNotificationEnabled)

	again, err := svc.Update(1, services.PreferencePatch{SoundNotificationEnabled: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, again.SoundNotificationEnabled)
}

type soundCalls map[uint]bool

func (s soundCalls) SetSound(userID uint, enabled bool) { s[userID] = enabled }

func TestSoundChangeReachesNotifier(t *testing.T) {
	svc := services.NewPreferenceService(testutil.NewDB(t))
	calls := soundCalls{}
	svc.Sound = calls

	_, err := svc.Update(4, services.PreferencePatch{WaiterSystemEnabled: boolPtr(false)})
	require.NoError(t, err)
	assert.Empty(t, calls, "waiter switch does not touch sound")

	_, err = svc.Update(4, services.PreferencePatch{SoundNotificationEnabled: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, soundCalls{4: false}, calls)
}
