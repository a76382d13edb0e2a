package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acemeet/aceletters/internal/client/models"
	"github.com/acemeet/aceletters/internal/common"
)

func letterAt(id string, created time.Time) models.Letter {
	return models.Letter{
		ID:        id,
		Body:      "hi",
		CreatedAt: models.OptionalTime{Time: created, Valid: true},
	}
}

func TestInbox_LoadSortsNewestFirst(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	fc := &fakeClient{Inbox: []models.Letter{
		letterAt("old", base.Add(-2*time.Hour)),
		letterAt("new", base),
		{ID: "undated", Body: "no timestamp"},
		letterAt("mid", base.Add(-time.Hour)),
	}}
	svc := NewInboxService(fc, "u1", testLogger())

	items, err := svc.Load(context.Background())
	require.NoError(t, err)

	got := make([]string, len(items))
	for i, l := range items {
		got[i] = l.ID
	}
	assert.Equal(t, []string{"new", "mid", "old", "undated"}, got)
}

func TestInbox_LoadErrorLeavesNothing(t *testing.T) {
	fc := &fakeClient{InboxErr: errors.New("boom")}
	svc := NewInboxService(fc, "u1", testLogger())

	_, err := svc.Load(context.Background())
	require.Error(t, err)
	assert.Empty(t, svc.Items())
}

func TestInbox_MarkRead(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	serverStamp := models.OptionalTime{Time: base.Add(time.Minute), Valid: true}

	fc := &fakeClient{
		Inbox:  []models.Letter{letterAt("l1", base)},
		ReadAt: serverStamp,
	}
	svc := NewInboxService(fc, "u1", testLogger())
	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	readAt, err := svc.MarkRead(context.Background(), "l1")
	require.NoError(t, err)
	assert.Equal(t, serverStamp, readAt, "server timestamp is authoritative")
	assert.True(t, svc.Items()[0].Read())
	assert.Equal(t, 0, svc.Unread())
}

func TestInbox_MarkReadAlreadyReadIsNoOp(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	firstRead := models.OptionalTime{Time: base.Add(time.Minute), Valid: true}

	l := letterAt("l1", base)
	l.ReadAt = firstRead

	fc := &fakeClient{
		Inbox: []models.Letter{l},
		// if the service hit the network anyway, it would pick this up
		ReadAt: models.OptionalTime{Time: base.Add(time.Hour), Valid: true},
	}
	svc := NewInboxService(fc, "u1", testLogger())
	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	readAt, err := svc.MarkRead(context.Background(), "l1")
	require.NoError(t, err)
	assert.Equal(t, firstRead, readAt, "first-read timestamp must stay authoritative")
}

func TestInbox_MarkReadRollsBackOnFailure(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	fc := &fakeClient{
		Inbox:   []models.Letter{letterAt("l1", base)},
		ReadErr: errors.New("boom"),
	}
	svc := NewInboxService(fc, "u1", testLogger())
	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	_, err = svc.MarkRead(context.Background(), "l1")
	require.Error(t, err)
	assert.False(t, svc.Items()[0].Read(), "read_at must revert on failure")
	assert.Equal(t, 1, svc.Unread())
}

func TestInbox_MarkReadUnknownLetter(t *testing.T) {
	svc := NewInboxService(&fakeClient{}, "u1", testLogger())
	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	_, err = svc.MarkRead(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestInbox_DeleteRemovesLocally(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	fc := &fakeClient{Inbox: []models.Letter{
		letterAt("a", base.Add(2*time.Hour)),
		letterAt("b", base.Add(time.Hour)),
		letterAt("c", base),
	}}
	svc := NewInboxService(fc, "u1", testLogger())
	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "b"))

	items := svc.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "c", items[1].ID)
}

func TestInbox_DeleteRestoresPositionOnFailure(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	fc := &fakeClient{
		Inbox: []models.Letter{
			letterAt("a", base.Add(2*time.Hour)),
			letterAt("b", base.Add(time.Hour)),
			letterAt("c", base),
		},
		DeleteErr: errors.New("boom"),
	}
	svc := NewInboxService(fc, "u1", testLogger())
	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	require.Error(t, svc.Delete(context.Background(), "b"))

	items := svc.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "b", items[1].ID, "failed delete must restore the letter at its position")
}
