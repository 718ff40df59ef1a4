package usecase

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/hirewire/hirewire-backend/hirewire-session/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// memNotificationRepo is an in-memory stand-in for the mongo repository.
type memNotificationRepo struct {
	mu      sync.Mutex
	records []domain.Notification
}

func (m *memNotificationRepo) Create(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	m.records = append(m.records, n)
	return n, nil
}

func (m *memNotificationRepo) GetByID(ctx context.Context, id primitive.ObjectID, profileID string) (domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.ID == id && r.RecipientProfileID == profileID {
			return r, nil
		}
	}
	return domain.Notification{}, mongo.ErrNoDocuments
}

// List sorts the way the mongo repository does: createdDate desc with _id
// desc breaking timestamp ties.
func (m *memNotificationRepo) List(ctx context.Context, profileID string) ([]domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Notification{}
	for _, r := range m.records {
		if r.RecipientProfileID == profileID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedDate.Equal(out[j].CreatedDate) {
			return out[i].CreatedDate.After(out[j].CreatedDate)
		}
		return bytes.Compare(out[i].ID[:], out[j].ID[:]) > 0
	})
	return out, nil
}

func (m *memNotificationRepo) SetRead(ctx context.Context, id primitive.ObjectID, profileID string, isRead bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.records {
		if r.ID == id && r.RecipientProfileID == profileID {
			if r.IsRead == isRead {
				return false, nil
			}
			m.records[i].IsRead = isRead
			return true, nil
		}
	}
	return false, nil
}

func (m *memNotificationRepo) SetAllRead(ctx context.Context, profileID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var modified int64
	for i, r := range m.records {
		if r.RecipientProfileID == profileID && !r.IsRead {
			m.records[i].IsRead = true
			modified++
		}
	}
	return modified, nil
}

func (m *memNotificationRepo) Delete(ctx context.Context, id primitive.ObjectID, profileID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.records {
		if r.ID == id && r.RecipientProfileID == profileID {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memNotificationRepo) DeleteAll(ctx context.Context, profileID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.records[:0]
	var deleted int64
	for _, r := range m.records {
		if r.RecipientProfileID == profileID {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept
	return deleted, nil
}

func (m *memNotificationRepo) CountUnread(ctx context.Context, profileID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, r := range m.records {
		if r.RecipientProfileID == profileID && !r.IsRead {
			count++
		}
	}
	return count, nil
}

func newNotificationSvc(repo domain.NotificationRepository) domain.NotificationUC {
	return NewNotificationUC(repo, nil, nil, nil, 5*time.Second)
}

func seedNotifications(t *testing.T, svc domain.NotificationUC, profileID string, n int) []domain.Notification {
	t.Helper()
	out := make([]domain.Notification, 0, n)
	for i := 0; i < n; i++ {
		inserted, err := svc.Create(context.Background(), domain.Notification{
			RecipientProfileID: profileID,
			Title:              "New job match",
			Message:            "A role matching your profile was posted",
			Type:               domain.NotificationJobAlert,
		})
		require.NoError(t, err)
		out = append(out, inserted)
	}
	return out
}

func TestCreateRejectsInvalidType(t *testing.T) {
	svc := newNotificationSvc(&memNotificationRepo{})

	_, err := svc.Create(context.Background(), domain.Notification{
		RecipientProfileID: "p1",
		Type:               domain.NotificationType("PROMO"),
	})

	assert.ErrorIs(t, err, ErrInvalidNotificationType)
}

func TestUnreadCountMatchesUnreadRecords(t *testing.T) {
	repo := &memNotificationRepo{}
	svc := newNotificationSvc(repo)
	seeded := seedNotifications(t, svc, "p1", 5)

	count, err := svc.UnreadCount(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	require.NoError(t, svc.MarkAsRead(context.Background(), seeded[0].ID, "p1"))
	require.NoError(t, svc.MarkAsRead(context.Background(), seeded[1].ID, "p1"))

	count, err = svc.UnreadCount(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// invariant against the raw records
	list, err := svc.List(context.Background(), "p1")
	require.NoError(t, err)
	var unread int64
	for _, n := range list {
		if !n.IsRead {
			unread++
		}
	}
	assert.Equal(t, unread, count)
}

func TestMarkAsReadIsIdempotent(t *testing.T) {
	repo := &memNotificationRepo{}
	svc := newNotificationSvc(repo)
	seeded := seedNotifications(t, svc, "p1", 2)

	require.NoError(t, svc.MarkAsRead(context.Background(), seeded[0].ID, "p1"))
	require.NoError(t, svc.MarkAsRead(context.Background(), seeded[0].ID, "p1"))

	count, err := svc.UnreadCount(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMarkAsReadMissingIsNoop(t *testing.T) {
	repo := &memNotificationRepo{}
	svc := newNotificationSvc(repo)
	seedNotifications(t, svc, "p1", 2)

	err := svc.MarkAsRead(context.Background(), primitive.NewObjectID(), "p1")
	assert.NoError(t, err)

	count, err := svc.UnreadCount(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestMarkAsUnreadRestoresCount(t *testing.T) {
	repo := &memNotificationRepo{}
	svc := newNotificationSvc(repo)
	seeded := seedNotifications(t, svc, "p1", 1)

	require.NoError(t, svc.MarkAsRead(context.Background(), seeded[0].ID, "p1"))
	require.NoError(t, svc.MarkAsUnread(context.Background(), seeded[0].ID, "p1"))

	count, err := svc.UnreadCount(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	repo := &memNotificationRepo{}
	svc := newNotificationSvc(repo)
	seeded := seedNotifications(t, svc, "p1", 3)

	require.NoError(t, svc.Delete(context.Background(), seeded[1].ID, "p1"))

	list, err := svc.List(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, n := range list {
		assert.NotEqual(t, seeded[1].ID, n.ID)
	}
}

func TestDeleteMissingIsNoop(t *testing.T) {
	repo := &memNotificationRepo{}
	svc := newNotificationSvc(repo)
	seedNotifications(t, svc, "p1", 3)

	require.NoError(t, svc.Delete(context.Background(), primitive.NewObjectID(), "p1"))

	list, err := svc.List(context.Background(), "p1")
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestDeleteScopedToRecipient(t *testing.T) {
	repo := &memNotificationRepo{}
	svc := newNotificationSvc(repo)
	seeded := seedNotifications(t, svc, "p1", 1)
	seedNotifications(t, svc, "p2", 1)

	// p2 cannot delete p1's record
	require.NoError(t, svc.Delete(context.Background(), seeded[0].ID, "p2"))

	list, err := svc.List(context.Background(), "p1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

// failingNotificationRepo simulates a backend outage on reads.
type failingNotificationRepo struct {
	*memNotificationRepo
}

func (f *failingNotificationRepo) GetByID(ctx context.Context, id primitive.ObjectID, profileID string) (domain.Notification, error) {
	return domain.Notification{}, errors.New("connection reset by peer")
}

func TestDeleteSurfacesBackendFailure(t *testing.T) {
	repo := &failingNotificationRepo{memNotificationRepo: &memNotificationRepo{}}
	svc := newNotificationSvc(repo)
	seeded := seedNotifications(t, svc, "p1", 1)

	err := svc.Delete(context.Background(), seeded[0].ID, "p1")
	require.Error(t, err)

	// set unchanged on failure
	list, err := svc.List(context.Background(), "p1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	count, err := svc.UnreadCount(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestListReturnsNewestFirst(t *testing.T) {
	repo := &memNotificationRepo{}
	svc := newNotificationSvc(repo)
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	// inserted out of chronological order
	for _, age := range []time.Duration{2 * time.Hour, 10 * time.Minute, time.Hour} {
		_, err := svc.Create(context.Background(), domain.Notification{
			RecipientProfileID: "p1",
			Title:              "New job match",
			Type:               domain.NotificationJobAlert,
			CreatedDate:        base.Add(-age),
		})
		require.NoError(t, err)
	}

	list, err := svc.List(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, base.Add(-10*time.Minute), list[0].CreatedDate)
	assert.Equal(t, base.Add(-time.Hour), list[1].CreatedDate)
	assert.Equal(t, base.Add(-2*time.Hour), list[2].CreatedDate)
}

func TestListBreaksTimestampTiesByInsertion(t *testing.T) {
	repo := &memNotificationRepo{}
	svc := newNotificationSvc(repo)
	at := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	var ids []primitive.ObjectID
	for _, title := range []string{"first", "second", "third"} {
		inserted, err := svc.Create(context.Background(), domain.Notification{
			RecipientProfileID: "p1",
			Title:              title,
			Type:               domain.NotificationGeneral,
			CreatedDate:        at,
		})
		require.NoError(t, err)
		ids = append(ids, inserted.ID)
	}

	list, err := svc.List(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, list, 3)

	// equal timestamps fall back to _id, so the latest insert comes first
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)
	assert.Equal(t, ids[0], list[2].ID)
}

func TestClearAllYieldsEmptySet(t *testing.T) {
	for _, n := range []int{0, 1, 7} {
		repo := &memNotificationRepo{}
		svc := newNotificationSvc(repo)
		seedNotifications(t, svc, "p1", n)

		require.NoError(t, svc.ClearAll(context.Background(), "p1"))

		list, err := svc.List(context.Background(), "p1")
		require.NoError(t, err)
		assert.Empty(t, list)

		count, err := svc.UnreadCount(context.Background(), "p1")
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	}
}

func TestEmptySetHasZeroUnread(t *testing.T) {
	svc := newNotificationSvc(&memNotificationRepo{})

	list, err := svc.List(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, list)

	count, err := svc.UnreadCount(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMarkAllAsRead(t *testing.T) {
	repo := &memNotificationRepo{}
	svc := newNotificationSvc(repo)
	seedNotifications(t, svc, "p1", 4)

	require.NoError(t, svc.MarkAllAsRead(context.Background(), "p1"))

	list, err := svc.List(context.Background(), "p1")
	require.NoError(t, err)
	for _, n := range list {
		assert.True(t, n.IsRead)
	}

	count, err := svc.UnreadCount(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
