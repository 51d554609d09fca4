package notification

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockSender records what the pool tries to push.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestWorkerPoolDispatch(t *testing.T) {
	db, _ := newTestDB(t)
	wp := NewWorkerPool(1, db, &webpush.Options{})

	wp.Dispatch(Job{BabyID: "baby-1", BabyName: "Nora", SinceSeconds: 9000})

	select {
	case job := <-wp.jobs:
		assert.Equal(t, "baby-1", job.BabyID)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerSendsReminder(t *testing.T) {
	gormDB, mock := newTestDB(t)
	wp := NewWorkerPool(1, gormDB, &webpush.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	var wg sync.WaitGroup
	wg.Add(1)

	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			assert.Equal(t, "https://example.com/push", sub.Endpoint)
			assert.Equal(t, "key_p256dh", sub.Keys.P256dh)
			assert.Contains(t, string(payload), "Time to feed Nora")
			assert.Contains(t, string(payload), "2h 40m")
			wg.Done()
			return &http.Response{
				StatusCode: http.StatusCreated,
				Body:       io.NopCloser(bytes.NewBufferString("")),
			}, nil
		},
	}

	mock.ExpectQuery(`SELECT .* FROM "push_subscriptions" WHERE baby_id = \$1`).
		WithArgs("baby-1").
		WillReturnRows(sqlmock.NewRows([]string{"endpoint", "p256dh", "auth", "baby_id", "created_at"}).
			AddRow("https://example.com/push", "key_p256dh", "key_auth", "baby-1", time.Now()))

	wp.Dispatch(Job{BabyID: "baby-1", BabyName: "Nora", SinceSeconds: 9600})
	wg.Wait()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkerDeletesExpiredSubscription(t *testing.T) {
	gormDB, mock := newTestDB(t)
	wp := NewWorkerPool(1, gormDB, &webpush.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusGone,
				Body:       io.NopCloser(bytes.NewBufferString("")),
			}, nil
		},
	}

	mock.ExpectQuery(`SELECT .* FROM "push_subscriptions" WHERE baby_id = \$1`).
		WithArgs("baby-2").
		WillReturnRows(sqlmock.NewRows([]string{"endpoint", "p256dh", "auth", "baby_id", "created_at"}).
			AddRow("https://example.com/expired", "p", "a", "baby-2", time.Now()))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "push_subscriptions" WHERE "push_subscriptions"."endpoint" = \$1`).
		WithArgs("https://example.com/expired").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	wp.Dispatch(Job{BabyID: "baby-2", BabyName: "Theo", SinceSeconds: 10000})

	// Give the worker a moment to process the job.
	time.Sleep(100 * time.Millisecond)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkerNoSubscriptionsNoSend(t *testing.T) {
	gormDB, mock := newTestDB(t)
	wp := NewWorkerPool(1, gormDB, &webpush.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	sent := false
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			sent = true
			return nil, nil
		},
	}

	mock.ExpectQuery(`SELECT .* FROM "push_subscriptions" WHERE baby_id = \$1`).
		WithArgs("baby-3").
		WillReturnRows(sqlmock.NewRows([]string{"endpoint", "p256dh", "auth", "baby_id", "created_at"}))

	wp.Dispatch(Job{BabyID: "baby-3", BabyName: "Ada", SinceSeconds: 9000})
	time.Sleep(100 * time.Millisecond)

	assert.False(t, sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}
