package scoreservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/duelhub/internal/broadcast"
	"github.com/GlebRadaev/duelhub/internal/domain"
	"github.com/GlebRadaev/duelhub/internal/service/duelservice"
)

var errRedis = errors.New("redis down")

type mocks struct {
	cache    *MockCache
	sessions *MockSessionRepo
	emitter  *MockEmitter
}

func NewMock(t *testing.T) (*Service, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		cache:    NewMockCache(ctrl),
		sessions: NewMockSessionRepo(ctrl),
		emitter:  NewMockEmitter(ctrl),
	}
	return New(m.cache, m.sessions, m.emitter, 0), m
}

func TestNew_DefaultTTL(t *testing.T) {
	svc, _ := NewMock(t)
	assert.Equal(t, 24*time.Hour, svc.ttl)
}

func TestService_GetScores(t *testing.T) {
	tests := []struct {
		name        string
		prepareMock func(m mocks)
		want        domain.Scores
		wantErr     error
	}{
		{
			name: "Cache hit",
			prepareMock: func(m mocks) {
				m.cache.EXPECT().Get(gomock.Any(), 12).Return(domain.Scores{Host: 15, Guest: 10}, true, nil)
			},
			want: domain.Scores{Host: 15, Guest: 10},
		},
		{
			name: "Cache miss falls back to durable scores",
			prepareMock: func(m mocks) {
				m.cache.EXPECT().Get(gomock.Any(), 12).Return(domain.Scores{}, false, nil)
				m.sessions.EXPECT().FindByID(gomock.Any(), 12).Return(&domain.LiveSession{ID: 12, HostScore: 7, GuestScore: 3}, nil)
				m.cache.EXPECT().Set(gomock.Any(), 12, domain.Scores{Host: 7, Guest: 3}, DefaultTTL).Return(nil)
			},
			want: domain.Scores{Host: 7, Guest: 3},
		},
		{
			name: "Cache error falls back to durable scores",
			prepareMock: func(m mocks) {
				m.cache.EXPECT().Get(gomock.Any(), 12).Return(domain.Scores{}, false, errRedis)
				m.sessions.EXPECT().FindByID(gomock.Any(), 12).Return(&domain.LiveSession{ID: 12, HostScore: 7}, nil)
				m.cache.EXPECT().Set(gomock.Any(), 12, domain.Scores{Host: 7}, DefaultTTL).Return(errRedis)
			},
			want: domain.Scores{Host: 7},
		},
		{
			name: "Unknown session",
			prepareMock: func(m mocks) {
				m.cache.EXPECT().Get(gomock.Any(), 12).Return(domain.Scores{}, false, nil)
				m.sessions.EXPECT().FindByID(gomock.Any(), 12).Return(nil, nil)
			},
			wantErr: ErrSessionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := NewMock(t)
			tt.prepareMock(m)
			got, err := svc.GetScores(context.Background(), 12)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_GetScoresIsIdempotent(t *testing.T) {
	svc, m := NewMock(t)
	m.cache.EXPECT().Get(gomock.Any(), 12).Return(domain.Scores{Host: 4, Guest: 2}, true, nil).Times(3)

	first, err := svc.GetScores(context.Background(), 12)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		again, err := svc.GetScores(context.Background(), 12)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestService_AddPoints(t *testing.T) {
	session := &domain.LiveSession{ID: 12, HostID: 7, HostScore: 10, GuestScore: 5}

	tests := []struct {
		name        string
		party       domain.Party
		points      int64
		prepareMock func(m mocks)
		want        domain.Scores
		wantErr     error
	}{
		{
			name:   "Guest scores",
			party:  domain.PartyGuest,
			points: 15,
			prepareMock: func(m mocks) {
				m.sessions.EXPECT().FindByID(gomock.Any(), 12).Return(session, nil)
				m.cache.EXPECT().Incr(gomock.Any(), 12, domain.PartyGuest, int64(15), domain.Scores{Host: 10, Guest: 5}, DefaultTTL).
					Return(domain.Scores{Host: 10, Guest: 20}, nil)
				m.sessions.EXPECT().UpdateScores(gomock.Any(), 12, domain.Scores{Host: 10, Guest: 20}).Return(nil)
				m.emitter.EXPECT().Emit(gomock.Any(), broadcast.EventScoreUpdated, broadcast.ScorePayload{
					SessionID: 12, Host: 10, Guest: 20, Party: "guest", Points: 15,
				}, broadcast.ScoresChannel(12))
			},
			want: domain.Scores{Host: 10, Guest: 20},
		},
		{
			name:        "Invalid party",
			party:       domain.Party("audience"),
			points:      5,
			prepareMock: func(mocks) {},
			wantErr:     domain.ErrInvalidParty,
		},
		{
			name:        "Non-positive points",
			party:       domain.PartyHost,
			points:      0,
			prepareMock: func(mocks) {},
			wantErr:     ErrInvalidPoints,
		},
		{
			name:   "Unknown session",
			party:  domain.PartyHost,
			points: 5,
			prepareMock: func(m mocks) {
				m.sessions.EXPECT().FindByID(gomock.Any(), 12).Return(nil, nil)
			},
			wantErr: ErrSessionNotFound,
		},
		{
			name:   "Cache increment fails",
			party:  domain.PartyHost,
			points: 5,
			prepareMock: func(m mocks) {
				m.sessions.EXPECT().FindByID(gomock.Any(), 12).Return(session, nil)
				m.cache.EXPECT().Incr(gomock.Any(), 12, domain.PartyHost, int64(5), gomock.Any(), DefaultTTL).Return(domain.Scores{}, errRedis)
			},
			wantErr: errRedis,
		},
		{
			name:   "Completed session is not scored",
			party:  domain.PartyHost,
			points: 5,
			prepareMock: func(m mocks) {
				m.sessions.EXPECT().FindByID(gomock.Any(), 12).
					Return(&domain.LiveSession{ID: 12, Status: domain.StatusCompleted, HostScore: 10, GuestScore: 5}, nil)
			},
			wantErr: duelservice.ErrInvalidSessionState,
		},
		{
			name:   "Cancelled session is not scored",
			party:  domain.PartyGuest,
			points: 5,
			prepareMock: func(m mocks) {
				m.sessions.EXPECT().FindByID(gomock.Any(), 12).
					Return(&domain.LiveSession{ID: 12, Status: domain.StatusCancelled}, nil)
			},
			wantErr: duelservice.ErrInvalidSessionState,
		},
		{
			name:   "Session ends before the durable write",
			party:  domain.PartyHost,
			points: 5,
			prepareMock: func(m mocks) {
				m.sessions.EXPECT().FindByID(gomock.Any(), 12).Return(session, nil)
				m.cache.EXPECT().Incr(gomock.Any(), 12, domain.PartyHost, int64(5), gomock.Any(), DefaultTTL).Return(domain.Scores{Host: 15, Guest: 5}, nil)
				gomock.InOrder(
					m.sessions.EXPECT().UpdateScores(gomock.Any(), 12, domain.Scores{Host: 15, Guest: 5}).Return(domain.ErrSessionClosed),
					m.cache.EXPECT().Delete(gomock.Any(), 12).Return(nil),
				)
			},
			wantErr: duelservice.ErrInvalidSessionState,
		},
		{
			name:   "Durable sync fails",
			party:  domain.PartyHost,
			points: 5,
			prepareMock: func(m mocks) {
				m.sessions.EXPECT().FindByID(gomock.Any(), 12).Return(session, nil)
				m.cache.EXPECT().Incr(gomock.Any(), 12, domain.PartyHost, int64(5), gomock.Any(), DefaultTTL).Return(domain.Scores{Host: 15, Guest: 5}, nil)
				m.sessions.EXPECT().UpdateScores(gomock.Any(), 12, domain.Scores{Host: 15, Guest: 5}).Return(errRedis)
			},
			wantErr: errRedis,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := NewMock(t)
			tt.prepareMock(m)
			got, err := svc.AddPoints(context.Background(), 12, tt.party, tt.points)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_SetScores(t *testing.T) {
	svc, m := NewMock(t)
	scores := domain.Scores{Host: 3, Guest: 4}

	gomock.InOrder(
		m.sessions.EXPECT().UpdateScores(gomock.Any(), 12, scores).Return(nil),
		m.cache.EXPECT().Set(gomock.Any(), 12, scores, DefaultTTL).Return(nil),
	)
	require.NoError(t, svc.SetScores(context.Background(), 12, scores))

	// A failed cache write must not leave the previous totals readable.
	gomock.InOrder(
		m.sessions.EXPECT().UpdateScores(gomock.Any(), 12, domain.Scores{}).Return(nil),
		m.cache.EXPECT().Set(gomock.Any(), 12, domain.Scores{}, DefaultTTL).Return(errRedis),
		m.cache.EXPECT().Delete(gomock.Any(), 12).Return(errRedis),
	)
	assert.ErrorIs(t, svc.ResetScores(context.Background(), 12), errRedis)

	m.sessions.EXPECT().UpdateScores(gomock.Any(), 12, scores).Return(domain.ErrSessionClosed)
	assert.ErrorIs(t, svc.SetScores(context.Background(), 12, scores), domain.ErrSessionClosed)
}

func TestService_ClearCache(t *testing.T) {
	svc, m := NewMock(t)

	m.cache.EXPECT().Delete(gomock.Any(), 12).Return(nil)
	assert.NoError(t, svc.ClearCache(context.Background(), 12))

	m.cache.EXPECT().Delete(gomock.Any(), 13).Return(errRedis)
	assert.ErrorIs(t, svc.ClearCache(context.Background(), 13), errRedis)
}

func TestService_Reconcile(t *testing.T) {
	session := domain.LiveSession{ID: 12, HostScore: 5, GuestScore: 5}

	tests := []struct {
		name        string
		prepareMock func(m mocks)
		wantChanged bool
		wantErr     bool
	}{
		{
			name: "Cache ahead of durable row",
			prepareMock: func(m mocks) {
				m.cache.EXPECT().Get(gomock.Any(), 12).Return(domain.Scores{Host: 9, Guest: 5}, true, nil)
				m.sessions.EXPECT().UpdateScores(gomock.Any(), 12, domain.Scores{Host: 9, Guest: 5}).Return(nil)
			},
			wantChanged: true,
		},
		{
			name: "Session closed since the scan",
			prepareMock: func(m mocks) {
				m.cache.EXPECT().Get(gomock.Any(), 12).Return(domain.Scores{Host: 9, Guest: 5}, true, nil)
				m.sessions.EXPECT().UpdateScores(gomock.Any(), 12, domain.Scores{Host: 9, Guest: 5}).Return(domain.ErrSessionClosed)
				m.cache.EXPECT().Delete(gomock.Any(), 12).Return(nil)
			},
		},
		{
			name: "Already in sync",
			prepareMock: func(m mocks) {
				m.cache.EXPECT().Get(gomock.Any(), 12).Return(domain.Scores{Host: 5, Guest: 5}, true, nil)
			},
		},
		{
			name: "Nothing cached",
			prepareMock: func(m mocks) {
				m.cache.EXPECT().Get(gomock.Any(), 12).Return(domain.Scores{}, false, nil)
			},
		},
		{
			name: "Cache unavailable",
			prepareMock: func(m mocks) {
				m.cache.EXPECT().Get(gomock.Any(), 12).Return(domain.Scores{}, false, errRedis)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := NewMock(t)
			tt.prepareMock(m)
			changed, err := svc.Reconcile(context.Background(), session)
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}
