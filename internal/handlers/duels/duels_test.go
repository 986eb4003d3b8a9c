package duels

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/duelhub/internal/domain"
	"github.com/GlebRadaev/duelhub/internal/dto"
	"github.com/GlebRadaev/duelhub/internal/service/duelservice"
	"github.com/GlebRadaev/duelhub/internal/service/scoreservice"
	"github.com/GlebRadaev/duelhub/pkg/auth"
)

func NewMock(t *testing.T) (*DuelHandler, *MockService, *MockScoreService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	scores := NewMockScoreService(ctrl)
	return New(service, scores), service, scores
}

func newRequest(method, url, id, body string) *http.Request {
	r := httptest.NewRequest(method, url, strings.NewReader(body))
	rctx := chi.NewRouteContext()
	if id != "" {
		rctx.URLParams.Add("id", id)
	}
	ctx := context.WithValue(context.Background(), auth.UserIDKey, 7)
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

func intPtr(v int) *int { return &v }

func TestCreateDuelHandler(t *testing.T) {
	handler, service, _ := NewMock(t)
	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Created without options",
			prepareMock: func() {
				service.EXPECT().
					Create(gomock.Any(), 7, duelservice.CreateOptions{}).
					Return(&domain.LiveSession{ID: 12, HostID: 7, Status: domain.StatusWaiting}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Created with chat room",
			body: `{"chat_room_id":3}`,
			prepareMock: func() {
				service.EXPECT().
					Create(gomock.Any(), 7, duelservice.CreateOptions{ChatRoomID: intPtr(3)}).
					Return(&domain.LiveSession{ID: 12, HostID: 7, Status: domain.StatusWaiting, ChatRoomID: intPtr(3)}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Invalid request body",
			body:         `{"chat_room_id":"x"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().Create(gomock.Any(), 7, gomock.Any()).Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			w := httptest.NewRecorder()
			handler.CreateDuel(w, newRequest(http.MethodPost, "/api/duels", "", tt.body))
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusCreated {
				var body dto.DuelResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, 12, body.ID)
				assert.Equal(t, "waiting", body.Status)
			}
		})
	}
}

func TestGetDuelHandler(t *testing.T) {
	handler, service, _ := NewMock(t)
	tests := []struct {
		name         string
		id           string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Found",
			id:   "12",
			prepareMock: func() {
				service.EXPECT().Get(gomock.Any(), 12).Return(&domain.LiveSession{ID: 12, HostID: 7, Status: domain.StatusActive}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid id",
			id:           "abc",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Not found",
			id:   "13",
			prepareMock: func() {
				service.EXPECT().Get(gomock.Any(), 13).Return(nil, duelservice.ErrSessionNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			w := httptest.NewRecorder()
			handler.GetDuel(w, newRequest(http.MethodGet, "/api/duels/"+tt.id, tt.id, ""))
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestJoinDuelHandler(t *testing.T) {
	handler, service, _ := NewMock(t)
	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Joined",
			prepareMock: func() {
				service.EXPECT().Join(gomock.Any(), 12, 7).
					Return(&domain.LiveSession{ID: 12, HostID: 3, GuestID: intPtr(7), Status: domain.StatusActive}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Already started",
			prepareMock: func() {
				service.EXPECT().Join(gomock.Any(), 12, 7).
					Return(nil, &duelservice.TransitionError{Transition: "join", Status: domain.StatusActive})
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Not found",
			prepareMock: func() {
				service.EXPECT().Join(gomock.Any(), 12, 7).Return(nil, duelservice.ErrSessionNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			w := httptest.NewRecorder()
			handler.JoinDuel(w, newRequest(http.MethodPost, "/api/duels/12/join", "12", ""))
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestTransitionHandlers(t *testing.T) {
	handler, service, _ := NewMock(t)
	ended := &domain.LiveSession{ID: 12, HostID: 7, GuestID: intPtr(9), Status: domain.StatusCompleted, HostScore: 10, GuestScore: 5, WinnerID: intPtr(7)}
	tests := []struct {
		name         string
		call         func(w http.ResponseWriter, r *http.Request)
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "End",
			call: handler.EndDuel,
			prepareMock: func() {
				service.EXPECT().End(gomock.Any(), 12, intPtr(7)).Return(ended, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "End by outsider",
			call: handler.EndDuel,
			prepareMock: func() {
				service.EXPECT().End(gomock.Any(), 12, intPtr(7)).Return(nil, duelservice.ErrNotParticipant)
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name: "Cancel started duel",
			call: handler.CancelDuel,
			prepareMock: func() {
				service.EXPECT().Cancel(gomock.Any(), 12, intPtr(7)).
					Return(nil, &duelservice.TransitionError{Transition: "cancel", Status: domain.StatusActive})
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Pause",
			call: handler.PauseDuel,
			prepareMock: func() {
				service.EXPECT().Pause(gomock.Any(), 12, intPtr(7)).Return(&domain.LiveSession{ID: 12, Status: domain.StatusPaused}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Resume fails",
			call: handler.ResumeDuel,
			prepareMock: func() {
				service.EXPECT().Resume(gomock.Any(), 12, intPtr(7)).Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			w := httptest.NewRecorder()
			tt.call(w, newRequest(http.MethodPost, "/api/duels/12", "12", ""))
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestEndDuelResponse(t *testing.T) {
	handler, service, _ := NewMock(t)
	service.EXPECT().End(gomock.Any(), 12, intPtr(7)).
		Return(&domain.LiveSession{ID: 12, HostID: 7, GuestID: intPtr(9), Status: domain.StatusCompleted, HostScore: 10, GuestScore: 5, WinnerID: intPtr(7)}, nil)

	w := httptest.NewRecorder()
	handler.EndDuel(w, newRequest(http.MethodPost, "/api/duels/12/end", "12", ""))

	var body dto.DuelResponseDTO
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "completed", body.Status)
	assert.Equal(t, intPtr(7), body.WinnerID)
	assert.Equal(t, int64(10), body.HostScore)
	assert.Equal(t, int64(5), body.GuestScore)
}

func TestGetScoresHandler(t *testing.T) {
	handler, _, scores := NewMock(t)
	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedBody dto.ScoresResponseDTO
	}{
		{
			name: "Scores",
			prepareMock: func() {
				scores.EXPECT().GetScores(gomock.Any(), 12).Return(domain.Scores{Host: 15, Guest: 10}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.ScoresResponseDTO{SessionID: 12, Host: 15, Guest: 10},
		},
		{
			name: "Unknown session",
			prepareMock: func() {
				scores.EXPECT().GetScores(gomock.Any(), 12).Return(domain.Scores{}, scoreservice.ErrSessionNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			w := httptest.NewRecorder()
			handler.GetScores(w, newRequest(http.MethodGet, "/api/duels/12/scores", "12", ""))
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.ScoresResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, tt.expectedBody, body)
			}
		})
	}
}

func TestGetEventsHandler(t *testing.T) {
	handler, service, _ := NewMock(t)
	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name: "Timeline",
			prepareMock: func() {
				service.EXPECT().Timeline(gomock.Any(), 12).Return([]domain.DuelEvent{
					{ID: 1, SessionID: 12, Type: domain.EventUserJoined, ActorID: intPtr(9)},
					{ID: 2, SessionID: 12, Type: domain.EventGiftSent, ActorID: intPtr(9), TargetID: intPtr(7)},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  2,
		},
		{
			name: "Empty timeline",
			prepareMock: func() {
				service.EXPECT().Timeline(gomock.Any(), 12).Return(nil, nil)
			},
			expectedCode: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			w := httptest.NewRecorder()
			handler.GetEvents(w, newRequest(http.MethodGet, "/api/duels/12/events", "12", ""))
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.DuelEventResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Len(t, body, tt.expectedLen)
			}
		})
	}
}
