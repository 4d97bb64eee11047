//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"viewing-scheduler/internal/domain/viewing"
	"viewing-scheduler/internal/handler/api"
	"viewing-scheduler/internal/pkg/errs"
	"viewing-scheduler/internal/usecase/commands"
	"viewing-scheduler/internal/usecase/queries"
	commandsmock "viewing-scheduler/tests/mock/commands"
	queriesmock "viewing-scheduler/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ViewingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockViewingCommands
	mockQueries  *queriesmock.MockViewingQueries
	handler      *api.ViewingHandler
	agentID      uuid.UUID
}

func (s *ViewingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockViewingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockViewingQueries(s.mockCtrl)
	s.handler = api.NewViewingHandler(s.mockCommands, s.mockQueries)
	s.agentID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("agent_id", s.agentID)
		c.Next()
	}

	s.router.POST("/viewings", authMiddleware, s.handler.BookViewing)
	s.router.GET("/viewings", authMiddleware, s.handler.ListViewings)
	s.router.GET("/viewings/:id", authMiddleware, s.handler.GetViewing)
	s.router.POST("/viewings/:id/reschedule", authMiddleware, s.handler.RescheduleViewing)
	s.router.POST("/viewings/:id/cancel", authMiddleware, s.handler.CancelViewing)
	s.router.POST("/viewings/:id/confirm", authMiddleware, s.handler.ConfirmViewing)
	s.router.POST("/viewings/:id/complete", authMiddleware, s.handler.CompleteViewing)
}

func (s *ViewingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestViewingHandlerSuite(t *testing.T) {
	suite.Run(t, new(ViewingHandlerTestSuite))
}

func (s *ViewingHandlerTestSuite) perform(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-token")

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *ViewingHandlerTestSuite) sampleViewing() *viewing.Viewing {
	scheduled := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return viewing.Reconstruct(
		uuid.New(), s.agentID, uuid.New(), uuid.New(),
		"+971501234567", nil,
		scheduled, time.Hour,
		viewing.StatusScheduled, nil, false,
		scheduled.Add(-48*time.Hour), scheduled.Add(-48*time.Hour),
	)
}

func (s *ViewingHandlerTestSuite) bookRequestBody() map[string]any {
	return map[string]any{
		"conversation_id": uuid.New().String(),
		"property_id":     uuid.New().String(),
		"scheduled_time":  "2026-03-02T10:00:00Z",
		"customer_phone":  "+971501234567",
	}
}

func (s *ViewingHandlerTestSuite) TestBookViewing() {
	s.Run("success: returns 201 Created", func() {
		entity := s.sampleViewing()
		s.mockCommands.EXPECT().BookViewing(gomock.Any(), s.agentID, gomock.Any()).
			Return(entity, nil).Times(1)

		rec := s.perform(http.MethodPost, "/viewings", s.bookRequestBody())
		s.Equal(http.StatusCreated, rec.Code)

		var body map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal(entity.ID().String(), body["id"])
		s.Equal("scheduled", body["status"])
	})

	s.Run("error: 401 without token", func() {
		req := httptest.NewRequest(http.MethodPost, "/viewings", nil)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: 400 on malformed body", func() {
		body := s.bookRequestBody()
		delete(body, "scheduled_time")
		rec := s.perform(http.MethodPost, "/viewings", body)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 409 when slot is taken", func() {
		s.mockCommands.EXPECT().BookViewing(gomock.Any(), s.agentID, gomock.Any()).
			Return(nil, commands.ErrSlotUnavailable).Times(1)
		rec := s.perform(http.MethodPost, "/viewings", s.bookRequestBody())
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("error: 404 for foreign property", func() {
		s.mockCommands.EXPECT().BookViewing(gomock.Any(), s.agentID, gomock.Any()).
			Return(nil, commands.ErrPropertyNotFound).Times(1)
		rec := s.perform(http.MethodPost, "/viewings", s.bookRequestBody())
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("error: 400 for past time", func() {
		// mirror the command path, which marks the domain error
		marked := errs.Mark(viewing.ErrPastTime, commands.ErrInvalidViewingTime)
		s.mockCommands.EXPECT().BookViewing(gomock.Any(), s.agentID, gomock.Any()).
			Return(nil, marked).Times(1)
		rec := s.perform(http.MethodPost, "/viewings", s.bookRequestBody())
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ViewingHandlerTestSuite) TestGetViewing() {
	s.Run("success: returns the view", func() {
		id := uuid.New()
		view := &queries.ViewingView{ID: id, AgentID: s.agentID, Status: "confirmed"}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.agentID, id).
			Return(view, nil).Times(1)

		rec := s.perform(http.MethodGet, "/viewings/"+id.String(), nil)
		s.Equal(http.StatusOK, rec.Code)

		var body map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal(id.String(), body["id"])
		s.Equal("confirmed", body["status"])
	})

	s.Run("error: 400 on malformed id", func() {
		rec := s.perform(http.MethodGet, "/viewings/not-a-uuid", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 404 when missing", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.agentID, id).
			Return(nil, queries.ErrViewingNotFound).Times(1)
		rec := s.perform(http.MethodGet, "/viewings/"+id.String(), nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *ViewingHandlerTestSuite) TestListViewings() {
	s.Run("success: applies filters from the query string", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), s.agentID, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, filters queries.ViewingFilters) ([]*queries.ViewingListItem, error) {
				s.Require().NotNil(filters.Status)
				s.Equal("scheduled", *filters.Status)
				s.Require().NotNil(filters.From)
				return []*queries.ViewingListItem{}, nil
			}).Times(1)

		rec := s.perform(http.MethodGet, "/viewings?status=scheduled&from=2026-03-01T00:00:00Z", nil)
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq("[]", rec.Body.String())
	})

	s.Run("error: 400 on bad from filter", func() {
		rec := s.perform(http.MethodGet, "/viewings?from=yesterday", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ViewingHandlerTestSuite) TestRescheduleViewing() {
	body := map[string]any{"new_scheduled_time": "2026-03-03T10:00:00Z"}

	s.Run("success: returns the moved viewing", func() {
		entity := s.sampleViewing()
		s.mockCommands.EXPECT().RescheduleViewing(gomock.Any(), entity.ID(), s.agentID, gomock.Any()).
			Return(entity, nil).Times(1)
		rec := s.perform(http.MethodPost, "/viewings/"+entity.ID().String()+"/reschedule", body)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 409 when target slot is taken", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().RescheduleViewing(gomock.Any(), id, s.agentID, gomock.Any()).
			Return(nil, commands.ErrSlotUnavailable).Times(1)
		rec := s.perform(http.MethodPost, "/viewings/"+id.String()+"/reschedule", body)
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("error: 422 on terminal viewing", func() {
		id := uuid.New()
		marked := errs.Mark(viewing.ErrTerminalState, commands.ErrIllegalStateTransition)
		s.mockCommands.EXPECT().RescheduleViewing(gomock.Any(), id, s.agentID, gomock.Any()).
			Return(nil, marked).Times(1)
		rec := s.perform(http.MethodPost, "/viewings/"+id.String()+"/reschedule", body)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}

func (s *ViewingHandlerTestSuite) TestCancelViewing() {
	s.Run("success: cancels with a reason", func() {
		entity := s.sampleViewing()
		s.mockCommands.EXPECT().CancelViewing(gomock.Any(), entity.ID(), s.agentID, gomock.Any()).
			DoAndReturn(func(_ any, _, _ uuid.UUID, reason *string) (*viewing.Viewing, error) {
				s.Require().NotNil(reason)
				s.Equal("customer travelling", *reason)
				return entity, nil
			}).Times(1)

		rec := s.perform(http.MethodPost, "/viewings/"+entity.ID().String()+"/cancel",
			map[string]any{"reason": "customer travelling"})
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("success: cancels without a body", func() {
		entity := s.sampleViewing()
		s.mockCommands.EXPECT().CancelViewing(gomock.Any(), entity.ID(), s.agentID, gomock.Nil()).
			Return(entity, nil).Times(1)
		rec := s.perform(http.MethodPost, "/viewings/"+entity.ID().String()+"/cancel", nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 422 when already cancelled", func() {
		id := uuid.New()
		marked := errs.Mark(viewing.ErrAlreadyCancelled, commands.ErrIllegalStateTransition)
		s.mockCommands.EXPECT().CancelViewing(gomock.Any(), id, s.agentID, gomock.Any()).
			Return(nil, marked).Times(1)
		rec := s.perform(http.MethodPost, "/viewings/"+id.String()+"/cancel", nil)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}

func (s *ViewingHandlerTestSuite) TestConfirmAndComplete() {
	s.Run("confirm returns 200", func() {
		entity := s.sampleViewing()
		s.mockCommands.EXPECT().ConfirmViewing(gomock.Any(), entity.ID(), s.agentID).
			Return(entity, nil).Times(1)
		rec := s.perform(http.MethodPost, "/viewings/"+entity.ID().String()+"/confirm", nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("complete returns 200", func() {
		entity := s.sampleViewing()
		s.mockCommands.EXPECT().CompleteViewing(gomock.Any(), entity.ID(), s.agentID).
			Return(entity, nil).Times(1)
		rec := s.perform(http.MethodPost, "/viewings/"+entity.ID().String()+"/complete", nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("complete on terminal viewing returns 422", func() {
		id := uuid.New()
		marked := errs.Mark(viewing.ErrTerminalState, commands.ErrIllegalStateTransition)
		s.mockCommands.EXPECT().CompleteViewing(gomock.Any(), id, s.agentID).
			Return(nil, marked).Times(1)
		rec := s.perform(http.MethodPost, "/viewings/"+id.String()+"/complete", nil)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}
