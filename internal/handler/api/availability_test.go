//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAvailabilityCommands
	mockQueries  *queriesmock.MockSlotQueries
	handler      *api.AvailabilityHandler
	agentID      uuid.UUID
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAvailabilityCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSlotQueries(s.mockCtrl)
	s.handler = api.NewAvailabilityHandler(s.mockCommands, s.mockQueries)
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

	s.router.PUT("/availability", authMiddleware, s.handler.SetAvailability)
	s.router.GET("/availability", authMiddleware, s.handler.GetAvailability)
	s.router.GET("/availability/slots", authMiddleware, s.handler.GetAvailableSlots)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) perform(method, url string, body any) *httptest.ResponseRecorder {
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

func availabilityRequestBody() map[string]any {
	return map[string]any{
		"timezone":             "Asia/Dubai",
		"viewing_duration_min": 60,
		"buffer_min":           30,
		"windows": []map[string]any{
			{"day_of_week": 1, "start_time": "09:00", "end_time": "12:00"},
		},
	}
}

func (s *AvailabilityHandlerTestSuite) TestSetAvailability() {
	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().SetAvailability(gomock.Any(), s.agentID, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, input commands.SetAvailabilityInput) error {
				s.Equal("Asia/Dubai", input.Timezone)
				s.Require().NotNil(input.ViewingDurationMin)
				s.Equal(60, *input.ViewingDurationMin)
				s.Require().NotNil(input.BufferMin)
				s.Equal(30, *input.BufferMin)
				s.Require().Len(input.Windows, 1)
				s.Equal("09:00", input.Windows[0].StartTime)
				return nil
			}).Times(1)

		rec := s.perform(http.MethodPut, "/availability", availabilityRequestBody())
		s.Equal(http.StatusNoContent, rec.Code)
		s.Empty(rec.Body.String())
	})

	s.Run("success: omitted duration and buffer pass through as unset", func() {
		s.mockCommands.EXPECT().SetAvailability(gomock.Any(), s.agentID, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, input commands.SetAvailabilityInput) error {
				s.Nil(input.ViewingDurationMin, "absent field must not collapse to zero")
				s.Nil(input.BufferMin, "absent field must not collapse to zero")
				return nil
			}).Times(1)

		body := availabilityRequestBody()
		delete(body, "viewing_duration_min")
		delete(body, "buffer_min")
		rec := s.perform(http.MethodPut, "/availability", body)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 401 without token", func() {
		req := httptest.NewRequest(http.MethodPut, "/availability", nil)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: 400 when windows are missing", func() {
		body := availabilityRequestBody()
		delete(body, "windows")
		rec := s.perform(http.MethodPut, "/availability", body)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 400 when day_of_week is out of range", func() {
		body := availabilityRequestBody()
		body["windows"] = []map[string]any{
			{"day_of_week": 7, "start_time": "09:00", "end_time": "12:00"},
		}
		rec := s.perform(http.MethodPut, "/availability", body)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 422 on invalid definition", func() {
		// the command surfaces the sentinel as a mark on the domain error
		marked := errs.Mark(errs.New("window start must be before window end"), commands.ErrInvalidAvailability)
		s.mockCommands.EXPECT().SetAvailability(gomock.Any(), s.agentID, gomock.Any()).
			Return(marked).Times(1)
		rec := s.perform(http.MethodPut, "/availability", availabilityRequestBody())
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}

func (s *AvailabilityHandlerTestSuite) TestGetAvailability() {
	s.Run("success: returns the stored definition", func() {
		view := &queries.AvailabilityView{
			AgentID:            s.agentID,
			Timezone:           "Asia/Dubai",
			ViewingDurationMin: 60,
			BufferMin:          30,
			Windows: []queries.WindowView{
				{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
			},
		}
		s.mockQueries.EXPECT().Availability(gomock.Any(), s.agentID).
			Return(view, nil).Times(1)

		rec := s.perform(http.MethodGet, "/availability", nil)
		s.Equal(http.StatusOK, rec.Code)

		var body map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal("Asia/Dubai", body["timezone"])
		s.EqualValues(60, body["viewing_duration_min"])
	})

	s.Run("error: 404 when never set", func() {
		s.mockQueries.EXPECT().Availability(gomock.Any(), s.agentID).
			Return(nil, queries.ErrAvailabilityNotSet).Times(1)
		rec := s.perform(http.MethodGet, "/availability", nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *AvailabilityHandlerTestSuite) TestGetAvailableSlots() {
	s.Run("success: returns slots for an explicit range", func() {
		from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
		slots := []queries.SlotView{
			{StartTime: time.Date(2026, 3, 2, 5, 0, 0, 0, time.UTC), EndTime: time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)},
			{StartTime: time.Date(2026, 3, 2, 6, 30, 0, 0, time.UTC), EndTime: time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC)},
		}
		s.mockQueries.EXPECT().AvailableSlots(gomock.Any(), s.agentID, from, to).
			Return(slots, nil).Times(1)

		rec := s.perform(http.MethodGet,
			"/availability/slots?from=2026-03-01T00:00:00Z&to=2026-03-08T00:00:00Z", nil)
		s.Equal(http.StatusOK, rec.Code)

		var body []map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Len(body, 2)
	})

	s.Run("success: defaults the range when no params given", func() {
		s.mockQueries.EXPECT().AvailableSlots(gomock.Any(), s.agentID, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, rangeStart, rangeEnd time.Time) ([]queries.SlotView, error) {
				s.WithinDuration(time.Now(), rangeStart, 5*time.Second)
				s.WithinDuration(rangeStart.AddDate(0, 0, 7), rangeEnd, time.Second)
				return nil, nil
			}).Times(1)

		rec := s.perform(http.MethodGet, "/availability/slots", nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 when to precedes from", func() {
		rec := s.perform(http.MethodGet,
			"/availability/slots?from=2026-03-08T00:00:00Z&to=2026-03-01T00:00:00Z", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 400 on malformed from", func() {
		rec := s.perform(http.MethodGet, "/availability/slots?from=tomorrow", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 404 when availability was never set", func() {
		s.mockQueries.EXPECT().AvailableSlots(gomock.Any(), s.agentID, gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrAvailabilityNotSet).Times(1)
		rec := s.perform(http.MethodGet, "/availability/slots", nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}
