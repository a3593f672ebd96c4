package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mentorhub/mentorhub-api/internal/models"
	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"
)

func newMentorRouter(service *MockMentorService, principal *models.Principal) *gin.Engine {
	handler := NewMentorHandler(service)

	router := gin.New()
	router.GET("/mentors", handler.GetMentors)
	router.GET("/mentors/search", handler.SearchMentors)
	router.GET("/mentors/:id", handler.GetMentorByID)

	group := router.Group("/", authAs(principal))
	group.POST("/mentors/profile", handler.UpsertProfile)
	return router
}

func TestMentorHandler_GetMentors(t *testing.T) {
	service := new(MockMentorService)
	router := newMentorRouter(service, mentorCaller())

	service.On("List", mock.Anything).Return([]*models.Mentor{
		{ID: "mentor-1", Expertise: []string{"go"}},
		{ID: "mentor-2", Expertise: []string{"python"}},
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/mentors", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mentor-1")
	assert.Contains(t, w.Body.String(), "mentor-2")
}

func TestMentorHandler_SearchMentors_ForwardsFilters(t *testing.T) {
	service := new(MockMentorService)
	router := newMentorRouter(service, mentorCaller())

	service.On("Search", mock.Anything, mock.MatchedBy(func(f models.MentorSearchFilters) bool {
		return f.Expertise == "go" && f.MinRate != nil && *f.MinRate == 20 && f.MaxRate != nil && *f.MaxRate == 80
	})).Return([]*models.Mentor{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/mentors/search?expertise=go&minRate=20&maxRate=80", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestMentorHandler_SearchMentors_InvalidMinRate(t *testing.T) {
	service := new(MockMentorService)
	router := newMentorRouter(service, mentorCaller())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/mentors/search?minRate=cheap", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Parámetro minRate inválido")
	service.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestMentorHandler_GetMentorByID_NotFound(t *testing.T) {
	service := new(MockMentorService)
	router := newMentorRouter(service, mentorCaller())

	service.On("GetByID", mock.Anything, "ghost").
		Return(nil, apperrors.WithMessage(apperrors.ErrNotFound, "Mentor no encontrado"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/mentors/ghost", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Mentor no encontrado")
}

func TestMentorHandler_UpsertProfile(t *testing.T) {
	service := new(MockMentorService)
	router := newMentorRouter(service, mentorCaller())

	service.On("UpsertProfile", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.Mentor{ID: "mentor-1", UserID: "user-mentor", HourlyRate: 45}, nil)

	body := `{"expertise":["go"],"bio":"Backend engineer","experience":"10 años","hourlyRate":45}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/mentors/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Perfil de mentor guardado exitosamente")
}

func TestMentorHandler_UpsertProfile_MissingFields(t *testing.T) {
	service := new(MockMentorService)
	router := newMentorRouter(service, mentorCaller())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/mentors/profile", strings.NewReader(`{"bio":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Datos de entrada inválidos")
	service.AssertNotCalled(t, "UpsertProfile", mock.Anything, mock.Anything, mock.Anything)
}
