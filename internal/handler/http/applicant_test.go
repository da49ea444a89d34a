package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant"
	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant/mocks"
	"github.com/cmlabs-hris/applicant-intake-go/internal/handler/http/response"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/validator"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type ApplicantHandlerTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockApplicantService
	jwt     jwt.Service
	router  http.Handler
}

func TestApplicantHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ApplicantHandlerTestSuite))
}

func (s *ApplicantHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockApplicantService(s.ctrl)
	s.jwt = jwt.NewJWTService(handlerTestSecret, "1h")

	registry := prometheus.NewRegistry()
	metrics.NewWithRegisterer(registry).IncrementSectionSave("personal", "created")

	s.router = NewRouter(s.jwt, NewApplicantHandler(s.service), RouterOptions{
		Env:            "test",
		AllowedOrigins: []string{"http://localhost:3000"},
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})
}

func (s *ApplicantHandlerTestSuite) token(role string) string {
	token, _, err := s.jwt.GenerateAccessToken("user-1", "somchai@example.com", role)
	s.Require().NoError(err)
	return token
}

func (s *ApplicantHandlerTestSuite) do(method, path, role string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+s.token(role))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *ApplicantHandlerTestSuite) decode(rec *httptest.ResponseRecorder) response.Response {
	var body response.Response
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func multipartBody(s *ApplicantHandlerTestSuite, files map[string]string) (*bytes.Buffer, string) {
	buf := new(bytes.Buffer)
	writer := multipart.NewWriter(buf)
	for field, name := range files {
		part, err := writer.CreateFormFile(field, name)
		s.Require().NoError(err)
		_, err = part.Write([]byte("content of " + name))
		s.Require().NoError(err)
	}
	s.Require().NoError(writer.Close())
	return buf, writer.FormDataContentType()
}

// ===== AUTH =====

func (s *ApplicantHandlerTestSuite) TestGetMine_RequiresToken() {
	rec := s.do(http.MethodGet, "/api/v1/applications/me", "", nil, "")
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *ApplicantHandlerTestSuite) TestGetMine() {
	s.service.EXPECT().GetMyApplication(gomock.Any()).Return(applicant.ApplicationResponse{
		ActiveSection: applicant.SectionPersonal,
		Record:        map[string]any{},
	}, nil)

	rec := s.do(http.MethodGet, "/api/v1/applications/me", applicant.RoleApplicant, nil, "")
	s.Equal(http.StatusOK, rec.Code)
	s.True(s.decode(rec).Success)
}

func (s *ApplicantHandlerTestSuite) TestGetApplication_StaffOnly() {
	rec := s.do(http.MethodGet, "/api/v1/applications/app-1", applicant.RoleApplicant, nil, "")
	s.Equal(http.StatusForbidden, rec.Code)

	s.service.EXPECT().GetApplication(gomock.Any(), "app-1").Return(applicant.ApplicationResponse{ID: "app-1"}, nil)
	rec = s.do(http.MethodGet, "/api/v1/applications/app-1", applicant.RoleStaff, nil, "")
	s.Equal(http.StatusOK, rec.Code)
}

// ===== SECTIONS =====

func (s *ApplicantHandlerTestSuite) TestSaveSection_CreatesWithWrappedData() {
	s.service.EXPECT().
		SaveSection(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req applicant.SaveSectionRequest) (applicant.SaveSectionResponse, error) {
			s.Equal(applicant.SectionPersonal, req.Section)
			s.Equal("สมชาย", req.Data["first_name"])
			s.Equal(json.Number("1101700203451"), req.Data["idCardNumber"])
			return applicant.SaveSectionResponse{Created: true, NextSection: applicant.SectionEducation}, nil
		})

	body := strings.NewReader(`{"data": {"first_name": "สมชาย", "idCardNumber": 1101700203451}}`)
	rec := s.do(http.MethodPut, "/api/v1/applications/me/sections/personal", applicant.RoleApplicant, body, "application/json")
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *ApplicantHandlerTestSuite) TestSaveSection_BareBody() {
	s.service.EXPECT().
		SaveSection(gomock.Any(), applicant.SaveSectionRequest{
			Section: applicant.SectionSkills,
			Data:    map[string]any{"skills": "Excel", "data": "kept"},
		}).
		Return(applicant.SaveSectionResponse{NextSection: applicant.SectionPosition}, nil)

	body := strings.NewReader(`{"skills": "Excel", "data": "kept"}`)
	rec := s.do(http.MethodPut, "/api/v1/applications/me/sections/skills", applicant.RoleApplicant, body, "application/json")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ApplicantHandlerTestSuite) TestSaveSection_UnknownSection() {
	rec := s.do(http.MethodPut, "/api/v1/applications/me/sections/summary", applicant.RoleApplicant, strings.NewReader(`{}`), "application/json")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ApplicantHandlerTestSuite) TestSaveSection_ValidationFailure() {
	s.service.EXPECT().SaveSection(gomock.Any(), gomock.Any()).Return(applicant.SaveSectionResponse{}, validator.ValidationErrors{
		{Field: "spouseName", Message: "spouseName is required when married"},
	})

	rec := s.do(http.MethodPut, "/api/v1/applications/me/sections/personal", applicant.RoleApplicant, strings.NewReader(`{"maritalStatus": "สมรส"}`), "application/json")
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	body := s.decode(rec)
	s.Equal("personal", body.Error.Section)
	s.Equal("spouseName", body.Error.Field)
	s.Equal("spouseName is required when married", body.Error.Details["spouseName"])
}

func (s *ApplicantHandlerTestSuite) TestSaveSection_IdentityRequired() {
	s.service.EXPECT().SaveSection(gomock.Any(), gomock.Any()).Return(applicant.SaveSectionResponse{}, applicant.ErrIdentityRequired)

	rec := s.do(http.MethodPut, "/api/v1/applications/me/sections/education", applicant.RoleApplicant, strings.NewReader(`{"education": []}`), "application/json")
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal("IDENTITY_REQUIRED", s.decode(rec).Error.Code)
}

func (s *ApplicantHandlerTestSuite) TestSaveSection_MalformedBody() {
	rec := s.do(http.MethodPut, "/api/v1/applications/me/sections/personal", applicant.RoleApplicant, strings.NewReader(`{"firstName":`), "application/json")
	s.Equal(http.StatusBadRequest, rec.Code)
}

// ===== DOCUMENTS =====

func (s *ApplicantHandlerTestSuite) TestUploadDocument() {
	s.service.EXPECT().
		UploadDocument(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req applicant.UploadDocumentRequest) (applicant.DocumentResponse, error) {
			s.Equal(applicant.DocumentIDCard, req.Category)
			s.Equal("id.pdf", req.FileName)
			data, err := io.ReadAll(req.File)
			s.Require().NoError(err)
			s.Equal("content of id.pdf", string(data))
			return applicant.DocumentResponse{Category: req.Category, FileID: "f-1"}, nil
		})

	body, contentType := multipartBody(s, map[string]string{"file": "id.pdf"})
	rec := s.do(http.MethodPost, "/api/v1/applications/me/documents/idCard", applicant.RoleApplicant, body, contentType)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ApplicantHandlerTestSuite) TestUploadDocument_UnknownCategory() {
	body, contentType := multipartBody(s, map[string]string{"file": "x.pdf"})
	rec := s.do(http.MethodPost, "/api/v1/applications/me/documents/passport", applicant.RoleApplicant, body, contentType)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ApplicantHandlerTestSuite) TestUploadDocuments() {
	s.service.EXPECT().
		UploadDocuments(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, reqs []applicant.UploadDocumentRequest) ([]applicant.DocumentResponse, error) {
			s.Require().Len(reqs, 2)
			s.Equal(applicant.DocumentHouseRegistration, reqs[0].Category)
			s.Equal(applicant.DocumentIDCard, reqs[1].Category)
			return []applicant.DocumentResponse{{Category: reqs[0].Category}, {Category: reqs[1].Category}}, nil
		})

	body, contentType := multipartBody(s, map[string]string{"idCard": "id.pdf", "houseRegistration": "house.jpg"})
	rec := s.do(http.MethodPost, "/api/v1/applications/me/documents", applicant.RoleApplicant, body, contentType)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ApplicantHandlerTestSuite) TestDownloadDocument() {
	s.service.EXPECT().
		DownloadDocument(gomock.Any(), applicant.DocumentIDCard).
		Return(io.NopCloser(strings.NewReader("%PDF-1.4")), applicant.DocumentAttachment{
			Category:         applicant.DocumentIDCard,
			FileID:           "documents/app-1/idCard-1.pdf",
			OriginalFileName: "บัตรประชาชน.pdf",
		}, nil)

	rec := s.do(http.MethodGet, "/api/v1/applications/me/documents/idCard/file", applicant.RoleApplicant, nil, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("application/pdf", rec.Header().Get("Content-Type"))
	s.Contains(rec.Header().Get("Content-Disposition"), "attachment")
	s.Equal("%PDF-1.4", rec.Body.String())
}

func (s *ApplicantHandlerTestSuite) TestDownloadDocument_NotFound() {
	s.service.EXPECT().
		DownloadDocument(gomock.Any(), applicant.DocumentTranscript).
		Return(nil, applicant.DocumentAttachment{}, applicant.ErrDocumentNotFound)

	rec := s.do(http.MethodGet, "/api/v1/applications/me/documents/transcript/file", applicant.RoleApplicant, nil, "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ApplicantHandlerTestSuite) TestUploadProfileImage_Missing() {
	body, contentType := multipartBody(s, map[string]string{"avatar": "me.jpg"})
	rec := s.do(http.MethodPost, "/api/v1/applications/me/profile-image", applicant.RoleApplicant, body, contentType)
	s.Equal(http.StatusBadRequest, rec.Code)
}

// ===== OPERATIONS =====

func (s *ApplicantHandlerTestSuite) TestMetrics() {
	rec := s.do(http.MethodGet, "/metrics", "", nil, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "intake_section_saves_total")
}
