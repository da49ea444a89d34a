package applicant

import (
	"context"
	"errors"
	"maps"
	"slices"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant"
	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant/mocks"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/savelock"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/validator"
)

type ControllerTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	applicants *mocks.MockApplicantRepository
	documents  *mocks.MockDocumentRepository
	metrics    *metrics.Metrics
	owner      applicant.Owner
}

func TestControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}

func (s *ControllerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.applicants = mocks.NewMockApplicantRepository(s.ctrl)
	s.documents = mocks.NewMockDocumentRepository(s.ctrl)
	s.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())
	s.owner = applicant.Owner{UserID: "user-1", Email: "somchai@example.com", Role: applicant.RoleApplicant}
}

func (s *ControllerTestSuite) newController(rec applicant.ApplicantRecord) *Controller {
	return NewController(ControllerDeps{
		Applicants: s.applicants,
		Documents:  s.documents,
		Guard:      savelock.NewMemory(),
		Metrics:    s.metrics,
	}, s.owner, rec)
}

func stored(id string, payload map[string]any) applicant.StoredApplicant {
	return applicant.StoredApplicant{ID: id, UserID: "user-1", Data: payload}
}

// ===== PRECONDITION =====

func (s *ControllerTestSuite) TestSaveSection_RequiresIdentity() {
	c := s.newController(NewReconciler().Reconcile(nil))

	for _, section := range []applicant.Section{
		applicant.SectionEducation, applicant.SectionWork, applicant.SectionSkills,
		applicant.SectionPosition, applicant.SectionDocuments,
	} {
		_, err := c.SaveSection(context.Background(), section)
		s.ErrorIs(err, applicant.ErrIdentityRequired, "section %s", section)
	}
	s.Equal(applicant.SectionPersonal, c.ActiveSection())
	s.Empty(c.StoredID())
}

func (s *ControllerTestSuite) TestSaveSection_InvalidSection() {
	c := s.newController(validPersonal())
	_, err := c.SaveSection(context.Background(), applicant.Section("summary"))
	s.ErrorIs(err, applicant.ErrInvalidSection)
}

// ===== CREATE & UPDATE =====

func (s *ControllerTestSuite) TestSaveSection_PersonalCreates() {
	rec := validPersonal()
	c := s.newController(rec)

	s.applicants.EXPECT().
		Create(gomock.Any(), s.owner, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ applicant.Owner, payload map[string]any) (applicant.StoredApplicant, error) {
			return stored("app-1", payload), nil
		})

	result, err := c.SaveSection(context.Background(), applicant.SectionPersonal)
	s.Require().NoError(err)

	s.True(result.Created)
	s.Equal("app-1", result.StoredID)
	s.Equal(applicant.SectionEducation, result.Next)
	s.Equal("app-1", c.StoredID())
	s.Equal("app-1", c.Record().ID)
	s.Equal(rec.FirstName, c.Record().FirstName)
	s.Equal(applicant.SectionEducation, c.ActiveSection())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.SectionSaves.WithLabelValues("personal", "created")))
}

func (s *ControllerTestSuite) TestSaveSection_UpdateSendsOnlySectionFields() {
	rec := validPersonal()
	rec.ID = "app-1"
	rec.Education = []applicant.EducationEntry{{Level: "ปริญญาตรี", Institution: "มหาวิทยาลัยเชียงใหม่"}}
	c := s.newController(rec)

	var sent map[string]any
	s.applicants.EXPECT().
		Update(gomock.Any(), "app-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, id string, payload map[string]any) (applicant.StoredApplicant, error) {
			sent = payload
			data := BuildPayload(rec, applicant.SectionPersonal)
			maps.Copy(data, payload)
			return stored(id, data), nil
		})

	result, err := c.SaveSection(context.Background(), applicant.SectionEducation)
	s.Require().NoError(err)

	s.False(result.Created)
	s.Equal([]string{"education"}, slices.Collect(maps.Keys(sent)))
	s.Equal(applicant.SectionWork, c.ActiveSection())
	s.Equal(rec.FirstName, c.Record().FirstName)
	s.Len(c.Record().Education, 1)
}

func (s *ControllerTestSuite) TestSaveSection_KeepsLocalAttachments() {
	rec := validPersonal()
	rec.ID = "app-1"
	rec.Documents[applicant.DocumentIDCard] = attachment(applicant.DocumentIDCard, "local-1")
	c := s.newController(rec)

	s.applicants.EXPECT().
		Update(gomock.Any(), "app-1", gomock.Any()).
		Return(stored("app-1", BuildPayload(rec, applicant.SectionPersonal)), nil)

	_, err := c.SaveSection(context.Background(), applicant.SectionPersonal)
	s.Require().NoError(err)
	s.Equal("local-1", c.Record().Documents[applicant.DocumentIDCard].FileID)
}

// ===== FAILURES =====

func (s *ControllerTestSuite) TestSaveSection_ValidationFailureSkipsStore() {
	rec := validPersonal()
	rec.MaritalStatus = applicant.MaritalMarried
	c := s.newController(rec)

	_, err := c.SaveSection(context.Background(), applicant.SectionPersonal)

	var verrs validator.ValidationErrors
	s.Require().ErrorAs(err, &verrs)
	s.Equal([]string{"spouseName"}, verrs.Fields())
	s.Empty(c.StoredID())
	s.Equal(applicant.SectionPersonal, c.ActiveSection())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ValidationFailures.WithLabelValues("personal")))
}

func (s *ControllerTestSuite) TestSaveSection_StoreFailureKeepsState() {
	rec := validPersonal()
	rec.ID = "app-1"
	rec.Skills = "ภาษาอังกฤษ"
	c := s.newController(rec)
	before := c.Record()

	boom := errors.New("connection reset")
	s.applicants.EXPECT().
		Update(gomock.Any(), "app-1", gomock.Any()).
		Return(applicant.StoredApplicant{}, boom)

	_, err := c.SaveSection(context.Background(), applicant.SectionSkills)

	var storeErr *applicant.StoreError
	s.Require().ErrorAs(err, &storeErr)
	s.Equal(applicant.SectionSkills, storeErr.Section)
	s.Equal("update", storeErr.Op)
	s.ErrorIs(err, boom)
	s.Equal(before, c.Record())
	s.Equal(applicant.SectionPersonal, c.ActiveSection())
}

func (s *ControllerTestSuite) TestSaveSection_CreateFailureKeepsNoIdentity() {
	c := s.newController(validPersonal())

	s.applicants.EXPECT().
		Create(gomock.Any(), s.owner, gomock.Any()).
		Return(applicant.StoredApplicant{}, errors.New("unique violation"))

	_, err := c.SaveSection(context.Background(), applicant.SectionPersonal)

	var storeErr *applicant.StoreError
	s.Require().ErrorAs(err, &storeErr)
	s.Equal("create", storeErr.Op)
	s.Empty(c.StoredID())
}

// ===== DOCUMENTS =====

func (s *ControllerTestSuite) TestSaveSection_DocumentsUsesPersistedAttachments() {
	rec := validPersonal()
	rec.ID = "app-1"
	rec.Gender = applicant.GenderFemale
	c := s.newController(rec)

	s.documents.EXPECT().ListByApplicant(gomock.Any(), "app-1").Return([]applicant.DocumentAttachment{
		attachment(applicant.DocumentIDCard, "f-1"),
		attachment(applicant.DocumentHouseRegistration, "f-2"),
	}, nil)

	_, err := c.SaveSection(context.Background(), applicant.SectionDocuments)

	var verrs validator.ValidationErrors
	s.Require().ErrorAs(err, &verrs)
	s.Equal([]string{"documents.educationCertificate"}, verrs.Fields())
}

func (s *ControllerTestSuite) TestSaveSection_DocumentsStaysOnLastSection() {
	rec := validPersonal()
	rec.ID = "app-1"
	rec.Gender = applicant.GenderFemale
	rec.Documents[applicant.DocumentEducationCertificate] = attachment(applicant.DocumentEducationCertificate, "local-3")
	c := s.newController(rec)

	s.documents.EXPECT().ListByApplicant(gomock.Any(), "app-1").Return([]applicant.DocumentAttachment{
		attachment(applicant.DocumentIDCard, "f-1"),
		attachment(applicant.DocumentHouseRegistration, "f-2"),
	}, nil)
	s.applicants.EXPECT().
		Update(gomock.Any(), "app-1", map[string]any{}).
		Return(stored("app-1", BuildPayload(rec, applicant.SectionPersonal)), nil)

	result, err := c.SaveSection(context.Background(), applicant.SectionDocuments)
	s.Require().NoError(err)
	s.Equal(applicant.SectionDocuments, result.Next)
	s.Equal(applicant.SectionDocuments, c.ActiveSection())
}

func (s *ControllerTestSuite) TestSaveSection_DocumentListFailure() {
	rec := validPersonal()
	rec.ID = "app-1"
	c := s.newController(rec)

	s.documents.EXPECT().ListByApplicant(gomock.Any(), "app-1").Return(nil, errors.New("timeout"))

	_, err := c.SaveSection(context.Background(), applicant.SectionDocuments)

	var storeErr *applicant.StoreError
	s.Require().ErrorAs(err, &storeErr)
	s.Equal("list documents", storeErr.Op)
}

// ===== CONCURRENCY =====

func (s *ControllerTestSuite) TestSaveSection_RefusesConcurrentSave() {
	rec := validPersonal()
	rec.ID = "app-1"
	c := s.newController(rec)

	started := make(chan struct{})
	unblock := make(chan struct{})
	s.applicants.EXPECT().
		Update(gomock.Any(), "app-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, id string, payload map[string]any) (applicant.StoredApplicant, error) {
			close(started)
			<-unblock
			return stored(id, payload), nil
		}).
		Times(1)

	done := make(chan error, 1)
	go func() {
		_, err := c.SaveSection(context.Background(), applicant.SectionPersonal)
		done <- err
	}()

	<-started
	_, err := c.SaveSection(context.Background(), applicant.SectionSkills)
	s.ErrorIs(err, applicant.ErrSaveInProgress)

	close(unblock)
	s.NoError(<-done)
	s.Equal(applicant.SectionEducation, c.ActiveSection())
}

func (s *ControllerTestSuite) TestSaveSection_RefusesWhenGuardHeld() {
	rec := validPersonal()
	rec.ID = "app-1"
	guard := savelock.NewMemory()
	release, err := guard.Acquire(context.Background(), "applicant:app-1")
	s.Require().NoError(err)
	defer release()

	c := NewController(ControllerDeps{Applicants: s.applicants, Documents: s.documents, Guard: guard}, s.owner, rec)

	_, err = c.SaveSection(context.Background(), applicant.SectionPersonal)
	s.ErrorIs(err, applicant.ErrSaveInProgress)
}

// ===== RESUME =====

func (s *ControllerTestSuite) TestResume_FirstFailingSection() {
	rec := validPersonal()
	rec.ID = "app-1"
	c := s.newController(rec)

	s.Equal(applicant.SectionEducation, c.Resume(nil))

	rec.Education = []applicant.EducationEntry{{Level: "ปริญญาตรี", Institution: "มช."}}
	c.SetRecord(rec)
	s.Equal(applicant.SectionPosition, c.Resume(nil))
}
